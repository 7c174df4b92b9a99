// Package sparqlstore implements store.Store on top of a SPARQL endpoint.
// Application data and session links live in two distinct named graphs
// with no overlap.
package sparqlstore

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tinto-app/backend/internal/sparql"
	"github.com/tinto-app/backend/internal/store"
)

const (
	graphApplication = "http://mu.semte.ch/application"
	graphSessions    = "http://mu.semte.ch/graphs/sessions"

	// GroupURIBase prefixes minted group resource URIs.
	GroupURIBase = "http://tinto.app/groups/"

	// DefaultGroupStatus is assigned when group creation omits a status.
	DefaultGroupStatus = "http://mu.semte.ch/vocabularies/ext/Active"
)

const prefixes = `PREFIX foaf: <http://xmlns.com/foaf/0.1/>
PREFIX schema: <http://schema.org/>
PREFIX mu: <http://mu.semte.ch/vocabularies/core/>
PREFIX ext: <http://mu.semte.ch/vocabularies/ext/>
PREFIX acc: <http://mu.semte.ch/vocabularies/account/>
PREFIX session: <http://mu.semte.ch/vocabularies/session/>
`

// New constructs a graph-backed store over the given SPARQL client.
func New(c sparql.Client, log zerolog.Logger) *GraphStore {
	return &GraphStore{c: c, log: log}
}

// GraphStore is the SPARQL-backed store.Store implementation.
type GraphStore struct {
	c   sparql.Client
	log zerolog.Logger
}

func (s *GraphStore) Sessions() store.Sessions       { return &sessions{c: s.c, log: s.log} }
func (s *GraphStore) Accounts() store.Accounts       { return &accounts{c: s.c} }
func (s *GraphStore) Groups() store.Groups           { return &groups{c: s.c} }
func (s *GraphStore) Memberships() store.Memberships { return &memberships{c: s.c} }
func (s *GraphStore) Counters() store.Counters       { return &counters{c: s.c} }

// HealthPing implements health.HealthPinger against the triplestore.
func (s *GraphStore) HealthPing(ctx context.Context) error {
	return s.c.Ping(ctx)
}

var _ store.Store = (*GraphStore)(nil)
