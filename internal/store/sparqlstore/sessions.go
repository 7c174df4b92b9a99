package sparqlstore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tinto-app/backend/internal/model"
	"github.com/tinto-app/backend/internal/session"
	"github.com/tinto-app/backend/internal/sparql"
)

type sessions struct {
	c   sparql.Client
	log zerolog.Logger
}

// FindAccount resolves the canonical key to its linked account URI.
// Duplicate links can exist briefly when two logins race on the same
// identity; ORDER BY makes the pick deterministic.
func (r *sessions) FindAccount(ctx context.Context, canonicalKey string) (string, error) {
	uri := session.CanonicalURI(canonicalKey)
	q := fmt.Sprintf(`%s
SELECT ?account WHERE {
  GRAPH %s {
    %s session:account ?account .
  }
} ORDER BY ?account LIMIT 1`,
		prefixes, sparql.IRI(graphSessions), sparql.IRI(uri))

	rows, err := r.c.Query(ctx, q)
	if err != nil {
		return "", fmt.Errorf("find session account: %w", err)
	}
	if len(rows) == 0 {
		return "", model.ErrNotFound
	}
	return rows[0]["account"].Value, nil
}

// InvalidateAll deletes every session record matching the canonical key
// under any of its historical representations: the canonical URI, the
// double-prefixed URI earlier bugs produced, and any other subject still
// containing the bare token.
func (r *sessions) InvalidateAll(ctx context.Context, canonicalKey string) error {
	uri := session.CanonicalURI(canonicalKey)
	double := session.Namespace + uri
	q := fmt.Sprintf(`%s
DELETE {
  GRAPH %[2]s {
    ?s ?p ?o .
  }
}
WHERE {
  GRAPH %[2]s {
    ?s ?p ?o .
    FILTER(
      STR(?s) = %[3]s ||
      STR(?s) = %[4]s ||
      CONTAINS(STR(?s), %[5]s)
    )
  }
}`,
		prefixes, sparql.IRI(graphSessions),
		sparql.Literal(uri), sparql.Literal(double), sparql.Literal(canonicalKey))

	if err := r.c.Update(ctx, q); err != nil {
		return fmt.Errorf("invalidate sessions: %w", err)
	}
	return nil
}

// CreateLink inserts one session-to-account link. Callers run
// InvalidateAll first; the two calls are not atomic and the narrow
// duplicate window between them is accepted.
func (r *sessions) CreateLink(ctx context.Context, canonicalKey, accountURI string) error {
	uri := session.CanonicalURI(canonicalKey)
	q := fmt.Sprintf(`%s
INSERT DATA {
  GRAPH %s {
    %s session:account %s .
  }
}`,
		prefixes, sparql.IRI(graphSessions), sparql.IRI(uri), sparql.IRI(accountURI))

	if err := r.c.Update(ctx, q); err != nil {
		return fmt.Errorf("create session link: %w", err)
	}
	return nil
}
