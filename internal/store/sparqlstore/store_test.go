package sparqlstore

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinto-app/backend/internal/model"
	"github.com/tinto-app/backend/internal/sparql"
)

// fakeClient scripts query results and records every statement sent.
type fakeClient struct {
	queries []string
	updates []string

	rows    []sparql.Row
	rowsErr error
	updErr  error
	pingErr error
}

func (f *fakeClient) Query(_ context.Context, q string) ([]sparql.Row, error) {
	f.queries = append(f.queries, q)
	return f.rows, f.rowsErr
}

func (f *fakeClient) Update(_ context.Context, q string) error {
	f.updates = append(f.updates, q)
	return f.updErr
}

func (f *fakeClient) Ping(_ context.Context) error { return f.pingErr }

func row(pairs ...string) sparql.Row {
	r := sparql.Row{}
	for i := 0; i+1 < len(pairs); i += 2 {
		r[pairs[i]] = sparql.Term{Type: "literal", Value: pairs[i+1]}
	}
	return r
}

func newTestStore(c sparql.Client) *GraphStore {
	return New(c, zerolog.Nop())
}

func TestSessionsFindAccount(t *testing.T) {
	fc := &fakeClient{rows: []sparql.Row{row("account", "http://example.org/accounts/a1")}}
	st := newTestStore(fc)

	got, err := st.Sessions().FindAccount(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/accounts/a1", got)

	require.Len(t, fc.queries, 1)
	q := fc.queries[0]
	assert.Contains(t, q, "<http://mu.semte.ch/sessions/tok-1>")
	assert.Contains(t, q, "<"+graphSessions+">")
	assert.Contains(t, q, "ORDER BY ?account LIMIT 1")
}

func TestSessionsFindAccountNotFound(t *testing.T) {
	st := newTestStore(&fakeClient{})
	_, err := st.Sessions().FindAccount(context.Background(), "tok-1")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionsInvalidateAllCoversHistoricalShapes(t *testing.T) {
	fc := &fakeClient{}
	st := newTestStore(fc)

	require.NoError(t, st.Sessions().InvalidateAll(context.Background(), "tok-1"))
	require.Len(t, fc.updates, 1)
	u := fc.updates[0]

	// Canonical, double-prefixed, and bare-token subjects all match.
	assert.Contains(t, u, `"http://mu.semte.ch/sessions/tok-1"`)
	assert.Contains(t, u, `"http://mu.semte.ch/sessions/http://mu.semte.ch/sessions/tok-1"`)
	assert.Contains(t, u, `CONTAINS(STR(?s), "tok-1")`)
	assert.Contains(t, u, "<"+graphSessions+">")
}

func TestSessionsCreateLink(t *testing.T) {
	fc := &fakeClient{}
	st := newTestStore(fc)

	err := st.Sessions().CreateLink(context.Background(), "tok-1", "http://example.org/accounts/a1")
	require.NoError(t, err)
	require.Len(t, fc.updates, 1)
	u := fc.updates[0]
	assert.Contains(t, u, "INSERT DATA")
	assert.Contains(t, u, "<http://mu.semte.ch/sessions/tok-1> session:account <http://example.org/accounts/a1>")
}

func TestAccountsFindByLoginNameEscapesInput(t *testing.T) {
	fc := &fakeClient{rows: []sparql.Row{row("account", "http://example.org/accounts/a1")}}
	st := newTestStore(fc)

	_, err := st.Accounts().FindByLoginName(context.Background(), `alice" . ?x ?y ?z`)
	require.NoError(t, err)
	require.Len(t, fc.queries, 1)
	assert.Contains(t, fc.queries[0], `foaf:accountName "alice\" . ?x ?y ?z"`)
	assert.Contains(t, fc.queries[0], "acc:password ?passwordHash")
}

func TestAccountsPrincipalByAccount(t *testing.T) {
	fc := &fakeClient{rows: []sparql.Row{row(
		"user", "http://example.org/users/u1",
		"uuid", "uuid-1",
		"name", "Alice",
		"accountName", "alice@example.org",
		"email", "alice@example.org",
	)}}
	st := newTestStore(fc)

	p, err := st.Accounts().PrincipalByAccount(context.Background(), "http://example.org/accounts/a1")
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/users/u1", p.URI)
	assert.Equal(t, "uuid-1", p.ID)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, "http://example.org/accounts/a1", p.AccountURI)
	assert.Equal(t, "alice@example.org", p.Contact)
}

func TestAccountsPrincipalByAccountWithoutContact(t *testing.T) {
	// OPTIONAL mbox leaves the email binding absent.
	fc := &fakeClient{rows: []sparql.Row{row(
		"user", "http://example.org/users/u1",
		"uuid", "uuid-1",
		"name", "Alice",
		"accountName", "alice",
	)}}
	st := newTestStore(fc)

	p, err := st.Accounts().PrincipalByAccount(context.Background(), "http://example.org/accounts/a1")
	require.NoError(t, err)
	assert.Empty(t, p.Contact)
	assert.Equal(t, "alice", p.AccountName)
}

func TestMembershipsCreateWritesBothEdgesInOneUpdate(t *testing.T) {
	fc := &fakeClient{}
	st := newTestStore(fc)

	err := st.Memberships().Create(context.Background(),
		"http://example.org/users/u1", "http://tinto.app/groups/g1")
	require.NoError(t, err)
	require.Len(t, fc.updates, 1)
	u := fc.updates[0]
	assert.Contains(t, u, "<http://example.org/users/u1> schema:memberOf <http://tinto.app/groups/g1>")
	assert.Contains(t, u, "<http://tinto.app/groups/g1> schema:member <http://example.org/users/u1>")
}

func TestMembershipsDeleteRemovesBothEdgesInOneUpdate(t *testing.T) {
	fc := &fakeClient{}
	st := newTestStore(fc)

	err := st.Memberships().Delete(context.Background(),
		"http://example.org/users/u1", "http://tinto.app/groups/g1")
	require.NoError(t, err)
	require.Len(t, fc.updates, 1)
	u := fc.updates[0]
	assert.Contains(t, u, "DELETE DATA")
	assert.Contains(t, u, "<http://example.org/users/u1> schema:memberOf <http://tinto.app/groups/g1>")
	assert.Contains(t, u, "<http://tinto.app/groups/g1> schema:member <http://example.org/users/u1>")
}

func TestMembershipsExists(t *testing.T) {
	fc := &fakeClient{rows: []sparql.Row{row("group", "http://tinto.app/groups/g1")}}
	st := newTestStore(fc)

	ok, err := st.Memberships().Exists(context.Background(),
		"http://example.org/users/u1", "http://tinto.app/groups/g1")
	require.NoError(t, err)
	assert.True(t, ok)

	fc.rows = nil
	ok, err = st.Memberships().Exists(context.Background(),
		"http://example.org/users/u1", "http://tinto.app/groups/g1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGroupsGetByIDNotFound(t *testing.T) {
	st := newTestStore(&fakeClient{})
	_, err := st.Groups().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestGroupsCreateIncludesCreatorMembership(t *testing.T) {
	fc := &fakeClient{}
	st := newTestStore(fc)

	g := &model.Group{
		URI:    GroupURIBase + "g1",
		ID:     "g1",
		Name:   "Wine Club",
		Status: DefaultGroupStatus,
	}
	err := st.Groups().Create(context.Background(), g, "http://example.org/users/u1")
	require.NoError(t, err)
	require.Len(t, fc.updates, 1)
	u := fc.updates[0]
	assert.Contains(t, u, `schema:name "Wine Club"`)
	assert.Contains(t, u, "schema:member <http://example.org/users/u1>")
	assert.Contains(t, u, "<http://example.org/users/u1> schema:memberOf <http://tinto.app/groups/g1>")
	assert.Equal(t, 1, strings.Count(u, "INSERT DATA"))
}

func TestCountersRankedCounts(t *testing.T) {
	fc := &fakeClient{rows: []sparql.Row{
		row("user", "http://example.org/users/b", "userName", "Bob", "count", "9"),
		row("user", "http://example.org/users/a", "userName", "Alice", "count", "5"),
		row("user", "http://example.org/users/c", "userName", "Carol", "count", "5"),
	}}
	st := newTestStore(fc)

	counts, err := st.Counters().RankedCounts(context.Background(),
		GroupURIBase+"g1", "2024-W05")
	require.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, "Bob", counts[0].UserName)
	assert.Equal(t, 9, counts[0].Count)
	assert.Equal(t, 5, counts[2].Count)

	require.Len(t, fc.queries, 1)
	q := fc.queries[0]
	assert.Contains(t, q, "ORDER BY DESC(?count) ?user")
	assert.Contains(t, q, `ext:period "2024-W05"`)
}

func TestCountersRankedCountsMalformedCount(t *testing.T) {
	fc := &fakeClient{rows: []sparql.Row{
		row("user", "http://example.org/users/a", "userName", "Alice", "count", "not-a-number"),
	}}
	st := newTestStore(fc)

	_, err := st.Counters().RankedCounts(context.Background(), GroupURIBase+"g1", "2024-W05")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed count")
}
