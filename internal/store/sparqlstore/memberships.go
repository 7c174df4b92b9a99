package sparqlstore

import (
	"context"
	"fmt"

	"github.com/tinto-app/backend/internal/model"
	"github.com/tinto-app/backend/internal/sparql"
)

type memberships struct {
	c sparql.Client
}

// Exists checks the "member of" direction only. The paired writes below
// never produce a one-sided edge, so one direction is sufficient.
func (r *memberships) Exists(ctx context.Context, userURI, groupURI string) (bool, error) {
	q := fmt.Sprintf(`%s
SELECT ?group WHERE {
  GRAPH %s {
    %s schema:memberOf %s .
  }
} LIMIT 1`,
		prefixes, sparql.IRI(graphApplication), sparql.IRI(userURI), sparql.IRI(groupURI))

	rows, err := r.c.Query(ctx, q)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return len(rows) > 0, nil
}

// Create inserts both directional edges in one update. Inserting an
// already-present edge is a no-op at the store level (facts form a set,
// not a log), which keeps racing joins idempotent-safe.
func (r *memberships) Create(ctx context.Context, userURI, groupURI string) error {
	user := sparql.IRI(userURI)
	group := sparql.IRI(groupURI)
	q := fmt.Sprintf(`%s
INSERT DATA {
  GRAPH %s {
    %s schema:memberOf %s .
    %s schema:member %s .
  }
}`,
		prefixes, sparql.IRI(graphApplication), user, group, group, user)

	if err := r.c.Update(ctx, q); err != nil {
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

// Delete removes both directional edges in one update.
func (r *memberships) Delete(ctx context.Context, userURI, groupURI string) error {
	user := sparql.IRI(userURI)
	group := sparql.IRI(groupURI)
	q := fmt.Sprintf(`%s
DELETE DATA {
  GRAPH %s {
    %s schema:memberOf %s .
    %s schema:member %s .
  }
}`,
		prefixes, sparql.IRI(graphApplication), user, group, group, user)

	if err := r.c.Update(ctx, q); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}

// ListMembers returns the group's members ordered by display name.
func (r *memberships) ListMembers(ctx context.Context, groupID string) ([]*model.GroupMember, error) {
	q := fmt.Sprintf(`%s
SELECT ?user ?userName ?userUuid WHERE {
  GRAPH %s {
    ?group a schema:Organization ;
           mu:uuid %s ;
           schema:member ?user .
    ?user a foaf:Person ;
          foaf:name ?userName ;
          mu:uuid ?userUuid .
  }
} ORDER BY ?userName`,
		prefixes, sparql.IRI(graphApplication), sparql.Literal(groupID))

	rows, err := r.c.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	out := make([]*model.GroupMember, 0, len(rows))
	for _, row := range rows {
		out = append(out, &model.GroupMember{
			URI:  row["user"].Value,
			ID:   row["userUuid"].Value,
			Name: row["userName"].Value,
		})
	}
	return out, nil
}
