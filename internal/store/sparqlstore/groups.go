package sparqlstore

import (
	"context"
	"fmt"

	"github.com/tinto-app/backend/internal/model"
	"github.com/tinto-app/backend/internal/sparql"
)

type groups struct {
	c sparql.Client
}

func (r *groups) List(ctx context.Context) ([]*model.Group, error) {
	q := fmt.Sprintf(`%s
SELECT ?group ?uuid ?name ?status WHERE {
  GRAPH %s {
    ?group a schema:Organization ;
           mu:uuid ?uuid ;
           schema:name ?name ;
           ext:status ?status .
  }
} ORDER BY ?name`,
		prefixes, sparql.IRI(graphApplication))

	rows, err := r.c.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	out := make([]*model.Group, 0, len(rows))
	for _, row := range rows {
		out = append(out, &model.Group{
			URI:    row["group"].Value,
			ID:     row["uuid"].Value,
			Name:   row["name"].Value,
			Status: row["status"].Value,
		})
	}
	return out, nil
}

func (r *groups) GetByID(ctx context.Context, id string) (*model.Group, error) {
	q := fmt.Sprintf(`%s
SELECT ?group ?name ?status WHERE {
  GRAPH %s {
    ?group a schema:Organization ;
           mu:uuid %s ;
           schema:name ?name ;
           ext:status ?status .
  }
} LIMIT 1`,
		prefixes, sparql.IRI(graphApplication), sparql.Literal(id))

	rows, err := r.c.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if len(rows) == 0 {
		return nil, model.ErrNotFound
	}
	row := rows[0]
	return &model.Group{
		URI:    row["group"].Value,
		ID:     id,
		Name:   row["name"].Value,
		Status: row["status"].Value,
	}, nil
}

// Create inserts the group facts and the creator's membership edge pair
// in a single update, so a group is never visible without its first
// member.
func (r *groups) Create(ctx context.Context, g *model.Group, creatorURI string) error {
	group := sparql.IRI(g.URI)
	creator := sparql.IRI(creatorURI)
	q := fmt.Sprintf(`%s
INSERT DATA {
  GRAPH %s {
    %s a schema:Organization ;
       mu:uuid %s ;
       schema:name %s ;
       ext:status %s ;
       schema:member %s .
    %s schema:memberOf %s .
  }
}`,
		prefixes, sparql.IRI(graphApplication),
		group, sparql.Literal(g.ID), sparql.Literal(g.Name), sparql.IRI(g.Status), creator,
		creator, group)

	if err := r.c.Update(ctx, q); err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}
