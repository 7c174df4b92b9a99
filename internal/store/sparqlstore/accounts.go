package sparqlstore

import (
	"context"
	"fmt"

	"github.com/tinto-app/backend/internal/model"
	"github.com/tinto-app/backend/internal/sparql"
)

type accounts struct {
	c sparql.Client
}

// FindByLoginName looks an account up by its login name. Only accounts
// carrying a credential qualify.
func (r *accounts) FindByLoginName(ctx context.Context, name string) (string, error) {
	q := fmt.Sprintf(`%s
SELECT ?account WHERE {
  GRAPH %s {
    ?account a foaf:OnlineAccount ;
             foaf:accountName %s ;
             acc:password ?passwordHash .
  }
} LIMIT 1`,
		prefixes, sparql.IRI(graphApplication), sparql.Literal(name))

	rows, err := r.c.Query(ctx, q)
	if err != nil {
		return "", fmt.Errorf("find account by login name: %w", err)
	}
	if len(rows) == 0 {
		return "", model.ErrNotFound
	}
	return rows[0]["account"].Value, nil
}

// FindByContact follows a person's contact identifier to their account.
func (r *accounts) FindByContact(ctx context.Context, contact string) (string, error) {
	q := fmt.Sprintf(`%s
SELECT ?account WHERE {
  GRAPH %s {
    ?person a foaf:Person ;
            foaf:mbox %s ;
            foaf:account ?account .
    ?account a foaf:OnlineAccount ;
             acc:password ?passwordHash .
  }
} LIMIT 1`,
		prefixes, sparql.IRI(graphApplication), sparql.Literal(contact))

	rows, err := r.c.Query(ctx, q)
	if err != nil {
		return "", fmt.Errorf("find account by contact: %w", err)
	}
	if len(rows) == 0 {
		return "", model.ErrNotFound
	}
	return rows[0]["account"].Value, nil
}

// PrincipalByAccount resolves the person linked to an account.
func (r *accounts) PrincipalByAccount(ctx context.Context, accountURI string) (*model.UserPrincipal, error) {
	acct := sparql.IRI(accountURI)
	q := fmt.Sprintf(`%s
SELECT ?user ?uuid ?name ?accountName ?email WHERE {
  GRAPH %s {
    %s a foaf:OnlineAccount ;
       foaf:accountName ?accountName .
    ?user a foaf:Person ;
          foaf:account %s ;
          foaf:name ?name ;
          mu:uuid ?uuid .
    OPTIONAL { ?user foaf:mbox ?email }
  }
} LIMIT 1`,
		prefixes, sparql.IRI(graphApplication), acct, acct)

	rows, err := r.c.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("resolve principal: %w", err)
	}
	if len(rows) == 0 {
		return nil, model.ErrNotFound
	}
	row := rows[0]
	return &model.UserPrincipal{
		URI:         row["user"].Value,
		ID:          row["uuid"].Value,
		Name:        row["name"].Value,
		AccountURI:  accountURI,
		AccountName: row["accountName"].Value,
		Contact:     row["email"].Value,
	}, nil
}
