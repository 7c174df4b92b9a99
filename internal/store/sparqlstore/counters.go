package sparqlstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tinto-app/backend/internal/model"
	"github.com/tinto-app/backend/internal/sparql"
)

type counters struct {
	c sparql.Client
}

// RankedCounts reads the weekly counters written by the counter service
// for one group and period. Results are pre-ordered by the store: count
// descending, ties broken by user URI ascending so ranks stay
// deterministic.
func (r *counters) RankedCounts(ctx context.Context, groupURI, periodKey string) ([]*model.MemberCount, error) {
	q := fmt.Sprintf(`%s
SELECT ?user ?userName ?count WHERE {
  GRAPH %s {
    %s a schema:Organization ;
       schema:member ?user .
    ?user a foaf:Person ;
          foaf:name ?userName .
    ?wc a ext:WeeklyCount ;
        ext:user ?user ;
        ext:period %s ;
        ext:count ?count .
  }
} ORDER BY DESC(?count) ?user`,
		prefixes, sparql.IRI(graphApplication), sparql.IRI(groupURI), sparql.Literal(periodKey))

	rows, err := r.c.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("ranked counts: %w", err)
	}
	out := make([]*model.MemberCount, 0, len(rows))
	for _, row := range rows {
		count, err := strconv.Atoi(row["count"].Value)
		if err != nil {
			return nil, fmt.Errorf("ranked counts: malformed count %q for %s: %w",
				row["count"].Value, row["user"].Value, err)
		}
		out = append(out, &model.MemberCount{
			UserURI:  row["user"].Value,
			UserName: row["userName"].Value,
			Count:    count,
		})
	}
	return out, nil
}
