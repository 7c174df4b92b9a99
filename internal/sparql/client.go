// Package sparql is a thin client for a SPARQL 1.1 endpoint. The store is
// external and offers no transactions; every Query/Update call is a single
// independent round trip.
package sparql

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Term is one RDF term of a result binding.
type Term struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Row maps variable names to bound terms.
type Row map[string]Term

// Client executes read and write operations against the triplestore.
type Client interface {
	// Query runs a SELECT/ASK pattern and returns the bound rows in the
	// order the endpoint produced them.
	Query(ctx context.Context, query string) ([]Row, error)
	// Update runs an INSERT/DELETE mutation. There is no result beyond
	// success or failure.
	Update(ctx context.Context, update string) error
	// Ping verifies the endpoint is reachable and answering queries.
	Ping(ctx context.Context) error
}

// resultsDoc is the SPARQL 1.1 JSON results envelope.
type resultsDoc struct {
	Results struct {
		Bindings []Row `json:"bindings"`
	} `json:"results"`
}

// HTTPClient talks to a SPARQL endpoint over HTTP.
type HTTPClient struct {
	endpoint string
	rc       *resty.Client
}

// NewHTTPClient creates a client for the given SPARQL endpoint URL.
func NewHTTPClient(endpoint string) *HTTPClient {
	rc := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/sparql-results+json")
	return &HTTPClient{endpoint: endpoint, rc: rc}
}

func (c *HTTPClient) Query(ctx context.Context, query string) ([]Row, error) {
	var out resultsDoc
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/sparql-query").
		SetBody(query).
		SetResult(&out).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("sparql query failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sparql query failed: endpoint returned %s", resp.Status())
	}
	return out.Results.Bindings, nil
}

func (c *HTTPClient) Update(ctx context.Context, update string) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/sparql-update").
		SetBody(update).
		Post(c.endpoint)
	if err != nil {
		return fmt.Errorf("sparql update failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sparql update failed: endpoint returned %s", resp.Status())
	}
	return nil
}

// Ping issues a minimal ASK query.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.Query(ctx, "ASK {}")
	return err
}

var _ Client = (*HTTPClient)(nil)
