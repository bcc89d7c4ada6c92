package github

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
)

// Searcher runs one repository search.
type Searcher interface {
	Search(ctx context.Context, filters Filters, credential, query string) (*Result, error)
}

// Transport is the Searcher backed by the GitHub REST API. It keeps the
// HTTP client of the most recently used credential and wraps it in a fresh
// API client per search, so no rate limit state outlives a call.
type Transport struct {
	mu        sync.Mutex
	newHTTP   func(token string) *http.Client
	newClient func(hc *http.Client) Client
	token     string
	hc        *http.Client
	logger    *log.Logger
}

// NewTransport creates a Transport. A nil logger falls back to log.Default().
func NewTransport(logger *log.Logger) *Transport {
	return newTransport(NewClient, logger)
}

func newTransport(newClient func(*http.Client) Client, logger *log.Logger) *Transport {
	if logger == nil {
		logger = log.Default()
	}
	return &Transport{newHTTP: NewHTTPClient, newClient: newClient, logger: logger}
}

func (t *Transport) clientFor(token string) Client {
	t.mu.Lock()
	if t.hc == nil || token != t.token {
		t.hc = t.newHTTP(token)
		t.token = token
	}
	hc := t.hc
	t.mu.Unlock()
	return t.newClient(hc)
}

// Search issues exactly one request for query with the paging and sort
// settings of filters. A cancelled ctx yields ErrCancelled; failures are
// *APIError or *TransportError. Nothing is retried.
func (t *Transport) Search(ctx context.Context, filters Filters, credential, query string) (*Result, error) {
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}
	client := t.clientFor(credential)

	t.logger.Debug("search request", "q", query, "page", filters.Page, "per_page", filters.PerPage,
		"sort", filters.Sort, "order", filters.Order, "authenticated", credential != "")

	res, _, err := client.SearchRepositories(ctx, query, filters.searchOptions())
	if err != nil {
		err = classify(ctx, err)
		if !errors.Is(err, ErrCancelled) {
			t.logger.Debug("search failed", "q", query, "err", err)
		}
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	result := newResult(res)
	t.logger.Debug("search done", "q", query, "total", result.TotalCount, "items", len(result.Items))
	return result, nil
}
