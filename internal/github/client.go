package github

import (
	"context"
	"net/http"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

const (
	// mediaType is the content type GitHub recommends for REST requests.
	mediaType = "application/vnd.github+json"

	// apiVersion is the REST API version requested by every call.
	apiVersion = "2022-11-28"
)

// Client defines the GitHub API methods used by this application.
type Client interface {
	SearchRepositories(ctx context.Context, query string, opts *gh.SearchOptions) (*gh.RepositoriesSearchResult, *gh.Response, error)
}

// realClient wraps the go-github client to implement Client.
type realClient struct {
	inner *gh.Client
}

// NewClient creates a GitHub API client over hc. go-github remembers rate
// limit resets per client and refuses requests locally until they pass, so
// a client should serve a single search.
func NewClient(hc *http.Client) Client {
	return &realClient{inner: gh.NewClient(hc)}
}

// NewHTTPClient returns the HTTP client searches for token go through. A
// non-empty token is sent as a bearer credential; an empty token makes
// unauthenticated requests.
func NewHTTPClient(token string) *http.Client {
	base := &http.Client{Transport: &headerTransport{base: http.DefaultTransport}}
	if token == "" {
		return base
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	return oauth2.NewClient(ctx, ts)
}

func (c *realClient) SearchRepositories(ctx context.Context, query string, opts *gh.SearchOptions) (*gh.RepositoriesSearchResult, *gh.Response, error) {
	return c.inner.Search.Repositories(ctx, query, opts)
}

// headerTransport pins the content-negotiation headers. go-github defaults
// to the v3 media type.
type headerTransport struct {
	base http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", mediaType)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	return t.base.RoundTrip(req)
}
