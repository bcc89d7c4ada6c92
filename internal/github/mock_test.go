package github

import (
	"context"
	"net/http"
	"time"

	gh "github.com/google/go-github/v68/github"
)

// mockClient implements Client for testing.
type mockClient struct {
	searchRepositoriesFn func(ctx context.Context, query string, opts *gh.SearchOptions) (*gh.RepositoriesSearchResult, *gh.Response, error)
}

func (m *mockClient) SearchRepositories(ctx context.Context, query string, opts *gh.SearchOptions) (*gh.RepositoriesSearchResult, *gh.Response, error) {
	return m.searchRepositoriesFn(ctx, query, opts)
}

// emptyResponse returns a *gh.Response for a successful call.
func emptyResponse() *gh.Response {
	return &gh.Response{
		Response: &http.Response{StatusCode: 200},
	}
}

// makeRepository builds a search hit for owner/name.
func makeRepository(id int64, owner, name string, stars int) *gh.Repository {
	updated := gh.Timestamp{Time: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)}
	return &gh.Repository{
		ID:              gh.Ptr(id),
		Name:            gh.Ptr(name),
		FullName:        gh.Ptr(owner + "/" + name),
		HTMLURL:         gh.Ptr("https://github.com/" + owner + "/" + name),
		StargazersCount: gh.Ptr(stars),
		ForksCount:      gh.Ptr(stars / 10),
		OpenIssuesCount: gh.Ptr(3),
		UpdatedAt:       &updated,
		Owner: &gh.User{
			Login:     gh.Ptr(owner),
			AvatarURL: gh.Ptr("https://avatars.githubusercontent.com/" + owner),
			HTMLURL:   gh.Ptr("https://github.com/" + owner),
		},
	}
}

// searchResult wraps repositories in a search response body.
func searchResult(total int, repos ...*gh.Repository) *gh.RepositoriesSearchResult {
	return &gh.RepositoriesSearchResult{
		Total:             gh.Ptr(total),
		IncompleteResults: gh.Ptr(false),
		Repositories:      repos,
	}
}
