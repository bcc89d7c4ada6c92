package github

import (
	"time"

	gh "github.com/google/go-github/v68/github"
)

// Owner is the account that owns a repository.
type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// Repo is one repository returned by a search.
type Repo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description,omitempty"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	OpenIssues  int       `json:"open_issues_count"`
	Language    string    `json:"language,omitempty"`
	Owner       Owner     `json:"owner"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Result is one page of repository search results.
type Result struct {
	Items      []Repo `json:"items"`
	TotalCount int    `json:"total_count"`
	Incomplete bool   `json:"incomplete_results"`
}

func newResult(r *gh.RepositoriesSearchResult) *Result {
	res := &Result{
		Items:      make([]Repo, 0, len(r.Repositories)),
		TotalCount: r.GetTotal(),
		Incomplete: r.GetIncompleteResults(),
	}
	for _, repo := range r.Repositories {
		if repo == nil {
			continue
		}
		res.Items = append(res.Items, newRepo(repo))
	}
	return res
}

func newRepo(r *gh.Repository) Repo {
	owner := r.GetOwner()
	return Repo{
		ID:          r.GetID(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		HTMLURL:     r.GetHTMLURL(),
		Description: r.GetDescription(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		OpenIssues:  r.GetOpenIssuesCount(),
		Language:    r.GetLanguage(),
		Owner: Owner{
			Login:     owner.GetLogin(),
			AvatarURL: owner.GetAvatarURL(),
			HTMLURL:   owner.GetHTMLURL(),
		},
		UpdatedAt: r.GetUpdatedAt().Time,
	}
}
