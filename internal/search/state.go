package search

import (
	"github.com/stahnma/gh-search/internal/github"
)

// Status is the phase of the request lifecycle.
type Status int

const (
	// StatusIdle means there is no effective query and nothing to show.
	StatusIdle Status = iota
	// StatusLoading means a request is in flight.
	StatusLoading
	// StatusSuccess means the last request returned results, possibly none.
	StatusSuccess
	// StatusError means the last request failed.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// State is a snapshot of the controller, safe to hand to other goroutines.
type State struct {
	Filters    github.Filters
	Query      string
	Status     Status
	Items      []github.Repo
	Total      int
	Incomplete bool
	Err        string
	TotalPages int

	// ItemsPage is the page Items were fetched for. It trails Filters.Page
	// while an edit waits out the quiet period.
	ItemsPage int

	// Version increases with every published change. Subscribers drop
	// snapshots older than the one they already hold.
	Version uint64
}

// Empty reports a completed search that matched nothing. It is distinct
// from the idle state, which has no query at all.
func (s State) Empty() bool {
	return s.Status == StatusSuccess && len(s.Items) == 0
}

// Capped reports whether the total exceeds what the API lets a client page
// through.
func (s State) Capped() bool {
	return s.Total > MaxResults
}
