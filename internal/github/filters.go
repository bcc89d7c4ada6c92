package github

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	gh "github.com/google/go-github/v68/github"
)

// Sort is the result ordering requested from the search API.
type Sort string

// Supported sort fields. SortBest leaves ordering to GitHub's relevance
// ranking and is never sent on the wire.
const (
	SortBest    Sort = "best"
	SortStars   Sort = "stars"
	SortForks   Sort = "forks"
	SortUpdated Sort = "updated"
)

// Sorts lists the sort fields in the order the UI cycles through them.
var Sorts = []Sort{SortBest, SortStars, SortForks, SortUpdated}

// Label is the human description of the sort field.
func (s Sort) Label() string {
	switch s {
	case SortStars:
		return "Most stars"
	case SortForks:
		return "Most forks"
	case SortUpdated:
		return "Recently updated"
	default:
		return "Most relevant"
	}
}

// Order is the sort direction.
type Order string

// Sort directions.
const (
	OrderDesc Order = "desc"
	OrderAsc  Order = "asc"
)

// Label is the human description of the sort direction.
func (o Order) Label() string {
	if o == OrderAsc {
		return "Low to high"
	}
	return "High to low"
}

// PerPageOptions are the page sizes a search may request.
var PerPageOptions = []int{10, 20, 30, 50}

// DefaultPerPage is the page size of a fresh session.
const DefaultPerPage = 20

// ErrInvalidFilter is returned for sort, order or page size values outside
// the supported sets.
var ErrInvalidFilter = errors.New("invalid search filter")

// Filters is the full filter state of a search session.
type Filters struct {
	Query    string `json:"query"`
	Language string `json:"language"`
	Sort     Sort   `json:"sort"`
	Order    Order  `json:"order"`
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
}

// DefaultFilters returns the filters of a fresh session.
func DefaultFilters() Filters {
	return Filters{
		Sort:    SortBest,
		Order:   OrderDesc,
		Page:    1,
		PerPage: DefaultPerPage,
	}
}

// Validate checks the enumerated fields and the page lower bound.
func (f Filters) Validate() error {
	if _, err := ParseSort(string(f.Sort)); err != nil {
		return err
	}
	if _, err := ParseOrder(string(f.Order)); err != nil {
		return err
	}
	if !ValidPerPage(f.PerPage) {
		return fmt.Errorf("%w: per page %d", ErrInvalidFilter, f.PerPage)
	}
	if f.Page < 1 {
		return fmt.Errorf("%w: page %d", ErrInvalidFilter, f.Page)
	}
	return nil
}

// ParseSort parses a sort field name.
func ParseSort(s string) (Sort, error) {
	sort := Sort(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Sorts, sort) {
		return "", fmt.Errorf("%w: sort %q", ErrInvalidFilter, s)
	}
	return sort, nil
}

// ParseOrder parses a sort direction.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case OrderAsc, OrderDesc:
		return o, nil
	default:
		return "", fmt.Errorf("%w: order %q", ErrInvalidFilter, s)
	}
}

// ValidPerPage reports whether n is one of PerPageOptions.
func ValidPerPage(n int) bool {
	return slices.Contains(PerPageOptions, n)
}

// EffectiveQuery builds the search string sent to the API: the trimmed
// query, followed by a language qualifier when language is not blank.
func EffectiveQuery(query, language string) string {
	q := strings.TrimSpace(query)
	if lang := strings.TrimSpace(language); lang != "" {
		q += " language:" + lang
	}
	return q
}

// searchOptions maps the filters onto go-github's query parameters. Sort
// and order are only sent for an explicit sort field.
func (f Filters) searchOptions() *gh.SearchOptions {
	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{Page: f.Page, PerPage: f.PerPage},
	}
	if f.Sort != SortBest && f.Sort != "" {
		opts.Sort = string(f.Sort)
		opts.Order = string(f.Order)
	}
	return opts
}
