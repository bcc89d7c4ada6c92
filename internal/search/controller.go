// Package search owns the request lifecycle of an interactive repository
// search: filter state, debounced query derivation, the single in-flight
// request and the state shown to the user.
package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stahnma/gh-search/internal/debounce"
	"github.com/stahnma/gh-search/internal/github"
)

// DefaultQuiet is how long the query and language must be left alone
// before they are searched for.
const DefaultQuiet = 500 * time.Millisecond

// ErrClosed is returned by operations on a closed Controller.
var ErrClosed = errors.New("search: controller closed")

// Options configures a Controller.
type Options struct {
	// Quiet is the debounce period for query and language edits.
	// Zero means DefaultQuiet.
	Quiet time.Duration

	// PerPage is the initial page size. Zero means github.DefaultPerPage.
	PerPage int

	// Logger receives lifecycle events at debug level. Nil means
	// log.Default().
	Logger *log.Logger
}

// Patch is a partial filter update. Nil fields are left unchanged.
type Patch struct {
	Query    *string
	Language *string
	Sort     *github.Sort
	Order    *github.Order
	Page     *int
	PerPage  *int
}

// terms is the debounced part of the filters. gen ties a settled value to
// the edit that produced it.
type terms struct {
	query    string
	language string
	gen      uint64
}

// requestKey is everything that decides which request to send, apart from
// the credential.
type requestKey struct {
	query   string
	page    int
	sort    github.Sort
	order   github.Order
	perPage int
}

// Controller coordinates filter edits, debouncing and searches. At most one
// request is live at a time; outcomes of cancelled or superseded requests
// are dropped. All methods are safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	searcher github.Searcher
	logger   *log.Logger
	debounce *debounce.Debouncer[terms]
	defaults github.Filters

	filters    github.Filters
	credential string
	query      string
	termsGen   uint64
	lastKey    requestKey

	status     Status
	items      []github.Repo
	itemsPage  int
	total      int
	incomplete bool
	errMsg     string

	seq    uint64
	cancel context.CancelFunc

	version uint64
	updates chan State
	closed  bool
}

// New creates an idle Controller that runs searches through searcher.
func New(searcher github.Searcher, opts Options) *Controller {
	quiet := opts.Quiet
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	defaults := github.DefaultFilters()
	if github.ValidPerPage(opts.PerPage) {
		defaults.PerPage = opts.PerPage
	}

	c := &Controller{
		searcher: searcher,
		logger:   logger,
		defaults: defaults,
		filters:  defaults,
		updates:  make(chan State, 1),
	}
	c.lastKey = c.keyLocked()
	c.debounce = debounce.New(quiet, c.settle)
	c.publishLocked()
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Updates delivers the most recent snapshot after every change. Only the
// latest unread snapshot is kept.
func (c *Controller) Updates() <-chan State {
	return c.updates
}

// SetCredential sets the bearer token used by later requests. An empty
// token makes unauthenticated requests. It does not start a search.
func (c *Controller) SetCredential(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credential = strings.TrimSpace(token)
}

// Update applies a partial filter edit. Query and language edits reset the
// page to 1 and are searched once they settle; page, sort, order and page
// size edits take effect immediately.
func (c *Controller) Update(p Patch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	next := c.filters
	textChanged := p.Query != nil || p.Language != nil
	pagingChanged := p.Sort != nil || p.Order != nil || p.Page != nil || p.PerPage != nil

	if p.Query != nil {
		next.Query = *p.Query
	}
	if p.Language != nil {
		next.Language = *p.Language
	}
	if p.Sort != nil {
		next.Sort = *p.Sort
	}
	if p.Order != nil {
		next.Order = *p.Order
	}
	if p.Page != nil {
		next.Page = max(1, *p.Page)
	}
	if p.PerPage != nil {
		next.PerPage = *p.PerPage
		if c.total > 0 && github.ValidPerPage(next.PerPage) {
			next.Page = ClampPage(next.Page, TotalPages(c.total, next.PerPage))
		}
	}
	if textChanged {
		next.Page = 1
	}
	if err := next.Validate(); err != nil {
		return err
	}
	c.filters = next

	if textChanged {
		c.termsGen++
		c.debounce.Set(terms{query: next.Query, language: next.Language, gen: c.termsGen})
	}
	if pagingChanged {
		c.reconcileLocked(false)
	}
	c.publishLocked()
	return nil
}

// SetPage moves to page, clamped to the pages available for the current
// results.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setPageLocked(page)
}

// NextPage moves one page forward, if there is one.
func (c *Controller) NextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setPageLocked(c.filters.Page + 1)
}

// PrevPage moves one page back, if there is one.
func (c *Controller) PrevPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setPageLocked(c.filters.Page - 1)
}

func (c *Controller) setPageLocked(page int) {
	if c.closed {
		return
	}
	page = ClampPage(page, TotalPages(c.total, c.filters.PerPage))
	if page == c.filters.Page {
		return
	}
	c.filters.Page = page
	c.reconcileLocked(false)
	c.publishLocked()
}

// Submit searches for the current filters right away, skipping the rest of
// the quiet period. Unlike automatic triggering it searches again even when
// nothing changed, which makes it the retry action after an error.
func (c *Controller) Submit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.termsGen++
	if t, ok := c.debounce.Flush(); ok {
		c.query = github.EffectiveQuery(t.query, t.language)
	} else {
		c.query = github.EffectiveQuery(c.filters.Query, c.filters.Language)
	}
	c.reconcileLocked(true)
	c.publishLocked()
}

// Clear resets every filter to its default, drops pending edits and any
// in-flight request, and returns to idle. The credential is kept.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.termsGen++
	c.debounce.Cancel()
	c.filters = c.defaults
	c.query = ""
	c.lastKey = c.keyLocked()
	c.resetLocked()
	c.publishLocked()
}

// Close cancels the pending debounce timer and any in-flight request.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.debounce.Stop()
	c.cancelLocked()
}

// settle receives query and language once they have been left alone for
// the quiet period.
func (c *Controller) settle(t terms) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || t.gen != c.termsGen {
		return
	}
	c.query = github.EffectiveQuery(t.query, t.language)
	c.reconcileLocked(false)
	c.publishLocked()
}

// reconcileLocked starts a search when the request key changed since the
// last one (or force is set), or returns to idle when the query is blank.
func (c *Controller) reconcileLocked(force bool) {
	key := c.keyLocked()
	if key == c.lastKey && !force {
		return
	}
	c.lastKey = key
	if strings.TrimSpace(c.query) == "" {
		c.resetLocked()
		return
	}
	c.startLocked()
}

func (c *Controller) keyLocked() requestKey {
	return requestKey{
		query:   c.query,
		page:    c.filters.Page,
		sort:    c.filters.Sort,
		order:   c.filters.Order,
		perPage: c.filters.PerPage,
	}
}

// startLocked cancels the live request, if any, before issuing the next.
func (c *Controller) startLocked() {
	c.cancelLocked()

	c.seq++
	seq := c.seq
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.status = StatusLoading
	c.errMsg = ""

	filters, credential, query := c.filters, c.credential, c.query
	c.logger.Debug("search started", "seq", seq, "q", query, "page", filters.Page,
		"per_page", filters.PerPage, "sort", filters.Sort, "order", filters.Order)

	go func() {
		res, err := c.searcher.Search(ctx, filters, credential, query)
		c.complete(seq, filters.Page, res, err)
	}()
}

func (c *Controller) complete(seq uint64, page int, res *github.Result, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.seq || errors.Is(err, github.ErrCancelled) {
		c.logger.Debug("search outcome dropped", "seq", seq, "current", c.seq)
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = "An unexpected error occurred"
		}
		c.status = StatusError
		c.items = nil
		c.itemsPage = 0
		c.total = 0
		c.incomplete = false
		c.errMsg = msg
		c.logger.Debug("search failed", "seq", seq, "err", msg)
	} else {
		c.status = StatusSuccess
		c.items = res.Items
		if c.items == nil {
			c.items = []github.Repo{}
		}
		c.itemsPage = page
		c.total = res.TotalCount
		c.incomplete = res.Incomplete
		c.errMsg = ""
		c.logger.Debug("search done", "seq", seq, "total", c.total, "items", len(c.items))
	}
	c.publishLocked()
}

// cancelLocked abandons the live request. Bumping seq makes sure its
// outcome is dropped even if the searcher ignores cancellation.
func (c *Controller) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
		c.logger.Debug("search cancelled", "seq", c.seq)
	}
	c.seq++
}

func (c *Controller) resetLocked() {
	c.cancelLocked()
	c.status = StatusIdle
	c.items = nil
	c.itemsPage = 0
	c.total = 0
	c.incomplete = false
	c.errMsg = ""
}

func (c *Controller) snapshotLocked() State {
	return State{
		Filters:    c.filters,
		Query:      c.query,
		Status:     c.status,
		Items:      c.items,
		ItemsPage:  c.itemsPage,
		Total:      c.total,
		Incomplete: c.incomplete,
		Err:        c.errMsg,
		TotalPages: TotalPages(c.total, c.filters.PerPage),
		Version:    c.version,
	}
}

// publishLocked replaces any unread snapshot with the current one. The
// channel is only written under c.mu, so the send never blocks.
func (c *Controller) publishLocked() {
	c.version++
	s := c.snapshotLocked()
	select {
	case <-c.updates:
	default:
	}
	c.updates <- s
}
