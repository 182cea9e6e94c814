// Package discover drives paginated movie listings: a live or fixed search,
// a genre's full listing, and the home page's category rows.
package discover

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/flicks/internal/domain"
)

// State of a listing session
type State int

const (
	StateIdle State = iota
	StateLoadingInitial
	StateReady
	StateLoadingMore
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingInitial:
		return "loading"
	case StateReady:
		return "ready"
	case StateLoadingMore:
		return "loading more"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Source fetches one page of a listing for a query
type Source interface {
	Page(ctx context.Context, query string, page int) (domain.Page, error)
}

// SearchSource lists title search results for the query
type SearchSource struct {
	Catalog domain.Catalog
}

func (s SearchSource) Page(ctx context.Context, query string, page int) (domain.Page, error) {
	return s.Catalog.SearchMovies(ctx, query, page)
}

// GenreSource lists every movie of one genre. The query only labels the
// session; the genre ID selects the movies.
type GenreSource struct {
	Catalog domain.Catalog
	GenreID int
}

func (s GenreSource) Page(ctx context.Context, _ string, page int) (domain.Page, error) {
	return s.Catalog.DiscoverByGenre(ctx, s.GenreID, page)
}

// Request identifies one page fetch of one session generation
type Request struct {
	Gen   uint64
	Query string
	Page  int
}

// Result is the outcome of fetching a Request
type Result struct {
	Request Request
	Page    domain.Page
	Err     error
}

// Snapshot is a copy of the session state for rendering
type Snapshot struct {
	State   State
	Query   string
	Page    int
	Results []domain.Movie
	HasMore bool
	Error   string
}

func (s Snapshot) LoadingInitial() bool { return s.State == StateLoadingInitial }
func (s Snapshot) LoadingMore() bool    { return s.State == StateLoadingMore }

// Flow is the state machine of one listing session:
//
//	Idle -> LoadingInitial -> Ready -> LoadingMore -> Ready
//	LoadingInitial | LoadingMore -> Error
//
// State transitions issue Requests; the caller fetches them (usually in a
// goroutine) and hands the Result back to Apply. Only the result of the
// request currently in flight is committed, so a slow answer for an old
// query or page never overwrites newer state.
type Flow struct {
	source Source
	logger *slog.Logger

	mu       sync.Mutex
	state    State
	query    string
	page     int
	results  []domain.Movie
	hasMore  bool
	lastErr  string
	gen      uint64
	inflight *Request
	failed   *Request
}

// NewFlow creates an idle flow over source
func NewFlow(source Source, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{source: source, logger: logger}
}

// SetQuery starts a new session for q. An empty query returns the flow to
// Idle; the current query is a no-op. The returned request must be fetched
// when ok is true.
func (f *Flow) SetQuery(q string) (req Request, ok bool) {
	q = strings.TrimSpace(q)

	f.mu.Lock()
	defer f.mu.Unlock()

	if q == f.query && f.state != StateIdle {
		return Request{}, false
	}

	f.gen++
	f.query = q
	f.results = nil
	f.hasMore = false
	f.lastErr = ""
	f.failed = nil
	f.inflight = nil

	if q == "" {
		f.state = StateIdle
		f.page = 0
		return Request{}, false
	}

	f.state = StateLoadingInitial
	f.page = 1
	return f.issue(1), true
}

// LoadMore requests the next page. It is refused unless the flow is Ready,
// more pages exist, and nothing is loading.
func (f *Flow) LoadMore() (req Request, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateReady || !f.hasMore || f.inflight != nil {
		return Request{}, false
	}
	f.state = StateLoadingMore
	return f.issue(f.page + 1), true
}

// Retry reissues the request that failed last
func (f *Flow) Retry() (req Request, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateError || f.failed == nil {
		return Request{}, false
	}
	page := f.failed.Page
	f.failed = nil
	f.lastErr = ""
	if page == 1 {
		f.state = StateLoadingInitial
	} else {
		f.state = StateLoadingMore
	}
	return f.issue(page), true
}

// issue records a new in-flight request. Caller holds mu.
func (f *Flow) issue(page int) Request {
	req := Request{Gen: f.gen, Query: f.query, Page: page}
	f.inflight = &req
	f.logger.Debug("listing request", "query", req.Query, "page", req.Page, "gen", req.Gen)
	return req
}

// Fetch runs req against the source without touching the session state
func (f *Flow) Fetch(ctx context.Context, req Request) Result {
	page, err := f.source.Page(ctx, req.Query, req.Page)
	return Result{Request: req, Page: page, Err: err}
}

// Apply commits res when it answers the request in flight and reports
// whether it did. Stale results are dropped.
//
// A failed fetch leaves the accumulated results and page untouched and
// records a message. A successful first page replaces the results; later
// pages are appended in order.
func (f *Flow) Apply(res Result) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inflight == nil || res.Request != *f.inflight {
		f.logger.Debug("discarding stale listing result",
			"query", res.Request.Query, "page", res.Request.Page, "gen", res.Request.Gen)
		return false
	}
	f.inflight = nil

	if res.Err != nil {
		f.state = StateError
		f.lastErr = ErrorMessage(res.Err)
		req := res.Request
		f.failed = &req
		f.logger.Error("listing fetch failed", "query", f.query, "page", req.Page, "error", res.Err)
		return true
	}

	if res.Request.Page == 1 {
		f.results = append([]domain.Movie(nil), res.Page.Results...)
	} else {
		f.results = append(f.results, res.Page.Results...)
	}
	f.page = res.Request.Page
	f.hasMore = f.page < res.Page.TotalPages
	f.lastErr = ""
	f.state = StateReady
	return true
}

// Run fetches and applies req synchronously
func (f *Flow) Run(ctx context.Context, req Request) error {
	res := f.Fetch(ctx, req)
	f.Apply(res)
	return res.Err
}

// Snapshot returns a copy of the current state
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return Snapshot{
		State:   f.state,
		Query:   f.query,
		Page:    f.page,
		Results: append([]domain.Movie(nil), f.results...),
		HasMore: f.hasMore,
		Error:   f.lastErr,
	}
}

// Query returns the current query
func (f *Flow) Query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}

// ErrorMessage turns a fetch error into the text shown to the user.
// It is never empty.
func ErrorMessage(err error) string {
	if errors.Is(err, domain.ErrNotConfigured) {
		return "No catalog API key configured. Set TMDB_API_KEY or catalog.api_key."
	}
	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		return netErr.Error()
	}
	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		return "Error: unexpected response from the catalog"
	}
	if msg := err.Error(); msg != "" {
		return "Error: " + msg
	}
	return "Error: request failed"
}
