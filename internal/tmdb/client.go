package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/flicks/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Flicks/1.0"
	websiteURL     = "https://www.themoviedb.org"

	// FetchFailedNotice is shown to the user after a failed catalog request
	FetchFailedNotice = "Failed to fetch data! Please try again."
)

// Param is a single query parameter. Values are coerced to strings.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered parameter list; encoding keeps the caller's order
type Params []Param

// Client implements domain.Catalog for The Movie Database v3 API
type Client struct {
	baseURL      string
	apiKey       string
	imageBaseURL string
	httpClient   *http.Client
	limiter      *rate.Limiter
	notifier     domain.Notifier
	logger       *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout (0 disables it)
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRateLimit paces requests to rps per second (0 disables pacing)
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	}
}

// WithNotifier routes fetch notices to n
func WithNotifier(n domain.Notifier) Option {
	return func(c *Client) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithImageBaseURL sets the prefix used by PosterURL
func WithImageBaseURL(u string) Option {
	return func(c *Client) { c.imageBaseURL = strings.TrimRight(u, "/") }
}

// NewClient creates a new TMDB API client
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		imageBaseURL: "https://image.tmdb.org/t/p/w500",
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		notifier: domain.NopNotifier{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request performs a GET against endpointPath with the API credential and
// params appended, and decodes the JSON body into out. Pass a *any to keep
// the body as untyped data.
//
// Non-2xx answers and transport failures return *domain.NetworkError,
// undecodable bodies *domain.ParseError. Every outcome is reported to the
// notifier. Requests are never retried.
func (c *Client) Request(ctx context.Context, endpointPath string, params Params, out any) error {
	err := c.request(ctx, endpointPath, params, out)
	if err != nil {
		c.notifier.FetchFailed(err)
		return err
	}
	c.notifier.FetchSucceeded()
	return nil
}

func (c *Client) request(ctx context.Context, endpointPath string, params Params, out any) error {
	if c.apiKey == "" {
		return domain.ErrNotConfigured
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &domain.NetworkError{StatusText: "request cancelled", Err: err}
		}
	}

	reqURL := c.buildURL(endpointPath, params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "path", endpointPath, "params", params.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "path", endpointPath, "error", err)
		return &domain.NetworkError{StatusText: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusText := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" ")
		c.logger.Error("catalog request error", "path", endpointPath, "status", resp.StatusCode)
		return &domain.NetworkError{Status: resp.StatusCode, StatusText: statusText}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.NetworkError{Status: resp.StatusCode, StatusText: "failed to read response", Err: err}
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("JSON parse error", "path", endpointPath, "error", err, "bodyLen", len(body))
		return &domain.ParseError{Endpoint: endpointPath, Err: err}
	}

	return nil
}

// buildURL appends api_key first, then params in order
func (c *Client) buildURL(endpointPath string, params Params) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString(endpointPath)
	b.WriteString("?api_key=")
	b.WriteString(url.QueryEscape(c.apiKey))
	for _, p := range params {
		b.WriteByte('&')
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(formatValue(p.Value)))
	}
	return b.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// String renders params for logging
func (p Params) String() string {
	parts := make([]string, len(p))
	for i, kv := range p {
		parts[i] = kv.Key + "=" + formatValue(kv.Value)
	}
	return strings.Join(parts, "&")
}

// SearchMovies returns one page of title search results
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (domain.Page, error) {
	var resp pageResponse
	if err := c.Request(ctx, "/search/movie", Params{{"query", query}, {"page", normalizePage(page)}}, &resp); err != nil {
		return domain.Page{}, err
	}
	return mapPage(resp), nil
}

// Genres returns the movie genre list
func (c *Client) Genres(ctx context.Context) ([]domain.Genre, error) {
	var resp genreListResponse
	if err := c.Request(ctx, "/genre/movie/list", nil, &resp); err != nil {
		return nil, err
	}
	return mapGenres(resp.Genres), nil
}

// DiscoverByGenre returns one page of movies tagged with the genre
func (c *Client) DiscoverByGenre(ctx context.Context, genreID, page int) (domain.Page, error) {
	var resp pageResponse
	params := Params{{"with_genres", genreID}, {"page", normalizePage(page)}}
	if err := c.Request(ctx, "/discover/movie", params, &resp); err != nil {
		return domain.Page{}, err
	}
	return mapPage(resp), nil
}

// Movie returns the full record of a single movie
func (c *Client) Movie(ctx context.Context, id int) (domain.MovieDetails, error) {
	var resp movieDetailsResponse
	if err := c.Request(ctx, fmt.Sprintf("/movie/%d", id), nil, &resp); err != nil {
		var netErr *domain.NetworkError
		if errors.As(err, &netErr) && netErr.Status == http.StatusNotFound {
			return domain.MovieDetails{}, fmt.Errorf("%w: %w", domain.ErrMovieNotFound, err)
		}
		return domain.MovieDetails{}, err
	}
	return mapDetails(resp), nil
}

// PosterURL returns the full image URL for a poster path, or "" when the
// movie has no poster
func (c *Client) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.imageBaseURL + posterPath
}

// MoviePageURL returns the movie's page on the TMDB website
func MoviePageURL(id int) string {
	return fmt.Sprintf("%s/movie/%d", websiteURL, id)
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
