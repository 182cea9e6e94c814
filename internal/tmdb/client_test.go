package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mmcdole/flicks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu        sync.Mutex
	failures  []error
	successes int
}

func (n *recordingNotifier) FetchFailed(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, err)
}

func (n *recordingNotifier) FetchSucceeded() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes++
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recordingNotifier) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	notifier := &recordingNotifier{}
	client := NewClient(server.URL+"/3", "secret", nil, WithNotifier(notifier), WithRateLimit(0))
	return client, notifier
}

func TestClient(t *testing.T) {
	t.Run("Request", func(t *testing.T) {
		t.Run("Appends Credential First Then Params In Order", func(t *testing.T) {
			client, notifier := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/3/search/movie", r.URL.Path)
				assert.Equal(t, "api_key=secret&query=the+batman&page=2&include_adult=false", r.URL.RawQuery)
				w.Write([]byte(`{}`))
			})

			var out any
			err := client.Request(context.Background(), "/search/movie", Params{
				{"query", "the batman"},
				{"page", 2},
				{"include_adult", false},
			}, &out)

			require.NoError(t, err)
			assert.Equal(t, 1, notifier.successes)
			assert.Empty(t, notifier.failures)
		})

		t.Run("Returns Body Verbatim", func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"results":[{"id":1,"unexpected":"kept"}],"total_pages":3}`))
			})

			var out any
			require.NoError(t, client.Request(context.Background(), "/discover/movie", nil, &out))

			body, ok := out.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, float64(3), body["total_pages"])
			results := body["results"].([]any)
			assert.Equal(t, "kept", results[0].(map[string]any)["unexpected"])
		})

		t.Run("Non-2xx Is NetworkError", func(t *testing.T) {
			client, notifier := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"status_message":"Invalid API key"}`))
			})

			var out any
			err := client.Request(context.Background(), "/genre/movie/list", nil, &out)

			var netErr *domain.NetworkError
			require.True(t, errors.As(err, &netErr))
			assert.Equal(t, http.StatusUnauthorized, netErr.Status)
			assert.Equal(t, "Unauthorized", netErr.StatusText)
			assert.Equal(t, "Error: 401 Unauthorized", netErr.Error())
			require.Len(t, notifier.failures, 1)
			assert.Zero(t, notifier.successes)
		})

		t.Run("Malformed Body Is ParseError", func(t *testing.T) {
			client, notifier := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"results": [`))
			})

			var out any
			err := client.Request(context.Background(), "/search/movie", nil, &out)

			var parseErr *domain.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "/search/movie", parseErr.Endpoint)
			assert.Len(t, notifier.failures, 1)
		})

		t.Run("Unreachable Server Is NetworkError", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			server.Close()

			client := NewClient(server.URL, "secret", nil)
			var out any
			err := client.Request(context.Background(), "/genre/movie/list", nil, &out)

			var netErr *domain.NetworkError
			require.True(t, errors.As(err, &netErr))
			assert.Zero(t, netErr.Status)
		})

		t.Run("Missing Credential", func(t *testing.T) {
			client := NewClient("http://example.invalid", "", nil)
			var out any
			err := client.Request(context.Background(), "/genre/movie/list", nil, &out)
			assert.ErrorIs(t, err, domain.ErrNotConfigured)
		})

		t.Run("Success Dismisses Notice", func(t *testing.T) {
			var fail atomic.Bool
			fail.Store(true)
			client, notifier := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if fail.Load() {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				w.Write([]byte(`{"genres":[]}`))
			})

			_, err := client.Genres(context.Background())
			require.Error(t, err)
			fail.Store(false)
			_, err = client.Genres(context.Background())
			require.NoError(t, err)

			assert.Len(t, notifier.failures, 1)
			assert.Equal(t, 1, notifier.successes)
		})
	})

	t.Run("SearchMovies", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "batman", r.URL.Query().Get("query"))
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			w.Write([]byte(`{
				"page": 1,
				"total_pages": 5,
				"total_results": 97,
				"results": [
					{"id": 268, "title": "Batman", "poster_path": "/b.jpg", "release_date": "1989-06-23"},
					{"id": 414906, "title": "The Batman", "poster_path": null, "release_date": "2022-03-01"}
				]
			}`))
		})

		page, err := client.SearchMovies(context.Background(), "batman", 0)
		require.NoError(t, err)

		assert.Equal(t, 1, page.Number)
		assert.Equal(t, 5, page.TotalPages)
		assert.True(t, page.HasMore())
		require.Len(t, page.Results, 2)
		assert.Equal(t, domain.Movie{ID: 268, Title: "Batman", PosterPath: "/b.jpg", ReleaseDate: "1989-06-23"}, page.Results[0])
		assert.Empty(t, page.Results[1].PosterPath)
	})

	t.Run("DiscoverByGenre", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/3/discover/movie", r.URL.Path)
			assert.Equal(t, "api_key=secret&with_genres=28&page=3", r.URL.RawQuery)
			w.Write([]byte(`{"page":3,"total_pages":3,"results":[{"id":1,"title":"A"}]}`))
		})

		page, err := client.DiscoverByGenre(context.Background(), 28, 3)
		require.NoError(t, err)
		assert.False(t, page.HasMore())
	})

	t.Run("Movie", func(t *testing.T) {
		t.Run("Maps Details", func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/3/movie/603", r.URL.Path)
				w.Write([]byte(`{
					"id": 603,
					"title": "The Matrix",
					"overview": "Set in the 22nd century...",
					"tagline": "Welcome to the Real World.",
					"release_date": "1999-03-30",
					"genres": [{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}],
					"poster_path": "/m.jpg",
					"backdrop_path": "/bd.jpg",
					"vote_average": 8.2,
					"runtime": 136,
					"budget": 63000000,
					"revenue": 463517383,
					"production_companies": [{"id": 79, "name": "Village Roadshow Pictures", "origin_country": "US"}],
					"homepage": "http://www.warnerbros.com/matrix",
					"spoken_languages": [{"iso_639_1": "en", "name": "English", "english_name": "English"}]
				}`))
			})

			details, err := client.Movie(context.Background(), 603)
			require.NoError(t, err)

			assert.Equal(t, "The Matrix", details.Title)
			assert.Equal(t, "Action, Science Fiction", details.GenreNames())
			assert.Equal(t, "2h 16m", details.FormattedRuntime())
			assert.Equal(t, int64(463517383), details.Revenue)
			require.Len(t, details.ProductionCompanies, 1)
			assert.Equal(t, "US", details.ProductionCompanies[0].OriginCountry)
			require.Len(t, details.SpokenLanguages, 1)
			assert.Equal(t, "en", details.SpokenLanguages[0].Code)
			assert.Equal(t, domain.Movie{ID: 603, Title: "The Matrix", PosterPath: "/m.jpg", ReleaseDate: "1999-03-30"}, details.Favorite())
		})

		t.Run("Not Found", func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			})

			_, err := client.Movie(context.Background(), 1)
			assert.ErrorIs(t, err, domain.ErrMovieNotFound)

			var netErr *domain.NetworkError
			assert.True(t, errors.As(err, &netErr))
		})
	})

	t.Run("PosterURL", func(t *testing.T) {
		client := NewClient("http://example.invalid", "k", nil, WithImageBaseURL("https://img.test/w500/"))
		assert.Equal(t, "https://img.test/w500/p.jpg", client.PosterURL("/p.jpg"))
		assert.Empty(t, client.PosterURL(""))
	})
}
