package discover

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/mmcdole/flicks/internal/domain"
	mock_domain "github.com/mmcdole/flicks/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func movies(prefix string, n int) []domain.Movie {
	out := make([]domain.Movie, n)
	for i := range out {
		out[i] = domain.Movie{ID: i + 1, Title: fmt.Sprintf("%s %d", prefix, i+1)}
	}
	return out
}

func page(number, total int, results []domain.Movie) domain.Page {
	return domain.Page{Number: number, TotalPages: total, Results: results}
}

func newSearchFlow(t *testing.T) (*Flow, *mock_domain.MockCatalog) {
	t.Helper()
	ctrl := gomock.NewController(t)
	catalog := mock_domain.NewMockCatalog(ctrl)
	return NewFlow(SearchSource{Catalog: catalog}, nil), catalog
}

func TestFlow_SearchScenario(t *testing.T) {
	flow, catalog := newSearchFlow(t)
	ctx := context.Background()

	batman1 := movies("Batman", 20)
	batman2 := movies("Batman p2", 20)
	superman1 := movies("Superman", 7)

	catalog.EXPECT().SearchMovies(gomock.Any(), "batman", 1).Return(page(1, 5, batman1), nil)
	catalog.EXPECT().SearchMovies(gomock.Any(), "batman", 2).Return(page(2, 5, batman2), nil)
	catalog.EXPECT().SearchMovies(gomock.Any(), "superman", 1).Return(page(1, 1, superman1), nil)

	req, ok := flow.SetQuery("batman")
	require.True(t, ok)
	assert.Equal(t, StateLoadingInitial, flow.Snapshot().State)
	require.NoError(t, flow.Run(ctx, req))

	snap := flow.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.True(t, snap.HasMore)
	assert.Len(t, snap.Results, 20)

	req, ok = flow.LoadMore()
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)
	assert.True(t, flow.Snapshot().LoadingMore())
	require.NoError(t, flow.Run(ctx, req))

	snap = flow.Snapshot()
	assert.Len(t, snap.Results, len(batman1)+len(batman2))
	assert.Equal(t, 2, snap.Page)

	req, ok = flow.SetQuery("superman")
	require.True(t, ok)
	assert.Empty(t, flow.Snapshot().Results, "new query resets results")
	require.NoError(t, flow.Run(ctx, req))

	snap = flow.Snapshot()
	assert.Equal(t, superman1, snap.Results)
	assert.False(t, snap.HasMore)
	assert.Equal(t, "superman", snap.Query)
}

func TestFlow_PagesConcatenate(t *testing.T) {
	flow, catalog := newSearchFlow(t)
	ctx := context.Background()

	pages := [][]domain.Movie{movies("a", 3), movies("b", 3), movies("c", 2)}
	for i, results := range pages {
		catalog.EXPECT().SearchMovies(gomock.Any(), "alien", i+1).Return(page(i+1, 3, results), nil)
	}

	req, _ := flow.SetQuery("alien")
	require.NoError(t, flow.Run(ctx, req))
	assert.True(t, flow.Snapshot().HasMore)

	req, ok := flow.LoadMore()
	require.True(t, ok)
	require.NoError(t, flow.Run(ctx, req))
	assert.True(t, flow.Snapshot().HasMore)

	req, ok = flow.LoadMore()
	require.True(t, ok)
	require.NoError(t, flow.Run(ctx, req))

	snap := flow.Snapshot()
	assert.False(t, snap.HasMore)
	var want []domain.Movie
	for _, p := range pages {
		want = append(want, p...)
	}
	assert.Equal(t, want, snap.Results)

	_, ok = flow.LoadMore()
	assert.False(t, ok, "no pages left")
}

func TestFlow_StaleResultDiscarded(t *testing.T) {
	flow := NewFlow(SearchSource{}, nil)

	reqA, _ := flow.SetQuery("A")
	reqB, _ := flow.SetQuery("B")

	resultsB := movies("B", 2)
	assert.True(t, flow.Apply(Result{Request: reqB, Page: page(1, 1, resultsB)}))

	// A resolves late
	assert.False(t, flow.Apply(Result{Request: reqA, Page: page(1, 1, movies("A", 5))}))

	snap := flow.Snapshot()
	assert.Equal(t, "B", snap.Query)
	assert.Equal(t, resultsB, snap.Results)
}

func TestFlow_StaleErrorDiscarded(t *testing.T) {
	flow := NewFlow(SearchSource{}, nil)

	reqA, _ := flow.SetQuery("A")
	reqB, _ := flow.SetQuery("B")

	assert.False(t, flow.Apply(Result{Request: reqA, Err: errors.New("boom")}))
	assert.Equal(t, StateLoadingInitial, flow.Snapshot().State)
	assert.True(t, flow.Apply(Result{Request: reqB, Page: page(1, 1, nil)}))
	assert.Equal(t, StateReady, flow.Snapshot().State)
}

func TestFlow_SameQueryAfterReturnIsNewGeneration(t *testing.T) {
	flow := NewFlow(SearchSource{}, nil)

	first, _ := flow.SetQuery("A")
	flow.SetQuery("B")
	second, ok := flow.SetQuery("A")
	require.True(t, ok)

	assert.NotEqual(t, first, second)
	assert.False(t, flow.Apply(Result{Request: first, Page: page(1, 1, movies("old", 1))}))
	assert.True(t, flow.Apply(Result{Request: second, Page: page(1, 1, movies("new", 1))}))
}

func TestFlow_ErrorLeavesResultsUnchanged(t *testing.T) {
	flow, catalog := newSearchFlow(t)
	ctx := context.Background()

	first := movies("Matrix", 4)
	netErr := &domain.NetworkError{Status: 503, StatusText: "Service Unavailable"}
	catalog.EXPECT().SearchMovies(gomock.Any(), "matrix", 1).Return(page(1, 3, first), nil)
	catalog.EXPECT().SearchMovies(gomock.Any(), "matrix", 2).Return(domain.Page{}, netErr)

	req, _ := flow.SetQuery("matrix")
	require.NoError(t, flow.Run(ctx, req))

	req, ok := flow.LoadMore()
	require.True(t, ok)
	err := flow.Run(ctx, req)
	assert.ErrorAs(t, err, &netErr)

	snap := flow.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Equal(t, first, snap.Results)
	assert.Equal(t, 1, snap.Page)
	assert.Equal(t, "Error: 503 Service Unavailable", snap.Error)
	assert.False(t, snap.LoadingInitial())
	assert.False(t, snap.LoadingMore())
}

func TestFlow_Retry(t *testing.T) {
	flow, catalog := newSearchFlow(t)
	ctx := context.Background()

	gomock.InOrder(
		catalog.EXPECT().SearchMovies(gomock.Any(), "heat", 1).Return(domain.Page{}, &domain.NetworkError{Status: 500, StatusText: "Internal Server Error"}),
		catalog.EXPECT().SearchMovies(gomock.Any(), "heat", 1).Return(page(1, 1, movies("Heat", 1)), nil),
	)

	_, ok := flow.Retry()
	assert.False(t, ok, "nothing failed yet")

	req, _ := flow.SetQuery("heat")
	require.Error(t, flow.Run(ctx, req))
	assert.NotEmpty(t, flow.Snapshot().Error)

	req, ok = flow.Retry()
	require.True(t, ok)
	assert.Equal(t, 1, req.Page)
	require.NoError(t, flow.Run(ctx, req))

	snap := flow.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Empty(t, snap.Error)
	assert.Len(t, snap.Results, 1)
}

func TestFlow_LoadMoreRefused(t *testing.T) {
	flow := NewFlow(SearchSource{}, nil)

	_, ok := flow.LoadMore()
	assert.False(t, ok, "idle")

	req, _ := flow.SetQuery("x")
	_, ok = flow.LoadMore()
	assert.False(t, ok, "initial load in flight")

	flow.Apply(Result{Request: req, Page: page(1, 2, movies("x", 1))})
	next, ok := flow.LoadMore()
	require.True(t, ok)

	_, ok = flow.LoadMore()
	assert.False(t, ok, "already loading more")

	flow.Apply(Result{Request: next, Page: page(2, 2, movies("y", 1))})
	_, ok = flow.LoadMore()
	assert.False(t, ok, "last page loaded")
}

func TestFlow_SetQuery(t *testing.T) {
	flow := NewFlow(SearchSource{}, nil)

	_, ok := flow.SetQuery("   ")
	assert.False(t, ok)
	assert.Equal(t, StateIdle, flow.Snapshot().State)

	req, ok := flow.SetQuery("  dune ")
	require.True(t, ok)
	assert.Equal(t, "dune", req.Query)

	_, ok = flow.SetQuery("dune")
	assert.False(t, ok, "same query is a no-op")

	flow.Apply(Result{Request: req, Page: page(1, 1, movies("Dune", 2))})
	_, ok = flow.SetQuery("")
	assert.False(t, ok)

	snap := flow.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Results)
	assert.Empty(t, snap.Query)
}

func TestFlow_GenreSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mock_domain.NewMockCatalog(ctrl)
	catalog.EXPECT().DiscoverByGenre(gomock.Any(), 28, 1).Return(page(1, 40, movies("Action", 20)), nil)

	flow := NewFlow(GenreSource{Catalog: catalog, GenreID: 28}, nil)
	req, ok := flow.SetQuery("Action")
	require.True(t, ok)
	require.NoError(t, flow.Run(context.Background(), req))

	snap := flow.Snapshot()
	assert.Len(t, snap.Results, 20)
	assert.True(t, snap.HasMore)
}

func TestFlow_SnapshotIsCopy(t *testing.T) {
	flow := NewFlow(SearchSource{}, nil)
	req, _ := flow.SetQuery("q")
	flow.Apply(Result{Request: req, Page: page(1, 1, movies("q", 2))})

	snap := flow.Snapshot()
	snap.Results[0].Title = "changed"
	assert.Equal(t, "q 1", flow.Snapshot().Results[0].Title)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"network", &domain.NetworkError{Status: 401, StatusText: "Unauthorized"}, "Error: 401 Unauthorized"},
		{"parse", &domain.ParseError{Endpoint: "/x", Err: errors.New("eof")}, "Error: unexpected response from the catalog"},
		{"not configured", domain.ErrNotConfigured, "No catalog API key configured. Set TMDB_API_KEY or catalog.api_key."},
		{"other", errors.New("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}
