package domain

import "context"

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go

// Catalog is the read-only remote movie catalog.
// Implemented by the TMDB client; every call is an independent request.
type Catalog interface {
	// SearchMovies returns one page of title search results
	SearchMovies(ctx context.Context, query string, page int) (Page, error)

	// Genres returns the movie genre list
	Genres(ctx context.Context) ([]Genre, error)

	// DiscoverByGenre returns one page of movies tagged with the genre
	DiscoverByGenre(ctx context.Context, genreID, page int) (Page, error)

	// Movie returns the full record of a single movie
	Movie(ctx context.Context, id int) (MovieDetails, error)
}

// Favorites is the favorites store as seen by presentation surfaces
type Favorites interface {
	List() []Movie
	IsFavorite(id int) bool
	Toggle(movie Movie) (bool, error)
}

// Notifier receives user-visible notices about catalog fetches
type Notifier interface {
	// FetchFailed is called after any failed catalog request
	FetchFailed(err error)

	// FetchSucceeded dismisses a pending failure notice
	FetchSucceeded()
}

// NopNotifier discards notices (for tests and batch use)
type NopNotifier struct{}

func (NopNotifier) FetchFailed(error) {}
func (NopNotifier) FetchSucceeded()   {}
