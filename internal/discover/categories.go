package discover

import (
	"context"
	"fmt"

	"github.com/mmcdole/flicks/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultCategoryLimit is the number of movies kept per category row
	DefaultCategoryLimit = 10

	maxConcurrentGenres = 4
)

// LoadCategories builds one category row per catalog genre, in genre order,
// each holding at most limit movies from the genre's first page.
// Any failed fetch fails the whole listing.
func LoadCategories(ctx context.Context, catalog domain.Catalog, limit int) ([]domain.Category, error) {
	if limit <= 0 {
		limit = DefaultCategoryLimit
	}

	genres, err := catalog.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}

	categories := make([]domain.Category, len(genres))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentGenres)

	for i, genre := range genres {
		g.Go(func() error {
			page, err := catalog.DiscoverByGenre(gctx, genre.ID, 1)
			if err != nil {
				return fmt.Errorf("failed to load %s movies: %w", genre.Name, err)
			}
			movies := page.Results
			if len(movies) > limit {
				movies = movies[:limit]
			}
			categories[i] = domain.Category{ID: genre.ID, Name: genre.Name, Movies: movies}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return categories, nil
}
