package cli

import (
	"context"
	"fmt"

	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/favorites"
	"github.com/spf13/cobra"
)

// newFavoritesCmd creates the favorites command
func newFavoritesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"favs"},
		Short:   "Manage favourite movies",
		Long: `Manage the local list of favourite movies:
  list   - Show favourites in the order they were added
  add    - Add a movie by ID
  remove - Remove a movie by ID
  toggle - Add or remove a movie by ID`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to list if no subcommand
			return listFavorites(cmd, app)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List favourite movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listFavorites(cmd, app)
		},
	}
	listCmd.Flags().StringP("filter", "f", "", "Fuzzy filter on title")

	addCmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a movie to favourites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movie, err := lookupMovie(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Favorites.Add(movie); err != nil {
				return fmt.Errorf("failed to add favorite: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added to favorites: %s\n", movie.DisplayTitle())
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a movie from favourites",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			stored, ok := findFavorite(app.Favorites, id)
			if err := app.Favorites.Remove(id); err != nil {
				return fmt.Errorf("failed to remove favorite: %w", err)
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Movie %d is not in favorites\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed from favorites: %s\n", stored.DisplayTitle())
			return nil
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add or remove a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			// Stored movies toggle without a catalog round trip
			movie, ok := findFavorite(app.Favorites, id)
			if !ok {
				if movie, err = lookupMovie(cmd.Context(), app, args[0]); err != nil {
					return err
				}
			}
			added, err := app.Favorites.Toggle(movie)
			if err != nil {
				return fmt.Errorf("failed to toggle favorite: %w", err)
			}
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "Added to favorites: %s\n", movie.DisplayTitle())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed from favorites: %s\n", movie.DisplayTitle())
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd, addCmd, removeCmd, toggleCmd)
	return cmd
}

func listFavorites(cmd *cobra.Command, app *App) error {
	var query string
	if f := cmd.Flags().Lookup("filter"); f != nil {
		query = f.Value.String()
	}

	all := app.Favorites.List()
	out := cmd.OutOrStdout()
	if len(all) == 0 {
		fmt.Fprintln(out, "No favorites yet")
		return nil
	}

	matches := favorites.Filter(all, query)
	movies := make([]domain.Movie, len(matches))
	for i, m := range matches {
		movies[i] = m.Movie
	}
	if len(movies) == 0 {
		fmt.Fprintf(out, "No favorites match %q\n", query)
		return nil
	}

	if err := printMovies(out, movies, nil); err != nil {
		return err
	}
	n := len(all)
	plural := "s"
	if n == 1 {
		plural = ""
	}
	fmt.Fprintf(out, "\n%d movie%s in favorites\n", n, plural)
	return nil
}

// lookupMovie fetches the record stored for a favorite
func lookupMovie(ctx context.Context, app *App, arg string) (domain.Movie, error) {
	id, err := parseMovieID(arg)
	if err != nil {
		return domain.Movie{}, err
	}
	details, err := app.Catalog.Movie(ctx, id)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("failed to load movie %d: %w", id, err)
	}
	return details.Favorite(), nil
}

func findFavorite(store *favorites.Store, id int) (domain.Movie, bool) {
	for _, m := range store.List() {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Movie{}, false
}
