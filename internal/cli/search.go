package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/flicks/internal/discover"
	"github.com/spf13/cobra"
)

const defaultPages = 1

// newSearchCmd creates the search command
func newSearchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog by title",
		Long:  `Search for movies by title. Use --pages to load more than the first page of results.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := cmd.Flags().GetInt("pages")
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			flow := discover.NewFlow(discover.SearchSource{Catalog: app.Catalog}, app.Logger)
			return runListing(cmd, app, flow, query, pages)
		},
	}
	cmd.Flags().IntP("pages", "p", defaultPages, "Number of result pages to load")
	return cmd
}

func newGenresCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List catalog genres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			genres, err := app.Catalog.Genres(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load genres: %w", err)
			}

			w := newTabWriter(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME")
			for _, g := range genres {
				fmt.Fprintf(w, "%d\t%s\n", g.ID, g.Name)
			}
			return w.Flush()
		},
	}
}

func newGenreCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genre <name>",
		Short: "List popular movies in a genre",
		Long: `List the movies of a genre, most popular first. The genre is matched
by name, so "scifi" finds "Science Fiction".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, err := cmd.Flags().GetInt("pages")
			if err != nil {
				return err
			}

			genres, err := app.Catalog.Genres(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load genres: %w", err)
			}
			genre, err := discover.ResolveGenre(genres, strings.Join(args, " "))
			if err != nil {
				return err
			}

			source := discover.GenreSource{Catalog: app.Catalog, GenreID: genre.ID}
			flow := discover.NewFlow(source, app.Logger)
			return runListing(cmd, app, flow, genre.Name, pages)
		},
	}
	cmd.Flags().IntP("pages", "p", defaultPages, "Number of result pages to load")
	return cmd
}

// runListing loads up to pages pages of a flow and prints the results
func runListing(cmd *cobra.Command, app *App, flow *discover.Flow, query string, pages int) error {
	ctx := cmd.Context()
	pages = max(pages, 1)

	req, ok := flow.SetQuery(query)
	if !ok {
		return errors.New("query must not be empty")
	}
	if err := flow.Run(ctx, req); err != nil {
		return errors.New(discover.ErrorMessage(err))
	}
	for loaded := 1; loaded < pages; loaded++ {
		req, ok := flow.LoadMore()
		if !ok {
			break
		}
		if err := flow.Run(ctx, req); err != nil {
			// Keep what already loaded
			app.Logger.Warn("stopped loading pages", "page", req.Page, "error", err)
			break
		}
	}

	snap := flow.Snapshot()
	out := cmd.OutOrStdout()
	if len(snap.Results) == 0 {
		fmt.Fprintf(out, "No movies found for %q\n", snap.Query)
		return nil
	}

	if err := printMovies(out, snap.Results, app.Favorites.IsFavorite); err != nil {
		return err
	}
	if snap.HasMore {
		fmt.Fprintf(out, "\nShowing %d results from %d page(s); use --pages %d for more\n",
			len(snap.Results), snap.Page, snap.Page+1)
	}
	return nil
}
