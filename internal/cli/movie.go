package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/tmdb"
	"github.com/mmcdole/flicks/internal/tui/styles"
	"github.com/spf13/cobra"
)

func newMovieCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "movie <id>",
		Short: "Show a movie's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			details, err := app.Catalog.Movie(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to load movie %d: %w", id, err)
			}
			return printDetails(cmd.OutOrStdout(), details, app.Favorites.IsFavorite(id), app.posterURL(details.PosterPath))
		},
	}
}

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "Open a movie's TMDB page in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}
			url := tmdb.MoviePageURL(id)
			if err := app.Opener.Open(url); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", url)
			return nil
		},
	}
}

func parseMovieID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", s)
	}
	return id, nil
}

func (a *App) posterURL(path string) string {
	if a.PosterURL == nil {
		return ""
	}
	return a.PosterURL(path)
}

func printDetails(out io.Writer, d domain.MovieDetails, favorite bool, posterURL string) error {
	title := d.Title
	if y := (domain.Movie{ReleaseDate: d.ReleaseDate}).Year(); y > 0 {
		title = fmt.Sprintf("%s (%d)", d.Title, y)
	}
	if favorite {
		title += " " + styles.FavoriteChar
	}
	fmt.Fprintln(out, title)
	if d.Tagline != "" {
		fmt.Fprintln(out, d.Tagline)
	}
	fmt.Fprintln(out)

	w := newTabWriter(out)
	field := func(label, value string) {
		if value != "" && value != "-" {
			fmt.Fprintf(w, "%s:\t%s\n", label, value)
		}
	}
	field("Released", domain.FormatDate(d.ReleaseDate))
	field("Runtime", d.FormattedRuntime())
	field("Genres", d.GenreNames())
	if d.VoteAverage > 0 {
		field("Rating", fmt.Sprintf("%.1f/10", d.VoteAverage))
	}
	field("Budget", domain.FormatMoney(d.Budget))
	field("Revenue", domain.FormatMoney(d.Revenue))

	companies := make([]string, len(d.ProductionCompanies))
	for i, c := range d.ProductionCompanies {
		companies[i] = c.Name
	}
	field("Studios", strings.Join(companies, ", "))

	languages := make([]string, len(d.SpokenLanguages))
	for i, l := range d.SpokenLanguages {
		languages[i] = l.EnglishName
	}
	field("Languages", strings.Join(languages, ", "))
	field("Homepage", d.Homepage)
	field("Poster", posterURL)
	if err := w.Flush(); err != nil {
		return err
	}

	if d.Overview != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, d.Overview)
	}
	return nil
}
