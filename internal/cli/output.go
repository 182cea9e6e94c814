package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/tui/styles"
)

const (
	tabSpacing      = 2
	maxTitleDisplay = 60
)

func newTabWriter(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, tabSpacing, ' ', 0)
}

// printMovies writes one line per movie, marking favorites
func printMovies(out io.Writer, movies []domain.Movie, isFavorite func(id int) bool) error {
	w := newTabWriter(out)
	fmt.Fprintln(w, "\tID\tTITLE\tYEAR")
	for _, m := range movies {
		mark := ""
		if isFavorite != nil && isFavorite(m.ID) {
			mark = styles.FavoriteChar
		}
		year := "-"
		if y := m.Year(); y > 0 {
			year = fmt.Sprint(y)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", mark, m.ID, styles.Truncate(m.Title, maxTitleDisplay), year)
	}
	return w.Flush()
}
