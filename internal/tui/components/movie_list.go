package components

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/tui/styles"
)

// Spinner frames for loading animation
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner returns the spinner glyph for a frame counter
func Spinner(frame int) string {
	return spinnerFrames[frame%len(spinnerFrames)]
}

// Layout constants for bordered lists
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// "↑ more" and "↓ more" each take 1 line
	ScrollIndicatorLines = 2
)

// ListRow is a movie with optional match positions for highlighting
type ListRow struct {
	Movie   domain.Movie
	Matches []int
}

// MovieList is a scrollable, bordered list of movies
type MovieList struct {
	title string
	rows  []ListRow

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	isFavorite func(id int) bool

	// Status
	loading      bool
	loadingMore  bool
	errMsg       string
	emptyMsg     string
	footer       string
	spinnerFrame int
}

// NewMovieList creates an empty list with a header title
func NewMovieList(title string) *MovieList {
	return &MovieList{
		title:      title,
		emptyMsg:   "No movies",
		isFavorite: func(int) bool { return false },
		focused:    true,
	}
}

// SetMovies replaces the rows without match highlighting
func (l *MovieList) SetMovies(movies []domain.Movie) {
	rows := make([]ListRow, len(movies))
	for i, m := range movies {
		rows[i] = ListRow{Movie: m}
	}
	l.SetRows(rows)
}

// SetRows replaces the rows, keeping the cursor where it was when possible.
// Appended pages therefore do not move the selection.
func (l *MovieList) SetRows(rows []ListRow) {
	l.rows = rows
	if l.cursor >= len(rows) {
		l.cursor = max(len(rows)-1, 0)
	}
	l.ensureVisible()
}

// ResetCursor moves the selection to the top
func (l *MovieList) ResetCursor() {
	l.cursor = 0
	l.offset = 0
}

func (l *MovieList) SetTitle(title string)                { l.title = title }
func (l *MovieList) Title() string                        { return l.title }
func (l *MovieList) SetFocused(focused bool)              { l.focused = focused }
func (l *MovieList) SetFavoriteFunc(fn func(id int) bool) { l.isFavorite = fn }
func (l *MovieList) SetLoading(loading bool)              { l.loading = loading }
func (l *MovieList) SetLoadingMore(loading bool)          { l.loadingMore = loading }
func (l *MovieList) SetError(msg string)                  { l.errMsg = msg }
func (l *MovieList) SetEmptyMessage(msg string)           { l.emptyMsg = msg }
func (l *MovieList) SetFooter(footer string)              { l.footer = footer }
func (l *MovieList) SetSpinnerFrame(frame int)            { l.spinnerFrame = frame }
func (l *MovieList) Len() int                             { return len(l.rows) }
func (l *MovieList) SelectedIndex() int                   { return l.cursor }

// SetSize sets the outer size including the border
func (l *MovieList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
	l.ensureVisible()
}

// SelectedMovie returns the movie under the cursor
func (l *MovieList) SelectedMovie() (domain.Movie, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) {
		return domain.Movie{}, false
	}
	return l.rows[l.cursor].Movie, true
}

// AtEnd reports whether the last row is selected
func (l *MovieList) AtEnd() bool {
	return len(l.rows) > 0 && l.cursor == len(l.rows)-1
}

// Update handles navigation keys
func (l *MovieList) Update(msg tea.Msg) (*MovieList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !l.focused || len(l.rows) == 0 {
		return l, nil
	}

	count := len(l.rows)
	switch keyMsg.String() {
	case "j", "down":
		if l.cursor < count-1 {
			l.cursor++
		}
	case "k", "up":
		if l.cursor > 0 {
			l.cursor--
		}
	case "g", "home":
		l.cursor = 0
	case "G", "end":
		l.cursor = count - 1
	case "ctrl+d", "pgdown":
		l.cursor = min(l.cursor+max(l.maxVisible/2, 1), count-1)
	case "ctrl+u", "pgup":
		l.cursor = max(l.cursor-max(l.maxVisible/2, 1), 0)
	}
	l.ensureVisible()
	return l, nil
}

// View renders the list inside its border
func (l *MovieList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}
	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(l.width-frameW, 0)).
		Height(max(l.height-frameH, 0)).
		Render(l.renderContent())
}

func (l *MovieList) recalcMaxVisible() {
	// title + indicators + footer
	l.maxVisible = l.height - BorderHeight - ScrollIndicatorLines - 2
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
}

func (l *MovieList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *MovieList) renderContent() string {
	itemWidth := max(l.width-BorderWidth, 10)
	titleLine := styles.AccentStyle.Render(styles.Truncate(l.title, itemWidth))

	if l.loading {
		line := styles.DimStyle.Render(Spinner(l.spinnerFrame) + " Loading...")
		return titleLine + "\n \n" + line
	}
	if l.errMsg != "" && len(l.rows) == 0 {
		line := styles.ErrorStyle.Render(styles.Truncate(l.errMsg, itemWidth))
		hint := styles.DimStyle.Render("press r to retry")
		return titleLine + "\n \n" + line + "\n" + hint
	}
	if len(l.rows) == 0 {
		return titleLine + "\n \n" + styles.DimStyle.Render(styles.Truncate(l.emptyMsg, itemWidth))
	}

	end := min(l.offset+l.maxVisible, len(l.rows))
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(l.rows[i], i == l.cursor && l.focused, itemWidth))
	}

	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	switch {
	case l.loadingMore:
		footer = styles.DimStyle.Render(Spinner(l.spinnerFrame) + " Loading more...")
	case l.errMsg != "":
		footer = styles.ErrorStyle.Render(styles.Truncate(l.errMsg+" (r to retry)", itemWidth))
	case end < len(l.rows):
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if l.footer != "" {
		content += "\n" + styles.DimStyle.Render(l.footer)
	}
	return content
}

func (l *MovieList) renderRow(row ListRow, selected bool, width int) string {
	mark := "  "
	if l.isFavorite(row.Movie.ID) {
		mark = styles.FavoriteChar + " "
	}
	year := ""
	if y := row.Movie.Year(); y > 0 {
		year = " " + strconv.Itoa(y)
	}

	titleWidth := width - 4 - len(mark) - len(year)
	title := styles.Truncate(row.Movie.Title, titleWidth)

	if len(row.Matches) > 0 && title == row.Movie.Title {
		// Highlighting only makes sense when the title is not truncated
		prefix := styles.FavoriteStyle.Render(mark)
		rendered := styles.RenderHighlighted(title, row.Matches, selected)
		return " " + prefix + rendered + styles.DimStyle.Render(year)
	}

	dim := styles.DimGray
	red := styles.Red
	parts := []styles.RowPart{
		{Text: mark, Foreground: &red},
		{Text: title},
		{Text: year, Foreground: &dim},
	}
	return styles.RenderListRow(parts, selected, width)
}
