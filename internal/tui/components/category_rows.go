package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/tui/styles"
)

// FavoritesRowID marks the favorites row among genre rows
const FavoritesRowID = -1

// Row is one horizontal strip of movie cards
type Row struct {
	ID     int // genre ID, or FavoritesRowID
	Title  string
	Movies []domain.Movie
}

// CategoryRows shows stacked rows of movie cards. j/k moves between rows,
// h/l along a row.
type CategoryRows struct {
	rows []Row
	row  int
	col  []int // cursor per row

	width   int
	height  int
	focused bool

	isFavorite func(id int) bool
}

// NewCategoryRows creates an empty row view
func NewCategoryRows() *CategoryRows {
	return &CategoryRows{
		isFavorite: func(int) bool { return false },
		focused:    true,
	}
}

// SetRows replaces the rows. The selected row is kept by ID.
func (c *CategoryRows) SetRows(rows []Row) {
	selectedID, hadSelection := 0, false
	if r, ok := c.SelectedRow(); ok {
		selectedID, hadSelection = r.ID, true
	}

	oldCols := make(map[int]int, len(c.rows))
	for i, r := range c.rows {
		if i < len(c.col) {
			oldCols[r.ID] = c.col[i]
		}
	}

	c.rows = rows
	c.col = make([]int, len(rows))
	c.row = 0
	for i, r := range rows {
		c.col[i] = min(oldCols[r.ID], max(len(r.Movies)-1, 0))
		if hadSelection && r.ID == selectedID {
			c.row = i
		}
	}
}

func (c *CategoryRows) SetFocused(focused bool)              { c.focused = focused }
func (c *CategoryRows) SetFavoriteFunc(fn func(id int) bool) { c.isFavorite = fn }
func (c *CategoryRows) Len() int                             { return len(c.rows) }

// SetSize sets the available area
func (c *CategoryRows) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// SelectedRow returns the row under the cursor
func (c *CategoryRows) SelectedRow() (Row, bool) {
	if c.row < 0 || c.row >= len(c.rows) {
		return Row{}, false
	}
	return c.rows[c.row], true
}

// SelectedMovie returns the card under the cursor
func (c *CategoryRows) SelectedMovie() (domain.Movie, bool) {
	r, ok := c.SelectedRow()
	if !ok || len(r.Movies) == 0 {
		return domain.Movie{}, false
	}
	return r.Movies[c.col[c.row]], true
}

// Update handles navigation keys
func (c *CategoryRows) Update(msg tea.Msg) (*CategoryRows, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !c.focused || len(c.rows) == 0 {
		return c, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		if c.row < len(c.rows)-1 {
			c.row++
		}
	case "k", "up":
		if c.row > 0 {
			c.row--
		}
	case "l", "right":
		if c.col[c.row] < len(c.rows[c.row].Movies)-1 {
			c.col[c.row]++
		}
	case "h", "left":
		if c.col[c.row] > 0 {
			c.col[c.row]--
		}
	case "g", "home":
		c.row = 0
	case "G", "end":
		c.row = len(c.rows) - 1
	}
	return c, nil
}

// rowHeight is the title line plus a two-line card and its border
const rowHeight = 5

// View renders the visible rows
func (c *CategoryRows) View() string {
	if len(c.rows) == 0 {
		return styles.DimStyle.Render("No categories")
	}

	visible := max(c.height/rowHeight, 1)
	start := 0
	if c.row >= visible {
		start = c.row - visible + 1
	}
	end := min(start+visible, len(c.rows))

	var b strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(c.renderRow(i))
	}
	return b.String()
}

func (c *CategoryRows) renderRow(i int) string {
	r := c.rows[i]
	selectedRow := i == c.row && c.focused

	title := styles.RowTitleStyle.Render(r.Title)
	if selectedRow {
		title += styles.DimStyle.Render(fmt.Sprintf("  %d/%d", c.col[i]+1, len(r.Movies)))
		if r.ID != FavoritesRowID {
			title += styles.DimStyle.Render("  (v view all)")
		}
	}
	if len(r.Movies) == 0 {
		return title + "\n" + styles.DimStyle.Render("  empty") + "\n\n"
	}

	cardWidth := styles.CardStyle.GetWidth() + 2
	perRow := max(c.width/cardWidth, 1)
	first := 0
	if c.col[i] >= perRow {
		first = c.col[i] - perRow + 1
	}
	last := min(first+perRow, len(r.Movies))

	cards := make([]string, 0, last-first)
	for j := first; j < last; j++ {
		cards = append(cards, c.renderCard(r.Movies[j], selectedRow && j == c.col[i]))
	}
	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (c *CategoryRows) renderCard(m domain.Movie, selected bool) string {
	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	inner := style.GetWidth() - 2

	mark := ""
	if c.isFavorite(m.ID) {
		mark = styles.FavoriteMark + " "
	}
	year := "-"
	if y := m.Year(); y > 0 {
		year = fmt.Sprint(y)
	}
	title := styles.Truncate(m.Title, inner-lipgloss.Width(mark))
	return style.Render(mark + styles.TitleStyle.Render(title) + "\n" + styles.DimStyle.Render(year))
}
