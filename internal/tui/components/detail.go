package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/tui/styles"
)

// Detail shows the full record of one movie. The header is pinned; the
// body scrolls with j/k.
type Detail struct {
	details   *domain.MovieDetails
	favorite  bool
	posterURL string

	loading      bool
	errMsg       string
	spinnerFrame int

	width      int
	height     int
	offset     int
	maxVisible int
}

// NewDetail creates an empty detail view
func NewDetail() *Detail {
	return &Detail{}
}

// SetDetails shows d and resets scrolling
func (d *Detail) SetDetails(details domain.MovieDetails, posterURL string) {
	d.details = &details
	d.posterURL = posterURL
	d.loading = false
	d.errMsg = ""
	d.offset = 0
}

// Details returns the shown record
func (d *Detail) Details() (domain.MovieDetails, bool) {
	if d.details == nil {
		return domain.MovieDetails{}, false
	}
	return *d.details, true
}

func (d *Detail) SetFavorite(favorite bool) { d.favorite = favorite }
func (d *Detail) SetSpinnerFrame(frame int) { d.spinnerFrame = frame }

// SetLoading shows a spinner until details arrive
func (d *Detail) SetLoading(loading bool) {
	d.loading = loading
	if loading {
		d.errMsg = ""
	}
}

// SetError shows msg instead of the details
func (d *Detail) SetError(msg string) {
	d.loading = false
	d.errMsg = msg
}

// SetSize sets the outer size including the border
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.maxVisible = max(height-BorderHeight-ScrollIndicatorLines-2, 1)
}

// Update scrolls the body
func (d *Detail) Update(msg tea.Msg) (*Detail, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "j", "down":
			d.offset++
		case "k", "up":
			if d.offset > 0 {
				d.offset--
			}
		case "g", "home":
			d.offset = 0
		}
	}
	return d, nil
}

// View renders the component
func (d *Detail) View() string {
	style := styles.ActiveBorder
	contentWidth := max(d.width-3, 10)
	titleLine := styles.AccentStyle.Render("Movie")

	var content string
	switch {
	case d.loading:
		content = titleLine + "\n\n" + styles.DimStyle.Render(Spinner(d.spinnerFrame)+" Loading...")
	case d.errMsg != "":
		content = titleLine + "\n\n" + styles.ErrorStyle.Render(d.errMsg) + "\n" + styles.DimStyle.Render("press r to retry")
	case d.details == nil:
		content = titleLine + "\n\n" + styles.DimStyle.Render("No movie selected")
	default:
		content = d.render(titleLine, contentWidth)
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(d.width-frameW, 0)).
		Height(max(d.height-frameH, 0)).
		Render(content)
}

func (d *Detail) render(titleLine string, width int) string {
	header := d.renderHeader(width)
	headerLines := splitLines(header)
	bodyLines := splitLines(d.renderBody(width))

	available := max(d.maxVisible-len(headerLines), 1)
	maxOffset := max(len(bodyLines)-available, 0)
	d.offset = min(d.offset, maxOffset)
	offset := d.offset
	end := min(offset+available, len(bodyLines))

	up := " "
	if offset > 0 {
		up = styles.DimStyle.Render("↑ more")
	}
	down := " "
	if end < len(bodyLines) {
		down = styles.DimStyle.Render("↓ more")
	}

	parts := []string{titleLine, "", header, up}
	parts = append(parts, bodyLines[offset:end]...)
	parts = append(parts, down)
	return strings.Join(parts, "\n")
}

func (d *Detail) renderHeader(width int) string {
	m := d.details
	var b strings.Builder

	title := m.Title
	if d.favorite {
		title = styles.FavoriteChar + " " + title
	}
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(title, width)))
	b.WriteString("\n")

	if m.Tagline != "" {
		b.WriteString(styles.SubtitleStyle.Italic(true).Render(styles.Truncate(m.Tagline, width)))
		b.WriteString("\n")
	}

	var meta []string
	if m.ReleaseDate != "" {
		meta = append(meta, domain.FormatDate(m.ReleaseDate))
	}
	if rt := m.FormattedRuntime(); rt != "" {
		meta = append(meta, rt)
	}
	if g := m.GenreNames(); g != "" {
		meta = append(meta, g)
	}
	b.WriteString(styles.DimStyle.Render(styles.Truncate(strings.Join(meta, " · "), width)))
	b.WriteString("\n")

	var status []string
	if m.VoteAverage > 0 {
		var ratingStyle lipgloss.Style
		switch {
		case m.VoteAverage >= 7:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Green)
		case m.VoteAverage >= 5:
			ratingStyle = styles.RatingStyle
		default:
			ratingStyle = lipgloss.NewStyle().Foreground(styles.Red)
		}
		status = append(status, ratingStyle.Render(fmt.Sprintf("★ %.1f", m.VoteAverage)))
	}
	if d.favorite {
		status = append(status, styles.FavoriteStyle.Render("In favorites"))
	} else {
		status = append(status, styles.DimStyle.Render("f to add to favorites"))
	}
	b.WriteString(strings.Join(status, "   "))

	return b.String()
}

func (d *Detail) renderBody(width int) string {
	m := d.details
	bodyWidth := min(width-2, 80)

	var lines []string
	if m.Overview != "" {
		lines = append(lines, styles.SubtitleStyle.Render(wordWrap(m.Overview, bodyWidth)), "")
	}

	field := func(label, value string) {
		if value == "" {
			return
		}
		lines = append(lines, styles.DimStyle.Render(styles.Pad(label, 12))+value)
	}

	field("Budget", domain.FormatMoney(m.Budget))
	field("Revenue", domain.FormatMoney(m.Revenue))

	companies := make([]string, len(m.ProductionCompanies))
	for i, c := range m.ProductionCompanies {
		companies[i] = c.Name
	}
	field("Studios", strings.Join(companies, ", "))

	languages := make([]string, len(m.SpokenLanguages))
	for i, l := range m.SpokenLanguages {
		languages[i] = l.EnglishName
		if languages[i] == "" {
			languages[i] = l.Name
		}
	}
	field("Languages", strings.Join(languages, ", "))
	field("Homepage", m.Homepage)
	field("Poster", d.posterURL)

	return strings.Join(lines, "\n")
}

// splitLines splits s into lines, returning nil for an empty string
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// wordWrap wraps text to the given width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		wordLen := lipgloss.Width(word)
		if lineLen > 0 && lineLen+wordLen+1 > width {
			b.WriteString("\n")
			lineLen = 0
		}
		if lineLen > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += wordLen
	}
	return b.String()
}
