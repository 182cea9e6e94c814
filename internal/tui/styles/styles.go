package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Accent     = lipgloss.Color("#01B4E4")
	AccentDark = lipgloss.Color("#0D253F")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Gold       = lipgloss.Color("#F5C518")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(AccentDark).
			Padding(0, 1)
)

// Favorite marker
const FavoriteChar = "♥"

var (
	FavoriteStyle = lipgloss.NewStyle().Foreground(Red)
	FavoriteMark  = FavoriteStyle.Render(FavoriteChar)
	RatingStyle   = lipgloss.NewStyle().Foreground(Gold)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Card styles for category rows
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1).
			Width(22)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Accent).
				Padding(0, 1).
				Width(22)

	RowTitleStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Accent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(1, 2)
)

// Search input styles
var (
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true)

	SearchTextStyle = lipgloss.NewStyle().
			Foreground(White)
)

// Match highlight styles for filter results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(Accent).
					Background(SlateLight).
					Bold(true)
)

// Truncate shortens s to width cells, ending with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Pad pads s with spaces to width cells
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// RowPart is a piece of a list row with an optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}

// RenderListRow renders a list row with a uniform background when selected.
// Each part is styled on its own to avoid ANSI reset codes clearing the
// background midway.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	var b strings.Builder
	visible := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(White)
		default:
			style = style.Foreground(LightGray)
		}
		if selected {
			style = style.Background(SlateLight)
		}
		b.WriteString(style.Render(part.Text))
		visible += lipgloss.Width(part.Text)
	}

	fill := lipgloss.NewStyle()
	if selected {
		fill = fill.Background(SlateLight)
	}
	// 2 cells of margin
	if pad := width - visible - 2; pad > 0 {
		b.WriteString(fill.Render(strings.Repeat(" ", pad)))
	}
	margin := fill.Render(" ")
	return margin + b.String() + margin
}

// RenderHighlighted renders text with the runes at the given byte offsets
// emphasized
func RenderHighlighted(text string, matched []int, selected bool) string {
	if len(matched) == 0 {
		if selected {
			return lipgloss.NewStyle().Foreground(White).Background(SlateLight).Render(text)
		}
		return lipgloss.NewStyle().Foreground(LightGray).Render(text)
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	base := lipgloss.NewStyle().Foreground(LightGray)
	match := MatchHighlightStyle
	if selected {
		base = lipgloss.NewStyle().Foreground(White).Background(SlateLight)
		match = MatchHighlightSelectedStyle
	}

	var b strings.Builder
	for i, r := range text {
		if hit[i] {
			b.WriteString(match.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
