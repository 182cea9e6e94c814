package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/flicks/internal/tui/components"
	"github.com/mmcdole/flicks/internal/tui/styles"
)

const appName = "flicks"

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	contentHeight := max(m.Height-ChromeHeight, 1)

	var body string
	switch m.Screen() {
	case ScreenHome:
		body = m.renderHome()
	case ScreenGenre:
		body = m.genreList.View()
	case ScreenDetail:
		body = m.detail.View()
	case ScreenFavorites:
		body = lipgloss.JoinVertical(lipgloss.Left, m.favFilter.View(), m.favList.View())
	}

	body = lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(body)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		"",
		body,
		m.renderFooter(),
	)
}

// renderHeader renders the app name with the search box or breadcrumb
func (m Model) renderHeader() string {
	name := styles.TitleStyle.Render(appName)

	var right string
	switch m.Screen() {
	case ScreenHome:
		right = m.searchInput.View()
	case ScreenGenre:
		right = styles.AccentStyle.Render("Genre › " + m.genreList.Title())
	case ScreenDetail:
		title := m.detailOf.Title
		if d, ok := m.detail.Details(); ok {
			title = d.Title
		}
		right = styles.AccentStyle.Render("Movie › " + title)
	case ScreenFavorites:
		right = styles.AccentStyle.Render(favoritesRowTitle)
	}

	return lipgloss.NewStyle().MaxWidth(m.Width).Render(name + "  " + right)
}

func (m Model) renderHome() string {
	if m.searchFlow.Query() != "" {
		return m.searchList.View()
	}

	if m.rows.Len() == 0 {
		switch {
		case m.loadingRows:
			return styles.DimStyle.Render(components.Spinner(m.SpinnerFrame) + " Loading categories...")
		case m.rowsErr != "":
			return styles.ErrorStyle.Render(m.rowsErr) + "\n" + styles.DimStyle.Render("press r to retry")
		}
	}

	view := m.rows.View()
	if m.rowsErr != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, styles.ErrorStyle.Render(m.rowsErr), view)
	}
	return view
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	} else if m.Screen() == ScreenHome && m.loadingRows && m.rows.Len() > 0 {
		left = components.Spinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Refreshing...")
	}

	right := styles.HelpKeyStyle.Render("?") + styles.HelpDescStyle.Render(" help")

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	bindings := Keys.HelpBindings()
	half := (len(bindings) + 1) / 2

	column := func(start, end int) string {
		var b strings.Builder
		for _, kb := range bindings[start:end] {
			h := kb.Help()
			b.WriteString(styles.HelpKeyStyle.Render(styles.Pad(h.Key, 8)))
			b.WriteString(styles.HelpDescStyle.Render(h.Desc))
			b.WriteString("\n")
		}
		return strings.TrimSuffix(b.String(), "\n")
	}

	cols := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(30).Render(column(0, half)),
		column(half, len(bindings)),
	)
	help := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Keys"),
		"",
		cols,
		"",
		styles.DimStyle.Render("Press ? or esc to return..."),
	)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := max(m.Height-ChromeHeight, 1)
	m.searchInput.Width = max(m.Width-len(appName)-6, 10)
	m.favFilter.Width = max(m.Width-4, 10)

	m.searchList.SetSize(m.Width, contentHeight)
	m.rows.SetSize(m.Width, contentHeight)
	m.genreList.SetSize(m.Width, contentHeight)
	m.detail.SetSize(m.Width, contentHeight)
	m.favList.SetSize(m.Width, contentHeight-1)
}
