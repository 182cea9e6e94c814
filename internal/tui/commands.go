package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flicks/internal/discover"
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/notify"
)

// Command factories for async operations

// LoadCategoriesCmd loads the home page category rows
func LoadCategoriesCmd(catalog domain.Catalog, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		categories, err := discover.LoadCategories(ctx, catalog, limit)
		return CategoriesLoadedMsg{Categories: categories, Err: err}
	}
}

// FetchListingCmd fetches one page for a flow. The result is applied in
// Update, where stale answers are dropped.
func FetchListingCmd(flow *discover.Flow, kind ListingKind, req discover.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return ListingMsg{Kind: kind, Flow: flow, Result: flow.Fetch(ctx, req)}
	}
}

// LoadDetailsCmd loads a movie's full record
func LoadDetailsCmd(catalog domain.Catalog, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		details, err := catalog.Movie(ctx, id)
		return DetailsLoadedMsg{ID: id, Details: details, Err: err}
	}
}

// ToggleFavoriteCmd flips a movie's favorite state
func ToggleFavoriteCmd(favs domain.Favorites, movie domain.Movie) tea.Cmd {
	return func() tea.Msg {
		added, err := favs.Toggle(movie)
		return FavoriteToggledMsg{Movie: movie, Added: added, Err: err}
	}
}

// OpenURLCmd opens url in the browser
func OpenURLCmd(opener URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return ErrMsg{Err: err, Context: "Could not open browser"}
		}
		return StatusMsg{Message: "Opened " + url}
	}
}

// DebounceCmd wakes the program after d to check whether input settled
func DebounceCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return debounceMsg{At: t}
	})
}

// WaitForNoticeCmd waits for the next catalog notice
func WaitForNoticeCmd(ch <-chan Notice) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		notice, ok := <-ch
		if !ok {
			return nil
		}
		return NoticeMsg{Notice: notice}
	}
}

// WaitForChangeCmd waits for the next favorites change signal
func WaitForChangeCmd(ch <-chan notify.Topic) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		topic, ok := <-ch
		if !ok {
			return nil
		}
		return FavoritesChangedMsg{Topic: topic}
	}
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// TickCmd drives the spinner animation
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}
