package tui

import (
	"time"

	"github.com/mmcdole/flicks/internal/discover"
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/notify"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// CategoriesLoadedMsg carries the home page category rows
type CategoriesLoadedMsg struct {
	Categories []domain.Category
	Err        error
}

// ListingKind identifies which flow a listing result belongs to
type ListingKind int

const (
	ListingSearch ListingKind = iota
	ListingGenre
)

// ListingMsg carries the result of one flow page fetch. Flow is the flow
// instance the request was issued by.
type ListingMsg struct {
	Kind   ListingKind
	Flow   *discover.Flow
	Result discover.Result
}

// DetailsLoadedMsg carries a movie's full record
type DetailsLoadedMsg struct {
	ID      int
	Details domain.MovieDetails
	Err     error
}

// FavoriteToggledMsg reports the outcome of a favorite toggle
type FavoriteToggledMsg struct {
	Movie domain.Movie
	Added bool
	Err   error
}

// FavoritesChangedMsg signals that the favorites collection changed
type FavoritesChangedMsg struct {
	Topic notify.Topic
}

// NoticeMsg carries a catalog fetch notice
type NoticeMsg struct {
	Notice Notice
}

// debounceMsg fires when the search input may have settled
type debounceMsg struct {
	At time.Time
}

// TickMsg drives the spinner
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
