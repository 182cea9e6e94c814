package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flicks/internal/debounce"
	"github.com/mmcdole/flicks/internal/discover"
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/favorites"
	"github.com/mmcdole/flicks/internal/notify"
	"github.com/mmcdole/flicks/internal/tmdb"
	"github.com/mmcdole/flicks/internal/tui/components"
	"github.com/mmcdole/flicks/internal/tui/styles"
)

// Screen is one page of the application
type Screen int

const (
	ScreenHome Screen = iota
	ScreenGenre
	ScreenDetail
	ScreenFavorites
)

const (
	// DefaultDebounce is the quiet period before a typed query is searched
	DefaultDebounce = 500 * time.Millisecond

	favoritesRowTitle = "My Favourites"

	// Vertical chrome: header line, blank line, status line
	ChromeHeight = 3
)

// URLOpener opens a web page outside the terminal
type URLOpener interface {
	Open(url string) error
}

// Config wires the model to its services
type Config struct {
	Catalog       domain.Catalog
	Favorites     domain.Favorites
	Notices       <-chan Notice
	Changes       <-chan notify.Topic
	PosterURL     func(path string) string
	Opener        URLOpener // nil disables opening pages
	Debounce      time.Duration
	CategoryLimit int
	Logger        *slog.Logger

	// Now is the clock used for debouncing (time.Now when nil)
	Now func() time.Time
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	catalog   domain.Catalog
	favorites domain.Favorites
	notices   <-chan Notice
	changes   <-chan notify.Topic
	posterURL func(string) string
	opener    URLOpener
	logger    *slog.Logger
	now       func() time.Time

	// Navigation
	screens  []Screen
	showHelp bool

	// Home: search input over either category rows or search results
	searchInput   textinput.Model
	debouncer     *debounce.Debouncer[string]
	searchFlow    *discover.Flow
	searchList    *components.MovieList
	rows          *components.CategoryRows
	categories    []domain.Category
	categoryLimit int
	loadingRows   bool
	rowsErr       string

	// Genre "view all"
	genreFlow *discover.Flow
	genreList *components.MovieList

	// Detail
	detail   *components.Detail
	detailID int
	detailOf domain.Movie

	// Favorites
	favMovies   []domain.Movie
	favIDs      *favoriteSet
	favList     *components.MovieList
	favFilter   textinput.Model
	favFiltered []favorites.Match

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
}

// NewModel creates a new application model
func NewModel(cfg Config) Model {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.PosterURL == nil {
		cfg.PosterURL = func(string) string { return "" }
	}

	si := textinput.New()
	si.Placeholder = "Search for a movie..."
	si.Prompt = "⌕ "
	si.PromptStyle = styles.SearchPromptStyle
	si.TextStyle = styles.SearchTextStyle

	fi := textinput.New()
	fi.Placeholder = "type to filter..."
	fi.Prompt = "/ "
	fi.PromptStyle = styles.SearchPromptStyle
	fi.TextStyle = styles.SearchTextStyle

	m := Model{
		catalog:       cfg.Catalog,
		favorites:     cfg.Favorites,
		notices:       cfg.Notices,
		changes:       cfg.Changes,
		posterURL:     cfg.PosterURL,
		opener:        cfg.Opener,
		logger:        cfg.Logger,
		now:           cfg.Now,
		screens:       []Screen{ScreenHome},
		searchInput:   si,
		debouncer:     debounce.New[string](cfg.Debounce),
		searchFlow:    discover.NewFlow(discover.SearchSource{Catalog: cfg.Catalog}, cfg.Logger),
		searchList:    components.NewMovieList("Results"),
		rows:          components.NewCategoryRows(),
		categoryLimit: cfg.CategoryLimit,
		loadingRows:   true,
		genreList:     components.NewMovieList(""),
		detail:        components.NewDetail(),
		favList:       components.NewMovieList(favoritesRowTitle),
		favFilter:     fi,
		favIDs:        &favoriteSet{},
	}

	isFav := m.favIDs.has
	m.searchList.SetFavoriteFunc(isFav)
	m.rows.SetFavoriteFunc(isFav)
	m.genreList.SetFavoriteFunc(isFav)
	m.favList.SetFavoriteFunc(isFav)
	m.favList.SetEmptyMessage("No favorites yet. Press f on a movie to add it.")

	m.refreshFavorites()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadCategoriesCmd(m.catalog, m.categoryLimit),
		WaitForNoticeCmd(m.notices),
		WaitForChangeCmd(m.changes),
		TickCmd(100*time.Millisecond),
	)
}

// Screen returns the screen on top of the navigation stack
func (m Model) Screen() Screen {
	return m.screens[len(m.screens)-1]
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.searchList.SetSpinnerFrame(m.SpinnerFrame)
		m.genreList.SetSpinnerFrame(m.SpinnerFrame)
		m.detail.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(100 * time.Millisecond)

	case debounceMsg:
		query, ok := m.debouncer.Poll(msg.At)
		if !ok {
			return m, nil
		}
		return m, m.applyQuery(query)

	case CategoriesLoadedMsg:
		m.loadingRows = false
		if msg.Err != nil {
			// Keep whatever rows were shown before
			m.rowsErr = discover.ErrorMessage(msg.Err)
			m.logger.Error("failed to load categories", "error", msg.Err)
			return m, nil
		}
		m.rowsErr = ""
		m.categories = msg.Categories
		m.rebuildRows()
		return m, nil

	case ListingMsg:
		return m.handleListing(msg)

	case DetailsLoadedMsg:
		if msg.ID != m.detailID {
			return m, nil
		}
		if msg.Err != nil {
			m.detail.SetError(discover.ErrorMessage(msg.Err))
			return m, nil
		}
		m.detail.SetDetails(msg.Details, m.posterURL(msg.Details.PosterPath))
		m.detail.SetFavorite(m.favIDs.has(msg.ID))
		return m, nil

	case FavoriteToggledMsg:
		if msg.Err != nil {
			m.StatusMsg = "Could not update favorites: " + msg.Err.Error()
			m.StatusIsErr = true
			return m, ClearStatusCmd(5 * time.Second)
		}
		m.refreshFavorites()
		if msg.Added {
			m.StatusMsg = "Added to favorites: " + msg.Movie.Title
		} else {
			m.StatusMsg = "Removed from favorites: " + msg.Movie.Title
		}
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case FavoritesChangedMsg:
		m.refreshFavorites()
		return m, WaitForChangeCmd(m.changes)

	case NoticeMsg:
		if msg.Notice.Failed {
			m.StatusMsg = tmdb.FetchFailedNotice
			m.StatusIsErr = true
			return m, tea.Batch(WaitForNoticeCmd(m.notices), ClearStatusCmd(5*time.Second))
		}
		if m.StatusMsg == tmdb.FetchFailedNotice {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, WaitForNoticeCmd(m.notices)

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other input messages
	var cmd tea.Cmd
	if m.searchInput.Focused() {
		m.searchInput, cmd = m.searchInput.Update(msg)
	} else if m.favFilter.Focused() {
		m.favFilter, cmd = m.favFilter.Update(msg)
	}
	return m, cmd
}

// handleListing applies a fetched page to its flow. Results from a flow
// that has since been replaced are dropped here; stale pages of the current
// flow are dropped by the flow.
func (m Model) handleListing(msg ListingMsg) (tea.Model, tea.Cmd) {
	switch msg.Kind {
	case ListingSearch:
		if msg.Flow == m.searchFlow && m.searchFlow.Apply(msg.Result) {
			m.syncList(m.searchList, m.searchFlow, fmt.Sprintf("Results for %q", m.searchFlow.Query()))
		}
	case ListingGenre:
		if m.genreFlow != nil && msg.Flow == m.genreFlow && m.genreFlow.Apply(msg.Result) {
			m.syncList(m.genreList, m.genreFlow, m.genreFlow.Query())
		}
	}
	return m, nil
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Text inputs take every other key while focused
	if m.searchInput.Focused() {
		return m.handleSearchInputKey(msg)
	}
	if m.favFilter.Focused() {
		return m.handleFilterInputKey(msg)
	}

	if m.showHelp {
		if key.Matches(msg, Keys.Help, Keys.Escape) || msg.String() == "q" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, Keys.Favorites) && m.Screen() != ScreenFavorites:
		m.push(ScreenFavorites)
		m.favFilter.SetValue("")
		m.applyFavoritesFilter()
		m.favList.ResetCursor()
		return m, nil
	}

	switch m.Screen() {
	case ScreenHome:
		return m.handleHomeKey(msg)
	case ScreenGenre:
		return m.handleGenreKey(msg)
	case ScreenDetail:
		return m.handleDetailKey(msg)
	case ScreenFavorites:
		return m.handleFavoritesKey(msg)
	}
	return m, nil
}

func (m Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.Blur()
		return m, nil
	case "enter", "tab", "down":
		// Search right away instead of waiting for the quiet period
		m.searchInput.Blur()
		m.searchList.SetFocused(true)
		if query, ok := m.debouncer.Flush(); ok {
			return m, m.applyQuery(query)
		}
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if value := m.searchInput.Value(); value != before {
		now := m.now()
		deadline := m.debouncer.Input(value, now)
		return m, tea.Batch(cmd, DebounceCmd(deadline.Sub(now)))
	}
	return m, cmd
}

func (m Model) handleFilterInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.favFilter.SetValue("")
		m.favFilter.Blur()
		m.applyFavoritesFilter()
		return m, nil
	case "enter", "down":
		m.favFilter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.favFilter, cmd = m.favFilter.Update(msg)
	m.applyFavoritesFilter()
	m.favList.ResetCursor()
	return m, cmd
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	searching := m.searchFlow.Query() != ""

	switch {
	case key.Matches(msg, Keys.Search):
		return m, m.searchInput.Focus()

	case key.Matches(msg, Keys.Escape):
		if searching || m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			m.debouncer.Reset()
			return m, m.applyQuery("")
		}
		return m, nil

	case key.Matches(msg, Keys.Retry):
		if searching {
			if req, ok := m.searchFlow.Retry(); ok {
				m.syncList(m.searchList, m.searchFlow, m.searchList.Title())
				return m, FetchListingCmd(m.searchFlow, ListingSearch, req)
			}
			return m, nil
		}
		if m.rowsErr != "" || len(m.categories) == 0 {
			m.loadingRows = true
			m.rowsErr = ""
			return m, LoadCategoriesCmd(m.catalog, m.categoryLimit)
		}
		return m, nil
	}

	if searching {
		return m.handleListKey(msg, m.searchList, m.searchFlow, ListingSearch)
	}

	switch {
	case key.Matches(msg, Keys.Enter):
		if movie, ok := m.rows.SelectedMovie(); ok {
			return m, m.openDetail(movie)
		}
		return m, nil
	case key.Matches(msg, Keys.Favorite):
		if movie, ok := m.rows.SelectedMovie(); ok {
			return m, ToggleFavoriteCmd(m.favorites, movie)
		}
		return m, nil
	case key.Matches(msg, Keys.ViewAll):
		if row, ok := m.rows.SelectedRow(); ok {
			if row.ID == components.FavoritesRowID {
				m.push(ScreenFavorites)
				m.applyFavoritesFilter()
				return m, nil
			}
			return m, m.openGenre(row.ID, row.Title)
		}
		return m, nil
	}

	m.rows, _ = m.rows.Update(msg)
	return m, nil
}

func (m Model) handleGenreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back):
		m.pop()
		return m, nil
	case key.Matches(msg, Keys.Retry):
		if req, ok := m.genreFlow.Retry(); ok {
			m.syncList(m.genreList, m.genreFlow, m.genreList.Title())
			return m, FetchListingCmd(m.genreFlow, ListingGenre, req)
		}
		return m, nil
	}
	return m.handleListKey(msg, m.genreList, m.genreFlow, ListingGenre)
}

// handleListKey drives a flow-backed list. Reaching the last row asks the
// flow for the next page.
func (m Model) handleListKey(msg tea.KeyMsg, list *components.MovieList, flow *discover.Flow, kind ListingKind) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		if movie, ok := list.SelectedMovie(); ok {
			return m, m.openDetail(movie)
		}
		return m, nil
	case key.Matches(msg, Keys.Favorite):
		if movie, ok := list.SelectedMovie(); ok {
			return m, ToggleFavoriteCmd(m.favorites, movie)
		}
		return m, nil
	}

	list.Update(msg)
	if list.AtEnd() {
		if req, ok := flow.LoadMore(); ok {
			m.syncList(list, flow, list.Title())
			return m, FetchListingCmd(flow, kind, req)
		}
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back), msg.String() == "h", msg.String() == "left":
		m.pop()
		return m, nil
	case key.Matches(msg, Keys.Favorite):
		movie := m.detailOf
		if d, ok := m.detail.Details(); ok && d.ID == m.detailID {
			movie = d.Favorite()
		}
		return m, ToggleFavoriteCmd(m.favorites, movie)
	case key.Matches(msg, Keys.Open):
		if m.opener == nil {
			return m, nil
		}
		return m, OpenURLCmd(m.opener, tmdb.MoviePageURL(m.detailID))
	case key.Matches(msg, Keys.Retry):
		m.detail.SetLoading(true)
		return m, LoadDetailsCmd(m.catalog, m.detailID)
	}
	m.detail.Update(msg)
	return m, nil
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Filter):
		return m, m.favFilter.Focus()
	case key.Matches(msg, Keys.Escape) && m.favFilter.Value() != "":
		m.favFilter.SetValue("")
		m.applyFavoritesFilter()
		return m, nil
	case key.Matches(msg, Keys.Back):
		m.pop()
		return m, nil
	case key.Matches(msg, Keys.Enter):
		if movie, ok := m.favList.SelectedMovie(); ok {
			return m, m.openDetail(movie)
		}
		return m, nil
	case key.Matches(msg, Keys.Favorite), msg.String() == "x":
		if movie, ok := m.favList.SelectedMovie(); ok {
			return m, ToggleFavoriteCmd(m.favorites, movie)
		}
		return m, nil
	}
	m.favList.Update(msg)
	return m, nil
}

// applyQuery starts a search session for a settled query. An empty query
// returns the home page to its category rows.
func (m *Model) applyQuery(query string) tea.Cmd {
	req, ok := m.searchFlow.SetQuery(query)
	m.searchList.ResetCursor()
	m.syncList(m.searchList, m.searchFlow, fmt.Sprintf("Results for %q", m.searchFlow.Query()))
	if !ok {
		return nil
	}
	return FetchListingCmd(m.searchFlow, ListingSearch, req)
}

func (m *Model) openGenre(id int, name string) tea.Cmd {
	m.genreFlow = discover.NewFlow(discover.GenreSource{Catalog: m.catalog, GenreID: id}, m.logger)
	m.genreList = components.NewMovieList(name)
	m.genreList.SetFavoriteFunc(m.favIDs.has)
	m.push(ScreenGenre)
	m.updateLayout()

	req, ok := m.genreFlow.SetQuery(name)
	m.syncList(m.genreList, m.genreFlow, name)
	if !ok {
		return nil
	}
	return FetchListingCmd(m.genreFlow, ListingGenre, req)
}

func (m *Model) openDetail(movie domain.Movie) tea.Cmd {
	m.detailID = movie.ID
	m.detailOf = movie
	m.detail = components.NewDetail()
	m.detail.SetLoading(true)
	m.detail.SetFavorite(m.favIDs.has(movie.ID))
	m.push(ScreenDetail)
	m.updateLayout()
	return LoadDetailsCmd(m.catalog, movie.ID)
}

// syncList copies a flow's state into its list view
func (m *Model) syncList(list *components.MovieList, flow *discover.Flow, title string) {
	snap := flow.Snapshot()
	list.SetTitle(title)
	list.SetMovies(snap.Results)
	list.SetLoading(snap.LoadingInitial())
	list.SetLoadingMore(snap.LoadingMore())
	list.SetError(snap.Error)
	list.SetEmptyMessage(fmt.Sprintf("No movies found for %q", snap.Query))
}

// refreshFavorites re-reads the collection into every surface. Rendering
// only consults the cached set, never the store.
func (m *Model) refreshFavorites() {
	m.favMovies = m.favorites.List()
	m.favIDs.reset(m.favMovies)
	m.rebuildRows()
	m.applyFavoritesFilter()
	if m.detailID != 0 {
		m.detail.SetFavorite(m.favIDs.has(m.detailID))
	}
}

// favoriteSet is the favorite IDs as of the last refresh. Shared by pointer
// so every copy of the model sees the same set.
type favoriteSet struct {
	ids map[int]bool
}

func (f *favoriteSet) has(id int) bool { return f.ids[id] }

func (f *favoriteSet) reset(movies []domain.Movie) {
	ids := make(map[int]bool, len(movies))
	for _, movie := range movies {
		ids[movie.ID] = true
	}
	f.ids = ids
}

func (m *Model) rebuildRows() {
	rows := make([]components.Row, 0, len(m.categories)+1)
	if len(m.favMovies) > 0 {
		rows = append(rows, components.Row{
			ID:     components.FavoritesRowID,
			Title:  favoritesRowTitle,
			Movies: m.favMovies,
		})
	}
	for _, cat := range m.categories {
		rows = append(rows, components.Row{ID: cat.ID, Title: cat.Name, Movies: cat.Movies})
	}
	m.rows.SetRows(rows)
}

func (m *Model) applyFavoritesFilter() {
	m.favFiltered = favorites.Filter(m.favMovies, m.favFilter.Value())
	rows := make([]components.ListRow, len(m.favFiltered))
	for i, match := range m.favFiltered {
		rows[i] = components.ListRow{Movie: match.Movie, Matches: match.MatchedIndexes}
	}
	m.favList.SetRows(rows)

	n := len(m.favMovies)
	footer := fmt.Sprintf("%d movie%s in favorites", n, plural(n))
	if q := m.favFilter.Value(); q != "" {
		footer = fmt.Sprintf("%d of %s", len(rows), footer)
		m.favList.SetEmptyMessage(fmt.Sprintf("No favorites match %q", q))
	} else {
		m.favList.SetEmptyMessage("No favorites yet. Press f on a movie to add it.")
	}
	m.favList.SetFooter(footer)
}

func (m *Model) push(s Screen) {
	if m.Screen() != s {
		m.screens = append(m.screens, s)
	}
}

func (m *Model) pop() {
	if len(m.screens) > 1 {
		m.screens = m.screens[:len(m.screens)-1]
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
