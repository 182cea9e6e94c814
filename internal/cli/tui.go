package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flicks/internal/config"
	"github.com/mmcdole/flicks/internal/notify"
	"github.com/mmcdole/flicks/internal/tui"
)

// runTUI starts the terminal UI and blocks until it exits
func runTUI(app *App, version string) error {
	logger := app.Logger
	logger.Info("starting flicks", "version", version)

	if !app.Config.IsConfigured() {
		if err := runSetupFlow(app); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Edits from another flicks process arrive as storage signals
	if err := app.Favorites.Watch(ctx); err != nil {
		logger.Warn("favorites watch disabled", "error", err)
	}
	changes, stop := tui.BridgeBus(app.Favorites.Bus(), notify.TopicFavoritesUpdated, notify.TopicStorage)
	defer stop()

	model := tui.NewModel(tui.Config{
		Catalog:       app.Catalog,
		Favorites:     app.Favorites,
		Notices:       app.Notices,
		Changes:       changes,
		PosterURL:     app.PosterURL,
		Opener:        app.Opener,
		Debounce:      app.Config.Search.Debounce,
		CategoryLimit: app.Config.Search.CategoryLimit,
		Logger:        logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for a TMDB API key and saves it to the config file
func runSetupFlow(app *App) error {
	fmt.Println()
	fmt.Println("Welcome to flicks!")
	fmt.Println()
	fmt.Println("A TMDB API key is needed to browse the catalog.")
	fmt.Println("Create one at https://www.themoviedb.org/settings/api")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	var key string
	for key == "" {
		fmt.Print("Enter your TMDB API key: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		key = strings.TrimSpace(input)
		if key == "" {
			fmt.Println("API key cannot be empty. Please try again.")
		}
	}

	app.Config.Catalog.APIKey = key
	if err := config.SaveConfig(app.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Println()
	fmt.Println("✓ Configuration saved!")

	// The client was built before the key existed
	app.Catalog = app.newClient(tui.NewChannelNotifier(app.Notices))
	return nil
}
