// Package cli provides the command-line interface for flicks.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mmcdole/flicks/internal/browser"
	"github.com/mmcdole/flicks/internal/config"
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/favorites"
	"github.com/mmcdole/flicks/internal/log"
	"github.com/mmcdole/flicks/internal/notify"
	"github.com/mmcdole/flicks/internal/tmdb"
	"github.com/mmcdole/flicks/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// App holds the services shared by every command. Fields left nil are
// built from the loaded configuration on first use.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Catalog   domain.Catalog
	Favorites *favorites.Store
	PosterURL func(path string) string
	Opener    tui.URLOpener

	// Notices receives catalog fetch outcomes while the TUI runs
	Notices chan tui.Notice
}

// setup loads configuration and opens the services for cmd
func (a *App) setup(interactive, verbose bool, stderr io.Writer) error {
	if a.Config == nil {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		a.Config = cfg
	}
	cfg := a.Config

	if a.Logger == nil {
		if interactive {
			logger, err := log.SetupLogger(&cfg.Logging)
			if err != nil {
				// Fall back to null logger if file logging fails
				logger = log.NullLogger()
			}
			a.Logger = logger
		} else {
			a.Logger = log.ConsoleLogger(verbose)
		}
	}
	slog.SetDefault(a.Logger)

	if a.Favorites == nil {
		store, err := favorites.NewStore(cfg.Storage.Path, cfg.Storage.LockTimeout, notify.NewBus(), a.Logger)
		if err != nil {
			return fmt.Errorf("failed to open favorites: %w", err)
		}
		a.Favorites = store
	}

	if a.Opener == nil {
		a.Opener = browser.NewLauncher(cfg.Browser.Command, cfg.Browser.Args, a.Logger)
	}

	if a.Catalog == nil {
		var notifier domain.Notifier = &stderrNotifier{w: stderr}
		if interactive {
			a.Notices = make(chan tui.Notice, 8)
			notifier = tui.NewChannelNotifier(a.Notices)
		}
		client := a.newClient(notifier)
		a.Catalog = client
		if a.PosterURL == nil {
			a.PosterURL = client.PosterURL
		}
	}
	return nil
}

func (a *App) newClient(notifier domain.Notifier) *tmdb.Client {
	cfg := a.Config.Catalog
	return tmdb.NewClient(cfg.BaseURL, cfg.APIKey, a.Logger,
		tmdb.WithTimeout(cfg.Timeout),
		tmdb.WithRateLimit(cfg.RateLimit),
		tmdb.WithImageBaseURL(cfg.ImageBaseURL),
		tmdb.WithNotifier(notifier),
	)
}

// NewRootCmd creates the root command for flicks
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(&App{}, version)
}

func newRootCmd(app *App, version string) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "flicks",
		Short: "Browse and search movies from The Movie Database",
		Long: `flicks browses movies by genre, searches the TMDB catalog and keeps a
local list of favourites. Without a subcommand it starts the terminal UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return app.setup(cmd == cmd.Root() && isTerminal(), verbose, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal() {
				return cmd.Help()
			}
			return runTUI(app, version)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests to stderr")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flicks %s\n", version)
		},
	}

	rootCmd.AddCommand(
		versionCmd,
		newSearchCmd(app),
		newGenresCmd(app),
		newGenreCmd(app),
		newMovieCmd(app),
		newOpenCmd(app),
		newFavoritesCmd(app),
	)
	return rootCmd
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// stderrNotifier reports failed catalog requests on the command's error stream
type stderrNotifier struct {
	w io.Writer
}

func (n *stderrNotifier) FetchFailed(error) {
	fmt.Fprintln(n.w, tmdb.FetchFailedNotice)
}

func (n *stderrNotifier) FetchSucceeded() {}
