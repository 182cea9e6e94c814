// Package browser opens catalog pages in an external web browser.
package browser

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Launcher opens URLs in the configured browser or the system default
type Launcher struct {
	command string   // configured browser command, empty for auto-detect
	args    []string // additional arguments for the browser
	goos    string
	logger  *slog.Logger

	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// launchPath is one way to hand a URL to the desktop
type launchPath struct {
	command string
	args    []string // placed before the URL
}

// candidates lists launch paths to try in order for each platform
var candidates = map[string][]launchPath{
	"darwin": {
		{command: "open"},
	},
	"linux": {
		{command: "xdg-open"},
		{command: "sensible-browser"},
		{command: "x-www-browser"},
		{command: "firefox"},
		{command: "chromium"},
	},
	"windows": {
		{command: "rundll32", args: []string{"url.dll,FileProtocolHandler"}},
		{command: "cmd", args: []string{"/c", "start", ""}},
	},
}

// NewLauncher creates a Launcher. An empty command selects the first
// available platform handler.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		goos:     runtime.GOOS,
		logger:   logger,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start() // Start async, don't wait
		},
	}
}

// Open opens url in a browser
func (l *Launcher) Open(url string) error {
	// Tier 1: User configured a specific browser
	if l.command != "" {
		args := append(append([]string{}, l.args...), url)
		l.logger.Info("launching configured browser", "command", l.command, "args", args)
		return l.start(l.command, args...)
	}

	// Tier 2: Platform handlers in order of preference
	paths, ok := candidates[l.goos]
	if !ok {
		paths = candidates["linux"] // default
	}
	for _, lp := range paths {
		if _, err := l.lookPath(lp.command); err != nil {
			l.logger.Debug("launch path not available", "command", lp.command, "error", err)
			continue
		}
		args := append(append([]string{}, lp.args...), url)
		if err := l.start(lp.command, args...); err != nil {
			l.logger.Debug("launch failed", "command", lp.command, "error", err)
			continue
		}
		l.logger.Info("opened in browser", "command", lp.command, "url", url)
		return nil
	}

	return fmt.Errorf("no browser found to open %s", url)
}
