package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func fakeLauncher(command string, args []string, goos string, installed ...string) (*Launcher, *[]call) {
	l := NewLauncher(command, args, nil)
	l.goos = goos

	var calls []call
	l.lookPath = func(file string) (string, error) {
		for _, name := range installed {
			if name == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", errors.New("not found")
	}
	l.start = func(name string, args ...string) error {
		calls = append(calls, call{name: name, args: args})
		return nil
	}
	return l, &calls
}

const pageURL = "https://www.themoviedb.org/movie/550"

func TestOpen_Configured(t *testing.T) {
	l, calls := fakeLauncher("firefox", []string{"--new-tab"}, "linux")

	require.NoError(t, l.Open(pageURL))
	assert.Equal(t, []call{{name: "firefox", args: []string{"--new-tab", pageURL}}}, *calls)
}

func TestOpen_FirstAvailableCandidate(t *testing.T) {
	l, calls := fakeLauncher("", nil, "linux", "firefox", "sensible-browser")

	require.NoError(t, l.Open(pageURL))
	assert.Equal(t, []call{{name: "sensible-browser", args: []string{pageURL}}}, *calls)
}

func TestOpen_WindowsHandlerArgs(t *testing.T) {
	l, calls := fakeLauncher("", nil, "windows", "rundll32")

	require.NoError(t, l.Open(pageURL))
	assert.Equal(t, []call{{name: "rundll32", args: []string{"url.dll,FileProtocolHandler", pageURL}}}, *calls)
}

func TestOpen_UnknownPlatformUsesLinuxChain(t *testing.T) {
	l, calls := fakeLauncher("", nil, "plan9", "xdg-open")

	require.NoError(t, l.Open(pageURL))
	require.Len(t, *calls, 1)
	assert.Equal(t, "xdg-open", (*calls)[0].name)
}

func TestOpen_NothingInstalled(t *testing.T) {
	l, calls := fakeLauncher("", nil, "linux")

	err := l.Open(pageURL)
	assert.ErrorContains(t, err, "no browser found")
	assert.Empty(t, *calls)
}
