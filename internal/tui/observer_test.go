package tui

import (
	"errors"
	"testing"

	"github.com/mmcdole/flicks/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelNotifier(t *testing.T) {
	ch := make(chan Notice, 1)
	n := NewChannelNotifier(ch)

	n.FetchFailed(errors.New("timeout"))
	// Full channel drops instead of blocking
	n.FetchSucceeded()

	got := <-ch
	assert.True(t, got.Failed)
	assert.EqualError(t, got.Err, "timeout")
	assert.Empty(t, ch)
}

func TestBridgeBus(t *testing.T) {
	bus := notify.NewBus()
	changes, stop := BridgeBus(bus, notify.TopicFavoritesUpdated, notify.TopicStorage)

	bus.Publish(notify.TopicStorage)
	require.Len(t, changes, 1)
	assert.Equal(t, notify.TopicStorage, <-changes)

	stop()
	bus.Publish(notify.TopicFavoritesUpdated)
	assert.Empty(t, changes)
	assert.Zero(t, bus.Subscribers(notify.TopicFavoritesUpdated))
}

func TestWaitForChangeCmd(t *testing.T) {
	assert.Nil(t, WaitForChangeCmd(nil))

	ch := make(chan notify.Topic, 1)
	ch <- notify.TopicStorage
	msg := WaitForChangeCmd(ch)()
	assert.Equal(t, FavoritesChangedMsg{Topic: notify.TopicStorage}, msg)
}
