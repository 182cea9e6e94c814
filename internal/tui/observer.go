package tui

import "github.com/mmcdole/flicks/internal/notify"

// Notice is a catalog fetch outcome for the status line
type Notice struct {
	Failed bool
	Err    error
}

// ChannelNotifier adapts domain.Notifier to a channel for Bubble Tea.
type ChannelNotifier struct {
	ch chan<- Notice
}

// NewChannelNotifier creates a new channel-based notifier.
func NewChannelNotifier(ch chan<- Notice) *ChannelNotifier {
	return &ChannelNotifier{ch: ch}
}

// FetchFailed sends a failure notice (non-blocking if full).
func (n *ChannelNotifier) FetchFailed(err error) {
	n.send(Notice{Failed: true, Err: err})
}

// FetchSucceeded sends a dismissal (non-blocking if full).
func (n *ChannelNotifier) FetchSucceeded() {
	n.send(Notice{})
}

func (n *ChannelNotifier) send(notice Notice) {
	select {
	case n.ch <- notice:
	default: // Non-blocking if channel full
	}
}

// BridgeBus forwards publishes of topics on bus to the returned channel so
// the program can receive them as messages. Call stop to unsubscribe.
func BridgeBus(bus *notify.Bus, topics ...notify.Topic) (changes <-chan notify.Topic, stop func()) {
	ch := make(chan notify.Topic, 16)
	unsubs := make([]func(), 0, len(topics))
	for _, topic := range topics {
		unsubs = append(unsubs, bus.Subscribe(topic, func(t notify.Topic) {
			select {
			case ch <- t:
			default: // A pending change already triggers a re-read
			}
		}))
	}
	return ch, func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
