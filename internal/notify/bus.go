// Package notify is an in-process publish/subscribe signal that keeps
// independent views consistent after a shared state change.
package notify

import "sync"

// Topic names a change signal. Publishing carries no payload;
// subscribers re-read whatever state they care about.
type Topic string

const (
	// TopicFavoritesUpdated fires after this process mutated the favorites
	TopicFavoritesUpdated Topic = "favoritesUpdated"

	// TopicStorage fires when another process changed the persisted favorites
	TopicStorage Topic = "storage"
)

// Handler is invoked once per publish of a subscribed topic
type Handler func(Topic)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is a fire-and-forget broadcaster. The zero value is ready to use.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[Topic][]subscription
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers handler for topic until the returned func is called.
// Calling the unsubscribe func more than once is a no-op.
func (b *Bus) Subscribe(topic Topic, handler Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[Topic][]subscription)
	}
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[topic]
	for i, s := range subs {
		if s.id == id {
			// Copy so a Publish iterating the old slice is unaffected
			next := make([]subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			b.subs[topic] = next
			break
		}
	}
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

// Publish synchronously calls every current subscriber of topic.
// Handlers run outside the lock and may subscribe or unsubscribe.
func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	subs := b.subs[topic]
	b.mu.Unlock()

	for _, s := range subs {
		s.handler(topic)
	}
}

// Subscribers returns the number of handlers registered for topic
func (b *Bus) Subscribers(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
