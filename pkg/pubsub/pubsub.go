package pubsub

import "sync"

const (
	// TopicCacheReset is published when the fetch cache has been cleared and
	// connected dashboards should re-run their current selection.
	TopicCacheReset = "cacheReset"
)

type PubSub[T any] struct {
	mu   sync.Mutex
	subs map[string][]chan T
}

func NewPubSub[T any]() *PubSub[T] {
	return &PubSub[T]{
		subs: make(map[string][]chan T),
	}
}

func (ps *PubSub[T]) Subscribe(topic string) <-chan T {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ch := make(chan T, 1)
	ps.subs[topic] = append(ps.subs[topic], ch)
	return ch
}

// Unsubscribe removes the channel from the topic and closes it. Websocket
// clients come and go, so subscriptions must be releasable.
func (ps *PubSub[T]) Unsubscribe(topic string, ch <-chan T) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	subs := ps.subs[topic]
	for i, sub := range subs {
		if sub == ch {
			ps.subs[topic] = append(subs[:i], subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// Publish delivers data to every subscriber that is keeping up; slow
// subscribers with a full buffer are skipped rather than blocking the
// publisher.
func (ps *PubSub[T]) Publish(topic string, data T) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, ch := range ps.subs[topic] {
		select {
		case ch <- data:
		default:
		}
	}
}
