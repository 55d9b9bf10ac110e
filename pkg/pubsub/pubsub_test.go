package pubsub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	ps := NewPubSub[string]()
	a := ps.Subscribe(TopicCacheReset)
	b := ps.Subscribe(TopicCacheReset)

	ps.Publish(TopicCacheReset, "reset")

	assert.Equal(t, "reset", <-a)
	assert.Equal(t, "reset", <-b)
}

func TestPublishSkipsSlowSubscribers(t *testing.T) {
	ps := NewPubSub[string]()
	slow := ps.Subscribe(TopicCacheReset)

	// fill the buffer, then publish again; neither call may block
	done := make(chan struct{})
	go func() {
		ps.Publish(TopicCacheReset, "first")
		ps.Publish(TopicCacheReset, "second")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	assert.Equal(t, "first", <-slow)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	ps := NewPubSub[string]()
	ch := ps.Subscribe(TopicCacheReset)

	ps.Unsubscribe(TopicCacheReset, ch)

	_, open := <-ch
	assert.False(t, open)

	// publishing after unsubscribe must not panic
	ps.Publish(TopicCacheReset, "reset")
}
