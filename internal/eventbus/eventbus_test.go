package eventbus

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesSubscribers(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 2)
	b.Subscribe(EventError, func(e DomainEvent) { got <- e })
	b.Subscribe(EventError, func(e DomainEvent) { got <- e })

	b.Publish(ErrorEvent{Message: "boom", Err: errors.New("x")})

	for i := 0; i < 2; i++ {
		select {
		case e := <-got:
			assert.Equal(t, "boom", e.(ErrorEvent).Message)
		case <-time.After(time.Second):
			t.Fatal("handler not called")
		}
	}
}

func TestUnsubscribeRemovesOnlyThatHandler(t *testing.T) {
	b := New()
	defer b.Close()

	var first, second atomic.Int32
	unsub := b.Subscribe(EventConfigChanged, func(DomainEvent) { first.Add(1) })
	b.Subscribe(EventConfigChanged, func(DomainEvent) { second.Add(1) })

	unsub()
	unsub()

	b.Publish(ConfigChangedEvent{Theme: "light"})

	assert.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New()
	defer b.Close()

	var calls atomic.Int32
	b.Subscribe(EventConfigSaved, func(DomainEvent) { panic("bad handler") })
	b.Subscribe(EventConfigSaved, func(DomainEvent) { calls.Add(1) })

	b.Publish(ConfigSavedEvent{})
	b.Publish(ConfigSavedEvent{})

	assert.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	var calls atomic.Int32
	b.Subscribe(EventError, func(DomainEvent) { calls.Add(1) })

	b.Close()
	b.Close()
	b.Publish(ErrorEvent{Message: "late"})

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
