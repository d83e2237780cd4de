package eventbus

import (
	"testing"

	"github.com/DRNaser/shift-optimizer-sub007/core/events"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Publish(events.ProbeEvent{Cap: 12, Feasible: true})
	v := <-ch
	ev, ok := v.(events.ProbeEvent)
	if !ok || ev.Cap != 12 {
		t.Fatalf("expected probe event, got %v", v)
	}
	bus.Unsubscribe(ch)
}

func TestBusDropsWhenSubscriberFull(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	for i := 0; i < subscriberBuffer+10; i++ {
		bus.Publish(i)
	}
	// The buffered events survive; the overflow was dropped, not blocked on.
	if len(ch) != subscriberBuffer {
		t.Fatalf("expected a full buffer of %d, got %d", subscriberBuffer, len(ch))
	}
}

func TestBusClose(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
	if ch := bus.Subscribe(); ch == nil {
		t.Fatalf("subscribe after close must return a closed channel, not nil")
	}
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}
