package events

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestHubSubscribeAndPublish(t *testing.T) {
	hub := NewHub()

	var got Event
	var calls int
	hub.Subscribe(PostPublish, func(ctx context.Context, ev Event) {
		got = ev
		calls++
	})

	ev := Event{Type: PostPublish, Instance: "rr-42", User: "alice"}
	hub.Publish(context.Background(), ev)

	if calls != 1 {
		t.Fatalf("expected 1 handler call, got %d", calls)
	}
	if got.Instance != "rr-42" || got.User != "alice" {
		t.Errorf("handler received wrong event: %+v", got)
	}
}

func TestHubOnlyMatchingKindDelivered(t *testing.T) {
	hub := NewHub()

	var publishCalls, otherCalls atomic.Int32
	hub.Subscribe(PostPublish, func(ctx context.Context, ev Event) {
		publishCalls.Add(1)
	})
	hub.Subscribe("post_delete", func(ctx context.Context, ev Event) {
		otherCalls.Add(1)
	})

	hub.Publish(context.Background(), Event{Type: PostPublish})

	if publishCalls.Load() != 1 {
		t.Errorf("expected 1 post_publish call, got %d", publishCalls.Load())
	}
	if otherCalls.Load() != 0 {
		t.Errorf("expected 0 post_delete calls, got %d", otherCalls.Load())
	}
}

func TestHubMultipleSubscribers(t *testing.T) {
	hub := NewHub()

	var calls atomic.Int32
	for i := 0; i < 3; i++ {
		hub.Subscribe(PostPublish, func(ctx context.Context, ev Event) {
			calls.Add(1)
		})
	}

	hub.Publish(context.Background(), Event{Type: PostPublish})

	if calls.Load() != 3 {
		t.Errorf("expected 3 handler calls, got %d", calls.Load())
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()

	var calls atomic.Int32
	unsubscribe := hub.Subscribe(PostPublish, func(ctx context.Context, ev Event) {
		calls.Add(1)
	})

	if hub.SubscriberCount(PostPublish) != 1 {
		t.Errorf("expected 1 subscriber, got %d", hub.SubscriberCount(PostPublish))
	}

	unsubscribe()

	if hub.SubscriberCount(PostPublish) != 0 {
		t.Errorf("expected 0 subscribers after unsubscribe, got %d", hub.SubscriberCount(PostPublish))
	}

	hub.Publish(context.Background(), Event{Type: PostPublish})
	if calls.Load() != 0 {
		t.Errorf("unsubscribed handler was called %d times", calls.Load())
	}
}

func TestHubReset(t *testing.T) {
	hub := NewHub()

	hub.Subscribe(PostPublish, func(ctx context.Context, ev Event) {})
	hub.Subscribe("post_delete", func(ctx context.Context, ev Event) {})

	hub.Reset()

	if hub.SubscriberCount(PostPublish) != 0 || hub.SubscriberCount("post_delete") != 0 {
		t.Error("expected no subscribers after reset")
	}
}

func TestHubConcurrentAccess(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsubscribe := hub.Subscribe(PostPublish, func(ctx context.Context, ev Event) {})
			unsubscribe()
		}()
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				hub.Publish(context.Background(), Event{Type: PostPublish})
			}
		}()
	}
	wg.Wait()
	// Test passes if no race conditions or deadlocks
}

func TestWithChangeDesc(t *testing.T) {
	ev := Event{Type: PostPublish}
	if ev.HasChangeDesc {
		t.Error("fresh event should not carry a change description")
	}

	ev = ev.WithChangeDesc("summary edited")
	if !ev.HasChangeDesc || ev.ChangeDesc != "summary edited" {
		t.Errorf("expected change description to be set, got %+v", ev)
	}
}
