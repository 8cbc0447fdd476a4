package retry

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func startScheduler(t *testing.T, workers int) *Scheduler {
	t.Helper()

	s := NewScheduler(workers)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("scheduler did not stop after cancel")
		}
	})
	return s
}

func TestScheduleRunsTask(t *testing.T) {
	s := startScheduler(t, 2)

	ran := make(chan struct{})
	s.Schedule(0, func(ctx context.Context) {
		close(ran)
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for task to run")
	}
}

func TestTasksRunInDeadlineOrder(t *testing.T) {
	// One worker so completion order mirrors dispatch order.
	s := startScheduler(t, 1)

	var mu sync.Mutex
	var order []string
	record := func(name string) Task {
		return func(ctx context.Context) {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}

	s.Schedule(80*time.Millisecond, record("late"))
	s.Schedule(20*time.Millisecond, record("early"))

	drainCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Drain(drainCtx); err != nil {
		t.Fatalf("drain: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Errorf("expected [early late], got %v", order)
	}
}

func TestEarlierTaskPreemptsPendingTimer(t *testing.T) {
	s := startScheduler(t, 1)

	ran := make(chan struct{})
	s.Schedule(5*time.Second, func(ctx context.Context) {})
	s.Schedule(10*time.Millisecond, func(ctx context.Context) {
		close(ran)
	})

	select {
	case <-ran:
	case <-time.After(1 * time.Second):
		t.Fatal("short-delay task stuck behind a long-delay timer")
	}
}

func TestScheduleFromInsideTask(t *testing.T) {
	s := startScheduler(t, 2)

	second := make(chan struct{})
	s.Schedule(0, func(ctx context.Context) {
		s.Schedule(10*time.Millisecond, func(ctx context.Context) {
			close(second)
		})
	})

	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for chained task")
	}
}

func TestDrainWaitsForScheduledWork(t *testing.T) {
	s := startScheduler(t, 2)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		s.Schedule(time.Duration(i*10)*time.Millisecond, func(ctx context.Context) {
			ran.Add(1)
		})
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Drain(drainCtx); err != nil {
		t.Fatalf("drain: %v", err)
	}

	if ran.Load() != 5 {
		t.Errorf("expected 5 tasks run after drain, got %d", ran.Load())
	}
}

func TestDrainTimesOutOnPendingWork(t *testing.T) {
	s := startScheduler(t, 1)

	s.Schedule(time.Hour, func(ctx context.Context) {})

	drainCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := s.Drain(drainCtx); err == nil {
		t.Error("expected drain to time out with a task still pending")
	}
}

func TestConcurrentSchedule(t *testing.T) {
	s := startScheduler(t, 4)

	var ran atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				s.Schedule(0, func(ctx context.Context) {
					ran.Add(1)
				})
			}
		}()
	}
	wg.Wait()

	drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Drain(drainCtx); err != nil {
		t.Fatalf("drain: %v", err)
	}

	if ran.Load() != 200 {
		t.Errorf("expected 200 tasks run, got %d", ran.Load())
	}
}
