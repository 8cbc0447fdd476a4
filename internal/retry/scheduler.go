package retry

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// Task is one unit of scheduled background work.
type Task func(ctx context.Context)

type scheduledTask struct {
	at   time.Time
	seq  uint64
	task Task
}

type taskHeap []*scheduledTask

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) { *h = append(*h, x.(*scheduledTask)) }

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

// Scheduler runs tasks after a delay on a fixed-size worker pool, ordered by
// a min-heap of deadlines. It is the single execution context for delivery
// work: initial attempts are scheduled at zero delay and every retry as a
// fresh task at its deadline. Tasks still queued when the Start context ends
// are dropped; callers that need them finished must Drain first.
type Scheduler struct {
	mu      sync.Mutex
	queue   taskHeap
	seq     uint64
	wake    chan struct{}
	work    chan Task
	pending sync.WaitGroup
	workers int
}

func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = 4
	}
	return &Scheduler{
		wake:    make(chan struct{}, 1),
		work:    make(chan Task),
		workers: workers,
	}
}

// Schedule queues task to run after delay. Safe for concurrent use,
// including from inside a running task.
func (s *Scheduler) Schedule(delay time.Duration, task Task) {
	s.pending.Add(1)

	s.mu.Lock()
	s.seq++
	heap.Push(&s.queue, &scheduledTask{
		at:   time.Now().Add(delay),
		seq:  s.seq,
		task: task,
	})
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Start runs the timer loop and worker pool until ctx is cancelled. It
// blocks; run it on its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case task := <-s.work:
					task(ctx)
					s.pending.Done()
				}
			}
		}()
	}

	s.loop(ctx)
	wg.Wait()
}

// Drain blocks until every scheduled task has finished or ctx expires.
// Draining after the Start context ended will only time out: dropped tasks
// never finish.
func (s *Scheduler) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		s.mu.Lock()
		var due Task
		wait := time.Duration(-1)
		if s.queue.Len() > 0 {
			if d := time.Until(s.queue[0].at); d <= 0 {
				due = heap.Pop(&s.queue).(*scheduledTask).task
			} else {
				wait = d
			}
		}
		s.mu.Unlock()

		if due != nil {
			select {
			case s.work <- due:
			case <-ctx.Done():
				return
			}
			continue
		}

		if wait < 0 {
			select {
			case <-s.wake:
			case <-ctx.Done():
				return
			}
			continue
		}

		timer.Reset(wait)
		select {
		case <-timer.C:
		case <-s.wake:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
