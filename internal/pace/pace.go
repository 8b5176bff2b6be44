// Package pace schedules the fixed-interval delivery of reply lines. A
// Scheduler is scoped to a single request: every deferred append it owns can
// be cancelled in one call when a newer request starts or the stream is torn
// down, so no timer outlives its request.
package pace

import (
	"sync"
	"time"
)

type task struct {
	timer *time.Timer
	fn    func()
	once  sync.Once
}

// Scheduler runs deferred tasks at interval × index from a single dispatch
// point, which keeps execution in source order without chaining.
type Scheduler struct {
	mu        sync.Mutex
	runMu     sync.Mutex
	cancelled bool
	tasks     []*task
	wg        sync.WaitGroup
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule queues fn to run at interval × index from now. Calls after Cancel
// are dropped.
func (s *Scheduler) Schedule(index int, interval time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled {
		return
	}

	t := &task{fn: fn}
	s.wg.Add(1)
	t.timer = time.AfterFunc(interval*time.Duration(index), func() { s.run(t) })
	s.tasks = append(s.tasks, t)
}

func (s *Scheduler) run(t *task) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.mu.Lock()
	cancelled := s.cancelled
	s.mu.Unlock()

	if !cancelled {
		t.fn()
	}
	t.once.Do(s.wg.Done)
}

// Cancel stops every pending task. It is idempotent, and when it returns no
// task function is running or will run again.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	// Wait out a task that is mid-run before reporting cancellation done.
	s.runMu.Lock()
	s.runMu.Unlock()

	for _, t := range tasks {
		t.timer.Stop()
		t.once.Do(s.wg.Done)
	}
}

// Cancelled reports whether Cancel has been called.
func (s *Scheduler) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// Wait blocks until every scheduled task has run or been cancelled.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
