package pace

import (
	"sync"
	"testing"
	"time"
)

func TestScheduleRunsInSourceOrder(t *testing.T) {
	s := NewScheduler()

	var mu sync.Mutex
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		s.Schedule(i, 5*time.Millisecond, func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}

	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 5 {
		t.Fatalf("expected 5 runs, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("out of order at %d: %v", i, got)
		}
	}
}

func TestCancelStopsPendingTasks(t *testing.T) {
	s := NewScheduler()

	var mu sync.Mutex
	ran := 0
	// First task fires immediately, the rest far in the future.
	s.Schedule(0, time.Millisecond, func() {
		mu.Lock()
		ran++
		mu.Unlock()
	})
	for i := 1; i < 4; i++ {
		s.Schedule(i, time.Hour, func() {
			mu.Lock()
			ran++
			mu.Unlock()
		})
	}

	time.Sleep(20 * time.Millisecond)
	s.Cancel()
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	if ran != 1 {
		t.Fatalf("expected only the immediate task to run, ran=%d", ran)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	s := NewScheduler()
	s.Schedule(0, time.Hour, func() { t.Error("task ran after cancel") })

	s.Cancel()
	s.Cancel()
	s.Wait()
}

func TestScheduleAfterCancelIsDropped(t *testing.T) {
	s := NewScheduler()
	s.Cancel()

	s.Schedule(0, time.Millisecond, func() { t.Error("task ran on cancelled scheduler") })
	s.Wait()

	time.Sleep(20 * time.Millisecond)
}

func TestNoTaskRunsAfterCancelReturns(t *testing.T) {
	s := NewScheduler()

	var mu sync.Mutex
	cancelled := false
	for i := 0; i < 10; i++ {
		s.Schedule(i, time.Millisecond, func() {
			mu.Lock()
			if cancelled {
				t.Error("task ran after Cancel returned")
			}
			mu.Unlock()
		})
	}

	time.Sleep(3 * time.Millisecond)
	s.Cancel()
	mu.Lock()
	cancelled = true
	mu.Unlock()

	s.Wait()
	time.Sleep(20 * time.Millisecond)
}
