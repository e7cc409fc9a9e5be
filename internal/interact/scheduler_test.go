package interact

import (
	"testing"
	"time"
)

func TestSchedulerFiresInOrder(t *testing.T) {
	s := NewScheduler()
	base := time.Now()
	s.Advance(base)

	var fired []string
	s.After(20*time.Millisecond, func() { fired = append(fired, "b") })
	s.After(10*time.Millisecond, func() { fired = append(fired, "a") })

	s.Advance(base.Add(5 * time.Millisecond))
	if len(fired) != 0 {
		t.Fatalf("fired %v before any deadline", fired)
	}

	// Both are due; they run in scheduling order, not deadline order.
	s.Advance(base.Add(30 * time.Millisecond))
	if len(fired) != 2 || fired[0] != "b" || fired[1] != "a" {
		t.Errorf("fired = %v, want [b a]", fired)
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d after dispatch, want 0", s.Pending())
	}
}

func TestSchedulerExactDeadline(t *testing.T) {
	s := NewScheduler()
	base := time.Now()
	s.Advance(base)

	fired := false
	s.After(300*time.Millisecond, func() { fired = true })

	s.Advance(base.Add(299 * time.Millisecond))
	if fired {
		t.Fatal("fired before the deadline")
	}
	s.Advance(base.Add(300 * time.Millisecond))
	if !fired {
		t.Error("did not fire at the exact deadline")
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	base := time.Now()
	s.Advance(base)

	fired := false
	task := s.After(10*time.Millisecond, func() { fired = true })
	task.Cancel()
	task.Cancel() // double cancel is harmless

	s.Advance(base.Add(time.Second))
	if fired {
		t.Error("cancelled task fired")
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
}

func TestSchedulerReAdvanceIdempotent(t *testing.T) {
	s := NewScheduler()
	base := time.Now()
	s.Advance(base)

	count := 0
	s.After(10*time.Millisecond, func() { count++ })

	for i := 0; i < 3; i++ {
		s.Advance(base.Add(time.Second))
	}
	if count != 1 {
		t.Errorf("task fired %d times, want 1", count)
	}
}

func TestSchedulerNestedScheduling(t *testing.T) {
	s := NewScheduler()
	base := time.Now()
	s.Advance(base)

	var fired []string
	s.After(10*time.Millisecond, func() {
		fired = append(fired, "outer")
		// Scheduled mid-dispatch: due immediately, but deferred to the
		// next Advance.
		s.After(0, func() { fired = append(fired, "inner") })
	})

	s.Advance(base.Add(10 * time.Millisecond))
	if len(fired) != 1 || fired[0] != "outer" {
		t.Fatalf("fired = %v after first advance, want [outer]", fired)
	}

	s.Advance(base.Add(10 * time.Millisecond))
	if len(fired) != 2 || fired[1] != "inner" {
		t.Errorf("fired = %v after second advance, want [outer inner]", fired)
	}
}

func TestTaskCancelNil(t *testing.T) {
	var task *Task
	task.Cancel() // must not panic
}
