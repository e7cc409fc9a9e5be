package interact

import "time"

// Scheduler runs deferred actions on the frame loop. Tasks fire inside
// Advance, on the calling thread, so they never race the rest of the
// interaction state. Due tasks fire in scheduling order.
//
// The clock is whatever the owner passes to Advance; After measures its
// delay from the most recent Advance. Advance once before scheduling to set
// the epoch.
type Scheduler struct {
	now   time.Time
	tasks []*Task
}

// Task is one scheduled action. Cancel keeps a task that has not fired yet
// from ever running.
type Task struct {
	fireAt    time.Time
	fn        func()
	done      bool
	cancelled bool
}

// Cancel marks the task so Advance skips it. Safe on nil and after firing.
func (t *Task) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once delay has elapsed on the Advance clock.
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	t := &Task{fireAt: s.now.Add(delay), fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock to now and fires every due task. Tasks scheduled
// by a firing task wait for the next Advance, even with a zero delay.
func (s *Scheduler) Advance(now time.Time) {
	s.now = now
	n := len(s.tasks)
	if n == 0 {
		return
	}

	for _, t := range s.tasks[:n] {
		if t.cancelled || t.done || t.fireAt.After(now) {
			continue
		}
		t.done = true
		t.fn()
	}

	remaining := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.done && !t.cancelled {
			remaining = append(remaining, t)
		}
	}
	s.tasks = remaining
}

// Pending returns how many tasks are still waiting to fire.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.done && !t.cancelled {
			n++
		}
	}
	return n
}
