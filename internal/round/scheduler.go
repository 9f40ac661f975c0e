package round

import "time"

// Scheduler runs callbacks at deadlines on simulated time.
// Time only moves when Advance is called, so the game tick decides how fast
// delays elapse and tests can step through them exactly.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	tasks []*task
}

type task struct {
	at        time.Duration
	every     time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

// Handle refers to a scheduled callback.
type Handle struct {
	t *task
}

// Cancel stops the callback from firing. Safe to call more than once.
func (h Handle) Cancel() {
	if h.t != nil {
		h.t.cancelled = true
	}
}

// Active reports whether the callback is still waiting to fire.
func (h Handle) Active() bool {
	return h.t != nil && !h.t.cancelled
}

// NewScheduler creates a scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	return s.add(&task{at: s.now + max(d, 0), fn: fn})
}

// Every runs fn repeatedly with period d, first after d.
// A non-positive period schedules nothing.
func (s *Scheduler) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		return Handle{}
	}
	return s.add(&task{at: s.now + d, every: d, fn: fn})
}

func (s *Scheduler) add(t *task) Handle {
	s.seq++
	t.seq = s.seq
	s.tasks = append(s.tasks, t)
	return Handle{t: t}
}

// Advance moves time forward by dt and fires every due callback in deadline
// order. Callbacks scheduled while advancing fire in the same call if due.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
	for {
		t := s.popDue()
		if t == nil {
			return
		}
		t.fn()
		if t.every > 0 && !t.cancelled {
			t.at += t.every
			s.tasks = append(s.tasks, t)
		} else {
			t.cancelled = true
		}
	}
}

// popDue removes and returns the earliest due task, or nil.
func (s *Scheduler) popDue() *task {
	best := -1
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.cancelled {
			continue
		}
		live = append(live, t)
	}
	s.tasks = live

	for i, t := range s.tasks {
		if t.at > s.now {
			continue
		}
		if best < 0 || t.at < s.tasks[best].at ||
			(t.at == s.tasks[best].at && t.seq < s.tasks[best].seq) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	t := s.tasks[best]
	s.tasks = append(s.tasks[:best], s.tasks[best+1:]...)
	return t
}

// CancelAll drops every pending callback.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = nil
}

// Pending returns the number of callbacks waiting to fire.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}
