package game

import (
	"sort"
	"time"
)

// Task is a handle to a delayed or repeating callback registered on a Scheduler.
// Cancel is safe to call any number of times, including from inside the callback.
type Task struct {
	id        int
	due       time.Duration
	interval  time.Duration // 0 = one-shot
	once      func()
	repeat    func() bool
	cancelled bool
	done      bool
}

// Cancel prevents any further invocation of the task.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Active reports whether the task may still fire.
func (t *Task) Active() bool {
	return t != nil && !t.cancelled && !t.done
}

// Scheduler is a single-threaded timer wheel driven by the session clock.
// Nothing fires on its own: the owner calls Advance once per frame.
type Scheduler struct {
	now    time.Duration
	nextID int
	tasks  []*Task
}

// NewScheduler returns a scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once, d after the current clock.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	t := &Task{id: s.nextID, due: s.now + d, once: fn}
	s.nextID++
	s.tasks = append(s.tasks, t)
	return t
}

// Every runs fn every d until fn returns false or the task is cancelled.
// The first call happens d after the current clock.
func (s *Scheduler) Every(d time.Duration, fn func() bool) *Task {
	if d <= 0 {
		d = time.Millisecond
	}
	t := &Task{id: s.nextID, due: s.now + d, interval: d, repeat: fn}
	s.nextID++
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by dt and runs every task that falls due,
// in due-time order. Interval tasks that missed several periods run once per
// period so step counts stay exact under frame hitches.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.due
		s.fire(next)
	}
	s.now = target
	s.compact()
}

// nextDue returns the earliest live task due at or before limit.
func (s *Scheduler) nextDue(limit time.Duration) *Task {
	var best *Task
	for _, t := range s.tasks {
		if !t.Active() || t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) fire(t *Task) {
	if t.interval == 0 {
		t.done = true
		if t.once != nil {
			t.once()
		}
		return
	}
	t.due += t.interval
	if t.repeat != nil && !t.repeat() {
		t.done = true
	}
}

// compact drops finished and cancelled tasks.
func (s *Scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.Active() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
}

// CancelAll cancels every pending task. Used on session teardown.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.Cancel()
	}
	s.tasks = s.tasks[:0]
}

// Pending returns the number of live tasks.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if t.Active() {
			n++
		}
	}
	return n
}

// NextDue returns the due times of live tasks in ascending order.
func (s *Scheduler) NextDue() []time.Duration {
	out := make([]time.Duration, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.Active() {
			out = append(out, t.due)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
