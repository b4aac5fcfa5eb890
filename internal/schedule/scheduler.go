// Package schedule provides cooperative single-shot timers driven by the
// simulation tick. Nothing runs on its own goroutine: tasks fire from
// Advance, in due-time order, on the caller's goroutine.
package schedule

import (
	"container/heap"
	"time"
)

// Timer identifies a scheduled task.
type Timer struct {
	id  uint64
	gen uint64
}

type task struct {
	id    uint64
	gen   uint64
	due   time.Duration
	seq   uint64
	fn    func()
	index int
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}
func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}
func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler runs tasks against a simulated clock.
//
// A task scheduled with After(d) fires during the first Advance that moves
// the clock to or past now+d, and never during the Advance that scheduled
// it. Reset invalidates every pending task at once.
type Scheduler struct {
	now     time.Duration
	gen     uint64
	nextID  uint64
	seq     uint64
	queue   taskQueue
	pending map[uint64]*task
}

// New creates a scheduler with its clock at zero.
func New() *Scheduler {
	return &Scheduler{pending: make(map[uint64]*task)}
}

// Now returns the simulated clock.
func (s *Scheduler) Now() time.Duration { return s.now }

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int { return len(s.pending) }

// After schedules fn to run once d has elapsed on the simulated clock.
func (s *Scheduler) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.seq++
	t := &task{
		id:  s.nextID,
		gen: s.gen,
		due: s.now + d,
		seq: s.seq,
		fn:  fn,
	}
	heap.Push(&s.queue, t)
	s.pending[t.id] = t
	return Timer{id: t.id, gen: t.gen}
}

// Cancel drops a pending task. It reports whether the task was still pending.
func (s *Scheduler) Cancel(tm Timer) bool {
	t, ok := s.pending[tm.id]
	if !ok || t.gen != tm.gen {
		return false
	}
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	delete(s.pending, t.id)
	return true
}

// Pending reports whether the timer has neither fired nor been cancelled.
func (s *Scheduler) Pending(tm Timer) bool {
	t, ok := s.pending[tm.id]
	return ok && t.gen == tm.gen
}

// Advance moves the clock forward by d and fires every task that came due,
// in due order. Tasks scheduled by a firing task do not fire in this call,
// even with a zero delay.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.now += d
	// Tasks created while firing have a seq above the watermark.
	watermark := s.seq

	var deferred []*task
	for s.queue.Len() > 0 {
		t := s.queue[0]
		if t.due > s.now {
			break
		}
		heap.Pop(&s.queue)
		if t.seq > watermark {
			deferred = append(deferred, t)
			continue
		}
		delete(s.pending, t.id)
		if t.gen != s.gen {
			continue
		}
		t.fn()
	}
	for _, t := range deferred {
		if s.Pending(Timer{id: t.id, gen: t.gen}) {
			heap.Push(&s.queue, t)
		}
	}
}

// Reset invalidates every pending task. The clock keeps running so timers
// scheduled afterwards are measured from the current time.
func (s *Scheduler) Reset() {
	s.gen++
	for i, t := range s.queue {
		t.index = -1
		s.queue[i] = nil
	}
	s.queue = s.queue[:0]
	for id := range s.pending {
		delete(s.pending, id)
	}
}
