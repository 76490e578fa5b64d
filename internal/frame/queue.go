package frame

import "sync"

type request struct {
	id        uint64
	cb        func()
	cancelled bool
}

// Queue emulates a display-refresh scheduler: callbacks registered with
// RequestFrame run on the next Pump, which the host calls once per
// displayed frame.
type Queue struct {
	mu       sync.Mutex
	nextID   uint64
	pending  []*request
	inflight []*request
}

func NewQueue() *Queue {
	return &Queue{pending: make([]*request, 0, 4)}
}

func (q *Queue) RequestFrame(cb func()) uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.pending = append(q.pending, &request{id: q.nextID, cb: cb})
	return q.nextID
}

// CancelFrame drops a pending callback. Unknown or already run ids are ignored.
func (q *Queue) CancelFrame(id uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, r := range q.pending {
		if r.id == id {
			r.cancelled = true
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for _, r := range q.inflight {
		if r.id == id {
			r.cancelled = true
			return
		}
	}
}

// Pump runs the callbacks requested before the call, in request order, and
// returns how many ran. Callbacks requested while pumping wait for the next
// Pump.
func (q *Queue) Pump() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = make([]*request, 0, len(batch))
	q.inflight = batch
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.inflight = nil
		q.mu.Unlock()
	}()

	ran := 0
	for _, r := range batch {
		q.mu.Lock()
		skip := r.cancelled
		q.mu.Unlock()
		if skip {
			continue
		}
		r.cb()
		ran++
	}
	return ran
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
