package frame

import (
	"context"
	"time"
)

const DefaultFPS = 60

// Ticker pumps a queue at a fixed rate on a single goroutine, standing in
// for the display refresh when there is no window.
type Ticker struct {
	queue    *Queue
	interval time.Duration
}

func NewTicker(q *Queue, fps int) *Ticker {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Ticker{queue: q, interval: time.Second / time.Duration(fps)}
}

func (t *Ticker) Interval() time.Duration { return t.interval }

// Run pumps until ctx is done or a pump leaves nothing scheduled, which
// happens once the renderer has stopped.
func (t *Ticker) Run(ctx context.Context) error {
	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tk.C:
		}

		t.queue.Pump()
		if t.queue.Len() == 0 {
			return nil
		}
	}
}

// Drain pumps n frames back to back without waiting, for offline rendering.
// It stops early when nothing is scheduled and returns the frames pumped.
func Drain(q *Queue, n int) int {
	done := 0
	for done < n && q.Len() > 0 {
		q.Pump()
		done++
	}
	return done
}
