package frame

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestQueuePumpRunsRequestedCallbacks(t *testing.T) {
	q := NewQueue()
	var order []int
	q.RequestFrame(func() { order = append(order, 1) })
	q.RequestFrame(func() { order = append(order, 2) })

	if n := q.Pump(); n != 2 {
		t.Fatalf("expected 2 callbacks, got %d", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("callbacks ran out of order: %v", order)
	}
	if q.Len() != 0 {
		t.Errorf("queue not empty after pump: %d", q.Len())
	}
}

func TestQueueRequestDuringPumpWaitsForNextPump(t *testing.T) {
	q := NewQueue()
	runs := 0
	var loop func()
	loop = func() {
		runs++
		q.RequestFrame(loop)
	}
	q.RequestFrame(loop)

	for i := 1; i <= 3; i++ {
		q.Pump()
		if runs != i {
			t.Fatalf("pump %d: expected %d runs, got %d", i, i, runs)
		}
	}
}

func TestQueueCancel(t *testing.T) {
	q := NewQueue()
	ran := false
	id := q.RequestFrame(func() { ran = true })
	q.CancelFrame(id)
	q.CancelFrame(id)
	q.CancelFrame(999)

	if n := q.Pump(); n != 0 {
		t.Errorf("expected nothing to run, got %d", n)
	}
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestQueueCancelWithinSameBatch(t *testing.T) {
	q := NewQueue()
	ran := false
	var second uint64
	q.RequestFrame(func() { q.CancelFrame(second) })
	second = q.RequestFrame(func() { ran = true })

	if n := q.Pump(); n != 1 {
		t.Errorf("expected 1 callback, got %d", n)
	}
	if ran {
		t.Error("callback cancelled mid-pump still ran")
	}
}

func TestViewportNotifiesOnChange(t *testing.T) {
	v := NewViewport(100, 100)
	var got [][2]int
	remove := v.OnResize(func(w, h int) { got = append(got, [2]int{w, h}) })

	if v.Set(100, 100) {
		t.Error("unchanged size reported as change")
	}
	if !v.Set(200, 50) {
		t.Error("changed size not reported")
	}
	if len(got) != 1 || got[0] != [2]int{200, 50} {
		t.Errorf("unexpected notifications: %v", got)
	}

	remove()
	remove()
	v.Set(10, 10)
	if len(got) != 1 {
		t.Errorf("listener called after removal: %v", got)
	}
	if v.Listeners() != 0 {
		t.Errorf("expected no listeners, got %d", v.Listeners())
	}
	if w, h := v.Size(); w != 10 || h != 10 {
		t.Errorf("expected 10x10, got %dx%d", w, h)
	}
}

func TestHostSurfaceAttachDetach(t *testing.T) {
	h := NewHost(10, 10)
	if _, ok := h.Surface(); ok {
		t.Error("new host reports a surface")
	}
	h.Attach(nopSurface{})
	if _, ok := h.Surface(); !ok {
		t.Error("attached surface not reported")
	}
	h.Detach()
	if _, ok := h.Surface(); ok {
		t.Error("detached surface still reported")
	}
}

func TestTickerStopsWhenIdle(t *testing.T) {
	q := NewQueue()
	runs := 0
	var loop func()
	loop = func() {
		runs++
		if runs < 3 {
			q.RequestFrame(loop)
		}
	}
	q.RequestFrame(loop)

	tk := NewTicker(q, 1000)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := tk.Run(ctx); err != nil {
		t.Fatalf("run returned %v", err)
	}
	if runs != 3 {
		t.Errorf("expected 3 runs, got %d", runs)
	}
}

func TestTickerHonoursContext(t *testing.T) {
	q := NewQueue()
	var loop func()
	loop = func() { q.RequestFrame(loop) }
	q.RequestFrame(loop)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := NewTicker(q, 120).Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestTickerInterval(t *testing.T) {
	if got := NewTicker(NewQueue(), 50).Interval(); got != 20*time.Millisecond {
		t.Errorf("50 fps: expected 20ms, got %v", got)
	}
	if got := NewTicker(NewQueue(), 0).Interval(); got != time.Second/DefaultFPS {
		t.Errorf("default fps: expected %v, got %v", time.Second/DefaultFPS, got)
	}
}

func TestDrain(t *testing.T) {
	q := NewQueue()
	runs := 0
	var loop func()
	loop = func() {
		runs++
		q.RequestFrame(loop)
	}
	q.RequestFrame(loop)

	if n := Drain(q, 10); n != 10 {
		t.Errorf("expected 10 frames, got %d", n)
	}
	if runs != 10 {
		t.Errorf("expected 10 runs, got %d", runs)
	}

	empty := NewQueue()
	if n := Drain(empty, 10); n != 0 {
		t.Errorf("expected 0 frames on empty queue, got %d", n)
	}
}
