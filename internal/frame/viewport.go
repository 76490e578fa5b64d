package frame

import "sync"

// Viewport holds the container size a host reports and fans resize
// notifications out to listeners.
type Viewport struct {
	mu        sync.Mutex
	w, h      int
	nextID    uint64
	listeners map[uint64]func(w, h int)
}

func NewViewport(w, h int) *Viewport {
	return &Viewport{w: w, h: h, listeners: make(map[uint64]func(w, h int))}
}

func (v *Viewport) Size() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.w, v.h
}

// Set records a new size and notifies listeners. It returns false and
// notifies nobody when the size is unchanged.
func (v *Viewport) Set(w, h int) bool {
	v.mu.Lock()
	if w == v.w && h == v.h {
		v.mu.Unlock()
		return false
	}
	v.w, v.h = w, h
	fns := make([]func(w, h int), 0, len(v.listeners))
	for _, fn := range v.listeners {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn(w, h)
	}
	return true
}

// OnResize registers fn and returns a function that removes it. The
// returned function may be called more than once.
func (v *Viewport) OnResize(fn func(w, h int)) func() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nextID++
	id := v.nextID
	v.listeners[id] = fn
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.listeners, id)
	}
}

func (v *Viewport) Listeners() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}
