package surface

import "image/color"

type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpLine
	OpResize
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpCircle:
		return "circle"
	case OpLine:
		return "line"
	case OpResize:
		return "resize"
	}
	return "unknown"
}

// Op is one recorded drawing call. Circles use X1, Y1 and R; lines use
// both endpoints and W; resizes carry the new size in X1, Y1.
type Op struct {
	Kind   OpKind
	X1, Y1 float64
	X2, Y2 float64
	R, W   float64
	Color  color.NRGBA
}

// Recorder is a surface that keeps the calls of the current frame. Clear
// starts a new frame.
type Recorder struct {
	w, h   int
	ops    []Op
	clears int
}

func NewRecorder(w, h int) *Recorder {
	return &Recorder{w: w, h: h, ops: make([]Op, 0, 64)}
}

func (r *Recorder) Size() (int, int) { return r.w, r.h }

func (r *Recorder) SetSize(w, h int) {
	r.w, r.h = w, h
	r.ops = append(r.ops, Op{Kind: OpResize, X1: float64(w), Y1: float64(h)})
}

func (r *Recorder) Clear() {
	r.clears++
	r.ops = r.ops[:0]
	r.ops = append(r.ops, Op{Kind: OpClear})
}

func (r *Recorder) FillCircle(x, y, radius float64, c color.NRGBA) {
	r.ops = append(r.ops, Op{Kind: OpCircle, X1: x, Y1: y, R: radius, Color: c})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	r.ops = append(r.ops, Op{Kind: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, W: width, Color: c})
}

// Ops returns the calls since the last Clear.
func (r *Recorder) Ops() []Op { return r.ops }

// Clears counts frames started so far.
func (r *Recorder) Clears() int { return r.clears }

func (r *Recorder) Circles() []Op { return r.filter(OpCircle) }
func (r *Recorder) Lines() []Op   { return r.filter(OpLine) }

func (r *Recorder) filter(k OpKind) []Op {
	out := make([]Op, 0, len(r.ops))
	for _, op := range r.ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}
