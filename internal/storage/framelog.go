package storage

import "github.com/san-kum/neuralbg/internal/render"

// FrameLog records every frame's stats so a run can be saved afterwards.
type FrameLog struct {
	frames []render.FrameStats
}

func (l *FrameLog) OnFrame(s render.FrameStats) { l.frames = append(l.frames, s) }
func (l *FrameLog) Frames() []render.FrameStats { return l.frames }
