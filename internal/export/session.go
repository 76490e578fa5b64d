package export

import (
	"log/slog"

	"github.com/san-kum/neuralbg/internal/frame"
	"github.com/san-kum/neuralbg/internal/render"
)

// Render drives a renderer offscreen on surf for the given number of
// frames, first frame included, then stops it. It returns the frames
// actually drawn.
func Render(opts render.Options, surf render.Surface, width, height, frames int, logger *slog.Logger, observers ...render.Observer) (uint64, error) {
	host := frame.NewHost(width, height)
	host.Attach(surf)

	r, err := render.New(opts, host, render.WithLogger(logger))
	if err != nil {
		return 0, err
	}
	for _, o := range observers {
		r.AddObserver(o)
	}
	if err := r.Start(); err != nil {
		return 0, err
	}
	defer r.Stop()

	if frames > 1 {
		frame.Drain(host.Queue, frames-1)
	}
	return r.Ticks(), nil
}
