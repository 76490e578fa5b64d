//go:build !raylib

package gui

import (
	"log/slog"

	"github.com/san-kum/neuralbg/internal/config"
)

// Available reports whether the raylib backend was compiled in.
func Available() bool { return false }

func Run(_ *config.Config, _ *slog.Logger) error {
	return ErrBackendUnavailable
}
