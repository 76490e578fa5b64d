package gui

import "errors"

// ErrBackendUnavailable is returned by Run when the binary was built
// without the raylib tag.
var ErrBackendUnavailable = errors.New("gui: raylib backend not built in (rebuild with -tags raylib)")
