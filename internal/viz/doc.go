// Package viz hosts the particle field in a terminal.
//
// The package implements a TUI using the Bubble Tea framework:
//
//   - [Model]: Bubble Tea model that pumps the frame queue on every tick
//   - [Canvas]: Braille-based surface the renderer draws into
//   - Theme selection with 6 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume animation
//	T     - Cycle color themes
//	S     - Toggle the stats panel
//	Q/Esc - Stop the renderer and quit
package viz
