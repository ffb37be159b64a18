// Package viz hosts a particle field in the terminal.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: Bubble Tea model that owns a frame loop and a mounted field
//   - [Canvas]: Braille-based surface, two by four dots per cell
//   - Theme selection with 4 built-in color schemes
//
// Terminal resizes reseed the field, losing focus pauses it.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	M     - Cycle render mode (particles, glow, none)
//	R     - Reseed
//	T     - Cycle color themes
//	S     - Toggle stats panel
//	G     - Toggle GIF recording
//	Q     - Quit
//
// # Recording
//
// Recordings are saved to the current directory as field.gif.
package viz
