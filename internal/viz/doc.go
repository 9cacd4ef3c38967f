// Package viz renders the wave field in the terminal.
//
// The live view is a Bubble Tea program: every TickMsg becomes one
// driver Tick, and the heights of a thinned grid are projected as a point
// cloud onto a braille [Canvas] and shaded from the appearance tint towards
// the theme crest.
//
//   - [Model]: live view with clock overlay, layer readouts and charts
//   - [Canvas]: braille dot buffer with a per-cell level for shading
//   - [Camera]: orbit camera; zoom eases on a harmonica spring
//   - Five themes, cycled with T
//
// # Key Bindings
//
//	Space - Pause/Resume
//	C     - Clock overlay
//	A     - About panel
//	O     - Plane outline
//	M     - AM/PM suffix on the clock
//	+/-   - Point size
//	T     - Cycle color themes
//	x/y/z - Orbit (shift reverses)
//	[/]   - Zoom out/in
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// In the preset menu, E on the running field reopens the tuning screen and
// S applies the edits to the same driver.
//
// # Recording
//
// G starts and stops capture; frames are written as an animated GIF, one
// palette entry per shade step.
package viz
