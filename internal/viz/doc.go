// Package viz renders mechanisms and sweep results in the terminal.
//
//   - [Canvas]: braille pixel grid for high-resolution line art
//   - [PoseRenderer]: projects a posed mechanism onto the x-z plane
//   - [Explorer]: Bubble Tea pose browser over the model registry
//   - [PlotSeries]/[PlotResult]: asciigraph charts for sweep columns
//   - [CanvasSVG]/[PoseSVG]: SVG export of rendered poses
//
// # Explorer key bindings
//
//	j/k   - select model or coordinate
//	h/l   - move the coordinate along its chart axis
//	+/-   - double/halve the step
//	r     - reset to the reference configuration
//	n     - draw a random configuration
//	esc   - back to the model list
//	?     - toggle help
package viz
