// Package viz is the terminal host of the visualizer.
//
// It runs a Bubble Tea program with three screens: the algorithm menu, the
// parameter form that submits to the scene, and the canvas. The canvas is a
// braille surface (2x4 dots per cell) redrawn through the renderer whenever
// the scene or the viewport changes.
//
// # Key Bindings
//
//	drag, wheel - pan, zoom (mouse)
//	arrows/hjkl - pan
//	+ -         - zoom in, out
//	a           - add a fractal
//	r           - reset the view
//	p           - toggle the side panel
//	e           - export the scene as SVG
//	t           - cycle color themes
//	q           - quit
package viz
