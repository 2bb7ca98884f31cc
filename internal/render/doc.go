// Package render owns the drawing surface and the world to device transform.
//
// A [Renderer] redraws the whole scene on every call: it clears the
// [Surface], translates the world origin to the viewport center plus the pan
// offset, scales by the zoom factor, draws the axes and then every fractal
// instance in insertion order.
//
// Surfaces:
//
//   - [GGSurface]: raster output through github.com/gogpu/gg (PNG)
//   - [BrailleSurface]: terminal output, 2x4 braille dots per cell
//
// The export package adds an SVG surface.
package render
