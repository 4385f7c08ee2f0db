// Package chart is the root of an animated chart rendering engine.
//
// The engine turns raw time series into projected geometry, fits smooth
// curves through the points, and drives a shared frame clock that paints
// animated shapes onto drawing surfaces. Once a shape reaches its final
// frame it is rendered once into an offscreen bitmap and blitted on every
// following frame instead of recomputing curve math.
//
// # Packages
//
//   - [github.com/go-drift/chart/pkg/geometry]: maps data values into surface
//     coordinates.
//   - [github.com/go-drift/chart/pkg/spline]: extreme-point reduction, control
//     points, arc-length lookup tables, area fills, hit testing.
//   - [github.com/go-drift/chart/pkg/animation]: per-phase replay policy,
//     frame clocks, easing.
//   - [github.com/go-drift/chart/pkg/scheduler]: the frame loop and render cache.
//   - [github.com/go-drift/chart/pkg/charts]: ready-made line chart shapes.
//
// This package only carries the shared logger and version information so
// that every sub-package can import it without cycles.
package chart

// Version is the current version of the engine.
const Version = "0.3.0"
