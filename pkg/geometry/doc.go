// Package geometry maps raw data values into drawing-surface coordinates.
//
// Values are linearly interpolated from a value range (explicit or computed
// from the data) into the plot area left after subtracting the chart
// padding. The y axis is flipped so that larger values are drawn higher up.
// Labels are projected through the same ranges as the data, so they stay
// aligned with the plotted points when the surface is resized.
package geometry
