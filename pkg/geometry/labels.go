package geometry

import "github.com/go-drift/chart/pkg/rendering"

// Label is an axis label. Value is the raw data value the label marks; a
// label without a value is placed by its index, spread evenly along the axis.
type Label struct {
	Value *float64
	Text  string
}

// ValueLabel returns a label anchored at v.
func ValueLabel(v float64, text string) Label {
	return Label{Value: &v, Text: text}
}

// PlacedLabel is a label with its surface position.
type PlacedLabel struct {
	Label
	Position rendering.Offset
}

// XLabels positions labels along the bottom edge of the plot area.
func (p *Projection) XLabels(labels []Label) []PlacedLabel {
	out := make([]PlacedLabel, len(labels))
	for i, l := range labels {
		x := p.Area.Left + spread(i, len(labels), p.Area.Width())
		if l.Value != nil {
			x = p.X(*l.Value)
		}
		out[i] = PlacedLabel{Label: l, Position: rendering.Offset{X: x, Y: p.Area.Bottom}}
	}
	return out
}

// YLabels positions labels along the left edge of the plot area.
func (p *Projection) YLabels(labels []Label) []PlacedLabel {
	out := make([]PlacedLabel, len(labels))
	for i, l := range labels {
		y := p.Area.Bottom - spread(i, len(labels), p.Area.Height())
		if l.Value != nil {
			y = p.Y(*l.Value)
		}
		out[i] = PlacedLabel{Label: l, Position: rendering.Offset{X: p.Area.Left, Y: y}}
	}
	return out
}

// spread returns the offset of item i when n items are distributed evenly
// over extent, first at 0 and last at extent.
func spread(i, n int, extent float64) float64 {
	if n <= 1 {
		return extent / 2
	}
	return float64(i) / float64(n-1) * extent
}
