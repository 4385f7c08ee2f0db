package config

import (
	"time"

	"github.com/go-drift/chart/pkg/charts"
	"github.com/go-drift/chart/pkg/geometry"
	"github.com/go-drift/chart/pkg/rendering"
	"github.com/go-drift/chart/pkg/scheduler"
)

// LineChart builds the chart described by ch. The config must have passed
// Validate.
func (c *Config) LineChart(ch ChartConfig) (*charts.LineChart, error) {
	lc := charts.NewLineChart(geometry.Series{
		X:      ch.X,
		Y:      ch.Y,
		XRange: ch.XRange.valueRange(),
		YRange: ch.YRange.valueRange(),
	})
	lc.Reduce = ch.Reduce
	if c.Padding != nil {
		lc.Padding = geometry.Padding(*c.Padding)
	}
	lc.XLabels = labels(ch.XLabels)
	lc.YLabels = labels(ch.YLabels)
	if ch.Scope != "" && len(lc.XLabels) == 0 {
		scope, err := geometry.ParseScope(ch.Scope)
		if err != nil {
			return nil, err
		}
		ref, err := ch.reference()
		if err != nil {
			return nil, err
		}
		lc.XLabels = scope.Labels(ref)
	}
	if err := ch.Style.apply(&lc.Style); err != nil {
		return nil, err
	}
	if ch.Stroke != nil {
		lc.Stroke = ch.Stroke.animation()
	}
	if ch.Fill != nil {
		lc.Fill = ch.Fill.animation()
	}
	if ch.Hover != nil {
		lc.Hover = ch.Hover.animation()
	}
	return lc, nil
}

func (r RangeConfig) valueRange() geometry.ValueRange {
	return geometry.ValueRange{Min: r.Min, Max: r.Max}
}

func labels(in []LabelConfig) []geometry.Label {
	if len(in) == 0 {
		return nil
	}
	out := make([]geometry.Label, len(in))
	for i, l := range in {
		out[i] = geometry.Label{Value: l.Value, Text: l.Text}
	}
	return out
}

func (a *Animation) animation() scheduler.Animation {
	return scheduler.Animation{
		Controller: a.Controller.Controller,
		Duration:   time.Duration(a.Duration),
		Delay:      time.Duration(a.Delay),
		Easing:     a.Easing,
	}
}

func (s StyleConfig) apply(st *charts.Style) error {
	colors := []struct {
		hex string
		dst *rendering.Color
	}{
		{s.Stroke, &st.Stroke},
		{s.Fill, &st.Fill},
		{s.Grid, &st.Grid},
		{s.Label, &st.Label.Color},
		{s.Hover, &st.Hover},
	}
	for _, c := range colors {
		if c.hex == "" {
			continue
		}
		v, err := rendering.ParseHex(c.hex)
		if err != nil {
			return err
		}
		*c.dst = v
	}
	if s.StrokeWidth > 0 {
		st.StrokeWidth = s.StrokeWidth
	}
	if s.GridLines > 0 {
		st.GridLines = s.GridLines
	}
	return nil
}
