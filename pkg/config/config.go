// Package config loads chart descriptions from YAML files.
//
// A file describes the output surface and one or more line charts:
//
//	version: v1.0.0
//	width: 640
//	height: 320
//	charts:
//	  - key: visits
//	    scope: week
//	    y: [3, 7, 4, 9, 6, 6, 10]
//	    stroke:
//	      controller: 1
//	      duration: 1200ms
//	      easing: easeInOutCubic
//	    fill:
//	      controller: [true, false]
//	      duration: 800ms
//	      delay: 400ms
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/chart/pkg/animation"
	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/geometry"
	"github.com/go-drift/chart/pkg/rendering"
)

// SchemaMajor is the only config schema major version understood.
const SchemaMajor = "v1"

// Defaults applied to missing fields.
const (
	DefaultVersion = "v1.0.0"
	DefaultWidth   = 640
	DefaultHeight  = 320
	DefaultScale   = 1
	DefaultFPS     = 60
)

// Config is the root of a chart file.
type Config struct {
	Version string         `yaml:"version"`
	Width   int            `yaml:"width"`
	Height  int            `yaml:"height"`
	Scale   int            `yaml:"scale"`
	FPS     int            `yaml:"fps"`
	Padding *PaddingConfig `yaml:"padding,omitempty"`
	Charts  []ChartConfig  `yaml:"charts"`
}

// PaddingConfig insets the plot area.
type PaddingConfig struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// ChartConfig describes one line chart.
type ChartConfig struct {
	Key string `yaml:"key"`
	// Scope generates x labels for week, month or year aggregates.
	Scope string `yaml:"scope,omitempty"`
	// Reference is the date (YYYY-MM-DD) whose month sizes a month scope.
	Reference string        `yaml:"reference,omitempty"`
	Reduce    bool          `yaml:"reduce,omitempty"`
	X         []float64     `yaml:"x,omitempty"`
	Y         []float64     `yaml:"y"`
	XRange    RangeConfig   `yaml:"xRange,omitempty"`
	YRange    RangeConfig   `yaml:"yRange,omitempty"`
	XLabels   []LabelConfig `yaml:"xLabels,omitempty"`
	YLabels   []LabelConfig `yaml:"yLabels,omitempty"`
	Style     StyleConfig   `yaml:"style,omitempty"`
	Stroke    *Animation    `yaml:"stroke,omitempty"`
	Fill      *Animation    `yaml:"fill,omitempty"`
	Hover     *Animation    `yaml:"hover,omitempty"`
}

// RangeConfig is an optional value range.
type RangeConfig struct {
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`
}

// LabelConfig is an axis label; labels without a value are spread evenly.
type LabelConfig struct {
	Value *float64 `yaml:"value,omitempty"`
	Text  string   `yaml:"text"`
}

// StyleConfig overrides the default chart style. Colors are "#RRGGBB" or
// "#AARRGGBB".
type StyleConfig struct {
	Stroke      string  `yaml:"stroke,omitempty"`
	StrokeWidth float64 `yaml:"strokeWidth,omitempty"`
	Fill        string  `yaml:"fill,omitempty"`
	Grid        string  `yaml:"grid,omitempty"`
	GridLines   int     `yaml:"gridLines,omitempty"`
	Label       string  `yaml:"label,omitempty"`
	Hover       string  `yaml:"hover,omitempty"`
}

// Animation configures a shape phase.
type Animation struct {
	Controller Controller `yaml:"controller"`
	Duration   Duration   `yaml:"duration,omitempty"`
	Delay      Duration   `yaml:"delay,omitempty"`
	Easing     string     `yaml:"easing,omitempty"`
}

// Controller decodes an animation controller: an integer replay limit or
// a list of per-cycle booleans.
type Controller struct {
	animation.Controller
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Controller) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var n int
		if err := node.Decode(&n); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, errors.ErrInvalidController)
		}
		c.Controller = animation.ReplayLimit(n)
	case yaml.SequenceNode:
		var cycles []bool
		if err := node.Decode(&cycles); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, errors.ErrInvalidController)
		}
		c.Controller = animation.PerCycle(cycles)
	default:
		return fmt.Errorf("line %d: %w", node.Line, errors.ErrInvalidController)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Controller) MarshalYAML() (any, error) {
	switch v := c.Controller.(type) {
	case animation.ReplayLimit:
		return int(v), nil
	case animation.PerCycle:
		return []bool(v), nil
	default:
		return nil, nil
	}
}

// Duration decodes "1200ms"-style strings or plain integers (milliseconds).
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var ms int64
	if err := node.Decode(&ms); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("config.Load", fmt.Errorf("failed to read %s: %w", path, err))
	}
	return Parse(data)
}

// Parse decodes data, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Config("config.Parse", fmt.Errorf("failed to parse chart file: %w", err))
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Version) == "" {
		c.Version = DefaultVersion
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.Scale == 0 {
		c.Scale = DefaultScale
	}
	if c.FPS == 0 {
		c.FPS = DefaultFPS
	}
	for i := range c.Charts {
		ch := &c.Charts[i]
		if len(ch.X) == 0 {
			ch.X = make([]float64, len(ch.Y))
			for j := range ch.X {
				ch.X[j] = float64(j)
			}
		}
	}
}

// Validate checks the schema version and every chart.
func (c *Config) Validate() error {
	const op = "config.Validate"
	v := c.Version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) || semver.Major(v) != SchemaMajor {
		return errors.Config(op, fmt.Errorf("%w: %q (want %s.x.y)", errors.ErrUnsupportedSchema, c.Version, SchemaMajor))
	}
	if c.Width <= 0 || c.Height <= 0 || c.Scale <= 0 || c.FPS <= 0 {
		return errors.Config(op, fmt.Errorf("width, height, scale and fps must be positive"))
	}
	if len(c.Charts) == 0 {
		return errors.Config(op, fmt.Errorf("no charts defined"))
	}
	seen := make(map[string]bool)
	for i, ch := range c.Charts {
		if err := ch.validate(); err != nil {
			return errors.Config(op, fmt.Errorf("charts[%d]: %w", i, err))
		}
		if seen[ch.Key] {
			return errors.Config(op, fmt.Errorf("charts[%d]: duplicate key %q", i, ch.Key))
		}
		seen[ch.Key] = true
	}
	return nil
}

func (ch ChartConfig) validate() error {
	if strings.TrimSpace(ch.Key) == "" {
		return fmt.Errorf("missing key")
	}
	if len(ch.Y) == 0 {
		return fmt.Errorf("%s: no y values", ch.Key)
	}
	if len(ch.X) != len(ch.Y) {
		return fmt.Errorf("%s: %w", ch.Key, errors.ErrLengthMismatch)
	}
	if ch.Scope != "" {
		if _, err := geometry.ParseScope(ch.Scope); err != nil {
			return fmt.Errorf("%s: %w", ch.Key, err)
		}
	}
	if _, err := ch.reference(); err != nil {
		return fmt.Errorf("%s: reference: %w", ch.Key, err)
	}
	for _, r := range []RangeConfig{ch.XRange, ch.YRange} {
		if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
			return fmt.Errorf("%s: range min %v above max %v", ch.Key, *r.Min, *r.Max)
		}
	}
	for _, name := range []string{ch.Style.Stroke, ch.Style.Fill, ch.Style.Grid, ch.Style.Label, ch.Style.Hover} {
		if name == "" {
			continue
		}
		if _, err := rendering.ParseHex(name); err != nil {
			return fmt.Errorf("%s: %w", ch.Key, err)
		}
	}
	for _, a := range []*Animation{ch.Stroke, ch.Fill, ch.Hover} {
		if a == nil {
			continue
		}
		if a.Controller.Controller == nil {
			return fmt.Errorf("%s: %w", ch.Key, errors.ErrNilController)
		}
		if _, ok := animation.EasingByName(a.Easing); !ok {
			return fmt.Errorf("%s: %w %q (known: %s)", ch.Key, errors.ErrUnknownEasing, a.Easing,
				strings.Join(animation.EasingNames(), ", "))
		}
		if a.Duration < 0 || a.Delay < 0 {
			return fmt.Errorf("%s: negative duration or delay", ch.Key)
		}
	}
	return nil
}

func (ch ChartConfig) reference() (time.Time, error) {
	if ch.Reference == "" {
		return animation.Now(), nil
	}
	return time.Parse(time.DateOnly, ch.Reference)
}

// Surface returns the output size in logical pixels.
func (c *Config) Surface() rendering.Size {
	return rendering.Size{Width: float64(c.Width), Height: float64(c.Height)}
}

// Marshal encodes the config back to YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
