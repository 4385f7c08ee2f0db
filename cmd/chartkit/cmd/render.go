package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	chart "github.com/go-drift/chart"
	"github.com/go-drift/chart/pkg/animation"
	"github.com/go-drift/chart/pkg/charts"
	"github.com/go-drift/chart/pkg/config"
	"github.com/go-drift/chart/pkg/errors"
	"github.com/go-drift/chart/pkg/rendering"
	"github.com/go-drift/chart/pkg/scheduler"
)

// maxSettleFrames caps a render that waits for the charts to settle.
const maxSettleFrames = 3600

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render charts to PNG frames",
		Long: `Render every chart of a chart file to a sequence of PNG frames.

Frames are written to <out>/<chart key>/frame_0000.png and onwards. Time
advances by 1/fps between frames, so animations play at their configured
durations when the frames are replayed at that rate.

Flags:
  --config FILE   Chart file (default: chart.yaml)
  --out DIR       Output directory (default: frames)
  --frames N      Number of frames; 0 renders until every chart settles
  --fps N         Frame rate (default: the file's fps)
  --scale N       Supersampling factor (default: the file's scale)`,
		Usage: "chartkit render [--config FILE] [--out DIR] [--frames N] [--fps N] [--scale N]",
		Run:   runRender,
	})
}

type renderOptions struct {
	config string
	out    string
	frames int
	fps    int
	scale  int
}

func parseRenderArgs(args []string) (renderOptions, error) {
	opts := renderOptions{config: "chart.yaml", out: "frames"}
	for i := 0; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "-") {
			return opts, fmt.Errorf("unexpected argument %q", args[i])
		}
		name, value, err := flagValue(args, &i)
		if err != nil {
			return opts, err
		}
		switch name {
		case "config":
			opts.config = value
		case "out":
			opts.out = value
		case "frames":
			opts.frames, err = intFlag(name, value)
		case "fps":
			opts.fps, err = intFlag(name, value)
		case "scale":
			opts.scale, err = intFlag(name, value)
		default:
			return opts, fmt.Errorf("unknown flag --%s", name)
		}
		if err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func runRender(args []string) error {
	opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	if opts.fps == 0 {
		opts.fps = cfg.FPS
	}
	if opts.scale == 0 {
		opts.scale = cfg.Scale
	}

	r, err := newRenderer(cfg, opts.scale)
	if err != nil {
		return err
	}
	defer r.sched.Stop()

	interval := time.Second / time.Duration(opts.fps)
	n := 0
	for opts.frames == 0 || n < opts.frames {
		r.clock.Advance(interval)
		if err := r.writeFrame(opts.out, n); err != nil {
			return err
		}
		n++
		if opts.frames == 0 && (r.settled() || n >= maxSettleFrames) {
			break
		}
	}

	st := r.sched.Stats()
	success.Fprintf(stdout, "Wrote %d frames for %d charts to %s\n", n, len(r.targets), opts.out)
	fmt.Fprintf(stdout, "  live draws %d, cache builds %d, blits %d\n", st.LiveDraws, st.CacheBuilds, st.Blits)
	if st.Panics > 0 {
		return fmt.Errorf("%d paint panics recovered, see log", st.Panics)
	}
	return nil
}

// renderer drives the charts of one config on a manual clock.
type renderer struct {
	clock   *animation.ManualClock
	sched   *scheduler.Scheduler
	width   int
	height  int
	scale   int
	targets []target
}

type target struct {
	key    string
	canvas *rendering.GGCanvas
}

func newRenderer(cfg *config.Config, scale int) (*renderer, error) {
	scale = max(scale, 1)
	clock := animation.NewManualClock()
	r := &renderer{
		clock: clock,
		sched: scheduler.New(clock,
			scheduler.WithErrorHandler(&errors.LogHandler{Logger: chart.Logger()}),
		),
		width:  cfg.Width,
		height: cfg.Height,
		scale:  scale,
	}
	for _, ch := range cfg.Charts {
		lc, err := cfg.LineChart(ch)
		if err != nil {
			return nil, err
		}
		supersample(lc, scale)
		canvas := rendering.NewGGCanvas(cfg.Width*scale, cfg.Height*scale)
		g, err := lc.Group(canvas)
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", ch.Key, err)
		}
		if err := r.sched.Register(ch.Key, g); err != nil {
			return nil, err
		}
		r.targets = append(r.targets, target{key: ch.Key, canvas: canvas})
	}
	r.sched.Start()
	return r, nil
}

// supersample scales every pixel metric of lc by factor.
func supersample(lc *charts.LineChart, factor int) {
	if factor <= 1 {
		return
	}
	f := float64(factor)
	lc.Padding.Top *= f
	lc.Padding.Right *= f
	lc.Padding.Bottom *= f
	lc.Padding.Left *= f
	lc.Style.StrokeWidth *= f
	lc.Style.HoverRadius *= f
	lc.Style.Label.Scale = max(lc.Style.Label.Scale, 1) * factor
}

func (r *renderer) settled() bool {
	return r.clock.Pending() == 0
}

func (r *renderer) writeFrame(dir string, n int) error {
	for _, t := range r.targets {
		path := filepath.Join(dir, t.key, fmt.Sprintf("frame_%04d.png", n))
		if err := r.writePNG(t.canvas, path); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

func (r *renderer) writePNG(canvas *rendering.GGCanvas, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if r.scale > 1 {
		out := rendering.NewGGCanvas(r.width, r.height)
		out.DrawImage(rendering.Downscale(canvas.Image(), r.scale), rendering.Offset{})
		canvas = out
	}
	if err := canvas.EncodePNG(f); err != nil {
		return err
	}
	return f.Close()
}
