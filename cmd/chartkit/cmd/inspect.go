package cmd

import (
	"fmt"
	"strings"

	"github.com/go-drift/chart/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Show the resolved chart file and fitted points",
		Long: `Print a chart file with every default applied, followed by the
projected points of each chart as they are fitted (after extreme-point
reduction when the chart enables it).

Flags:
  --config FILE   Chart file (default: chart.yaml)`,
		Usage: "chartkit inspect [--config FILE]",
		Run:   runInspect,
	})
}

func runInspect(args []string) error {
	path := "chart.yaml"
	for i := 0; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "-") {
			return fmt.Errorf("unexpected argument %q", args[i])
		}
		name, value, err := flagValue(args, &i)
		if err != nil {
			return err
		}
		if name != "config" {
			return fmt.Errorf("unknown flag --%s", name)
		}
		path = value
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	resolved, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "# %s\n", path)
	fmt.Fprint(stdout, string(resolved))

	for _, ch := range cfg.Charts {
		lc, err := cfg.LineChart(ch)
		if err != nil {
			return err
		}
		if err := lc.Layout(cfg.Surface()); err != nil {
			return fmt.Errorf("chart %s: %w", ch.Key, err)
		}
		fit := lc.Fit()
		fmt.Fprintln(stdout)
		heading.Fprintf(stdout, "Chart %s: %d points, %d fitted, %d samples\n", ch.Key, len(ch.Y), len(fit.Points), fit.LUT.Len())
		for i, p := range fit.Points {
			fmt.Fprintf(stdout, "  %3d  x=%8.2f  y=%8.2f\n", i, p.X, p.Y)
		}
		fmt.Fprintf(stdout, "  baseline y=%.2f\n", fit.Baseline)
		if len(lc.XLabels) > 0 {
			texts := make([]string, len(lc.XLabels))
			for i, l := range lc.XLabels {
				texts[i] = l.Text
			}
			fmt.Fprintf(stdout, "  labels: %s\n", strings.Join(texts, " "))
		}
	}
	return nil
}
