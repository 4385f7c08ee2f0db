package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-drift/chart/pkg/config"
	"github.com/go-drift/chart/pkg/preview"
)

func init() {
	RegisterCommand(&Command{
		Name:  "serve",
		Short: "Preview charts live over HTTP",
		Long: `Run the charts of a chart file in real time and serve their frames.

Open http://<addr>/charts to list the charts, and
http://<addr>/charts/<key>/frame.png for the latest frame of one chart.
Press Ctrl+C to stop.

Flags:
  --config FILE   Chart file (default: chart.yaml)
  --addr ADDR     Listen address (default: localhost:8080)`,
		Usage: "chartkit serve [--config FILE] [--addr ADDR]",
		Run:   runServe,
	})
}

func runServe(args []string) error {
	path, addr := "chart.yaml", "localhost:8080"
	for i := 0; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "-") {
			return fmt.Errorf("unexpected argument %q", args[i])
		}
		name, value, err := flagValue(args, &i)
		if err != nil {
			return err
		}
		switch name {
		case "config":
			path = value
		case "addr":
			addr = value
		default:
			return fmt.Errorf("unknown flag --%s", name)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	srv := preview.New(time.Second / time.Duration(cfg.FPS))
	for _, ch := range cfg.Charts {
		lc, err := cfg.LineChart(ch)
		if err != nil {
			return err
		}
		if err := srv.Add(ch.Key, lc, cfg.Surface()); err != nil {
			return err
		}
	}

	bound, err := srv.Listen(addr)
	if err != nil {
		return err
	}
	success.Fprintf(stdout, "Serving %d charts on http://%s/charts\n", len(cfg.Charts), bound)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
