package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/bcdxn/f1replay/internal/jolpica"
	"github.com/bcdxn/f1replay/internal/logger"
	"github.com/bcdxn/f1replay/internal/openf1"
	"github.com/bcdxn/f1replay/internal/replay"
	"github.com/bcdxn/f1replay/internal/tui"
)

func main() {
	ctx, cancelCtx := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancelCtx()
	l, f := logger.New()
	defer f.Close()

	// client for season schedules, results and lap times; the response cache
	// keeps menu navigation off the network for repeat lookups
	stats := jolpica.New(jolpica.WithLogger(l), jolpica.WithCache())
	// client for positional telemetry
	telemetry := openf1.New(openf1.WithLogger(l))
	// loader assembles the replay data set before the frame loop starts
	loader := replay.NewLoader(
		replay.WithLapSource(stats),
		replay.WithTelemetrySource(telemetry),
		replay.WithLoaderLogger(l),
	)

	app := tui.NewApp(
		tui.WithContext(ctx),
		tui.WithLogger(l),
		tui.WithFetcher(stats),
		tui.WithLoader(loader),
	)
	if _, err := app.Run(); err != nil && ctx.Err() == nil {
		l.Error("tui exited with error", "err", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	l.Debug("tui exited")
}
