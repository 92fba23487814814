package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/weave/internal/apps"
	"github.com/vango-dev/weave/internal/devserver"
	"github.com/vango-dev/weave/internal/telemetry"
	"github.com/vango-dev/weave/pkg/sched"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		appName string
		addr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live view of a demo app",
		Long: `Serve a demo app rendered into an in-memory document.

The page at / stays in sync with every commit over a WebSocket and
forwards clicks and input back to the app's listeners.

Examples:
  weave serve
  weave serve --app todo
  weave serve --addr 0.0.0.0:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, flags, appName, addr)
		},
	}

	cmd.Flags().StringVarP(&appName, "app", "a", "", "App to serve (default from weave.json)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from weave.json)")

	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, flags *globalFlags, appName, addr string) error {
	cfg, logger, err := flags.setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if appName == "" {
		appName = cfg.App
	}
	if addr == "" {
		addr = cfg.Address()
	}
	app, err := apps.Get(appName)
	if err != nil {
		return err
	}

	loop := sched.NewLoop(
		sched.WithInterval(cfg.Interval()),
		sched.WithSlice(cfg.Slice()),
		sched.WithLogger(logger.With("component", "sched")),
	)

	opts := devserver.Options{
		App:            app,
		Loop:           loop,
		Logger:         logger,
		Observer:       telemetry.NewTracer(),
		YieldThreshold: cfg.YieldThreshold(),
		HookOrder:      cfg.Debug.HookOrder,
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts.Metrics = telemetry.NewMetrics(
			telemetry.WithRegistry(reg),
			telemetry.WithNamespace(cfg.Metrics.Namespace),
		)
		opts.Gatherer = reg
	}
	server := devserver.New(opts)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(ctx)
	})
	g.Go(func() error {
		return server.ListenAndServe(ctx, addr)
	})
	g.Go(func() error {
		if err := server.Mount(ctx); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Serving %s on http://%s", app.Name, addr)
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
