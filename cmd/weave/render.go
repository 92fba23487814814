package main

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/weave/internal/apps"
	"github.com/vango-dev/weave/internal/config"
	"github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/internal/export"
	"github.com/vango-dev/weave/pkg/dom"
	"github.com/vango-dev/weave/pkg/sched"
	"github.com/vango-dev/weave/pkg/weave"
)

const defaultMaxSlices = 10000

type renderOptions struct {
	app       string
	out       string
	pretty    bool
	maxSlices int
}

func renderCmd(flags *globalFlags) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a demo app once and write the HTML",
		Long: `Render a demo app into an in-memory document until the first
generation commits, then write a standalone HTML page.

The output is a file path or an s3://bucket/key URL. Without --out
the page goes to the configured S3 bucket, or to the export directory.

Examples:
  weave render --app counter
  weave render --app todo --out todo.html --pretty
  weave render --out s3://snapshots/weave/counter.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if opts.app == "" {
				opts.app = cfg.App
			}
			if opts.out == "" {
				opts.out = defaultTarget(cfg, opts.app)
			}

			page, err := renderApp(opts.app, opts.pretty, cfg.Slice(), opts.maxSlices, weave.WithLogger(logger))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			sink, key, err := export.Open(ctx, opts.out, export.Options{Region: cfg.Export.S3.Region})
			if err != nil {
				return err
			}
			location, err := sink.Put(ctx, key, page)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Rendered %s to %s", opts.app, location)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.app, "app", "a", "", "App to render (default from weave.json)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output path or s3://bucket/key")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the HTML")
	cmd.Flags().IntVar(&opts.maxSlices, "max-slices", defaultMaxSlices, "Give up after this many slices")

	return cmd
}

// defaultTarget returns the configured S3 object or export file for app.
func defaultTarget(cfg *config.Config, app string) string {
	name := app + ".html"
	if cfg.Export.S3.Bucket != "" {
		return "s3://" + cfg.Export.S3.Bucket + "/" + cfg.Export.S3.Prefix + name
	}
	return filepath.Join(cfg.ExportPath(), name)
}

// renderApp renders app with a manual port, giving each slice the budget
// slice, and returns the page.
func renderApp(name string, pretty bool, slice time.Duration, maxSlices int, opts ...weave.Option) ([]byte, error) {
	app, err := apps.Get(name)
	if err != nil {
		return nil, err
	}

	doc := dom.New()
	root := doc.Container("main")
	port := sched.NewManual()
	engine := weave.New(doc, port, opts...)
	engine.Render(app.Root(), root)

	_, done := port.RunUntil(
		func() bool { return !engine.Pending() },
		func() sched.Deadline { return sched.Budget(slice) },
		maxSlices,
	)
	if err := engine.Err(); err != nil {
		return nil, err
	}
	if !done {
		return nil, errors.New("W141").
			WithDetail(app.Name + " was still rendering after " + strconv.Itoa(maxSlices) + " slices.").
			WithSuggestion("Raise --max-slices")
	}
	return export.Page(app.Name, root, pretty), nil
}
