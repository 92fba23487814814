package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/weave/internal/config"
	"github.com/vango-dev/weave/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath  string
	verbose     bool
	errorFormat string
}

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		format, _ := cmd.PersistentFlags().GetString("error-format")
		printError(os.Stderr, err, format)
		os.Exit(1)
	}
}

// printError writes err to w as text, compact or json.
func printError(w io.Writer, err error, format string) {
	we, ok := err.(*errors.WeaveError)
	switch format {
	case "json":
		if !ok {
			we = errors.Newf(errors.CategoryCLI, "%s", err)
		}
		fmt.Fprintln(w, we.FormatJSON())
	case "compact":
		if !ok {
			we = errors.Newf(errors.CategoryCLI, "%s", err)
		}
		fmt.Fprintln(w, we.FormatCompact())
	default:
		if ok {
			fmt.Fprintln(w, we.Format())
		} else {
			fmt.Fprintf(w, "\033[31mError:\033[0m %s\n", err)
		}
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "weave",
		Short: "An incremental, interruptible UI rendering engine",
		Long: `weave renders component trees into a host document in small,
interruptible slices and commits each generation atomically.

Commands:
  • serve   live view of a demo app over HTTP and WebSocket
  • render  render a demo app once and write the HTML to a file or S3
  • apps    list the demo apps`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch flags.errorFormat {
			case "text", "compact", "json":
				return nil
			}
			return errors.New("W142").WithDetail(fmt.Sprintf("unknown error format %q", flags.errorFormat)).
				WithSuggestion("Use --error-format text, compact or json")
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to weave.json (default: nearest weave.json)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.errorFormat, "error-format", "text", "Error output: text, compact or json")

	rootCmd.AddCommand(
		serveCmd(flags),
		renderCmd(flags),
		appsCmd(),
		versionCmd(),
	)
	return rootCmd
}

// setup resolves the configuration and installs the default logger.
func (f *globalFlags) setup(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Resolve(f.configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
