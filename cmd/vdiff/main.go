package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vdiff/internal/config"
	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/internal/treefile"
	"github.com/vango-dev/vdiff/pkg/middleware"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) {
			errors.PrintError(e)
		} else {
			fmt.Fprintf(os.Stderr, "%s %s\n", color.New(color.FgRed).Sprint("Error:"), err)
		}
		os.Exit(1)
	}
}

// app holds the state shared by every command of one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer

	// Global flags.
	configPath string
	verbose    bool
	colorMode  string
	metrics    bool

	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	loader   *treefile.Loader
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:   "vdiff",
		Short: "Compute and inspect patches between UI trees",
		Long: `vdiff compares two UI trees and prints the patches that turn the
old tree into the new one.

Trees are YAML documents (see internal/treefile). Patches can be listed,
checked against an in-memory document, rendered as an HTML diff, or
encoded in the binary wire format.

Examples:
  vdiff diff old.yaml new.yaml
  vdiff diff old.yaml new.yaml --json --apply-check
  vdiff batch a1.yaml:a2.yaml b1.yaml:b2.yaml --concurrency=8
  vdiff render page.yaml --pretty`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.metrics {
				return a.writeMetrics()
			}
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to "+config.ConfigFileName+" (default: nearest one above the working directory)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log debug output to stderr")
	flags.StringVar(&a.colorMode, "color", "", "Colour output: auto, always or never (default from config)")
	flags.BoolVar(&a.metrics, "metrics", false, "Print Prometheus metrics to stderr when done")

	rootCmd.AddCommand(
		diffCmd(a),
		renderCmd(a),
		batchCmd(a),
		encodeCmd(a),
		versionCmd(a),
	)

	return rootCmd
}

// setup loads the configuration and builds the logger, metrics registry
// and tree loader.
func (a *app) setup() error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Resolve(a.configPath, wd)
	if err != nil {
		return err
	}
	if a.colorMode != "" {
		cfg.Output.Color = a.colorMode
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	a.applyColor()
	a.registry = prometheus.NewRegistry()
	a.loader = treefile.NewLoader(nil)

	if path := cfg.Path(); path != "" {
		a.logger.Debug("config loaded", "path", path)
	}
	return nil
}

func (a *app) applyColor() {
	switch a.cfg.Output.Color {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(a.out)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// diffFunc returns the engine wrapped in tracing, metrics and logging.
func (a *app) diffFunc() middleware.DiffFunc {
	return middleware.Chain(
		middleware.Engine(a.cfg.DiffOptions(a.logger)),
		middleware.OpenTelemetry(middleware.WithTracerName(a.cfg.Tracing.TracerName)),
		middleware.Prometheus(
			middleware.WithRegistry(a.registry),
			middleware.WithNamespace(a.cfg.Metrics.Namespace),
		),
		middleware.Logging(a.logger),
	)
}

func (a *app) writeMetrics() error {
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.errOut, mf); err != nil {
			return err
		}
	}
	return nil
}

// jsonOutput reports whether results are printed as JSON.
func (a *app) jsonOutput(flag bool) bool {
	return flag || a.cfg.Output.Format == config.FormatJSON
}

func usageError(format string, args ...any) error {
	return errors.New("E401").WithDetailf(format, args...)
}
