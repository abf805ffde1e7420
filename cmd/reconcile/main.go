package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reconciler/internal/config"
	rerrors "github.com/vango-dev/reconciler/internal/errors"
	"github.com/vango-dev/reconciler/pkg/element"
	"github.com/vango-dev/reconciler/pkg/fixture"
	"github.com/vango-dev/reconciler/pkg/observe"
	"github.com/vango-dev/reconciler/pkg/preview"
	"github.com/vango-dev/reconciler/pkg/reconcile"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		rerrors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

// app is the state shared by every command, built before the command runs.
type app struct {
	configPath string
	dir        string
	traceSpans bool

	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *observe.Metrics
	provider *observe.Provider
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Mount element trees into an in-memory host and inspect the result",
		Long: `reconcile mounts element tree documents (YAML or JSON) into an
in-memory host tree and shows what the reconciler did:

  • the rendered HTML of the host tree
  • the trace of host adapter calls for each pass
  • an HTML diff between two documents mounted in sequence
  • a live preview server with a WebSocket trace stream

Documents may use the built-in Card and Counter components.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.shutdown(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: reconcile.yaml in --dir)")
	rootCmd.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "Project directory")
	rootCmd.PersistentFlags().BoolVar(&a.traceSpans, "trace-spans", false, "Export OpenTelemetry spans to stderr")

	rootCmd.AddCommand(
		renderCmd(a),
		diffCmd(a),
		watchCmd(a),
		serveCmd(a),
		snapshotCmd(a),
		initCmd(a),
		versionCmd(),
	)

	return rootCmd
}

// setup loads configuration and builds the logger and observers.
func (a *app) setup(stderr io.Writer) error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.Load(a.dir)
	}
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Log.Logger(stderr)
	slog.SetDefault(a.logger)
	a.logger.Debug("config loaded", "config", cfg.String())

	a.registry = prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		a.metrics = observe.NewMetrics(
			observe.WithNamespace(cfg.Metrics.Namespace),
			observe.WithRegistry(a.registry),
		)
	}

	exporter := cfg.Tracing.Exporter
	if a.traceSpans {
		exporter = "stdout"
	}
	a.provider, err = observe.NewProvider(observe.ProviderConfig{
		Enabled:     cfg.Tracing.Enabled || a.traceSpans,
		Exporter:    exporter,
		Writer:      stderr,
		ServiceName: cfg.Tracing.Tracer,
	})
	return err
}

func (a *app) shutdown(ctx context.Context) error {
	if a.provider == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return a.provider.Shutdown(ctx)
}

// managerOptions wires the logger and the configured observers into a
// Manager.
func (a *app) managerOptions() []reconcile.Option {
	var observers []reconcile.Observer
	if a.metrics != nil {
		observers = append(observers, a.metrics)
	}
	if a.provider != nil && a.provider.Enabled() {
		observers = append(observers, observe.NewTracer(observe.WithTracer(a.provider.Tracer())))
	}

	opts := []reconcile.Option{reconcile.WithLogger(a.logger)}
	if len(observers) > 0 {
		opts = append(opts, reconcile.WithObserver(reconcile.Observers(observers...)))
	}
	return opts
}

func (a *app) newSession() *preview.Session {
	return preview.NewSession(a.managerOptions()...)
}

func (a *app) decode(path string) (element.Element, error) {
	return fixture.DecodeFile(path, components())
}

// mountFile decodes path and mounts it into s.
func (a *app) mountFile(s *preview.Session, path string) (preview.Update, error) {
	el, err := a.decode(path)
	if err != nil {
		return preview.Update{}, err
	}
	return s.Mount(el)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}

// printTrace writes one adapter call per line.
func printTrace(w io.Writer, trace []string) {
	for _, line := range trace {
		fmt.Fprintln(w, line)
	}
}
