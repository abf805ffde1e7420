package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconciler/internal/watch"
	"github.com/vango-dev/reconciler/pkg/preview"
)

func watchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-mount a document every time it changes",
		Long: `Mount a document, then watch it and mount it again into the same
container on every change, printing the host adapter calls of each pass.

Stateful components keep their instances across passes as long as the
element type at their position does not change.

Examples:
  reconcile watch app.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			s := a.newSession()

			pass := func() {
				u, err := a.mountFile(s, args[0])
				if err != nil {
					errorMsg(errOut, "%v", err)
					return
				}
				success(out, "pass %d: %d host calls", u.Version, len(u.Trace))
				printTrace(out, u.Trace)
			}

			pass()
			info(out, "watching %s", args[0])
			return runWatcher(ctx, a, args[0], func([]string) { pass() })
		},
	}

	return cmd
}

func serveCmd(a *app) *cobra.Command {
	var (
		addr      string
		watchFile bool
	)

	cmd := &cobra.Command{
		Use:   "serve FILE",
		Short: "Start the preview server",
		Long: `Mount a document and serve a live preview of the host tree.

Routes:
  /         preview page
  /tree     current HTML
  /trace    WebSocket stream of passes
  /metrics  Prometheus metrics
  /healthz  liveness probe

Examples:
  reconcile serve app.yaml
  reconcile serve app.yaml --watch
  reconcile serve app.yaml --addr=0.0.0.0:8080`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Preview.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := preview.NewServer(a.newSession(),
				preview.WithGatherer(a.registry),
				preview.WithLogger(a.logger),
			)
			apply := func() {
				el, err := a.decode(args[0])
				if err != nil {
					srv.Fail(err)
					return
				}
				srv.Apply(el)
			}
			apply()

			if watchFile {
				go func() {
					err := runWatcher(ctx, a, args[0], func([]string) { apply() })
					if err != nil {
						a.logger.Error("watch stopped", "error", err)
					}
				}()
			}

			success(cmd.OutOrStdout(), "Preview at http://%s", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "Re-mount on file change")

	return cmd
}

// runWatcher calls onChange for every debounced change to path until ctx
// is cancelled. Cancellation is not an error.
func runWatcher(ctx context.Context, a *app, path string, onChange func([]string)) error {
	w, err := watch.New(watch.Config{
		Files:    []string{path},
		Debounce: a.cfg.Watch.Debounce,
		Logger:   a.logger,
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	err = w.Run(ctx, onChange)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
