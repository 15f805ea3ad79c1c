package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	navio "github.com/navio-dev/navio"
	"github.com/navio-dev/navio/pkg/browser"
	"github.com/navio-dev/navio/pkg/middleware"
	"github.com/navio-dev/navio/pkg/nav"
	"github.com/navio-dev/navio/pkg/program"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser host and run an application against a real tab",
		Long: `Starts the browser host: open the printed address in a browser and
the tab's history becomes the application's platform. Location changes
are logged, navigations show up in the tab's address bar, and Prometheus
metrics are exposed at /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":3000", "listen address")
	return cmd
}

func runServe(addr string) error {
	logger := slog.Default().With("component", "serve")

	host, err := browser.NewHost(nil)
	if err != nil {
		return err
	}
	defer host.Close()

	metrics, err := middleware.NewMetrics()
	if err != nil {
		return err
	}
	platform := middleware.Trace(metrics.Instrument(host))

	app := navio.App[navio.Location, navio.Location]{
		Init: func(loc navio.Location) (navio.Location, []navio.Command) {
			return loc, nil
		},
		Update: func(msg navio.Location, model navio.Location) (navio.Location, []navio.Command) {
			return msg, nil
		},
		View: func(model navio.Location) string {
			return model.Href
		},
	}

	runner := navio.Program(
		func(loc navio.Location) navio.Location { return loc },
		app,
		platform,
		program.WithBridgeOptions(nav.WithObserver(metrics)),
		program.WithRenderer(func(view string) {
			logger.Info("location", "href", view)
		}),
	)

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", host.Handler())

	srv := &http.Server{Addr: addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		fmt.Printf("open http://localhost%s in a browser\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	go func() {
		// The application only starts mattering once a tab attaches,
		// but the runner is safe to start immediately: a detached
		// host just reports the zero snapshot.
		runner.Run(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
