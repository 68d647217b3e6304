package modules

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/fx"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/metrics"
	"github.com/peermart/peermart-go/node/config"
	"github.com/peermart/peermart-go/notify"
)

// MetricsNamespace prefixes every exported Prometheus metric.
const MetricsNamespace = "peermart"

// LogNotifications reports notifications through the log only.
func LogNotifications() notify.Sink {
	return notify.LogSink()
}

// ServeMetrics exposes /debug/metrics on the configured listen address.
func ServeMetrics(lc fx.Lifecycle, cfg *config.Client) error {
	exporter, err := metrics.Exporter(MetricsNamespace)
	if err != nil {
		return xerrors.Errorf("creating metrics exporter: %w", err)
	}

	m := mux.NewRouter()
	m.Handle("/debug/metrics", exporter)

	srv := &http.Server{
		Handler:           m,
		ReadHeaderTimeout: 5 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", cfg.Metrics.ListenAddress)
			if err != nil {
				return xerrors.Errorf("metrics listen: %w", err)
			}
			log.Infow("serving metrics", "addr", ln.Addr().String())
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("metrics server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: srv.Shutdown,
	})
	return nil
}
