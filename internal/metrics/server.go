package metrics

import (
	"context"
	"net/http"
	"time"

	"codeberg.org/mutker/actelemetry/internal/errors"
	"codeberg.org/mutker/actelemetry/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readHeaderTimeout = 5 * time.Second

// Serve exposes g on addr under /metrics until the server is shut down
func Serve(addr string, g prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithCode(errors.New().Wrap(ErrServeFailed, err)).
				Str("addr", addr).
				Msg("Metrics server stopped")
		}
	}()

	logger.Info().Str("addr", addr).Msg("Metrics server listening")

	return srv
}

// Shutdown stops srv, waiting at most timeout for in-flight scrapes
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errors.New().Wrap(errors.ErrTimeout, err)
		}
		return errors.New().Wrap(errors.ErrShutdownFailed, err)
	}

	return nil
}
