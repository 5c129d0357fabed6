package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/actelemetry/internal/acpmf"
	"codeberg.org/mutker/actelemetry/internal/config"
	"codeberg.org/mutker/actelemetry/internal/errors"
	"codeberg.org/mutker/actelemetry/internal/logger"
	"codeberg.org/mutker/actelemetry/internal/metrics"
	"codeberg.org/mutker/actelemetry/internal/pid"
	"codeberg.org/mutker/actelemetry/internal/poller"
	"codeberg.org/mutker/actelemetry/internal/session"
	"codeberg.org/mutker/actelemetry/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 2 * time.Second

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := pid.Write(); err != nil {
		if errors.HasCode(err, errors.ErrAlreadyRunning) {
			logger.Error().Err(err).Msg("Another actelemetry instance is already running")
		} else {
			logger.Error().Err(err).Msg("Failed to write PID file")
		}
		return 1
	}
	defer func() {
		if err := pid.Remove(); err != nil {
			logger.Warn().Err(err).Msg("Failed to remove PID file")
		}
	}()

	reader, err := acpmf.Open(cfg.PhysicsName, cfg.GraphicsName)
	if err != nil {
		if errors.HasCode(err, errors.ErrResourceNotFound) {
			logger.Error().Msg("AC shared memory not found. Is Assetto Corsa running?")
		} else {
			logger.Error().Err(err).Msg("Failed to open shared memory")
		}
		return 1
	}
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to release shared memory")
		}
	}()
	logger.Info().Msg("Connected to AC shared memory")

	start := time.Now()
	rec, err := telemetry.NewService(telemetry.Config{
		Dir:        cfg.LogDir,
		FlushEvery: cfg.FlushEvery,
		Enabled:    !cfg.Monitor,
	}, start)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create telemetry log")
		return 1
	}

	if cfg.Monitor {
		logger.Info().Msg("Monitor mode activated. Telemetry is not written to disk")
	}

	sess := session.New(start)
	logger.Debug().Str("session", sess.ID.String()).Msg("Session started")

	opts := []poller.Option{}
	if cfg.MetricsAddr != "" {
		obs, stop, err := startMetrics(cfg.MetricsAddr)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to start metrics")
			rec.Close()
			return 1
		}
		defer stop()
		opts = append(opts, poller.WithObserver(obs))
	}

	p, err := poller.New(poller.Config{
		Interval:    cfg.Interval,
		StatusEvery: cfg.StatusEvery,
		Deadzone:    cfg.Deadzone,
	}, reader, sess, rec, opts...)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create poller")
		rec.Close()
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	code := 0
	if err := p.Run(ctx); err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.ErrorWithCode(appErr).Msg("Error in main loop")
		} else {
			logger.Error().Err(err).Msg("Error in main loop")
		}
		code = 1
	}

	cleanup(rec, sess)

	return code
}

func startMetrics(addr string) (poller.Observer, func(), error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	collector, err := metrics.New(reg)
	if err != nil {
		return nil, nil, err
	}

	srv := metrics.Serve(addr, reg)
	stop := func() {
		if err := metrics.Shutdown(srv, shutdownTimeout); err != nil {
			logger.Warn().Err(err).Msg("Failed to stop metrics server")
		}
	}

	return collector, stop, nil
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func cleanup(rec telemetry.Recorder, sess *session.Session) {
	if err := rec.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close telemetry log")
	}

	report := sess.Report(time.Now(), rec.Path())
	if _, err := report.WriteTo(os.Stdout); err != nil {
		logger.Error().Err(err).Msg("Failed to print session report")
	}

	logger.Info().Msg("Exiting...")
}
