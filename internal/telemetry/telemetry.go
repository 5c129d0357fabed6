package telemetry

import (
	"context"
	"time"

	"codeberg.org/mutker/actelemetry/internal/errors"
	"codeberg.org/mutker/actelemetry/internal/logger"
)

type service struct {
	repo *csvRecorder
	cfg  Config
}

// No-op implementation
type noopRecorder struct{}

// NewService opens a session file named after started. A disabled config
// yields a recorder that drops every row.
func NewService(cfg Config, started time.Time) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		logger.Debug().Msg("Telemetry recording disabled, using no-op recorder")
		return &noopRecorder{}, nil
	}

	repo, err := newCSVRecorder(cfg, started)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", repo.path).
		Int("flush_every", cfg.FlushEvery).
		Msg("Telemetry recorder initialized")

	return &service{
		repo: repo,
		cfg:  cfg,
	}, nil
}

func (s *service) Record(ctx context.Context, row *Row) error {
	errFactory := errors.New()

	if row == nil {
		return errFactory.New(ErrInvalidRow)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		return s.repo.Write(row)
	}
}

func (s *service) Flush() error {
	return s.repo.Flush()
}

func (s *service) Close() error {
	return s.repo.Close()
}

func (s *service) Path() string {
	return s.repo.path
}

func (*noopRecorder) Record(_ context.Context, _ *Row) error {
	return nil
}

func (*noopRecorder) Flush() error {
	return nil
}

func (*noopRecorder) Close() error {
	return nil
}

func (*noopRecorder) Path() string {
	return ""
}
