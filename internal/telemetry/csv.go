package telemetry

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/actelemetry/internal/errors"
	"codeberg.org/mutker/actelemetry/internal/logger"
)

type csvRecorder struct {
	path    string
	file    *os.File
	writer  *csv.Writer
	cfg     Config
	mu      sync.Mutex
	pending int
	closed  bool
}

// FileName is the session file name for a session started at t
func FileName(t time.Time) string {
	return "ac_session_" + t.Format(fileTimeLayout) + ".csv"
}

func newCSVRecorder(cfg Config, started time.Time) (*csvRecorder, error) {
	errFactory := errors.New()

	// Ensure the directory exists
	if err := os.MkdirAll(cfg.Dir, defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.Dir,
			Error: err.Error(),
		})
	}

	path := filepath.Join(cfg.Dir, FileName(started))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, defaultFilePerm)
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "open_file",
			Path:  path,
			Error: err.Error(),
		})
	}

	r := &csvRecorder{
		path:   path,
		file:   file,
		writer: csv.NewWriter(file),
		cfg:    cfg,
	}

	if err := r.writer.Write(Header); err != nil {
		file.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}
	// the header is on disk before the first sample
	if err := r.flush(); err != nil {
		file.Close()
		return nil, err
	}

	return r, nil
}

func (r *csvRecorder) Write(row *Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errors.New().New(ErrClosed)
	}

	if err := r.writer.Write(row.Record()); err != nil {
		return errors.New().Wrap(ErrWriteFailed, err)
	}
	r.pending++

	if r.pending >= r.cfg.FlushEvery {
		return r.flush()
	}

	return nil
}

func (r *csvRecorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	return r.flush()
}

func (r *csvRecorder) flush() error {
	r.writer.Flush()
	if err := r.writer.Error(); err != nil {
		logger.Error().Err(err).Str("path", r.path).Msg("Failed to flush telemetry file")
		return errors.New().Wrap(ErrFlushFailed, err)
	}

	if r.pending > 0 {
		logger.Debug().Int("rows", r.pending).Msg("Flushed telemetry rows")
	}
	r.pending = 0

	return nil
}

func (r *csvRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	flushErr := r.flush()

	if err := r.file.Close(); err != nil {
		return errors.New().WithData(ErrStorageClose, struct {
			Phase string
			Error string
		}{
			Phase: "close_file",
			Error: err.Error(),
		})
	}
	if flushErr != nil {
		return flushErr
	}

	logger.Info().Str("path", r.path).Msg("Telemetry file closed")

	return nil
}
