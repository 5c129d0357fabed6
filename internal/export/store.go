// Package export loads session CSV files into SQLite and reshapes them with
// SQL queries.
package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/mutker/actelemetry/internal/errors"
	"codeberg.org/mutker/actelemetry/internal/logger"
	_ "github.com/mattn/go-sqlite3"
)

// columns every import needs; the rest default to zero values
var requiredColumns = []string{"lap_time_sec", "gas", "brake", "current_lap"}

type Store struct {
	db     *sql.DB
	logger logger.Logger
	cfg    Config
}

func Open(ctx context.Context, cfg Config, log logger.Logger) (*Store, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	dsn := cfg.DBPath
	if !cfg.inMemory() {
		// Ensure the directory exists
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
			return nil, errFactory.WithData(ErrStorageInit, struct {
				Phase string
				Path  string
				Error string
			}{
				Phase: "create_directory",
				Path:  cfg.DBPath,
				Error: err.Error(),
			})
		}
		dsn += "?_journal=WAL&_auto_vacuum=2"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}
	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	if err := ValidateAndUpdateSchema(ctx, db, log); err != nil {
		db.Close()
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "schema_version",
			Error: err.Error(),
		})
	}

	log.Debug().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Msg("Export store initialized")

	return &Store{
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

// ImportFile replaces the stored samples with the contents of a session CSV
func (s *Store) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.New().Wrap(ErrReadCSV, err)
	}
	defer f.Close()

	return s.Import(ctx, f)
}

// Import replaces the stored samples with the CSV read from r. The header row
// is matched by name, case-insensitively.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	errFactory := errors.New()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, errFactory.Wrap(ErrReadCSV, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return 0, errFactory.WithData(ErrMissingColumn, name)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errFactory.Wrap(ErrTransactionFailed, err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				s.logger.Error().Err(err).Msg("Failed to roll back transaction")
			}
		}
	}()

	if _, err := tx.ExecContext(ctx, clearSamplesSQL); err != nil {
		return 0, errFactory.Wrap(ErrTransactionFailed, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSampleSQL)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to prepare statement")
		return 0, errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, errFactory.Wrap(ErrReadCSV, err)
		}

		values, err := parseRecord(cols, record)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return 0, errFactory.WithData(ErrInvalidRecord, struct {
				Line  int
				Error string
			}{
				Line:  line,
				Error: err.Error(),
			})
		}

		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			s.logger.Error().Err(err).Msg("Failed to execute insert")
			return 0, errFactory.Wrap(ErrTransactionFailed, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to commit transaction")
		return 0, errFactory.Wrap(ErrTransactionFailed, err)
	}
	committed = true

	s.logger.Debug().Int("records", count).Msg("Imported samples")

	return count, nil
}

func parseRecord(cols map[string]int, record []string) ([]interface{}, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	float := func(name string) (float64, error) {
		v := field(name)
		if v == "" {
			return 0, nil
		}
		return strconv.ParseFloat(v, 64)
	}
	integer := func(name string) (int64, error) {
		v := field(name)
		if v == "" {
			return 0, nil
		}
		return strconv.ParseInt(v, 10, 64)
	}

	var (
		values = make([]interface{}, 0, 11)
		err    error
	)
	for _, name := range []string{"lap_time_sec", "speed_kmh", "gas", "brake", "steer"} {
		var f float64
		if f, err = float(name); err != nil {
			return nil, err
		}
		values = append(values, f)
	}

	gear, err := integer("gear")
	if err != nil {
		return nil, err
	}
	fuel, err := float("fuel")
	if err != nil {
		return nil, err
	}
	completed, err := integer("completed_laps")
	if err != nil {
		return nil, err
	}
	current, err := integer("current_lap")
	if err != nil {
		return nil, err
	}
	distance, err := float("distance_m")
	if err != nil {
		return nil, err
	}

	return append(values, gear, fuel, field("lap_time_str"), completed, current, distance), nil
}

func (s *Store) Close() error {
	if !s.cfg.inMemory() {
		// Checkpoint WAL and cleanup on close
		if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
			return errors.New().WithData(ErrStorageClose, struct {
				Phase string
				Error string
			}{
				Phase: "checkpoint_wal",
				Error: err.Error(),
			})
		}
	}

	if err := s.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}

	return nil
}
