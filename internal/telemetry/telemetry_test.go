package telemetry_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/actelemetry/internal/acpmf"
	"codeberg.org/mutker/actelemetry/internal/errors"
	"codeberg.org/mutker/actelemetry/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var started = time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	return records
}

func testSample() acpmf.Sample {
	s := acpmf.Sample{}
	s.SpeedKmh = 123.456
	s.Gas = 0.8
	s.Brake = 0
	s.SteerAngle = -0.0625
	s.Gear = 4
	s.Fuel = 30.125
	s.CurrentTime = "0:12:345"
	s.CompletedLaps = 1
	return s
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "ac_session_20240309_140507.csv", telemetry.FileName(started))
}

func TestRowRecord(t *testing.T) {
	row := telemetry.NewRow(testSample(), 1.23456, 1500.125)

	assert.Equal(t, []string{
		"1.235", "123.46", "0.800", "0.000", "-0.062", "3", "30.12", "0:12:345", "1", "2", "1500.12",
	}, row.Record())
	assert.Len(t, telemetry.Header, len(row.Record()))
}

func TestRecorderWritesHeaderAndRows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cfg := telemetry.Config{Dir: dir, FlushEvery: 100, Enabled: true}

	rec, err := telemetry.NewService(cfg, started)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ac_session_20240309_140507.csv"), rec.Path())

	// header is flushed immediately
	records := readCSV(t, rec.Path())
	require.Len(t, records, 1)
	assert.Equal(t, telemetry.Header, records[0])

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, rec.Record(ctx, telemetry.NewRow(testSample(), float64(i), 0)))
	}
	require.NoError(t, rec.Close())
	require.NoError(t, rec.Close(), "Close is idempotent")

	records = readCSV(t, rec.Path())
	require.Len(t, records, 4)
	assert.Equal(t, "2.000", records[3][0])
}

func TestRecorderFlushesEveryN(t *testing.T) {
	cfg := telemetry.Config{Dir: t.TempDir(), FlushEvery: 2, Enabled: true}

	rec, err := telemetry.NewService(cfg, started)
	require.NoError(t, err)
	defer rec.Close()

	ctx := context.Background()
	require.NoError(t, rec.Record(ctx, telemetry.NewRow(testSample(), 0, 0)))
	assert.Len(t, readCSV(t, rec.Path()), 1, "first row is still buffered")

	require.NoError(t, rec.Record(ctx, telemetry.NewRow(testSample(), 1, 0)))
	assert.Len(t, readCSV(t, rec.Path()), 3, "second row triggers a flush")

	require.NoError(t, rec.Record(ctx, telemetry.NewRow(testSample(), 2, 0)))
	require.NoError(t, rec.Flush())
	assert.Len(t, readCSV(t, rec.Path()), 4)
}

func TestRecorderRejects(t *testing.T) {
	rec, err := telemetry.NewService(telemetry.Config{Dir: t.TempDir(), FlushEvery: 1, Enabled: true}, started)
	require.NoError(t, err)

	err = rec.Record(context.Background(), nil)
	assert.True(t, errors.HasCode(err, telemetry.ErrInvalidRow))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = rec.Record(ctx, telemetry.NewRow(testSample(), 0, 0))
	assert.True(t, errors.HasCode(err, telemetry.ErrOperationTimeout))

	require.NoError(t, rec.Close())
	err = rec.Record(context.Background(), telemetry.NewRow(testSample(), 0, 0))
	assert.True(t, errors.HasCode(err, telemetry.ErrClosed))
}

func TestDisabledRecorder(t *testing.T) {
	rec, err := telemetry.NewService(telemetry.Config{Enabled: false}, started)
	require.NoError(t, err)

	assert.Empty(t, rec.Path())
	require.NoError(t, rec.Record(context.Background(), telemetry.NewRow(testSample(), 0, 0)))
	require.NoError(t, rec.Flush())
	require.NoError(t, rec.Close())
}

func TestInvalidConfig(t *testing.T) {
	_, err := telemetry.NewService(telemetry.Config{Enabled: true, FlushEvery: 10}, started)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, telemetry.ErrInvalidDir))

	_, err = telemetry.NewService(telemetry.Config{Enabled: true, Dir: t.TempDir()}, started)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, telemetry.ErrInvalidConfig))
}

func TestDefaultConfig(t *testing.T) {
	cfg := telemetry.DefaultConfig()
	assert.Equal(t, "telemetry_logs", cfg.Dir)
	assert.Equal(t, 100, cfg.FlushEvery)
	assert.True(t, cfg.Enabled)
	assert.NoError(t, cfg.Validate())
}
