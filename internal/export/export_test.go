package export_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/mutker/actelemetry/internal/errors"
	"codeberg.org/mutker/actelemetry/internal/export"
	"codeberg.org/mutker/actelemetry/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionCSV = `lap_time_sec,speed_kmh,gas,brake,steer,gear,fuel,lap_time_str,completed_laps,current_lap,distance_m
0.020,10.00,0.500,0.000,0.010,1,40.00,0:00:020,0,1,0.00
0.010,4.00,0.25049,0.000,0.000,1,40.00,0:00:010,0,1,0.00
0.030,20.00,1.000,0.000,-0.020,2,39.99,0:00:030,0,1,0.10
1.000,100.00,0.000,0.8765,0.100,3,39.90,0:00:001,1,2,20.00
1.010,80.00,0.000,1.000,0.050,3,39.90,0:00:011,1,2,20.25
`

func openStore(t *testing.T, cfg export.Config) *export.Store {
	t.Helper()

	store, err := export.Open(context.Background(), cfg, logger.Default())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestImportAndLapInputs(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, export.DefaultConfig())

	n, err := store.Import(ctx, strings.NewReader(sessionCSV))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	rows, err := store.LapInputs(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	// ordered by lap, numbered by lap_time_sec within the lap
	assert.Equal(t, export.LapInput{CurrentLap: 1, RowNum: 1, Gas: 0.25049, Brake: 0}, rows[0])
	assert.Equal(t, export.LapInput{CurrentLap: 1, RowNum: 2, Gas: 0.5, Brake: 0}, rows[1])
	assert.Equal(t, export.LapInput{CurrentLap: 1, RowNum: 3, Gas: 1, Brake: 0}, rows[2])
	assert.Equal(t, export.LapInput{CurrentLap: 2, RowNum: 1, Gas: 0, Brake: 0.8765}, rows[3])
	assert.Equal(t, 2, rows[4].RowNum)

	var buf bytes.Buffer
	require.NoError(t, export.WriteLapInputs(&buf, rows))
	assert.Equal(t, `current_lap,row_num,gas,brake
1,1,0.25,0
1,2,0.5,0
1,3,1,0
2,1,0,0.877
2,2,0,1
`, buf.String())
}

func TestLapSummaries(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, export.DefaultConfig())

	_, err := store.Import(ctx, strings.NewReader(sessionCSV))
	require.NoError(t, err)

	laps, err := store.LapSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, laps, 2)

	first := laps[0]
	assert.Equal(t, 1, first.CurrentLap)
	assert.Equal(t, 3, first.Samples)
	assert.InDelta(t, 0.02, first.Duration(), 1e-9)
	assert.InDelta(t, 20, first.TopSpeedKmh, 1e-9)
	assert.InDelta(t, 15, first.AvgSpeedKmh, 1e-9, "4 km/h is excluded from the average")
	assert.InDelta(t, 1, first.MaxGas, 1e-9)
	assert.InDelta(t, 0.1, first.DistanceM, 1e-9)

	second := laps[1]
	assert.Equal(t, 2, second.CurrentLap)
	assert.InDelta(t, 1, second.MaxBrake, 1e-9)
	assert.InDelta(t, 0.25, second.DistanceM, 1e-9)

	var buf bytes.Buffer
	require.NoError(t, export.WriteLapSummaries(&buf, laps))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "current_lap,samples,start_sec,end_sec,duration_sec,top_speed_kmh,avg_speed_kmh,max_gas,max_brake,distance_m", lines[0])
	assert.Equal(t, "1,3,0.01,0.03,0.02,20,15,1,0,0.1", lines[1])
}

func TestImportReplacesPreviousSamples(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, export.DefaultConfig())

	_, err := store.Import(ctx, strings.NewReader(sessionCSV))
	require.NoError(t, err)

	n, err := store.Import(ctx, strings.NewReader("current_lap,lap_time_sec,gas,brake\n3,0.5,0.1,0.2\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows, err := store.LapInputs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []export.LapInput{{CurrentLap: 3, RowNum: 1, Gas: 0.1, Brake: 0.2}}, rows)
}

func TestImportErrors(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, export.DefaultConfig())

	_, err := store.Import(ctx, strings.NewReader("lap_time_sec,gas,brake\n0.1,0.2,0.3\n"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, export.ErrMissingColumn))

	_, err = store.Import(ctx, strings.NewReader("lap_time_sec,gas,brake,current_lap\n0.1,abc,0.3,1\n"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, export.ErrInvalidRecord))

	_, err = store.Import(ctx, strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, export.ErrReadCSV))

	_, err = store.ImportFile(ctx, filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, export.ErrReadCSV))
}

func TestFileStoreSchema(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "db", "export.db")

	store, err := export.Open(ctx, export.Config{DBPath: dbPath}, logger.Default())
	require.NoError(t, err)

	csvPath := filepath.Join(t.TempDir(), "session.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sessionCSV), 0o600))
	n, err := store.ImportFile(ctx, csvPath)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.NoError(t, store.Close())

	// reopening keeps the current schema and its data
	store = openStore(t, export.Config{DBPath: dbPath})
	rows, err := store.LapInputs(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestInvalidConfig(t *testing.T) {
	_, err := export.Open(context.Background(), export.Config{}, logger.Default())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, export.ErrInvalidDBPath))
}
