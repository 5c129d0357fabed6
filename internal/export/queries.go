package export

import (
	"context"
	"database/sql"

	"codeberg.org/mutker/actelemetry/internal/errors"
)

const (
	lapInputsSQL = `
    SELECT current_lap, row_num, gas, brake
    FROM (
        SELECT
            current_lap,
            ROW_NUMBER() OVER (PARTITION BY current_lap ORDER BY lap_time_sec) AS row_num,
            CAST(gas AS REAL) AS gas,
            CAST(brake AS REAL) AS brake
        FROM samples
    )
    ORDER BY current_lap, row_num`

	lapSummariesSQL = `
    SELECT
        current_lap,
        COUNT(*),
        MIN(lap_time_sec),
        MAX(lap_time_sec),
        MAX(speed_kmh),
        AVG(CASE WHEN speed_kmh > 5 THEN speed_kmh END),
        MAX(gas),
        MAX(brake),
        MAX(distance_m) - MIN(distance_m)
    FROM samples
    GROUP BY current_lap
    ORDER BY current_lap`
)

// LapInput is one throttle/brake sample numbered within its lap
type LapInput struct {
	CurrentLap int
	RowNum     int
	Gas        float64
	Brake      float64
}

// LapSummary aggregates the samples of one lap
type LapSummary struct {
	CurrentLap  int
	Samples     int
	StartSec    float64
	EndSec      float64
	TopSpeedKmh float64
	AvgSpeedKmh float64
	MaxGas      float64
	MaxBrake    float64
	DistanceM   float64
}

// Duration is the time between the first and last sample of the lap
func (l LapSummary) Duration() float64 {
	return l.EndSec - l.StartSec
}

// LapInputs numbers every sample within its lap in time order
func (s *Store) LapInputs(ctx context.Context) ([]LapInput, error) {
	errFactory := errors.New()

	rows, err := s.db.QueryContext(ctx, lapInputsSQL)
	if err != nil {
		return nil, errFactory.Wrap(ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []LapInput
	for rows.Next() {
		var in LapInput
		if err := rows.Scan(&in.CurrentLap, &in.RowNum, &in.Gas, &in.Brake); err != nil {
			return nil, errFactory.Wrap(ErrQueryFailed, err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(ErrQueryFailed, err)
	}

	return out, nil
}

// LapSummaries aggregates each lap
func (s *Store) LapSummaries(ctx context.Context) ([]LapSummary, error) {
	errFactory := errors.New()

	rows, err := s.db.QueryContext(ctx, lapSummariesSQL)
	if err != nil {
		return nil, errFactory.Wrap(ErrQueryFailed, err)
	}
	defer rows.Close()

	var out []LapSummary
	for rows.Next() {
		var (
			l   LapSummary
			avg sql.NullFloat64
		)
		if err := rows.Scan(
			&l.CurrentLap, &l.Samples,
			&l.StartSec, &l.EndSec,
			&l.TopSpeedKmh, &avg,
			&l.MaxGas, &l.MaxBrake,
			&l.DistanceM,
		); err != nil {
			return nil, errFactory.Wrap(ErrQueryFailed, err)
		}
		l.AvgSpeedKmh = avg.Float64
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(ErrQueryFailed, err)
	}

	return out, nil
}
