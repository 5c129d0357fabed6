package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"codeberg.org/mutker/actelemetry/internal/errors"
	"github.com/shopspring/decimal"
)

const roundPlaces = 3

var (
	lapInputsHeader    = []string{"current_lap", "row_num", "gas", "brake"}
	lapSummariesHeader = []string{
		"current_lap", "samples", "start_sec", "end_sec", "duration_sec",
		"top_speed_kmh", "avg_speed_kmh", "max_gas", "max_brake", "distance_m",
	}
)

// WriteLapInputs writes rows as CSV with gas and brake rounded to 3 places
func WriteLapInputs(w io.Writer, rows []LapInput) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, lapInputsHeader)
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.CurrentLap),
			strconv.Itoa(r.RowNum),
			round(r.Gas),
			round(r.Brake),
		})
	}

	return writeAll(w, records)
}

// WriteLapSummaries writes one CSV row per lap
func WriteLapSummaries(w io.Writer, laps []LapSummary) error {
	records := make([][]string, 0, len(laps)+1)
	records = append(records, lapSummariesHeader)
	for _, l := range laps {
		records = append(records, []string{
			strconv.Itoa(l.CurrentLap),
			strconv.Itoa(l.Samples),
			round(l.StartSec),
			round(l.EndSec),
			round(l.Duration()),
			round(l.TopSpeedKmh),
			round(l.AvgSpeedKmh),
			round(l.MaxGas),
			round(l.MaxBrake),
			round(l.DistanceM),
		})
	}

	return writeAll(w, records)
}

func writeAll(w io.Writer, records [][]string) error {
	if err := csv.NewWriter(w).WriteAll(records); err != nil {
		return errors.New().Wrap(ErrWriteFailed, err)
	}

	return nil
}

func round(v float64) string {
	return decimal.NewFromFloat(v).Round(roundPlaces).String()
}
