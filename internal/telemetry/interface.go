package telemetry

import (
	"context"
	"strconv"

	"codeberg.org/mutker/actelemetry/internal/acpmf"
)

// Recorder persists one row per telemetry tick
type Recorder interface {
	Record(ctx context.Context, row *Row) error
	Flush() error
	Close() error
	// Path is the output file, empty when nothing is written
	Path() string
}

// Header is the CSV column order
var Header = []string{
	"lap_time_sec", "speed_kmh", "gas", "brake", "steer",
	"gear", "fuel", "lap_time_str", "completed_laps", "current_lap", "distance_m",
}

// Row is one CSV record
type Row struct {
	Elapsed       float64
	SpeedKmh      float64
	Gas           float64
	Brake         float64
	Steer         float64
	Gear          int
	Fuel          float64
	LapTime       string
	CompletedLaps int
	CurrentLap    int
	DistanceM     float64
}

// NewRow builds the record for a sample taken elapsed seconds into the
// session, with the distance covered so far.
func NewRow(s acpmf.Sample, elapsed, distance float64) *Row {
	return &Row{
		Elapsed:       elapsed,
		SpeedKmh:      float64(s.SpeedKmh),
		Gas:           float64(s.Gas),
		Brake:         float64(s.Brake),
		Steer:         float64(s.SteerAngle),
		Gear:          s.GearDisplay(),
		Fuel:          float64(s.Fuel),
		LapTime:       s.CurrentTime,
		CompletedLaps: int(s.CompletedLaps),
		CurrentLap:    s.CurrentLap(),
		DistanceM:     distance,
	}
}

// Record returns the row formatted in Header order
func (r *Row) Record() []string {
	return []string{
		formatFloat(r.Elapsed, 3),
		formatFloat(r.SpeedKmh, 2),
		formatFloat(r.Gas, 3),
		formatFloat(r.Brake, 3),
		formatFloat(r.Steer, 3),
		strconv.Itoa(r.Gear),
		formatFloat(r.Fuel, 2),
		r.LapTime,
		strconv.Itoa(r.CompletedLaps),
		strconv.Itoa(r.CurrentLap),
		formatFloat(r.DistanceM, 2),
	}
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
