package session

import (
	"time"

	"codeberg.org/mutker/actelemetry/internal/acpmf"
	"github.com/google/uuid"
)

// Session is the lifetime of one logger run
type Session struct {
	ID            uuid.UUID
	Start         time.Time
	Samples       int
	Car           *Car
	CompletedLaps int
	Status        acpmf.Status

	seen bool
}

// Events reports what changed with the last update
type Events struct {
	LapCompleted  bool
	LapTime       string
	StatusChanged bool
}

func New(start time.Time) *Session {
	return &Session{
		ID:    uuid.New(),
		Start: start,
		Car:   NewCar(),
	}
}

// Elapsed returns seconds since the session started
func (s *Session) Elapsed(now time.Time) float64 {
	return now.Sub(s.Start).Seconds()
}

// Update folds a sample taken elapsed seconds into the session
func (s *Session) Update(sample acpmf.Sample, elapsed float64) Events {
	s.Car.Update(
		float64(sample.SpeedKmh),
		float64(sample.Gas),
		float64(sample.Brake),
		elapsed,
		float64(sample.SteerAngle),
	)
	s.Samples++

	var ev Events
	laps := int(sample.CompletedLaps)
	if s.seen {
		if laps > s.CompletedLaps {
			ev.LapCompleted = true
			ev.LapTime = sample.LastTime
		}
		ev.StatusChanged = sample.Status != s.Status
	}

	s.CompletedLaps = laps
	s.Status = sample.Status
	s.seen = true

	return ev
}

// Report summarizes the session as of now
func (s *Session) Report(now time.Time, path string) Report {
	duration := now.Sub(s.Start)

	var rate float64
	if secs := duration.Seconds(); secs > 0 {
		rate = float64(s.Samples) / secs
	}

	return Report{
		SessionID: s.ID.String(),
		Duration:  duration,
		Samples:   s.Samples,
		Rate:      rate,
		Laps:      s.CompletedLaps,
		Path:      path,
		Summary:   s.Car.Summary(),
	}
}
