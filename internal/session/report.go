package session

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	kmPerMile = 1.609
	mPerMile  = 1609
	ruleWidth = 70
)

// Report is printed once when the session ends
type Report struct {
	SessionID string
	Duration  time.Duration
	Samples   int
	Rate      float64
	Laps      int
	Path      string
	Summary   Summary
}

// WriteTo renders the report as a text table
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	rule := strings.Repeat("=", ruleWidth)
	s := r.Summary

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintln(&b, "Session Complete")
	fmt.Fprintf(&b, "Duration: %.1fs | Samples: %d | Rate: %.1f Hz | Laps: %d\n",
		r.Duration.Seconds(), r.Samples, r.Rate, r.Laps)
	if r.Path != "" {
		fmt.Fprintf(&b, "Saved: %s\n", r.Path)
	}

	fmt.Fprintln(&b, "\nSESSION STATISTICS")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Top Speed:        %6.1f km/h  (%.1f mph)\n", s.TopSpeedKmh, s.TopSpeedKmh/kmPerMile)
	fmt.Fprintf(&b, "Average Speed:    %6.1f km/h\n", s.AverageSpeedKmh)
	fmt.Fprintf(&b, "Distance:         %6.2f km (%.2f miles)\n", s.DistanceKm, s.DistanceKm*1000/mPerMile)
	fmt.Fprintf(&b, "Max Throttle:     %5.1f%%\n", s.MaxThrottle*100)
	fmt.Fprintf(&b, "Max Brake:        %5.1f%%\n", s.MaxBrake*100)
	fmt.Fprintf(&b, "Average |Steer|:  %6.3f (abs, 0-1)\n", s.AverageSteer)
	fmt.Fprintf(&b, "Max |Steer|:      %6.3f (abs, 0-1)\n", s.MaxSteer)
	fmt.Fprintln(&b, rule)

	return b.WriteTo(w)
}
