// Package metrics exports live session figures for Prometheus.
package metrics

import (
	"codeberg.org/mutker/actelemetry/internal/acpmf"
	"codeberg.org/mutker/actelemetry/internal/errors"
	"codeberg.org/mutker/actelemetry/internal/session"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "actelemetry"

// Collector mirrors the latest sample and session aggregates into gauges
type Collector struct {
	samples  prometheus.Counter
	laps     prometheus.Counter
	speed    prometheus.Gauge
	topSpeed prometheus.Gauge
	gas      prometheus.Gauge
	brake    prometheus.Gauge
	gear     prometheus.Gauge
	fuel     prometheus.Gauge
	lap      prometheus.Gauge
	distance prometheus.Gauge
	status   *prometheus.GaugeVec

	lastLaps int
}

func New(reg prometheus.Registerer) (*Collector, error) {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}

	c := &Collector{
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "samples_total", Help: "Telemetry samples taken",
		}),
		laps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "laps_completed_total", Help: "Laps completed during the session",
		}),
		speed:    gauge("speed_kmh", "Current speed in km/h"),
		topSpeed: gauge("top_speed_kmh", "Session top speed in km/h"),
		gas:      gauge("throttle_ratio", "Throttle input, 0-1"),
		brake:    gauge("brake_ratio", "Brake input, 0-1"),
		gear:     gauge("gear", "Displayed gear, 0 for neutral or reverse"),
		fuel:     gauge("fuel_kg", "Fuel on board in kg"),
		lap:      gauge("current_lap", "Lap being driven"),
		distance: gauge("distance_meters", "Distance covered this session"),
		status: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "simulator_status", Help: "1 for the current simulator status",
		}, []string{"status"}),
	}

	for _, col := range []prometheus.Collector{
		c.samples, c.laps, c.speed, c.topSpeed, c.gas, c.brake,
		c.gear, c.fuel, c.lap, c.distance, c.status,
	} {
		if err := reg.Register(col); err != nil {
			return nil, errors.New().Wrap(ErrRegisterFailed, err)
		}
	}

	return c, nil
}

// Observe records a sample after it has been folded into sess
func (c *Collector) Observe(s acpmf.Sample, sess *session.Session) {
	c.samples.Inc()
	if sess.CompletedLaps > c.lastLaps && sess.Samples > 1 {
		c.laps.Add(float64(sess.CompletedLaps - c.lastLaps))
	}
	c.lastLaps = sess.CompletedLaps

	c.speed.Set(float64(s.SpeedKmh))
	c.topSpeed.Set(sess.Car.MaxSpeed)
	c.gas.Set(float64(s.Gas))
	c.brake.Set(float64(s.Brake))
	c.gear.Set(float64(s.GearDisplay()))
	c.fuel.Set(float64(s.Fuel))
	c.lap.Set(float64(s.CurrentLap()))
	c.distance.Set(sess.Car.Distance)

	c.status.Reset()
	c.status.WithLabelValues(s.Status.String()).Set(1)
}
