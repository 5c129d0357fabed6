// Package poller runs the fixed-rate telemetry acquisition loop.
package poller

import (
	"context"
	"math"
	"time"

	"codeberg.org/mutker/actelemetry/internal/acpmf"
	"codeberg.org/mutker/actelemetry/internal/errors"
	"codeberg.org/mutker/actelemetry/internal/logger"
	"codeberg.org/mutker/actelemetry/internal/session"
	"codeberg.org/mutker/actelemetry/internal/telemetry"
)

// Source yields one sample per call
type Source interface {
	Read() (acpmf.Sample, error)
}

// Observer is notified after each sample has been folded into the session
type Observer interface {
	Observe(sample acpmf.Sample, sess *session.Session)
}

type Option func(*Poller)

func WithObserver(obs Observer) Option {
	return func(p *Poller) {
		p.obs = obs
	}
}

// WithClock replaces time.Now for elapsed time computation
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		p.now = now
	}
}

type Poller struct {
	cfg  Config
	src  Source
	sess *session.Session
	rec  telemetry.Recorder
	obs  Observer
	now  func() time.Time
}

func New(cfg Config, src Source, sess *session.Session, rec telemetry.Recorder, opts ...Option) (*Poller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Poller{
		cfg:  cfg,
		src:  src,
		sess: sess,
		rec:  rec,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Run samples every Interval until ctx is cancelled. A cancelled context is
// not an error.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	logger.Info().
		Dur("interval", p.cfg.Interval).
		Str("output", p.rec.Path()).
		Msg("Logging telemetry, press Ctrl+C to stop")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.Step(ctx); err != nil {
				// a recorder refusing rows after cancellation is a normal stop
				if ctx.Err() != nil {
					return nil
				}
				return errors.New().Wrap(errors.ErrMainLoop, err)
			}
		}
	}
}

// Step takes a single sample and processes it
func (p *Poller) Step(ctx context.Context) error {
	errFactory := errors.New()

	elapsed := p.sess.Elapsed(p.now())

	sample, err := p.src.Read()
	if err != nil {
		return errFactory.Wrap(errors.ErrReadSample, err)
	}

	if p.cfg.Deadzone > 0 && math.Abs(float64(sample.SteerAngle)) < p.cfg.Deadzone {
		sample.SteerAngle = 0
	}

	ev := p.sess.Update(sample, elapsed)

	if err := p.rec.Record(ctx, telemetry.NewRow(sample, elapsed, p.sess.Car.Distance)); err != nil {
		return errFactory.Wrap(ErrRecordFailed, err)
	}

	if p.obs != nil {
		p.obs.Observe(sample, p.sess)
	}

	if ev.StatusChanged {
		logger.Info().Str("status", sample.Status.String()).Msg("Simulator status changed")
	}

	if ev.LapCompleted {
		logger.Info().
			Int("lap", p.sess.CompletedLaps).
			Str("time", ev.LapTime).
			Msg("Lap completed")
	}

	if p.sess.Samples%p.cfg.StatusEvery == 0 {
		if err := p.rec.Flush(); err != nil {
			return errFactory.Wrap(ErrFlushFailed, err)
		}
		p.logStatus(sample, elapsed)
	}

	return nil
}

func (p *Poller) logStatus(s acpmf.Sample, elapsed float64) {
	logger.Info().
		Str("time", formatElapsed(elapsed)).
		Int("lap", s.CurrentLap()).
		Str("speed", formatFloat(float64(s.SpeedKmh))).
		Int("gear", s.GearDisplay()).
		Str("top", formatFloat(p.sess.Car.MaxSpeed)).
		Int("samples", p.sess.Samples).
		Msg("Status")
}
