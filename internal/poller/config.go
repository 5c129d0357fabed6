package poller

import (
	"time"

	"codeberg.org/mutker/actelemetry/internal/errors"
)

type Config struct {
	Interval    time.Duration
	StatusEvery int
	// Deadzone zeroes steering angles smaller than it; 0 disables
	Deadzone float64
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(ErrInvalidConfig, struct {
			Field string
			Value time.Duration
		}{"interval", c.Interval})
	}

	if c.StatusEvery <= 0 {
		return errFactory.WithData(ErrInvalidConfig, struct {
			Field string
			Value int
		}{"status_every", c.StatusEvery})
	}

	if c.Deadzone < 0 {
		return errFactory.WithData(ErrInvalidConfig, struct {
			Field string
			Value float64
		}{"deadzone", c.Deadzone})
	}

	return nil
}
