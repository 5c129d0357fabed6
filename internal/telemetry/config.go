package telemetry

import "codeberg.org/mutker/actelemetry/internal/errors"

const (
	defaultDirPerm    = 0o755
	defaultFilePerm   = 0o644
	defaultDir        = "telemetry_logs"
	defaultFlushEvery = 100

	fileTimeLayout = "20060102_150405"
)

type Config struct {
	Dir        string
	FlushEvery int
	Enabled    bool
}

func DefaultConfig() Config {
	return Config{
		Dir:        defaultDir,
		FlushEvery: defaultFlushEvery,
		Enabled:    true,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	// Only validate the directory if recording is enabled
	if c.Enabled && c.Dir == "" {
		return errFactory.New(ErrInvalidDir)
	}
	if c.Enabled && c.FlushEvery <= 0 {
		return errFactory.WithData(ErrInvalidConfig, "flush interval must be positive")
	}
	return nil
}
