package export

import "codeberg.org/mutker/actelemetry/internal/errors"

const (
	defaultDirPerm = 0o755
	memoryDB       = ":memory:"
)

type Config struct {
	// DBPath is a SQLite file, or ":memory:" for a throwaway database
	DBPath string
}

func DefaultConfig() Config {
	return Config{
		DBPath: memoryDB,
	}
}

func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.New().New(ErrInvalidDBPath)
	}
	return nil
}

func (c Config) inMemory() bool {
	return c.DBPath == memoryDB
}
