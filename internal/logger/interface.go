package logger

import "codeberg.org/mutker/actelemetry/internal/errors"

// Logger defines the interface for logging operations.
type Logger interface {
	Debug() *LogEvent
	Info() *LogEvent
	Warn() *LogEvent
	Error() *LogEvent
	ErrorWithCode(err errors.Error) *LogEvent
	// Component returns a Logger tagging every event with component=name
	Component(name string) Logger
}
