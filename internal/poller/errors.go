package poller

import "codeberg.org/mutker/actelemetry/internal/errors"

const (
	ErrInvalidConfig = errors.ErrorCode("poller_invalid_config")
	ErrRecordFailed  = errors.ErrorCode("poller_record_failed")
	ErrFlushFailed   = errors.ErrorCode("poller_flush_failed")
)
