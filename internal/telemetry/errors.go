package telemetry

import "codeberg.org/mutker/actelemetry/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrorCode("telemetry_invalid_config")
	ErrInvalidDir    = errors.ErrorCode("telemetry_invalid_dir")

	// Recording Errors
	ErrInvalidRow  = errors.ErrorCode("telemetry_invalid_row")
	ErrWriteFailed = errors.ErrorCode("telemetry_write_failed")
	ErrFlushFailed = errors.ErrorCode("telemetry_flush_failed")

	// Storage Errors
	ErrStorageInit  = errors.ErrorCode("telemetry_storage_init_failed")
	ErrStorageClose = errors.ErrorCode("telemetry_storage_close_failed")
	ErrClosed       = errors.ErrorCode("telemetry_recorder_closed")

	// Operation Errors
	ErrOperationTimeout = errors.ErrorCode("telemetry_operation_timeout")
)
