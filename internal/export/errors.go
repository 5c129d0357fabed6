package export

import "codeberg.org/mutker/actelemetry/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidDBPath = errors.ErrorCode("export_invalid_db_path")

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("export_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("export_schema_validation_failed")
	ErrSchemaMigrationFailed  = errors.ErrorCode("export_schema_migration_failed")
	ErrTransactionFailed      = errors.ErrorCode("export_transaction_failed")

	// Storage Errors
	ErrStorageInit  = errors.ErrInitFailed
	ErrStorageClose = errors.ErrShutdownFailed

	// Import Errors
	ErrMissingColumn = errors.ErrorCode("export_missing_column")
	ErrInvalidRecord = errors.ErrorCode("export_invalid_record")
	ErrReadCSV       = errors.ErrorCode("export_read_csv_failed")

	// Query Errors
	ErrQueryFailed = errors.ErrorCode("export_query_failed")
	ErrWriteFailed = errors.ErrorCode("export_write_failed")
)
