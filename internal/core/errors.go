package core

import "errors"

// Ingestion-level failures. These abort an upload before any directory
// calls are made; per-row failures are never raised as errors, they are
// captured in the outcome list instead.
var (
	// ErrUnsupportedFormat is returned when the uploaded file is not a CSV.
	ErrUnsupportedFormat = errors.New("only CSV files are allowed")

	// ErrEmptyInput is returned when parsing yields zero data rows.
	ErrEmptyInput = errors.New("CSV contains no valid rows")

	// ErrRowLimitExceeded is returned when the upload has more data rows
	// than the configured maximum. Wrapped with the limit for the message.
	ErrRowLimitExceeded = errors.New("too many rows")
)
