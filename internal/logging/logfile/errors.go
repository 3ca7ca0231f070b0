package logfile

import "errors"

var (
	// ErrLoggerMisconfigured is returned when the sink has no file path.
	ErrLoggerMisconfigured = errors.New("the file path for logging has not been set")

	ErrCreateLog = errors.New("failed to create log file")
	ErrWriteLog  = errors.New("failed to write log file")
)
