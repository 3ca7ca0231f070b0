package activation

import "errors"

var (
	ErrLoggerUnavailable = errors.New("activation log could not be opened")
	ErrScriptPanic       = errors.New("script panicked")
)
