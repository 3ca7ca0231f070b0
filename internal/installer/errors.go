package installer

import "errors"

var (
	ErrUnsupportedPlatform = errors.New("protocol registration is not supported on this platform")
	ErrInvalidProtocol     = errors.New("invalid protocol name")
	ErrWriteSettings       = errors.New("failed to write settings document")
	ErrWriteEntry          = errors.New("failed to write desktop entry")
)
