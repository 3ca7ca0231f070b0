package loader

import (
	"errors"
	"fmt"
)

// Loader-specific errors
var (
	ErrFailedToLoadConfig   = errors.New("failed to load settings")
	ErrNoSourceProvided     = errors.New("no source provided to loader")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrFileNotFound         = errors.New("settings file does not exist")
)

// FormatFileError creates an error with file path context
func FormatFileError(err error, path string) error {
	return fmt.Errorf("%w: %s", err, path)
}
