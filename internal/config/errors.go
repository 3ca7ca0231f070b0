package config

import (
	"errors"
	"fmt"

	"github.com/atlanticdynamic/protohandler/internal/config/loader"
)

var (
	// ErrConfigNotFound is returned when an explicitly requested settings or
	// log file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	ErrFailedToLoadConfig = loader.ErrFailedToLoadConfig
	ErrEmptyDefault       = errors.New("default value must not be empty")
)

// NewConfigNotFoundError wraps ErrConfigNotFound with the missing path
func NewConfigNotFoundError(kind, path string) error {
	return fmt.Errorf("%w: %s file '%s' could not be found", ErrConfigNotFound, kind, path)
}
