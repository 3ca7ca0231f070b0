package engines

import (
	"errors"
	"fmt"
)

var (
	// ErrEngine is the base error type for engine package errors.
	ErrEngine = errors.New("engine error")

	ErrUnknownEngine     = fmt.Errorf("%w: unknown engine", ErrEngine)
	ErrLoaderCreation    = fmt.Errorf("%w: failed to create script loader", ErrEngine)
	ErrCompilationFailed = fmt.Errorf("%w: compilation failed", ErrEngine)
	ErrExecutionFailed   = fmt.Errorf("%w: execution failed", ErrEngine)
)
