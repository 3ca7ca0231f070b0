package scripts

import (
	"errors"
	"fmt"

	"github.com/atlanticdynamic/protohandler/internal/scripts/engines"
)

var (
	ErrNotInitialized  = errors.New("no script has been added to the invoker")
	ErrAlreadyRun      = errors.New("invoker has already run")
	ErrScriptStaged    = errors.New("a script is already staged")
	ErrReadScript      = errors.New("failed to read script file")
	ErrEmptyReference  = errors.New("script reference is empty")
	ErrInvalidParamKey = errors.New("parameter name is empty")

	ErrUnknownEngine     = engines.ErrUnknownEngine
	ErrCompilationFailed = engines.ErrCompilationFailed
	ErrExecutionFailed   = engines.ErrExecutionFailed
)

func newReadError(path string, err error) error {
	return fmt.Errorf("%w '%s': %w", ErrReadScript, path, err)
}
