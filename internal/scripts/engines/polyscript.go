package engines

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-polyscript/engines/risor"
	"github.com/robbyt/go-polyscript/engines/starlark"
	"github.com/robbyt/go-polyscript/platform"
	"github.com/robbyt/go-polyscript/platform/constants"
	"github.com/robbyt/go-polyscript/platform/data"
	"github.com/robbyt/go-polyscript/platform/script/loader"
)

var (
	_ Engine = (*Risor)(nil)
	_ Engine = (*Starlark)(nil)
)

// Risor runs Risor scripts through go-polyscript. Parameters are available
// as ctx.get("Uri"); the value of the last expression is the output.
type Risor struct {
	handler slog.Handler
}

// NewRisor creates a Risor engine
func NewRisor(handler slog.Handler) *Risor {
	return &Risor{handler: handler}
}

// Type returns the type of this engine.
func (r *Risor) Type() Type {
	return TypeRisor
}

// Execute compiles and evaluates the script
func (r *Risor) Execute(ctx context.Context, script Script, params []Param) ([]any, error) {
	scriptLoader, err := loader.NewFromString(script.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoaderCreation, err)
	}

	evaluator, err := risor.FromRisorLoader(r.handler, scriptLoader)
	if err != nil {
		return nil, fmt.Errorf("%w: risor script %s: %w", ErrCompilationFailed, script.Name, err)
	}

	return evaluate(ctx, evaluator, params)
}

// Starlark runs Starlark scripts through go-polyscript. Parameters are
// available as ctx.get("Uri"); the value assigned to "_" is the output.
type Starlark struct {
	handler slog.Handler
}

// NewStarlark creates a Starlark engine
func NewStarlark(handler slog.Handler) *Starlark {
	return &Starlark{handler: handler}
}

// Type returns the type of this engine.
func (s *Starlark) Type() Type {
	return TypeStarlark
}

// Execute compiles and evaluates the script
func (s *Starlark) Execute(ctx context.Context, script Script, params []Param) ([]any, error) {
	scriptLoader, err := loader.NewFromString(script.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoaderCreation, err)
	}

	evaluator, err := starlark.FromStarlarkLoader(s.handler, scriptLoader)
	if err != nil {
		return nil, fmt.Errorf("%w: starlark script %s: %w", ErrCompilationFailed, script.Name, err)
	}

	return evaluate(ctx, evaluator, params)
}

// evaluate hands the parameters to the script and flattens its result
func evaluate(ctx context.Context, evaluator platform.Evaluator, params []Param) ([]any, error) {
	contextProvider := data.NewContextProvider(constants.EvalData)
	enrichedCtx, err := contextProvider.AddDataToContext(ctx, paramMap(params))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to add parameters: %w", ErrExecutionFailed, err)
	}

	result, err := evaluator.Eval(enrichedCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}
	if result == nil {
		return nil, nil
	}

	return Flatten(result.Interface()), nil
}
