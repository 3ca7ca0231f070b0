// Package engines adapts embedded interpreters to a single execution
// contract: run one script body with named parameters and return the values
// it produced, in order.
package engines

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Type names an embedded scripting engine
type Type string

const (
	TypeRisor    Type = "risor"
	TypeStarlark Type = "starlark"
	TypeShell    Type = "shell"
)

// Script is a staged script body. Name is used in diagnostics only.
type Script struct {
	Name string
	Code string
}

// Param is one named script parameter
type Param struct {
	Name  string
	Value any
}

// Engine executes a script synchronously and returns its outputs in order.
type Engine interface {
	Type() Type
	Execute(ctx context.Context, script Script, params []Param) ([]any, error)
}

// Registry holds the engines available to an invoker
type Registry map[Type]Engine

// DefaultRegistry returns every built-in engine, logging through handler
func DefaultRegistry(handler slog.Handler) Registry {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return NewRegistry(
		NewRisor(handler),
		NewStarlark(handler),
		NewShell(),
	)
}

// NewRegistry builds a registry from the given engines
func NewRegistry(engs ...Engine) Registry {
	reg := make(Registry, len(engs))
	for _, e := range engs {
		reg[e.Type()] = e
	}
	return reg
}

// Get returns the engine registered for t
func (r Registry) Get(t Type) (Engine, error) {
	e, ok := r[t]
	if !ok || e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, t)
	}
	return e, nil
}

// ParseType converts a configured engine name into a Type
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "risor":
		return TypeRisor, nil
	case "starlark", "star":
		return TypeStarlark, nil
	case "shell", "sh":
		return TypeShell, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// TypeForFile picks an engine from a script file extension
func TypeForFile(path string) (Type, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".risor":
		return TypeRisor, true
	case ".star", ".starlark":
		return TypeStarlark, true
	case ".sh":
		return TypeShell, true
	default:
		return "", false
	}
}

// paramMap exposes parameters to polyscript engines as the script's ctx map
func paramMap(params []Param) map[string]any {
	m := make(map[string]any, len(params))
	for _, p := range params {
		m[p.Name] = p.Value
	}
	return m
}

// Flatten turns a single evaluation value into the ordered output sequence:
// a list yields its elements, nil yields nothing, anything else yields itself.
func Flatten(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		out := make([]any, len(v))
		copy(out, v)
		return out
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return []any{v}
	}
}
