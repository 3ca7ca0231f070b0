// Package scripts stages a single script with ordered parameters and runs it
// once on one of the embedded engines.
package scripts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atlanticdynamic/protohandler/internal/scripts/engines"
)

// Param is one named script parameter
type Param = engines.Param

// Invoker is a single-use script session. It is not safe for concurrent use.
type Invoker struct {
	logger        *slog.Logger
	handler       slog.Handler
	registry      engines.Registry
	defaultEngine engines.Type

	source *Source
	params []Param
	err    error
	ran    bool
}

// Option configures an Invoker
type Option func(*Invoker)

// WithLogHandler sets the handler used by the invoker and its engines
func WithLogHandler(handler slog.Handler) Option {
	return func(i *Invoker) {
		if handler != nil {
			i.handler = handler
			i.logger = slog.New(handler).WithGroup("scripts")
		}
	}
}

// WithDefaultEngine sets the engine used for inline scripts and for files
// with an unrecognized extension
func WithDefaultEngine(engine engines.Type) Option {
	return func(i *Invoker) {
		if engine != "" {
			i.defaultEngine = engine
		}
	}
}

// WithEngines replaces the engine registry
func WithEngines(registry engines.Registry) Option {
	return func(i *Invoker) {
		if registry != nil {
			i.registry = registry
		}
	}
}

// NewInvoker creates an empty invoker
func NewInvoker(opts ...Option) *Invoker {
	handler := slog.Default().Handler()
	i := &Invoker{
		handler:       handler,
		logger:        slog.New(handler).WithGroup("scripts"),
		defaultEngine: engines.TypeRisor,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.registry == nil {
		i.registry = engines.DefaultRegistry(i.handler)
	}
	return i
}

// AddScript stages ref. An existing file is read as the script body;
// anything else is treated as inline script text.
func (i *Invoker) AddScript(ref string) *Invoker {
	switch {
	case i.ran:
		i.record(ErrAlreadyRun)
		return i
	case i.source != nil:
		i.record(ErrScriptStaged)
		return i
	case ref == "":
		i.record(ErrEmptyReference)
		return i
	}

	var src Source
	if isRegularFile(ref) {
		var err error
		src, err = SourceFromFile(ref, i.defaultEngine)
		if err != nil {
			i.record(err)
			return i
		}
	} else {
		src = SourceFromText(ref, i.defaultEngine)
	}

	i.logger.Debug("Script staged", "origin", src.Origin, "engine", src.Engine, "name", src.Name())
	i.source = &src
	return i
}

// AddParameter binds a named value for the staged script. Order is kept.
func (i *Invoker) AddParameter(name string, value any) *Invoker {
	switch {
	case i.ran:
		i.record(ErrAlreadyRun)
	case name == "":
		i.record(ErrInvalidParamKey)
	default:
		i.params = append(i.params, Param{Name: name, Value: value})
	}
	return i
}

// IsInitialized reports whether a script has been staged
func (i *Invoker) IsInitialized() bool {
	return i.source != nil
}

// Source returns the staged script, if any
func (i *Invoker) Source() (Source, bool) {
	if i.source == nil {
		return Source{}, false
	}
	return *i.source, true
}

// Run executes the staged script synchronously and returns its outputs in
// order. An invoker runs at most once.
func (i *Invoker) Run(ctx context.Context) ([]Result, error) {
	if i.ran {
		return nil, ErrAlreadyRun
	}
	i.ran = true

	if i.err != nil {
		return nil, i.err
	}
	if i.source == nil {
		return nil, ErrNotInitialized
	}

	engine, err := i.registry.Get(i.source.Engine)
	if err != nil {
		return nil, err
	}

	script := engines.Script{Name: i.source.Name(), Code: i.source.Code}
	values, err := engine.Execute(ctx, script, i.params)
	if err != nil {
		return nil, fmt.Errorf("%s script %s: %w", engine.Type(), script.Name, err)
	}

	results := toResults(values)
	i.logger.Debug("Script finished", "engine", engine.Type(), "results", len(results))
	return results, nil
}

// Err returns the errors recorded while staging
func (i *Invoker) Err() error {
	return i.err
}

// record keeps every staging error for the next Run
func (i *Invoker) record(err error) {
	i.err = errors.Join(i.err, err)
}
