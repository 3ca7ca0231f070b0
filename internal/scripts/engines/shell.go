package engines

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

var _ Engine = (*Shell)(nil)

// Shell runs POSIX shell scripts in-process with mvdan.cc/sh. Parameters are
// exported as environment variables; every non-empty stdout line is one output.
type Shell struct {
	environ func() []string
}

// ShellOption configures a Shell engine
type ShellOption func(*Shell)

// WithEnviron replaces the base environment the script inherits
func WithEnviron(environ func() []string) ShellOption {
	return func(s *Shell) {
		if environ != nil {
			s.environ = environ
		}
	}
}

// NewShell creates a shell engine inheriting the process environment
func NewShell(opts ...ShellOption) *Shell {
	s := &Shell{environ: os.Environ}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Type returns the type of this engine.
func (s *Shell) Type() Type {
	return TypeShell
}

// Execute parses and runs the script
func (s *Shell) Execute(ctx context.Context, script Script, params []Param) ([]any, error) {
	name := script.Name
	if name == "" {
		name = "script"
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(script.Code), name)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse script: %w", ErrCompilationFailed, err)
	}

	env := s.environ()
	for _, p := range params {
		env = append(env, fmt.Sprintf("%s=%v", p.Name, p.Value))
	}

	var stdout, stderr bytes.Buffer
	runner, err := interp.New(
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, &stdout, &stderr),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create interpreter: %w", ErrExecutionFailed, err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return nil, fmt.Errorf("%w: exit status %d: %s",
				ErrExecutionFailed, exitStatus, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%w: %w", ErrExecutionFailed, err)
	}

	return outputLines(stdout.String()), nil
}

// outputLines splits stdout into its non-empty lines. Lines have no length limit.
func outputLines(out string) []any {
	var lines []any
	for line := range strings.Lines(out) {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
