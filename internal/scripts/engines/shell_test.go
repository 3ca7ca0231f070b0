package engines

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShell_Execute(t *testing.T) {
	t.Parallel()

	engine := NewShell(WithEnviron(func() []string { return []string{"HOME=/nowhere"} }))

	t.Run("each stdout line is a result", func(t *testing.T) {
		out, err := engine.Execute(t.Context(), Script{Name: "lines.sh", Code: "echo A\necho\necho B\n"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []any{"A", "B"}, out)
	})

	t.Run("long lines are kept", func(t *testing.T) {
		out, err := engine.Execute(t.Context(), Script{Code: "printf '%070000d\\n' 0; echo B"}, nil)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, strings.Repeat("0", 70000), out[0])
		assert.Equal(t, "B", out[1])
	})

	t.Run("windows line endings", func(t *testing.T) {
		out, err := engine.Execute(t.Context(), Script{Code: `printf 'A\r\nB\r\n'`}, nil)
		require.NoError(t, err)
		assert.Equal(t, []any{"A", "B"}, out)
	})

	t.Run("parameters are environment variables", func(t *testing.T) {
		params := []Param{
			{Name: "Uri", Value: "snip-proto://open"},
			{Name: "LogFile", Value: "/tmp/ph.log"},
		}
		out, err := engine.Execute(t.Context(), Script{Code: `echo "$Uri"; echo "$LogFile"; echo "$HOME"`}, params)
		require.NoError(t, err)
		assert.Equal(t, []any{"snip-proto://open", "/tmp/ph.log", "/nowhere"}, out)
	})

	t.Run("no output yields no results", func(t *testing.T) {
		out, err := engine.Execute(t.Context(), Script{Code: "true"}, nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("non-zero exit carries stderr", func(t *testing.T) {
		_, err := engine.Execute(t.Context(), Script{Code: "echo oops >&2; exit 3"}, nil)
		require.ErrorIs(t, err, ErrExecutionFailed)
		assert.Contains(t, err.Error(), "exit status 3")
		assert.Contains(t, err.Error(), "oops")
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := engine.Execute(t.Context(), Script{Code: "if then fi ("}, nil)
		require.ErrorIs(t, err, ErrCompilationFailed)
	})
}
