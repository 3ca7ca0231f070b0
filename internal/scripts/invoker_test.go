package scripts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlanticdynamic/protohandler/internal/scripts/engines"
)

// recordingEngine returns canned values and remembers what it was given
type recordingEngine struct {
	typ    engines.Type
	values []any
	err    error

	calls  int
	script engines.Script
	params []engines.Param
}

func (r *recordingEngine) Type() engines.Type { return r.typ }

func (r *recordingEngine) Execute(
	_ context.Context,
	script engines.Script,
	params []engines.Param,
) ([]any, error) {
	r.calls++
	r.script = script
	r.params = params
	return r.values, r.err
}

func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestSourceFromFile(t *testing.T) {
	t.Parallel()

	t.Run("engine from extension", func(t *testing.T) {
		path := writeScript(t, "handler.sh", "echo hi")
		src, err := SourceFromFile(path, engines.TypeRisor)
		require.NoError(t, err)
		assert.Equal(t, OriginFile, src.Origin)
		assert.Equal(t, engines.TypeShell, src.Engine)
		assert.Equal(t, "echo hi", src.Code)
		assert.Equal(t, path, src.Name())
	})

	t.Run("unknown extension uses fallback", func(t *testing.T) {
		path := writeScript(t, "handler.txt", `"hi"`)
		src, err := SourceFromFile(path, engines.TypeStarlark)
		require.NoError(t, err)
		assert.Equal(t, engines.TypeStarlark, src.Engine)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := SourceFromFile(filepath.Join(t.TempDir(), "nope.risor"), engines.TypeRisor)
		require.ErrorIs(t, err, ErrReadScript)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSourceFromText(t *testing.T) {
	t.Parallel()

	src := SourceFromText(`"hello"`, engines.TypeRisor)
	assert.Equal(t, OriginInline, src.Origin)
	assert.Equal(t, `"hello"`, src.Code)
	assert.Equal(t, engines.TypeRisor, src.Engine)
	assert.Equal(t, "inline", src.Name())
	assert.Equal(t, "inline", src.Origin.String())
	assert.Equal(t, "file", OriginFile.String())
}

func TestInvoker_AddScript(t *testing.T) {
	t.Parallel()

	t.Run("existing file is read", func(t *testing.T) {
		path := writeScript(t, "handler.risor", `"from file"`)
		inv := NewInvoker().AddScript(path)
		require.True(t, inv.IsInitialized())

		src, ok := inv.Source()
		require.True(t, ok)
		assert.Equal(t, OriginFile, src.Origin)
		assert.Equal(t, `"from file"`, src.Code)
	})

	t.Run("anything else is inline text", func(t *testing.T) {
		inv := NewInvoker(WithDefaultEngine(engines.TypeShell)).AddScript("echo inline")
		require.True(t, inv.IsInitialized())

		src, ok := inv.Source()
		require.True(t, ok)
		assert.Equal(t, OriginInline, src.Origin)
		assert.Equal(t, engines.TypeShell, src.Engine)
	})

	t.Run("directory is inline text", func(t *testing.T) {
		dir := t.TempDir()
		inv := NewInvoker().AddScript(dir)
		src, ok := inv.Source()
		require.True(t, ok)
		assert.Equal(t, OriginInline, src.Origin)
	})

	t.Run("second script is rejected", func(t *testing.T) {
		inv := NewInvoker().AddScript(`"a"`).AddScript(`"b"`)
		require.ErrorIs(t, inv.Err(), ErrScriptStaged)

		_, err := inv.Run(t.Context())
		require.ErrorIs(t, err, ErrScriptStaged)
	})

	t.Run("empty reference", func(t *testing.T) {
		inv := NewInvoker().AddScript("")
		assert.False(t, inv.IsInitialized())
		require.ErrorIs(t, inv.Err(), ErrEmptyReference)
	})
}

func TestInvoker_Run(t *testing.T) {
	t.Parallel()

	t.Run("not initialized", func(t *testing.T) {
		inv := NewInvoker()
		assert.False(t, inv.IsInitialized())
		_, err := inv.Run(t.Context())
		require.ErrorIs(t, err, ErrNotInitialized)
	})

	t.Run("parameters reach the engine in order", func(t *testing.T) {
		fake := &recordingEngine{typ: engines.TypeRisor, values: []any{"A", "B"}}
		inv := NewInvoker(WithEngines(engines.NewRegistry(fake))).
			AddScript("anything").
			AddParameter("Uri", "snip-proto://x").
			AddParameter("LogFile", "/tmp/ph.log")

		results, err := inv.Run(t.Context())
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "A", results[0].String())
		assert.Equal(t, "B", results[1].String())

		assert.Equal(t, 1, fake.calls)
		assert.Equal(t, "anything", fake.script.Code)
		assert.Equal(t, []engines.Param{
			{Name: "Uri", Value: "snip-proto://x"},
			{Name: "LogFile", Value: "/tmp/ph.log"},
		}, fake.params)
	})

	t.Run("runs at most once", func(t *testing.T) {
		fake := &recordingEngine{typ: engines.TypeRisor}
		inv := NewInvoker(WithEngines(engines.NewRegistry(fake))).AddScript("x")

		_, err := inv.Run(t.Context())
		require.NoError(t, err)
		_, err = inv.Run(t.Context())
		require.ErrorIs(t, err, ErrAlreadyRun)
		assert.Equal(t, 1, fake.calls)

		inv.AddParameter("late", 1)
		require.ErrorIs(t, inv.Err(), ErrAlreadyRun)
	})

	t.Run("engine error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		fake := &recordingEngine{typ: engines.TypeRisor, err: boom}
		inv := NewInvoker(WithEngines(engines.NewRegistry(fake))).AddScript("x")

		_, err := inv.Run(t.Context())
		require.ErrorIs(t, err, boom)
	})

	t.Run("unknown engine", func(t *testing.T) {
		fake := &recordingEngine{typ: engines.TypeShell}
		inv := NewInvoker(WithEngines(engines.NewRegistry(fake))).AddScript("x")

		_, err := inv.Run(t.Context())
		require.ErrorIs(t, err, ErrUnknownEngine)
	})

	t.Run("empty parameter name", func(t *testing.T) {
		fake := &recordingEngine{typ: engines.TypeRisor}
		inv := NewInvoker(WithEngines(engines.NewRegistry(fake))).AddScript("x").AddParameter("", 1)

		_, err := inv.Run(t.Context())
		require.ErrorIs(t, err, ErrInvalidParamKey)
		assert.Zero(t, fake.calls)
	})
}

func TestInvoker_RunRealEngines(t *testing.T) {
	t.Parallel()

	t.Run("risor file producing two values", func(t *testing.T) {
		path := writeScript(t, "two.risor", `["A", "B"]`)
		results, err := NewInvoker().AddScript(path).Run(t.Context())
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "A", results[0].String())
		assert.Equal(t, "B", results[1].String())
	})

	t.Run("shell file reads the uri", func(t *testing.T) {
		path := writeScript(t, "echo.sh", "echo \"uri=$Uri\"\n")
		results, err := NewInvoker().
			AddScript(path).
			AddParameter("Uri", "snip-proto://hello world").
			Run(t.Context())
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "uri=snip-proto://hello world", results[0].String())
	})

	t.Run("missing path staged as text fails at run", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.risor")
		inv := NewInvoker().AddScript(missing)
		require.True(t, inv.IsInitialized())

		_, err := inv.Run(t.Context())
		require.Error(t, err)
	})
}

func TestResult_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"bytes", []byte("raw"), "raw"},
		{"int", int64(42), "42"},
		{"bool", true, "true"},
		{"list", []any{"a", 1}, "[a 1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Result{Value: tt.value}.String())
		})
	}
}
