package engines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Type
		wantErr bool
	}{
		{"risor", "risor", TypeRisor, false},
		{"uppercase", "RISOR", TypeRisor, false},
		{"starlark", "starlark", TypeStarlark, false},
		{"star alias", "star", TypeStarlark, false},
		{"shell", "shell", TypeShell, false},
		{"sh alias", " sh ", TypeShell, false},
		{"unknown", "lua", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownEngine)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeForFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		want   Type
		wantOK bool
	}{
		{"/scripts/handler.risor", TypeRisor, true},
		{"handler.star", TypeStarlark, true},
		{"handler.Starlark", TypeStarlark, true},
		{"/opt/handler.sh", TypeShell, true},
		{"handler.ps1", "", false},
		{"handler", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := TypeForFile(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry(nil)
	for _, typ := range []Type{TypeRisor, TypeStarlark, TypeShell} {
		e, err := reg.Get(typ)
		require.NoError(t, err)
		assert.Equal(t, typ, e.Type())
	}

	_, err := reg.Get("lua")
	require.ErrorIs(t, err, ErrUnknownEngine)

	partial := NewRegistry(NewShell())
	_, err = partial.Get(TypeRisor)
	require.ErrorIs(t, err, ErrUnknownEngine)
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		want  []any
	}{
		{"nil yields nothing", nil, nil},
		{"scalar yields one", "A", []any{"A"}},
		{"int yields one", 42, []any{42}},
		{"list yields each element", []any{"A", "B"}, []any{"A", "B"}},
		{"empty list", []any{}, []any{}},
		{"string slice", []string{"x", "y"}, []any{"x", "y"}},
		{"map yields one", map[string]any{"k": "v"}, []any{map[string]any{"k": "v"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flatten(tt.input))
		})
	}
}
