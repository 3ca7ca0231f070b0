package scripts

import (
	"os"

	"github.com/atlanticdynamic/protohandler/internal/scripts/engines"
)

// Origin records where a staged script came from
type Origin int

const (
	OriginInline Origin = iota
	OriginFile
)

func (o Origin) String() string {
	switch o {
	case OriginFile:
		return "file"
	case OriginInline:
		return "inline"
	default:
		return "unknown"
	}
}

// Source is a script body ready to hand to an engine
type Source struct {
	Origin Origin
	// Ref is the file path, or the inline text itself
	Ref    string
	Code   string
	Engine engines.Type
}

// SourceFromFile reads the script at path. The engine is chosen by file
// extension, falling back to the given engine for unknown extensions.
func SourceFromFile(path string, fallback engines.Type) (Source, error) {
	code, err := os.ReadFile(path) //nolint:gosec // path comes from settings
	if err != nil {
		return Source{}, newReadError(path, err)
	}

	engine, ok := engines.TypeForFile(path)
	if !ok {
		engine = fallback
	}

	return Source{
		Origin: OriginFile,
		Ref:    path,
		Code:   string(code),
		Engine: engine,
	}, nil
}

// SourceFromText stages text itself as the script body
func SourceFromText(text string, engine engines.Type) Source {
	return Source{
		Origin: OriginInline,
		Ref:    text,
		Code:   text,
		Engine: engine,
	}
}

// Name is a short label for diagnostics
func (s Source) Name() string {
	if s.Origin == OriginFile {
		return s.Ref
	}
	return "inline"
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
