// Package loader reads settings documents from disk. The document format is
// selected by file extension; every format decodes into the same Document.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LoaderFunc func([]byte) Loader

// Loader handles loading a settings document from a source
type Loader interface {
	// Load parses the source and returns the decoded document
	Load() (*Document, error)
}

// Document is the on-disk shape of a settings file. Every key is optional; an
// empty value means "not set" and never clears a default.
type Document struct {
	LogFile    string     `toml:"LogFile,omitempty"    json:"LogFile,omitempty"    env_interpolation:"yes"`
	ScriptPath string     `toml:"ScriptPath,omitempty" json:"ScriptPath,omitempty" env_interpolation:"yes"`
	Engine     string     `toml:"Engine,omitempty"     json:"Engine,omitempty"     env_interpolation:"no"`
	Protocols  []Protocol `toml:"Protocols,omitempty"  json:"Protocols,omitempty"  env_interpolation:"yes"`
}

// Protocol maps a URI scheme to the script that handles it.
type Protocol struct {
	Name       string `toml:"Name"       json:"Name"       env_interpolation:"no"`
	ScriptPath string `toml:"ScriptPath" json:"ScriptPath" env_interpolation:"yes"`
}

// NewLoaderFromBytes creates a new Loader with the provided bytes
func NewLoaderFromBytes(data []byte, lodFunc LoaderFunc) (Loader, error) {
	if len(data) == 0 {
		return nil, ErrNoSourceProvided
	}
	return lodFunc(data), nil
}

// NewLoaderFromReader creates a new Loader from an io.Reader
func NewLoaderFromReader(reader io.Reader, lodFunc LoaderFunc) (Loader, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings data from reader: %w", err)
	}
	return NewLoaderFromBytes(data, lodFunc)
}

// NewLoaderFromFilePath creates a new Loader from a file path. An empty file is
// a valid document with no keys set.
func NewLoaderFromFilePath(filePath string) (Loader, error) {
	lodFunc, err := loaderFuncForExt(filepath.Ext(filePath))
	if err != nil {
		return nil, FormatFileError(err, filePath)
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, FormatFileError(ErrFileNotFound, filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file '%s': %w", filePath, err)
	}

	return lodFunc(data), nil
}

func loaderFuncForExt(ext string) (LoaderFunc, error) {
	switch strings.ToLower(ext) {
	case ".toml":
		return func(data []byte) Loader { return NewTomlLoader(data) }, nil
	case ".json":
		return func(data []byte) Loader { return NewJSONLoader(data) }, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedExtension, ext)
	}
}
