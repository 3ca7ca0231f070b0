package loader

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// tomlLoader implements the Loader interface for TOML files
type tomlLoader struct {
	source []byte
}

// NewTomlLoader creates a new TOML settings loader
func NewTomlLoader(source []byte) *tomlLoader {
	return &tomlLoader{source: source}
}

// Load decodes the TOML document. Unknown keys are ignored so that newer
// settings files keep working with older handlers.
func (l *tomlLoader) Load() (*Document, error) {
	doc := &Document{}
	if len(l.source) == 0 {
		return doc, nil
	}

	if err := toml.Unmarshal(l.source, doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse TOML: %w", ErrFailedToLoadConfig, err)
	}
	return doc, nil
}

// MarshalToml renders a document as TOML
func MarshalToml(doc *Document) ([]byte, error) {
	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode TOML: %w", err)
	}
	return data, nil
}
