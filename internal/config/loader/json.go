package loader

import (
	"encoding/json"
	"fmt"
)

// jsonLoader implements the Loader interface for JSON files
type jsonLoader struct {
	source []byte
}

// NewJSONLoader creates a new JSON settings loader
func NewJSONLoader(source []byte) *jsonLoader {
	return &jsonLoader{source: source}
}

// Load decodes the JSON document
func (l *jsonLoader) Load() (*Document, error) {
	doc := &Document{}
	if len(l.source) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(l.source, doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON: %w", ErrFailedToLoadConfig, err)
	}
	return doc, nil
}
