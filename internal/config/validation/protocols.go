// Package validation provides validation utilities for settings values.
package validation

import (
	"errors"
	"fmt"
	"regexp"
)

// Protocol names follow the URI scheme rule used to extract them from an
// activation URI: a lowercase letter, then letters, digits, '-' or '_'.
var protocolPattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9_-]+$`)

const maxProtocolLength = 64

var (
	ErrEmptyProtocol   = errors.New("protocol name cannot be empty")
	ErrInvalidProtocol = errors.New("invalid protocol name")
)

// ValidateProtocolName validates that a protocol name can be registered as a
// URI scheme and matched against activation URIs.
func ValidateProtocolName(name string) error {
	if name == "" {
		return ErrEmptyProtocol
	}

	if len(name) > maxProtocolLength {
		return fmt.Errorf(
			"%w: %q must be at most %d characters long, got %d",
			ErrInvalidProtocol,
			name,
			maxProtocolLength,
			len(name),
		)
	}

	if !protocolPattern.MatchString(name) {
		return fmt.Errorf(
			"%w: %q must start with a lowercase letter and contain only letters, numbers, hyphens, and underscores",
			ErrInvalidProtocol,
			name,
		)
	}

	return nil
}
