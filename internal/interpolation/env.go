// Package interpolation expands environment variable references found in
// settings values, so a settings document can point at paths such as
// "${LOCALAPPDATA}/protohandler/logs/handler.log".
package interpolation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Pattern for ${VAR_NAME} and ${VAR_NAME:default} syntax - captures colon explicitly
var envVarWithDefaultPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:)?([^}]*)\}`)

// ErrUndefinedVariable is returned when a reference has no value and no default.
var ErrUndefinedVariable = errors.New("environment variable not defined")

// ExpandEnvVars expands environment variables with default values in the format:
//
// ${VAR_NAME:default_value}
//
// If the environment variable is not set, it uses the default value if provided. If no default is
// provided and the variable is missing, the reference is left in place and an error is returned.
func ExpandEnvVars(input string) (string, error) {
	if input == "" {
		return "", nil
	}

	var missingVars []error
	result := envVarWithDefaultPattern.ReplaceAllStringFunc(input, func(match string) string {
		// submatches will be: [full_match, varName, colon, defaultValue]
		submatches := envVarWithDefaultPattern.FindStringSubmatch(match)
		varName := submatches[1]
		colonIsPresent := submatches[2] == ":"
		defaultValue := submatches[3]

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}

		// ${VAR:} is a valid reference with an empty default
		if colonIsPresent {
			return defaultValue
		}

		missingVars = append(missingVars, fmt.Errorf("%w: %s", ErrUndefinedVariable, varName))
		return match
	})

	return result, errors.Join(missingVars...)
}

// ResolvePath expands a leading "~" and joins relative paths onto baseDir when
// baseDir is not empty. Environment references must already be expanded.
func ResolvePath(path, baseDir string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	if baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return filepath.Clean(path), nil
}
