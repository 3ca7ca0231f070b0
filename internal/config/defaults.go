package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppName names the per-user configuration directory and the default files.
	AppName = "protohandler"

	// DefaultEngine is used for inline scripts when the settings do not name one.
	DefaultEngine = "risor"
)

// Defaults is the compiled-in configuration layer. It is passed to the
// Resolver explicitly so tests can substitute their own values.
type Defaults struct {
	// LogFile is the durable activation log used when no document overrides it.
	LogFile string
	// ScriptPath is the script dispatched when no document overrides it.
	ScriptPath string
	// SettingsFile is the document loaded when no explicit path is given.
	SettingsFile string
	// UserSettingsFile is consulted when SettingsFile does not exist.
	UserSettingsFile string
	// Engine is the scripting engine for inline script text.
	Engine string
}

// CompiledDefaults returns the production defaults, all rooted at baseDir
// (normally the directory holding the executable).
func CompiledDefaults(baseDir string) Defaults {
	return Defaults{
		LogFile:          filepath.Join(baseDir, "logs", AppName+".log"),
		ScriptPath:       filepath.Join(baseDir, "scripts", "no-op.risor"),
		SettingsFile:     filepath.Join(baseDir, AppName+".toml"),
		UserSettingsFile: filepath.Join(xdg.ConfigHome, AppName, AppName+".toml"),
		Engine:           DefaultEngine,
	}
}

// ExecutableDir returns the directory of the running binary.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return filepath.Dir(exe), nil
}

// Validate checks that the fields guaranteed non-empty after resolution have values.
func (d Defaults) Validate() error {
	var errs []error
	if d.LogFile == "" {
		errs = append(errs, fmt.Errorf("%w: LogFile", ErrEmptyDefault))
	}
	if d.ScriptPath == "" {
		errs = append(errs, fmt.Errorf("%w: ScriptPath", ErrEmptyDefault))
	}
	return errors.Join(errs...)
}
