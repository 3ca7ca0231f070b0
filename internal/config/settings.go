// Package config resolves the run configuration of a single activation:
// compiled defaults, overridden key by key by an optional settings document,
// and finally by a command-line log path.
package config

import (
	"slices"
)

// Settings is the resolved configuration of one activation.
type Settings struct {
	// LogFile is the durable log the activation writes to.
	LogFile string
	// ScriptPath is the script dispatched for URIs without a protocol entry.
	ScriptPath string
	// Engine is the scripting engine used for inline script text.
	Engine string
	// Protocols maps URI schemes to dedicated scripts.
	Protocols []Protocol

	// Source is the document the settings were loaded from, empty when only
	// compiled defaults apply.
	Source string
}

// Protocol binds a URI scheme to a script.
type Protocol struct {
	Name       string
	ScriptPath string
}

// NewSettings returns settings holding only the given defaults.
func NewSettings(defaults Defaults) *Settings {
	engine := defaults.Engine
	if engine == "" {
		engine = DefaultEngine
	}
	return &Settings{
		LogFile:    defaults.LogFile,
		ScriptPath: defaults.ScriptPath,
		Engine:     engine,
	}
}

// SetLogFile applies the command-line log path override.
func (s *Settings) SetLogFile(path string) {
	if path != "" {
		s.LogFile = path
	}
}

// ScriptFor returns the script configured for a URI scheme, falling back to
// ScriptPath when the scheme has no entry.
func (s *Settings) ScriptFor(protocol string) string {
	if protocol == "" {
		return s.ScriptPath
	}
	idx := slices.IndexFunc(s.Protocols, func(p Protocol) bool {
		return p.Name == protocol
	})
	if idx < 0 || s.Protocols[idx].ScriptPath == "" {
		return s.ScriptPath
	}
	return s.Protocols[idx].ScriptPath
}

// Clone returns a deep copy
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Protocols = slices.Clone(s.Protocols)
	return &clone
}
