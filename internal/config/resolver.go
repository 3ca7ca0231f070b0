package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atlanticdynamic/protohandler/internal/config/loader"
	"github.com/atlanticdynamic/protohandler/internal/config/validation"
	"github.com/atlanticdynamic/protohandler/internal/interpolation"
)

// Resolver layers settings documents on top of a set of defaults.
type Resolver struct {
	defaults Defaults
	logger   *slog.Logger
}

// Option configures a Resolver
type Option func(*Resolver)

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver for the given defaults
func NewResolver(defaults Defaults, opts ...Option) *Resolver {
	r := &Resolver{
		defaults: defaults,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Defaults returns the compiled layer this resolver starts from
func (r *Resolver) Defaults() Defaults {
	return r.defaults
}

// Load resolves settings from the document at path. An empty path selects the
// default document; when no default document exists the compiled defaults are
// returned as-is. A non-empty path that does not exist fails with
// ErrConfigNotFound.
func (r *Resolver) Load(path string) (*Settings, error) {
	settings := NewSettings(r.defaults)

	if path == "" {
		path = r.defaultDocument()
		if path == "" {
			r.logger.Debug("No settings document found, using compiled defaults",
				"settingsFile", r.defaults.SettingsFile,
				"userSettingsFile", r.defaults.UserSettingsFile)
			return settings, nil
		}
	}

	if err := r.Reload(settings, path); err != nil {
		return nil, err
	}
	return settings, nil
}

// Reload applies the document at path on top of settings. Only keys that are
// present and non-empty in the document change; nothing is reset to defaults.
func (r *Resolver) Reload(settings *Settings, path string) error {
	if !FileExists(path) {
		return NewConfigNotFoundError("settings", path)
	}

	ld, err := loader.NewLoaderFromFilePath(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}

	doc, err := ld.Load()
	if err != nil {
		return err
	}

	if err := interpolation.InterpolateStruct(doc); err != nil {
		return fmt.Errorf("%w: interpolation failed for '%s': %w", ErrFailedToLoadConfig, path, err)
	}

	if err := r.apply(settings, doc, filepath.Dir(path)); err != nil {
		return fmt.Errorf("%w: '%s': %w", ErrFailedToLoadConfig, path, err)
	}
	settings.Source = path

	r.logger.Debug("Settings loaded",
		"source", path,
		"logFile", settings.LogFile,
		"scriptPath", settings.ScriptPath,
		"engine", settings.Engine,
		"protocols", len(settings.Protocols))
	return nil
}

func (r *Resolver) apply(settings *Settings, doc *loader.Document, baseDir string) error {
	if doc.LogFile != "" {
		p, err := interpolation.ResolvePath(doc.LogFile, baseDir)
		if err != nil {
			return err
		}
		settings.LogFile = p
	}

	if doc.ScriptPath != "" {
		p, err := interpolation.ResolvePath(doc.ScriptPath, baseDir)
		if err != nil {
			return err
		}
		settings.ScriptPath = p
	}

	if doc.Engine != "" {
		settings.Engine = doc.Engine
	}

	for _, proto := range doc.Protocols {
		if proto.Name == "" || proto.ScriptPath == "" {
			r.logger.Warn("Ignoring incomplete protocol entry", "name", proto.Name)
			continue
		}
		if err := validation.ValidateProtocolName(proto.Name); err != nil {
			r.logger.Warn("Ignoring protocol entry", "error", err)
			continue
		}
		p, err := interpolation.ResolvePath(proto.ScriptPath, baseDir)
		if err != nil {
			return err
		}
		settings.upsertProtocol(Protocol{Name: proto.Name, ScriptPath: p})
	}
	return nil
}

func (s *Settings) upsertProtocol(p Protocol) {
	for i := range s.Protocols {
		if s.Protocols[i].Name == p.Name {
			s.Protocols[i] = p
			return
		}
	}
	s.Protocols = append(s.Protocols, p)
}

// defaultDocument returns the first default settings document that exists
func (r *Resolver) defaultDocument() string {
	for _, candidate := range []string{r.defaults.SettingsFile, r.defaults.UserSettingsFile} {
		if FileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// FileExists reports whether path names an existing regular file
func FileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
