// Package installer registers protohandler as the handler for one or more
// URI schemes and seeds a default settings document.
//
// On Linux a desktop entry declaring x-scheme-handler/<protocol> is written
// to $XDG_DATA_HOME/applications. Other platforms only get the settings
// document; registration returns ErrUnsupportedPlatform.
package installer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"

	"github.com/atlanticdynamic/protohandler/internal/config"
	"github.com/atlanticdynamic/protohandler/internal/config/loader"
	"github.com/atlanticdynamic/protohandler/internal/config/validation"
)

// DefaultProtocol is registered when the settings name no protocols.
const DefaultProtocol = "snip-proto"

// Installer writes the settings document and the scheme registrations.
type Installer struct {
	defaults   config.Defaults
	protocols  []string
	executable string
	dataHome   string
	goos       string
	logger     *slog.Logger
}

// Option configures an Installer
type Option func(*Installer)

// WithProtocols sets the schemes to register
func WithProtocols(protocols ...string) Option {
	return func(i *Installer) {
		i.protocols = append(i.protocols, protocols...)
	}
}

// WithExecutable sets the binary the desktop entry launches
func WithExecutable(path string) Option {
	return func(i *Installer) {
		if path != "" {
			i.executable = path
		}
	}
}

// WithDataHome overrides $XDG_DATA_HOME
func WithDataHome(dir string) Option {
	return func(i *Installer) {
		if dir != "" {
			i.dataHome = dir
		}
	}
}

// WithGOOS overrides the platform the installer targets
func WithGOOS(goos string) Option {
	return func(i *Installer) {
		if goos != "" {
			i.goos = goos
		}
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(i *Installer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Report describes what an install run changed.
type Report struct {
	// SettingsFile is the document the installer targets.
	SettingsFile string
	// SettingsWritten is false when the document already existed.
	SettingsWritten bool
	// Entries lists the desktop entries written.
	Entries []string
}

// New creates an Installer. The settings document is written to the
// UserSettingsFile of defaults.
func New(defaults config.Defaults, opts ...Option) *Installer {
	i := &Installer{
		defaults: defaults,
		dataHome: xdg.DataHome,
		goos:     runtime.GOOS,
		logger:   slog.Default(),
	}
	if exe, err := os.Executable(); err == nil {
		i.executable = exe
	}
	for _, opt := range opts {
		opt(i)
	}
	if len(i.protocols) == 0 {
		i.protocols = []string{DefaultProtocol}
	}
	return i
}

// Protocols returns the schemes this installer registers
func (i *Installer) Protocols() []string {
	return i.protocols
}

// Install writes the settings document when missing, then registers every
// protocol. The report is valid even when an error is returned.
func (i *Installer) Install() (Report, error) {
	report := Report{SettingsFile: i.defaults.UserSettingsFile}

	for _, p := range i.protocols {
		if err := validation.ValidateProtocolName(p); err != nil {
			return report, fmt.Errorf("%w: %w", ErrInvalidProtocol, err)
		}
	}

	written, err := i.writeSettings()
	if err != nil {
		return report, err
	}
	report.SettingsWritten = written

	if i.goos != "linux" {
		return report, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, i.goos)
	}

	for _, p := range i.protocols {
		path, err := i.writeDesktopEntry(p)
		if err != nil {
			return report, err
		}
		report.Entries = append(report.Entries, path)
	}
	return report, nil
}

// DefaultDocument is the settings document seeded by Install
func (i *Installer) DefaultDocument() *loader.Document {
	doc := &loader.Document{
		LogFile:    i.defaults.LogFile,
		ScriptPath: i.defaults.ScriptPath,
		Engine:     i.defaults.Engine,
	}
	for _, p := range i.protocols {
		doc.Protocols = append(doc.Protocols, loader.Protocol{
			Name:       p,
			ScriptPath: i.defaults.ScriptPath,
		})
	}
	return doc
}

func (i *Installer) writeSettings() (bool, error) {
	path := i.defaults.UserSettingsFile
	if path == "" {
		return false, fmt.Errorf("%w: no settings location", ErrWriteSettings)
	}
	if config.FileExists(path) {
		i.logger.Info("Settings document already exists", "path", path)
		return false, nil
	}

	data, err := loader.MarshalToml(i.DefaultDocument())
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrWriteSettings, err)
	}
	if err := writeNewFile(path, data); err != nil {
		return false, fmt.Errorf("%w: %w", ErrWriteSettings, err)
	}

	i.logger.Info("Wrote settings document", "path", path)
	return true, nil
}

// DesktopEntryPath is where the entry for protocol is written
func (i *Installer) DesktopEntryPath(protocol string) string {
	return filepath.Join(i.dataHome, "applications", config.AppName+"-"+protocol+".desktop")
}

func (i *Installer) writeDesktopEntry(protocol string) (string, error) {
	path := i.DesktopEntryPath(protocol)
	if err := writeFile(path, []byte(desktopEntry(i.executable, protocol))); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteEntry, err)
	}
	i.logger.Info("Registered protocol handler", "protocol", protocol, "entry", path)
	return path, nil
}

// desktopEntry renders a freedesktop.org desktop entry for one scheme
func desktopEntry(executable, protocol string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s (%s)\n", config.AppName, protocol)
	fmt.Fprintf(&b, "Exec=%q %%u\n", executable)
	fmt.Fprintf(&b, "MimeType=x-scheme-handler/%s;\n", protocol)
	b.WriteString("NoDisplay=true\n")
	b.WriteString("Terminal=false\n")
	return b.String()
}

func writeNewFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644) //nolint:gosec // desktop entries are world-readable
}
