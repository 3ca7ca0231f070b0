// Package activation runs one URI activation: resolve settings, open the
// activation log, dispatch the URI to a script and record what happened.
//
// Failures before the activation log exists are returned to the caller.
// Once the log is open the run is fail-soft: any staging or execution
// failure is written to the log as a single line and the run still ends
// with the "protoHandler finished" marker. Script failures are therefore
// never returned from Execute; read the log to see them.
package activation

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/robbyt/go-loglater"

	"github.com/atlanticdynamic/protohandler/internal/activation/finitestate"
	"github.com/atlanticdynamic/protohandler/internal/config"
	"github.com/atlanticdynamic/protohandler/internal/logging/logfile"
	"github.com/atlanticdynamic/protohandler/internal/scripts"
	"github.com/atlanticdynamic/protohandler/internal/scripts/engines"
)

// Log lines written to the activation log
const (
	msgStarting      = "Starting ProtocolHandler in %s"
	msgScriptMissing = "ERROR could not find scriptPath %s"
	msgScriptLoading = "Loading script from Path %s"
	msgSettingURI    = "- setting URI to %s"
	msgInvoking      = "- Invoking script"
	msgScriptOutput  = "- Script output: '%s'"
	msgFinished      = "protoHandler finished"
)

// Script parameter names
const (
	ParamURI     = "Uri"
	ParamLogFile = "LogFile"
)

// InvokerFactory creates the single-use invoker for one run
type InvokerFactory func(opts ...scripts.Option) *scripts.Invoker

// Pipeline executes a single activation.
type Pipeline struct {
	// ID is the unique identifier for this run
	ID uuid.UUID

	defaults    config.Defaults
	baseDir     string
	now         func() time.Time
	newInvoker  InvokerFactory
	userHandler slog.Handler

	fsm          finitestate.Machine
	logger       *slog.Logger
	logCollector *loglater.LogCollector

	settings *config.Settings
	sink     *logfile.Sink
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithDefaults replaces the compiled defaults
func WithDefaults(defaults config.Defaults) Option {
	return func(p *Pipeline) {
		p.defaults = defaults
	}
}

// WithLogHandler sets the handler for diagnostic output
func WithLogHandler(handler slog.Handler) Option {
	return func(p *Pipeline) {
		if handler != nil {
			p.userHandler = handler
		}
	}
}

// WithInvokerFactory replaces how the script invoker is created
func WithInvokerFactory(factory InvokerFactory) Option {
	return func(p *Pipeline) {
		if factory != nil {
			p.newInvoker = factory
		}
	}
}

// WithClock sets the time source for log timestamps
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithBaseDir sets the directory reported at startup and used to root the
// compiled defaults. Defaults to the directory of the executable.
func WithBaseDir(dir string) Option {
	return func(p *Pipeline) {
		p.baseDir = dir
	}
}

// NewPipeline creates a pipeline in the Start state
func NewPipeline(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		ID:          uuid.Must(uuid.NewV6()),
		now:         time.Now,
		newInvoker:  scripts.NewInvoker,
		userHandler: slog.Default().Handler(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.baseDir == "" {
		dir, err := config.ExecutableDir()
		if err != nil {
			return nil, err
		}
		p.baseDir = dir
	}
	if p.defaults == (config.Defaults{}) {
		p.defaults = config.CompiledDefaults(p.baseDir)
	}
	if err := p.defaults.Validate(); err != nil {
		return nil, err
	}

	p.logCollector = loglater.NewLogCollector(p.userHandler)
	p.logger = slog.New(p.logCollector).With("id", p.ID)

	sm, err := finitestate.New(p.logCollector)
	if err != nil {
		return nil, fmt.Errorf("%s failed to create state machine: %w", p.ID, err)
	}
	p.fsm = sm

	return p, nil
}

// State returns the current pipeline state
func (p *Pipeline) State() string {
	return p.fsm.GetState()
}

// Settings returns a copy of the resolved settings, nil before resolution
func (p *Pipeline) Settings() *config.Settings {
	return p.settings.Clone()
}

// PlaybackLogs replays the diagnostic records of this run to handler
func (p *Pipeline) PlaybackLogs(handler slog.Handler) error {
	return p.logCollector.PlayLogs(handler)
}

// Execute runs the activation. It returns an error only when settings could
// not be resolved or the activation log could not be opened.
func (p *Pipeline) Execute(ctx context.Context, req Request) error {
	settings, err := p.resolveSettings(req)
	if err != nil {
		p.logger.Error("Failed to resolve settings", "error", err)
		return err
	}
	p.settings = settings
	p.transition(finitestate.StateSettingsResolved)

	sink, err := logfile.New(settings.LogFile, logfile.WithClock(p.now), logfile.WithLogger(p.logger))
	if err != nil {
		p.logger.Error("Failed to open activation log", "path", settings.LogFile, "error", err)
		return fmt.Errorf("%w: %w", ErrLoggerUnavailable, err)
	}
	p.sink = sink
	p.write(msgStarting, p.baseDir)
	p.transition(finitestate.StateLoggerReady)

	scriptPath := p.checkScriptPath(req)
	p.transition(finitestate.StateScriptPathChecked)

	uri := DecodeURI(req.URI)
	p.transition(finitestate.StateURIDecoded)

	if err := p.invoke(ctx, scriptPath, uri); err != nil {
		p.logger.Error("Script failed", "script", scriptPath, "error", err)
		p.write("%s", err.Error())
	}

	p.write(msgFinished)
	p.transition(finitestate.StateCompleted)
	p.logger.Debug("Activation finished", "state", p.State())
	return nil
}

// resolveSettings loads the settings document and applies the log override
func (p *Pipeline) resolveSettings(req Request) (*config.Settings, error) {
	resolver := config.NewResolver(p.defaults, config.WithLogger(p.logger))
	settings, err := resolver.Load(req.SettingsPath)
	if err != nil {
		return nil, err
	}

	if req.LogPath != "" {
		if !config.FileExists(req.LogPath) {
			return nil, config.NewConfigNotFoundError("log", req.LogPath)
		}
		abs, err := filepath.Abs(req.LogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve log path '%s': %w", req.LogPath, err)
		}
		settings.SetLogFile(abs)
	}
	return settings, nil
}

// checkScriptPath picks the script for the URI scheme and records whether it
// exists. A missing script is not fatal.
func (p *Pipeline) checkScriptPath(req Request) string {
	protocol := req.Protocol
	if protocol == "" {
		protocol = ExtractProtocol(req.URI)
	}
	if protocol != "" {
		p.logger.Info("Uri contains protocol "+protocol, "protocol", protocol)
	}

	scriptPath := p.settings.ScriptFor(protocol)
	if !config.FileExists(scriptPath) {
		p.write(msgScriptMissing, scriptPath)
	} else {
		p.write(msgScriptLoading, scriptPath)
	}
	return scriptPath
}

// invoke stages and runs the script. Every failure, including a panic inside
// an engine, comes back as the returned error.
func (p *Pipeline) invoke(ctx context.Context, scriptPath, uri string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrScriptPanic, r)
		}
	}()

	p.write(msgSettingURI, uri)

	engine, err := engines.ParseType(p.settings.Engine)
	if err != nil {
		return err
	}

	invoker := p.newInvoker(
		scripts.WithLogHandler(p.logCollector),
		scripts.WithDefaultEngine(engine),
	).
		AddScript(scriptPath).
		AddParameter(ParamURI, uri).
		AddParameter(ParamLogFile, p.settings.LogFile)
	if err := invoker.Err(); err != nil {
		return err
	}
	p.transition(finitestate.StateStaged)

	p.write(msgInvoking)
	results, err := invoker.Run(ctx)
	if err != nil {
		return err
	}
	p.transition(finitestate.StateExecuted)

	for _, result := range results {
		p.write(msgScriptOutput, result)
	}
	return nil
}

// write appends one line to the activation log. A failed write is reported
// on the diagnostic logger only.
func (p *Pipeline) write(format string, args ...any) {
	if err := p.sink.Writef(format, args...); err != nil {
		p.logger.Error("Failed to write activation log", "error", err)
	}
}

func (p *Pipeline) transition(state string) {
	if err := p.fsm.Transition(state); err != nil {
		p.logger.Error("Invalid pipeline transition", "from", p.fsm.GetState(), "to", state, "error", err)
	}
}
