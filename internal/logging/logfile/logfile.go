// Package logfile implements the durable activation log: an append-only text
// file that receives one timestamped line per message.
//
// Every Write opens the file, appends one line and closes it again. No handle
// is held between writes, so lines already written survive a crash of the
// script engine. The sink does no locking; one process writes one file.
package logfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout formats the timestamp prefix of every line.
const TimestampLayout = time.DateTime

// Sink appends lines to a single log file.
type Sink struct {
	path   string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Sink
type Option func(*Sink)

// WithClock replaces the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Sink) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New binds a sink to path. An existing file is used as-is. Otherwise the
// parent directory is created when missing and the file is created with a
// start banner as its first line.
func New(path string, opts ...Option) (*Sink, error) {
	s := &Sink{
		path:   path,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.path == "" {
		return nil, ErrLoggerMisconfigured
	}

	if info, err := os.Stat(s.path); err == nil {
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", ErrCreateLog, s.path)
		}
		s.logger.Debug("Using existing log file", "path", s.path)
		return s, nil
	}

	if err := s.create(); err != nil {
		return nil, err
	}
	return s, nil
}

// create makes the parent directory and writes the banner line
func (s *Sink) create() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory %s: %w", ErrCreateLog, dir, err)
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCreateLog, s.path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			s.logger.Warn("Failed to close new log file", "path", s.path, "error", cerr)
		}
	}()

	if _, err := fmt.Fprintf(file, "--- Log file started %s ---\n", s.timestamp()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCreateLog, s.path, err)
	}

	s.logger.Debug("Created log file", "path", s.path)
	return nil
}

// Path returns the file this sink appends to
func (s *Sink) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Write appends one "[<timestamp>]: <msg>" line to the log file. Line breaks
// inside msg are folded so every message stays on a single prefixed line.
func (s *Sink) Write(msg string) error {
	if s == nil || s.path == "" {
		return ErrLoggerMisconfigured
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteLog, s.path, err)
	}

	_, writeErr := fmt.Fprintf(file, "[%s]: %s\n", s.timestamp(), singleLine(msg))
	closeErr := file.Close()
	if writeErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteLog, s.path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteLog, s.path, closeErr)
	}
	return nil
}

// Writef formats a message and appends it as one line
func (s *Sink) Writef(format string, args ...any) error {
	return s.Write(fmt.Sprintf(format, args...))
}

// lineSeparator joins the lines of a multi-line message
const lineSeparator = " | "

// singleLine drops blank lines from msg and joins the rest with lineSeparator
func singleLine(msg string) string {
	if !strings.ContainsAny(msg, "\r\n") {
		return msg
	}
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")

	parts := make([]string, 0, strings.Count(msg, "\n")+1)
	for line := range strings.SplitSeq(msg, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, lineSeparator)
}

func (s *Sink) timestamp() string {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return now().Format(TimestampLayout)
}
