package testutil

import (
	"bytes"
	"strings"
	"sync"
)

// CommandOutput collects what a CLI command prints to its Writer and
// ErrWriter. It is safe to share between both writers.
type CommandOutput struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer
func (o *CommandOutput) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buf.Write(p)
}

// String returns everything written so far
func (o *CommandOutput) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buf.String()
}

// Lines returns the non-blank output lines, trimmed of trailing whitespace
func (o *CommandOutput) Lines() []string {
	var lines []string
	for line := range strings.Lines(o.String()) {
		line = strings.TrimRight(line, " \t\r\n")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
