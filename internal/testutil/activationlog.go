package testutil

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var activationLine = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\]: (.*)$`)

// ReadActivationLog returns the first line of an activation log and the
// message part of every line after it. Malformed lines fail the test.
func ReadActivationLog(t *testing.T, path string) (string, []string) {
	t.Helper()
	file, err := os.Open(path) //nolint:gosec // test helper
	require.NoError(t, err)
	defer func() { assert.NoError(t, file.Close()) }()

	scanner := bufio.NewScanner(file)
	require.True(t, scanner.Scan(), "log file %s is empty", path)
	banner := scanner.Text()

	var messages []string
	for scanner.Scan() {
		m := activationLine.FindStringSubmatch(scanner.Text())
		require.NotNil(t, m, "malformed log line %q", scanner.Text())
		messages = append(messages, m[1])
	}
	require.NoError(t, scanner.Err())
	return banner, messages
}

// WriteFile writes data to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}
