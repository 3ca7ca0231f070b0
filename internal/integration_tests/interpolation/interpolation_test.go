package interpolation_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlanticdynamic/protohandler/internal/activation"
	"github.com/atlanticdynamic/protohandler/internal/config"
	"github.com/atlanticdynamic/protohandler/internal/testutil"
)

func TestEndToEndInterpolation(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PH_STATE_DIR", filepath.Join(dir, "state"))
	t.Setenv("PH_SCRIPT_DIR", filepath.Join(dir, "handlers"))
	t.Setenv("PH_ENGINE", "shell")

	testutil.WriteFile(t, dir, filepath.Join("handlers", "echo.sh"), "echo \"got $Uri\"\n")
	testutil.WriteFile(t, dir, filepath.Join("handlers", "mail.sh"), "echo \"mail $Uri\"\n")

	defaults := config.Defaults{
		LogFile:    filepath.Join(dir, "default.log"),
		ScriptPath: filepath.Join(dir, "default.risor"),
		Engine:     config.DefaultEngine,
	}

	t.Run("paths with env references", func(t *testing.T) {
		settingsPath := testutil.WriteFile(t, dir, "env.toml", `
LogFile = "${PH_STATE_DIR}/protohandler.log"
ScriptPath = "${PH_SCRIPT_DIR}/echo.sh"
`)
		settings, err := config.NewResolver(defaults).Load(settingsPath)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "state", "protohandler.log"), settings.LogFile)
		assert.Equal(t, filepath.Join(dir, "handlers", "echo.sh"), settings.ScriptPath)
	})

	t.Run("defaults inside references", func(t *testing.T) {
		settingsPath := testutil.WriteFile(t, dir, "defaults.toml", `
LogFile = "${PH_UNSET_DIR:logs}/run.log"
`)
		settings, err := config.NewResolver(defaults).Load(settingsPath)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "logs", "run.log"), settings.LogFile)
	})

	t.Run("undefined reference fails the load", func(t *testing.T) {
		settingsPath := testutil.WriteFile(t, dir, "undefined.toml", `
ScriptPath = "${PH_NOT_DEFINED}/x.sh"
`)
		_, err := config.NewResolver(defaults).Load(settingsPath)
		require.ErrorIs(t, err, config.ErrFailedToLoadConfig)
	})

	t.Run("engine names are never interpolated", func(t *testing.T) {
		settingsPath := testutil.WriteFile(t, dir, "engine.toml", `
Engine = "${PH_ENGINE}"
`)
		settings, err := config.NewResolver(defaults).Load(settingsPath)
		require.NoError(t, err)
		assert.Equal(t, "${PH_ENGINE}", settings.Engine)
	})

	t.Run("protocol table paths are interpolated", func(t *testing.T) {
		settingsPath := testutil.WriteFile(t, dir, "protocols.json", `{
  "Protocols": [{"Name": "mail-proto", "ScriptPath": "${PH_SCRIPT_DIR}/mail.sh"}]
}`)
		settings, err := config.NewResolver(defaults).Load(settingsPath)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "handlers", "mail.sh"), settings.ScriptFor("mail-proto"))
	})

	t.Run("activation uses interpolated settings", func(t *testing.T) {
		settingsPath := testutil.WriteFile(t, dir, "activation.toml", `
LogFile = "${PH_STATE_DIR}/activation.log"
ScriptPath = "${PH_SCRIPT_DIR}/echo.sh"

[[Protocols]]
Name = "mail-proto"
ScriptPath = "${PH_SCRIPT_DIR}/mail.sh"
`)
		p, err := activation.NewPipeline(
			activation.WithDefaults(defaults),
			activation.WithBaseDir(dir),
			activation.WithLogHandler(slog.NewTextHandler(os.Stdout, nil)),
		)
		require.NoError(t, err)
		require.NoError(t, p.Execute(t.Context(), activation.Request{
			URI:          "mail-proto://inbox%20one",
			SettingsPath: settingsPath,
		}))

		_, messages := testutil.ReadActivationLog(t, filepath.Join(dir, "state", "activation.log"))
		assert.Contains(t, messages, "Loading script from Path "+filepath.Join(dir, "handlers", "mail.sh"))
		assert.Contains(t, messages, "- Script output: 'mail mail-proto://inbox one'")
		assert.Equal(t, "protoHandler finished", messages[len(messages)-1])
	})
}
