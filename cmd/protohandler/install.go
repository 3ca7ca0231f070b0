package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/protohandler/internal/config"
	"github.com/atlanticdynamic/protohandler/internal/installer"
)

// installAction registers every protocol named in the default settings
func installAction(cmd *cli.Command, dir string) error {
	logger := slog.Default().With("component", "installer")
	defaults := config.CompiledDefaults(dir)

	var protocols []string
	settings, err := config.NewResolver(defaults, config.WithLogger(logger)).Load("")
	if err != nil {
		logger.Warn("Ignoring unreadable settings", "error", err)
	} else {
		for _, p := range settings.Protocols {
			protocols = append(protocols, p.Name)
		}
	}

	report, err := installer.New(defaults,
		installer.WithProtocols(protocols...),
		installer.WithLogger(logger),
	).Install()

	out := cmd.Root().Writer
	if report.SettingsWritten {
		fmt.Fprintf(out, "Wrote settings to %s\n", report.SettingsFile)
	}
	for _, entry := range report.Entries {
		fmt.Fprintf(out, "Registered %s\n", entry)
	}

	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
