package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/protohandler/internal/config"
)

var settingsCmd = &cli.Command{
	Name:   "settings",
	Usage:  "Print the resolved settings (honors --settings)",
	Action: settingsAction,
}

func settingsAction(_ context.Context, cmd *cli.Command) error {
	dir, err := baseDir(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	settings, err := config.NewResolver(config.CompiledDefaults(dir)).Load(cmd.String("settings"))
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to load settings: %w", err), 1)
	}

	// Use the Stringer interface to print the settings in a fancy tree format
	fmt.Fprintln(cmd.Root().Writer, settings)
	return nil
}
