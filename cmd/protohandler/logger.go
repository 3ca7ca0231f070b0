package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/protohandler/internal/logging"
)

var logLevelFlag = &cli.StringFlag{
	Name:    "log-level",
	Usage:   "Console log level (trace, debug, info, warn, error)",
	Value:   "warn",
	Sources: cli.EnvVars("PROTOHANDLER_LOG_LEVEL"),
}

var logFormatFlag = &cli.StringFlag{
	Name:  "log-format",
	Usage: "Console log format (text or json)",
	Value: "text",
}

// setupLogger configures the default slog logger from the console flags
func setupLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logging.SetupLogger(cmd.String("log-level"), cmd.String("log-format"))
	return ctx, nil
}
