package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/atlanticdynamic/protohandler/internal/activation"
	"github.com/atlanticdynamic/protohandler/internal/config"
)

var (
	ErrConflictingArguments = errors.New("--install cannot be combined with a URI, --protocol or --settings")
	ErrMissingURI           = errors.New("a URI argument is required")
	ErrTooManyArguments     = errors.New("only one URI argument is accepted")
)

// baseDirFlag relocates the compiled defaults, which are otherwise rooted at
// the directory of the executable.
var baseDirFlag = &cli.StringFlag{
	Name:    "base-dir",
	Usage:   "Directory the default settings, log and script paths are rooted at",
	Hidden:  true,
	Sources: cli.EnvVars("PROTOHANDLER_BASE_DIR"),
}

// requestFromCommand builds the activation request and enforces the
// mutually exclusive argument groups
func requestFromCommand(cmd *cli.Command) (activation.Request, error) {
	req := activation.Request{
		URI:          cmd.Args().First(),
		Install:      cmd.Bool("install"),
		Protocol:     cmd.String("protocol"),
		SettingsPath: cmd.String("settings"),
		LogPath:      cmd.String("log"),
	}

	if cmd.Args().Len() > 1 {
		return req, ErrTooManyArguments
	}
	if req.Install && (req.URI != "" || req.Protocol != "" || req.SettingsPath != "") {
		return req, ErrConflictingArguments
	}
	if !req.Install && req.URI == "" {
		return req, ErrMissingURI
	}
	return req, nil
}

// baseDir returns the directory compiled defaults are rooted at
func baseDir(cmd *cli.Command) (string, error) {
	if dir := cmd.String("base-dir"); dir != "" {
		return dir, nil
	}
	return config.ExecutableDir()
}

func activateAction(ctx context.Context, cmd *cli.Command) error {
	req, err := requestFromCommand(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	dir, err := baseDir(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if req.Install {
		return installAction(cmd, dir)
	}

	pipeline, err := activation.NewPipeline(
		activation.WithBaseDir(dir),
		activation.WithLogHandler(slog.Default().Handler()),
	)
	if err != nil {
		return cli.Exit(fmt.Errorf("failed to create activation pipeline: %w", err), 1)
	}

	slog.Debug("Activation started", "id", pipeline.ID, "uri", req.URI)
	if err := pipeline.Execute(ctx, req); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
