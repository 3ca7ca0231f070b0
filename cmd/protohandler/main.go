package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "protohandler",
		Version:   Version,
		Usage:     "Dispatch URI scheme activations to a script",
		ArgsUsage: "<uri>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "install",
				Aliases: []string{"i"},
				Usage:   "Register the protocol handler and write a default settings file",
			},
			&cli.StringFlag{
				Name:    "protocol",
				Aliases: []string{"p"},
				Usage:   "Protocol used to choose the script, instead of the URI scheme",
			},
			&cli.StringFlag{
				Name:    "settings",
				Aliases: []string{"s"},
				Usage:   "Path to a settings file (TOML or JSON)",
			},
			&cli.StringFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Usage:   "Existing file to write the activation log to",
			},
			logLevelFlag,
			logFormatFlag,
			baseDirFlag,
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			versionCmd,
			settingsCmd,
		},
		Action: activateAction,
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
