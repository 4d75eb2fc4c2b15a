package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/eventia/eventia/internal/cmd"
)

func main() {
	var err error

	app := cli.App{
		Name:    fmt.Sprintf("%sd", cmd.AppName),
		Version: cmd.AppVersion,
		Usage:   "Serves the aggregated events API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "The path for storage",
				Value: cmd.DataPath(),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "The path of the configuration file",
				Value: cmd.ConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Output debug messages",
			},
		},
		Commands: []cli.Command{
			cmd.Server,
		},
	}

	err = app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
