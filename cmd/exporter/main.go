package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "exporter",
		Usage: "Export beacon chain history from a Lighthouse chain_db to batched CSV files",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the export pipeline",
				Flags:  runFlags(),
				Action: run,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
