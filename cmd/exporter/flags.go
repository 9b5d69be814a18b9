package main

import (
	"github.com/urfave/cli/v2"
)

// runFlags returns all CLI flags for the exporter run command
func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable verbose logging",
			EnvVars: []string{"VERBOSE"},
			Value:   false,
		},
		&cli.StringFlag{
			Name:     "datadir",
			Aliases:  []string{"d"},
			Usage:    "Node data directory containing beacon/chain_db",
			EnvVars:  []string{"DATADIR"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     "outdir",
			Aliases:  []string{"o"},
			Usage:    "Output directory for batch artifacts",
			EnvVars:  []string{"OUTDIR"},
			Required: true,
		},
		&cli.Uint64Flag{
			Name:    "step-size",
			Aliases: []string{"s"},
			Usage:   "Number of processed items per batch (minimum 1)",
			EnvVars: []string{"STEP_SIZE"},
			Value:   1000,
		},
		&cli.Uint64Flag{
			Name:    "start-slot",
			Aliases: []string{"st"},
			Usage:   "First slot to export, inclusive",
			EnvVars: []string{"START_SLOT"},
		},
		&cli.Uint64Flag{
			Name:    "end-slot",
			Aliases: []string{"en"},
			Usage:   "Slot to stop at, exclusive. If not specified, the range is unbounded",
			EnvVars: []string{"END_SLOT"},
		},
		&cli.StringSliceFlag{
			Name:    "namespaces",
			Aliases: []string{"n"},
			Usage:   "Store namespaces to export (blocks, states)",
			EnvVars: []string{"NAMESPACES"},
			Value:   cli.NewStringSlice("blocks", "states"),
		},
		&cli.BoolFlag{
			Name:    "att-data",
			Usage:   "Include the att_slot and committee_index attestation columns",
			EnvVars: []string{"ATT_DATA"},
			Value:   true,
		},
		&cli.StringFlag{
			Name:    "filter-policy",
			Usage:   "Whether out-of-range items count towards batch boundaries (extract) or not (count)",
			EnvVars: []string{"FILTER_POLICY"},
			Value:   "count",
		},
		&cli.StringFlag{
			Name:    "metrics-host",
			Usage:   "Host for Prometheus metrics server (empty for all interfaces)",
			EnvVars: []string{"METRICS_HOST"},
			Value:   "",
		},
		&cli.IntFlag{
			Name:    "metrics-port",
			Aliases: []string{"m"},
			Usage:   "Port for Prometheus metrics server (0 disables the server)",
			EnvVars: []string{"METRICS_PORT"},
			Value:   0,
		},
	}
}
