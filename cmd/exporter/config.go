package main

import (
	"fmt"
	"strings"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/urfave/cli/v2"

	"github.com/barnabemonnot/lighthouse-block-export/internal/export"
	"github.com/barnabemonnot/lighthouse-block-export/internal/records"
)

// Config holds all configuration for the exporter application
type Config struct {
	// Application settings
	Verbose bool

	// Store and output locations
	DataDir string
	OutDir  string

	// Pipeline settings
	StepSize        uint64
	StartSlot       uint64
	EndSlot         uint64 // 0 means unbounded
	Namespaces      []export.Namespace
	AttestationData bool
	FilterPolicy    export.FilterPolicy

	// Metrics settings
	MetricsHost string
	MetricsPort int
}

// MetricsAddr returns the formatted metrics address
func (c *Config) MetricsAddr() string {
	return fmt.Sprintf("%s:%d", c.MetricsHost, c.MetricsPort)
}

// ExportOptions builds pipeline options from the config. The end-slot flag's
// zero value maps to an unbounded range.
func (c *Config) ExportOptions() export.Options {
	opts := export.DefaultOptions()
	opts.StepSize = c.StepSize
	opts.FilterPolicy = c.FilterPolicy
	opts.Schema = records.Schema{AttestationData: c.AttestationData}
	opts.Range.Start = phase0.Slot(c.StartSlot)
	if c.EndSlot != 0 {
		end := phase0.Slot(c.EndSlot)
		opts.Range.End = &end
	}
	return opts
}

// buildConfig builds a Config from CLI context flags
func buildConfig(c *cli.Context) (*Config, error) {
	stepSize := c.Uint64("step-size")
	if stepSize < 1 {
		return nil, fmt.Errorf("step-size must be at least 1, got %d", stepSize)
	}

	startSlot := c.Uint64("start-slot")
	endSlot := c.Uint64("end-slot")
	if endSlot != 0 && endSlot <= startSlot {
		return nil, fmt.Errorf("end-slot must be greater than start-slot: %d <= %d", endSlot, startSlot)
	}

	policy, err := export.ParseFilterPolicy(c.String("filter-policy"))
	if err != nil {
		return nil, err
	}

	namespaces, err := parseNamespaces(c.StringSlice("namespaces"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Verbose:         c.Bool("verbose"),
		DataDir:         c.String("datadir"),
		OutDir:          c.String("outdir"),
		StepSize:        stepSize,
		StartSlot:       startSlot,
		EndSlot:         endSlot,
		Namespaces:      namespaces,
		AttestationData: c.Bool("att-data"),
		FilterPolicy:    policy,
		MetricsHost:     c.String("metrics-host"),
		MetricsPort:     c.Int("metrics-port"),
	}, nil
}

// parseNamespaces validates the namespace list. A StringSliceFlag set from an
// environment variable arrives as a single comma-separated value.
func parseNamespaces(raw []string) ([]export.Namespace, error) {
	if len(raw) == 1 && strings.Contains(raw[0], ",") {
		raw = strings.Split(raw[0], ",")
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("at least one namespace is required")
	}
	out := make([]export.Namespace, 0, len(raw))
	for _, s := range raw {
		ns, err := export.ParseNamespace(strings.TrimSpace(s))
		if err != nil {
			return nil, err
		}
		out = append(out, ns)
	}
	return out, nil
}
