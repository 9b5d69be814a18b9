package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/barnabemonnot/lighthouse-block-export/internal/export"
)

// buildConfigFromArgs runs the CLI parser over args and captures the config
// the run action would see.
func buildConfigFromArgs(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	var cfg *Config
	var cfgErr error
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:  "run",
				Flags: runFlags(),
				Action: func(c *cli.Context) error {
					cfg, cfgErr = buildConfig(c)
					return nil
				},
			},
		},
	}
	full := append([]string{"exporter", "run", "--datadir", "/data", "--outdir", "/out"}, args...)
	require.NoError(t, app.Run(full))
	return cfg, cfgErr
}

func TestBuildConfig_Defaults(t *testing.T) {
	cfg, err := buildConfigFromArgs(t)
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, "/out", cfg.OutDir)
	assert.EqualValues(t, 1000, cfg.StepSize)
	assert.EqualValues(t, 0, cfg.StartSlot)
	assert.EqualValues(t, 0, cfg.EndSlot)
	assert.Equal(t, []export.Namespace{export.NamespaceBlocks, export.NamespaceStates}, cfg.Namespaces)
	assert.True(t, cfg.AttestationData)
	assert.Equal(t, export.FilterCount, cfg.FilterPolicy)
	assert.Equal(t, 0, cfg.MetricsPort)
}

func TestBuildConfig_Validation(t *testing.T) {
	_, err := buildConfigFromArgs(t, "--step-size", "0")
	assert.ErrorContains(t, err, "step-size")

	_, err = buildConfigFromArgs(t, "--start-slot", "100", "--end-slot", "50")
	assert.ErrorContains(t, err, "end-slot must be greater")

	_, err = buildConfigFromArgs(t, "--filter-policy", "bogus")
	assert.ErrorContains(t, err, "invalid filter policy")

	_, err = buildConfigFromArgs(t, "--namespaces", "stats")
	assert.ErrorContains(t, err, "invalid namespace")
}

func TestBuildConfig_SingleNamespace(t *testing.T) {
	cfg, err := buildConfigFromArgs(t, "--namespaces", "blocks")
	require.NoError(t, err)
	assert.Equal(t, []export.Namespace{export.NamespaceBlocks}, cfg.Namespaces)
}

func TestParseNamespaces_CommaSeparated(t *testing.T) {
	t.Parallel()

	// the env-var form arrives as one comma-separated element
	got, err := parseNamespaces([]string{"blocks, states"})
	require.NoError(t, err)
	assert.Equal(t, []export.Namespace{export.NamespaceBlocks, export.NamespaceStates}, got)

	_, err = parseNamespaces(nil)
	assert.ErrorContains(t, err, "at least one namespace")
}

func TestConfig_ExportOptions(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		StepSize:        500,
		StartSlot:       10,
		EndSlot:         0,
		AttestationData: false,
		FilterPolicy:    export.FilterExtract,
	}
	opts := cfg.ExportOptions()
	assert.EqualValues(t, 500, opts.StepSize)
	assert.EqualValues(t, 10, opts.Range.Start)
	assert.Nil(t, opts.Range.End)
	assert.False(t, opts.Schema.AttestationData)
	assert.Equal(t, export.FilterExtract, opts.FilterPolicy)

	cfg.EndSlot = 99
	opts = cfg.ExportOptions()
	require.NotNil(t, opts.Range.End)
	assert.EqualValues(t, 99, *opts.Range.End)
}

func TestConfig_MetricsAddr(t *testing.T) {
	t.Parallel()

	cfg := &Config{MetricsHost: "127.0.0.1", MetricsPort: 9290}
	assert.Equal(t, "127.0.0.1:9290", cfg.MetricsAddr())

	cfg = &Config{MetricsPort: 9290}
	assert.Equal(t, ":9290", cfg.MetricsAddr())
}
