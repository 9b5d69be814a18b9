package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/barnabemonnot/lighthouse-block-export/internal/chaindb"
	"github.com/barnabemonnot/lighthouse-block-export/internal/export"
	"github.com/barnabemonnot/lighthouse-block-export/internal/records"
	"github.com/barnabemonnot/lighthouse-block-export/pkg/metrics"
	"github.com/barnabemonnot/lighthouse-block-export/pkg/utils"
)

const metricsShutdownTimeout = 5 * time.Second

func run(c *cli.Context) error {
	// Build configuration from CLI flags
	cfg, err := buildConfig(c)
	if err != nil {
		return fmt.Errorf("failed to build config: %w", err)
	}

	sugar, err := utils.NewSugaredLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer sugar.Desugar().Sync() //nolint:errcheck // best-effort flush; ignore sync errors

	sugar.Infow("config",
		"verbose", cfg.Verbose,
		"datadir", cfg.DataDir,
		"outdir", cfg.OutDir,
		"stepSize", cfg.StepSize,
		"startSlot", cfg.StartSlot,
		"endSlot", cfg.EndSlot,
		"namespaces", cfg.Namespaces,
		"attData", cfg.AttestationData,
		"filterPolicy", cfg.FilterPolicy,
		"metricsHost", cfg.MetricsHost,
		"metricsPort", cfg.MetricsPort,
	)

	if cfg.EndSlot == 0 {
		sugar.Infof("end slot: not specified, will export to the end of the store")
	} else {
		sugar.Infof("end slot: %d (exclusive)", cfg.EndSlot)
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	store, err := chaindb.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	// Initialize Prometheus metrics
	registry := prometheus.NewRegistry()
	m, err := metrics.New(registry)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	// Start metrics server when a port is configured
	var metricsServer *metrics.Server
	var metricsErrCh <-chan error
	if cfg.MetricsPort > 0 {
		metricsServer = metrics.NewServer(cfg.MetricsAddr(), registry)
		metricsErrCh = metricsServer.Start()
		sugar.Infof("metrics server listening on http://%s/metrics", cfg.MetricsAddr())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	writer := export.NewCSVWriter(cfg.OutDir, records.Schema{AttestationData: cfg.AttestationData})
	pipeline, err := export.NewPipeline(store, writer, sugar, m, cfg.ExportOptions())
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	// The export goroutine cancels the group context on completion so the
	// metrics watcher unblocks.
	runCtx, done := context.WithCancel(ctx)
	defer done()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer done()
		for _, ns := range cfg.Namespaces {
			sugar.Infof("exporting namespace %s", ns)
			if err := pipeline.Export(gctx, ns); err != nil {
				return err
			}
		}
		return nil
	})
	if metricsErrCh != nil {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return nil
			case err := <-metricsErrCh:
				if err != nil {
					return fmt.Errorf("metrics server failed: %w", err)
				}
				return nil
			}
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		sugar.Infow("exiting due to context cancellation")
		err = nil
	} else if err != nil {
		sugar.Errorw("run failed", "error", err)
	}

	if metricsServer != nil {
		sugar.Info("shutting down metrics server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if serr := metricsServer.Shutdown(shutdownCtx); serr != nil {
			sugar.Warnw("metrics server shutdown error", "error", serr)
		}
	}

	if err == nil {
		sugar.Info("export complete")
	}
	return err
}
