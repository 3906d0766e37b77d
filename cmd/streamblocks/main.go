// Package main implements the streamblocks topology runner: it loads a
// YAML topology description, builds the blocks through the registry, and
// drives them until interrupted, exposing Prometheus metrics over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/blocks/file"
	"github.com/c360/streamblocks/blocks/stream"
	"github.com/c360/streamblocks/config"
	"github.com/c360/streamblocks/metric"
	"github.com/c360/streamblocks/topology"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "streamblocks"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		printHelp()
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)
	slog.Info("starting streamblocks", "config_path", cliCfg.ConfigPath)

	cfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load topology: %w", err)
	}
	if cliCfg.Validate {
		slog.Info("topology is valid")
		return nil
	}

	registry := block.NewRegistry()
	if err := stream.Register(registry); err != nil {
		return fmt.Errorf("register blocks: %w", err)
	}
	if err := file.Register(registry); err != nil {
		return fmt.Errorf("register blocks: %w", err)
	}

	metricsRegistry := metric.NewRegistry()
	tp, blocks, err := cfg.Build(registry,
		topology.WithLogger(logger),
		topology.WithMetrics(metricsRegistry.CoreMetrics()),
	)
	if err != nil {
		return fmt.Errorf("build topology: %w", err)
	}
	slog.Info("topology built", "blocks", len(blocks), "version", cfg.Version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if cliCfg.RunFor > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cliCfg.RunFor)
		defer cancel()
	}

	g, ctx := errgroup.WithContext(ctx)

	var metricsServer *metric.Server
	if cfg.Metrics.Enabled {
		metricsServer = metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, metricsRegistry)
		g.Go(func() error {
			slog.Info("metrics server listening", "address", metricsServer.Address())
			return metricsServer.Start()
		})
		g.Go(func() error {
			<-ctx.Done()
			return metricsServer.Stop()
		})
	}

	g.Go(func() error {
		return tp.Run(ctx)
	})

	err = g.Wait()
	slog.Info("streamblocks stopped")
	return err
}

func printHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - dataflow topology runner

Usage: %s [options]

Run a YAML topology until interrupted. See configs/example.yaml for the
file format.

Version: %s
`, appName, os.Args[0], Version)
}
