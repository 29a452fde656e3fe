// Package main implements a demonstration binary for the memocache library.
// It memoizes a deliberately expensive function, drives a randomized workload
// against it, and reports cache effectiveness through structured logs and an
// optional Prometheus endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/c360/memocache/cache"
	"github.com/c360/memocache/memo"
	"github.com/c360/memocache/metric"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "memocache"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	// Run application with proper error handling
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metricsRegistry, metricsServer := setupMetrics(cliCfg)
	if metricsServer != nil {
		defer func() {
			if err := metricsServer.Stop(); err != nil {
				slog.Warn("Failed to stop metrics server", "error", err)
			}
		}()
	}

	memoized, err := buildMemo(ctx, cliCfg, metricsRegistry)
	if err != nil {
		return fmt.Errorf("build memoizer: %w", err)
	}
	defer func() {
		if err := memoized.Close(); err != nil {
			slog.Warn("Failed to close memoizer", "error", err)
		}
	}()

	if err := runWorkload(ctx, cliCfg, memoized); err != nil {
		return err
	}

	reportResults(memoized)

	// Keep serving metrics until interrupted so the run can be scraped
	if metricsServer != nil {
		slog.Info("Workload complete, metrics server still running",
			"address", metricsServer.Address())
		<-ctx.Done()
		slog.Info("Received shutdown signal")
	}

	return nil
}

// initializeCLI parses flags and sets up logging
func initializeCLI() (*CLIConfig, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, true, nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting memocache demo",
		"version", Version,
		"build_time", BuildTime,
		"strategy", cliCfg.Strategy,
		"capacity", cliCfg.Capacity)

	return cliCfg, false, nil
}

// setupMetrics creates the metrics registry and HTTP server when enabled.
func setupMetrics(cliCfg *CLIConfig) (*metric.MetricsRegistry, *metric.Server) {
	if cliCfg.MetricsPort == 0 {
		return nil, nil
	}

	registry := metric.NewMetricsRegistry()
	server := metric.NewServer(cliCfg.MetricsPort, "/metrics", registry)

	go func() {
		slog.Info("Starting metrics server", "address", server.Address())
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()

	return registry, server
}

// buildMemo wires the memoized Fibonacci function to the configured cache.
func buildMemo(
	ctx context.Context, cliCfg *CLIConfig, registry *metric.MetricsRegistry,
) (*memo.Memo[uint64], error) {
	var memoized *memo.Memo[uint64]

	// Naive recursion so each uncached level calls back into the memoizer;
	// with caching the workload collapses to linear work per input.
	fib := func(args ...any) (uint64, error) {
		n := args[0].(int)
		if n < 2 {
			return uint64(n), nil
		}
		a, err := memoized.Call(n - 1)
		if err != nil {
			return 0, err
		}
		b, err := memoized.Call(n - 2)
		if err != nil {
			return 0, err
		}
		return a + b, nil
	}

	options := []memo.Option{memo.WithCapacity(cliCfg.Capacity)}
	if cliCfg.TypedKeys {
		options = append(options, memo.WithTypedKeys())
	}
	if registry != nil {
		options = append(options, memo.WithMetrics(registry, "demo"))
	}

	var err error
	switch cache.Strategy(cliCfg.Strategy) {
	case cache.StrategyFIFO:
		memoized, err = memo.FIFO(fib, options...)
	case cache.StrategyLFU:
		memoized, err = memo.LFU(fib, options...)
	case cache.StrategyLRU:
		memoized, err = memo.LRU(fib, options...)
	case cache.StrategyMRU:
		memoized, err = memo.MRU(fib, options...)
	case cache.StrategyRR:
		memoized, err = memo.RR(fib, options...)
	case cache.StrategyTTL:
		options = append(options, memo.WithTTL(cliCfg.TTL))
		if cliCfg.CleanupInterval > 0 {
			options = append(options, memo.WithCleanupInterval(cliCfg.CleanupInterval))
		}
		memoized, err = memo.TTL(ctx, fib, options...)
	default:
		return nil, fmt.Errorf("unsupported strategy: %s", cliCfg.Strategy)
	}

	return memoized, err
}

// runWorkload drives randomized calls through the memoizer.
func runWorkload(ctx context.Context, cliCfg *CLIConfig, memoized *memo.Memo[uint64]) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now()

	for i := 0; i < cliCfg.Iterations; i++ {
		select {
		case <-ctx.Done():
			slog.Info("Workload interrupted", "completed", i)
			return nil
		default:
		}

		n := rng.Intn(cliCfg.MaxInput + 1)
		value, err := memoized.Call(n)
		if err != nil {
			return fmt.Errorf("call %d: %w", n, err)
		}

		if i == 0 {
			slog.Debug("First result", "input", n, "value", value)
		}
	}

	slog.Info("Workload finished",
		"iterations", cliCfg.Iterations,
		"max_input", cliCfg.MaxInput,
		"elapsed", time.Since(start))

	return nil
}

// reportResults logs cache effectiveness for the run.
func reportResults(memoized *memo.Memo[uint64]) {
	info := memoized.Info()
	params := memoized.Parameters()

	slog.Info("Memoization results",
		"strategy", params.Strategy,
		"capacity", info.Capacity,
		"size", info.Size,
		"hits", info.Hits,
		"misses", info.Misses)

	if stats := memoized.Cache().Stats(); stats != nil {
		summary := stats.Summary()
		slog.Info("Cache statistics",
			"hit_ratio", fmt.Sprintf("%.3f", summary.HitRatio),
			"sets", summary.Sets,
			"evictions", summary.Evictions,
			"expirations", summary.Expirations,
			"max_size", summary.MaxSize,
			"uptime", summary.Uptime)
	}
}
