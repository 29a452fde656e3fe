package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Strategy        string
	Capacity        int
	TTL             time.Duration
	CleanupInterval time.Duration
	TypedKeys       bool
	Iterations      int
	MaxInput        int
	MetricsPort     int
	LogLevel        string
	LogFormat       string
	ShowVersion     bool
	ShowHelp        bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.Strategy, "strategy",
		getEnv("MEMOCACHE_STRATEGY", "lru"),
		"Eviction strategy: fifo, lfu, lru, mru, rr, ttl (env: MEMOCACHE_STRATEGY)")

	flag.IntVar(&cfg.Capacity, "capacity",
		getEnvInt("MEMOCACHE_CAPACITY", 128),
		"Maximum cached results, -1 for unbounded (env: MEMOCACHE_CAPACITY)")

	flag.DurationVar(&cfg.TTL, "ttl",
		getEnvDuration("MEMOCACHE_TTL", 10*time.Minute),
		"Entry lifetime for the ttl strategy (env: MEMOCACHE_TTL)")

	flag.DurationVar(&cfg.CleanupInterval, "cleanup-interval",
		getEnvDuration("MEMOCACHE_CLEANUP_INTERVAL", 0),
		"Background expiry sweep interval for ttl, 0 disables (env: MEMOCACHE_CLEANUP_INTERVAL)")

	flag.BoolVar(&cfg.TypedKeys, "typed",
		getEnvBool("MEMOCACHE_TYPED", false),
		"Cache equal values of different types separately (env: MEMOCACHE_TYPED)")

	flag.IntVar(&cfg.Iterations, "iterations",
		getEnvInt("MEMOCACHE_ITERATIONS", 10000),
		"Number of memoized calls in the demo workload (env: MEMOCACHE_ITERATIONS)")

	flag.IntVar(&cfg.MaxInput, "max-input",
		getEnvInt("MEMOCACHE_MAX_INPUT", 40),
		"Largest Fibonacci index in the demo workload (env: MEMOCACHE_MAX_INPUT)")

	flag.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("MEMOCACHE_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to disable (env: MEMOCACHE_METRICS_PORT)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("MEMOCACHE_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: MEMOCACHE_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("MEMOCACHE_LOG_FORMAT", "text"),
		"Log format: json, text (env: MEMOCACHE_LOG_FORMAT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	validStrategies := []string{"fifo", "lfu", "lru", "mru", "rr", "ttl"}
	if !contains(validStrategies, cfg.Strategy) {
		return fmt.Errorf("invalid strategy: %s", cfg.Strategy)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	if cfg.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", cfg.Iterations)
	}

	if cfg.MaxInput <= 0 {
		return fmt.Errorf("max-input must be positive, got %d", cfg.MaxInput)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - Memoization cache demo

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Memoize with a 256-entry LFU cache
  %s --strategy=lfu --capacity=256

  # Time-based caching with a background sweep and metrics
  %s --strategy=ttl --ttl=30s --cleanup-interval=5s --metrics-port=9090

  # Run with environment variables
  export MEMOCACHE_STRATEGY=rr
  export MEMOCACHE_LOG_LEVEL=debug
  %s

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
