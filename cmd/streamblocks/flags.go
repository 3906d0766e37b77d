package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	RunFor      time.Duration
	ShowVersion bool
	ShowHelp    bool
	Validate    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("STREAMBLOCKS_CONFIG", "configs/example.yaml"),
		"Path to topology file (env: STREAMBLOCKS_CONFIG)")
	flag.StringVar(&cfg.ConfigPath, "c",
		getEnv("STREAMBLOCKS_CONFIG", "configs/example.yaml"),
		"Path to topology file (env: STREAMBLOCKS_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("STREAMBLOCKS_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: STREAMBLOCKS_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("STREAMBLOCKS_LOG_FORMAT", "json"),
		"Log format: json, text (env: STREAMBLOCKS_LOG_FORMAT)")

	flag.DurationVar(&cfg.RunFor, "run-for", 0,
		"Stop after this duration, 0 to run until interrupted")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate topology and exit")

	flag.Parse()
	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}
	if _, err := os.Stat(cfg.ConfigPath); err != nil {
		return fmt.Errorf("topology file not found: %s", cfg.ConfigPath)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
