package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/capitolworks/legisync/pkg/logging"
)

// NewLogger builds the CLI logger from the resolved configuration and
// installs it as the default. Level precedence, highest first:
// --log-level, then -v (debug) and -q (warn), then the LOG_LEVEL
// environment variable, then info. Caller annotation turns on at debug
// and below.
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)

	logConfig := &logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
	}

	logger := logging.NewLoggerFromConfig(logConfig)
	logging.SetDefault(logger)
	return logger
}

// determineLogLevel resolves the effective level. LOG_LEVEL from the
// environment is already folded into config.LogLevel by LoadConfig, so
// an explicit level always takes the first branch.
func determineLogLevel(config *Config) string {
	if config.LogLevel != "" {
		validated := validateLogLevel(config.LogLevel)
		if validated != config.LogLevel {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", config.LogLevel, validated)
		}
		return validated
	}

	// Quiet wins a flag conflict; the quieter choice is recoverable.
	if config.Verbose && config.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}

	if config.Verbose {
		return "debug"
	}
	if config.Quiet {
		return "warn"
	}

	return "info"
}

// validateLogLevel returns level if zerolog knows it, info otherwise.
func validateLogLevel(level string) string {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[level] {
		return level
	}

	return "info"
}
