// Package config parses and validates the overlay's runtime configuration.
// Every setting has a default reproducing the stock widget, so running the
// program with no flags and no environment gives the standard behaviour.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/sysoverlay/internal/errors"
	"github.com/agbru/sysoverlay/internal/sysmon"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "SYSOVERLAY_"

const (
	// DefaultInterval is the refresh period of the overlay.
	DefaultInterval = time.Second
	// MinInterval bounds the refresh period from below.
	MinInterval = 100 * time.Millisecond
	// DefaultLogLevel is the zerolog level used when none is given.
	DefaultLogLevel = "info"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Interval is the period between two samples.
	Interval time.Duration
	// SensorPath is the temperature file holding millidegrees Celsius.
	SensorPath string
	// SensorFallback enables the platform sensor scan when SensorPath is unreadable.
	SensorFallback bool
	// AlwaysOnTop presets the stacking flag of the window.
	AlwaysOnTop bool
	// LogFile receives structured logs; empty discards them.
	LogFile string
	// LogLevel is a zerolog level name.
	LogLevel string
	// MetricsAddr enables the Prometheus endpoint when non-empty.
	MetricsAddr string
	// Once prints a single sample to stdout instead of opening the overlay.
	Once bool
	// NoColor disables colors in the overlay.
	NoColor bool
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{
		Interval:   DefaultInterval,
		SensorPath: sysmon.DefaultSensorPath,
		LogLevel:   DefaultLogLevel,
	}
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate() error {
	if c.Interval < MinInterval {
		return apperrors.NewConfigError("interval %s is shorter than the minimum %s", c.Interval, MinInterval)
	}
	if strings.TrimSpace(c.SensorPath) == "" {
		return apperrors.NewConfigError("sensor path must not be empty")
	}
	if c.MetricsAddr != "" && !strings.Contains(c.MetricsAddr, ":") {
		return apperrors.NewConfigError("metrics address %q must be host:port", c.MetricsAddr)
	}
	return nil
}

// ParseConfig parses command-line arguments, applies environment overrides
// for flags that were not set, and validates the result.
// The priority is: CLI flags > Environment variables > Defaults.
//
// Parameters:
//   - programName: The name shown in usage output.
//   - args: The arguments, excluding the program name.
//   - errWriter: Where usage and parse errors are written.
//
// Returns:
//   - AppConfig: The resulting configuration.
//   - error: flag.ErrHelp when help was requested, a ConfigError otherwise.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := Default()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "Refresh period of the overlay.")
	fs.StringVar(&cfg.SensorPath, "sensor", cfg.SensorPath, "Temperature file holding millidegrees Celsius.")
	fs.BoolVar(&cfg.SensorFallback, "sensor-fallback", cfg.SensorFallback, "Scan platform sensors when the temperature file is unreadable.")
	fs.BoolVar(&cfg.AlwaysOnTop, "on-top", cfg.AlwaysOnTop, "Start with the overlay kept above the status bar.")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write structured logs to this file.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error).")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address (host:port).")
	fs.BoolVar(&cfg.Once, "once", cfg.Once, "Print one sample to stdout and exit.")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colors.")
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\nFlags:\n", programName)
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEvery flag except -no-color can be set through %s<NAME> (e.g. %sINTERVAL=2s).\n", EnvPrefix, EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(errWriter, "Error:", err)
		return cfg, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return cfg, err
	}
	return cfg, nil
}
