// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the SYSOVERLAY_ prefix) to the CLI flag
// name it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flag   string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides.
// Invalid values are ignored and the flag default is kept.
var envOverrides = []envOverride{
	// Duration overrides
	{"INTERVAL", "interval", func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Interval = parsed
		}
	}},

	// String overrides
	{"SENSOR", "sensor", func(c *AppConfig, v string) {
		c.SensorPath = v
	}},
	{"LOG_FILE", "log-file", func(c *AppConfig, v string) {
		c.LogFile = v
	}},
	{"LOG_LEVEL", "log-level", func(c *AppConfig, v string) {
		c.LogLevel = v
	}},
	{"METRICS_ADDR", "metrics-addr", func(c *AppConfig, v string) {
		c.MetricsAddr = v
	}},

	// Boolean overrides
	{"SENSOR_FALLBACK", "sensor-fallback", func(c *AppConfig, v string) {
		c.SensorFallback = parseBoolEnv(v, c.SensorFallback)
	}},
	{"ON_TOP", "on-top", func(c *AppConfig, v string) {
		c.AlwaysOnTop = parseBoolEnv(v, c.AlwaysOnTop)
	}},
	{"ONCE", "once", func(c *AppConfig, v string) {
		c.Once = parseBoolEnv(v, c.Once)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
//
// Supported environment variables (all prefixed with SYSOVERLAY_):
//   - INTERVAL, SENSOR, SENSOR_FALLBACK, ON_TOP, LOG_FILE, LOG_LEVEL,
//     METRICS_ADDR, ONCE
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSet(fs, o.flag) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
