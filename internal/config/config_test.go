package config

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/sysoverlay/internal/errors"
	"github.com/agbru/sysoverlay/internal/sysmon"
)

func TestParseConfig_Defaults(t *testing.T) {
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("sysoverlay", nil, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("ParseConfig() = %+v, want defaults %+v", cfg, Default())
	}
	if cfg.Interval != time.Second {
		t.Errorf("default interval = %v, want 1s", cfg.Interval)
	}
	if cfg.SensorPath != sysmon.DefaultSensorPath {
		t.Errorf("default sensor = %q", cfg.SensorPath)
	}
	if cfg.AlwaysOnTop || cfg.Once || cfg.MetricsAddr != "" {
		t.Errorf("optional features should be off by default: %+v", cfg)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	var errBuf bytes.Buffer
	args := []string{"-interval", "2s", "-sensor", "/tmp/t", "-on-top", "-metrics-addr", ":9100", "-once", "-sensor-fallback"}
	cfg, err := ParseConfig("sysoverlay", args, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Interval != 2*time.Second || cfg.SensorPath != "/tmp/t" || !cfg.AlwaysOnTop ||
		cfg.MetricsAddr != ":9100" || !cfg.Once || !cfg.SensorFallback {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"INTERVAL", "3s")
	t.Setenv(EnvPrefix+"ON_TOP", "yes")
	t.Setenv(EnvPrefix+"SENSOR", "/env/temp")
	t.Setenv(EnvPrefix+"LOG_LEVEL", "debug")

	var errBuf bytes.Buffer
	cfg, err := ParseConfig("sysoverlay", []string{"-sensor", "/flag/temp"}, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Interval != 3*time.Second {
		t.Errorf("Interval = %v, want env value 3s", cfg.Interval)
	}
	if !cfg.AlwaysOnTop {
		t.Error("AlwaysOnTop should come from the environment")
	}
	if cfg.SensorPath != "/flag/temp" {
		t.Errorf("SensorPath = %q, flag should win over env", cfg.SensorPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestParseConfig_InvalidEnvIgnored(t *testing.T) {
	t.Setenv(EnvPrefix+"INTERVAL", "soon")
	t.Setenv(EnvPrefix+"ONCE", "maybe")

	var errBuf bytes.Buffer
	cfg, err := ParseConfig("sysoverlay", nil, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Interval != DefaultInterval || cfg.Once {
		t.Errorf("invalid env values should be ignored: %+v", cfg)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"interval too short", []string{"-interval", "10ms"}},
		{"empty sensor", []string{"-sensor", " "}},
		{"bad metrics address", []string{"-metrics-addr", "localhost"}},
		{"unknown flag", []string{"-frobnicate"}},
		{"positional argument", []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := ParseConfig("sysoverlay", tt.args, &errBuf)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := ParseConfig("sysoverlay", []string{"-h"}, &errBuf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(errBuf.String(), EnvPrefix+"INTERVAL") {
		t.Errorf("usage should mention env overrides, got: %s", errBuf.String())
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		in       string
		def      bool
		expected bool
	}{
		{"TRUE", false, true},
		{"1", false, true},
		{"no", true, false},
		{"0", true, false},
		{"perhaps", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.expected {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.expected)
		}
	}
}
