package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/sysoverlay/internal/config"
	apperrors "github.com/agbru/sysoverlay/internal/errors"
	"github.com/agbru/sysoverlay/internal/sysmon"
)

type stubSampler struct {
	snap sysmon.Snapshot
	err  error
}

func (s stubSampler) Prime(context.Context) error { return nil }

func (s stubSampler) Sample(context.Context) (sysmon.Snapshot, error) {
	return s.snap, s.err
}

func TestNew_Defaults(t *testing.T) {
	a, err := New([]string{"sysoverlay"}, io.Discard)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.Config.Interval != config.DefaultInterval {
		t.Errorf("Interval = %v, want %v", a.Config.Interval, config.DefaultInterval)
	}
	if a.Config.SensorPath != sysmon.DefaultSensorPath {
		t.Errorf("SensorPath = %q, want %q", a.Config.SensorPath, sysmon.DefaultSensorPath)
	}
	if _, ok := a.Sampler.(*sysmon.HostSampler); !ok {
		t.Errorf("Sampler = %T, want *sysmon.HostSampler", a.Sampler)
	}
}

func TestNew_Errors(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"sysoverlay", "-help"}, &errBuf)
	if !IsHelpError(err) {
		t.Errorf("-help: error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(errBuf.String(), "-interval") {
		t.Error("usage should list the flags")
	}

	_, err = New([]string{"sysoverlay", "-interval", "1ms"}, io.Discard)
	if apperrors.ExitCodeFor(err) != apperrors.ExitErrorConfig {
		t.Errorf("short interval: error = %v, want ConfigError", err)
	}
}

func TestRun_Once(t *testing.T) {
	snap := sysmon.Snapshot{
		Memory:      sysmon.MemorySnapshot{Total: 1024, Available: 512, Used: 512, UsedPercent: 50},
		CPU:         sysmon.CPUSnapshot{Percent: 12.5},
		Temperature: sysmon.Celsius(40),
	}
	a, err := New([]string{"sysoverlay", "-once", "-interval", "100ms", "-no-color"}, io.Discard,
		WithSampler(stubSampler{snap: snap}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}
	for _, want := range []string{"Total: 1.0 KB", "Used: 512.0 B", "Percentage: 50.0%", "CPU Usage: 12.5%", "CPU Temperature: 40.0°C"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_OnceSampleFailure(t *testing.T) {
	sampleErr := apperrors.SampleError{Source: "memory", Cause: errors.New("boom")}
	var errBuf bytes.Buffer
	a, err := New([]string{"sysoverlay", "-once", "-interval", "100ms"}, &errBuf,
		WithSampler(stubSampler{err: sampleErr}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitErrorSample {
		t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorSample)
	}
	if !strings.Contains(errBuf.String(), "sample memory") {
		t.Errorf("stderr = %q, want the sample error", errBuf.String())
	}
}

func TestRun_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "overlay.log")
	a, err := New([]string{"sysoverlay", "-once", "-interval", "100ms", "-log-file", logPath, "-log-level", "debug"}, io.Discard,
		WithSampler(stubSampler{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d", code)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "one-shot sample taken") {
		t.Errorf("log file missing debug entry:\n%s", data)
	}
}

func TestRun_OnceDebugLogsToStderr(t *testing.T) {
	var errBuf bytes.Buffer
	a, err := New([]string{"sysoverlay", "-once", "-interval", "100ms", "-log-level", "debug"}, &errBuf,
		WithSampler(stubSampler{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d", code)
	}
	if !strings.Contains(errBuf.String(), "[DEBUG] one-shot sample taken") {
		t.Errorf("stderr missing debug entry: %q", errBuf.String())
	}
	if strings.Contains(out.String(), "[DEBUG]") {
		t.Error("debug entries must not reach stdout")
	}
}

func TestRun_InvalidLogLevel(t *testing.T) {
	a, err := New([]string{"sysoverlay", "-once", "-log-level", "loud"}, io.Discard,
		WithSampler(stubSampler{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if code := a.Run(context.Background(), io.Discard); code != apperrors.ExitErrorConfig {
		t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestVersion(t *testing.T) {
	if !HasVersionFlag([]string{"-once", "--version"}) {
		t.Error("--version not detected")
	}
	if HasVersionFlag([]string{"-once"}) {
		t.Error("unexpected version flag")
	}

	var out bytes.Buffer
	PrintVersion(&out)
	if !strings.HasPrefix(out.String(), "sysoverlay "+Version) {
		t.Errorf("PrintVersion() = %q", out.String())
	}
}
