//go:generate mockgen -source=sysmon.go -destination=mocks/mock_sampler.go -package=mocks

// Package sysmon provides system-wide memory, CPU and temperature sampling.
package sysmon

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/agbru/sysoverlay/internal/errors"
	"github.com/agbru/sysoverlay/internal/format"
)

// DefaultSensorPath is the Linux thermal zone exposing the CPU package
// temperature in millidegrees Celsius.
const DefaultSensorPath = "/sys/class/thermal/thermal_zone0/temp"

const tracerName = "github.com/agbru/sysoverlay/internal/sysmon"

// MemorySnapshot holds a single system-wide memory reading.
type MemorySnapshot struct {
	Total       uint64
	Available   uint64
	Used        uint64
	UsedPercent float64 // 0.0 .. 100.0
}

// CPUSnapshot holds the CPU utilisation reported since the previous query.
// The value is informational and may briefly exceed 100.
type CPUSnapshot struct {
	Percent float64
}

// Snapshot bundles one tick's worth of readings.
type Snapshot struct {
	Memory      MemorySnapshot
	CPU         CPUSnapshot
	Temperature Temperature
	TakenAt     time.Time
	Took        time.Duration
}

// Sampler produces snapshots of the host state.
type Sampler interface {
	Sample(ctx context.Context) (Snapshot, error)
}

// Options configures a HostSampler.
type Options struct {
	// SensorPath is the temperature file; empty means DefaultSensorPath.
	SensorPath string
	// SensorFallback enables the gopsutil sensor scan when the file is unreadable.
	SensorFallback bool
}

type (
	memoryFunc func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	cpuFunc    func(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
)

// HostSampler reads the live OS state through gopsutil. It holds no state
// between calls apart from its configuration.
type HostSampler struct {
	memory      memoryFunc
	cpuPercent  cpuFunc
	temperature *TemperatureReader
	now         func() time.Time
}

// Verify interface compliance.
var _ Sampler = (*HostSampler)(nil)

// NewHostSampler creates a sampler bound to the host's OS facilities.
func NewHostSampler(opts Options) *HostSampler {
	return &HostSampler{
		memory:      mem.VirtualMemoryWithContext,
		cpuPercent:  cpu.PercentWithContext,
		temperature: NewTemperatureReader(opts.SensorPath, opts.SensorFallback),
		now:         time.Now,
	}
}

// Sample collects memory, CPU and temperature readings.
// Memory and CPU failures are returned as apperrors.SampleError; a missing or
// unreadable temperature sensor yields an unavailable Temperature instead.
// CPU uses interval=0, i.e. the delta since the previous call.
func (s *HostSampler) Sample(ctx context.Context) (Snapshot, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "sysmon.Sample")
	defer span.End()

	start := s.now()
	snap := Snapshot{TakenAt: start}

	memory, err := s.readMemory(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "memory")
		return Snapshot{}, err
	}
	snap.Memory = memory

	percent, err := s.readCPU(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cpu")
		return Snapshot{}, err
	}
	snap.CPU = CPUSnapshot{Percent: percent}

	snap.Temperature = s.temperature.Read(ctx)
	snap.Took = s.now().Sub(start)

	span.SetAttributes(
		attribute.Float64("sysmon.memory.used_percent", snap.Memory.UsedPercent),
		attribute.Float64("sysmon.cpu.percent", snap.CPU.Percent),
		attribute.Bool("sysmon.temperature.valid", snap.Temperature.Valid),
		attribute.String("sysmon.temperature.sensor", s.temperature.Path()),
	)
	return snap, nil
}

// Prime issues a throwaway CPU query so the next interval=0 query measures
// from now rather than from process start.
func (s *HostSampler) Prime(ctx context.Context) error {
	if _, err := s.readCPU(ctx); err != nil {
		return err
	}
	return nil
}

func (s *HostSampler) readMemory(ctx context.Context) (MemorySnapshot, error) {
	vmem, err := s.memory(ctx)
	if err != nil {
		return MemorySnapshot{}, apperrors.SampleError{Source: "memory", Cause: err}
	}
	if vmem == nil {
		return MemorySnapshot{}, apperrors.SampleError{Source: "memory", Cause: errNoData}
	}
	m := MemorySnapshot{
		Total:       vmem.Total,
		Available:   min(vmem.Available, vmem.Total),
		Used:        min(vmem.Used, vmem.Total),
		UsedPercent: format.RoundPercent(vmem.UsedPercent),
	}
	return m, nil
}

func (s *HostSampler) readCPU(ctx context.Context) (float64, error) {
	pcts, err := s.cpuPercent(ctx, 0, false)
	if err != nil {
		return 0, apperrors.SampleError{Source: "cpu", Cause: err}
	}
	if len(pcts) == 0 {
		return 0, apperrors.SampleError{Source: "cpu", Cause: errNoData}
	}
	return format.RoundPercent(pcts[0]), nil
}
