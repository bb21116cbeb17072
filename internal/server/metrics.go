// Package server exposes the latest overlay sample as Prometheus metrics.
// Only current values are exported; nothing is retained between samples.
package server

import (
	"math"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/sysoverlay/internal/sysmon"
)

const namespace = "sysoverlay"

// Metrics holds the gauges fed by the overlay on every tick. It uses a
// private registry so several instances can coexist (e.g. in tests).
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	memoryBytes   *prometheus.GaugeVec
	memoryPercent prometheus.Gauge
	cpuPercent    prometheus.Gauge
	temperature   prometheus.Gauge
	tempValid     prometheus.Gauge
	samples       prometheus.Counter
	sampleErrors  prometheus.Counter
	sampleSeconds prometheus.Gauge
}

// NewMetrics creates and registers the overlay metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		memoryBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_bytes",
			Help:      "System memory by state (total, available, used).",
		}, []string{"state"}),
		memoryPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_used_percent",
			Help:      "System memory used, in percent.",
		}),
		cpuPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_percent",
			Help:      "CPU utilisation since the previous sample, in percent.",
		}),
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_temperature_celsius",
			Help:      "CPU temperature; NaN when the sensor is unavailable.",
		}),
		tempValid: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_temperature_available",
			Help:      "1 when the last temperature reading succeeded, 0 otherwise.",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Successful samples.",
		}),
		sampleErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sample_errors_total",
			Help:      "Samples that failed to read memory or CPU statistics.",
		}),
		sampleSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sample_duration_seconds",
			Help:      "Duration of the last successful sample.",
		}),
	}
	reg.MustRegister(
		m.memoryBytes, m.memoryPercent, m.cpuPercent,
		m.temperature, m.tempValid,
		m.samples, m.sampleErrors, m.sampleSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.temperature.Set(math.NaN())
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// Observe records a successful sample.
func (m *Metrics) Observe(snap sysmon.Snapshot) {
	m.memoryBytes.WithLabelValues("total").Set(float64(snap.Memory.Total))
	m.memoryBytes.WithLabelValues("available").Set(float64(snap.Memory.Available))
	m.memoryBytes.WithLabelValues("used").Set(float64(snap.Memory.Used))
	m.memoryPercent.Set(snap.Memory.UsedPercent)
	m.cpuPercent.Set(snap.CPU.Percent)
	if snap.Temperature.Valid {
		m.temperature.Set(snap.Temperature.Celsius)
		m.tempValid.Set(1)
	} else {
		m.temperature.Set(math.NaN())
		m.tempValid.Set(0)
	}
	m.sampleSeconds.Set(snap.Took.Seconds())
	m.samples.Inc()
}

// ObserveError records a failed sample.
func (m *Metrics) ObserveError(error) {
	m.sampleErrors.Inc()
}

// Handler returns the Prometheus exposition handler.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}
