package sysmon

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/sensors"

	"github.com/agbru/sysoverlay/internal/format"
)

// Unavailable is the text shown in place of a missing temperature.
const Unavailable = "N/A"

var errNoData = errors.New("no data returned")

// preferredSensors is the fallback scan order when the sensor file is unreadable.
var preferredSensors = []string{"coretemp", "cpu_thermal"}

// Temperature is a CPU temperature reading in degrees Celsius.
// The zero value is the unavailable marker, which is distinct from 0 °C.
type Temperature struct {
	Celsius float64
	Valid   bool
}

// Celsius returns a valid reading.
func Celsius(c float64) Temperature {
	return Temperature{Celsius: c, Valid: true}
}

// String renders the reading as a decimal, or Unavailable.
func (t Temperature) String() string {
	if !t.Valid {
		return Unavailable
	}
	return format.Decimal(t.Celsius)
}

type sensorScanFunc func(ctx context.Context) ([]sensors.TemperatureStat, error)

// TemperatureReader reads the CPU temperature from a sysfs-style file holding
// integer millidegrees. Every failure degrades to the unavailable marker.
type TemperatureReader struct {
	path     string
	fallback bool
	open     func(name string) (io.ReadCloser, error)
	scan     sensorScanFunc
}

// NewTemperatureReader creates a reader for path. An empty path selects
// DefaultSensorPath. With fallback set, an unreadable file triggers a scan
// of the platform sensors through gopsutil.
func NewTemperatureReader(path string, fallback bool) *TemperatureReader {
	if path == "" {
		path = DefaultSensorPath
	}
	return &TemperatureReader{
		path:     path,
		fallback: fallback,
		open:     func(name string) (io.ReadCloser, error) { return os.Open(name) },
		scan:     sensors.TemperaturesWithContext,
	}
}

// Path returns the sensor file the reader consults.
func (r *TemperatureReader) Path() string { return r.path }

// Read returns the current temperature or the unavailable marker.
func (r *TemperatureReader) Read(ctx context.Context) Temperature {
	if t, err := r.readFile(); err == nil {
		return t
	}
	if !r.fallback {
		return Temperature{}
	}
	return r.scanSensors(ctx)
}

func (r *TemperatureReader) readFile() (Temperature, error) {
	f, err := r.open(r.path)
	if err != nil {
		return Temperature{}, err
	}
	defer f.Close()

	// sysfs values are a handful of digits; cap the read in case the path
	// points somewhere unexpected.
	raw, err := io.ReadAll(io.LimitReader(f, 64))
	if err != nil {
		return Temperature{}, err
	}
	line, _, _ := strings.Cut(string(raw), "\n")
	milli, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return Temperature{}, err
	}
	return Celsius(float64(milli) / 1000), nil
}

func (r *TemperatureReader) scanSensors(ctx context.Context) Temperature {
	// gopsutil returns partial results alongside warnings, so only an empty
	// result counts as a failure.
	temps, _ := r.scan(ctx)
	if len(temps) == 0 {
		return Temperature{}
	}
	for _, key := range preferredSensors {
		for _, t := range temps {
			if strings.HasPrefix(t.SensorKey, key) {
				return Celsius(t.Temperature)
			}
		}
	}
	return Celsius(temps[0].Temperature)
}
