package overlay

import (
	"fmt"

	"github.com/agbru/sysoverlay/internal/format"
	"github.com/agbru/sysoverlay/internal/sysmon"
)

// DisplayState holds the three label texts currently shown.
type DisplayState struct {
	Memory      string
	CPU         string
	Temperature string
}

// PlaceholderDisplay is shown until a first sample succeeds.
var PlaceholderDisplay = DisplayState{
	Memory: fmt.Sprintf("Memory:\nTotal: %[1]s\nAvailable: %[1]s\nUsed: %[1]s\nPercentage: %[1]s",
		sysmon.Unavailable),
	CPU:         "CPU Usage: " + sysmon.Unavailable,
	Temperature: "CPU Temperature: " + sysmon.Unavailable,
}

// FormatDisplay renders a snapshot into label texts.
func FormatDisplay(snap sysmon.Snapshot) DisplayState {
	m := snap.Memory
	memory := fmt.Sprintf("Memory:\nTotal: %s\nAvailable: %s\nUsed: %s\nPercentage: %s%%",
		format.Bytes(m.Total),
		format.Bytes(m.Available),
		format.Bytes(m.Used),
		format.Percent(m.UsedPercent))

	temperature := "CPU Temperature: " + snap.Temperature.String()
	if snap.Temperature.Valid {
		temperature += "°C"
	}

	return DisplayState{
		Memory:      memory,
		CPU:         fmt.Sprintf("CPU Usage: %s%%", format.Percent(snap.CPU.Percent)),
		Temperature: temperature,
	}
}
