package tui

import (
	"time"

	"github.com/agbru/sysoverlay/internal/sysmon"
)

// TickMsg is sent when the refresh timer fires.
type TickMsg time.Time

// SampleMsg carries the outcome of one sampling pass.
type SampleMsg struct {
	Snapshot sysmon.Snapshot
	Err      error
}
