// Package overlay implements the overlay window's state machine: the
// displayed labels, drag-to-move, the context menu and the always-on-top
// stacking hint. It is independent of any rendering toolkit; the host feeds
// it pointer events in global coordinates and draws what it exposes.
package overlay

import (
	"time"

	"github.com/agbru/sysoverlay/internal/sysmon"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonOther
)

// DragState is the pointer-drag state.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

// Stacking is the window-manager stacking hint applied to the window.
type Stacking int

const (
	StackNormal Stacking = iota
	StackAbove
)

// Effect is a side effect the host must carry out after an event.
type Effect int

const (
	EffectNone Effect = iota
	EffectQuit
)

// Options configures a new View.
type Options struct {
	// Position is the initial top-left corner of the window.
	Position Point
	// AlwaysOnTop presets the stacking flag.
	AlwaysOnTop bool
}

// View is the overlay window state. It is owned by a single event loop and
// must not be shared across goroutines.
type View struct {
	pos         Point
	size        Size
	alwaysOnTop bool
	stacking    Stacking
	drag        DragState
	last        Point
	display     DisplayState
	menu        Menu

	updates  int
	lastErr  error
	lastTook time.Duration
	lastAt   time.Time
}

// NewView creates an idle view showing placeholder labels.
func NewView(opts Options) View {
	v := View{
		pos:         opts.Position,
		alwaysOnTop: opts.AlwaysOnTop,
		display:     PlaceholderDisplay,
	}
	v.applyStackingHint()
	return v
}

// Position returns the window's top-left corner.
func (v *View) Position() Point { return v.pos }

// Size returns the window's rendered size.
func (v *View) Size() Size { return v.size }

// SetSize records the window's rendered size, used for hit-testing.
func (v *View) SetSize(s Size) { v.size = s }

// Bounds returns the window rectangle.
func (v *View) Bounds() Rect { return Rect{Min: v.pos, Size: v.size} }

// AlwaysOnTop reports the always-on-top flag.
func (v *View) AlwaysOnTop() bool { return v.alwaysOnTop }

// Stacking returns the stacking hint currently applied.
func (v *View) Stacking() Stacking { return v.stacking }

// DragState returns the current drag state.
func (v *View) DragState() DragState { return v.drag }

// Display returns the labels currently shown.
func (v *View) Display() DisplayState { return v.display }

// Menu returns the context menu state.
func (v *View) Menu() Menu { return v.menu }

// Updates counts the display updates applied so far, including the
// initial render.
func (v *View) Updates() int { return v.updates }

// LastError returns the error of the most recent tick, if it failed.
func (v *View) LastError() error { return v.lastErr }

// LastSample returns when the last successful sample was taken and how long it took.
func (v *View) LastSample() (time.Time, time.Duration) { return v.lastAt, v.lastTook }

// Tick applies the outcome of one sampling pass. A failed sample keeps the
// previous labels and records the error; it reports whether the display changed.
func (v *View) Tick(snap sysmon.Snapshot, err error) bool {
	if err != nil {
		v.lastErr = err
		return false
	}
	v.lastErr = nil
	v.display = FormatDisplay(snap)
	v.lastAt = snap.TakenAt
	v.lastTook = snap.Took
	v.updates++
	return true
}

// PointerDown handles a button press at global position at.
func (v *View) PointerDown(b Button, at Point) Effect {
	if v.menu.open {
		return v.pressInMenu(b, at)
	}
	if !v.Bounds().Contains(at) {
		return EffectNone
	}

	switch b {
	case ButtonPrimary:
		v.last = at
		v.drag = Dragging
	case ButtonSecondary:
		v.drag = Idle
		v.menu = newContextMenu(at, v.alwaysOnTop)
	}
	return EffectNone
}

// PointerMove handles pointer motion to global position at. primaryHeld
// reports whether the primary button is still down; a move without it ends
// the drag.
func (v *View) PointerMove(at Point, primaryHeld bool) {
	if v.menu.open {
		v.menu.hover = v.menu.ItemAt(at)
		return
	}
	if v.drag != Dragging {
		return
	}
	if !primaryHeld {
		v.drag = Idle
		return
	}
	v.pos = v.pos.Add(at.Sub(v.last))
	v.last = at
}

// PointerUp ends any drag in progress.
func (v *View) PointerUp(Button) {
	v.drag = Idle
}

// DismissMenu closes the context menu without acting.
func (v *View) DismissMenu() {
	v.menu = Menu{}
}

// Activate runs a menu action as if its row had been selected.
func (v *View) Activate(action MenuAction) Effect {
	v.menu = Menu{}
	switch action {
	case ActionClose:
		return EffectQuit
	case ActionToggleAlwaysOnTop:
		v.ToggleAlwaysOnTop()
	}
	return EffectNone
}

// ToggleAlwaysOnTop flips the always-on-top flag and re-applies the stacking
// hint. Position, size and labels are left untouched.
func (v *View) ToggleAlwaysOnTop() {
	v.alwaysOnTop = !v.alwaysOnTop
	v.applyStackingHint()
}

func (v *View) applyStackingHint() {
	if v.alwaysOnTop {
		v.stacking = StackAbove
	} else {
		v.stacking = StackNormal
	}
}

func (v *View) pressInMenu(b Button, at Point) Effect {
	idx := v.menu.ItemAt(at)
	if idx < 0 || b != ButtonPrimary {
		v.DismissMenu()
		// A secondary press elsewhere on the panel moves the menu there.
		if b == ButtonSecondary && idx < 0 && v.Bounds().Contains(at) {
			v.menu = newContextMenu(at, v.alwaysOnTop)
		}
		return EffectNone
	}
	return v.Activate(v.menu.items[idx].Action)
}
