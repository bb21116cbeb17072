package overlay

import "unicode/utf8"

// MenuAction identifies a context menu entry.
type MenuAction int

const (
	ActionClose MenuAction = iota
	ActionToggleAlwaysOnTop
)

// MenuItem is one row of the context menu.
type MenuItem struct {
	Label     string
	Action    MenuAction
	Checkable bool
	Checked   bool
}

// Menu layout, in cells. Items are drawn one per row inside a one-cell
// border with horizontal padding; checkable items carry a "[x] " marker.
const (
	menuBorder    = 1
	menuPadding   = 1
	checkboxWidth = 4
)

// Menu is the popup context menu state.
type Menu struct {
	open  bool
	at    Point
	items []MenuItem
	hover int
}

// IsOpen reports whether the menu is shown.
func (m Menu) IsOpen() bool { return m.open }

// Items returns a copy of the menu rows.
func (m Menu) Items() []MenuItem {
	items := make([]MenuItem, len(m.items))
	copy(items, m.items)
	return items
}

// Hover returns the highlighted row, or -1.
func (m Menu) Hover() int { return m.hover }

// Bounds returns the on-screen rectangle of the open menu.
func (m Menu) Bounds() Rect {
	labelWidth := 0
	for _, it := range m.items {
		labelWidth = max(labelWidth, utf8.RuneCountInString(it.Label))
	}
	w := labelWidth + checkboxWidth + 2*menuPadding + 2*menuBorder
	h := len(m.items) + 2*menuBorder
	return Rect{Min: m.at, Size: Size{W: w, H: h}}
}

// ItemAt returns the row under p, or -1.
func (m Menu) ItemAt(p Point) int {
	if !m.open {
		return -1
	}
	b := m.Bounds()
	inner := Rect{
		Min:  b.Min.Add(Point{X: menuBorder, Y: menuBorder}),
		Size: Size{W: b.Size.W - 2*menuBorder, H: b.Size.H - 2*menuBorder},
	}
	if !inner.Contains(p) {
		return -1
	}
	return p.Y - inner.Min.Y
}

// CheckboxWidth is the width of the "[x] " marker drawn before each label.
func CheckboxWidth() int { return checkboxWidth }

func newContextMenu(at Point, alwaysOnTop bool) Menu {
	return Menu{
		open: true,
		at:   at,
		items: []MenuItem{
			{Label: "Close", Action: ActionClose},
			{Label: "Toggle Always On Top", Action: ActionToggleAlwaysOnTop, Checkable: true, Checked: alwaysOnTop},
		},
		hover: -1,
	}
}
