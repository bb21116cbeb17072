package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/agbru/sysoverlay/internal/format"
	"github.com/agbru/sysoverlay/internal/overlay"
)

const sgrReset = "\x1b[0m"

// canvas is a fixed-size grid of rendered lines. Every line is kept exactly
// width cells wide so layers can be spliced in by cell offset.
type canvas struct {
	width  int
	height int
	lines  []string
}

func newCanvas(width, height int) *canvas {
	blank := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = blank
	}
	return &canvas{width: width, height: height, lines: lines}
}

// draw composites block with its top-left corner at at, clipping anything
// that falls outside the canvas.
func (c *canvas) draw(block string, at overlay.Point) {
	for i, line := range strings.Split(block, "\n") {
		y := at.Y + i
		if y < 0 || y >= c.height {
			continue
		}
		x := at.X
		w := ansi.StringWidth(line)
		if x < 0 {
			line = ansi.TruncateLeft(line, -x, "")
			w += x
			x = 0
		}
		if w <= 0 || x >= c.width {
			continue
		}
		if x+w > c.width {
			line = ansi.Truncate(line, c.width-x, "")
			w = c.width - x
		}

		bg := c.lines[y]
		left := ansi.Truncate(bg, x, "")
		right := ansi.TruncateLeft(bg, x+w, "")
		c.lines[y] = left + sgrReset + line + sgrReset + right
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}

// renderPanel renders the overlay window body.
func renderPanel(d overlay.DisplayState) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(d.Memory),
		labelStyle.Render(d.CPU),
		labelStyle.Render(d.Temperature),
	)
	return panelStyle.Render(body)
}

// measure returns the cell size of a rendered block.
func measure(block string) overlay.Size {
	return overlay.Size{W: lipgloss.Width(block), H: lipgloss.Height(block)}
}

// renderMenu renders the context menu so that it exactly fills menu.Bounds().
func renderMenu(menu overlay.Menu) string {
	items := menu.Items()
	b := menu.Bounds()
	labelWidth := b.Size.W - 2 - 2 - overlay.CheckboxWidth()

	rows := make([]string, len(items))
	for i, it := range items {
		marker := "    "
		if it.Checkable {
			marker = "[ ] "
			if it.Checked {
				marker = "[x] "
			}
		}
		text := " " + marker + it.Label + strings.Repeat(" ", max(0, labelWidth-lipgloss.Width(it.Label))) + " "
		style := menuItemStyle
		if i == menu.Hover() {
			style = menuSelectedStyle
		}
		rows[i] = style.Render(text)
	}
	return menuStyle.Render(strings.Join(rows, "\n"))
}

// renderStatus renders the status bar backdrop spanning the full width.
func (m Model) renderStatus() string {
	hints := []struct{ key, desc string }{
		{"drag", "move"},
		{"right-click", "menu"},
		{"t", "always on top"},
		{"q", "close"},
	}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, statusKeyStyle.Render(h.key)+statusDescStyle.Render(" "+h.desc))
	}
	left := strings.Join(parts, statusDescStyle.Render("  "))

	var right string
	if err := m.view.LastError(); err != nil {
		right = statusErrorStyle.Render("sample failed: " + err.Error())
	} else if at, took := m.view.LastSample(); !at.IsZero() {
		right = statusDescStyle.Render("sampled in " + format.FormatExecutionDuration(took))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		right = ""
		gap = max(0, m.width-lipgloss.Width(left)-2)
	}
	pad := statusStyle.Render(" ")
	line := pad + left + statusStyle.Render(strings.Repeat(" ", gap)) + right + pad
	return ansi.Truncate(line, m.width, "")
}
