package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/sysoverlay/internal/ui"
)

// Style variables for the overlay.
// Initialized from the ui theme via initTUIStyles().
var (
	panelStyle        lipgloss.Style
	labelStyle        lipgloss.Style
	menuStyle         lipgloss.Style
	menuItemStyle     lipgloss.Style
	menuSelectedStyle lipgloss.Style
	statusStyle       lipgloss.Style
	statusKeyStyle    lipgloss.Style
	statusDescStyle   lipgloss.Style
	statusErrorStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Bg).
		Background(t.Bg).
		Foreground(t.Text).
		Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
		Background(t.Bg).
		Foreground(t.Text)

	menuStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.MenuBg).
		Background(t.MenuBg)

	menuItemStyle = lipgloss.NewStyle().
		Background(t.MenuBg).
		Foreground(t.MenuText)

	menuSelectedStyle = lipgloss.NewStyle().
		Background(t.MenuSelectedBg).
		Foreground(t.MenuSelected)

	statusStyle = lipgloss.NewStyle().
		Background(t.StatusBg).
		Foreground(t.Dim)

	statusKeyStyle = lipgloss.NewStyle().
		Background(t.StatusBg).
		Foreground(t.Accent).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Background(t.StatusBg).
		Foreground(t.Dim)

	statusErrorStyle = lipgloss.NewStyle().
		Background(t.StatusBg).
		Foreground(t.Error).
		Bold(true)
}
