package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines lipgloss-compatible colors for the overlay.
// Each field is a lipgloss.TerminalColor suitable for use with
// lipgloss.Style.Foreground() and Background().
type Theme struct {
	// Name is the identifier of the theme.
	Name string

	// Panel colors: dark background, white text.
	Bg     lipgloss.TerminalColor
	Text   lipgloss.TerminalColor
	Border lipgloss.TerminalColor

	// Context menu colors: grey items, white-on-grey selection.
	MenuBg         lipgloss.TerminalColor
	MenuText       lipgloss.TerminalColor
	MenuSelected   lipgloss.TerminalColor
	MenuSelectedBg lipgloss.TerminalColor

	// Status bar colors.
	StatusBg lipgloss.TerminalColor
	Dim      lipgloss.TerminalColor
	Accent   lipgloss.TerminalColor
	Error    lipgloss.TerminalColor
}

var (
	// DarkTheme is the fixed overlay palette.
	DarkTheme = Theme{
		Name:           "dark",
		Bg:             lipgloss.Color("#000000"),
		Text:           lipgloss.Color("#FFFFFF"),
		Border:         lipgloss.Color("#444444"),
		MenuBg:         lipgloss.Color("#000000"),
		MenuText:       lipgloss.Color("#808080"),
		MenuSelected:   lipgloss.Color("#FFFFFF"),
		MenuSelectedBg: lipgloss.Color("#555555"),
		StatusBg:       lipgloss.Color("#1A1A1A"),
		Dim:            lipgloss.Color("#666666"),
		Accent:         lipgloss.Color("#E0E0E0"),
		Error:          lipgloss.Color("#FF4444"),
	}

	// NoColorTheme disables all colors.
	// lipgloss.NoColor{} renders text with the terminal's default colors.
	NoColorTheme = Theme{
		Name:           "none",
		Bg:             lipgloss.NoColor{},
		Text:           lipgloss.NoColor{},
		Border:         lipgloss.NoColor{},
		MenuBg:         lipgloss.NoColor{},
		MenuText:       lipgloss.NoColor{},
		MenuSelected:   lipgloss.NoColor{},
		MenuSelectedBg: lipgloss.NoColor{},
		StatusBg:       lipgloss.NoColor{},
		Dim:            lipgloss.NoColor{},
		Accent:         lipgloss.NoColor{},
		Error:          lipgloss.NoColor{},
	}

	// currentTheme is the active theme used throughout the application.
	// Defaults to DarkTheme but can be changed via SetCurrentTheme or InitTheme.
	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/) for
// accessibility. If noColor is true or NO_COLOR is set, colors are disabled.
//
// Parameters:
//   - noColor: If true, disables all color output regardless of environment.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}

	// Any non-empty value disables colors (per no-color.org spec)
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}

	currentTheme = DarkTheme
}
