// Package ui provides the overlay's color palette.
// The palette is fixed (dark panel, white text, grey menu items); the only
// runtime switch is the NO_COLOR accessibility setting.
package ui
