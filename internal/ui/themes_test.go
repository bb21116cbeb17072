package ui

import (
	"os"
	"testing"
)

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	t.Run("no-color flag", func(t *testing.T) {
		InitTheme(true)
		if got := GetCurrentTheme().Name; got != "none" {
			t.Errorf("theme = %q, want none", got)
		}
	})

	t.Run("NO_COLOR env", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		InitTheme(false)
		if got := GetCurrentTheme().Name; got != "none" {
			t.Errorf("theme = %q, want none", got)
		}
	})

	t.Run("default dark", func(t *testing.T) {
		InitTheme(false)
		// NO_COLOR may be set by the environment running the tests.
		want := "dark"
		if _, set := os.LookupEnv("NO_COLOR"); set {
			want = "none"
		}
		if got := GetCurrentTheme().Name; got != want {
			t.Errorf("theme = %q, want %q", got, want)
		}
	})
}
