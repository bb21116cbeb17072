package format

import "testing"

func TestPercent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{7, "7.0"},
		{62.5, "62.5"},
		{100.0 / 3, "33.3"},
		{1e10 / 1.67e10 * 100, "59.9"},
		{99.96, "100.0"},
		{100.4, "100.4"},
	}

	for _, tt := range tests {
		if got := Percent(tt.in); got != tt.want {
			t.Errorf("Percent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoundPercent(t *testing.T) {
	t.Parallel()
	if got := RoundPercent(42.14); got != 42.1 {
		t.Errorf("RoundPercent(42.14) = %v, want 42.1", got)
	}
	if got := RoundPercent(42.16); got != 42.2 {
		t.Errorf("RoundPercent(42.16) = %v, want 42.2", got)
	}
}
