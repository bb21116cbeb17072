package format

import "math"

// RoundPercent rounds a percentage to one decimal place, the precision the
// OS tools report utilisation with.
func RoundPercent(p float64) float64 {
	return math.Round(p*10) / 10
}

// Percent renders a percentage with one decimal and no sign: 7 renders as
// "7.0", 59.88 as "59.9".
func Percent(p float64) string {
	return Decimal(RoundPercent(p))
}
