package format

import (
	"math"
	"strconv"
	"strings"

	apperrors "github.com/agbru/sysoverlay/internal/errors"
)

// ByteUnits lists the display units in ascending order; unit i is 1024^i bytes.
var ByteUnits = [...]string{"B", "KB", "MB", "GB", "TB"}

// ZeroBytes is the literal rendering of a zero byte count.
const ZeroBytes = "0B"

// FormatBytes renders a byte count with the largest unit whose scaled value
// is at least 1, rounded half to even to two decimals: 1536 renders as "1.5 KB",
// 1048576 as "1.0 MB". Zero renders as "0B". Counts beyond the terabyte range
// stay in TB.
//
// Parameters:
//   - n: The byte count. Must be non-negative.
//
// Returns:
//   - string: The formatted size.
//   - error: A ValidationError if n is negative.
func FormatBytes(n int64) (string, error) {
	if n < 0 {
		return "", apperrors.ValidationError{Field: "size", Message: "must be non-negative, got " + strconv.FormatInt(n, 10)}
	}
	return Bytes(uint64(n)), nil
}

// Bytes is the infallible form of FormatBytes for unsigned counters such as
// the ones reported by the OS.
func Bytes(n uint64) string {
	if n == 0 {
		return ZeroBytes
	}
	unit := ByteUnitIndex(n)
	scaled := float64(n) / float64(uint64(1)<<(10*unit))
	// FormatFloat rounds the exact binary value half to even, so 1.125 KB
	// renders as "1.12 KB".
	s := strings.TrimRight(strconv.FormatFloat(scaled, 'f', 2, 64), "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s + " " + ByteUnits[unit]
}

// ByteUnitIndex returns the index into ByteUnits used to render n.
func ByteUnitIndex(n uint64) int {
	unit := 0
	for unit < len(ByteUnits)-1 && n>>(10*(unit+1)) > 0 {
		unit++
	}
	return unit
}

// Decimal renders v as the shortest decimal that round-trips, always keeping
// at least one fractional digit: 7 renders as "7.0", 42.25 as "42.25".
func Decimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return s
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
