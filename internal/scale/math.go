package scale

import "math"

const (
	// NanosPerSecond is the number of nanoseconds in one SI second.
	NanosPerSecond = 1_000_000_000

	// SecondsPerDay is the length of a UTC day without a leap second.
	SecondsPerDay = 86400

	// NanosPerDay is the length of a UTC day without a leap second.
	NanosPerDay = SecondsPerDay * NanosPerSecond

	// TAIEpochMJD is the Modified Julian Day of the TAI epoch, 1958-01-01.
	TAIEpochMJD = 36204
)

func addExact(a, b int64) (int64, bool) {
	c := a + b
	if (a >= 0) == (b >= 0) && (c >= 0) != (a >= 0) {
		return 0, false
	}
	return c, true
}

func subExact(a, b int64) (int64, bool) {
	c := a - b
	if (a >= 0) != (b >= 0) && (c >= 0) != (a >= 0) {
		return 0, false
	}
	return c, true
}

func mulExact(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// addParts adds two (seconds, nano-of-second) pairs in normal form. The
// carry is applied to whichever operand can absorb it, so a result exactly
// at an int64 extreme never reports a spurious overflow.
func addParts(s1 int64, n1 int32, s2 int64, n2 int32) (int64, int32, bool) {
	n := n1 + n2
	if n >= NanosPerSecond {
		n -= NanosPerSecond
		switch {
		case s2 < math.MaxInt64:
			s2++
		case s1 < math.MaxInt64:
			s1++
		default:
			return 0, 0, false
		}
	}
	s, ok := addExact(s1, s2)
	return s, n, ok
}

// subParts subtracts (s2, n2) from (s1, n1), borrowing the same way addParts
// carries.
func subParts(s1 int64, n1 int32, s2 int64, n2 int32) (int64, int32, bool) {
	n := n1 - n2
	if n < 0 {
		n += NanosPerSecond
		switch {
		case s1 > math.MinInt64:
			s1--
		case s2 < math.MaxInt64:
			s2++
		default:
			return 0, 0, false
		}
	}
	s, ok := subExact(s1, s2)
	return s, n, ok
}
