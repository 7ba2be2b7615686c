package scale

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Duration is an exact signed amount of time: whole seconds plus a
// nano-of-second in [0, 1e9). -1.5s is stored as (-2 s, 500000000 ns).
//
// Unlike time.Duration it spans the whole int64 second range.
type Duration struct {
	secs  int64
	nanos int32
}

// NewDuration returns secs seconds adjusted by nanoAdj nanoseconds, which
// may be negative or exceed one second.
func NewDuration(secs, nanoAdj int64) (Duration, error) {
	s, ok := addExact(secs, floorDiv(nanoAdj, NanosPerSecond))
	if !ok {
		return Duration{}, overflow("duration", "%d s + %d ns", secs, nanoAdj)
	}
	return Duration{secs: s, nanos: int32(floorMod(nanoAdj, NanosPerSecond))}, nil
}

// DurationOfSeconds returns a whole-second duration.
func DurationOfSeconds(secs int64) Duration {
	return Duration{secs: secs}
}

// DurationOfNanos returns a duration of n nanoseconds.
func DurationOfNanos(n int64) Duration {
	return Duration{secs: floorDiv(n, NanosPerSecond), nanos: int32(floorMod(n, NanosPerSecond))}
}

// DurationFromStd converts a time.Duration.
func DurationFromStd(d time.Duration) Duration {
	return DurationOfNanos(int64(d))
}

// Seconds returns the whole-second part, rounded toward negative infinity.
func (d Duration) Seconds() int64 { return d.secs }

// Nanos returns the nano-of-second part, always in [0, 1e9).
func (d Duration) Nanos() int { return int(d.nanos) }

// IsZero reports whether d is zero.
func (d Duration) IsZero() bool { return d.secs == 0 && d.nanos == 0 }

// IsNegative reports whether d is less than zero.
func (d Duration) IsNegative() bool { return d.secs < 0 }

// Neg returns -d. It fails only for the most negative whole-second value.
func (d Duration) Neg() (Duration, error) {
	if d.nanos == 0 {
		if d.secs == math.MinInt64 {
			return Duration{}, overflow("negate duration", "%d s", d.secs)
		}
		return Duration{secs: -d.secs}, nil
	}
	// -(s + n) = (-s - 1) + (1e9 - n); -s-1 == ^s never overflows.
	return Duration{secs: ^d.secs, nanos: NanosPerSecond - d.nanos}, nil
}

// Std converts to time.Duration, failing when d is beyond about 292 years.
func (d Duration) Std() (time.Duration, error) {
	ns, ok := mulExact(d.secs, NanosPerSecond)
	if ok {
		ns, ok = addExact(ns, int64(d.nanos))
	}
	if !ok {
		return 0, overflow("duration to time.Duration", "%s out of range", d)
	}
	return time.Duration(ns), nil
}

// Compare returns -1, 0 or +1.
func (d Duration) Compare(o Duration) int {
	switch {
	case d.secs < o.secs:
		return -1
	case d.secs > o.secs:
		return 1
	case d.nanos < o.nanos:
		return -1
	case d.nanos > o.nanos:
		return 1
	}
	return 0
}

// String formats d as decimal seconds, e.g. "86401s" or "-1.5s".
func (d Duration) String() string {
	sign := ""
	var secs uint64
	nanos := int64(d.nanos)
	switch {
	case d.secs >= 0:
		secs = uint64(d.secs)
	case nanos == 0:
		sign = "-"
		secs = uint64(-d.secs) // wraps to 1<<63 for MinInt64, which is the right magnitude
	default:
		sign = "-"
		secs = uint64(^d.secs)
		nanos = NanosPerSecond - nanos
	}
	if nanos == 0 {
		return sign + strconv.FormatUint(secs, 10) + "s"
	}
	frac := strings.TrimRight(fmt.Sprintf("%09d", nanos), "0")
	return sign + strconv.FormatUint(secs, 10) + "." + frac + "s"
}

// ParseDuration accepts decimal seconds ("86401", "-1.5s", "+0.000000001")
// or Go duration syntax ("1h30m", "-250ms").
func ParseDuration(s string) (Duration, error) {
	d, matched, err := parseDecimalSeconds(s)
	if matched {
		return d, err
	}
	std, stdErr := time.ParseDuration(s)
	if stdErr != nil {
		return Duration{}, invalidArgument("parse duration", "invalid duration %q", s)
	}
	return DurationFromStd(std), nil
}

func parseDecimalSeconds(s string) (Duration, bool, error) {
	body := strings.TrimSuffix(s, "s")
	neg := false
	if strings.HasPrefix(body, "-") {
		neg = true
		body = body[1:]
	} else if strings.HasPrefix(body, "+") {
		body = body[1:]
	}

	whole, frac, hasFrac := strings.Cut(body, ".")
	if !isDigits(whole) || (hasFrac && (!isDigits(frac) || len(frac) > 9)) {
		return Duration{}, false, nil
	}

	secs, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Duration{}, true, overflow("parse duration", "%q out of range", s)
	}
	var nanos int64
	if hasFrac {
		nanos, _ = strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
	}

	d := Duration{secs: secs, nanos: int32(nanos)}
	if neg {
		d, err = d.Neg()
		if err != nil {
			return Duration{}, true, err
		}
	}
	return d, true, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
