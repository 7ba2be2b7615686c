package scale

import (
	"encoding/json"
	"fmt"
)

// TAIInstant is an instant on the TAI time-scale: whole seconds since
// 1958-01-01T00:00:00(TAI) plus a nano-of-second in [0, 1e9).
//
// The zero value is the TAI epoch. TAIInstant is comparable with ==.
type TAIInstant struct {
	secs  int64
	nanos int32
}

// NewTAIInstant returns the instant secs seconds after the epoch adjusted by
// nanoAdj nanoseconds. nanoAdj may be negative or larger than one second.
func NewTAIInstant(secs, nanoAdj int64) (TAIInstant, error) {
	s, ok := addExact(secs, floorDiv(nanoAdj, NanosPerSecond))
	if !ok {
		return TAIInstant{}, overflow("tai instant", "%d s + %d ns", secs, nanoAdj)
	}
	return TAIInstant{secs: s, nanos: int32(floorMod(nanoAdj, NanosPerSecond))}, nil
}

// Seconds returns the whole TAI seconds since the epoch.
func (t TAIInstant) Seconds() int64 { return t.secs }

// Nano returns the nano-of-second, in [0, 1e9).
func (t TAIInstant) Nano() int { return int(t.nanos) }

// Plus returns t + d.
func (t TAIInstant) Plus(d Duration) (TAIInstant, error) {
	s, n, ok := addParts(t.secs, t.nanos, d.secs, d.nanos)
	if !ok {
		return TAIInstant{}, overflow("tai plus", "%s + %s", t, d)
	}
	return TAIInstant{secs: s, nanos: n}, nil
}

// Minus returns t - d.
func (t TAIInstant) Minus(d Duration) (TAIInstant, error) {
	s, n, ok := subParts(t.secs, t.nanos, d.secs, d.nanos)
	if !ok {
		return TAIInstant{}, overflow("tai minus", "%s - %s", t, d)
	}
	return TAIInstant{secs: s, nanos: n}, nil
}

// DurationUntil returns o - t.
func (t TAIInstant) DurationUntil(o TAIInstant) (Duration, error) {
	s, n, ok := subParts(o.secs, o.nanos, t.secs, t.nanos)
	if !ok {
		return Duration{}, overflow("tai duration", "%s until %s", t, o)
	}
	return Duration{secs: s, nanos: n}, nil
}

// Compare returns -1, 0 or +1 ordering by seconds, then nanos.
func (t TAIInstant) Compare(o TAIInstant) int {
	switch {
	case t.secs < o.secs:
		return -1
	case t.secs > o.secs:
		return 1
	case t.nanos < o.nanos:
		return -1
	case t.nanos > o.nanos:
		return 1
	}
	return 0
}

// Equal reports whether t and o are the same instant.
func (t TAIInstant) Equal(o TAIInstant) bool { return t == o }

// Before reports whether t is before o.
func (t TAIInstant) Before(o TAIInstant) bool { return t.Compare(o) < 0 }

// After reports whether t is after o.
func (t TAIInstant) After(o TAIInstant) bool { return t.Compare(o) > 0 }

// CompareTo compares t against an arbitrary value, for callers that hold
// instants as interface values. Only TAIInstant and non-nil *TAIInstant are
// accepted.
func (t TAIInstant) CompareTo(v any) (int, error) {
	const op = "tai compare"
	switch o := v.(type) {
	case nil:
		return 0, invalidArgument(op, "cannot compare to nil")
	case TAIInstant:
		return t.Compare(o), nil
	case *TAIInstant:
		if o == nil {
			return 0, invalidArgument(op, "cannot compare to nil")
		}
		return t.Compare(*o), nil
	default:
		return 0, typeMismatch(op, "TAIInstant", v)
	}
}

// String formats t as "<seconds>.<nanos>s(TAI)".
func (t TAIInstant) String() string {
	return fmt.Sprintf("%d.%09ds(TAI)", t.secs, t.nanos)
}

type taiJSON struct {
	Seconds int64 `json:"tai_seconds"`
	Nano    int64 `json:"nano"`
}

// MarshalJSON encodes t as {"tai_seconds":..,"nano":..}.
func (t TAIInstant) MarshalJSON() ([]byte, error) {
	return json.Marshal(taiJSON{Seconds: t.secs, Nano: int64(t.nanos)})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (t *TAIInstant) UnmarshalJSON(data []byte) error {
	var v taiJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode tai instant: %w", err)
	}
	if v.Nano < 0 || v.Nano >= NanosPerSecond {
		return invalidArgument("decode tai instant", "nano %d out of range", v.Nano)
	}
	*t = TAIInstant{secs: v.Seconds, nanos: int32(v.Nano)}
	return nil
}
