package scale

import (
	"github.com/roach88/leapscale/internal/leapsec"
)

// UTCInstant is an instant on the UTC time-scale held as a Modified Julian
// Day and a nano-of-day.
//
// The nano-of-day is valid in [0, SecondsInDay(mjd)*1e9) under the instant's
// rules, so on a day ending with a leap second it may reach into the 86401st
// second. The rules are shared, never copied; they take no part in
// comparisons.
//
// The zero value is 1858-11-17T00:00:00 under the system rules. Use Equal
// rather than == to compare instants.
type UTCInstant struct {
	mjd   int64
	nod   int64
	rules leapsec.Rules
}

// NewUTCInstant returns the instant at nanoOfDay into day mjd under the
// system leap-second rules.
func NewUTCInstant(mjd, nanoOfDay int64) (UTCInstant, error) {
	return NewUTCInstantWithRules(mjd, nanoOfDay, leapsec.System())
}

// NewUTCInstantWithRules is NewUTCInstant with explicit rules.
func NewUTCInstantWithRules(mjd, nanoOfDay int64, rules leapsec.Rules) (UTCInstant, error) {
	const op = "utc instant"
	if rules == nil {
		return UTCInstant{}, invalidArgument(op, "rules must not be nil")
	}
	if err := checkNanoOfDay(op, mjd, nanoOfDay, rules); err != nil {
		return UTCInstant{}, err
	}
	return UTCInstant{mjd: mjd, nod: nanoOfDay, rules: rules}, nil
}

func checkNanoOfDay(op string, mjd, nod int64, rules leapsec.Rules) error {
	if nod < 0 {
		return invalidArgument(op, "nano of day %d must not be negative", nod)
	}
	secs := rules.SecondsInDay(mjd)
	if nod >= secs*NanosPerSecond {
		if secs > SecondsPerDay {
			return invalidArgument(op, "nano of day %d is past the leap second of day %d (%d seconds long)", nod, mjd, secs)
		}
		return invalidArgument(op, "nano of day %d must be less than %d on day %d", nod, secs*NanosPerSecond, mjd)
	}
	return nil
}

// ModifiedJulianDay returns the day number.
func (u UTCInstant) ModifiedJulianDay() int64 { return u.mjd }

// NanoOfDay returns the nanoseconds elapsed since the start of the day,
// including any leap second.
func (u UTCInstant) NanoOfDay() int64 { return u.nod }

// Rules returns the leap-second rules the instant was built under.
func (u UTCInstant) Rules() leapsec.Rules {
	if u.rules == nil {
		return leapsec.System()
	}
	return u.rules
}

// IsLeapSecond reports whether the instant falls inside an inserted leap
// second, i.e. after 23:59:59.999999999.
func (u UTCInstant) IsLeapSecond() bool {
	return u.nod >= NanosPerDay
}

// WithModifiedJulianDay returns a copy on another day with the same
// nano-of-day. It fails if the nano-of-day does not fit the new day, which
// stops a leap-second instant from moving onto an ordinary day.
func (u UTCInstant) WithModifiedJulianDay(mjd int64) (UTCInstant, error) {
	rules := u.Rules()
	if err := checkNanoOfDay("with day", mjd, u.nod, rules); err != nil {
		return UTCInstant{}, err
	}
	return UTCInstant{mjd: mjd, nod: u.nod, rules: rules}, nil
}

// WithNanoOfDay returns a copy on the same day with another nano-of-day.
func (u UTCInstant) WithNanoOfDay(nanoOfDay int64) (UTCInstant, error) {
	rules := u.Rules()
	if err := checkNanoOfDay("with nano of day", u.mjd, nanoOfDay, rules); err != nil {
		return UTCInstant{}, err
	}
	return UTCInstant{mjd: u.mjd, nod: nanoOfDay, rules: rules}, nil
}

// Compare returns -1, 0 or +1 ordering by day, then nano-of-day.
func (u UTCInstant) Compare(o UTCInstant) int {
	switch {
	case u.mjd < o.mjd:
		return -1
	case u.mjd > o.mjd:
		return 1
	case u.nod < o.nod:
		return -1
	case u.nod > o.nod:
		return 1
	}
	return 0
}

// Equal reports whether u and o have the same day and nano-of-day. The
// rules are ignored.
func (u UTCInstant) Equal(o UTCInstant) bool {
	return u.mjd == o.mjd && u.nod == o.nod
}

// Before reports whether u is before o.
func (u UTCInstant) Before(o UTCInstant) bool { return u.Compare(o) < 0 }

// After reports whether u is after o.
func (u UTCInstant) After(o UTCInstant) bool { return u.Compare(o) > 0 }

// CompareTo compares u against an arbitrary value. Only UTCInstant and
// non-nil *UTCInstant are accepted: nil fails with ErrInvalidArgument and
// any other type with ErrTypeMismatch.
func (u UTCInstant) CompareTo(v any) (int, error) {
	const op = "utc compare"
	switch o := v.(type) {
	case nil:
		return 0, invalidArgument(op, "cannot compare to nil")
	case UTCInstant:
		return u.Compare(o), nil
	case *UTCInstant:
		if o == nil {
			return 0, invalidArgument(op, "cannot compare to nil")
		}
		return u.Compare(*o), nil
	default:
		return 0, typeMismatch(op, "UTCInstant", v)
	}
}
