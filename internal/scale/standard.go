package scale

import (
	"time"

	"github.com/roach88/leapscale/internal/civil"
	"github.com/roach88/leapscale/internal/leapsec"
)

// Seconds from 0001-01-01 to 1970-01-01. time.Time stores seconds relative
// to year 1, so Unix seconds beyond MaxInt64 minus this value do not fit.
const unixToInternal int64 = (1969*365 + 1969/4 - 1969/100 + 1969/400) * SecondsPerDay

// UTCFromTime converts a standard instant to UTC under the system rules.
func UTCFromTime(t time.Time) (UTCInstant, error) {
	return UTCFromTimeWithRules(t, leapsec.System())
}

// UTCFromTimeWithRules converts a standard instant to UTC.
//
// The conversion is plain epoch arithmetic: a time.Time has no leap
// seconds, so the result is never inside one. A time falling in the missing
// last second of a shortened day moves onto the following day.
func UTCFromTimeWithRules(t time.Time, rules leapsec.Rules) (UTCInstant, error) {
	if rules == nil {
		return UTCInstant{}, invalidArgument("utc from time", "rules must not be nil")
	}
	secs := t.Unix()
	mjd := floorDiv(secs, SecondsPerDay) + civil.EpochMJD
	nod := floorMod(secs, SecondsPerDay)*NanosPerSecond + int64(t.Nanosecond())
	if limit := rules.SecondsInDay(mjd) * NanosPerSecond; nod >= limit {
		mjd++
		nod -= limit
	}
	return NewUTCInstantWithRules(mjd, nod, rules)
}

// ToTime converts u to a standard instant in the UTC location.
//
// An instant inside an inserted leap second has no standard counterpart and
// maps to the first nanosecond of the following day, so the mapping never
// goes backwards. Days whose Unix seconds time.Time cannot hold fail with
// ErrArithmeticOverflow.
func (u UTCInstant) ToTime() (time.Time, error) {
	const op = "utc to time"
	epochDay, ok := subExact(u.mjd, civil.EpochMJD)
	if !ok {
		return time.Time{}, overflow(op, "day %d out of range", u.mjd)
	}
	secs, ok := mulExact(epochDay, SecondsPerDay)
	if !ok {
		return time.Time{}, overflow(op, "day %d out of range", u.mjd)
	}

	var nanos int64
	if u.IsLeapSecond() {
		secs, ok = addExact(secs, SecondsPerDay)
	} else {
		secs, ok = addExact(secs, u.nod/NanosPerSecond)
		nanos = u.nod % NanosPerSecond
	}
	if ok {
		_, ok = addExact(secs, unixToInternal)
	}
	if !ok {
		return time.Time{}, overflow(op, "day %d out of range", u.mjd)
	}
	return time.Unix(secs, nanos).UTC(), nil
}
