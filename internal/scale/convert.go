package scale

import (
	"github.com/roach88/leapscale/internal/leapsec"
)

// maxSearchSteps bounds the day search in UTCFromTAIWithRules. A consistent
// rule table converges in one or two steps.
const maxSearchSteps = 64

// UTCFromTAI converts a TAI instant to UTC under the system rules.
func UTCFromTAI(t TAIInstant) (UTCInstant, error) {
	return UTCFromTAIWithRules(t, leapsec.System())
}

// UTCFromTAIWithRules converts a TAI instant to UTC.
//
// The UTC day is the one whose start, TAI-wise, is the latest at or before
// t. An instant inside an inserted leap second lands on the leap day with a
// nano-of-day of 86400e9 or more.
func UTCFromTAIWithRules(t TAIInstant, rules leapsec.Rules) (UTCInstant, error) {
	const op = "utc from tai"
	if rules == nil {
		return UTCInstant{}, invalidArgument(op, "rules must not be nil")
	}

	// Split t into whole days and seconds since the epoch. The candidate day
	// is base+k; its start lies k days and TAIOffset seconds away from the
	// split point, so no intermediate value leaves the int64 range.
	q := floorDiv(t.secs, SecondsPerDay)
	r := floorMod(t.secs, SecondsPerDay)
	base := q + TAIEpochMJD

	var k int64
	for step := 0; step < maxSearchSteps; step++ {
		mjd := base + k
		sod := r - k*SecondsPerDay - rules.TAIOffset(mjd)
		length := rules.SecondsInDay(mjd)
		switch {
		case sod < 0:
			k += min(floorDiv(sod, length), -1)
		case sod >= length:
			k += max(floorDiv(sod, length), 1)
		default:
			return UTCInstant{mjd: mjd, nod: sod*NanosPerSecond + int64(t.nanos), rules: rules}, nil
		}
	}
	return UTCInstant{}, invalidArgument(op, "rules %q are inconsistent around %s", rules.Name(), t)
}

// ToTAI converts u to the TAI time-scale by adding TAI-UTC for its day.
func (u UTCInstant) ToTAI() (TAIInstant, error) {
	const op = "utc to tai"
	rules := u.Rules()

	days, ok := subExact(u.mjd, TAIEpochMJD)
	secs, ok2 := mulExact(days, SecondsPerDay)
	if !ok || !ok2 {
		return TAIInstant{}, overflow(op, "day %d out of range", u.mjd)
	}
	secs, ok = addExact(secs, u.nod/NanosPerSecond)
	if ok {
		secs, ok = addExact(secs, rules.TAIOffset(u.mjd))
	}
	if !ok {
		return TAIInstant{}, overflow(op, "day %d out of range", u.mjd)
	}
	return TAIInstant{secs: secs, nanos: int32(u.nod % NanosPerSecond)}, nil
}

// Plus returns u + d.
//
// Whole days of d move the day number first. The leap seconds between the
// old and the new day start are elapsed time too, so they are taken off the
// remainder, which is then walked across day boundaries one day at a time
// using the length of each day crossed.
func (u UTCInstant) Plus(d Duration) (UTCInstant, error) {
	const op = "utc plus"
	if d.IsZero() {
		return u, nil
	}
	rules := u.Rules()
	days, rem := splitDays(d)

	mjd, ok := addExact(u.mjd, days)
	if !ok {
		return UTCInstant{}, overflow(op, "%s + %s", u, d)
	}
	mjd, leaps, ok := leapsBetween(rules, u.mjd, mjd)
	if !ok {
		return UTCInstant{}, overflow(op, "%s + %s", u, d)
	}
	nod := u.nod + rem - leaps*NanosPerSecond
	for {
		if nod < 0 {
			if mjd, ok = subExact(mjd, 1); !ok {
				return UTCInstant{}, overflow(op, "%s + %s", u, d)
			}
			nod += rules.SecondsInDay(mjd) * NanosPerSecond
			continue
		}
		length := rules.SecondsInDay(mjd) * NanosPerSecond
		if nod < length {
			break
		}
		nod -= length
		if mjd, ok = addExact(mjd, 1); !ok {
			return UTCInstant{}, overflow(op, "%s + %s", u, d)
		}
	}
	return UTCInstant{mjd: mjd, nod: nod, rules: rules}, nil
}

// Minus returns u - d.
func (u UTCInstant) Minus(d Duration) (UTCInstant, error) {
	neg, err := d.Neg()
	if err != nil {
		return UTCInstant{}, overflow("utc minus", "%s - %s", u, d)
	}
	return u.Plus(neg)
}

// DurationUntil returns the elapsed time from u to o, counting leap seconds.
func (u UTCInstant) DurationUntil(o UTCInstant) (Duration, error) {
	from, err := u.ToTAI()
	if err != nil {
		return Duration{}, err
	}
	to, err := o.ToTAI()
	if err != nil {
		return Duration{}, err
	}
	return from.DurationUntil(to)
}

// leapsBetween returns TAI-UTC at the start of day to minus TAI-UTC at the
// start of day from, in seconds. A difference of a day or more, which only
// synthetic rules produce, is folded back into the day number, so the
// returned day may differ from to and the returned seconds are below a day.
func leapsBetween(rules leapsec.Rules, from, to int64) (int64, int64, bool) {
	base := rules.TAIOffset(from)
	leaps, ok := subExact(rules.TAIOffset(to), base)
	for ok && leaps/SecondsPerDay != 0 {
		q := leaps / SecondsPerDay
		var next int64
		if next, ok = subExact(to, q); !ok {
			break
		}
		// Moving back q days gives back q*86400 s plus the leaps in between.
		var moved int64
		if moved, ok = subExact(rules.TAIOffset(next), rules.TAIOffset(to)); !ok {
			break
		}
		leaps = leaps - q*SecondsPerDay + moved
		to = next
	}
	return to, leaps, ok
}

// splitDays splits d into whole 86400 s days and a nanosecond remainder,
// both truncated toward zero. |rem| < NanosPerDay.
func splitDays(d Duration) (days, rem int64) {
	if d.secs >= 0 || d.nanos == 0 {
		return d.secs / SecondsPerDay, (d.secs%SecondsPerDay)*NanosPerSecond + int64(d.nanos)
	}
	// Negative with a fraction: d = (secs+1) s - (1e9-nanos) ns.
	s := d.secs + 1
	return s / SecondsPerDay, (s%SecondsPerDay)*NanosPerSecond - (NanosPerSecond - int64(d.nanos))
}
