package scale

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/leapscale/internal/civil"
	"github.com/roach88/leapscale/internal/leapsec"
)

// String formats u as YYYY-MM-DDTHH:MM:SS.nnnnnnnnn(UTC). Inside a leap
// second the seconds field reads 60.
func (u UTCInstant) String() string {
	date := civil.FromMJD(u.mjd)
	var hh, mm, ss, frac int64
	if u.IsLeapSecond() {
		hh, mm, ss = 23, 59, 60
		frac = (u.nod - NanosPerDay) % NanosPerSecond
	} else {
		sod := u.nod / NanosPerSecond
		hh, mm, ss = sod/3600, sod/60%60, sod%60
		frac = u.nod % NanosPerSecond
	}
	return fmt.Sprintf("%sT%02d:%02d:%02d.%09d(UTC)", date, hh, mm, ss, frac)
}

var (
	minYear = civil.FromMJD(math.MinInt64).Year
	maxYear = civil.FromMJD(math.MaxInt64).Year
)

// ParseUTC parses the String form under the system rules.
func ParseUTC(s string) (UTCInstant, error) {
	return ParseUTCWithRules(s, leapsec.System())
}

// ParseUTCWithRules parses "YYYY-MM-DDTHH:MM:SS[.f...]" followed by "(UTC)",
// "Z" or nothing. The fraction has 1 to 9 digits. Second 60 is accepted
// only at 23:59 on a day that ends with a leap second.
func ParseUTCWithRules(s string, rules leapsec.Rules) (UTCInstant, error) {
	const op = "parse utc"
	bad := func(reason string) error {
		return invalidArgument(op, "%q: %s", s, reason)
	}
	if rules == nil {
		return UTCInstant{}, invalidArgument(op, "rules must not be nil")
	}

	body := strings.TrimSuffix(strings.TrimSuffix(s, "(UTC)"), "Z")
	datePart, timePart, ok := strings.Cut(body, "T")
	if !ok {
		return UTCInstant{}, bad("missing 'T' separator")
	}

	date, err := parseDate(datePart)
	if err != nil {
		return UTCInstant{}, bad(err.Error())
	}
	if date.Year < minYear || date.Year > maxYear {
		return UTCInstant{}, overflow(op, "%q: year out of range", s)
	}
	mjd := civil.ToMJD(date)
	if civil.FromMJD(mjd) != date {
		return UTCInstant{}, overflow(op, "%q: date out of range", s)
	}

	hh, mm, ss, frac, err := parseClock(timePart)
	if err != nil {
		return UTCInstant{}, bad(err.Error())
	}

	var nod int64
	if ss == 60 {
		if hh != 23 || mm != 59 {
			return UTCInstant{}, bad("second 60 is only valid at 23:59")
		}
		nod = NanosPerDay + frac
	} else {
		nod = (hh*3600+mm*60+ss)*NanosPerSecond + frac
	}
	return NewUTCInstantWithRules(mjd, nod, rules)
}

func parseDate(s string) (civil.Date, error) {
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 || len(parts[0]) < 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return civil.Date{}, fmt.Errorf("date must be YYYY-MM-DD")
	}
	for _, p := range parts {
		if !isDigits(p) {
			return civil.Date{}, fmt.Errorf("date must be YYYY-MM-DD")
		}
	}
	year, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return civil.Date{}, fmt.Errorf("year out of range")
	}
	if neg {
		year = -year
	}
	month, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])
	d := civil.Date{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return civil.Date{}, fmt.Errorf("no such date %s", d)
	}
	return d, nil
}

func parseClock(s string) (hh, mm, ss, frac int64, err error) {
	clock, fraction, hasFrac := strings.Cut(s, ".")
	fields := strings.Split(clock, ":")
	if len(fields) != 3 {
		return 0, 0, 0, 0, fmt.Errorf("time must be HH:MM:SS")
	}
	vals := make([]int64, 3)
	for i, f := range fields {
		if len(f) != 2 || !isDigits(f) {
			return 0, 0, 0, 0, fmt.Errorf("time must be HH:MM:SS")
		}
		vals[i], _ = strconv.ParseInt(f, 10, 64)
	}
	hh, mm, ss = vals[0], vals[1], vals[2]
	if hh > 23 || mm > 59 || ss > 60 {
		return 0, 0, 0, 0, fmt.Errorf("time %s out of range", clock)
	}
	if hasFrac {
		if len(fraction) > 9 || !isDigits(fraction) {
			return 0, 0, 0, 0, fmt.Errorf("fraction must have 1 to 9 digits")
		}
		frac, _ = strconv.ParseInt(fraction+strings.Repeat("0", 9-len(fraction)), 10, 64)
	}
	return hh, mm, ss, frac, nil
}
