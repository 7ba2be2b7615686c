// Package civil converts between Modified Julian Day numbers and proleptic
// Gregorian calendar dates.
//
// The conversions are exact over the whole int64 day range: no intermediate
// value overflows, so even the extreme days used by overflow tests can be
// formatted.
package civil

import "strconv"

// MJD of 1970-01-01.
const EpochMJD = 40587

const (
	daysPer400Years = 146097
	// Days from 0000-03-01 to 1858-11-17 (MJD 0).
	marchEpochToMJD = 678881
)

// Date is a proleptic Gregorian calendar date.
type Date struct {
	Year  int64
	Month int
	Day   int
}

// FromMJD returns the calendar date of the given Modified Julian Day.
func FromMJD(mjd int64) Date {
	// Shift the epoch to 0000-03-01 without forming mjd+marchEpochToMJD,
	// which would overflow near math.MaxInt64.
	era := floorDiv(mjd, daysPer400Years)
	rem := floorMod(mjd, daysPer400Years) + marchEpochToMJD
	era += rem / daysPer400Years
	doe := rem % daysPer400Years

	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day := doy - (153*mp+2)/5 + 1
	month := mp + 3
	if mp >= 10 {
		month = mp - 9
	}
	year := yoe + era*400
	if month <= 2 {
		year++
	}
	return Date{Year: year, Month: int(month), Day: int(day)}
}

// ToMJD returns the Modified Julian Day of a calendar date. Month and day
// are not range checked; use Valid first for untrusted input.
func ToMJD(d Date) int64 {
	y := d.Year
	if d.Month <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := int64((d.Month + 9) % 12)
	doy := (153*mp+2)/5 + int64(d.Day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*daysPer400Years + doe - marchEpochToMJD
}

// Valid reports whether the date names a real calendar day.
func (d Date) Valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= DaysInMonth(d.Year, d.Month)
}

// DaysInMonth returns the length of the month in days.
func DaysInMonth(year int64, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// IsLeapYear reports whether year has a February 29th.
func IsLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// String formats the date as ISO-8601 YYYY-MM-DD. Years beyond 9999 carry a
// leading '+', years before 0 a leading '-'.
func (d Date) String() string {
	return FormatYear(d.Year) + "-" + pad2(d.Month) + "-" + pad2(d.Day)
}

// FormatYear renders a year with at least four digits.
func FormatYear(year int64) string {
	switch {
	case year > 9999:
		return "+" + strconv.FormatInt(year, 10)
	case year < 0:
		// -year cannot overflow: years are bounded by MaxInt64/365.
		return "-" + pad4(-year)
	default:
		return pad4(year)
	}
}

func pad4(v int64) string {
	s := strconv.FormatInt(v, 10)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

func pad2(v int) string {
	if v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
