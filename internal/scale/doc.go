// Package scale implements instants on the TAI and UTC time-scales and the
// exact conversions between them.
//
// # Types
//
//   - TAIInstant: whole TAI seconds since 1958-01-01T00:00:00(TAI) plus a
//     nano-of-second. No leap seconds exist on this scale.
//   - UTCInstant: a Modified Julian Day plus nano-of-day. The valid nano-of-day
//     range depends on the day's length, taken from a leapsec.Rules value, so
//     an inserted leap second (23:59:60) is representable.
//   - Duration: signed seconds plus a nano-of-second, covering the full int64
//     second range.
//
// The standard instant is time.Time, which cannot represent a leap second.
// UTCInstant.ToTime maps a leap second onto the first nanosecond of the
// following day.
//
// # Arithmetic
//
// UTCInstant.Plus moves by whole days first and then walks the remainder
// across day boundaries one day at a time, asking the rules for each day's
// length. UTCInstant.DurationUntil goes through TAI, so a day ending in a leap
// second measures 86401 seconds.
//
// All values are immutable. Every operation that can overflow int64 returns
// an error matching ErrArithmeticOverflow; invalid input yields
// ErrInvalidArgument.
package scale
