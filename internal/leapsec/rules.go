// Package leapsec provides the leap-second rules that govern the length of
// UTC days.
//
// A Rules value answers two questions for any Modified Julian Day: how many
// SI seconds the day lasts, and what the TAI-UTC offset is at its start. The
// answers are total over all int64 days. Days before the first recorded leap
// second use the table's base offset; days after the last keep the last
// offset.
//
// Two kinds of rules ship with the module:
//   - Table: an ordered list of leap-second transitions (System, or any table
//     loaded from YAML or CUE)
//   - synthetic providers in internal/testutil used to exercise boundaries
package leapsec

// SecondsPerDay is the length of a UTC day without a leap second.
const SecondsPerDay = 86400

// Rules supplies the leap-second behaviour of the UTC time-scale.
//
// Implementations must be deterministic, side-effect free and safe for
// concurrent use. For consistency, TAIOffset(d+1) must equal
// TAIOffset(d) + LeapSecondAdjustment(d) for every day d.
type Rules interface {
	// Name identifies the rules in logs and CLI output.
	Name() string

	// SecondsInDay returns the length of the day: 86400, or 86401/86399 on a
	// day that ends with an inserted/removed leap second.
	SecondsInDay(mjd int64) int64

	// LeapSecondAdjustment returns +1, -1 or 0 for the day.
	LeapSecondAdjustment(mjd int64) int

	// TAIOffset returns TAI-UTC in whole seconds at the start of the day.
	TAIOffset(mjd int64) int64
}
