// Package harness runs conformance scenarios against the time-scale
// operations.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: leap_second_2016
//	description: "Step across the 2016-12-31 leap second"
//	rules:
//	  leap_days: [1000]     # optional; default is the system table
//	steps:
//	  - op: utc
//	    mjd: 57753
//	    nano_of_day: 86399500000000
//	    expect:
//	      value: "2016-12-31T23:59:59.500000000(UTC)"
//	  - op: plus
//	    duration: "1s"
//	    expect:
//	      value: "2016-12-31T23:59:60.500000000(UTC)"
//	  - op: with_nano
//	    nano_of_day: 86401000000000
//	    expect:
//	      error: INVALID_ARGUMENT
//
// # Operations
//
// The harness keeps a current UTC instant and a current TAI instant.
//
//   - utc: set the current UTC instant from mjd/nano_of_day or at
//   - tai: set the current TAI instant from seconds/nanos
//   - to_tai, from_tai: convert between the two
//   - to_time, from_time: convert to and from time.Time (RFC 3339)
//   - plus, minus: move the current UTC instant by duration
//   - until: elapsed duration from the current UTC instant to "to"
//   - with_day, with_nano: replace one field of the current UTC instant
//
// A step whose expected error occurs leaves the state unchanged.
//
// # Golden Files
//
// RunWithGolden writes the step trace as indented JSON and compares it
// with testdata/golden/<name>.golden.
package harness
