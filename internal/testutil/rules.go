package testutil

import (
	"fmt"

	"github.com/roach88/leapscale/internal/leapsec"
)

// AlwaysLeap is a Rules implementation where every day ends with an inserted
// leap second, so every day is 86401 seconds long.
//
// TAIOffset grows by one second per day to stay consistent with the
// adjustment. It wraps near the int64 extremes, so only use it for
// construction and UTC arithmetic, not for TAI conversion of extreme days.
type AlwaysLeap struct{}

// Name implements leapsec.Rules.
func (AlwaysLeap) Name() string { return "always-leap" }

// SecondsInDay implements leapsec.Rules.
func (AlwaysLeap) SecondsInDay(int64) int64 { return leapsec.SecondsPerDay + 1 }

// LeapSecondAdjustment implements leapsec.Rules.
func (AlwaysLeap) LeapSecondAdjustment(int64) int { return 1 }

// TAIOffset implements leapsec.Rules.
func (AlwaysLeap) TAIOffset(mjd int64) int64 { return mjd }

// LeapOn returns a table with a single inserted leap second at the end of
// day mjd. TAI-UTC is 10 before it and 11 after.
func LeapOn(mjd int64) *leapsec.Table {
	t, err := leapsec.NewTable(fmt.Sprintf("leap-on-%d", mjd), 10, []leapsec.Transition{{Day: mjd, Offset: 11}})
	if err != nil {
		panic(fmt.Sprintf("testutil: LeapOn(%d): %v", mjd, err))
	}
	return t
}

// RemovedOn returns a table where day mjd is one second short (86399
// seconds). TAI-UTC is 10 before it and 9 after.
func RemovedOn(mjd int64) *leapsec.Table {
	t, err := leapsec.NewTable(fmt.Sprintf("removed-on-%d", mjd), 10, []leapsec.Transition{{Day: mjd, Offset: 9}})
	if err != nil {
		panic(fmt.Sprintf("testutil: RemovedOn(%d): %v", mjd, err))
	}
	return t
}
