package leapsec

import (
	"fmt"
	"sort"
)

// Transition records a leap second. Day is the MJD of the day that ends with
// the leap second; Offset is TAI-UTC from the start of the following day.
type Transition struct {
	Day    int64 `json:"mjd"`
	Offset int64 `json:"offset"`
}

// TableError reports an inconsistent leap-second table.
type TableError struct {
	Table   string
	Index   int // transition index, -1 when the error is not about one entry
	Message string
}

// Error implements the error interface.
func (e *TableError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("leap second table %q: entry %d: %s", e.Table, e.Index, e.Message)
	}
	return fmt.Sprintf("leap second table %q: %s", e.Table, e.Message)
}

// Table is a Rules implementation backed by a sorted transition list.
// A Table is immutable once built.
type Table struct {
	name    string
	base    int64
	days    []int64
	offsets []int64
}

// NewTable validates the transitions and builds a table.
//
// base is TAI-UTC before the first transition. Days must be strictly
// increasing and every transition must move the offset by exactly one second.
func NewTable(name string, base int64, transitions []Transition) (*Table, error) {
	if name == "" {
		return nil, &TableError{Table: name, Index: -1, Message: "name is required"}
	}
	t := &Table{
		name:    name,
		base:    base,
		days:    make([]int64, len(transitions)),
		offsets: make([]int64, len(transitions)),
	}
	prev := base
	for i, tr := range transitions {
		if i > 0 && tr.Day <= transitions[i-1].Day {
			return nil, &TableError{Table: name, Index: i, Message: fmt.Sprintf("day %d is not after day %d", tr.Day, transitions[i-1].Day)}
		}
		if delta := tr.Offset - prev; delta != 1 && delta != -1 {
			return nil, &TableError{Table: name, Index: i, Message: fmt.Sprintf("offset changes by %d, want +1 or -1", delta)}
		}
		t.days[i] = tr.Day
		t.offsets[i] = tr.Offset
		prev = tr.Offset
	}
	return t, nil
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// BaseOffset returns TAI-UTC before the first transition.
func (t *Table) BaseOffset() int64 { return t.base }

// Len returns the number of transitions.
func (t *Table) Len() int { return len(t.days) }

// Transitions returns a copy of the transition list in day order.
func (t *Table) Transitions() []Transition {
	out := make([]Transition, len(t.days))
	for i := range t.days {
		out[i] = Transition{Day: t.days[i], Offset: t.offsets[i]}
	}
	return out
}

// SecondsInDay implements Rules.
func (t *Table) SecondsInDay(mjd int64) int64 {
	return SecondsPerDay + int64(t.LeapSecondAdjustment(mjd))
}

// LeapSecondAdjustment implements Rules.
func (t *Table) LeapSecondAdjustment(mjd int64) int {
	i := t.search(mjd)
	if i == len(t.days) || t.days[i] != mjd {
		return 0
	}
	return int(t.offsets[i] - t.offsetBefore(i))
}

// TAIOffset implements Rules. The leap day itself still carries the old
// offset; the new one applies from the next day.
func (t *Table) TAIOffset(mjd int64) int64 {
	return t.offsetBefore(t.search(mjd))
}

// TransitionOnOrBefore returns the latest transition whose day is <= mjd.
func (t *Table) TransitionOnOrBefore(mjd int64) (Transition, bool) {
	i := sort.Search(len(t.days), func(i int) bool { return t.days[i] > mjd })
	if i == 0 {
		return Transition{}, false
	}
	return Transition{Day: t.days[i-1], Offset: t.offsets[i-1]}, true
}

// search returns the index of the first transition with day >= mjd.
func (t *Table) search(mjd int64) int {
	return sort.Search(len(t.days), func(i int) bool { return t.days[i] >= mjd })
}

func (t *Table) offsetBefore(i int) int64 {
	if i == 0 {
		return t.base
	}
	return t.offsets[i-1]
}
