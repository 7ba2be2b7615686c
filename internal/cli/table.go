package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/leapscale/internal/civil"
	"github.com/roach88/leapscale/internal/leapsec"
	"github.com/roach88/leapscale/internal/scale"
)

// LeapSecondView is one row of the table command.
type LeapSecondView struct {
	Date       string `json:"date"`
	MJD        int64  `json:"mjd"`
	Adjustment int64  `json:"adjustment"`
	Offset     int64  `json:"offset"`
}

// TableView describes a leap-second table.
type TableView struct {
	Name        string           `json:"name"`
	BaseOffset  int64            `json:"base_offset"`
	LeapSeconds []LeapSecondView `json:"leap_seconds"`
}

// OffsetView is the table state on one day.
type OffsetView struct {
	Date         string          `json:"date"`
	MJD          int64           `json:"mjd"`
	TAIOffset    int64           `json:"tai_offset"`
	SecondsInDay int64           `json:"seconds_in_day"`
	LastLeap     *LeapSecondView `json:"last_leap_second,omitempty"`
}

func newOffsetView(t *leapsec.Table, mjd int64) OffsetView {
	v := OffsetView{
		Date:         civil.FromMJD(mjd).String(),
		MJD:          mjd,
		TAIOffset:    t.TAIOffset(mjd),
		SecondsInDay: t.SecondsInDay(mjd),
	}
	if tr, ok := t.TransitionOnOrBefore(mjd); ok {
		ls := LeapSecondView{
			Date:       civil.FromMJD(tr.Day).String(),
			MJD:        tr.Day,
			Adjustment: int64(t.LeapSecondAdjustment(tr.Day)),
			Offset:     tr.Offset,
		}
		v.LastLeap = &ls
	}
	return v
}

func (v OffsetView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  mjd %d  TAI-UTC %ds  %d seconds", v.Date, v.MJD, v.TAIOffset, v.SecondsInDay)
	if v.LastLeap == nil {
		b.WriteString("\nno leap second on or before this day")
	} else {
		fmt.Fprintf(&b, "\nlast leap second: %s  %+d  TAI-UTC %ds", v.LastLeap.Date, v.LastLeap.Adjustment, v.LastLeap.Offset)
	}
	return b.String()
}

func newTableView(t *leapsec.Table) TableView {
	v := TableView{
		Name:        t.Name(),
		BaseOffset:  t.BaseOffset(),
		LeapSeconds: make([]LeapSecondView, 0, t.Len()),
	}
	prev := t.BaseOffset()
	for _, tr := range t.Transitions() {
		v.LeapSeconds = append(v.LeapSeconds, LeapSecondView{
			Date:       civil.FromMJD(tr.Day).String(),
			MJD:        tr.Day,
			Adjustment: tr.Offset - prev,
			Offset:     tr.Offset,
		})
		prev = tr.Offset
	}
	return v
}

func (v TableView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: base offset %ds, %d leap seconds", v.Name, v.BaseOffset, len(v.LeapSeconds))
	for _, ls := range v.LeapSeconds {
		fmt.Fprintf(&b, "\n%s  mjd %d  %+d  TAI-UTC %ds", ls.Date, ls.MJD, ls.Adjustment, ls.Offset)
	}
	return b.String()
}

// NewTableCommand creates the table command.
func NewTableCommand(opts *RootOptions) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "table",
		Short: "List the leap seconds of the active table",
		Long: `List every leap second of the active table: the day it ends, whether a
second is inserted (+1) or removed (-1), and TAI-UTC from the next day.

With --at, show TAI-UTC and the day length on the day of a timestamp, and
the latest leap second on or before it.

Examples:
  leapscale table
  leapscale table --at 2016-12-31T12:00:00Z
  leapscale table --table ./leapseconds.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			rules, err := opts.loadRules(f)
			if err != nil {
				return err
			}
			if at == "" {
				return f.Success(newTableView(rules))
			}
			u, err := scale.ParseUTCWithRules(at, rules)
			if err != nil {
				return f.Fail("parse --at", err)
			}
			return f.Success(newOffsetView(rules, u.ModifiedJulianDay()))
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "show the table state on the day of this timestamp")
	return cmd
}
