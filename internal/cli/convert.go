package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/leapscale/internal/scale"
)

// InstantView is the rendered form of a UTC instant and its TAI and
// standard-time counterparts.
type InstantView struct {
	UTC        string `json:"utc"`
	MJD        int64  `json:"mjd"`
	NanoOfDay  int64  `json:"nano_of_day"`
	LeapSecond bool   `json:"leap_second"`
	TAI        string `json:"tai"`
	TAISeconds int64  `json:"tai_seconds"`
	TAINano    int    `json:"tai_nano"`
	Time       string `json:"time,omitempty"` // empty when time.Time cannot hold the instant
	Rules      string `json:"rules"`
}

func newInstantView(u scale.UTCInstant) (InstantView, error) {
	tai, err := u.ToTAI()
	if err != nil {
		return InstantView{}, err
	}
	v := InstantView{
		UTC:        u.String(),
		MJD:        u.ModifiedJulianDay(),
		NanoOfDay:  u.NanoOfDay(),
		LeapSecond: u.IsLeapSecond(),
		TAI:        tai.String(),
		TAISeconds: tai.Seconds(),
		TAINano:    tai.Nano(),
		Rules:      u.Rules().Name(),
	}
	if t, err := u.ToTime(); err == nil {
		v.Time = t.Format(time.RFC3339Nano)
	}
	return v, nil
}

func (v InstantView) String() string {
	std := v.Time
	if std == "" {
		std = "out of range"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-13s%s\n", "utc:", v.UTC)
	fmt.Fprintf(&b, "%-13s%d\n", "mjd:", v.MJD)
	fmt.Fprintf(&b, "%-13s%d\n", "nano_of_day:", v.NanoOfDay)
	fmt.Fprintf(&b, "%-13s%t\n", "leap_second:", v.LeapSecond)
	fmt.Fprintf(&b, "%-13s%s\n", "tai:", v.TAI)
	fmt.Fprintf(&b, "%-13s%s\n", "time:", std)
	fmt.Fprintf(&b, "%-13s%s", "rules:", v.Rules)
	return b.String()
}

// DurationView is the elapsed time between two instants.
type DurationView struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Duration string `json:"duration"`
	Seconds  int64  `json:"seconds"`
	Nanos    int    `json:"nanos"`
	Std      string `json:"std,omitempty"` // time.Duration form, empty beyond about 292 years
}

func newDurationView(from, to scale.UTCInstant, d scale.Duration) DurationView {
	v := DurationView{
		From:     from.String(),
		To:       to.String(),
		Duration: d.String(),
		Seconds:  d.Seconds(),
		Nanos:    d.Nanos(),
	}
	if std, err := d.Std(); err == nil {
		v.Std = std.String()
	}
	return v
}

func (v DurationView) String() string {
	std := v.Std
	if std == "" {
		std = "out of range"
	}
	return fmt.Sprintf("%-10s%s\n%-10s%s\n%-10s%s\n%-10s%s",
		"from:", v.From, "to:", v.To, "duration:", v.Duration, "std:", std)
}

// NewUTCCommand creates the utc command.
func NewUTCCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "utc <timestamp>",
		Short: "Show a UTC instant on every time scale",
		Long: `Parse a UTC timestamp and show its day number, nano-of-day, TAI
instant and standard (leap-free) time.

Examples:
  leapscale utc 2016-12-31T23:59:60Z
  leapscale utc "1972-12-31T23:59:60.5(UTC)" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			rules, err := opts.loadRules(f)
			if err != nil {
				return err
			}
			u, err := scale.ParseUTCWithRules(args[0], rules)
			if err != nil {
				return f.Fail("parse timestamp", err)
			}
			return showInstant(f, u)
		},
	}
}

// NewTAICommand creates the tai command.
func NewTAICommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tai <seconds> [nanos]",
		Short: "Convert a TAI instant to UTC",
		Long: `Convert seconds since 1958-01-01T00:00:00(TAI) to UTC.

Negative values must follow "--".

Examples:
  leapscale tai 1861920036
  leapscale tai 1861920036 500000000
  leapscale tai -- -1`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			rules, err := opts.loadRules(f)
			if err != nil {
				return err
			}
			secs, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return f.Fail("parse TAI seconds", err)
			}
			var nanos int64
			if len(args) == 2 {
				if nanos, err = strconv.ParseInt(args[1], 10, 64); err != nil {
					return f.Fail("parse TAI nanos", err)
				}
			}
			tai, err := scale.NewTAIInstant(secs, nanos)
			if err != nil {
				return f.Fail("build TAI instant", err)
			}
			u, err := scale.UTCFromTAIWithRules(tai, rules)
			if err != nil {
				return f.Fail("convert to UTC", err)
			}
			return showInstant(f, u)
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	return newArithCommand(opts, "add", "Add an elapsed duration to a UTC instant", false)
}

// NewSubCommand creates the sub command.
func NewSubCommand(opts *RootOptions) *cobra.Command {
	return newArithCommand(opts, "sub", "Subtract an elapsed duration from a UTC instant", true)
}

func newArithCommand(opts *RootOptions, name, short string, minus bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " <timestamp> <duration>",
		Short: short,
		Long: short + `.

The duration counts elapsed SI seconds, so leap seconds inside the
interval are counted. It is decimal seconds ("86401", "-1.5s") or Go
duration syntax ("1h30m").

Examples:
  leapscale ` + name + ` 2016-12-31T23:59:59Z 2s
  leapscale ` + name + ` 2017-01-01T00:00:00Z 24h`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			rules, err := opts.loadRules(f)
			if err != nil {
				return err
			}
			u, err := scale.ParseUTCWithRules(args[0], rules)
			if err != nil {
				return f.Fail("parse timestamp", err)
			}
			d, err := scale.ParseDuration(args[1])
			if err != nil {
				return f.Fail("parse duration", err)
			}
			if minus {
				u, err = u.Minus(d)
			} else {
				u, err = u.Plus(d)
			}
			if err != nil {
				return f.Fail(name, err)
			}
			opts.logger().Debug("arithmetic", "op", name, "duration", d.String(), "result", u.String())
			return showInstant(f, u)
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// NewBetweenCommand creates the between command.
func NewBetweenCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "between <from> <to>",
		Short: "Show the elapsed time between two UTC instants",
		Long: `Show the exact elapsed time between two UTC instants, counting every
leap second in between. The result is negative when <to> is earlier.

Examples:
  leapscale between 2016-12-31T00:00:00Z 2017-01-01T00:00:00Z`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			rules, err := opts.loadRules(f)
			if err != nil {
				return err
			}
			from, err := scale.ParseUTCWithRules(args[0], rules)
			if err != nil {
				return f.Fail("parse from", err)
			}
			to, err := scale.ParseUTCWithRules(args[1], rules)
			if err != nil {
				return f.Fail("parse to", err)
			}
			d, err := from.DurationUntil(to)
			if err != nil {
				return f.Fail("between", err)
			}
			return f.Success(newDurationView(from, to, d))
		},
	}
}

func showInstant(f *OutputFormatter, u scale.UTCInstant) error {
	v, err := newInstantView(u)
	if err != nil {
		return f.Fail("convert to TAI", err)
	}
	return f.Success(v)
}

