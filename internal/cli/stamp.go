package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/leapscale/internal/scale"
	"github.com/roach88/leapscale/internal/store"
)

// StampOptions holds flags for the stamp commands.
type StampOptions struct {
	*RootOptions
	DB   string            // SQLite database path
	IDs  store.IDGenerator // nil uses UUIDv7
	From string            // list: inclusive lower bound
	To   string            // list: exclusive upper bound
}

// RecordView is a stored instant as printed by the stamp commands.
type RecordView struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	UTC        string `json:"utc"`
	MJD        int64  `json:"mjd"`
	NanoOfDay  int64  `json:"nano_of_day"`
	LeapSecond bool   `json:"leap_second"`
	Seq        int64  `json:"seq"`
}

func newRecordView(r store.Record) RecordView {
	return RecordView{
		ID:         r.ID,
		Label:      r.Label,
		UTC:        r.Instant.String(),
		MJD:        r.Instant.ModifiedJulianDay(),
		NanoOfDay:  r.Instant.NanoOfDay(),
		LeapSecond: r.Instant.IsLeapSecond(),
		Seq:        r.Seq,
	}
}

func (v RecordView) String() string {
	return fmt.Sprintf("%s  %s  %s", v.ID, v.UTC, v.Label)
}

// RecordList is the output of stamp list.
type RecordList struct {
	Records []RecordView `json:"records"`
	Total   int          `json:"total"`  // records listed
	Stored  int          `json:"stored"` // records in the database
}

func (l RecordList) String() string {
	if len(l.Records) == 0 {
		return "No stamps."
	}
	lines := make([]string, len(l.Records))
	for i, r := range l.Records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

// NewStampCommand creates the stamp command group.
func NewStampCommand(rootOpts *RootOptions) *cobra.Command {
	return newStampCommand(&StampOptions{RootOptions: rootOpts, DB: rootOpts.DBPath})
}

func newStampCommand(opts *StampOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stamp",
		Short: "Store named UTC instants in a SQLite database",
		Long: `Save, list and delete named UTC instants. Instants are stored as
(mjd, nano_of_day), so leap seconds survive the round trip.

Examples:
  leapscale stamp save launch 2016-12-31T23:59:60Z --db stamps.db
  leapscale stamp list --db stamps.db
  leapscale stamp list --from 2016-01-01T00:00:00Z --to 2017-01-01T00:00:00Z`,
	}
	cmd.PersistentFlags().StringVar(&opts.DB, "db", opts.DB, "SQLite database path")

	cmd.AddCommand(newStampSaveCommand(opts))
	cmd.AddCommand(newStampListCommand(opts))
	cmd.AddCommand(newStampDeleteCommand(opts))
	return cmd
}

func newStampSaveCommand(opts *StampOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "save <label> <timestamp>",
		Short: "Save a labelled UTC instant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			return opts.withStore(cmd.Context(), f, func(ctx context.Context, s *store.Store) error {
				u, err := scale.ParseUTCWithRules(args[1], s.Rules())
				if err != nil {
					return f.Fail("parse timestamp", err)
				}
				rec, err := s.Save(ctx, args[0], u)
				if err != nil {
					return f.Fail("save stamp", err)
				}
				opts.logger().Debug("stamp saved", "id", rec.ID, "seq", rec.Seq)
				return f.Success(newRecordView(rec))
			})
		},
	}
}

func newStampListCommand(opts *StampOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved instants in time order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			if (opts.From == "") != (opts.To == "") {
				return f.reportError(ErrCodeInvalidArg, "--from and --to must be given together", nil, nil)
			}
			return opts.withStore(cmd.Context(), f, func(ctx context.Context, s *store.Store) error {
				var (
					records []store.Record
					err     error
				)
				if opts.From != "" {
					records, err = opts.between(ctx, f, s)
				} else {
					records, err = s.List(ctx)
					if err != nil {
						err = f.Fail("list stamps", err)
					}
				}
				if err != nil {
					return err
				}
				stored, err := s.Count(ctx)
				if err != nil {
					return f.Fail("count stamps", err)
				}
				list := RecordList{Records: make([]RecordView, 0, len(records)), Total: len(records), Stored: stored}
				for _, r := range records {
					list.Records = append(list.Records, newRecordView(r))
				}
				return f.Success(list)
			})
		},
	}
	cmd.Flags().StringVar(&opts.From, "from", "", "only instants at or after this timestamp")
	cmd.Flags().StringVar(&opts.To, "to", "", "only instants before this timestamp")
	return cmd
}

func newStampDeleteCommand(opts *StampOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved instant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			return opts.withStore(cmd.Context(), f, func(ctx context.Context, s *store.Store) error {
				if err := s.Delete(ctx, args[0]); err != nil {
					return f.Fail("delete stamp", err)
				}
				return f.Success(fmt.Sprintf("Deleted %s", args[0]))
			})
		},
	}
}

func (o *StampOptions) between(ctx context.Context, f *OutputFormatter, s *store.Store) ([]store.Record, error) {
	from, err := scale.ParseUTCWithRules(o.From, s.Rules())
	if err != nil {
		return nil, f.Fail("parse --from", err)
	}
	to, err := scale.ParseUTCWithRules(o.To, s.Rules())
	if err != nil {
		return nil, f.Fail("parse --to", err)
	}
	records, err := s.Between(ctx, from, to)
	if err != nil {
		return nil, f.Fail("list stamps", err)
	}
	return records, nil
}

// withStore opens the database under the active rules, runs fn and closes
// the database again.
func (o *StampOptions) withStore(ctx context.Context, f *OutputFormatter, fn func(context.Context, *store.Store) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if o.DB == "" {
		return f.reportError(ErrCodeInvalidArg, "no database: set --db or LEAPSCALE_DB", nil, nil)
	}
	rules, err := o.loadRules(f)
	if err != nil {
		return err
	}
	s, err := store.Open(o.DB, store.WithRules(rules), store.WithIDGenerator(o.IDs))
	if err != nil {
		return f.reportError(ErrCodeStoreFailed, err.Error(), map[string]string{"db": o.DB}, err)
	}
	defer s.Close()
	return fn(ctx, s)
}
