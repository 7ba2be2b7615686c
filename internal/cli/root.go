package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/leapscale/internal/config"
	"github.com/roach88/leapscale/internal/leapsec"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Table   string // leap-second table file, empty for the system table
	DBPath  string // default database for the stamp commands

	LogLevel slog.Level
	Logger   *slog.Logger

	rules *leapsec.Table
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the leapscale CLI.
// cfg supplies flag defaults; flags given on the command line win.
func NewRootCommand(cfg config.Config) *cobra.Command {
	opts := &RootOptions{
		DBPath:   cfg.DBPath,
		LogLevel: cfg.LogLevel,
	}

	cmd := &cobra.Command{
		Use:   "leapscale",
		Short: "leapscale - leap-second-aware UTC and TAI time",
		Long: `Convert and do arithmetic on instants on the UTC and TAI time scales.

UTC instants are written YYYY-MM-DDTHH:MM:SS[.fffffffff], optionally
followed by Z or (UTC). A leap second is written with second 60.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			level := opts.LogLevel
			if opts.Verbose {
				level = slog.LevelDebug
			}
			opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(opts.Logger)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", formatOrDefault(cfg.Format), "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Table, "table", cfg.TablePath, "leap-second table file (.yaml or .cue)")

	cmd.AddCommand(NewUTCCommand(opts))
	cmd.AddCommand(NewTAICommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewSubCommand(opts))
	cmd.AddCommand(NewBetweenCommand(opts))
	cmd.AddCommand(NewTableCommand(opts))
	cmd.AddCommand(NewStampCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// Rules returns the active leap-second table, loading it on first use.
func (o *RootOptions) Rules() (*leapsec.Table, error) {
	if o.rules != nil {
		return o.rules, nil
	}
	t, err := config.Config{TablePath: o.Table}.Rules()
	if err != nil {
		return nil, err
	}
	o.logger().Debug("leap second table ready", "name", t.Name(), "leap_seconds", t.Len(), "path", o.Table)
	o.rules = t
	return t, nil
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// loadRules resolves the table and reports a failure through f.
func (o *RootOptions) loadRules(f *OutputFormatter) (*leapsec.Table, error) {
	t, err := o.Rules()
	if err != nil {
		return nil, f.reportError(ErrCodeTableFailed, err.Error(), nil, err)
	}
	return t, nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func formatOrDefault(format string) string {
	if format == "" {
		return "text"
	}
	return format
}
