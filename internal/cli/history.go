package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"digital.vasic.corespec/pkg/history"
	"digital.vasic.corespec/pkg/report"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	DB    string
	Limit int
	Suite string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:           "history",
		Short:         "Show recently recorded runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "",
		"SQLite history database (defaults to the configured history)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10,
		"number of runs to show")
	cmd.Flags().StringVar(&opts.Suite, "suite", "",
		"show the latest run of this suite label")

	return cmd
}

func runHistory(cmd *cobra.Command, rootOpts *RootOptions, opts *HistoryOptions) error {
	path := opts.DB
	if path == "" {
		cfg, err := resolveConfig(rootOpts)
		if err != nil {
			return err
		}
		path = cfg.History
	}
	if path == "" {
		return NewExitError(ExitCommandError,
			"no history database: pass --db or set history in the config")
	}
	if _, err := os.Stat(path); err != nil {
		return WrapExitError(ExitCommandError, "history database", err)
	}

	store, err := history.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "open history", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	var runs []history.Run
	if opts.Suite != "" {
		run, err := store.Latest(ctx, opts.Suite)
		if err != nil && !errors.Is(err, history.ErrNoRuns) {
			return WrapExitError(ExitCommandError, "read history", err)
		}
		if run != nil {
			runs = append(runs, *run)
		}
	} else {
		runs, err = store.Recent(ctx, opts.Limit)
		if err != nil {
			return WrapExitError(ExitCommandError, "read history", err)
		}
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RECORDED\tSUITE\tRUN ID\tRESULT\tFINGERPRINT")
	for _, run := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			run.RecordedAt.Local().Format("2006-01-02 15:04:05"),
			run.Suite,
			run.RunID,
			report.CountsLine(run.Result),
			shortFingerprint(run.Fingerprint),
		)
	}
	return tw.Flush()
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
