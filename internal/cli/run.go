package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"digital.vasic.corespec/pkg/config"
	"digital.vasic.corespec/pkg/history"
	"digital.vasic.corespec/pkg/logging"
	"digital.vasic.corespec/pkg/metrics"
	"digital.vasic.corespec/pkg/monitor"
	"digital.vasic.corespec/pkg/report"
	"digital.vasic.corespec/pkg/runner"
	"digital.vasic.corespec/pkg/scenario"
)

// RunOptions holds flags for the run command. Flags left unset
// keep the value from the config file or the environment.
type RunOptions struct {
	Format       string
	Concurrency  int
	Timeout      time.Duration
	Filter       string
	Capture      bool
	Builtin      bool
	Suites       []string
	History      string
	HistoryJSONL string
	Monitor      string
	LogsDir      string
	ReportDir    string
	Envelope     bool
	Watch        bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Run declared scenarios",
		Long: `Load declaration files (files or directories) and the requested
built-in suites, run every case and print a report.

Exit code 0 means every executed case passed, 1 means cases failed
or errored, 2 means the command itself could not run.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, rootOpts, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Format, "format", "f", "text",
		"report format ("+strings.Join(config.Formats, "|")+")")
	f.IntVarP(&opts.Concurrency, "concurrency", "j", 1,
		"number of cases run at once")
	f.DurationVar(&opts.Timeout, "timeout", 0,
		"per-case timeout (0 disables)")
	f.StringVar(&opts.Filter, "filter", "",
		"run only cases whose full name matches this regular expression")
	f.BoolVar(&opts.Capture, "capture", false,
		"capture stdout written by each case")
	f.BoolVar(&opts.Builtin, "builtin", false,
		"declare every built-in suite")
	f.StringSliceVar(&opts.Suites, "suite", nil,
		"built-in suite to declare (repeatable)")
	f.StringVar(&opts.History, "history", "",
		"SQLite database recording every run")
	f.StringVar(&opts.HistoryJSONL, "history-jsonl", "",
		"JSON-lines file receiving one summary per run")
	f.StringVar(&opts.Monitor, "monitor", "",
		"listen address of the live WebSocket monitor")
	f.StringVar(&opts.LogsDir, "logs-dir", "",
		"directory receiving run.log and cases.log")
	f.StringVar(&opts.ReportDir, "report-dir", "",
		"directory receiving timestamped JSON and Markdown reports")
	f.BoolVar(&opts.Envelope, "envelope", false,
		"wrap the JSON report with a run id and timestamp")
	f.BoolVarP(&opts.Watch, "watch", "w", false,
		"re-run whenever a declaration file changes")

	return cmd
}

func runRun(
	cmd *cobra.Command,
	rootOpts *RootOptions,
	opts *RunOptions,
	args []string,
) error {
	cfg, err := resolveConfig(rootOpts)
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg, opts, args)
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	s, err := newSession(cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	if opts.Watch {
		return s.watch(ctx)
	}
	return s.run(ctx)
}

// applyRunFlags overrides cfg with the flags set on the command
// line and the positional paths.
func applyRunFlags(
	cmd *cobra.Command,
	cfg *config.Config,
	opts *RunOptions,
	args []string,
) {
	if len(args) > 0 {
		cfg.Paths = args
	}
	f := cmd.Flags()
	if f.Changed("format") {
		cfg.Format = opts.Format
	}
	if f.Changed("concurrency") {
		cfg.Concurrency = opts.Concurrency
	}
	if f.Changed("timeout") {
		cfg.Timeout = opts.Timeout
	}
	if f.Changed("filter") {
		cfg.Filter = opts.Filter
	}
	if f.Changed("capture") {
		cfg.Capture = opts.Capture
	}
	if f.Changed("builtin") {
		cfg.Builtin = opts.Builtin
	}
	if f.Changed("suite") {
		cfg.Suites = opts.Suites
	}
	if f.Changed("history") {
		cfg.History = opts.History
	}
	if f.Changed("history-jsonl") {
		cfg.HistoryJSONL = opts.HistoryJSONL
	}
	if f.Changed("monitor") {
		cfg.Monitor = opts.Monitor
	}
	if f.Changed("logs-dir") {
		cfg.LogsDir = opts.LogsDir
	}
}

// session holds what outlives a single run: the logger, the
// history store and the monitor server.
type session struct {
	cfg    *config.Config
	opts   *RunOptions
	out    io.Writer
	errOut io.Writer
	logger logging.Logger

	store     *history.Store
	collector *monitor.EventCollector
	server    *monitor.Server
	stopMon   context.CancelFunc
}

func newSession(
	cfg *config.Config,
	opts *RunOptions,
	out, errOut io.Writer,
) (*session, error) {
	logger, err := newLogger(cfg, errOut)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "setup logging", err)
	}
	s := &session{
		cfg:    cfg,
		opts:   opts,
		out:    out,
		errOut: errOut,
		logger: logger,
	}

	if cfg.History != "" {
		store, err := history.Open(cfg.History)
		if err != nil {
			s.close()
			return nil, WrapExitError(ExitCommandError, "open history", err)
		}
		s.store = store
	}

	if cfg.Monitor != "" {
		s.startMonitor()
	}
	return s, nil
}

func (s *session) startMonitor() {
	s.collector = monitor.NewEventCollector()
	dashboard := monitor.NewDashboard(report.NewRunID())
	s.server = monitor.NewServer(s.cfg.Monitor, s.collector, dashboard)

	ctx, cancel := context.WithCancel(context.Background())
	s.stopMon = cancel
	go func() {
		if err := s.server.Start(ctx); err != nil {
			s.logger.Error("monitor_failed", logging.ErrorField(err))
		}
	}()
	s.logger.Info("monitor_started",
		logging.StringField("addr", s.cfg.Monitor),
	)
}

func (s *session) close() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(
			context.Background(), 5*time.Second,
		)
		_ = s.server.Stop(ctx)
		cancel()
		s.stopMon()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("history_close_failed", logging.ErrorField(err))
		}
	}
	_ = s.logger.Close()
}

// run loads the declarations, runs them once, prints the report
// and records the result.
func (s *session) run(ctx context.Context) error {
	reg, err := loadRegistry(s.cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "load declarations", err)
	}

	runID := report.NewRunID()
	started := time.Now()
	mem := metrics.NewMemoryMetrics()
	ropts := []runner.Option{
		runner.WithLogger(s.logger.WithFields(logging.RunIDField(runID))),
		runner.WithMetrics(mem),
		runner.WithConcurrency(s.cfg.Concurrency),
		runner.WithCaseTimeout(s.cfg.Timeout),
		runner.WithOutputCapture(s.cfg.Capture),
		runner.WithFilter(s.cfg.Filter),
	}
	if s.collector != nil {
		s.collector.Reset()
		ropts = append(ropts, runner.WithEventSink(s.collector.Sink()))
	}

	result, runErr := runner.New(ropts...).Run(ctx, reg)
	if runErr != nil {
		if scenario.IsConfiguration(runErr) || result == nil {
			return WrapExitError(ExitCommandError, "run", runErr)
		}
		s.logger.Warn("run_interrupted", logging.ErrorField(runErr))
	}
	if slowest := mem.Slowest(3); len(slowest) > 0 {
		s.logger.Debug("slowest_cases",
			logging.StringField("cases", strings.Join(slowest, ", ")),
		)
	}

	if err := s.writeReport(result, runID, started); err != nil {
		return WrapExitError(ExitCommandError, "write report", err)
	}
	// The run may have been interrupted; recording still happens.
	if err := s.record(
		context.WithoutCancel(ctx), result, runID, started,
	); err != nil {
		return WrapExitError(ExitCommandError, "record run", err)
	}

	if runErr != nil {
		return WrapExitError(ExitFailure, "run interrupted", runErr)
	}
	if !result.OK() {
		return NewExitError(ExitFailure,
			"run failed: "+report.CountsLine(result))
	}
	return nil
}

func (s *session) writeReport(
	result *scenario.RunResult,
	runID string,
	started time.Time,
) error {
	var ropts []report.Option
	if s.cfg.Format != report.FormatJSON || s.opts.Envelope {
		ropts = append(ropts,
			report.WithRunID(runID),
			report.WithGeneratedAt(started),
		)
	}
	rep, err := report.New(s.cfg.Format, ropts...)
	if err != nil {
		return err
	}
	if err := rep.Write(s.out, result); err != nil {
		return err
	}

	if s.opts.ReportDir != "" {
		saved, err := report.Save(result, s.opts.ReportDir, runID, started)
		if err != nil {
			return err
		}
		s.logger.Info("report_saved",
			logging.StringField("json", saved.JSONPath),
			logging.StringField("markdown", saved.MarkdownPath),
		)
	}
	return nil
}

// record appends the run to the JSON-lines history and the
// SQLite store, reporting regressions against the previous run
// of the same suite.
func (s *session) record(
	ctx context.Context,
	result *scenario.RunResult,
	runID string,
	started time.Time,
) error {
	suite := suiteLabel(s.cfg)

	if s.cfg.HistoryJSONL != "" {
		entry := report.NewHistoricalEntry(started, runID, suite, result)
		if err := report.AppendToHistory(s.cfg.HistoryJSONL, entry); err != nil {
			return err
		}
	}

	if s.store == nil {
		return nil
	}
	prev, err := s.store.Latest(ctx, suite)
	if err != nil && !errors.Is(err, history.ErrNoRuns) {
		return err
	}
	cur, err := s.store.Record(ctx, runID, suite, result)
	if err != nil {
		return err
	}
	if prev == nil {
		return nil
	}

	if prev.Fingerprint == cur.Fingerprint {
		fmt.Fprintf(s.errOut, "Result identical to previous run %s\n", prev.RunID)
		return nil
	}
	for _, name := range history.Regressions(prev.Result, result) {
		fmt.Fprintf(s.errOut, "Regression: %s\n", name)
	}
	return nil
}

// suiteLabel names the declarations of a run for the history:
// the built-in suites followed by the declaration paths.
func suiteLabel(cfg *config.Config) string {
	var parts []string
	switch {
	case len(cfg.Suites) > 0:
		parts = append(parts, cfg.Suites...)
	case cfg.Builtin:
		parts = append(parts, "builtin")
	}
	for _, p := range cfg.Paths {
		parts = append(parts, filepath.Clean(p))
	}
	return strings.Join(parts, ",")
}

// newLogger builds the console logger (verbose only) and the
// JSON file logger (when a logs directory is set).
func newLogger(cfg *config.Config, errOut io.Writer) (logging.Logger, error) {
	var loggers []logging.Logger
	if cfg.Verbose {
		loggers = append(loggers, logging.NewConsoleLogger(errOut, true))
	}
	if cfg.LogsDir != "" {
		jl, err := logging.NewJSONLogger(logging.LoggerConfig{
			OutputPath: filepath.Join(cfg.LogsDir, "run.log"),
			CaseLog:    filepath.Join(cfg.LogsDir, "cases.log"),
			Level:      cfg.Level(),
			Verbose:    cfg.Verbose,
		})
		if err != nil {
			return nil, err
		}
		loggers = append(loggers, jl)
	}
	return logging.Combine(loggers...), nil
}
