package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pfrederiksen/fbref-matches/internal/config"
	"github.com/pfrederiksen/fbref-matches/internal/extract"
	"github.com/pfrederiksen/fbref-matches/internal/logger"
	"github.com/pfrederiksen/fbref-matches/internal/match"
	"github.com/pfrederiksen/fbref-matches/internal/notifier"
	"github.com/pfrederiksen/fbref-matches/internal/runner"
	"github.com/pfrederiksen/fbref-matches/internal/scraper"
	"github.com/pfrederiksen/fbref-matches/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Store backends
const (
	StoreCSV    = "csv"
	StoreSQLite = "sqlite"
)

// Notification modes
const (
	NotifyNone    = "none"
	NotifyDryRun  = "dry-run"
	NotifyTwitter = "twitter"
)

type options struct {
	configPath    string
	outputDir     string
	baseURL       string
	leagues       []string
	seasons       []string
	delay         time.Duration
	timeout       time.Duration
	userAgent     string
	respectRobots bool

	store      string
	sqlitePath string

	notify   string
	maxPosts int

	logLevel  string
	logFormat string
	format    string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fbref-matches",
		Short: "Append newly played fbref matches to per-season files",
		Long: `A CLI tool that scrapes fbref.com league schedules and match reports.
Each played fixture not yet stored is appended with its team statistics,
so reruns only fetch what is new.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	f.StringVar(&opts.outputDir, "output-dir", config.DefaultOutputDir, "Directory holding the per-league CSV folders")
	f.StringVar(&opts.baseURL, "base-url", config.DefaultBaseURL, "Site base URL")
	f.StringSliceVar(&opts.leagues, "league", nil, "Only scrape this league (repeatable)")
	f.StringSliceVar(&opts.seasons, "season", nil, "Only scrape this season, e.g. 2023-2024 (repeatable)")
	f.DurationVar(&opts.delay, "delay", config.DefaultDelay, "Pause after each league season")
	f.DurationVar(&opts.timeout, "timeout", scraper.Timeout, "HTTP request timeout")
	f.StringVar(&opts.userAgent, "user-agent", scraper.UserAgent, "User-Agent header")
	f.BoolVar(&opts.respectRobots, "respect-robots", false, "Skip URLs disallowed by robots.txt")
	f.StringVar(&opts.store, "store", StoreCSV, "Storage backend: csv or sqlite")
	f.StringVar(&opts.sqlitePath, "sqlite-path", "fbref-matches.db", "Database file for --store sqlite")
	f.StringVar(&opts.notify, "notify", NotifyNone, "Announce new matches: none, dry-run or twitter")
	f.IntVar(&opts.maxPosts, "max-posts", 0, "Maximum announcements per run (0 for no limit)")
	f.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	f.StringVar(&opts.logFormat, "log-format", string(logger.FormatJSON), "Log format: json or text")
	f.StringVar(&opts.format, "format", string(FormatText), "Summary format: text or json")

	return cmd
}

// run is the main command logic
func run(cmd *cobra.Command, opts *options) error {
	// Credentials for the Twitter notifier may live in .env
	_ = godotenv.Load()

	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logFormat := logger.Format(strings.ToLower(opts.logFormat))
	if logFormat != logger.FormatJSON && logFormat != logger.FormatText {
		return fmt.Errorf("invalid log format: %s (must be 'json' or 'text')", opts.logFormat)
	}
	log := logger.New(level, logFormat, cmd.ErrOrStderr())
	logger.SetDefault(log)

	cfg, err := buildConfig(opts, cmd.Flags())
	if err != nil {
		return err
	}

	note, err := newNotifier(opts, cmd)
	if err != nil {
		return err
	}

	ex := extract.NewFBref(cfg.BaseURL)
	columns := append(append([]string{}, match.ScheduleColumns...), ex.StatColumns()...)

	store, closeStore, err := openStore(opts, cfg, columns)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer logClose(log, opts.store, closeStore)

	fetcher := scraper.New(scraper.Options{
		UserAgent:     cfg.UserAgent,
		Timeout:       cfg.Timeout,
		RespectRobots: cfg.RespectRobots,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting scrape", logger.Fields{
		"leagues": len(cfg.Leagues),
		"seasons": len(cfg.Seasons),
		"store":   opts.store,
		"markup":  extract.MarkupVersion,
	})

	r := runner.New(cfg, fetcher, ex, store, log)
	sum, runErr := r.Run(ctx)
	m := r.Metrics()
	log.Info("Scrape finished", logger.Fields{
		"added":        m.Counter(runner.MetricAdded),
		"skipped":      m.Counter(runner.MetricSkipped),
		"invalid_rows": m.Counter(runner.MetricInvalid),
		"fetch_failed": m.Counter(runner.MetricFetchFailed),
	})

	if runErr == nil && note != nil && len(sum.Added) > 0 {
		if err := note.Notify(ctx, notifier.Limit(sum.Added, opts.maxPosts)); err != nil {
			log.Error("Failed to send notifications", nil, err)
			runErr = fmt.Errorf("sending notifications: %w", err)
		}
	}

	result := &OutputResult{
		CheckedAt:  time.Now().UTC(),
		Seasons:    sum.Seasons,
		NewMatches: sum.Added,
		MatchCount: sum.TotalAdded(),
		Metrics:    sum.Metrics,
	}
	if err := WriteOutput(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return runErr
}

// buildConfig loads the configuration file (or the defaults) and applies the
// flags the user set explicitly
func buildConfig(opts *options, flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("delay") {
		cfg.Delay = opts.delay
	}
	if flags.Changed("timeout") || cfg.Timeout == 0 {
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("user-agent") || cfg.UserAgent == "" {
		cfg.UserAgent = opts.userAgent
	}
	if flags.Changed("respect-robots") {
		cfg.RespectRobots = opts.respectRobots
	}

	if err := cfg.Filter(opts.leagues, opts.seasons); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openStore(opts *options, cfg *config.Config, columns []string) (storage.Store, func() error, error) {
	switch strings.ToLower(opts.store) {
	case StoreCSV:
		s, err := storage.NewCSV(cfg.OutputDir, columns)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	case StoreSQLite:
		s, err := storage.NewSQLite(opts.sqlitePath, columns)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("invalid store: %s (must be 'csv' or 'sqlite')", opts.store)
	}
}

// logClose runs closeFn and logs a failure, as nothing is left to return it to
func logClose(log *logger.Logger, store string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Error("Failed to close storage", logger.Fields{"store": store}, err)
	}
}

func newNotifier(opts *options, cmd *cobra.Command) (notifier.Notifier, error) {
	switch strings.ToLower(opts.notify) {
	case NotifyNone, "":
		return nil, nil
	case NotifyDryRun:
		return notifier.NewDryRunNotifier(cmd.ErrOrStderr()), nil
	case NotifyTwitter:
		n, err := notifier.NewTwitterNotifier()
		if err != nil {
			return nil, fmt.Errorf("initializing twitter notifier: %w", err)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("invalid notify mode: %s (must be 'none', 'dry-run' or 'twitter')", opts.notify)
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
