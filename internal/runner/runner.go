package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/fbref-matches/internal/config"
	"github.com/pfrederiksen/fbref-matches/internal/extract"
	"github.com/pfrederiksen/fbref-matches/internal/logger"
	"github.com/pfrederiksen/fbref-matches/internal/match"
	"github.com/pfrederiksen/fbref-matches/internal/storage"
)

// Metric names recorded during a run
const (
	MetricAdded         = "matches.added"
	MetricSkipped       = "matches.skipped"
	MetricInvalid       = "rows.invalid"
	MetricFetchFailed   = "fetch.failed"
	MetricFetchSchedule = "fetch.schedule"
	MetricFetchMatch    = "fetch.match"
)

// Fetcher retrieves and parses a page
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// SeasonResult is the outcome of one league season
type SeasonResult struct {
	League  string `json:"league"`
	Season  string `json:"season"`
	Played  int    `json:"played"`
	Added   int    `json:"added"`
	Skipped int    `json:"skipped"`
	Invalid int    `json:"invalid"`
	Error   string `json:"error,omitempty"`
}

// Summary is the outcome of a whole run
type Summary struct {
	Seasons []SeasonResult  `json:"seasons"`
	Added   []*match.Posted `json:"added"`
	Metrics logger.Snapshot `json:"metrics"`
}

// TotalAdded returns the number of records appended over all seasons
func (s *Summary) TotalAdded() int {
	return len(s.Added)
}

// Runner drives one scrape over a configuration
type Runner struct {
	cfg       *config.Config
	fetcher   Fetcher
	extractor extract.Extractor
	store     storage.Store
	log       *logger.Logger
	metrics   *logger.Metrics
	sleep     func(ctx context.Context, d time.Duration) error
	columns   map[string]bool
}

// New creates a runner. A nil log uses the default logger.
func New(cfg *config.Config, fetcher Fetcher, extractor extract.Extractor, store storage.Store, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Default()
	}
	columns := make(map[string]bool)
	for _, c := range extractor.StatColumns() {
		columns[c] = true
	}
	return &Runner{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
		log:       log,
		metrics:   logger.NewMetrics(),
		sleep:     sleep,
		columns:   columns,
	}
}

// Metrics returns the run metrics
func (r *Runner) Metrics() *logger.Metrics {
	return r.metrics
}

// Run processes every configured league season in order. It returns early,
// with the partial summary, only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}
	defer func() { sum.Metrics = r.metrics.Snapshot() }()

	for _, league := range r.cfg.Leagues {
		for _, season := range r.cfg.Seasons {
			if err := ctx.Err(); err != nil {
				return sum, err
			}

			res, added := r.season(ctx, league, season)
			sum.Seasons = append(sum.Seasons, res)
			sum.Added = append(sum.Added, added...)

			if err := ctx.Err(); err != nil {
				return sum, err
			}
			if err := r.sleep(ctx, r.cfg.Delay); err != nil {
				return sum, err
			}
		}
	}
	return sum, nil
}

func (r *Runner) season(ctx context.Context, league config.League, season string) (SeasonResult, []*match.Posted) {
	res := SeasonResult{League: league.Name, Season: season}
	fields := logger.Fields{"league": league.Name, "season": season}

	r.log.Info(fmt.Sprintf("Processing %s for the %s season", league.Name, season), fields)

	url := r.cfg.ScheduleURL(league, season)
	r.log.Debug("Fetching schedule", logger.Fields{"league": league.Name, "season": season, "url": url})
	start := time.Now()
	doc, err := r.fetcher.Fetch(ctx, url)
	r.metrics.RecordTiming(MetricFetchSchedule, time.Since(start))
	if err != nil {
		r.metrics.IncrCounter(MetricFetchFailed)
		r.log.Error("Failed to fetch schedule", logger.Fields{"league": league.Name, "season": season, "url": url}, err)
		res.Error = err.Error()
		return res, nil
	}

	sched := r.extractor.Played(doc, season, league.ID)
	res.Played = len(sched.Matches)
	res.Invalid = len(sched.Skipped)
	for _, rowErr := range sched.Skipped {
		r.metrics.IncrCounter(MetricInvalid)
		r.log.Warn("Skipping unreadable schedule row", logger.Fields{
			"league": league.Name,
			"season": season,
			"row":    rowErr.Row,
			"reason": rowErr.Reason,
		})
	}

	if err := r.store.Prepare(league.Name, season); err != nil {
		r.log.Error("Failed to prepare storage", fields, err)
		res.Error = err.Error()
		return res, nil
	}

	// Without the existing keys every match would look new.
	known, err := r.store.LoadKeys(league.Name, season)
	if err != nil {
		r.log.Error("Failed to load stored matches, skipping season", fields, err)
		res.Error = err.Error()
		return res, nil
	}
	r.log.Debug("Loaded stored matches", logger.Fields{"league": league.Name, "season": season, "stored": known.Len()})

	var added []*match.Posted
	for _, rec := range sched.Matches {
		if ctx.Err() != nil {
			break
		}

		key := rec.Key()
		if known.Has(key) {
			res.Skipped++
			r.metrics.IncrCounter(MetricSkipped)
			r.log.Info(fmt.Sprintf("Match on %s between %s and %s already has data, skipping", rec.Date, rec.Home, rec.Away), fields)
			continue
		}

		rec.Merge(r.stats(ctx, rec))
		rec.MatchURL = ""

		if err := r.store.Append(league.Name, season, rec); err != nil {
			r.log.Error("Failed to store match", logger.Fields{
				"league": league.Name,
				"season": season,
				"match":  key.String(),
			}, err)
			continue
		}
		known.Add(key)

		res.Added++
		r.metrics.IncrCounter(MetricAdded)
		added = append(added, &match.Posted{League: league.Name, Season: season, Match: rec})
		r.log.Info(fmt.Sprintf("Added stats for %s vs %s on %s", rec.Home, rec.Away, rec.Date), fields)
	}

	return res, added
}

// stats fetches the match report of rec. A failed fetch yields no stats so
// the fixture is still stored.
func (r *Runner) stats(ctx context.Context, rec *match.Record) match.Stats {
	if rec.MatchURL == "" {
		return nil
	}

	r.log.Debug("Fetching match report", logger.Fields{"url": rec.MatchURL})
	start := time.Now()
	doc, err := r.fetcher.Fetch(ctx, rec.MatchURL)
	r.metrics.RecordTiming(MetricFetchMatch, time.Since(start))
	if err != nil {
		r.metrics.IncrCounter(MetricFetchFailed)
		r.log.Error("Failed to fetch match report", logger.Fields{"url": rec.MatchURL}, err)
		return nil
	}

	stats := r.extractor.Stats(doc, rec.HomeTeamID, rec.AwayTeamID)
	for name := range stats {
		if !r.columns[name] {
			r.log.Warn("Statistic not in the stored columns", logger.Fields{"stat": name, "url": rec.MatchURL})
		}
	}
	return stats
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
