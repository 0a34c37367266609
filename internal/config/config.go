// Package config describes which leagues and seasons to scrape and where the
// results go.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the site every schedule URL is built on
	DefaultBaseURL = "https://fbref.com"
	// DefaultDelay is the pause after each league season
	DefaultDelay = 3200 * time.Millisecond
	// DefaultOutputDir is where the per-league folders are created
	DefaultOutputDir = "."
)

// League is a competition as identified on fbref
type League struct {
	Name string `yaml:"name"`
	ID   int    `yaml:"id"`
}

// Config holds the run configuration
type Config struct {
	BaseURL       string        `yaml:"base_url"`
	Leagues       []League      `yaml:"leagues"`
	Seasons       []string      `yaml:"seasons"`
	Delay         time.Duration `yaml:"delay"`
	Timeout       time.Duration `yaml:"timeout"`
	OutputDir     string        `yaml:"output_dir"`
	UserAgent     string        `yaml:"user_agent"`
	RespectRobots bool          `yaml:"respect_robots"`
}

// Default returns the built-in configuration: the five major European
// leagues over six seasons, newest first.
func Default() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		Leagues: []League{
			{Name: "La Liga", ID: 12},
			{Name: "Premier League", ID: 9},
			{Name: "Serie A", ID: 11},
			{Name: "Ligue 1", ID: 13},
			{Name: "Bundesliga", ID: 20},
		},
		Seasons:   []string{"2023-2024", "2022-2023", "2021-2022", "2020-2021", "2019-2020", "2018-2019"},
		Delay:     DefaultDelay,
		OutputDir: DefaultOutputDir,
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values; a leagues or seasons list in the file replaces the
// default list entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the scraper cannot work with
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.BaseURL) == "" {
		errs = append(errs, errors.New("base_url is required"))
	}
	if len(c.Leagues) == 0 {
		errs = append(errs, errors.New("at least one league is required"))
	}
	seen := make(map[string]bool, len(c.Leagues))
	for i, l := range c.Leagues {
		if strings.TrimSpace(l.Name) == "" {
			errs = append(errs, fmt.Errorf("league %d: name is required", i))
		}
		if l.ID <= 0 {
			errs = append(errs, fmt.Errorf("league %q: id must be positive", l.Name))
		}
		if seen[l.Name] {
			errs = append(errs, fmt.Errorf("league %q: duplicate name", l.Name))
		}
		seen[l.Name] = true
	}
	if len(c.Seasons) == 0 {
		errs = append(errs, errors.New("at least one season is required"))
	}
	for _, s := range c.Seasons {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, errors.New("season must not be empty"))
		}
	}
	if c.Delay < 0 {
		errs = append(errs, errors.New("delay must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Filter narrows the configuration to the named leagues and seasons. Empty
// arguments keep everything. Order follows the configuration, not the
// arguments.
func (c *Config) Filter(leagues, seasons []string) error {
	if len(leagues) > 0 {
		kept, err := filterLeagues(c.Leagues, leagues)
		if err != nil {
			return err
		}
		c.Leagues = kept
	}
	if len(seasons) > 0 {
		kept, err := filterStrings(c.Seasons, seasons)
		if err != nil {
			return err
		}
		c.Seasons = kept
	}
	return nil
}

func filterLeagues(all []League, names []string) ([]League, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(strings.TrimSpace(n))] = true
	}
	var out []League
	for _, l := range all {
		key := strings.ToLower(l.Name)
		if want[key] {
			out = append(out, l)
			delete(want, key)
		}
	}
	if len(want) > 0 {
		return nil, fmt.Errorf("unknown league(s): %s", strings.Join(sortedKeys(want), ", "))
	}
	return out, nil
}

func filterStrings(all, names []string) ([]string, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.TrimSpace(n)] = true
	}
	var out []string
	for _, s := range all {
		if want[s] {
			out = append(out, s)
			delete(want, s)
		}
	}
	if len(want) > 0 {
		return nil, fmt.Errorf("unknown season(s): %s", strings.Join(sortedKeys(want), ", "))
	}
	return out, nil
}

// ScheduleURL builds the "Scores & Fixtures" page URL of a league season
func (c *Config) ScheduleURL(l League, season string) string {
	slug := strings.ReplaceAll(l.Name, " ", "-")
	return fmt.Sprintf("%s/en/comps/%d/%s/schedule/%s-Scores-and-Fixtures",
		strings.TrimRight(c.BaseURL, "/"), l.ID, season, slug)
}
