package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/fbref-matches/internal/logger"
	"github.com/pfrederiksen/fbref-matches/internal/match"
	"github.com/pfrederiksen/fbref-matches/internal/runner"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt  time.Time             `json:"checked_at"`
	Seasons    []runner.SeasonResult `json:"seasons"`
	NewMatches []*match.Posted       `json:"new_matches"`
	MatchCount int                   `json:"match_count"`
	Metrics    logger.Snapshot       `json:"metrics"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult) error {
	for _, s := range result.Seasons {
		if s.Error != "" {
			fmt.Fprintf(w, "%s %s: failed: %s\n", s.League, s.Season, s.Error)
			continue
		}
		fmt.Fprintf(w, "%s %s: %d added, %d already stored", s.League, s.Season, s.Added, s.Skipped)
		if s.Invalid > 0 {
			fmt.Fprintf(w, ", %d unreadable", s.Invalid)
		}
		fmt.Fprintln(w)
	}

	if result.MatchCount == 0 {
		fmt.Fprintln(w, "\nNo new matches found.")
		return nil
	}

	fmt.Fprintln(w)
	for _, p := range result.NewMatches {
		fmt.Fprintf(w, "NEW (%s %s): %s %s vs %s\n", p.League, p.Season, p.Match.Date, p.Match.Home, p.Match.Away)
	}
	fmt.Fprintf(w, "\nTotal: %d new matches across %d seasons\n", result.MatchCount, len(result.Seasons))
	return nil
}
