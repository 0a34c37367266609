package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fbref-matches/internal/match"
)

// Extractor reads fixtures and team statistics out of parsed pages
type Extractor interface {
	// Played returns the completed fixtures listed on a league schedule page
	Played(doc *goquery.Document, season string, leagueID int) Schedule
	// Stats returns the side-suffixed team statistics of a match report page
	Stats(doc *goquery.Document, homeID, awayID string) match.Stats
	// StatColumns returns every stat column Stats can produce, in persisted order
	StatColumns() []string
}

// Schedule is the outcome of reading one schedule page
type Schedule struct {
	Matches []*match.Record
	Skipped []*RowError
}

// RowError describes a played row that could not be turned into a record
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("schedule row %d: %s", e.Row, e.Reason)
}

// FBref extracts data from fbref.com pages
type FBref struct {
	baseURL string
	columns []string
}

// NewFBref creates an extractor; baseURL prefixes relative match report links
func NewFBref(baseURL string) *FBref {
	return &FBref{
		baseURL: strings.TrimRight(baseURL, "/"),
		columns: canonicalColumns(),
	}
}

// StatColumns implements Extractor
func (f *FBref) StatColumns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// canonicalColumns is the union of known labels in first-seen order, home
// before away, followed by the standalone fields.
func canonicalColumns() []string {
	seen := make(map[string]bool)
	var cols []string
	for _, cat := range Categories {
		for _, label := range knownLabels[cat] {
			if seen[label] {
				continue
			}
			seen[label] = true
			cols = append(cols, label+homeSuffix, label+awaySuffix)
		}
	}
	return append(cols, standaloneColumns...)
}
