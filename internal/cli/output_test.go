package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/fbref-matches/internal/match"
	"github.com/pfrederiksen/fbref-matches/internal/runner"
)

func sampleResult() *OutputResult {
	return &OutputResult{
		CheckedAt: time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC),
		Seasons: []runner.SeasonResult{
			{League: "Premier League", Season: "2023-2024", Played: 3, Added: 1, Skipped: 2, Invalid: 1},
			{League: "La Liga", Season: "2023-2024", Error: "unexpected status code 429"},
		},
		NewMatches: []*match.Posted{{
			League: "Premier League",
			Season: "2023-2024",
			Match:  &match.Record{Date: "2024-05-19", Home: "Manchester City", Away: "West Ham"},
		}},
		MatchCount: 1,
	}
}

func TestWriteOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Premier League 2023-2024: 1 added, 2 already stored, 1 unreadable",
		"La Liga 2023-2024: failed: unexpected status code 429",
		"NEW (Premier League 2023-2024): 2024-05-19 Manchester City vs West Ham",
		"Total: 1 new matches across 2 seasons",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\ngot:\n%s", want, out)
		}
	}
}

func TestWriteOutput_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, &OutputResult{}, FormatText); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No new matches found.") {
		t.Errorf("output = %q, want no-matches message", buf.String())
	}
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatJSON); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got["match_count"] != float64(1) {
		t.Errorf("match_count = %v, want 1", got["match_count"])
	}
	matches := got["new_matches"].([]interface{})
	m := matches[0].(map[string]interface{})["match"].(map[string]interface{})
	if m["home"] != "Manchester City" {
		t.Errorf("home = %v, want Manchester City", m["home"])
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	if err := WriteOutput(&bytes.Buffer{}, sampleResult(), OutputFormat("xml")); err == nil {
		t.Error("WriteOutput() error = nil, want error")
	}
}
