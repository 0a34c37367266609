package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/fbref-matches/internal/match"
)

var identityHeader = []string{"player", "shirtnumber", "nationality", "position", "age", "minutes"}

// statsTable renders a match-report stats table with the identity columns
// fbref puts in front of every category.
func statsTable(teamID, category string, labels, footer []string) string {
	var b strings.Builder
	b.WriteString(`<table id="stats_` + teamID + `_` + category + `"><thead>`)
	b.WriteString(`<tr><th colspan="6"></th><th colspan="4" class="over_header">Performance</th></tr><tr>`)
	for _, h := range append(append([]string{}, identityHeader...), labels...) {
		b.WriteString(`<th data-stat="` + h + `">` + h + `</th>`)
	}
	b.WriteString(`</tr></thead><tbody><tr><th data-stat="player">Someone</th></tr></tbody><tfoot><tr>`)
	b.WriteString(`<th data-stat="player">14 Players</th>`)
	for i := 0; i < footerIdentityCols; i++ {
		b.WriteString(`<td></td>`)
	}
	for _, v := range footer {
		b.WriteString(`<td>` + v + `</td>`)
	}
	b.WriteString(`</tr></tfoot></table>`)
	return b.String()
}

const teamStatsBlock = `
<div id="team_stats"><table><tbody>
<tr><th colspan="2">Arsenal vs Forest</th></tr>
<tr><th colspan="2">Possession</th></tr>
<tr><td><div><div><strong> 78% </strong></div></div></td><td><div><div><strong>22%</strong></div></div></td></tr>
</tbody></table></div>
<div id="team_stats_extra">
<div><div>Arsenal</div><div></div><div>Forest</div><div>4</div><div>Fouls</div><div>11</div><div>7</div></div>
<div><div>Arsenal</div><div></div><div>Forest</div><div>9</div><div>Offsides</div><div>2</div><div>3</div></div>
</div>`

func keeperTable(teamID, saves string) string {
	return `<table id="keeper_stats_` + teamID + `"><tbody><tr><th>Keeper</th><td>eng</td><td>25</td><td>90</td><td>3</td><td>1</td><td>` + saves + `</td></tr></tbody></table>`
}

func page(parts ...string) string {
	return "<html><body>" + strings.Join(parts, "\n") + "</body></html>"
}

func TestStats_CategoryAndStandalone(t *testing.T) {
	html := page(
		statsTable("18bb7c10", "summary", []string{"goals", "shots"}, []string{"2", "15"}),
		statsTable("e4a775cb", "summary", []string{"goals", "shots"}, []string{" 1 ", "6"}),
		teamStatsBlock,
		keeperTable("18bb7c10", "1"),
		keeperTable("e4a775cb", "4"),
	)

	got := NewFBref(testBase).Stats(mustDoc(t, html), "18bb7c10", "e4a775cb")

	assert.Equal(t, "2", got["goals_H"])
	assert.Equal(t, "1", got["goals_A"])
	assert.Equal(t, "15", got["shots_H"])
	assert.Equal(t, "6", got["shots_A"])

	assert.Equal(t, "78%", got["possession_H"])
	assert.Equal(t, "22%", got["possession_A"])
	assert.Equal(t, "7", got["corners_H"])
	assert.Equal(t, "3", got["corners_A"])
	assert.Equal(t, "1", got["saves_H"])
	assert.Equal(t, "4", got["saves_A"])

	_, hasIdentity := got["minutes_H"]
	assert.False(t, hasIdentity, "identity columns must be skipped")
}

func TestStats_MissingCategoryIsNA(t *testing.T) {
	html := page(statsTable("h", "summary", []string{"goals"}, []string{"3"}))

	got := NewFBref(testBase).Stats(mustDoc(t, html), "h", "a")

	for _, label := range knownLabels["defense"] {
		assert.Equal(t, match.NA, got[label+"_H"], label)
		assert.Equal(t, match.NA, got[label+"_A"], label)
	}
	assert.Equal(t, "3", got["goals_H"])
	assert.Equal(t, match.NA, got["goals_A"], "away summary table is absent")
	assert.Equal(t, match.NA, got["possession_H"])
	assert.Equal(t, match.NA, got["corners_A"])
	assert.Equal(t, match.NA, got["saves_H"])
}

func TestStats_ShortFooter(t *testing.T) {
	html := page(
		statsTable("h", "misc", []string{"fouls", "fouled", "offsides"}, []string{"10", "8"}),
		statsTable("a", "misc", []string{"fouls", "fouled", "offsides"}, nil),
	)

	got := NewFBref(testBase).Stats(mustDoc(t, html), "h", "a")

	assert.Equal(t, "10", got["fouls_H"])
	assert.Equal(t, "8", got["fouled_H"])
	assert.Equal(t, match.NA, got["offsides_H"])
	assert.Equal(t, match.NA, got["fouls_A"])
}

func TestStats_LaterCategoryOverwritesSharedLabel(t *testing.T) {
	html := page(
		statsTable("h", "summary", []string{"passes_completed"}, []string{"10"}),
		statsTable("a", "summary", []string{"passes_completed"}, []string{"20"}),
		statsTable("h", "passing", []string{"passes_completed"}, []string{"11"}),
		statsTable("a", "passing", []string{"passes_completed"}, []string{"21"}),
	)

	got := NewFBref(testBase).Stats(mustDoc(t, html), "h", "a")

	// passing_types is absent and must not reset the value to N/A.
	assert.Equal(t, "11", got["passes_completed_H"])
	assert.Equal(t, "21", got["passes_completed_A"])
}

func TestStatColumns(t *testing.T) {
	cols := NewFBref(testBase).StatColumns()

	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		require.False(t, seen[c], "duplicate column %s", c)
		seen[c] = true
	}

	assert.Equal(t, []string{"goals_H", "goals_A"}, cols[:2])
	assert.Equal(t, standaloneColumns, cols[len(cols)-len(standaloneColumns):])
	for _, cat := range Categories {
		for _, label := range knownLabels[cat] {
			assert.True(t, seen[label+"_H"], label)
		}
	}

	cols[0] = "mutated"
	assert.Equal(t, "goals_H", NewFBref(testBase).StatColumns()[0])
}

func TestStats_ProducesOnlyCanonicalColumns(t *testing.T) {
	f := NewFBref(testBase)
	got := f.Stats(mustDoc(t, page()), "h", "a")

	cols := f.StatColumns()
	assert.Len(t, got, len(cols))
	for _, c := range cols {
		assert.Equal(t, match.NA, got[c], c)
	}
}
