package extract

import "fmt"

// MarkupVersion identifies the fbref page layout the selectors below target.
const MarkupVersion = "fbref-2024"

// Schedule page.
const (
	playedMarker  = "td.center > a"
	selWeek       = "th"
	selDay        = "td:nth-child(2)"
	selDate       = "td:nth-child(3) > a"
	selTime       = "td:nth-child(4) > span.venuetime"
	selHome       = "td:nth-child(5) > a"
	selAway       = "td:nth-child(9) > a"
	selAttendance = "td:nth-child(10)"
	selVenue      = "td:nth-child(11)"
	selReferee    = "td:nth-child(12)"
	selReport     = "td:nth-child(13) > a"

	squadsSegment = "squads"
)

func scheduleRows(season string, leagueID int) string {
	return fmt.Sprintf("#sched_%s_%d_1 > tbody > tr", season, leagueID)
}

// Match report page.
const (
	// Per-player identity columns (player, shirt number, nation, position,
	// age, minutes) lead every header row; the footer has one fewer because
	// its label sits in a th.
	headerIdentityCols = 6
	footerIdentityCols = 5

	selPossessionH = "#team_stats > table > tbody > tr:nth-child(3) > td:nth-child(1) > div > div:nth-child(1) > strong"
	selPossessionA = "#team_stats > table > tbody > tr:nth-child(3) > td:nth-child(2) > div > div:nth-child(1) > strong"
	selCornersH    = "#team_stats_extra > div:nth-child(1) > div:nth-child(7)"
	selCornersA    = "#team_stats_extra > div:nth-child(2) > div:nth-child(7)"
)

func statHeader(teamID, category string) string {
	return fmt.Sprintf("#stats_%s_%s > thead > tr:nth-child(2) > th[data-stat]", teamID, category)
}

func statFooter(teamID, category string) string {
	return fmt.Sprintf("#stats_%s_%s > tfoot > tr > td", teamID, category)
}

func keeperSaves(teamID string) string {
	return fmt.Sprintf("#keeper_stats_%s > tbody > tr > td:nth-child(7)", teamID)
}

// Categories lists the per-team stat tables in the order they are read.
var Categories = []string{"summary", "passing", "passing_types", "defense", "possession", "misc"}

// knownLabels are the data-stat names each category exposes after the
// identity columns. They form the canonical column set and fill in for a
// category whose tables are missing from a page.
var knownLabels = map[string][]string{
	"summary": {
		"goals", "assists", "pens_made", "pens_att", "shots", "shots_on_target",
		"cards_yellow", "cards_red", "touches", "tackles", "interceptions", "blocks",
		"xg", "npxg", "xg_assist", "sca", "gca", "passes_completed", "passes",
		"passes_pct", "progressive_passes", "carries", "progressive_carries",
		"take_ons", "take_ons_won",
	},
	"passing": {
		"passes_completed", "passes", "passes_pct", "passes_total_distance",
		"passes_progressive_distance", "passes_completed_short", "passes_short",
		"passes_pct_short", "passes_completed_medium", "passes_medium",
		"passes_pct_medium", "passes_completed_long", "passes_long", "passes_pct_long",
		"assists", "xg_assist", "pass_xa", "assisted_shots", "passes_into_final_third",
		"passes_into_penalty_area", "crosses_into_penalty_area", "progressive_passes",
	},
	"passing_types": {
		"passes", "passes_live", "passes_dead", "passes_free_kicks", "through_balls",
		"passes_switches", "crosses", "throw_ins", "corner_kicks", "corner_kicks_in",
		"corner_kicks_out", "corner_kicks_straight", "passes_completed",
		"passes_offsides", "passes_blocked",
	},
	"defense": {
		"tackles", "tackles_won", "tackles_def_3rd", "tackles_mid_3rd",
		"tackles_att_3rd", "challenge_tackles", "challenges", "challenge_tackles_pct",
		"challenges_lost", "blocks", "blocked_shots", "blocked_passes", "interceptions",
		"tackles_interceptions", "clearances", "errors",
	},
	"possession": {
		"touches", "touches_def_pen_area", "touches_def_3rd", "touches_mid_3rd",
		"touches_att_3rd", "touches_att_pen_area", "touches_live_ball", "take_ons",
		"take_ons_won", "take_ons_won_pct", "take_ons_tackled", "take_ons_tackled_pct",
		"carries", "carries_distance", "carries_progressive_distance",
		"progressive_carries", "carries_into_final_third", "carries_into_penalty_area",
		"miscontrols", "dispossessed", "passes_received", "progressive_passes_received",
	},
	"misc": {
		"cards_yellow", "cards_red", "cards_yellow_red", "fouls", "fouled", "offsides",
		"crosses", "interceptions", "tackles_won", "pens_won", "pens_conceded",
		"own_goals", "ball_recoveries", "aerials_won", "aerials_lost", "aerials_won_pct",
	},
}

// Standalone team-level fields, always emitted after the category stats.
var standaloneColumns = []string{
	"possession_H", "possession_A",
	"corners_H", "corners_A",
	"saves_H", "saves_A",
}

const (
	homeSuffix = "_H"
	awaySuffix = "_A"
)
