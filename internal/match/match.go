package match

// NA is written for any statistic the source page did not provide.
const NA = "N/A"

// TBD is used when a fixture has no kickoff time.
const TBD = "TBD"

// Schedule-level column names. They match the files written by earlier
// versions of the scraper, so existing CSVs keep working.
const (
	ColWeek       = "Wk"
	ColDay        = "Day"
	ColDate       = "Date"
	ColTime       = "Time"
	ColHome       = "Home"
	ColHomeTeamID = "Home_Team_ID"
	ColAway       = "Away"
	ColAwayTeamID = "Away_Team_ID"
	ColAttendance = "Attendance"
	ColVenue      = "Venue"
	ColReferee    = "Referee"
)

// ScheduleColumns is the fixed prefix of every persisted row.
var ScheduleColumns = []string{
	ColWeek, ColDay, ColDate, ColTime,
	ColHome, ColHomeTeamID, ColAway, ColAwayTeamID,
	ColAttendance, ColVenue, ColReferee,
}

// Stats maps a side-suffixed stat name (e.g. "shots_H") to its raw text value
type Stats map[string]string

// Record represents one played fixture
type Record struct {
	Week       string `json:"week"`
	Day        string `json:"day"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Home       string `json:"home"`
	HomeTeamID string `json:"home_team_id"`
	Away       string `json:"away"`
	AwayTeamID string `json:"away_team_id"`
	Attendance string `json:"attendance,omitempty"`
	Venue      string `json:"venue,omitempty"`
	Referee    string `json:"referee,omitempty"`

	// MatchURL points at the match report and is only used to fetch Stats.
	MatchURL string `json:"-"`

	Stats Stats `json:"-"`
}

// Key returns the identity of the fixture
func (r *Record) Key() Key {
	return Key{Date: r.Date, HomeTeamID: r.HomeTeamID, AwayTeamID: r.AwayTeamID}
}

// Merge copies stats into the record, overwriting existing names
func (r *Record) Merge(stats Stats) {
	if len(stats) == 0 {
		return
	}
	if r.Stats == nil {
		r.Stats = make(Stats, len(stats))
	}
	for k, v := range stats {
		r.Stats[k] = v
	}
}

// Value returns the value persisted under column. Unknown schedule columns are
// treated as stats, and stats the record does not carry resolve to NA.
func (r *Record) Value(column string) string {
	switch column {
	case ColWeek:
		return r.Week
	case ColDay:
		return r.Day
	case ColDate:
		return r.Date
	case ColTime:
		return r.Time
	case ColHome:
		return r.Home
	case ColHomeTeamID:
		return r.HomeTeamID
	case ColAway:
		return r.Away
	case ColAwayTeamID:
		return r.AwayTeamID
	case ColAttendance:
		return r.Attendance
	case ColVenue:
		return r.Venue
	case ColReferee:
		return r.Referee
	}
	if v, ok := r.Stats[column]; ok {
		return v
	}
	return NA
}

// Row renders the record in the given column order
func (r *Record) Row(columns []string) []string {
	row := make([]string, len(columns))
	for i, c := range columns {
		row[i] = r.Value(c)
	}
	return row
}

// Posted pairs a newly stored record with where it was stored
type Posted struct {
	League string  `json:"league"`
	Season string  `json:"season"`
	Match  *Record `json:"match"`
}
