package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fbref-matches/internal/match"
)

// Played implements Extractor. Only rows carrying a match report link are
// considered played; rows missing a date or either team link are reported in
// Skipped and do not stop the remaining rows.
func (f *FBref) Played(doc *goquery.Document, season string, leagueID int) Schedule {
	var out Schedule

	doc.Find(scheduleRows(season, leagueID)).Each(func(i int, row *goquery.Selection) {
		if row.Find(playedMarker).Length() == 0 {
			return
		}
		rec, err := f.parseRow(row)
		if err != nil {
			err.Row = i
			out.Skipped = append(out.Skipped, err)
			return
		}
		out.Matches = append(out.Matches, rec)
	})

	return out
}

func (f *FBref) parseRow(row *goquery.Selection) (*match.Record, *RowError) {
	home := row.Find(selHome).First()
	if home.Length() == 0 {
		return nil, &RowError{Reason: "missing home team link"}
	}
	away := row.Find(selAway).First()
	if away.Length() == 0 {
		return nil, &RowError{Reason: "missing away team link"}
	}
	date := row.Find(selDate).First()
	if date.Length() == 0 {
		return nil, &RowError{Reason: "missing match date"}
	}

	rec := &match.Record{
		Week:       text(row.Find(selWeek)),
		Day:        text(row.Find(selDay)),
		Date:       text(date),
		Time:       match.TBD,
		Home:       text(home),
		HomeTeamID: TeamID(home.AttrOr("href", "")),
		Away:       text(away),
		AwayTeamID: TeamID(away.AttrOr("href", "")),
		Attendance: text(row.Find(selAttendance)),
		Venue:      text(row.Find(selVenue)),
		Referee:    text(row.Find(selReferee)),
	}
	if t := row.Find(selTime); t.Length() > 0 {
		rec.Time = text(t)
	}
	if href, ok := row.Find(selReport).First().Attr("href"); ok && href != "" {
		rec.MatchURL = f.absolute(href)
	}

	return rec, nil
}

// TeamID returns the path segment following "squads" in a team profile link,
// e.g. "/en/squads/b8fd03ef/Manchester-City-Stats" -> "b8fd03ef". It returns
// "" when the link has no such segment.
func TeamID(href string) string {
	parts := strings.Split(href, "/")
	for i, p := range parts {
		if p == squadsSegment && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func (f *FBref) absolute(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return f.baseURL + href
	}
	return f.baseURL + "/" + href
}

// text returns the trimmed text of the first node in s
func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.First().Text())
}
