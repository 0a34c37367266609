package storage

import (
	"database/sql"
	"fmt"

	"github.com/pfrederiksen/fbref-matches/internal/match"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS matches (
	league       TEXT NOT NULL,
	season       TEXT NOT NULL,
	week         TEXT,
	day          TEXT,
	date         TEXT NOT NULL,
	time         TEXT,
	home         TEXT,
	home_team_id TEXT NOT NULL,
	away         TEXT,
	away_team_id TEXT NOT NULL,
	attendance   TEXT,
	venue        TEXT,
	referee      TEXT,
	PRIMARY KEY (league, season, date, home_team_id, away_team_id)
);
CREATE TABLE IF NOT EXISTS match_stats (
	league       TEXT NOT NULL,
	season       TEXT NOT NULL,
	date         TEXT NOT NULL,
	home_team_id TEXT NOT NULL,
	away_team_id TEXT NOT NULL,
	name         TEXT NOT NULL,
	value        TEXT,
	PRIMARY KEY (league, season, date, home_team_id, away_team_id, name)
);
CREATE INDEX IF NOT EXISTS idx_matches_league_season ON matches (league, season);
`

// SQLiteStore keeps all league seasons in one SQLite database. Schedule
// fields live in the matches table, statistics in match_stats as name/value
// pairs.
type SQLiteStore struct {
	db      *sql.DB
	columns []string
}

// NewSQLite opens (creating if needed) the database at path. columns lists
// the stat columns written for every record; schedule columns in it are ignored.
func NewSQLite(path string, columns []string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	// A single connection keeps writes serialized on one SQLite handle.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	schedule := make(map[string]bool, len(match.ScheduleColumns))
	for _, c := range match.ScheduleColumns {
		schedule[c] = true
	}
	var stats []string
	for _, c := range columns {
		if !schedule[c] {
			stats = append(stats, c)
		}
	}

	return &SQLiteStore{db: db, columns: stats}, nil
}

// Close releases the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Prepare is a no-op; tables are created when the store is opened
func (s *SQLiteStore) Prepare(league, season string) error {
	return nil
}

// LoadKeys returns the keys stored for a league season
func (s *SQLiteStore) LoadKeys(league, season string) (match.KeySet, error) {
	rows, err := s.db.Query(
		`SELECT date, home_team_id, away_team_id FROM matches WHERE league = ? AND season = ?`,
		league, season)
	if err != nil {
		return nil, fmt.Errorf("querying keys: %w", err)
	}
	defer rows.Close()

	keys := match.NewKeySet()
	for rows.Next() {
		var k match.Key
		if err := rows.Scan(&k.Date, &k.HomeTeamID, &k.AwayTeamID); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys.Add(k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating keys: %w", err)
	}
	return keys, nil
}

// Append inserts the record and its stats in one transaction
func (s *SQLiteStore) Append(league, season string, rec *match.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO matches
		(league, season, week, day, date, time, home, home_team_id, away, away_team_id, attendance, venue, referee)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		league, season, rec.Week, rec.Day, rec.Date, rec.Time, rec.Home, rec.HomeTeamID,
		rec.Away, rec.AwayTeamID, rec.Attendance, rec.Venue, rec.Referee)
	if err != nil {
		return fmt.Errorf("inserting match %s: %w", rec.Key(), err)
	}

	stmt, err := tx.Prepare(`INSERT INTO match_stats
		(league, season, date, home_team_id, away_team_id, name, value)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing stats insert: %w", err)
	}
	defer stmt.Close()

	for _, name := range s.columns {
		if _, err := stmt.Exec(league, season, rec.Date, rec.HomeTeamID, rec.AwayTeamID, name, rec.Value(name)); err != nil {
			return fmt.Errorf("inserting stat %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing match %s: %w", rec.Key(), err)
	}
	return nil
}

// storedStats returns the stored stats of one fixture
func (s *SQLiteStore) storedStats(league, season string, key match.Key) (match.Stats, error) {
	rows, err := s.db.Query(`SELECT name, value FROM match_stats
		WHERE league = ? AND season = ? AND date = ? AND home_team_id = ? AND away_team_id = ?`,
		league, season, key.Date, key.HomeTeamID, key.AwayTeamID)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	stats := make(match.Stats)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning stat: %w", err)
		}
		stats[name] = value
	}
	return stats, rows.Err()
}
