// Package storage persists match records, one collection per league season.
//
// CSVStore writes one file per league season under
// {root}/{League_Name}/{League Name}_{season}_matches.csv and appends a row
// per new match; the file's accumulated rows are the only resume state.
// SQLiteStore keeps the same data in a single SQLite database.
package storage
