// Package match defines the scraped fixture record and its identity key.
//
// A Record is built from one played row of a league schedule, enriched with the
// team statistics from the match report, and then persisted once. Records are
// never updated after they are written; the Key (date, home team id, away team
// id) is what later runs use to recognise a fixture they already stored.
package match
