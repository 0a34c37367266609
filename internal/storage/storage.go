package storage

import "github.com/pfrederiksen/fbref-matches/internal/match"

// Store persists records and answers which fixtures are already stored
type Store interface {
	// Prepare makes sure the collection for a league season can be written.
	// It is idempotent.
	Prepare(league, season string) error
	// LoadKeys returns the keys of every stored record of a league season.
	// A collection that does not exist yet yields an empty set.
	LoadKeys(league, season string) (match.KeySet, error)
	// Append stores one record
	Append(league, season string, rec *match.Record) error
}
