package match

import "fmt"

// Key identifies a fixture within one league season
type Key struct {
	Date       string
	HomeTeamID string
	AwayTeamID string
}

func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%s", k.Date, k.HomeTeamID, k.AwayTeamID)
}

// KeySet is a membership index of already stored fixtures
type KeySet map[Key]struct{}

// NewKeySet creates a set holding keys
func NewKeySet(keys ...Key) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts k
func (s KeySet) Add(k Key) {
	s[k] = struct{}{}
}

// Has reports whether k is present
func (s KeySet) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// Len returns the number of keys
func (s KeySet) Len() int {
	return len(s)
}
