package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/fbref-matches/internal/match"
)

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "matches.db"), testColumns)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Prepare("Premier League", "2023-2024"))

	keys, err := s.LoadKeys("Premier League", "2023-2024")
	require.NoError(t, err)
	assert.Equal(t, 0, keys.Len())

	rec := testRecord("2023-08-11", "943e8050", "b8fd03ef")
	require.NoError(t, s.Append("Premier League", "2023-2024", rec))
	require.NoError(t, s.Append("Premier League", "2022-2023", testRecord("2022-08-05", "e", "f")))

	keys, err = s.LoadKeys("Premier League", "2023-2024")
	require.NoError(t, err)
	assert.Equal(t, 1, keys.Len())
	assert.True(t, keys.Has(rec.Key()))

	stats, err := s.storedStats("Premier League", "2023-2024", rec.Key())
	require.NoError(t, err)
	assert.Equal(t, match.Stats{"goals_H": "2", "goals_A": "1", "saves_H": match.NA, "saves_A": match.NA}, stats)

	err = s.Append("Premier League", "2023-2024", rec)
	assert.Error(t, err, "duplicate key must be rejected")
}
