package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "local.json")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestSessionIDPersists(t *testing.T) {
	s, path := tempStore(t)
	id1, err := s.SessionID()
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	// 重新打开拿到同一个会话 ID
	s2, err := Open(path)
	require.NoError(t, err)
	id2, err := s2.SessionID()
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestRecentSearchesCapAndOrder(t *testing.T) {
	s, _ := tempStore(t)
	for _, term := range []string{"saree", "diya", "tea", "honey", "planter", "kurta"} {
		require.NoError(t, s.AddSearch(term))
	}
	got := s.RecentSearches()
	assert.Equal(t, []string{"kurta", "planter", "honey", "tea", "diya"}, got,
		"cap 5, most recent first, oldest evicted")
}

func TestRecentSearchesDedup(t *testing.T) {
	s, _ := tempStore(t)
	require.NoError(t, s.AddSearch("saree"))
	require.NoError(t, s.AddSearch("diya"))
	require.NoError(t, s.AddSearch("SAREE")) // 大小写不敏感去重，新的放最前

	assert.Equal(t, []string{"SAREE", "diya"}, s.RecentSearches())
}

func TestBlankSearchIgnored(t *testing.T) {
	s, _ := tempStore(t)
	require.NoError(t, s.AddSearch("   "))
	assert.Empty(t, s.RecentSearches())
}

func TestCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, s.RecentSearches())
	_, err = s.SessionID()
	assert.NoError(t, err)
}
