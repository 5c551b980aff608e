package manifest

import (
	"testing"
	"time"

	"github.com/diskjanitor/diskjanitor/internal/types"
	"github.com/stretchr/testify/require"
)

func TestNewSoftDeleteSetsExpiry(t *testing.T) {
	m := New("default", "soft_delete", 30)
	require.NotNil(t, m.ExpiresAt)
	require.WithinDuration(t, time.Now().AddDate(0, 0, 30), *m.ExpiresAt, time.Minute)
}

func TestNewHardDeleteNeverExpires(t *testing.T) {
	m := New("default", "hard_delete", 30)
	require.Nil(t, m.ExpiresAt)
}

func TestNewSessionIDsAreUnique(t *testing.T) {
	now := time.Now()
	a := NewSessionID(now)
	b := NewSessionID(now)
	require.NotEqual(t, a, b, "two sessions created in the same second must not collide")
}

// AddItem must only roll success into the running totals, per the
// Manifest invariant that TotalBytes/TotalFiles reflect only the items
// that actually succeeded.
func TestAddItemOnlyCountsSuccesses(t *testing.T) {
	m := &types.Manifest{}
	AddItem(m, types.ManifestItem{OriginalPath: "/a", SizeBytes: 100, Success: true})
	AddItem(m, types.ManifestItem{OriginalPath: "/b", SizeBytes: 999, Success: false})

	require.Equal(t, int64(100), m.TotalBytes)
	require.Equal(t, 1, m.TotalFiles)
	require.Len(t, m.Items, 2)
}

func TestIsExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	require.True(t, IsExpired(&types.Manifest{ExpiresAt: &past}))
	require.False(t, IsExpired(&types.Manifest{ExpiresAt: &future}))
	require.False(t, IsExpired(&types.Manifest{}))
}

func TestSaveAndLoadSessionRoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	m := New("default", "soft_delete", 30)
	AddItem(m, types.ManifestItem{OriginalPath: "/a", StagedPath: "/staged/0", SizeBytes: 10, Success: true})

	require.NoError(t, Save(dataDir, m))

	loaded, err := LoadSession(dataDir, m.SessionID)
	require.NoError(t, err)
	require.Equal(t, m.SessionID, loaded.SessionID)
	require.Equal(t, m.TotalBytes, loaded.TotalBytes)
	require.Len(t, loaded.Items, 1)
}

// Hard-delete manifests are not persisted to a session directory (there
// is nothing to restore), only appended to the daily log.
func TestSaveHardDeleteSkipsSessionManifest(t *testing.T) {
	dataDir := t.TempDir()
	m := New("default", "hard_delete", 0)
	require.NoError(t, Save(dataDir, m))

	_, err := LoadSession(dataDir, m.SessionID)
	require.Error(t, err)
}

func TestMarkRestoredPersists(t *testing.T) {
	dataDir := t.TempDir()
	m := New("default", "soft_delete", 30)
	require.NoError(t, Save(dataDir, m))

	require.NoError(t, MarkRestored(dataDir, m))

	loaded, err := LoadSession(dataDir, m.SessionID)
	require.NoError(t, err)
	require.True(t, loaded.Restored)
}

func TestListSessionsEmptyWhenNoStagingDir(t *testing.T) {
	sessions, err := ListSessions(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, sessions)
}

func TestListSessionsNewestFirst(t *testing.T) {
	dataDir := t.TempDir()

	older := New("default", "soft_delete", 30)
	older.Timestamp = time.Now().Add(-time.Hour)
	require.NoError(t, Save(dataDir, older))

	newer := New("default", "soft_delete", 30)
	newer.Timestamp = time.Now()
	require.NoError(t, Save(dataDir, newer))

	sessions, err := ListSessions(dataDir)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, newer.SessionID, sessions[0].SessionID)
}

func TestMostRecentSessionNoneFound(t *testing.T) {
	summary, err := MostRecentSession(t.TempDir())
	require.NoError(t, err)
	require.Nil(t, summary)
}
