package purge

import (
	"testing"
	"time"

	"github.com/diskjanitor/diskjanitor/internal/manifest"
	"github.com/stretchr/testify/require"
)

func TestPurgeExpiredRemovesOnlyExpiredSessions(t *testing.T) {
	dataDir := t.TempDir()

	expired := manifest.New("default", "soft_delete", 0)
	past := time.Now().Add(-time.Hour)
	expired.ExpiresAt = &past
	require.NoError(t, manifest.Save(dataDir, expired))

	fresh := manifest.New("default", "soft_delete", 30)
	require.NoError(t, manifest.Save(dataDir, fresh))

	report := PurgeExpired(dataDir)
	require.Equal(t, []string{expired.SessionID}, report.RemovedSessions)
	require.NoDirExists(t, manifest.SessionDir(dataDir, expired.SessionID))
	require.DirExists(t, manifest.SessionDir(dataDir, fresh.SessionID))
}

func TestPurgeSessionRemovesExactlyOne(t *testing.T) {
	dataDir := t.TempDir()
	m := manifest.New("default", "soft_delete", 30)
	require.NoError(t, manifest.Save(dataDir, m))

	require.NoError(t, PurgeSession(dataDir, m.SessionID))
	require.NoDirExists(t, manifest.SessionDir(dataDir, m.SessionID))
}

func TestPurgeSessionMissingFails(t *testing.T) {
	err := PurgeSession(t.TempDir(), "no-such-session")
	require.Error(t, err)
}

func TestPurgeAllUnconditional(t *testing.T) {
	dataDir := t.TempDir()
	a := manifest.New("default", "soft_delete", 30)
	require.NoError(t, manifest.Save(dataDir, a))
	b := manifest.New("default", "soft_delete", 30)
	require.NoError(t, manifest.Save(dataDir, b))

	report := PurgeAll(dataDir)
	require.Len(t, report.RemovedSessions, 2)
	require.NoDirExists(t, manifest.SessionDir(dataDir, a.SessionID))
	require.NoDirExists(t, manifest.SessionDir(dataDir, b.SessionID))
}

// PurgeExpired must be idempotent: running it again on an already-purged
// data directory removes nothing and reports no errors.
func TestPurgeIsIdempotent(t *testing.T) {
	dataDir := t.TempDir()
	m := manifest.New("default", "soft_delete", 0)
	past := time.Now().Add(-time.Hour)
	m.ExpiresAt = &past
	require.NoError(t, manifest.Save(dataDir, m))

	first := PurgeExpired(dataDir)
	require.Len(t, first.RemovedSessions, 1)

	second := PurgeExpired(dataDir)
	require.Empty(t, second.RemovedSessions)
	require.Empty(t, second.Errors)
}
