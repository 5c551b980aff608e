package cleanengine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/diskjanitor/diskjanitor/internal/safety"
	"github.com/diskjanitor/diskjanitor/internal/scancache"
	"github.com/diskjanitor/diskjanitor/internal/types"
	"github.com/stretchr/testify/require"
)

func itemForDir(t *testing.T, dir string, files ...string) types.ScanItem {
	t.Helper()
	item := types.ScanItem{Path: dir, Category: types.CategoryUserCache, Safety: types.Safe}
	for _, name := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
		item.Files = append(item.Files, types.FileEntry{Path: path, Size: 4})
		item.SizeBytes += 4
		item.FileCount++
	}
	return item
}

func TestDryRunDoesNotTouchFilesystem(t *testing.T) {
	dir := t.TempDir()
	item := itemForDir(t, dir, "a.txt", "b.txt")

	report := DryRun([]types.ScanItem{item})
	require.Equal(t, 2, report.TotalFiles)
	require.Equal(t, int64(8), report.TotalBytes)
	require.FileExists(t, filepath.Join(dir, "a.txt"))
}

func TestCleanRefusesProtectedPath(t *testing.T) {
	item := types.ScanItem{Path: "/Library", SizeBytes: 1, Category: types.CategorySystemCache}
	_, err := Clean(ModeHard, []types.ScanItem{item}, Options{DataDir: t.TempDir()})

	var protected *ProtectedPathError
	require.True(t, errors.As(err, &protected))
}

func TestCleanSoftModeStagesFilesAndInvalidatesCache(t *testing.T) {
	dataDir := t.TempDir()
	srcDir := t.TempDir()
	item := itemForDir(t, srcDir, "a.txt")

	cache := scancache.Load(dataDir, "default")
	cache.Store(types.ScanItem{Path: srcDir, SizeBytes: 4, FileCount: 1})

	m, err := Clean(ModeSoft, []types.ScanItem{item}, Options{
		DataDir: dataDir, Profile: "default", RetentionDays: 30, Cache: cache,
	})
	require.NoError(t, err)
	require.Equal(t, 1, m.TotalFiles)
	require.NoFileExists(t, filepath.Join(srcDir, "a.txt"))

	_, hit := cache.Check(srcDir)
	require.False(t, hit, "the scan cache entry for a fully-removed item must be invalidated")
}

func TestCleanHardModeDeletesPermanently(t *testing.T) {
	dataDir := t.TempDir()
	srcDir := t.TempDir()
	item := itemForDir(t, srcDir, "a.txt")

	m, err := Clean(ModeHard, []types.ScanItem{item}, Options{DataDir: dataDir, Profile: "default"})
	require.NoError(t, err)
	require.Equal(t, 1, m.TotalFiles)
	require.Nil(t, m.ExpiresAt)
	require.NoFileExists(t, filepath.Join(srcDir, "a.txt"))
}

func TestCleanRefusesBulkThresholdWithoutOverride(t *testing.T) {
	oversized := int64(safety.MaxBytesWarningThreshold) + 1
	item := types.ScanItem{
		Path:      t.TempDir(),
		SizeBytes: oversized,
		Files: []types.FileEntry{
			{Path: "/irrelevant", Size: oversized},
		},
	}
	_, err := Clean(ModeHard, []types.ScanItem{item}, Options{DataDir: t.TempDir()})
	require.Error(t, err)
}
