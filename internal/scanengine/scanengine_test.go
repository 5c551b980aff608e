package scanengine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diskjanitor/diskjanitor/internal/profile"
	"github.com/diskjanitor/diskjanitor/internal/scancache"
	"github.com/diskjanitor/diskjanitor/internal/types"
	"github.com/stretchr/testify/require"
)

// bareProfile enables no catalogue targets, so Run only exercises the
// dev-project and large-file scanners against a synthetic home directory.
func bareProfile(devTools map[types.DevTool]bool) profile.Profile {
	return profile.Profile{
		Name:                 "bare",
		Categories:           map[types.Category]bool{},
		DevTools:             devTools,
		StaleDays:            profile.DefaultStaleDays,
		LargeFileThresholdMB: 1,
	}
}

func mkfile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestRunFindsStaleDependencyDirAndLargeFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	proj := filepath.Join(home, "Projects", "app")
	mkfile(t, filepath.Join(proj, "node_modules", "pkg", "index.js"), 10)
	mkfile(t, filepath.Join(proj, "package.json"), 10)
	past := time.Now().Add(-60 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(proj, "package.json"), past, past))

	mkfile(t, filepath.Join(home, "big.bin"), 4*1024*1024)

	dataDir := t.TempDir()
	results, err := Run(Options{
		Profile: bareProfile(map[types.DevTool]bool{types.DevToolNodeModules: true}),
		DataDir: dataDir,
	})
	require.NoError(t, err)

	var sawNodeModules, sawLargeFile bool
	for _, item := range results.Items {
		if item.Category == types.CategoryDevCache {
			sawNodeModules = true
		}
		if item.Category == types.CategoryLargeFile {
			sawLargeFile = true
		}
	}
	require.True(t, sawNodeModules, "expected the stale node_modules directory to surface")
	require.True(t, sawLargeFile, "expected big.bin to surface as a large file")
	require.Greater(t, results.TotalReclaimed, int64(0))
}

func TestRunSkipsDevScanningWhenNoDevToolsEnabled(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	mkfile(t, filepath.Join(home, "Projects", "app", "node_modules", "pkg", "index.js"), 10)

	dataDir := t.TempDir()
	results, err := Run(Options{Profile: bareProfile(nil), DataDir: dataDir})
	require.NoError(t, err)

	for _, item := range results.Items {
		require.NotEqual(t, types.CategoryDevCache, item.Category)
	}
}

func TestRunPersistsScanCacheForSubsequentRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	mkfile(t, filepath.Join(home, "big.bin"), 4*1024*1024)

	dataDir := t.TempDir()
	opts := Options{Profile: bareProfile(nil), DataDir: dataDir}

	first, err := Run(opts)
	require.NoError(t, err)
	require.NotEmpty(t, first.Items)

	require.FileExists(t, scancache.Path(dataDir))

	second, err := Run(opts)
	require.NoError(t, err)
	require.Equal(t, first.TotalReclaimed, second.TotalReclaimed)
}

func TestRunEmptyProfileYieldsNoItems(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dataDir := t.TempDir()
	results, err := Run(Options{Profile: bareProfile(nil), DataDir: dataDir})
	require.NoError(t, err)
	require.Empty(t, results.Items)
}
