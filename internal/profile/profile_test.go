package profile

import (
	"testing"

	"github.com/diskjanitor/diskjanitor/internal/types"
	"github.com/stretchr/testify/require"
)

func TestByNameDefaultAndEmptyBothResolve(t *testing.T) {
	p, ok := ByName("")
	require.True(t, ok)
	require.Equal(t, "default", p.Name)

	p2, ok := ByName("default")
	require.True(t, ok)
	require.Equal(t, p, p2)
}

func TestByNameUnknownFails(t *testing.T) {
	_, ok := ByName("nonexistent")
	require.False(t, ok)
}

func TestDefaultProfileExcludesDevCache(t *testing.T) {
	p := Default()
	require.False(t, p.EnablesCategory(types.CategoryDevCache))
	require.False(t, p.EnablesDevProjectScanning())
}

func TestDeveloperProfileEnablesDevCacheAndTools(t *testing.T) {
	p := Developer()
	require.True(t, p.EnablesCategory(types.CategoryDevCache))
	require.True(t, p.EnablesDevTool(types.DevToolXcode))
	require.True(t, p.EnablesDevProjectScanning())
}

func TestEnabledTargetsDefaultHasNoDevCacheTargets(t *testing.T) {
	targets := EnabledTargets(Default())
	for _, tgt := range targets {
		require.NotEqual(t, types.CategoryDevCache, tgt.Category,
			"the default profile must not surface any dev-cache target")
	}
}

func TestEnabledTargetsIncludesOnlyEnabledDevTools(t *testing.T) {
	dev := Developer()
	delete(dev.DevTools, types.DevToolDocker)

	for _, tgt := range EnabledTargets(dev) {
		if tgt.Category == types.CategoryDevCache {
			require.NotEqual(t, types.DevToolDocker, tgt.DevTool)
		}
	}
}

func TestCatalogueHasNoDuplicateNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, tgt := range Catalogue(DefaultStaleDays) {
		require.False(t, seen[tgt.Name], "duplicate target name %q", tgt.Name)
		seen[tgt.Name] = true
	}
}
