package safety

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsProtectedFixedRoots(t *testing.T) {
	require.True(t, IsProtected("/"))
	require.True(t, IsProtected("/System"))
	require.True(t, IsProtected("/Users"))
	require.False(t, IsProtected("/Users/bob/Downloads"))
}

// Matching is exact, not prefix-based: a child of a protected path must
// remain reachable.
func TestIsProtectedChildNotProtected(t *testing.T) {
	require.False(t, IsProtected("/Library/Caches"))
	require.True(t, IsProtected("/Library"))
}

func TestIsProtectedHomeDirAndChildren(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	require.True(t, IsProtected(home))
	require.True(t, IsProtected(filepath.Join(home, "Desktop")))
	require.True(t, IsProtected(filepath.Join(home, ".ssh")))
	require.False(t, IsProtected(filepath.Join(home, "Library", "Caches")))
}

func TestIsProtectedUncleanPath(t *testing.T) {
	require.True(t, IsProtected("/Users/../Users"))
}

func TestValidateBulkFileCountHardCap(t *testing.T) {
	err := ValidateBulk(MaxFilesPerOperation+1, 0, true)
	require.Error(t, err)
}

func TestValidateBulkByteThresholdRequiresOverride(t *testing.T) {
	err := ValidateBulk(1, MaxBytesWarningThreshold+1, false)
	require.Error(t, err)

	err = ValidateBulk(1, MaxBytesWarningThreshold+1, true)
	require.NoError(t, err)
}

func TestValidateBulkWithinLimits(t *testing.T) {
	require.NoError(t, ValidateBulk(10, 1024, false))
}
