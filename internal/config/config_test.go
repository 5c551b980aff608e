package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	cfg := Default()
	cfg.DefaultProfile = "developer"
	cfg.ExcludePaths = []string{"/mnt/external", "~/Archive"}

	require.NoError(t, Save(dataDir, cfg))

	loaded, err := Load(dataDir)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadCorruptFileErrors(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, Save(dataDir, Default()))

	// Overwrite with invalid TOML.
	require.NoError(t, os.WriteFile(Path(dataDir), []byte("this is not valid = = toml"), 0o644))

	_, err := Load(dataDir)
	require.Error(t, err)
}
