package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSizeAcceptsHumanUnits(t *testing.T) {
	bytes, err := parseSize("1MiB")
	require.NoError(t, err)
	require.Equal(t, int64(1024*1024), bytes)
}

func TestParseSizeRejectsGarbage(t *testing.T) {
	_, err := parseSize("not-a-size")
	require.Error(t, err)
}

func TestFmtBytesHumanizes(t *testing.T) {
	require.Equal(t, "1.0 KiB", fmtBytes(1024))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	require.False(t, fileExists(filepath.Join(dir, "missing")))
}
