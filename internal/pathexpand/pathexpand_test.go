package pathexpand

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandLiteralPathExists(t *testing.T) {
	dir := t.TempDir()
	paths, err := Expand(dir)
	require.NoError(t, err)
	require.Equal(t, []string{dir}, paths)
}

func TestExpandLiteralPathMissingYieldsNoError(t *testing.T) {
	paths, err := Expand(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	require.Empty(t, paths)
}

func TestExpandGlob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.cache"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.cache"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), []byte("x"), 0o644))

	matches, err := Expand(filepath.Join(dir, "*.cache"))
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func TestExpandHomeShorthand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	matches, err := Expand("~")
	require.NoError(t, err)
	require.Equal(t, []string{home}, matches)
}

func TestExpandAllDedupesPreservingOrder(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	paths, err := ExpandAll([]string{dir, sub, dir})
	require.NoError(t, err)
	require.Equal(t, []string{dir, sub}, paths)
}

func TestExpandAllSkipsNonMatchingPatterns(t *testing.T) {
	dir := t.TempDir()
	paths, err := ExpandAll([]string{filepath.Join(dir, "nope"), dir})
	require.NoError(t, err)
	require.Equal(t, []string{dir}, paths)
}
