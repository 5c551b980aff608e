package hasher

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestPrefixHashShorterThanPrefix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.bin")
	writeFile(t, path, []byte("hello world"))

	h, err := PrefixHash(path)
	require.NoError(t, err)
	require.Len(t, h, 64) // hex-encoded SHA-256
}

func TestPrefixHashOnlyReadsPrefix(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.bin")
	b := filepath.Join(dir, "b.bin")

	prefix := bytes.Repeat([]byte{0xAB}, prefixSize)
	writeFile(t, a, append(append([]byte{}, prefix...), []byte("tail-a")...))
	writeFile(t, b, append(append([]byte{}, prefix...), []byte("tail-b")...))

	ha, err := PrefixHash(a)
	require.NoError(t, err)
	hb, err := PrefixHash(b)
	require.NoError(t, err)
	require.Equal(t, ha, hb, "files sharing the first 4KiB must produce the same prefix hash")
}

func TestFullHashDistinguishesTails(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.bin")
	b := filepath.Join(dir, "b.bin")

	prefix := bytes.Repeat([]byte{0xCD}, prefixSize)
	writeFile(t, a, append(append([]byte{}, prefix...), []byte("tail-a")...))
	writeFile(t, b, append(append([]byte{}, prefix...), []byte("tail-b")...))

	fa, err := FullHash(a)
	require.NoError(t, err)
	fb, err := FullHash(b)
	require.NoError(t, err)
	require.NotEqual(t, fa, fb)
}

func TestFullHashIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.bin")
	b := filepath.Join(dir, "b.bin")
	writeFile(t, a, []byte("identical content"))
	writeFile(t, b, []byte("identical content"))

	fa, err := FullHash(a)
	require.NoError(t, err)
	fb, err := FullHash(b)
	require.NoError(t, err)
	require.Equal(t, fa, fb)
}

func TestGroupByDropsSingletons(t *testing.T) {
	dir := t.TempDir()
	unique := filepath.Join(dir, "unique.bin")
	dupA := filepath.Join(dir, "dup-a.bin")
	dupB := filepath.Join(dir, "dup-b.bin")
	writeFile(t, unique, []byte("one of a kind"))
	writeFile(t, dupA, []byte("twins"))
	writeFile(t, dupB, []byte("twins"))

	groups, errs := GroupBy([]string{unique, dupA, dupB}, FullHash)
	require.Empty(t, errs)
	require.Len(t, groups, 1)
	for _, members := range groups {
		require.ElementsMatch(t, []string{dupA, dupB}, members)
	}
}

func TestGroupByCollectsErrorsForMissingFiles(t *testing.T) {
	groups, errs := GroupBy([]string{"/no/such/file"}, FullHash)
	require.Empty(t, groups)
	require.Len(t, errs, 1)
}
