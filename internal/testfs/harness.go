package testfs

import (
	"os"
	"path/filepath"
	"testing"
)

// Harness materialises a Tree under a fresh t.TempDir() and offers
// path-qualification and assertion helpers scoped to that root.
type Harness struct {
	t    *testing.T
	root string
}

// New creates a Harness, materialising tree under a new temporary root.
func New(t *testing.T, tree Tree) *Harness {
	t.Helper()
	root := t.TempDir()
	if err := Materialise(root, tree); err != nil {
		t.Fatalf("testfs: materialise tree: %v", err)
	}
	return &Harness{t: t, root: root}
}

// Root returns the harness's temporary root directory.
func (h *Harness) Root() string {
	return h.root
}

// Path qualifies a root-relative path against the harness root.
func (h *Harness) Path(rel string) string {
	return filepath.Join(h.root, rel)
}

// AssertExists fails the test unless rel exists under the harness root.
func (h *Harness) AssertExists(rel string) {
	h.t.Helper()
	if _, err := os.Stat(h.Path(rel)); err != nil {
		h.t.Errorf("expected %s to exist: %v", rel, err)
	}
}

// AssertAbsent fails the test unless rel is absent under the harness root.
func (h *Harness) AssertAbsent(rel string) {
	h.t.Helper()
	if _, err := os.Stat(h.Path(rel)); err == nil {
		h.t.Errorf("expected %s to be absent, but it exists", rel)
	} else if !os.IsNotExist(err) {
		h.t.Errorf("stat %s: %v", rel, err)
	}
}

// AssertSize fails the test unless rel exists and has the given logical size.
func (h *Harness) AssertSize(rel string, want int64) {
	h.t.Helper()
	info, err := os.Stat(h.Path(rel))
	if err != nil {
		h.t.Errorf("expected %s to exist: %v", rel, err)
		return
	}
	if info.Size() != want {
		h.t.Errorf("%s: got size %d, want %d", rel, info.Size(), want)
	}
}
