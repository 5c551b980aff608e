package testfs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

// Materialise creates every Dir and File in tree under root.
func Materialise(root string, tree Tree) error {
	for _, f := range tree.Files {
		if err := sowFile(root, f); err != nil {
			return err
		}
	}
	for _, d := range tree.Dirs {
		if err := sowDir(root, d); err != nil {
			return err
		}
	}
	return nil
}

func sowDir(parent string, d Dir) error {
	path := filepath.Join(parent, d.Path)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", path, err)
	}
	for _, f := range d.Files {
		if err := sowFile(path, f); err != nil {
			return err
		}
	}
	for _, sub := range d.Dirs {
		if err := sowDir(path, sub); err != nil {
			return err
		}
	}
	// Backdate the directory's own mtime last: creating children bumps it.
	if d.Age > 0 {
		if err := backdate(path, d.Age); err != nil {
			return fmt.Errorf("backdate dir %s: %w", path, err)
		}
	}
	return nil
}

func sowFile(parent string, f File) error {
	path := filepath.Join(parent, f.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", path, err)
	}

	size := int64(1)
	if f.Size != "" {
		parsed, err := humanize.ParseBytes(f.Size)
		if err != nil {
			return fmt.Errorf("parse size %q for %s: %w", f.Size, path, err)
		}
		size = int64(parsed)
	}

	content := bytes.Repeat([]byte{f.Pattern}, int(size))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if f.Age > 0 {
		if err := backdate(path, f.Age); err != nil {
			return fmt.Errorf("backdate file %s: %w", path, err)
		}
	}
	return nil
}

func backdate(path string, age time.Duration) error {
	stamp := time.Now().Add(-age)
	return os.Chtimes(path, stamp, stamp)
}
