// Package testfs provides a declarative filesystem-tree builder for tests.
// internal/walker's tests use it; the other packages' tests build their
// fixtures directly.
//
// Tests describe the directory they need as a Tree and hand it to New,
// which materialises it under t.TempDir(). A Tree is a nested set of Dirs,
// each holding Files; a File's content is described by size and an
// optional fill Pattern byte, so two Files with matching Pattern and Size
// compare equal for duplicate-detection tests without listing literal
// bytes. Age backdates a File's or Dir's modification time, which is how
// staleness-driven targets (stale dev caches, old downloads, scan-cache
// invalidation) get exercised without sleeping in real time.
//
//	tree := testfs.Tree{
//	    Dirs: []testfs.Dir{
//	        {
//	            Path: "Projects/app/node_modules",
//	            Age:  60 * 24 * time.Hour,
//	            Files: []testfs.File{{Path: "pkg/index.js", Size: "4KiB"}},
//	        },
//	    },
//	}
//	h := testfs.New(t, tree)
//	h.AssertExists("Projects/app/node_modules/pkg/index.js")
package testfs

import "time"

// Tree describes a filesystem subtree to materialise under a harness root.
type Tree struct {
	Dirs  []Dir
	Files []File // files directly under the root
}

// Dir is a directory, given relative to the harness root, holding its own
// files and (optionally) nested subdirectories.
type Dir struct {
	// Path is relative to the harness root, e.g. "Library/Caches/com.app".
	Path string
	// Age, when non-zero, backdates the directory's mtime by that much
	// relative to when the harness materialises it.
	Age   time.Duration
	Files []File
	Dirs  []Dir
}

// File is a regular file, given relative to its enclosing Dir (or the
// harness root, for top-level Files).
type File struct {
	// Path is relative to the enclosing Dir or the harness root.
	Path string
	// Size in IEC units ("1KiB", "4MiB"), parsed via go-humanize. Defaults
	// to a single byte when empty.
	Size string
	// Pattern is the fill byte for the file's content. Files sharing the
	// same Pattern and Size produce byte-identical content, which is what
	// the duplicate funnel needs to consider them duplicates.
	Pattern byte
	// Age, when non-zero, backdates the file's mtime by that much
	// relative to when the harness materialises it.
	Age time.Duration
}
