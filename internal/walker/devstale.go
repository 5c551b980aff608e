package walker

import (
	"os"
	"path/filepath"
	"time"

	"github.com/diskjanitor/diskjanitor/internal/types"
)

// projectRootNames are the directory names under the home directory that
// are treated as candidate roots for stale dependency discovery.
var projectRootNames = []string{"Projects", "Code", "Development", "src", "workspace"}

var venvDirNames = []string{".venv", "venv", ".env", "env"}

const maxProjectDescendDepth = 3

// StaleDependencyDirs finds node_modules directories and Python virtual
// environments under the user's project roots whose parent project has
// not been touched in staleThreshold, skipping hidden directories,
// nested node_modules, and the Library subtree.
func StaleDependencyDirs(home string, staleThreshold time.Duration) ([]types.ScanItem, []string) {
	var items []types.ScanItem
	var errs []string
	cutoff := time.Now().Add(-staleThreshold)

	for _, rootName := range projectRootNames {
		root := filepath.Join(home, rootName)
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}
		found, ferrs := scanProjectRoot(root, cutoff)
		items = append(items, found...)
		errs = append(errs, ferrs...)
	}
	return items, errs
}

func scanProjectRoot(root string, cutoff time.Time) ([]types.ScanItem, []string) {
	var items []types.ScanItem
	var errs []string

	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		if depth > maxProjectDescendDepth {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			errs = append(errs, err.Error())
			return
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			name := e.Name()
			full := filepath.Join(dir, name)

			if name == "node_modules" {
				sentinel := filepath.Join(dir, "package.json")
				if isStale(sentinel, cutoff) {
					item := buildDirItem(full, "node_modules", types.DevToolNodeModules)
					items = append(items, item)
				}
				continue
			}
			if isVenvDir(name, full) {
				if isStaleDir(full, cutoff) {
					item := buildDirItem(full, "venv", types.DevToolVenv)
					items = append(items, item)
				}
				continue
			}
			if skipDir(name) {
				continue
			}
			walk(full, depth+1)
		}
	}
	walk(root, 0)
	return items, errs
}

// isVenvDir reports whether dir is named like a virtualenv and contains
// one of the recognised sentinel markers.
func isVenvDir(name, full string) bool {
	match := false
	for _, v := range venvDirNames {
		if name == v {
			match = true
			break
		}
	}
	if !match {
		return false
	}
	if _, err := os.Stat(filepath.Join(full, "pyvenv.cfg")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(full, "bin", "python")); err == nil {
		return true
	}
	return false
}

// isStale reports whether sentinel's mtime is older than cutoff. A
// missing sentinel file is treated as stale: no newer activity marker
// exists to disprove staleness.
func isStale(sentinel string, cutoff time.Time) bool {
	info, err := os.Stat(sentinel)
	if err != nil {
		return true
	}
	return info.ModTime().Before(cutoff)
}

func isStaleDir(dir string, cutoff time.Time) bool {
	info, err := os.Stat(dir)
	if err != nil {
		return true
	}
	return info.ModTime().Before(cutoff)
}

func buildDirItem(path, name string, tool types.DevTool) types.ScanItem {
	size, count := dirSize(path)
	return types.ScanItem{
		Name:      name,
		Category:  types.CategoryDevCache,
		DevTool:   tool,
		Path:      path,
		SizeBytes: size,
		FileCount: count,
		Safety:    types.Safe,
		Reason:    "regenerable dependency directory, stale project",
	}
}

// Size walks dir recursively, returning total physical size and file
// count. Unreadable entries are skipped silently. Used by the manifest
// package to report the on-disk size of a staging session.
func Size(dir string) (int64, int) {
	return dirSize(dir)
}

// dirSize walks dir recursively summing physical size and counting
// regular files. Unreadable entries are skipped silently.
func dirSize(dir string) (int64, int) {
	var size int64
	var count int
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, ierr := d.Info()
		if ierr != nil {
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		size += physicalSize(info)
		count++
		return nil
	})
	return size, count
}
