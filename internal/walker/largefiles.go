package walker

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"

	"github.com/diskjanitor/diskjanitor/internal/types"
)

// LargeFiles recursively finds files at or above thresholdBytes rooted
// at root, skipping hidden directories, node_modules, and Library, and
// returns them sorted by size descending.
func LargeFiles(root string, thresholdBytes int64) ([]types.FileEntry, []string) {
	var found []types.FileEntry
	var errs []string

	var walk func(dir string)
	walk = func(dir string) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			errs = append(errs, err.Error())
			return
		}
		for _, e := range entries {
			full := filepath.Join(dir, e.Name())
			if e.IsDir() {
				if skipDir(e.Name()) {
					continue
				}
				walk(full)
				continue
			}
			if !e.Type().IsRegular() {
				continue
			}
			info, ierr := e.Info()
			if ierr != nil {
				continue
			}
			size := physicalSize(info)
			if size >= thresholdBytes {
				found = append(found, types.FileEntry{
					Path:    full,
					Size:    size,
					ModTime: info.ModTime(),
				})
			}
		}
	}
	walk(root)

	slices.SortFunc(found, func(a, b types.FileEntry) int {
		return cmp.Compare(b.Size, a.Size)
	})
	return found, errs
}
