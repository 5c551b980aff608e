// Package duplicate implements the four-pass duplicate-detection funnel:
// group by size, then by 4 KiB prefix hash, then by full content hash,
// with an optional perceptual-similarity pass layered on top by the
// caller (see internal/perceptual). Each pass is strictly cheaper than
// the next and is expected to eliminate the bulk of candidates before
// the expensive full hash ever runs.
package duplicate

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/diskjanitor/diskjanitor/internal/hasher"
	"github.com/diskjanitor/diskjanitor/internal/types"
)

// DefaultMinSize is the smallest file size considered for duplicate
// detection; files below this add group overhead that dwarfs any
// recoverable bytes.
const DefaultMinSize = 1024

// Config parameterises one duplicate scan.
type Config struct {
	Roots   []string
	MinSize int64 // 0 defaults to DefaultMinSize
	Cache   *hasher.Cache // optional; nil disables the hash cache
	Workers int           // 0 defaults to 4
}

// Result is the funnel's output: fully verified exact-duplicate groups
// plus non-fatal errors collected along the way.
type Result struct {
	ExactGroups []types.DuplicateGroup
	Errors      []string
}

type fileMeta struct {
	path  string
	size  int64
	mtime time.Time
}

// Find runs the full funnel over cfg.Roots.
func Find(cfg Config) Result {
	if cfg.MinSize <= 0 {
		cfg.MinSize = DefaultMinSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	var errs []string
	files, cerrs := collectFiles(cfg.Roots, cfg.MinSize)
	errs = append(errs, cerrs...)

	bySize := groupBySize(files)

	var groups []types.DuplicateGroup
	for _, members := range bySize {
		prefixGroups, perrs := hashGroup(members, cfg, hashPrefix)
		errs = append(errs, perrs...)

		for _, prefixMembers := range prefixGroups {
			fullGroups, ferrs := hashGroup(prefixMembers, cfg, hashFull)
			errs = append(errs, ferrs...)

			for _, fullMembers := range fullGroups {
				groups = append(groups, toGroup(fullMembers))
			}
		}
	}

	types.SortGroups(groups)
	return Result{ExactGroups: groups, Errors: errs}
}

// collectFiles descends from every root, skipping hidden directories,
// node_modules, and Library, keeping regular files at or above minSize.
func collectFiles(roots []string, minSize int64) ([]fileMeta, []string) {
	var files []fileMeta
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
			if info.Size() < minSize {
				continue
			}
			files = append(files, fileMeta{path: full, size: info.Size(), mtime: info.ModTime()})
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return files, errs
}

func skipDir(name string) bool {
	if name == "node_modules" || name == "Library" {
		return true
	}
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// groupBySize buckets files by exact size, dropping singletons: a
// unique size can never be a byte-duplicate.
func groupBySize(files []fileMeta) map[int64][]fileMeta {
	groups := make(map[int64][]fileMeta)
	for _, f := range files {
		groups[f.size] = append(groups[f.size], f)
	}
	for size, members := range groups {
		if len(members) < 2 {
			delete(groups, size)
		}
	}
	return groups
}

type hashKind int

const (
	hashPrefix hashKind = iota
	hashFull
)

// hashGroup hashes every member of a candidate group concurrently
// (bounded by cfg.Workers), buckets by hash value, and drops singleton
// result groups. A member whose hash fails to compute is dropped from
// its group rather than failing the whole pass.
func hashGroup(members []fileMeta, cfg Config, kind hashKind) (map[string][]fileMeta, []string) {
	sem := types.NewSemaphore(cfg.Workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	groups := make(map[string][]fileMeta)
	var errs []string

	for _, m := range members {
		wg.Add(1)
		go func(m fileMeta) {
			defer wg.Done()
			sem.Acquire()
			defer sem.Release()

			hash, err := computeHash(m, cfg.Cache, kind)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err.Error())
				return
			}
			groups[hash] = append(groups[hash], m)
		}(m)
	}
	wg.Wait()

	for h, ms := range groups {
		if len(ms) < 2 {
			delete(groups, h)
		}
	}
	return groups, errs
}

func computeHash(m fileMeta, cache *hasher.Cache, kind hashKind) (string, error) {
	if cache != nil {
		if kind == hashPrefix {
			return cache.CachedPrefixHash(m.path, m.size, m.mtime)
		}
		return cache.CachedFullHash(m.path, m.size, m.mtime)
	}
	if kind == hashPrefix {
		return hasher.PrefixHash(m.path)
	}
	return hasher.FullHash(m.path)
}

// toGroup converts a verified full-hash match into a DuplicateGroup,
// sorted by size descending with the keeper first.
func toGroup(members []fileMeta) types.DuplicateGroup {
	mm := make([]types.Member, len(members))
	for i, f := range members {
		mm[i] = types.Member{Path: f.path, SizeBytes: f.size, Similarity: 1.0}
	}
	slices.SortFunc(mm, func(a, b types.Member) int {
		return cmp.Compare(b.SizeBytes, a.SizeBytes)
	})
	var wasted int64
	for _, m := range mm[1:] {
		wasted += m.SizeBytes
	}
	return types.DuplicateGroup{
		MatchType:   types.MatchExact,
		WastedBytes: wasted,
		Members:     mm,
	}
}
