// Package scancache implements the Scan Cache: an on-disk, profile-scoped
// map from absolute path to a prior scan result, invalidated whenever a
// directory's modification time changes.
package scancache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/diskjanitor/diskjanitor/internal/types"
)

// Stats records cache effectiveness counters across one orchestration
// run.
type Stats struct {
	Hits        int `json:"hits"`
	Misses      int `json:"misses"`
	Invalidated int `json:"invalidated"`
}

// HitRate returns the fraction of lookups that were hits, or 0 when
// there have been no lookups yet.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses + s.Invalidated
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is the in-memory, JSON-serialisable scan cache for one profile.
type Cache struct {
	Profile   string                      `json:"profile"`
	Timestamp time.Time                   `json:"timestamp"`
	Entries   map[string]types.CacheEntry `json:"entries"`
	Stats     Stats                       `json:"stats"`

	path string
}

// FileName is the cache's on-disk file name under the data directory.
const FileName = "scan_cache.json"

// Path returns the cache file path under dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Load reads the cache file under dataDir. If the file is missing,
// corrupt, or was built for a different profile, it returns a fresh
// empty cache bound to profile — the whole cache is discarded wholesale
// on a profile switch, per the invalidation contract.
func Load(dataDir, profile string) *Cache {
	c := &Cache{
		Profile: profile,
		Entries: make(map[string]types.CacheEntry),
		path:    Path(dataDir),
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return c
	}
	var onDisk Cache
	if err := json.Unmarshal(data, &onDisk); err != nil {
		return c
	}
	if onDisk.Profile != profile {
		return c
	}
	onDisk.path = c.path
	if onDisk.Entries == nil {
		onDisk.Entries = make(map[string]types.CacheEntry)
	}
	onDisk.Stats = Stats{} // fresh counters for this run
	return &onDisk
}

// Check looks up path, comparing the directory's current modification
// time against the stored one. A match is a hit; a mismatch is an
// invalidation; absence is a miss. Stats are updated as a side effect.
func (c *Cache) Check(path string) (types.CacheEntry, bool) {
	entry, ok := c.Entries[path]
	if !ok {
		c.Stats.Misses++
		return types.CacheEntry{}, false
	}

	mtime, err := dirMtimeSecs(path)
	if err != nil {
		c.Stats.Invalidated++
		delete(c.Entries, path)
		return types.CacheEntry{}, false
	}
	if mtime != entry.MtimeSecs {
		c.Stats.Invalidated++
		delete(c.Entries, path)
		return types.CacheEntry{}, false
	}
	c.Stats.Hits++
	return entry, true
}

// Store records item's current scan result, stamped with the directory's
// current mtime.
func (c *Cache) Store(item types.ScanItem) {
	mtime, err := dirMtimeSecs(item.Path)
	if err != nil {
		return
	}
	c.Entries[item.Path] = types.CacheEntry{
		Path:      item.Path,
		MtimeSecs: mtime,
		SizeBytes: item.SizeBytes,
		FileCount: item.FileCount,
		Category:  item.Category.String(),
		Name:      item.Name,
		Safety:    item.Safety.String(),
		Reason:    item.Reason,
	}
}

// Invalidate drops path's entry, called by the clean engine after it
// successfully removes the underlying directory.
func (c *Cache) Invalidate(path string) {
	delete(c.Entries, path)
}

// Save persists the cache to its file, stamping the current time.
func (c *Cache) Save() error {
	c.Timestamp = time.Now()
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

// AgeString reports a human-readable age for the cache's timestamp, or
// "never" if it has never been saved.
func (c *Cache) AgeString() string {
	if c.Timestamp.IsZero() {
		return "never"
	}
	d := time.Since(c.Timestamp)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func dirMtimeSecs(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.ModTime().Unix(), nil
}
