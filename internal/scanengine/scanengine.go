// Package scanengine implements the Scan Orchestrator: it runs a
// profile's target set through the Scan Cache and Walker, merges in the
// specialised dev-project and large-file scanners, and assembles Scan
// Results.
package scanengine

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/diskjanitor/diskjanitor/internal/pathexpand"
	"github.com/diskjanitor/diskjanitor/internal/profile"
	"github.com/diskjanitor/diskjanitor/internal/scancache"
	"github.com/diskjanitor/diskjanitor/internal/types"
	"github.com/diskjanitor/diskjanitor/internal/walker"
)

// Options parameterises one orchestration run.
type Options struct {
	Profile              profile.Profile
	DataDir              string
	LargeFileThresholdMB int64 // overrides Profile.LargeFileThresholdMB when non-zero
	Workers              int
	ShowProgress         bool

	// Logger receives diagnostic traces (cache hits/misses, non-fatal
	// walk errors); a nil Logger is equivalent to zerolog.Nop().
	Logger *zerolog.Logger
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return zerolog.Nop()
}

// Run executes the full orchestration sequence described in the scan
// engine design: cache → walker per target, specialised scanners, drop
// empties, sort, persist cache.
func Run(opts Options) (types.ScanResults, error) {
	log := opts.logger()
	start := time.Now()
	cache := scancache.Load(opts.DataDir, opts.Profile.Name)

	var items []types.ScanItem
	var errs []string

	for _, target := range profile.EnabledTargets(opts.Profile) {
		item, terrs := runTarget(target, cache, opts, log)
		errs = append(errs, terrs...)
		for _, e := range terrs {
			log.Warn().Str("target", target.Name).Msg(e)
		}
		if item.SizeBytes > 0 || item.FileCount > 0 {
			items = append(items, item)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return types.ScanResults{}, fmt.Errorf("resolve home directory: %w", err)
	}

	if opts.Profile.EnablesDevProjectScanning() {
		devItems, derrs := walker.StaleDependencyDirs(home, staleDuration(opts.Profile))
		items = append(items, devItems...)
		errs = append(errs, derrs...)
	}

	largeThresholdMB := opts.Profile.LargeFileThresholdMB
	if opts.LargeFileThresholdMB > 0 {
		largeThresholdMB = opts.LargeFileThresholdMB
	}
	largeFiles, lerrs := walker.LargeFiles(home, largeThresholdMB*1024*1024)
	errs = append(errs, lerrs...)
	if len(largeFiles) > 0 {
		items = append(items, largeFilesItem(largeFiles))
	}

	items = dropEmpty(items)
	sort.SliceStable(items, func(i, j int) bool { return items[i].SizeBytes > items[j].SizeBytes })

	if err := cache.Save(); err != nil {
		errs = append(errs, fmt.Sprintf("persist scan cache: %v", err))
	}
	cacheStatsMsg := fmt.Sprintf("cache: %d hits, %d misses, %d invalidated (hit rate %.0f%%)",
		cache.Stats.Hits, cache.Stats.Misses, cache.Stats.Invalidated, cache.Stats.HitRate()*100)
	errs = append(errs, cacheStatsMsg)
	log.Debug().
		Int("hits", cache.Stats.Hits).
		Int("misses", cache.Stats.Misses).
		Int("invalidated", cache.Stats.Invalidated).
		Msg(cacheStatsMsg)

	var totalBytes int64
	var totalFiles int
	for _, it := range items {
		totalBytes += it.SizeBytes
		totalFiles += it.FileCount
	}

	return types.ScanResults{
		Timestamp:      start,
		Duration:       time.Since(start),
		Items:          items,
		TotalReclaimed: totalBytes,
		TotalFiles:     totalFiles,
		Errors:         errs,
	}, nil
}

// runTarget resolves one target's expanded paths, serving from cache
// only when every expanded path hits, and re-walking (storing fresh
// entries) otherwise — preserving file-count consistency per the
// cache's "all or nothing per target" contract.
func runTarget(target types.ScanTarget, cache *scancache.Cache, opts Options, log zerolog.Logger) (types.ScanItem, []string) {
	var errs []string
	paths, err := pathexpand.ExpandAll(target.Patterns)
	if err != nil {
		return types.ScanItem{}, []string{err.Error()}
	}
	if len(paths) == 0 {
		return types.ScanItem{}, nil
	}

	// A target is served from cache only if every one of its expanded
	// paths hits; a mixed state forces a full re-scan of the whole
	// target so file-count totals stay internally consistent.
	allHit := true
	var hitEntries []types.CacheEntry
	for _, p := range paths {
		entry, ok := cache.Check(p)
		if !ok {
			allHit = false
			log.Debug().Str("path", p).Msg("cache miss")
			break
		}
		log.Debug().Str("path", p).Msg("cache hit")
		hitEntries = append(hitEntries, entry)
	}

	item := types.ScanItem{
		Name:     target.Name,
		Category: target.Category,
		DevTool:  target.DevTool,
		Path:     paths[0],
		Safety:   target.Safety,
		Reason:   target.Reason,
	}

	if allHit {
		for _, e := range hitEntries {
			item.SizeBytes += e.SizeBytes
			item.FileCount += e.FileCount
		}
		return item, nil
	}

	walkerOpts := walker.Options{
		Recursive:    target.Recursive,
		Extensions:   target.Extensions,
		HasMinAge:    target.HasMinAge,
		MinAge:       time.Duration(target.MinAgeDays) * 24 * time.Hour,
		Workers:      opts.Workers,
		ShowProgress: opts.ShowProgress,
	}

	// Re-walk each expanded path individually (its own Walker instance,
	// since a Walker is single-use) so each gets its own accurate cache
	// entry, then fold the per-path results into the target's
	// aggregated item.
	for _, p := range paths {
		entries, werrs := walker.New(walkerOpts).Walk([]string{p})
		errs = append(errs, werrs...)

		var size int64
		for _, e := range entries {
			size += e.Size
		}
		item.SizeBytes += size
		item.FileCount += len(entries)
		item.Files = append(item.Files, entries...)

		cache.Store(types.ScanItem{
			Name: target.Name, Category: target.Category, DevTool: target.DevTool,
			Path: p, SizeBytes: size, FileCount: len(entries),
			Safety: target.Safety, Reason: target.Reason,
		})
	}
	return item, errs
}

func largeFilesItem(files []types.FileEntry) types.ScanItem {
	var size int64
	for _, f := range files {
		size += f.Size
	}
	return types.ScanItem{
		Name:      "Large Files",
		Category:  types.CategoryLargeFile,
		SizeBytes: size,
		FileCount: len(files),
		Safety:    types.Caution,
		Reason:    "individually large files worth reviewing before removal",
		Files:     files,
	}
}

func dropEmpty(items []types.ScanItem) []types.ScanItem {
	out := items[:0]
	for _, it := range items {
		if it.SizeBytes > 0 {
			out = append(out, it)
		}
	}
	return out
}

func staleDuration(p profile.Profile) time.Duration {
	days := p.StaleDays
	if days <= 0 {
		days = profile.DefaultStaleDays
	}
	return time.Duration(days) * 24 * time.Hour
}
