// Package cleanengine implements the Clean Orchestrator: routing scan
// items through dry-run, soft-delete (staged, reversible), or
// hard-delete (permanent) modes, with a Safety Gate check before any
// destructive mode runs.
package cleanengine

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/diskjanitor/diskjanitor/internal/manifest"
	"github.com/diskjanitor/diskjanitor/internal/safety"
	"github.com/diskjanitor/diskjanitor/internal/scancache"
	"github.com/diskjanitor/diskjanitor/internal/staging"
	"github.com/diskjanitor/diskjanitor/internal/types"
)

const (
	ModeSoft = "soft_delete"
	ModeHard = "hard_delete"
)

// ProtectedPathError is the fatal, typed failure returned when any
// candidate path is refused by the Safety Gate. No mutation has
// occurred when this is returned.
type ProtectedPathError struct {
	Path string
}

func (e *ProtectedPathError) Error() string {
	return fmt.Sprintf("refusing to operate on protected path: %s", e.Path)
}

// Options parameterises one clean invocation.
type Options struct {
	DataDir            string
	Profile            string
	RetentionDays      int
	AllowLargeOverride bool

	// Cache, when set, is invalidated for a Scan Item's representative
	// path once every candidate derived from that item has been
	// successfully removed, so the next scan doesn't report stale
	// cached totals for a directory that no longer exists.
	Cache *scancache.Cache

	// Logger receives diagnostic traces (per-item stage and remove
	// outcomes, safety and bulk-threshold trips); a nil Logger is
	// equivalent to zerolog.Nop().
	Logger *zerolog.Logger
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return zerolog.Nop()
}

// candidate is one path the orchestrator will touch, derived from a
// Scan Item's file entries (or the item's own path, when it carries no
// file entries).
type candidate struct {
	Path     string
	Size     int64
	IsDir    bool
	Category string
	Safety   string
}

// itemBatch groups the candidates derived from one Scan Item together,
// so the orchestrator can invalidate that item's cache entry once every
// one of its candidates has been removed successfully.
type itemBatch struct {
	itemPath   string
	candidates []candidate
}

func batchesFor(items []types.ScanItem) []itemBatch {
	var out []itemBatch
	for _, item := range items {
		b := itemBatch{itemPath: item.Path}
		if len(item.Files) == 0 {
			b.candidates = append(b.candidates, candidate{
				Path: item.Path, Size: item.SizeBytes, IsDir: true,
				Category: item.Category.String(), Safety: item.Safety.String(),
			})
		} else {
			for _, f := range item.Files {
				b.candidates = append(b.candidates, candidate{
					Path: f.Path, Size: f.Size, IsDir: false,
					Category: item.Category.String(), Safety: item.Safety.String(),
				})
			}
		}
		out = append(out, b)
	}
	return out
}

func flatten(batches []itemBatch) []candidate {
	var out []candidate
	for _, b := range batches {
		out = append(out, b.candidates...)
	}
	return out
}

// checkSafety runs the Safety Gate over every candidate path, returning
// a ProtectedPathError on the first violation.
func checkSafety(candidates []candidate) error {
	for _, c := range candidates {
		if safety.IsProtected(c.Path) {
			return &ProtectedPathError{Path: c.Path}
		}
	}
	return nil
}

// DryRunReport is returned by DryRun: a preview with no mutation.
type DryRunReport struct {
	TotalFiles int
	TotalBytes int64
	Paths      []string
}

// DryRun sums the candidate list without touching the filesystem.
func DryRun(items []types.ScanItem) DryRunReport {
	candidates := flatten(batchesFor(items))
	report := DryRunReport{}
	for _, c := range candidates {
		report.TotalFiles++
		report.TotalBytes += c.Size
		report.Paths = append(report.Paths, c.Path)
	}
	return report
}

// Clean routes items through soft-delete or hard-delete. Every candidate
// path is checked against the Safety Gate and the bulk thresholds before
// any mutation; a violation aborts with no filesystem changes.
func Clean(mode string, items []types.ScanItem, opts Options) (*types.Manifest, error) {
	log := opts.logger()
	batches := batchesFor(items)
	candidates := flatten(batches)

	if err := checkSafety(candidates); err != nil {
		log.Warn().Str("path", err.(*ProtectedPathError).Path).Msg("safety gate trip, aborting clean")
		return nil, err
	}

	var totalBytes int64
	for _, c := range candidates {
		totalBytes += c.Size
	}
	if err := safety.ValidateBulk(len(candidates), totalBytes, opts.AllowLargeOverride); err != nil {
		log.Warn().Err(err).Msg("bulk threshold trip, aborting clean")
		return nil, err
	}

	m := manifest.New(opts.Profile, mode, opts.RetentionDays)

	switch mode {
	case ModeSoft:
		runSoft(m, batches, opts, log)
	case ModeHard:
		runHard(m, batches, opts, log)
	default:
		return nil, fmt.Errorf("cleanengine: unknown mode %q", mode)
	}

	if err := manifest.Save(opts.DataDir, m); err != nil {
		manifest.AddError(m, err.Error())
		log.Warn().Err(err).Msg("failed to persist manifest")
	}
	return m, nil
}

func runSoft(m *types.Manifest, batches []itemBatch, opts Options, log zerolog.Logger) {
	stager := staging.NewStager(opts.DataDir, m.SessionID)
	for _, b := range batches {
		allOK := true
		for _, c := range b.candidates {
			staged, err := stager.StagePath(c.Path, c.IsDir)
			if err != nil {
				allOK = false
				manifest.AddItem(m, types.ManifestItem{
					OriginalPath: c.Path, SizeBytes: c.Size, Category: c.Category,
					Safety: c.Safety, IsDir: c.IsDir, Success: false, Error: err.Error(),
				})
				manifest.AddError(m, err.Error())
				log.Warn().Str("path", c.Path).Err(err).Msg("stage failed")
				continue
			}
			log.Debug().Str("original", c.Path).Str("staged", staged).Msg("staged")
			manifest.AddItem(m, types.ManifestItem{
				OriginalPath: c.Path, StagedPath: staged, SizeBytes: c.Size,
				Category: c.Category, Safety: c.Safety, IsDir: c.IsDir, Success: true,
			})
		}
		invalidateIfComplete(opts, b, allOK, log)
	}
}

func runHard(m *types.Manifest, batches []itemBatch, opts Options, log zerolog.Logger) {
	for _, b := range batches {
		allOK := true
		for _, c := range b.candidates {
			var err error
			if c.IsDir {
				err = os.RemoveAll(c.Path)
			} else {
				err = os.Remove(c.Path)
			}
			if err != nil {
				allOK = false
				manifest.AddItem(m, types.ManifestItem{
					OriginalPath: c.Path, SizeBytes: c.Size, Category: c.Category,
					Safety: c.Safety, IsDir: c.IsDir, Success: false, Error: err.Error(),
				})
				manifest.AddError(m, err.Error())
				log.Warn().Str("path", c.Path).Err(err).Msg("remove failed")
				continue
			}
			manifest.AddItem(m, types.ManifestItem{
				OriginalPath: c.Path, SizeBytes: c.Size, Category: c.Category,
				Safety: c.Safety, IsDir: c.IsDir, Success: true,
			})
		}
		invalidateIfComplete(opts, b, allOK, log)
	}
}

// invalidateIfComplete drops the scan cache entry for a Scan Item's
// representative path once every candidate derived from it has been
// removed successfully, so the next scan re-walks rather than serving a
// stale cached total for a directory that no longer exists.
func invalidateIfComplete(opts Options, b itemBatch, allOK bool, log zerolog.Logger) {
	if !allOK || opts.Cache == nil || b.itemPath == "" {
		return
	}
	opts.Cache.Invalidate(b.itemPath)
	log.Debug().Str("path", b.itemPath).Msg("invalidated scan cache entry")
}
