// Package walker implements parallel directory traversal for scan targets.
//
// # Concurrency model
//
// A Walker fans out one goroutine per base path of a target (the
// expanded, concrete path list from internal/pathexpand), bounded by a
// semaphore sized to the configured worker count. Within one base path
// traversal is sequential depth-first, matching the teacher's
// "breadth-controlled depth-first" scanner: the base path's goroutine
// acquires the semaphore, lists one directory, releases it, then
// descends into each subdirectory in turn. A single collector goroutine drains the
// fan-in result channel. Byte and file counters are atomics shared
// across workers; the result slice itself is owned solely by the
// collector, so no mutex guards it.
package walker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diskjanitor/diskjanitor/internal/progress"
	"github.com/diskjanitor/diskjanitor/internal/types"
)

// Options controls one walk of a single Scan Target.
type Options struct {
	Recursive    bool
	MaxDepth     int // used only when Recursive is false; 1 = direct children only
	Extensions   []string
	HasMinAge    bool
	MinAge       time.Duration
	Workers      int
	ShowProgress bool
}

// Walker discovers file entries under one or more base paths according
// to Options. A Walker is single-use: construct with New and call Walk
// once per base-path set.
type Walker struct {
	opts Options

	wg    sync.WaitGroup
	sem   types.Semaphore
	resCh chan types.FileEntry

	scanned atomic.Int64
	matched atomic.Int64
	bytes   atomic.Int64

	mu   sync.Mutex
	errs []string
}

// New creates a Walker with the given options. Workers defaults to 4
// when unset.
func New(opts Options) *Walker {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Walker{opts: opts}
}

// progressLabel satisfies fmt.Stringer for the progress bar.
type progressLabel struct{ w *Walker }

func (p progressLabel) String() string {
	return fmt.Sprintf("scanned %d files (%d bytes), matched %d",
		p.w.scanned.Load(), p.w.bytes.Load(), p.w.matched.Load())
}

// Walk traverses every base path and returns the matching regular file
// entries plus any non-fatal errors collected along the way.
func (w *Walker) Walk(basePaths []string) ([]types.FileEntry, []string) {
	w.sem = types.NewSemaphore(w.opts.Workers)
	w.resCh = make(chan types.FileEntry, 1000)
	bar := progress.New(w.opts.ShowProgress, -1)
	bar.Describe(progressLabel{w})

	var collected []types.FileEntry
	var collectorWg sync.WaitGroup
	collectorWg.Add(1)
	go func() {
		for fe := range w.resCh {
			collected = append(collected, fe)
		}
		collectorWg.Done()
	}()

	for _, base := range basePaths {
		abs, err := filepath.Abs(base)
		if err != nil {
			w.addErr(err.Error())
			continue
		}
		depth := 0
		if !w.opts.Recursive {
			depth = 1
		}
		w.walkDir(abs, depth)
	}

	w.wg.Wait()
	close(w.resCh)
	collectorWg.Wait()
	bar.Finish(progressLabel{w})

	return collected, w.errs
}

// walkDir starts one goroutine that traverses the tree under dir
// sequentially, depth-first. depth is dir's level in a non-recursive walk
// (the base path is 1), checked against effectiveDepthLimit; 0 means the
// walk is recursive and unlimited.
func (w *Walker) walkDir(dir string, depth int) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		var visit func(dir string, depth int)
		visit = func(dir string, depth int) {
			w.sem.Acquire()
			entries, subdirs, err := w.listDir(dir)
			w.sem.Release()
			if err != nil {
				w.addErr(err.Error())
				return
			}

			for _, fe := range entries {
				w.resCh <- fe
			}

			if depth > 0 && depth >= w.effectiveDepthLimit() {
				return
			}
			nextDepth := 0
			if depth > 0 {
				nextDepth = depth + 1
			}
			for _, sub := range subdirs {
				visit(sub, nextDepth)
			}
		}
		visit(dir, depth)
	}()
}

func (w *Walker) effectiveDepthLimit() int {
	if w.opts.MaxDepth > 0 {
		return w.opts.MaxDepth
	}
	return 1
}

// listDir reads one directory's entries, classifying regular files that
// pass the configured filters and subdirectories to descend into.
func (w *Walker) listDir(dir string) (files []types.FileEntry, subdirs []string, err error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	const batchSize = 1000
	for {
		entries, rerr := f.ReadDir(batchSize)
		if len(entries) == 0 {
			if rerr != nil && rerr != io.EOF {
				return files, subdirs, rerr
			}
			break
		}
		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				subdirs = append(subdirs, full)
				continue
			}
			if !entry.Type().IsRegular() {
				continue
			}
			info, ierr := entry.Info()
			if ierr != nil {
				continue
			}
			w.scanned.Add(1)
			size := physicalSize(info)
			w.bytes.Add(size)
			if !w.matches(entry.Name(), info) {
				continue
			}
			w.matched.Add(1)
			files = append(files, types.FileEntry{
				Path:    full,
				Size:    size,
				ModTime: info.ModTime(),
			})
		}
	}
	return files, subdirs, nil
}

func (w *Walker) matches(name string, info os.FileInfo) bool {
	if len(w.opts.Extensions) > 0 {
		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		ok := false
		for _, e := range w.opts.Extensions {
			if strings.EqualFold(ext, e) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if w.opts.HasMinAge {
		cutoff := time.Now().Add(-w.opts.MinAge)
		if info.ModTime().After(cutoff) {
			return false
		}
	}
	return true
}

func (w *Walker) addErr(msg string) {
	w.mu.Lock()
	w.errs = append(w.errs, msg)
	w.mu.Unlock()
}

// skipDir reports whether a directory name should never be descended
// into by the specialised scanners (hidden directories, dependency
// directories, and the user's Library subtree).
func skipDir(name string) bool {
	if name == "node_modules" || name == "Library" {
		return true
	}
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
