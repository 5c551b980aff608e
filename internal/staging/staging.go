// Package staging implements the Staging Mover: moving candidate paths
// into a session's staging area for reversible delete, and moving them
// back out again on restore.
package staging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/diskjanitor/diskjanitor/internal/manifest"
	"github.com/diskjanitor/diskjanitor/internal/types"
)

// ErrAlreadyRestored is returned by RestoreSession when the manifest has
// already been marked restored.
var ErrAlreadyRestored = errors.New("staging: session already restored")

// Stager assigns staged paths sequential numeric names within one
// session, so original path names never leak into the staging layout
// and name collisions are impossible.
type Stager struct {
	dataDir   string
	sessionID string
	counter   int
}

// NewStager creates a Stager for sessionID under dataDir.
func NewStager(dataDir, sessionID string) *Stager {
	return &Stager{dataDir: dataDir, sessionID: sessionID}
}

// StagePath moves original into the session's staging files directory
// under the next sequential name, trying rename first and falling back
// to copy-then-remove for directories or files, respectively. It
// returns the staged path on success.
func (s *Stager) StagePath(original string, isDir bool) (string, error) {
	if _, err := os.Lstat(original); err != nil {
		return "", fmt.Errorf("stage %s: %w", original, err)
	}

	filesDir := manifest.FilesDir(s.dataDir, s.sessionID)
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		return "", fmt.Errorf("create staging files dir: %w", err)
	}

	s.counter++
	staged := filepath.Join(filesDir, fmt.Sprintf("%06d", s.counter))

	if err := os.Rename(original, staged); err == nil {
		return staged, nil
	}

	if isDir {
		if err := copyDirRecursive(original, staged); err != nil {
			return "", fmt.Errorf("stage %s: %w", original, err)
		}
		if err := os.RemoveAll(original); err != nil {
			return "", fmt.Errorf("stage %s: remove original after copy: %w", original, err)
		}
		return staged, nil
	}

	if err := copyFile(original, staged); err != nil {
		return "", fmt.Errorf("stage %s: %w", original, err)
	}
	if err := os.Remove(original); err != nil {
		return "", fmt.Errorf("stage %s: remove original after copy: %w", original, err)
	}
	return staged, nil
}

// RestoreReport summarises the outcome of one restore.
type RestoreReport struct {
	SessionID      string
	RestoredCount  int
	RestoredBytes  int64
	Errors         []string
}

// RestoreSession moves every successfully staged item in sessionID back
// to its original path, best-effort, then marks the manifest restored
// and removes any now-empty session directories.
func RestoreSession(dataDir, sessionID string) (RestoreReport, error) {
	report := RestoreReport{SessionID: sessionID}

	m, err := manifest.LoadSession(dataDir, sessionID)
	if err != nil {
		return report, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	if m.Restored {
		return report, ErrAlreadyRestored
	}

	for i := range m.Items {
		item := &m.Items[i]
		if !item.Success || item.StagedPath == "" {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(item.OriginalPath), 0o755); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: create parent: %v", item.OriginalPath, err))
			continue
		}
		if _, err := os.Lstat(item.OriginalPath); err == nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: original already exists, refusing to overwrite", item.OriginalPath))
			continue
		}

		if err := restoreSinglePath(item.StagedPath, item.OriginalPath, item.IsDir); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", item.OriginalPath, err))
			continue
		}
		report.RestoredCount++
		report.RestoredBytes += item.SizeBytes
	}

	if err := manifest.MarkRestored(dataDir, m); err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("persist restored manifest: %v", err))
	}

	cleanupEmptyDirs(manifest.SessionDir(dataDir, sessionID))

	return report, nil
}

func restoreSinglePath(staged, original string, isDir bool) error {
	if _, err := os.Lstat(staged); err != nil {
		return fmt.Errorf("staged path missing: %w", err)
	}
	if err := os.Rename(staged, original); err == nil {
		return nil
	}
	if isDir {
		if err := copyDirRecursive(staged, original); err != nil {
			return err
		}
		return os.RemoveAll(staged)
	}
	if err := copyFile(staged, original); err != nil {
		return err
	}
	return os.Remove(staged)
}

// cleanupEmptyDirs removes now-empty directories under root, deepest
// first, and removes root itself too if it ends up empty.
func cleanupEmptyDirs(root string) {
	var dirs []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d == nil || !d.IsDir() {
			return nil
		}
		dirs = append(dirs, path)
		return nil
	})
	for i := len(dirs) - 1; i >= 0; i-- {
		_ = os.Remove(dirs[i]) // no-op if not empty
	}
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func copyDirRecursive(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		srcPath := filepath.Join(src, e.Name())
		dstPath := filepath.Join(dst, e.Name())
		if e.IsDir() {
			if err := copyDirRecursive(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

// NewManifestItem is a convenience constructor for a ManifestItem
// recording a staging outcome.
func NewManifestItem(original, staged string, size int64, category, safety string, isDir, success bool, errMsg string) types.ManifestItem {
	return types.ManifestItem{
		OriginalPath: original,
		StagedPath:   staged,
		SizeBytes:    size,
		Category:     category,
		Safety:       safety,
		IsDir:        isDir,
		Success:      success,
		Error:        errMsg,
	}
}
