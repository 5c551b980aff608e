// Package safety implements the Safety Gate: a hard refusal to touch a
// fixed set of filesystem roots and home-directory entries, plus bulk
// operation limits that require explicit override.
package safety

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// protectedPaths are absolute paths that are never eligible for cleaning,
// regardless of profile or category. Matching is exact, not prefix-based:
// a child of a protected path (e.g. /Users/bob/Downloads) is still
// reachable, only the protected path itself is refused.
var protectedPaths = []string{
	"/",
	"/System",
	"/Applications",
	"/Users",
	"/Library",
	"/usr",
	"/bin",
	"/sbin",
	"/var",
	"/etc",
	"/opt",
	"/private",
	"/cores",
	"/Volumes",
}

// protectedHomeDirs are entries directly under the user's home directory
// that are never eligible for cleaning. The empty string refers to the
// home directory itself.
var protectedHomeDirs = []string{
	"",
	"Desktop",
	"Documents",
	"Downloads",
	"Pictures",
	"Music",
	"Movies",
	"Library",
	"Applications",
	".ssh",
	".gnupg",
}

const (
	// MaxFilesPerOperation is the hard cap on files touched by a single
	// clean operation. Exceeding it always refuses the operation.
	MaxFilesPerOperation = 100_000
	// MaxBytesWarningThreshold is the soft cap on bytes touched by a
	// single clean operation. Exceeding it refuses unless the caller
	// passes an explicit override.
	MaxBytesWarningThreshold = 50 * 1024 * 1024 * 1024
)

// IsProtected reports whether path is a filesystem root that must never be
// cleaned, either because it's a fixed protected path or because it's the
// user's home directory or one of its protected direct children.
func IsProtected(path string) bool {
	clean := filepath.Clean(path)

	for _, p := range protectedPaths {
		if clean == p {
			return true
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}
	home = filepath.Clean(home)

	for _, sub := range protectedHomeDirs {
		candidate := home
		if sub != "" {
			candidate = filepath.Join(home, sub)
		}
		if clean == candidate {
			return true
		}
	}
	return false
}

// ValidateBulk checks a prospective clean operation's scale against the
// bulk thresholds. allowLargeOverride lifts the byte warning threshold but
// never the hard file-count cap.
func ValidateBulk(fileCount int, totalBytes int64, allowLargeOverride bool) error {
	if fileCount > MaxFilesPerOperation {
		return fmt.Errorf("operation touches %d files, exceeding the limit of %d; split the operation into smaller batches",
			fileCount, MaxFilesPerOperation)
	}
	if totalBytes > MaxBytesWarningThreshold && !allowLargeOverride {
		return fmt.Errorf("operation touches %s, exceeding the warning threshold of %s; pass an explicit override to proceed",
			humanize.Bytes(uint64(totalBytes)), humanize.Bytes(uint64(MaxBytesWarningThreshold)))
	}
	return nil
}
