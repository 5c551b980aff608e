// Package types provides the shared domain types used across the
// diskjanitor core: scan targets and results, cache entries, clean
// manifests, and duplicate groups.
package types

import (
	"cmp"
	"encoding/json"
	"slices"
	"time"
)

// SafetyLevel tags how reversible removing a scan target's contents is.
type SafetyLevel int

const (
	// Safe marks regenerable cache content.
	Safe SafetyLevel = iota
	// Caution marks user content that is usually, but not always, disposable.
	Caution
	// Dangerous marks a category that may break applications.
	Dangerous
)

func (s SafetyLevel) String() string {
	switch s {
	case Safe:
		return "safe"
	case Caution:
		return "caution"
	case Dangerous:
		return "dangerous"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the safety level as its lowercase name rather than
// its ordinal, matching spec.md §6's string-valued schema fields.
func (s SafetyLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Category tags the kind of reclaimable content a scan target or
// duplicate finding represents. It is a closed tagged variant, not an
// open string, so profile/target wiring can exhaustively switch on it.
type Category int

const (
	CategorySystemCache Category = iota
	CategoryUserCache
	CategoryLogs
	CategoryTempFiles
	CategoryCrashReports
	CategoryDevCache
	CategoryLargeFile
	CategoryDuplicate
	CategoryTrash
	CategoryBrowserData
	CategoryAppLeftover
	CategoryOldDownload
	CategoryDownloadedInstaller
)

func (c Category) String() string {
	switch c {
	case CategorySystemCache:
		return "System Cache"
	case CategoryUserCache:
		return "User Cache"
	case CategoryLogs:
		return "Logs"
	case CategoryTempFiles:
		return "Temporary Files"
	case CategoryCrashReports:
		return "Crash Reports"
	case CategoryDevCache:
		return "Developer Cache"
	case CategoryLargeFile:
		return "Large File"
	case CategoryDuplicate:
		return "Duplicate"
	case CategoryTrash:
		return "Trash"
	case CategoryBrowserData:
		return "Browser Data"
	case CategoryAppLeftover:
		return "App Leftover"
	case CategoryOldDownload:
		return "Old Download"
	case CategoryDownloadedInstaller:
		return "Downloaded Installer"
	default:
		return "Unknown"
	}
}

// MarshalJSON renders the category as its display name rather than its
// ordinal.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// DevTool identifies the developer tool a CategoryDevCache target belongs
// to, for display and for per-tool staleness rules.
type DevTool int

const (
	DevToolNone DevTool = iota
	DevToolXcode
	DevToolXcodeArchives
	DevToolXcodeSimulators
	DevToolDocker
	DevToolNodeModules
	DevToolVenv
	DevToolHomebrew
	DevToolCocoaPods
	DevToolGradle
	DevToolCargo
)

func (d DevTool) String() string {
	switch d {
	case DevToolXcode:
		return "Xcode DerivedData"
	case DevToolXcodeArchives:
		return "Xcode Archives"
	case DevToolXcodeSimulators:
		return "iOS Simulators"
	case DevToolDocker:
		return "Docker"
	case DevToolNodeModules:
		return "node_modules"
	case DevToolVenv:
		return "Python virtualenv"
	case DevToolHomebrew:
		return "Homebrew"
	case DevToolCocoaPods:
		return "CocoaPods"
	case DevToolGradle:
		return "Gradle"
	case DevToolCargo:
		return "Cargo"
	default:
		return "none"
	}
}

// MarshalJSON renders the dev tool as its display name rather than its
// ordinal.
func (d DevTool) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// ScanTarget is a declarative input to the Walker: a named set of path
// patterns with filters and a safety classification.
type ScanTarget struct {
	Name       string
	Category   Category
	DevTool    DevTool
	Patterns   []string // may use ~ shorthand and glob wildcards
	Safety     SafetyLevel
	Reason     string
	Recursive  bool
	MinAgeDays int  // 0 = no age filter
	HasMinAge  bool
	Extensions []string // empty = no extension filter
}

// FileEntry is one regular file discovered by a walk. Immutable once
// produced.
type FileEntry struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size_bytes"` // physical (allocated-block) size, not logical length
	ModTime time.Time `json:"mod_time"`
}

// ScanItem is the aggregated result for one scan target.
type ScanItem struct {
	Name      string      `json:"name"`
	Category  Category    `json:"category"`
	DevTool   DevTool     `json:"dev_tool,omitempty"`
	Path      string      `json:"path"` // representative base path
	SizeBytes int64       `json:"size_bytes"`
	FileCount int         `json:"file_count"`
	Safety    SafetyLevel `json:"safety"`
	Reason    string      `json:"reason"`
	Files     []FileEntry `json:"files,omitempty"` // omitted (nil) when the target is summarised
}

// ScanResults is the outcome of one scan invocation.
type ScanResults struct {
	Timestamp      time.Time     `json:"timestamp"`
	Duration       time.Duration `json:"duration_ns"`
	Items          []ScanItem    `json:"items"` // sorted by SizeBytes descending
	TotalReclaimed int64         `json:"total_reclaimed_bytes"`
	TotalFiles     int           `json:"total_files"`
	Errors         []string      `json:"errors"`
}

// CacheEntry is the Scan Cache's persisted value for one absolute path.
type CacheEntry struct {
	Path      string `json:"path"`
	MtimeSecs int64  `json:"mtime_secs"`
	SizeBytes int64  `json:"size_bytes"`
	FileCount int    `json:"file_count"`
	Category  string `json:"category"`
	Name      string `json:"name"`
	Safety    string `json:"safety"`
	Reason    string `json:"reason"`
}

// Manifest is the per-session record of what a clean operation moved or
// deleted. Field names and shape match spec.md §6's manifest.json
// schema exactly.
type Manifest struct {
	SessionID  string         `json:"session_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Profile    string         `json:"profile"`
	Mode       string         `json:"mode"` // "soft_delete" | "hard_delete"
	TotalBytes int64          `json:"total_bytes"`
	TotalFiles int            `json:"total_files"`
	ExpiresAt  *time.Time     `json:"expires_at,omitempty"` // soft mode only
	Restored   bool           `json:"restored"`
	Items      []ManifestItem `json:"items"`
	Errors     []string       `json:"errors"`
}

// ManifestItem is a single original/staged path pair processed by a clean
// operation.
type ManifestItem struct {
	OriginalPath string `json:"original_path"`
	StagedPath   string `json:"staged_path,omitempty"` // set only for a successful soft-delete; empty for failures and hard-delete items
	SizeBytes    int64  `json:"size_bytes"`
	Category     string `json:"category"`
	Safety       string `json:"safety"`
	IsDir        bool   `json:"is_dir"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// MatchType distinguishes byte-identical duplicates from perceptually
// similar images.
type MatchType int

const (
	MatchExact MatchType = iota
	MatchPerceptuallySimilar
)

func (m MatchType) String() string {
	if m == MatchExact {
		return "exact"
	}
	return "similar"
}

// MarshalJSON renders the match type as its string name rather than its
// ordinal.
func (m MatchType) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// Member is one file within a DuplicateGroup.
type Member struct {
	Path       string  `json:"path"`
	SizeBytes  int64   `json:"size_bytes"`
	Similarity float64 `json:"similarity"` // 1.0 for exact matches
}

// DuplicateGroup is a set of files judged duplicate or similar, with the
// first Member as the designated keeper (sorted by size descending).
type DuplicateGroup struct {
	MatchType   MatchType `json:"match_type"`
	WastedBytes int64     `json:"wasted_bytes"`
	Members     []Member  `json:"members"`
}

// Keeper returns the member designated to be retained, or the zero Member
// if the group is empty.
func (g DuplicateGroup) Keeper() Member {
	if len(g.Members) == 0 {
		return Member{}
	}
	return g.Members[0]
}

// SortGroups sorts duplicate groups by wasted bytes descending, and within
// each group sorts members by size descending (keeper first), recomputing
// WastedBytes from the sorted member list.
func SortGroups(groups []DuplicateGroup) {
	for i := range groups {
		m := groups[i].Members
		slices.SortFunc(m, func(a, b Member) int {
			return cmp.Compare(b.SizeBytes, a.SizeBytes)
		})
		var wasted int64
		for _, mm := range m[1:] {
			wasted += mm.SizeBytes
		}
		groups[i].WastedBytes = wasted
	}
	slices.SortFunc(groups, func(a, b DuplicateGroup) int {
		return cmp.Compare(b.WastedBytes, a.WastedBytes)
	})
}

// Semaphore implements a counting semaphore using a buffered channel. It
// limits concurrent access to a resource by blocking when the limit is
// reached.
type Semaphore chan struct{}

// NewSemaphore creates a semaphore that allows up to n concurrent
// acquisitions.
func NewSemaphore(n int) Semaphore { return make(chan struct{}, n) }

// Acquire blocks until a slot is available, then claims it.
func (s Semaphore) Acquire() { s <- struct{}{} }

// Release frees a slot, unblocking one waiting Acquire call.
func (s Semaphore) Release() { <-s }
