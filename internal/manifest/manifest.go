// Package manifest persists the per-session record of what a clean
// operation moved or deleted: the session's manifest.json (soft-delete
// sessions only) and the always-appended daily JSONL log.
package manifest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/diskjanitor/diskjanitor/internal/types"
	"github.com/diskjanitor/diskjanitor/internal/walker"
)

const sessionIDLayout = "2006-01-02T15-04-05"

// New starts a Draft manifest for profile/mode. For soft mode, expiry is
// creation time plus retentionDays; hard mode never expires.
func New(profileName, mode string, retentionDays int) *types.Manifest {
	now := time.Now().UTC()
	m := &types.Manifest{
		SessionID: NewSessionID(now),
		Timestamp: now,
		Profile:   profileName,
		Mode:      mode,
	}
	if mode == "soft_delete" {
		expires := now.AddDate(0, 0, retentionDays)
		m.ExpiresAt = &expires
	}
	return m
}

// NewSessionID formats a session identifier from t. Resolution is
// upgraded from spec.md's bare second-granularity timestamp with a short
// random suffix — an explicit implementation freedom spec.md leaves
// open — so two sessions created in the same wall-clock second never
// collide.
func NewSessionID(t time.Time) string {
	return fmt.Sprintf("%s-%s", t.Format(sessionIDLayout), uuid.NewString()[:8])
}

// AddItem appends item to m, incrementing the running totals only on
// success.
func AddItem(m *types.Manifest, item types.ManifestItem) {
	m.Items = append(m.Items, item)
	if item.Success {
		m.TotalBytes += item.SizeBytes
		m.TotalFiles++
	}
}

// AddError appends a non-fatal error string to m.
func AddError(m *types.Manifest, msg string) {
	m.Errors = append(m.Errors, msg)
}

// IsExpired reports whether m's expiry time, if any, has passed.
func IsExpired(m *types.Manifest) bool {
	return m.ExpiresAt != nil && time.Now().UTC().After(*m.ExpiresAt)
}

// SessionDir returns the staging directory for sessionID under dataDir.
func SessionDir(dataDir, sessionID string) string {
	return filepath.Join(dataDir, "staging", sessionID)
}

// FilesDir returns the staged-files directory for sessionID under
// dataDir.
func FilesDir(dataDir, sessionID string) string {
	return filepath.Join(SessionDir(dataDir, sessionID), "files")
}

func manifestPath(dataDir, sessionID string) string {
	return filepath.Join(SessionDir(dataDir, sessionID), "manifest.json")
}

func dailyLogPath(dataDir string, t time.Time) string {
	return filepath.Join(dataDir, "logs", fmt.Sprintf("clean-%s.jsonl", t.Format("2006-01-02")))
}

// Save persists m to its session directory (soft-delete only) and
// always appends one JSON line to the daily log.
func Save(dataDir string, m *types.Manifest) error {
	if m.Mode == "soft_delete" {
		dir := SessionDir(dataDir, m.SessionID)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		tmp := manifestPath(dataDir, m.SessionID) + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return err
		}
		if err := os.Rename(tmp, manifestPath(dataDir, m.SessionID)); err != nil {
			return err
		}
	}

	logPath := dailyLogPath(dataDir, m.Timestamp)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("create logs dir: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open daily log: %w", err)
	}
	defer func() { _ = f.Close() }()

	line, err := json.Marshal(m)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if _, err := w.Write(line); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}

// LoadSession reads a session's manifest.json.
func LoadSession(dataDir, sessionID string) (*types.Manifest, error) {
	data, err := os.ReadFile(manifestPath(dataDir, sessionID))
	if err != nil {
		return nil, err
	}
	var m types.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkRestored sets m.Restored and re-persists it.
func MarkRestored(dataDir string, m *types.Manifest) error {
	m.Restored = true
	return Save(dataDir, m)
}

// Summary is a lightweight view of a session for listing.
type Summary struct {
	SessionID       string    `json:"session_id"`
	Timestamp       time.Time `json:"timestamp"`
	Profile         string    `json:"profile"`
	Mode            string    `json:"mode"`
	TotalFiles      int       `json:"total_files"`
	Restored        bool      `json:"restored"`
	Expired         bool      `json:"expired"`
	StagedSizeBytes int64     `json:"staged_size_bytes"`
}

// ListSessions enumerates staging sessions, newest first.
func ListSessions(dataDir string) ([]Summary, error) {
	stagingRoot := filepath.Join(dataDir, "staging")
	entries, err := os.ReadDir(stagingRoot)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []Summary
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m, err := LoadSession(dataDir, e.Name())
		if err != nil {
			continue
		}
		size, _ := walker.Size(FilesDir(dataDir, e.Name()))
		out = append(out, Summary{
			SessionID:       m.SessionID,
			Timestamp:       m.Timestamp,
			Profile:         m.Profile,
			Mode:            m.Mode,
			TotalFiles:      m.TotalFiles,
			Restored:        m.Restored,
			Expired:         IsExpired(m),
			StagedSizeBytes: size,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// MostRecentSession returns the newest session, if any.
func MostRecentSession(dataDir string) (*Summary, error) {
	sessions, err := ListSessions(dataDir)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}
