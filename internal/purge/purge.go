// Package purge implements the Purger: removing staging session
// directories by age, by id, or unconditionally.
package purge

import (
	"fmt"
	"os"

	"github.com/diskjanitor/diskjanitor/internal/manifest"
)

// Report collects the outcome of a purge operation.
type Report struct {
	RemovedSessions []string
	Errors          []string
}

// PurgeExpired removes every session whose manifest has passed its
// expiry time. Restored sessions are also eligible, since an empty
// restored session directory is just cleanup. Per-session failures are
// collected, not fatal to the batch.
func PurgeExpired(dataDir string) Report {
	var report Report
	sessions, err := manifest.ListSessions(dataDir)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		return report
	}
	for _, s := range sessions {
		if !s.Expired {
			continue
		}
		if err := removeSession(dataDir, s.SessionID); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", s.SessionID, err))
			continue
		}
		report.RemovedSessions = append(report.RemovedSessions, s.SessionID)
	}
	return report
}

// PurgeSession removes exactly one session directory. It fails if the
// session does not exist.
func PurgeSession(dataDir, sessionID string) error {
	dir := manifest.SessionDir(dataDir, sessionID)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("purge session %s: %w", sessionID, err)
	}
	return removeSession(dataDir, sessionID)
}

// PurgeAll removes every staging session directory unconditionally.
func PurgeAll(dataDir string) Report {
	var report Report
	sessions, err := manifest.ListSessions(dataDir)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		return report
	}
	for _, s := range sessions {
		if err := removeSession(dataDir, s.SessionID); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", s.SessionID, err))
			continue
		}
		report.RemovedSessions = append(report.RemovedSessions, s.SessionID)
	}
	return report
}

func removeSession(dataDir, sessionID string) error {
	return os.RemoveAll(manifest.SessionDir(dataDir, sessionID))
}
