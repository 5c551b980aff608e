package purge

import (
	"github.com/groob/plist"
)

// LaunchdJob describes a daily launchd invocation of "purge --expired".
// Rendering this is a side-tool installer concern, not part of the
// purge core itself — the core only produces the descriptor bytes; it
// never writes to LaunchAgents or calls launchctl.
type LaunchdJob struct {
	Label            string   `plist:"Label"`
	ProgramArguments []string `plist:"ProgramArguments"`
	StartCalendarInterval struct {
		Hour   int `plist:"Hour"`
		Minute int `plist:"Minute"`
	} `plist:"StartCalendarInterval"`
	StandardOutPath string `plist:"StandardOutPath"`
	StandardErrorPath string `plist:"StandardErrorPath"`
}

// NewLaunchdJob builds the daily purge job descriptor. binaryPath is the
// absolute path to the CLI binary; logPath is where its stdout/stderr
// should be redirected (conventionally <data-dir>/logs/purge.log).
func NewLaunchdJob(label, binaryPath, logPath string, hour, minute int) LaunchdJob {
	job := LaunchdJob{
		Label:             label,
		ProgramArguments:  []string{binaryPath, "purge", "--expired"},
		StandardOutPath:   logPath,
		StandardErrorPath: logPath,
	}
	job.StartCalendarInterval.Hour = hour
	job.StartCalendarInterval.Minute = minute
	return job
}

// Render marshals the job to plist XML suitable for a
// ~/Library/LaunchAgents/<label>.plist file.
func Render(job LaunchdJob) ([]byte, error) {
	return plist.Marshal(job)
}
