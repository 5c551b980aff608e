package purge

import (
	"testing"

	"github.com/groob/plist"
	"github.com/stretchr/testify/require"
)

func TestNewLaunchdJobFields(t *testing.T) {
	job := NewLaunchdJob("com.diskjanitor.purge", "/usr/local/bin/diskjanitor", "/tmp/purge.log", 3, 15)
	require.Equal(t, "com.diskjanitor.purge", job.Label)
	require.Equal(t, []string{"/usr/local/bin/diskjanitor", "purge", "--expired"}, job.ProgramArguments)
	require.Equal(t, 3, job.StartCalendarInterval.Hour)
	require.Equal(t, 15, job.StartCalendarInterval.Minute)
}

func TestRenderProducesValidPlist(t *testing.T) {
	job := NewLaunchdJob("com.diskjanitor.purge", "/bin/diskjanitor", "/tmp/purge.log", 3, 0)
	data, err := Render(job)
	require.NoError(t, err)
	require.Contains(t, string(data), "com.diskjanitor.purge")

	var roundTripped LaunchdJob
	require.NoError(t, plist.Unmarshal(data, &roundTripped))
	require.Equal(t, job.Label, roundTripped.Label)
	require.Equal(t, job.ProgramArguments, roundTripped.ProgramArguments)
}
