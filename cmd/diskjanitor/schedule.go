package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diskjanitor/diskjanitor/internal/purge"
)

func newScheduleCmd(g *globalOptions) *cobra.Command {
	var hour, minute int
	var label string

	cmd := &cobra.Command{
		Use:   "schedule-purge",
		Short: "Print a launchd plist that runs 'purge --expired' daily",
		Long: `Renders a launchd job descriptor to stdout; it is not installed
automatically. Redirect it to ~/Library/LaunchAgents/<label>.plist and load
it with launchctl to enable the daily schedule — installation is a
mechanical side-tool concern outside the core.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			dataDir, err := g.resolveDataDir()
			if err != nil {
				return err
			}
			binaryPath, err := os.Executable()
			if err != nil {
				return err
			}
			logPath := filepath.Join(dataDir, "logs", "purge.log")

			job := purge.NewLaunchdJob(label, binaryPath, logPath, hour, minute)
			data, err := purge.Render(job)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "com.diskjanitor.purge", "launchd job label")
	cmd.Flags().IntVar(&hour, "hour", 3, "hour of day to run (0-23)")
	cmd.Flags().IntVar(&minute, "minute", 0, "minute of hour to run (0-59)")

	return cmd
}
