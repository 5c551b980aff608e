package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diskjanitor/diskjanitor/internal/manifest"
	"github.com/diskjanitor/diskjanitor/internal/staging"
)

func newRestoreCmd(g *globalOptions) *cobra.Command {
	var latest bool

	cmd := &cobra.Command{
		Use:   "restore [session-id]",
		Short: "Restore a soft-deleted session's files to their original paths",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRestore(g, args, latest)
		},
	}
	cmd.Flags().BoolVar(&latest, "latest", false, "restore the most recently created session")
	return cmd
}

func runRestore(g *globalOptions, args []string, latest bool) error {
	dataDir, err := g.resolveDataDir()
	if err != nil {
		return err
	}

	sessionID := ""
	if len(args) == 1 {
		sessionID = args[0]
	}
	if sessionID == "" {
		if !latest {
			return fmt.Errorf("specify a session id or pass --latest")
		}
		summary, err := manifest.MostRecentSession(dataDir)
		if err != nil {
			return err
		}
		if summary == nil {
			return fmt.Errorf("no staging sessions found")
		}
		sessionID = summary.SessionID
	}

	report, err := staging.RestoreSession(dataDir, sessionID)
	if err != nil {
		return err
	}

	if g.jsonOutput {
		return printJSON(report)
	}
	fmt.Printf("restored %d files (%s) from session %s\n",
		report.RestoredCount, fmtBytes(report.RestoredBytes), report.SessionID)
	drainErrors(report.Errors)
	return nil
}
