package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diskjanitor/diskjanitor/internal/manifest"
)

func newSessionsCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Short:   "List staging sessions",
		Aliases: []string{"list-sessions"},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSessions(g)
		},
	}
	return cmd
}

func runSessions(g *globalOptions) error {
	dataDir, err := g.resolveDataDir()
	if err != nil {
		return err
	}
	sessions, err := manifest.ListSessions(dataDir)
	if err != nil {
		return err
	}

	if g.jsonOutput {
		return printJSON(sessions)
	}
	if len(sessions) == 0 {
		fmt.Println("no staging sessions")
		return nil
	}
	for _, s := range sessions {
		state := "active"
		switch {
		case s.Restored:
			state = "restored"
		case s.Expired:
			state = "expired"
		}
		fmt.Printf("%-32s %-10s %6d files  %10s  [%s]\n",
			s.SessionID, s.Profile, s.TotalFiles, fmtBytes(s.StagedSizeBytes), state)
	}
	return nil
}
