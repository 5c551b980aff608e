package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diskjanitor/diskjanitor/internal/purge"
)

type purgeOptions struct {
	expired   bool
	all       bool
	sessionID string
}

func newPurgeCmd(g *globalOptions) *cobra.Command {
	opts := &purgeOptions{}

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Remove staging sessions permanently",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPurge(g, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.expired, "expired", false, "purge only sessions past their retention window")
	cmd.Flags().BoolVar(&opts.all, "all", false, "purge every staging session unconditionally")
	cmd.Flags().StringVar(&opts.sessionID, "session", "", "purge exactly one session by id")

	return cmd
}

func runPurge(g *globalOptions, opts *purgeOptions) error {
	dataDir, err := g.resolveDataDir()
	if err != nil {
		return err
	}

	switch {
	case opts.sessionID != "":
		if err := purge.PurgeSession(dataDir, opts.sessionID); err != nil {
			return err
		}
		fmt.Printf("purged session %s\n", opts.sessionID)
		return nil

	case opts.all:
		report := purge.PurgeAll(dataDir)
		return reportPurge(g, report)

	case opts.expired:
		report := purge.PurgeExpired(dataDir)
		return reportPurge(g, report)

	default:
		return fmt.Errorf("specify one of --expired, --all, or --session")
	}
}

func reportPurge(g *globalOptions, report purge.Report) error {
	if g.jsonOutput {
		return printJSON(report)
	}
	fmt.Printf("purged %d session(s)\n", len(report.RemovedSessions))
	drainErrors(report.Errors)
	return nil
}
