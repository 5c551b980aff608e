package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/diskjanitor/diskjanitor/internal/cleanengine"
	"github.com/diskjanitor/diskjanitor/internal/config"
	"github.com/diskjanitor/diskjanitor/internal/scancache"
	"github.com/diskjanitor/diskjanitor/internal/scanengine"
)

type cleanOptions struct {
	profile    string
	mode       string
	yesLarge   bool
	workers    int
}

func newCleanCmd(g *globalOptions) *cobra.Command {
	opts := &cleanOptions{workers: runtime.NumCPU(), mode: "dry-run"}

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Scan, then remove reclaimable space",
		Long: `Runs a scan and routes every matched item through one of three modes:

  dry-run  preview totals, no filesystem mutation (default)
  soft     move matched items into a reversible staging area
  hard     remove matched items permanently

Soft-deleted sessions can later be restored with "diskjanitor restore" or
reclaimed for good with "diskjanitor purge".`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runClean(g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "profile to scan with (default from config)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", opts.mode, "dry-run | soft | hard")
	cmd.Flags().BoolVar(&opts.yesLarge, "yes-large", false, "override the bulk-byte warning threshold")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "number of parallel walker workers")

	return cmd
}

func runClean(g *globalOptions, opts *cleanOptions) error {
	dataDir, err := g.resolveDataDir()
	if err != nil {
		return err
	}
	p, err := loadProfile(dataDir, opts.profile)
	if err != nil {
		return err
	}
	cfg, err := config.Load(dataDir)
	if err != nil {
		return err
	}
	log := g.logger()

	results, err := scanengine.Run(scanengine.Options{
		Profile:      p,
		DataDir:      dataDir,
		Workers:      opts.workers,
		ShowProgress: g.showProgress(),
		Logger:       &log,
	})
	if err != nil {
		return err
	}
	drainErrors(results.Errors)

	switch opts.mode {
	case "dry-run":
		report := cleanengine.DryRun(results.Items)
		if g.jsonOutput {
			return printJSON(report)
		}
		fmt.Printf("would reclaim %s across %d files (dry run, nothing removed)\n",
			fmtBytes(report.TotalBytes), report.TotalFiles)
		return nil

	case "soft", "hard":
		cache := scancache.Load(dataDir, p.Name)
		mode := cleanengine.ModeSoft
		if opts.mode == "hard" {
			mode = cleanengine.ModeHard
		}

		m, err := cleanengine.Clean(mode, results.Items, cleanengine.Options{
			DataDir:            dataDir,
			Profile:            p.Name,
			RetentionDays:      cfg.StagingRetentionDays,
			AllowLargeOverride: opts.yesLarge,
			Cache:              cache,
			Logger:             &log,
		})
		if err != nil {
			var protected *cleanengine.ProtectedPathError
			if errors.As(err, &protected) {
				return fmt.Errorf("refusing to clean: %w", err)
			}
			return err
		}
		if err := cache.Save(); err != nil {
			log.Warn().Err(err).Msg("failed to persist scan cache after clean")
		}

		if g.jsonOutput {
			return printJSON(m)
		}
		fmt.Printf("session %s: removed %s across %d files (%s mode)\n",
			m.SessionID, fmtBytes(m.TotalBytes), m.TotalFiles, opts.mode)
		drainErrors(m.Errors)
		return nil

	default:
		return fmt.Errorf("unknown --mode %q (want dry-run, soft, or hard)", opts.mode)
	}
}
