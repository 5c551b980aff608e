package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/diskjanitor/diskjanitor/internal/scanengine"
)

type scanOptions struct {
	profile              string
	workers              int
	largeFileThresholdMB int64
}

func newScanCmd(g *globalOptions) *cobra.Command {
	opts := &scanOptions{workers: runtime.NumCPU()}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan for reclaimable disk space",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runScan(g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "profile to scan with (default from config)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "number of parallel walker workers")
	cmd.Flags().Int64Var(&opts.largeFileThresholdMB, "large-file-mb", 0, "override the large-file threshold in MiB")

	return cmd
}

func runScan(g *globalOptions, opts *scanOptions) error {
	dataDir, err := g.resolveDataDir()
	if err != nil {
		return err
	}
	p, err := loadProfile(dataDir, opts.profile)
	if err != nil {
		return err
	}
	log := g.logger()

	results, err := scanengine.Run(scanengine.Options{
		Profile:              p,
		DataDir:              dataDir,
		LargeFileThresholdMB: opts.largeFileThresholdMB,
		Workers:              opts.workers,
		ShowProgress:         g.showProgress(),
		Logger:               &log,
	})
	if err != nil {
		return err
	}

	if g.jsonOutput {
		return printJSON(results)
	}

	fmt.Printf("scanned %d items, %s reclaimable across %d files (%s)\n",
		len(results.Items), fmtBytes(results.TotalReclaimed), results.TotalFiles, results.Duration.Round(1e7))
	for _, item := range results.Items {
		fmt.Printf("  %-28s %10s  %6d files  [%s/%s]\n",
			item.Name, fmtBytes(item.SizeBytes), item.FileCount, item.Category, item.Safety)
	}
	drainErrors(results.Errors)
	return nil
}
