package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/diskjanitor/diskjanitor/internal/duplicate"
	"github.com/diskjanitor/diskjanitor/internal/hasher"
	"github.com/diskjanitor/diskjanitor/internal/types"
)

type dedupeOptions struct {
	minSizeStr          string
	workers             int
	cacheFile           string
	perceptualThreshold float64
}

func newDedupeCmd(g *globalOptions) *cobra.Command {
	opts := &dedupeOptions{
		minSizeStr: "1K",
		workers:    runtime.NumCPU(),
	}

	cmd := &cobra.Command{
		Use:   "dedupe [paths...]",
		Short: "Find duplicate and perceptually similar files",
		Long: `Runs the four-pass duplicate funnel: group by size, then by 4 KiB prefix
hash, then by full content hash. Pass --perceptual-threshold to also run a
fourth pass clustering images by perceptual similarity (re-encoded or
resized copies that will never share a byte-identical hash).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDedupe(g, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.minSizeStr, "min-size", "m", opts.minSizeStr, "minimum file size (e.g. 1K, 10M)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "number of parallel hashing workers")
	cmd.Flags().StringVar(&opts.cacheFile, "cache-file", "", "path to hash cache file (enables caching across runs)")
	cmd.Flags().Float64Var(&opts.perceptualThreshold, "perceptual-threshold", 0,
		"enable the perceptual-similarity pass at this threshold in [0,1]; 0 disables it")

	return cmd
}

func runDedupe(g *globalOptions, paths []string, opts *dedupeOptions) error {
	minSize, err := parseSize(opts.minSizeStr)
	if err != nil {
		return fmt.Errorf("invalid --min-size: %w", err)
	}

	hashCache, err := hasher.Open(opts.cacheFile)
	if err != nil {
		return fmt.Errorf("open hash cache: %w", err)
	}
	defer func() { _ = hashCache.Close() }()

	result := duplicate.FindAll(duplicate.Config{
		Roots:   paths,
		MinSize: minSize,
		Cache:   hashCache,
		Workers: opts.workers,
	}, opts.perceptualThreshold)

	if g.jsonOutput {
		return printJSON(result)
	}

	var wasted int64
	for _, grp := range result.ExactGroups {
		wasted += grp.WastedBytes
	}
	fmt.Printf("%d exact duplicate groups, %s wasted\n", len(result.ExactGroups), fmtBytes(wasted))
	for _, grp := range result.ExactGroups {
		printGroup(grp)
	}

	if opts.perceptualThreshold > 0 {
		var simWasted int64
		for _, grp := range result.SimilarGroups {
			simWasted += grp.WastedBytes
		}
		fmt.Printf("%d perceptually similar groups, %s wasted\n", len(result.SimilarGroups), fmtBytes(simWasted))
		for _, grp := range result.SimilarGroups {
			printGroup(grp)
		}
	}

	drainErrors(result.Errors)
	return nil
}

func printGroup(grp types.DuplicateGroup) {
	keeper := grp.Keeper()
	fmt.Printf("  keep %s (%s)\n", keeper.Path, fmtBytes(keeper.SizeBytes))
	for _, m := range grp.Members[1:] {
		fmt.Printf("    %s  %s  similarity %.2f\n", m.Path, fmtBytes(m.SizeBytes), m.Similarity)
	}
}
