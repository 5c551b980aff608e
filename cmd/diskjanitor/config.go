package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diskjanitor/diskjanitor/internal/config"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialize the configuration file",
	}
	cmd.AddCommand(newConfigShowCmd(g))
	cmd.AddCommand(newConfigInitCmd(g))
	return cmd
}

func newConfigShowCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			dataDir, err := g.resolveDataDir()
			if err != nil {
				return err
			}
			cfg, err := config.Load(dataDir)
			if err != nil {
				return err
			}
			if g.jsonOutput {
				return printJSON(cfg)
			}
			fmt.Printf("default_mode = %s\n", cfg.DefaultMode)
			fmt.Printf("default_profile = %s\n", cfg.DefaultProfile)
			fmt.Printf("staging_retention_days = %d\n", cfg.StagingRetentionDays)
			fmt.Printf("large_file_threshold_mb = %d\n", cfg.LargeFileThresholdMB)
			fmt.Printf("stale_days = %d\n", cfg.StaleDays)
			fmt.Printf("exclude_paths = %v\n", cfg.ExcludePaths)
			return nil
		},
	}
}

func newConfigInitCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file if one doesn't exist",
		RunE: func(_ *cobra.Command, _ []string) error {
			dataDir, err := g.resolveDataDir()
			if err != nil {
				return err
			}
			path := config.Path(dataDir)
			if fileExists(path) {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(dataDir, config.Default()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
}
