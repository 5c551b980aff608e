package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diskjanitor/diskjanitor/internal/config"
	"github.com/diskjanitor/diskjanitor/internal/profile"
)

// globalOptions holds flags shared across every subcommand.
type globalOptions struct {
	dataDir    string
	verbose    bool
	quiet      bool
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "diskjanitor",
		Short:         "Find and reclaim disk space",
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (default ~/.diskjanitor)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "show individual operations")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress output")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "emit machine-readable JSON")

	root.AddCommand(newScanCmd(opts))
	root.AddCommand(newCleanCmd(opts))
	root.AddCommand(newRestoreCmd(opts))
	root.AddCommand(newSessionsCmd(opts))
	root.AddCommand(newPurgeCmd(opts))
	root.AddCommand(newDedupeCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	root.AddCommand(newScheduleCmd(opts))

	return root
}

// resolveDataDir returns the configured data directory, defaulting to
// ~/.diskjanitor.
func (o *globalOptions) resolveDataDir() (string, error) {
	if o.dataDir != "" {
		return o.dataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".diskjanitor"), nil
}

// logger builds the shared structured logger for this invocation: debug
// level under --verbose, warn level under --quiet, info level
// otherwise. The core never prints user-facing output itself; this
// logger is wired into the engines for diagnostic traces only.
func (o *globalOptions) logger() zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case o.verbose:
		level = zerolog.DebugLevel
	case o.quiet:
		level = zerolog.WarnLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// showProgress reports whether progress bars should render: never under
// --quiet or --json (JSON goes to stdout and the bar to stderr, but a bar
// still adds noise to scripted use).
func (o *globalOptions) showProgress() bool {
	return !o.quiet && !o.jsonOutput
}

// loadProfile resolves the named profile, falling back to the
// configuration file's default_profile, then the built-in default.
func loadProfile(dataDir, name string) (profile.Profile, error) {
	if name == "" {
		cfg, err := config.Load(dataDir)
		if err != nil {
			return profile.Profile{}, err
		}
		name = cfg.DefaultProfile
	}
	p, ok := profile.ByName(name)
	if !ok {
		return profile.Profile{}, fmt.Errorf("unknown profile %q", name)
	}
	return p, nil
}
