// Command diskjanitor is the CLI boundary over the disk-cleanup core: it
// parses flags, wires them into the core engines, and formats results.
// It contains no business logic of its own.
package main

import "os"

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}
