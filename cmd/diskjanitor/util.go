package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
)

// parseSize parses a human-readable size string into bytes, e.g. "100",
// "1K", "1MB", "1GiB".
func parseSize(s string) (int64, error) {
	bytes, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	return int64(bytes), nil
}

// printJSON marshals v as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// fmtBytes is a shorthand for humane byte-count formatting across report
// output.
func fmtBytes(n int64) string {
	return humanize.IBytes(uint64(n))
}

// drainErrors prints non-fatal errors to stderr, one per line.
func drainErrors(errs []string) {
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "warning: %s\n", e)
	}
}

// fileExists reports whether path exists on disk.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
