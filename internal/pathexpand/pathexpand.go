// Package pathexpand resolves scan target patterns — which may use the
// "~" home shorthand and shell glob wildcards — into concrete absolute
// paths that exist on disk.
package pathexpand

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand resolves pattern into zero or more existing absolute paths. A
// leading "~" is replaced with the current user's home directory before
// globbing. A pattern that matches nothing yields zero paths, not an
// error: a target whose glob doesn't match on this machine (e.g. an app
// that isn't installed) is simply absent, not a failure.
func Expand(pattern string) ([]string, error) {
	expanded, err := expandHome(pattern)
	if err != nil {
		return nil, err
	}

	if !strings.ContainsAny(expanded, "*?[") {
		if _, err := os.Lstat(expanded); err != nil {
			return nil, nil
		}
		return []string{expanded}, nil
	}

	matches, err := filepath.Glob(expanded)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// ExpandAll expands every pattern and returns the deduplicated union of
// matches, preserving first-seen order.
func ExpandAll(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range patterns {
		matches, err := Expand(p)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func expandHome(pattern string) (string, error) {
	if pattern != "~" && !strings.HasPrefix(pattern, "~/") {
		return pattern, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if pattern == "~" {
		return home, nil
	}
	return filepath.Join(home, pattern[2:]), nil
}
