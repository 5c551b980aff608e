// Package hasher computes content hashes used by the duplicate funnel:
// a cheap 4 KiB prefix hash and a streaming full-file hash, both
// SHA-256 so a prefix match is never falsified by the full hash using a
// different algorithm.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

const (
	prefixSize = 4096
	bufSize    = 1 << 20 // 1 MiB streaming buffer
)

// PrefixHash returns the hex-encoded SHA-256 of the first 4096 bytes of
// path, or of the whole file if it is shorter.
func PrefixHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.CopyN(h, f, prefixSize); err != nil && err != io.EOF {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FullHash returns the hex-encoded SHA-256 of the entire file at path,
// streamed through a 1 MiB buffer.
func FullHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	buf := make([]byte, bufSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// GroupBy maps each path to its hash using hashFn, grouping paths by
// hash value and dropping singleton groups. Errors hashing a path are
// treated as non-fatal: the path is simply dropped from its group.
func GroupBy(paths []string, hashFn func(string) (string, error)) (map[string][]string, []string) {
	groups := make(map[string][]string)
	var errs []string

	for _, p := range paths {
		h, err := hashFn(p)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		groups[h] = append(groups[h], p)
	}

	for h, members := range groups {
		if len(members) < 2 {
			delete(groups, h)
		}
	}
	return groups, errs
}
