// Package perceptual computes a 256-bit gradient fingerprint for image
// files and clusters them by Hamming distance, the optional fourth pass
// of the duplicate funnel for near-identical (re-encoded, resized,
// re-compressed) photos that will never share a byte-identical hash.
package perceptual

import (
	"cmp"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math/bits"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/diskjanitor/diskjanitor/internal/types"
)

// imageExtensions is the set of extensions considered images. heic and
// heif are recognised by name but have no decoder wired here — Go's
// image ecosystem has no maintained pure decoder for them, so files
// with those extensions are skipped with an error rather than
// misclassified as a different format.
var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true,
	"bmp": true, "tiff": true, "tif": true, "webp": true,
	"heic": true, "heif": true,
}

const hashBits = 256
const hashSide = 16 // 16 x 16 gradient bits = 256

// Hash is a 256-bit perceptual fingerprint.
type Hash [hashBits / 8]byte

// IsImage reports whether path's extension is in the recognised image
// set.
func IsImage(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return imageExtensions[ext]
}

// FilterImages returns the subset of paths that are recognised images.
func FilterImages(paths []string) []string {
	var out []string
	for _, p := range paths {
		if IsImage(p) {
			out = append(out, p)
		}
	}
	return out
}

// Fingerprint is one computed hash bound to its source file.
type Fingerprint struct {
	Path      string
	Hash      Hash
	SizeBytes int64
}

// Compute decodes path, downsamples it, and returns its gradient
// fingerprint.
func Compute(path string) (Hash, error) {
	var h Hash
	f, err := os.Open(path)
	if err != nil {
		return h, err
	}
	defer func() { _ = f.Close() }()

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "heic" || ext == "heif" {
		return h, fmt.Errorf("perceptual: no decoder available for %s", ext)
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return h, err
	}

	// Downscale to (hashSide+1) x hashSide so each row yields hashSide
	// horizontal-gradient bits, hashSide rows -> 256 bits total.
	small := image.NewGray(image.Rect(0, 0, hashSide+1, hashSide))
	draw.BiLinear.Scale(small, small.Bounds(), img, img.Bounds(), draw.Src, nil)

	var bitIdx int
	for y := 0; y < hashSide; y++ {
		for x := 0; x < hashSide; x++ {
			left := small.GrayAt(x, y).Y
			right := small.GrayAt(x+1, y).Y
			if left < right {
				h[bitIdx/8] |= 1 << uint(bitIdx%8)
			}
			bitIdx++
		}
	}
	return h, nil
}

// ComputeAll computes fingerprints for every path, collecting per-file
// errors as non-fatal.
func ComputeAll(paths []string, sizeOf func(string) int64) ([]Fingerprint, []string) {
	var out []Fingerprint
	var errs []string
	for _, p := range paths {
		h, err := Compute(p)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		out = append(out, Fingerprint{Path: p, Hash: h, SizeBytes: sizeOf(p)})
	}
	return out, errs
}

// Distance returns the Hamming distance between two fingerprints.
func Distance(a, b Hash) int {
	d := 0
	for i := range a {
		d += bits.OnesCount8(a[i] ^ b[i])
	}
	return d
}

// GroupSimilar performs greedy single-link clustering over fingerprints
// by Hamming distance. threshold is in [0,1]; the maximum tolerated
// distance is round((1-threshold) * 256). Singleton groups are dropped.
// Groups are sorted by wasted bytes descending; within a group members
// are sorted by size descending with the keeper first.
func GroupSimilar(fingerprints []Fingerprint, threshold float64) []types.DuplicateGroup {
	maxDist := int((1-threshold)*hashBits + 0.5)

	assigned := make([]bool, len(fingerprints))
	var groups []types.DuplicateGroup

	for i := range fingerprints {
		if assigned[i] {
			continue
		}
		members := []types.Member{{Path: fingerprints[i].Path, SizeBytes: fingerprints[i].SizeBytes, Similarity: 1.0}}
		assigned[i] = true

		for j := i + 1; j < len(fingerprints); j++ {
			if assigned[j] {
				continue
			}
			dist := Distance(fingerprints[i].Hash, fingerprints[j].Hash)
			if dist <= maxDist {
				similarity := 1 - float64(dist)/float64(hashBits)
				members = append(members, types.Member{
					Path:       fingerprints[j].Path,
					SizeBytes:  fingerprints[j].SizeBytes,
					Similarity: similarity,
				})
				assigned[j] = true
			}
		}

		if len(members) < 2 {
			continue
		}
		slices.SortFunc(members, func(a, b types.Member) int {
			return cmp.Compare(b.SizeBytes, a.SizeBytes)
		})
		var wasted int64
		for _, m := range members[1:] {
			wasted += m.SizeBytes
		}
		groups = append(groups, types.DuplicateGroup{
			MatchType:   types.MatchPerceptuallySimilar,
			WastedBytes: wasted,
			Members:     members,
		})
	}

	slices.SortFunc(groups, func(a, b types.DuplicateGroup) int {
		return cmp.Compare(b.WastedBytes, a.WastedBytes)
	})
	return groups
}

// DedupeAgainstExact removes any similar group whose members are all
// already members of an exact-match group, per the permissive policy:
// a similar group survives if at least one member is not already
// covered by an exact group.
func DedupeAgainstExact(similar []types.DuplicateGroup, exact []types.DuplicateGroup) []types.DuplicateGroup {
	exactPaths := make(map[string]bool)
	for _, g := range exact {
		for _, m := range g.Members {
			exactPaths[m.Path] = true
		}
	}

	var out []types.DuplicateGroup
	for _, g := range similar {
		coveredAll := true
		for _, m := range g.Members {
			if !exactPaths[m.Path] {
				coveredAll = false
				break
			}
		}
		if !coveredAll {
			out = append(out, g)
		}
	}
	return out
}

