package duplicate

import (
	"github.com/diskjanitor/diskjanitor/internal/perceptual"
	"github.com/diskjanitor/diskjanitor/internal/types"
)

// FullResult is the funnel's output once the optional fourth,
// perceptual-similarity pass has run: exact byte-duplicate groups plus
// perceptually similar image groups, with any similar group fully
// covered by an exact group removed to avoid double-reporting.
type FullResult struct {
	ExactGroups   []types.DuplicateGroup
	SimilarGroups []types.DuplicateGroup
	Errors        []string
}

// FindAll runs the three-pass exact funnel and, when perceptualThreshold
// is greater than 0, the fourth perceptual-similarity pass over the
// image files among the same candidate set, followed by the dedup
// step that drops similar groups already fully covered by an exact
// group.
func FindAll(cfg Config, perceptualThreshold float64) FullResult {
	if cfg.MinSize <= 0 {
		cfg.MinSize = DefaultMinSize
	}

	exact := Find(cfg)
	result := FullResult{ExactGroups: exact.ExactGroups, Errors: exact.Errors}

	if perceptualThreshold <= 0 {
		return result
	}

	files, cerrs := collectFiles(cfg.Roots, cfg.MinSize)
	result.Errors = append(result.Errors, cerrs...)

	sizeOf := make(map[string]int64, len(files))
	var imagePaths []string
	for _, f := range files {
		sizeOf[f.path] = f.size
		if perceptual.IsImage(f.path) {
			imagePaths = append(imagePaths, f.path)
		}
	}

	fingerprints, ferrs := perceptual.ComputeAll(imagePaths, func(p string) int64 { return sizeOf[p] })
	result.Errors = append(result.Errors, ferrs...)

	similar := perceptual.GroupSimilar(fingerprints, perceptualThreshold)
	result.SimilarGroups = perceptual.DedupeAgainstExact(similar, result.ExactGroups)

	return result
}
