package wikipix

import (
	"sort"
	"strings"
)

// imageExtensions are the raster/vector formats a candidate may carry.
// Anything else (PDF, TIFF, DjVu, audio) is dropped outright.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".svg"}

// Candidate is a page image filename with its relevance score.
// Ephemeral: lives only within one resolution call.
type Candidate struct {
	Filename string
	Score    int
}

// FilterCandidates drops structurally unsuitable filenames, scores the
// survivors against the entity name, and ranks them best-first.
// Dropped: skip-pattern matches (wiki chrome, signatures, audio), unknown
// formats, and SVGs that are not logos (an SVG portrait does not exist; an
// SVG logo is a legitimate depiction of a band or company).
//
// The sort is stable, so equal scores keep the page's own image order as a
// secondary relevance signal. Idempotent: re-filtering the surviving
// filenames yields the same set in the same order.
func FilterCandidates(entity string, filenames []string) []Candidate {
	var kept []Candidate
	for _, name := range filenames {
		lower := strings.ToLower(name)

		if IsSkippable(lower) {
			continue
		}
		if !hasImageExtension(lower) {
			continue
		}
		if strings.Contains(lower, ".svg") && !strings.Contains(lower, "logo") {
			continue
		}

		kept = append(kept, Candidate{Filename: name, Score: ScoreFilename(entity, name)})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	return kept
}

func hasImageExtension(lower string) bool {
	for _, ext := range imageExtensions {
		if strings.Contains(lower, ext) {
			return true
		}
	}
	return false
}

// sizeOK reports whether dimensions fall in the usable-depiction window:
// both sides at least MinImageDim and at most MaxImageDim.
func (cfg *Config) sizeOK(width, height int) bool {
	if width < cfg.MinImageDim || height < cfg.MinImageDim {
		return false
	}
	if width > cfg.MaxImageDim || height > cfg.MaxImageDim {
		return false
	}
	return true
}
