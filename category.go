package wikipix

import "strings"

// Hint is a coarse domain tag derived from a free-text category.
type Hint int

// Domain tags. HintGeneric is the zero value and never classified into;
// it exists so a Hint field can express "no domain known".
const (
	HintGeneric Hint = iota
	HintMusic
	HintFilm
	HintSports
	HintScience
	HintPolitics
)

// String returns the tag name.
func (h Hint) String() string {
	switch h {
	case HintMusic:
		return "music"
	case HintFilm:
		return "film"
	case HintSports:
		return "sports"
	case HintScience:
		return "science"
	case HintPolitics:
		return "politics"
	default:
		return "generic"
	}
}

// classifiedHints is the fixed classification order. Keeping it explicit makes
// ClassifyCategory deterministic irrespective of map iteration.
var classifiedHints = []Hint{HintMusic, HintFilm, HintSports, HintScience, HintPolitics}

// categoryKeywords maps each tag to the category substrings that fire it.
var categoryKeywords = map[Hint][]string{
	HintMusic:    {"band", "rock", "pop", "music", "singer", "artist", "rapper", "hip hop"},
	HintFilm:     {"movie", "film", "actor", "actress", "star", "hollywood"},
	HintSports:   {"sport", "athlete", "player", "olympic", "champion", "football", "basketball", "tennis"},
	HintScience:  {"science", "scientist", "physicist", "nobel", "inventor", "researcher"},
	HintPolitics: {"leader", "president", "monarch", "king", "queen", "politician"},
}

// hintSuffixes maps each tag to its disambiguation suffixes, in the order
// search candidates are generated. An explicit table rather than runtime
// string dispatch so the strategy stays testable and exhaustive.
var hintSuffixes = map[Hint][]string{
	HintMusic:    {"musician", "band", "singer", "musical artist"},
	HintFilm:     {"actor", "actress", "film", "entertainer"},
	HintSports:   {"athlete", "sportsperson", "player"},
	HintScience:  {"scientist", "physicist", "researcher"},
	HintPolitics: {"politician", "leader", "monarch"},
}

// ClassifyCategory maps a free-text category to its domain tags.
// Matching is case-insensitive substring; several tags may fire
// ("science fiction film" yields both science and film). An empty result is
// valid and simply produces no suffixed search candidates downstream.
func ClassifyCategory(category string) []Hint {
	if category == "" {
		return nil
	}

	lower := strings.ToLower(category)

	var hints []Hint
	for _, h := range classifiedHints {
		for _, kw := range categoryKeywords[h] {
			if strings.Contains(lower, kw) {
				hints = append(hints, h)
				break
			}
		}
	}
	return hints
}

// hintTerms flattens the suffix vocabulary of the given tags, preserving
// table order. Used when scanning disambiguation links for a domain match.
func hintTerms(hints []Hint) []string {
	var terms []string
	for _, h := range hints {
		terms = append(terms, hintSuffixes[h]...)
	}
	return terms
}
