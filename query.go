package wikipix

import "fmt"

// Strategy identifies how a search candidate was constructed.
type Strategy int

// Candidate strategies, in the order they are tried.
const (
	StrategyExact Strategy = iota
	StrategySuffixed
	StrategyCategoryEnhanced
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyExact:
		return "exact"
	case StrategySuffixed:
		return "suffixed"
	case StrategyCategoryEnhanced:
		return "category-enhanced"
	default:
		return "unknown"
	}
}

// SearchCandidate is one query to try against the search API.
type SearchCandidate struct {
	Query    string
	Strategy Strategy
}

// BuildSearchCandidates produces the ordered query sequence for an entity:
//
//  1. the exact name,
//  2. the name with each disambiguation suffix of each hint, in table order
//     ("Prince (musician)", "Prince (band)", ...),
//  3. the name concatenated with the raw category, as a broad catch-all.
//
// Precision-first: cheap exact matches are preferred over noisier queries.
// With no hints and no category the sequence is just the exact name.
func BuildSearchCandidates(name string, hints []Hint, category string) []SearchCandidate {
	candidates := []SearchCandidate{{Query: name, Strategy: StrategyExact}}

	for _, h := range hints {
		for _, suffix := range hintSuffixes[h] {
			candidates = append(candidates, SearchCandidate{
				Query:    fmt.Sprintf("%s (%s)", name, suffix),
				Strategy: StrategySuffixed,
			})
		}
	}

	if category != "" {
		candidates = append(candidates, SearchCandidate{
			Query:    name + " " + category,
			Strategy: StrategyCategoryEnhanced,
		})
	}

	return candidates
}
