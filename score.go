package wikipix

import "strings"

// Scoring weights. Empirically tuned, not load-bearing: tweak freely, the
// pipeline only depends on the relative ordering they induce.
const (
	scoreTokenMatch     = 1 // per entity-name token found in the filename
	scoreFullNameBonus  = 5 // full entity name appears verbatim
	scoreEdgeTokenBonus = 1 // first or last token alone (usually first/last name)
	scoreGenericPenalty = 3 // subtracted for generic-content vocabulary
)

// ScoreFilename rates how likely a filename depicts the named entity.
// All matching is case-insensitive substring. Additive:
//
//   - +1 per whitespace-delimited name token present in the filename,
//   - +5 when the full name appears verbatim,
//   - +1 each for the first and last token on multi-token names
//     (stacks with the per-token score),
//   - -3 when the filename matches the generic-content vocabulary.
func ScoreFilename(entity, filename string) int {
	lower := strings.ToLower(filename)
	entityLower := strings.ToLower(entity)
	tokens := strings.Fields(entityLower)

	score := 0
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			score += scoreTokenMatch
		}
	}

	if strings.Contains(lower, entityLower) {
		score += scoreFullNameBonus
	}

	if len(tokens) >= 2 {
		if strings.Contains(lower, tokens[0]) {
			score += scoreEdgeTokenBonus
		}
		if strings.Contains(lower, tokens[len(tokens)-1]) {
			score += scoreEdgeTokenBonus
		}
	}

	if IsGeneric(lower) {
		score -= scoreGenericPenalty
	}

	return score
}
