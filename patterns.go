package wikipix

import "strings"

// SkipPatterns are filename substrings that mark wiki chrome and other
// never-useful files: interface icons, maintenance templates, media players,
// signatures, audio formats.
var SkipPatterns = []string{
	"commons-logo", "wiki", "edit-clear", "symbol_",
	"pictogram", "ambox", "padlock", "question",
	"crystal", "folder", "gnome", "nuvola",
	"red_pencil", "disambig", "stub", "portal",
	"p_vip", "star_full", "signature", "autograph",
	"wma", "ogg", "mid", "octicons", "oojs",
}

// GenericPatterns are filename substrings for images that belong to a page
// without depicting its subject: maps, flags, heraldry, charts.
var GenericPatterns = []string{
	"map", "flag", "chart", "diagram", "graph", "icon",
	"location", "logo", "coat_of_arms", "emblem", "seal",
}

// IsSkippable checks if a lowercased filename contains a skip pattern.
func IsSkippable(lower string) bool {
	for _, p := range SkipPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// IsGeneric checks if a lowercased filename contains a generic-content pattern.
func IsGeneric(lower string) bool {
	for _, p := range GenericPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
