package wikipix

import "golang.org/x/text/language"

// defaultLanguage is the edition queried when the tag is absent or invalid.
const defaultLanguage = "en"

// normalizeLanguage turns a caller-supplied BCP-47 tag into the subdomain of
// a Wikipedia language edition. Editions are keyed by base language ("pt-BR"
// still queries pt.wikipedia.org); garbage falls back to English rather than
// producing a dead hostname.
func normalizeLanguage(tag string) string {
	if tag == "" {
		return defaultLanguage
	}

	parsed, err := language.Parse(tag)
	if err != nil {
		return defaultLanguage
	}

	base, conf := parsed.Base()
	if conf == language.No {
		return defaultLanguage
	}
	return base.String()
}
