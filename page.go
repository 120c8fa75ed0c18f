package wikipix

import (
	"context"
	"log/slog"
	"strings"
)

// Page is the committed target of a page lookup. A disambiguation page is
// never accepted as a target: it is either expanded through its links or the
// candidate that produced it is abandoned.
type Page struct {
	Title string
	ID    int
}

// resolvePage walks the candidate queries in order and commits to the first
// acceptable page. First hit wins: once a candidate resolves, later ones are
// never consulted. A disambiguation hit is expanded through its link list; a
// failed expansion moves on to the next candidate.
//
// A network failure on one candidate is absorbed and the walk continues.
// sawResponse distinguishes "the API answered but found nothing usable" from
// "every call failed" so the caller can report no_page_found vs error.
func (cfg *Config) resolvePage(ctx context.Context, client WikiClient, entity string, hints []Hint, candidates []SearchCandidate) (page Page, query string, resolved, sawResponse bool) {
	tokens := strings.Fields(strings.ToLower(entity))
	terms := hintTerms(hints)

	for _, cand := range candidates {
		results, err := client.Search(ctx, cand.Query, searchLimit)
		if err != nil {
			if errBreakerOpen(err) {
				slog.Debug("wikipix: search skipped, breaker open", "query", cand.Query)
			} else {
				slog.Warn("wikipix: search failed", "query", cand.Query, "strategy", cand.Strategy.String(), "error", err.Error())
			}
			continue
		}
		sawResponse = true

		if len(results) == 0 {
			continue
		}

		first := results[0]
		if !first.Disambiguation {
			return Page{Title: first.Title, ID: first.PageID}, cand.Query, true, true
		}

		links, err := client.DisambiguationLinks(ctx, first.Title)
		if err != nil {
			slog.Warn("wikipix: disambiguation links failed", "page", first.Title, "error", err.Error())
			continue
		}

		best := PickBestDisambiguationLink(tokens, terms, links)
		if best == "" {
			continue
		}

		// The link carries a title only; one more lookup pins down the page.
		pinned, err := client.Search(ctx, best, 1)
		if err != nil || len(pinned) == 0 || pinned[0].Disambiguation {
			continue
		}
		slog.Debug("wikipix: disambiguation resolved", "from", first.Title, "to", pinned[0].Title)
		return Page{Title: pinned[0].Title, ID: pinned[0].PageID}, cand.Query, true, true
	}

	return Page{}, "", false, sawResponse
}

// PickBestDisambiguationLink scans a disambiguation page's link titles for
// the entry that best matches the entity. A link qualifies when it contains
// every entity-name token (case-insensitive); among qualifying links the
// first one that also carries a hint term wins, otherwise the first
// qualifying link in page order. Returns "" when nothing qualifies.
//
// Pure function over literal link lists, no network involved.
func PickBestDisambiguationLink(entityTokens, hintTerms, links []string) string {
	fallback := ""
	for _, link := range links {
		lower := strings.ToLower(link)

		qualified := true
		for _, tok := range entityTokens {
			if !strings.Contains(lower, tok) {
				qualified = false
				break
			}
		}
		if !qualified {
			continue
		}

		for _, term := range hintTerms {
			if strings.Contains(lower, term) {
				return link
			}
		}
		if fallback == "" {
			fallback = link
		}
	}
	return fallback
}
