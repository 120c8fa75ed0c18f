package wikipix

import (
	"context"
	"log/slog"
)

// ResolveImages resolves a free-text entity name plus a loose category hint
// into up to MaxImages representative image URLs from the given Wikipedia
// language edition.
//
// The pipeline runs strictly in sequence: classify the category, build the
// candidate queries, commit to one page, fetch its canonical image, then
// score, filter and resolve secondary images. Failures local to one
// candidate or one filename are absorbed; only exhaustion escalates into the
// terminal Status. The engine holds no state between calls, so concurrent
// resolutions are fully independent.
func (cfg *Config) ResolveImages(ctx context.Context, entity, category, language string) (res Resolution) {
	cfg.defaults()

	defer func() {
		if r := recover(); r != nil {
			if cfg.OnPanic != nil {
				cfg.OnPanic("resolveImages", r)
			}
			res = Resolution{Status: StatusError}
		}
	}()

	if cfg.OnResolve != nil {
		cfg.OnResolve()
	}

	if entity == "" {
		return Resolution{Status: StatusNoPageFound}
	}

	var cacheKey string
	if cfg.Cache != nil {
		cacheKey = cfg.Cache.Key("wikipix:resolve", entity+"|"+category+"|"+language)
		var cached Resolution
		if cfg.Cache.Get(ctx, cacheKey, &cached) {
			return cached
		}
	}

	hints := ClassifyCategory(category)
	candidates := BuildSearchCandidates(entity, hints, category)
	client := cfg.client(language)

	page, query, resolved, sawResponse := cfg.resolvePage(ctx, client, entity, hints, candidates)
	if !resolved {
		status := StatusNoPageFound
		if !sawResponse {
			status = StatusError
		}
		slog.Debug("wikipix: no page resolved", "entity", entity, "status", status.String())
		// Not cached: a dead network or an unlucky candidate walk should
		// not pin a failure for the cache's lifetime.
		return Resolution{Status: status}
	}

	primary := fetchPrimaryImage(ctx, client, page.Title)

	// The page's own listing is only consulted when the canonical image
	// alone does not satisfy MaxImages.
	var secondary []ImageInfo
	need := cfg.MaxImages
	if primary != "" {
		need--
	}
	if need > 0 {
		filenames := collectImageFilenames(ctx, client, page.Title)
		ranked := FilterCandidates(entity, filenames)
		secondary = cfg.resolveImageURLs(ctx, client, ranked, need, map[string]bool{primary: true})
	}

	res = assemble(page, query, primary, secondary, cfg.MaxImages)
	slog.Debug("wikipix: resolved", "entity", entity, "page", page.Title, "images", len(res.Images), "status", res.Status.String())
	cfg.cacheSet(ctx, cacheKey, res)
	return res
}

func (cfg *Config) cacheSet(ctx context.Context, key string, res Resolution) {
	if cfg.Cache == nil || key == "" {
		return
	}
	cfg.Cache.Set(ctx, key, res)
}
