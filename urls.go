package wikipix

import (
	"context"
	"log/slog"
)

// batchTitleLimit is the API's cap on titles per imageinfo call. The image
// listing is bounded well below it, so one batch always suffices.
const batchTitleLimit = 50

// resolveImageURLs resolves display URLs and dimensions for the ranked
// candidates in one batch lookup, then walks them best-first keeping those
// inside the size window until need images are collected. Candidates absent
// from the response (deleted between listing and lookup), without a URL, in
// the exclude set, or outside the size window are dropped silently; a failed
// batch call yields nothing rather than failing the request.
func (cfg *Config) resolveImageURLs(ctx context.Context, client WikiClient, candidates []Candidate, need int, exclude map[string]bool) []ImageInfo {
	if need <= 0 || len(candidates) == 0 {
		return nil
	}

	if len(candidates) > batchTitleLimit {
		candidates = candidates[:batchTitleLimit]
	}
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Filename)
	}

	infos, err := client.ImageInfo(ctx, names)
	if err != nil {
		slog.Warn("wikipix: imageinfo lookup failed", "files", len(names), "error", err.Error())
		return nil
	}

	byName := make(map[string]ImageInfo, len(infos))
	for _, info := range infos {
		byName[info.Filename] = info
	}

	var resolved []ImageInfo
	for _, c := range candidates {
		info, ok := byName[c.Filename]
		if !ok || info.URL == "" {
			continue
		}
		if exclude[info.URL] {
			continue
		}
		if !cfg.sizeOK(info.Width, info.Height) {
			slog.Debug("wikipix: size rejected", "file", c.Filename, "width", info.Width, "height", info.Height)
			continue
		}
		resolved = append(resolved, info)
		if len(resolved) >= need {
			break
		}
	}
	return resolved
}
