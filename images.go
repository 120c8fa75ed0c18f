package wikipix

import (
	"context"
	"log/slog"
)

// fetchPrimaryImage returns the canonical/infobox image URL of a resolved
// page. Absence of a canonical image is not an error, and a failed lookup is
// absorbed: either way resolution proceeds to secondary images with "".
func fetchPrimaryImage(ctx context.Context, client WikiClient, title string) string {
	primary, err := client.PageImage(ctx, title)
	if err != nil {
		slog.Warn("wikipix: page image lookup failed", "page", title, "error", err.Error())
		return ""
	}
	return primary
}

// collectImageFilenames lists the unscored image filenames of a resolved
// page, in page order. An empty listing is valid; a failed one is absorbed.
func collectImageFilenames(ctx context.Context, client WikiClient, title string) []string {
	names, err := client.ImageFilenames(ctx, title)
	if err != nil {
		slog.Warn("wikipix: image listing failed", "page", title, "error", err.Error())
		return nil
	}
	return names
}
