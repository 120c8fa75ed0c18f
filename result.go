package wikipix

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Status is the terminal outcome of a resolution.
type Status int

const (
	// StatusSuccess: at least one image was resolved. Partial recovery
	// (1 of 3 desired images) is still success.
	StatusSuccess Status = iota

	// StatusNoPageFound: the API responded but no candidate query resolved
	// to a non-disambiguation page.
	StatusNoPageFound

	// StatusNoImages: a page was resolved but zero images survived scoring
	// and filtering.
	StatusNoImages

	// StatusError: every network interaction failed.
	StatusError
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNoPageFound:
		return "no_page_found"
	case StatusNoImages:
		return "no_images"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the status by its wire name, so serialized resolutions
// read "success" rather than 0.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a wire-name status. Round-trips with MarshalJSON so
// cached resolutions survive a JSON-backed Cache.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "success":
		*s = StatusSuccess
	case "no_page_found":
		*s = StatusNoPageFound
	case "no_images":
		*s = StatusNoImages
	case "error":
		*s = StatusError
	default:
		return fmt.Errorf("unknown status %q", name)
	}
	return nil
}

// Resolution is the final outcome of one ResolveImages call.
// Invariants: len(Images) <= MaxImages; Status is StatusSuccess exactly when
// Images is non-empty; SourcePage and Query are set exactly when a page was
// resolved, whether or not images were found.
type Resolution struct {
	Images     []string `json:"images"`
	SourcePage string   `json:"source_page,omitempty"`
	Query      string   `json:"search_query,omitempty"`
	Status     Status   `json:"status"`
}

// assemble combines the primary image with the resolved secondary images:
// primary first, secondaries in rank order, deduplicated by file URL,
// truncated to max.
func assemble(page Page, query, primary string, secondary []ImageInfo, max int) Resolution {
	seen := make(map[string]bool, max)
	images := make([]string, 0, max)

	add := func(url string) {
		if url == "" || seen[url] || len(images) >= max {
			return
		}
		seen[url] = true
		images = append(images, url)
	}

	add(primary)
	for _, info := range secondary {
		add(info.URL)
	}

	status := StatusNoImages
	if len(images) > 0 {
		status = StatusSuccess
	}

	return Resolution{
		Images:     images,
		SourcePage: page.Title,
		Query:      query,
		Status:     status,
	}
}
