package wikipix

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	// searchLimit is how many titles a single search call may return.
	searchLimit = 3

	// imageListLimit bounds the per-page image filename listing.
	imageListLimit = 30

	// maxResponseBytes caps an API response body read.
	maxResponseBytes = 4 << 20

	// breakerThreshold is the consecutive-failure count that opens the
	// per-client circuit breaker; remaining calls in the resolution then
	// fail fast instead of each waiting out the full timeout.
	breakerThreshold = 3

	// apiRequestsPerSecond / apiBurst smooth the outbound call rate across
	// all live clients, per Wikimedia API etiquette.
	apiRequestsPerSecond = 10
	apiBurst             = 10
)

// apiLimiter is shared by every live client so concurrent resolutions
// stay within the courtesy rate as a whole.
var apiLimiter = rate.NewLimiter(rate.Limit(apiRequestsPerSecond), apiBurst)

// SearchResult is one title returned by a search lookup.
type SearchResult struct {
	Title          string
	PageID         int
	Disambiguation bool
}

// ImageInfo is the resolved metadata of one image file.
type ImageInfo struct {
	Filename string // the file title the lookup was keyed by
	URL      string
	Width    int
	Height   int
	Mime     string
}

// WikiClient is the narrow seam to the content API. Everything the engine
// needs is these five lookups, so the whole pipeline runs against an
// in-memory fake in tests.
type WikiClient interface {
	// Search returns up to limit candidate pages for a free-text query,
	// flagged when they are disambiguation pages.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)

	// DisambiguationLinks returns the outbound article links of a
	// disambiguation page, in page order.
	DisambiguationLinks(ctx context.Context, title string) ([]string, error)

	// PageImage returns the URL of a page's canonical/infobox image,
	// or "" when the page has none (not an error).
	PageImage(ctx context.Context, title string) (string, error)

	// ImageFilenames lists the image file titles associated with a page.
	ImageFilenames(ctx context.Context, title string) ([]string, error)

	// ImageInfo resolves URL, dimensions and MIME type for a batch of file
	// titles. Files missing from the response were deleted; callers drop
	// them silently.
	ImageInfo(ctx context.Context, filenames []string) ([]ImageInfo, error)
}

// apiClient is the live MediaWiki implementation of WikiClient, bound to one
// language edition.
type apiClient struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	timeout    time.Duration
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

func newAPIClient(cfg *Config, language string) *apiClient {
	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.wikipedia.org/w/api.php", normalizeLanguage(language))
	}
	return &apiClient{
		httpClient: cfg.HTTPClient,
		userAgent:  cfg.UserAgent,
		baseURL:    baseURL,
		timeout:    cfg.RequestTimeout,
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name: "mediawiki",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerThreshold
			},
		}),
	}
}

// get performs one rate-limited, breaker-guarded API call and returns the
// raw response body.
func (c *apiClient) get(ctx context.Context, params url.Values) ([]byte, error) {
	if err := apiLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	return c.breaker.Execute(func() ([]byte, error) {
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("api status %d", resp.StatusCode)
		}

		return io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	})
}

func baseParams(action string) url.Values {
	return url.Values{
		"action": {action},
		"format": {"json"},
	}
}

// Search uses generator=search with the disambiguation pageprop so a single
// call yields both the ranked titles and their disambiguation flags. Pages
// whose title carries "(disambiguation)" are flagged even when the pageprop
// is absent from the response.
func (c *apiClient) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = searchLimit
	}

	params := baseParams("query")
	params.Set("generator", "search")
	params.Set("gsrsearch", query)
	params.Set("gsrlimit", fmt.Sprint(limit))
	params.Set("prop", "pageprops")
	params.Set("ppprop", "disambiguation")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Query struct {
			Pages map[string]struct {
				PageID    int               `json:"pageid"`
				Title     string            `json:"title"`
				Index     int               `json:"index"`
				PageProps map[string]string `json:"pageprops"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, err
	}

	type ranked struct {
		result SearchResult
		index  int
	}
	var pages []ranked
	for _, p := range decoded.Query.Pages {
		_, isDisambig := p.PageProps["disambiguation"]
		if !isDisambig {
			isDisambig = strings.Contains(strings.ToLower(p.Title), "disambiguation")
		}
		pages = append(pages, ranked{
			result: SearchResult{Title: p.Title, PageID: p.PageID, Disambiguation: isDisambig},
			index:  p.Index,
		})
	}

	// The pages object is an unordered map; the generator's rank lives in
	// the index field.
	sort.Slice(pages, func(i, j int) bool { return pages[i].index < pages[j].index })

	results := make([]SearchResult, 0, len(pages))
	for _, p := range pages {
		results = append(results, p.result)
	}
	return results, nil
}

// DisambiguationLinks lists a disambiguation page's mainspace links in page
// order.
func (c *apiClient) DisambiguationLinks(ctx context.Context, title string) ([]string, error) {
	params := baseParams("query")
	params.Set("titles", title)
	params.Set("prop", "links")
	params.Set("plnamespace", "0")
	params.Set("pllimit", "max")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Query struct {
			Pages map[string]struct {
				Links []struct {
					Title string `json:"title"`
				} `json:"links"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, err
	}

	var links []string
	for _, p := range decoded.Query.Pages {
		for _, l := range p.Links {
			links = append(links, l.Title)
		}
	}
	return links, nil
}

// PageImage fetches the canonical/infobox image URL of a page, "" when the
// page has none.
func (c *apiClient) PageImage(ctx context.Context, title string) (string, error) {
	params := baseParams("query")
	params.Set("titles", title)
	params.Set("prop", "pageimages")
	params.Set("piprop", "original")

	body, err := c.get(ctx, params)
	if err != nil {
		return "", err
	}

	var decoded struct {
		Query struct {
			Pages map[string]struct {
				Original struct {
					Source string `json:"source"`
				} `json:"original"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", err
	}

	for _, p := range decoded.Query.Pages {
		if p.Original.Source != "" {
			return p.Original.Source, nil
		}
	}
	return "", nil
}

// ImageFilenames lists the file titles used on a page, in page order.
func (c *apiClient) ImageFilenames(ctx context.Context, title string) ([]string, error) {
	params := baseParams("query")
	params.Set("titles", title)
	params.Set("prop", "images")
	params.Set("imlimit", fmt.Sprint(imageListLimit))

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Query struct {
			Pages map[string]struct {
				Images []struct {
					Title string `json:"title"`
				} `json:"images"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, err
	}

	var names []string
	for _, p := range decoded.Query.Pages {
		for _, img := range p.Images {
			names = append(names, img.Title)
		}
	}
	return names, nil
}

// ImageInfo resolves URL, size and MIME for a batch of file titles in one
// call. The API normalizes titles (underscores, casing); results are mapped
// back to the caller's spelling via the normalized list. Deleted files come
// back flagged missing and are omitted.
func (c *apiClient) ImageInfo(ctx context.Context, filenames []string) ([]ImageInfo, error) {
	if len(filenames) == 0 {
		return nil, nil
	}

	params := baseParams("query")
	params.Set("titles", strings.Join(filenames, "|"))
	params.Set("prop", "imageinfo")
	params.Set("iiprop", "url|size|mime")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Query struct {
			Normalized []struct {
				From string `json:"from"`
				To   string `json:"to"`
			} `json:"normalized"`
			Pages map[string]struct {
				Title     string `json:"title"`
				ImageInfo []struct {
					URL    string `json:"url"`
					Width  int    `json:"width"`
					Height int    `json:"height"`
					Mime   string `json:"mime"`
				} `json:"imageinfo"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, err
	}

	denormalize := make(map[string]string, len(decoded.Query.Normalized))
	for _, n := range decoded.Query.Normalized {
		denormalize[n.To] = n.From
	}

	infoByName := make(map[string]ImageInfo)
	for _, p := range decoded.Query.Pages {
		if len(p.ImageInfo) == 0 {
			continue
		}
		name := p.Title
		if from, ok := denormalize[name]; ok {
			name = from
		}
		info := p.ImageInfo[0]
		infoByName[name] = ImageInfo{
			Filename: name,
			URL:      info.URL,
			Width:    info.Width,
			Height:   info.Height,
			Mime:     info.Mime,
		}
	}

	// Preserve the caller's ordering.
	results := make([]ImageInfo, 0, len(infoByName))
	for _, name := range filenames {
		if info, ok := infoByName[name]; ok {
			results = append(results, info)
		}
	}
	return results, nil
}

// errBreakerOpen reports whether an error came from the open circuit breaker
// rather than the wire. Both count as transport failures.
func errBreakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
