package wikipix

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

var errNetwork = errors.New("connection refused")

// fakeClient is an in-memory WikiClient backed by literal fixtures.
// failAll makes every method fail, simulating a dead network.
type fakeClient struct {
	searches   map[string][]SearchResult
	links      map[string][]string
	pageImages map[string]string
	filenames  map[string][]string
	infos      map[string]ImageInfo

	failAll bool

	searchCalls    []string
	filenamesCalls int
	infoCalls      int
}

func (f *fakeClient) Search(_ context.Context, query string, _ int) ([]SearchResult, error) {
	f.searchCalls = append(f.searchCalls, query)
	if f.failAll {
		return nil, errNetwork
	}
	return f.searches[query], nil
}

func (f *fakeClient) DisambiguationLinks(_ context.Context, title string) ([]string, error) {
	if f.failAll {
		return nil, errNetwork
	}
	return f.links[title], nil
}

func (f *fakeClient) PageImage(_ context.Context, title string) (string, error) {
	if f.failAll {
		return "", errNetwork
	}
	return f.pageImages[title], nil
}

func (f *fakeClient) ImageFilenames(_ context.Context, title string) ([]string, error) {
	f.filenamesCalls++
	if f.failAll {
		return nil, errNetwork
	}
	return f.filenames[title], nil
}

func (f *fakeClient) ImageInfo(_ context.Context, names []string) ([]ImageInfo, error) {
	f.infoCalls++
	if f.failAll {
		return nil, errNetwork
	}
	var out []ImageInfo
	for _, n := range names {
		if info, ok := f.infos[n]; ok {
			out = append(out, info)
		}
	}
	return out, nil
}

// memCache is a map-backed Cache for tests.
type memCache struct {
	store map[string]Resolution
}

func (c *memCache) Key(prefix, value string) string { return prefix + ":" + value }

func (c *memCache) Get(_ context.Context, key string, dest any) bool {
	r, ok := c.store[key]
	if !ok {
		return false
	}
	*dest.(*Resolution) = r
	return true
}

func (c *memCache) Set(_ context.Context, key string, value any) {
	c.store[key] = value.(Resolution)
}

// princeFixture wires the full disambiguation scenario: the exact-match
// search lands on the "Prince" disambiguation page, whose links lead to the
// musician's article with a canonical image and two usable secondaries.
func princeFixture() *fakeClient {
	return &fakeClient{
		searches: map[string][]SearchResult{
			"Prince": {
				{Title: "Prince", PageID: 57317, Disambiguation: true},
				{Title: "Prince Edward Island", PageID: 24099},
			},
			"Prince (musician)": {
				{Title: "Prince (musician)", PageID: 57317},
			},
		},
		links: map[string][]string{
			"Prince": {
				"Prince Edward Island",
				"Prince (musician)",
				"Prince of Wales",
			},
		},
		pageImages: map[string]string{
			"Prince (musician)": "https://upload.wikimedia.org/prince_infobox.jpg",
		},
		filenames: map[string][]string{
			"Prince (musician)": {
				"File:Flag of France.svg",
				"File:Prince 1984 performance.jpg",
				"File:Commons-logo.svg",
				"File:Prince at Coachella 2008.jpg",
			},
		},
		infos: map[string]ImageInfo{
			"File:Prince 1984 performance.jpg": {
				Filename: "File:Prince 1984 performance.jpg",
				URL:      "https://upload.wikimedia.org/prince_1984.jpg",
				Width:    1200, Height: 800, Mime: "image/jpeg",
			},
			"File:Prince at Coachella 2008.jpg": {
				Filename: "File:Prince at Coachella 2008.jpg",
				URL:      "https://upload.wikimedia.org/prince_coachella.jpg",
				Width:    1024, Height: 683, Mime: "image/jpeg",
			},
		},
	}
}

func TestResolveImagesDisambiguationScenario(t *testing.T) {
	t.Parallel()

	fake := princeFixture()
	cfg := &Config{Client: fake}

	res := cfg.ResolveImages(context.Background(), "Prince", "80s pop musicians", "en")

	if res.Status != StatusSuccess {
		t.Fatalf("status = %s, want success", res.Status)
	}
	if res.SourcePage != "Prince (musician)" {
		t.Errorf("source page = %q, want %q", res.SourcePage, "Prince (musician)")
	}
	if res.Query != "Prince" {
		t.Errorf("query = %q, want %q (disambiguation resolved on the exact candidate)", res.Query, "Prince")
	}

	want := []string{
		"https://upload.wikimedia.org/prince_infobox.jpg",
		"https://upload.wikimedia.org/prince_1984.jpg",
		"https://upload.wikimedia.org/prince_coachella.jpg",
	}
	if !reflect.DeepEqual(res.Images, want) {
		t.Errorf("images = %v, want %v", res.Images, want)
	}
}

func TestResolveImagesNeverExceedsMax(t *testing.T) {
	t.Parallel()

	cfg := &Config{Client: princeFixture()}
	res := cfg.ResolveImages(context.Background(), "Prince", "80s pop musicians", "en")
	if len(res.Images) > DefaultMaxImages {
		t.Errorf("len(images) = %d, want <= %d", len(res.Images), DefaultMaxImages)
	}
}

func TestResolveImagesNoPageFound(t *testing.T) {
	t.Parallel()

	// The API responds to every candidate with nothing usable.
	fake := &fakeClient{searches: map[string][]SearchResult{}}
	cfg := &Config{Client: fake}

	res := cfg.ResolveImages(context.Background(), "Zzyzx Quagga", "obscure things", "en")

	if res.Status != StatusNoPageFound {
		t.Errorf("status = %s, want no_page_found", res.Status)
	}
	if len(res.Images) != 0 {
		t.Errorf("images = %v, want empty", res.Images)
	}
	if res.SourcePage != "" {
		t.Errorf("source page = %q, want unset", res.SourcePage)
	}
}

func TestResolveImagesAllCallsFail(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{failAll: true}
	cfg := &Config{Client: fake}

	res := cfg.ResolveImages(context.Background(), "Prince", "80s pop musicians", "en")

	if res.Status != StatusError {
		t.Errorf("status = %s, want error", res.Status)
	}
	if res.SourcePage != "" {
		t.Errorf("source page = %q, want unset", res.SourcePage)
	}
}

func TestResolveImagesNoImages(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{
		searches: map[string][]SearchResult{
			"Obscure Stub": {{Title: "Obscure Stub", PageID: 99}},
		},
	}
	cfg := &Config{Client: fake}

	res := cfg.ResolveImages(context.Background(), "Obscure Stub", "", "en")

	if res.Status != StatusNoImages {
		t.Errorf("status = %s, want no_images", res.Status)
	}
	if res.SourcePage != "Obscure Stub" {
		t.Errorf("source page = %q, want set even without images", res.SourcePage)
	}
	if len(res.Images) != 0 {
		t.Errorf("images = %v, want empty", res.Images)
	}
}

func TestResolveImagesDeduplicatesPrimary(t *testing.T) {
	t.Parallel()

	// The canonical image is the same file as the best secondary candidate.
	fake := princeFixture()
	fake.pageImages["Prince (musician)"] = "https://upload.wikimedia.org/prince_1984.jpg"
	cfg := &Config{Client: fake}

	res := cfg.ResolveImages(context.Background(), "Prince", "80s pop musicians", "en")

	seen := map[string]int{}
	for _, u := range res.Images {
		seen[u]++
	}
	if seen["https://upload.wikimedia.org/prince_1984.jpg"] != 1 {
		t.Errorf("primary URL appears %d times, want exactly once: %v",
			seen["https://upload.wikimedia.org/prince_1984.jpg"], res.Images)
	}
	if res.Status != StatusSuccess {
		t.Errorf("status = %s, want success", res.Status)
	}
}

func TestResolveImagesSkipsListingWhenPrimaryFills(t *testing.T) {
	t.Parallel()

	fake := princeFixture()
	cfg := &Config{Client: fake, MaxImages: 1}

	res := cfg.ResolveImages(context.Background(), "Prince", "80s pop musicians", "en")

	if len(res.Images) != 1 {
		t.Fatalf("images = %v, want exactly the primary", res.Images)
	}
	if fake.filenamesCalls != 0 {
		t.Errorf("image listing consulted %d times, want 0 once the primary fills the quota", fake.filenamesCalls)
	}
}

func TestResolveImagesDeterministic(t *testing.T) {
	t.Parallel()

	cfg := &Config{Client: princeFixture()}
	first := cfg.ResolveImages(context.Background(), "Prince", "80s pop musicians", "en")
	second := cfg.ResolveImages(context.Background(), "Prince", "80s pop musicians", "en")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs diverged: %+v vs %+v", first, second)
	}
}

func TestResolveImagesUsesCache(t *testing.T) {
	t.Parallel()

	fake := princeFixture()
	cache := &memCache{store: map[string]Resolution{}}
	cfg := &Config{Client: fake, Cache: cache}

	first := cfg.ResolveImages(context.Background(), "Prince", "80s pop musicians", "en")
	callsAfterFirst := len(fake.searchCalls)

	second := cfg.ResolveImages(context.Background(), "Prince", "80s pop musicians", "en")

	if len(fake.searchCalls) != callsAfterFirst {
		t.Errorf("cached resolution still hit the API: %d calls, want %d", len(fake.searchCalls), callsAfterFirst)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cache round-trip changed the result: %+v vs %+v", first, second)
	}
}

func TestResolveImagesEmptyEntity(t *testing.T) {
	t.Parallel()

	cfg := &Config{Client: &fakeClient{}}
	res := cfg.ResolveImages(context.Background(), "", "anything", "en")
	if res.Status != StatusNoPageFound {
		t.Errorf("status = %s, want no_page_found", res.Status)
	}
}

func TestResolveImagesCountsMetrics(t *testing.T) {
	t.Parallel()

	calls := 0
	cfg := &Config{Client: princeFixture(), OnResolve: func() { calls++ }}
	cfg.ResolveImages(context.Background(), "Prince", "80s pop musicians", "en")
	if calls != 1 {
		t.Errorf("OnResolve fired %d times, want 1", calls)
	}
}
