package wikipix

import (
	"context"
	"net/http"
	"time"
)

const (
	// DefaultMaxImages is the number of images a resolution tries to collect.
	DefaultMaxImages = 3

	// DefaultMinImageDim is the minimum pixel width/height for accepted images.
	// Anything smaller is an icon, not a depiction.
	DefaultMinImageDim = 100

	// DefaultMaxImageDim is the maximum pixel width/height for accepted images.
	// Anything larger is a degenerate scan or panorama strip.
	DefaultMaxImageDim = 5000

	// DefaultRequestTimeout bounds every single outbound API call.
	DefaultRequestTimeout = 10 * time.Second
)

// Cache abstracts key-value caching (Redis, sync.Map, etc.)
// Result caching by (entity, category, language) is owned by the consumer;
// the engine itself holds no state between calls.
type Cache interface {
	Key(prefix, value string) string
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
}

// Config holds all dependencies injected by the consumer.
// The zero value is usable: defaults() fills unset fields.
type Config struct {
	Client     WikiClient   // override API backend (nil = live MediaWiki client)
	HTTPClient *http.Client // optional: default http client (nil = http.DefaultClient)
	Cache      Cache        // optional result cache (nil = no caching)

	// UserAgent is the identifying client label sent with every API call.
	// The Wikimedia API usage policy requires a descriptive one with contact
	// information; the default identifies this library.
	UserAgent string

	// APIBaseURL overrides the API endpoint ("https://<lang>.wikipedia.org/w/api.php"
	// when empty). Set by tests to point at a mock server.
	APIBaseURL string

	MaxImages      int           // default: DefaultMaxImages (3)
	MinImageDim    int           // default: DefaultMinImageDim (100)
	MaxImageDim    int           // default: DefaultMaxImageDim (5000)
	RequestTimeout time.Duration // default: DefaultRequestTimeout (10s)

	// Optional callbacks for metrics/logging.
	OnResolve func()
	OnPanic   func(tag string, r any)
}

// defaults fills zero-value fields with sensible defaults.
func (cfg *Config) defaults() {
	if cfg.MaxImages <= 0 {
		cfg.MaxImages = DefaultMaxImages
	}
	if cfg.MinImageDim <= 0 {
		cfg.MinImageDim = DefaultMinImageDim
	}
	if cfg.MaxImageDim <= 0 {
		cfg.MaxImageDim = DefaultMaxImageDim
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "go-wikipix/1.0 (https://github.com/anatolykoptev/go-wikipix)"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
}

// client returns the effective API backend for a language edition.
// An injected Client takes precedence; otherwise a live MediaWiki client
// is built for that edition.
func (cfg *Config) client(language string) WikiClient {
	if cfg.Client != nil {
		return cfg.Client
	}
	return newAPIClient(cfg, language)
}
