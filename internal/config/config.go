package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rohmanhakim/nps-sites/pkg/hashutil"
)

type CacheBackend string

const (
	CacheBackendJSON   CacheBackend = "json"
	CacheBackendSQLite CacheBackend = "sqlite"
	CacheBackendMemory CacheBackend = "memory"
)

// Cache files used when none is configured.
const (
	DefaultJSONCacheFile   = "cache.json"
	DefaultSQLiteCacheFile = "cache.db"
)

const (
	SiteListPolicySkip  = "skip"
	SiteListPolicyAbort = "abort"
)

type Config struct {
	//===============
	// Sources
	//===============
	// Site root holding the state directory; relative links resolve against it
	baseURL url.URL
	// Radius search endpoint of the places API
	placesEndpoint string
	// Static API key sent with every places request
	placesAPIKey string

	//===============
	// Places search
	//===============
	// Search radius around the site postal code, in miles
	searchRadius int
	// Maximum places returned per search
	maxMatches int
	// How the places API resolves ambiguous origins
	ambiguities string
	// Response format requested from the places API
	outFormat string

	//===============
	// Cache
	//===============
	// Where cached responses are persisted (file path for json and sqlite).
	// Empty means the backend's default file
	cacheFile string
	// Which durable backend holds the cache
	cacheBackend CacheBackend
	// Digest algorithm for fetched bodies in logs and the cache listing
	hashAlgo hashutil.HashAlgo

	//===============
	// Fetch
	//===============
	// User agent that will be used in the request header. In raw string
	userAgent string
	// Maximum time of a single fetch request. Zero means no limit
	timeout time.Duration
	// Minimum, fixed waiting time you enforce between two HTTP requests to the same host.
	baseDelay time.Duration
	// Randomized variation added on top of the base delay.
	jitter time.Duration
	// Controls the random number generator
	randomSeed int64

	//===============
	// Extraction
	//===============
	// What a malformed site list entry does: skip it, or abort the state
	siteListPolicy string

	//===============
	// Logging
	//===============
	debug bool
}

// WithDefault creates a new Config with default values for every field.
// userAgent is passed in so the caller can stamp its build version.
func WithDefault(userAgent string) *Config {
	defaultConfig := Config{
		baseURL:        url.URL{Scheme: "https", Host: "www.nps.gov"},
		placesEndpoint: "http://www.mapquestapi.com/search/v2/radius",
		placesAPIKey:   "",
		searchRadius:   10,
		maxMatches:     10,
		ambiguities:    "ignore",
		outFormat:      "json",
		cacheFile:      "",
		cacheBackend:   CacheBackendJSON,
		hashAlgo:       hashutil.HashAlgoBLAKE3,
		userAgent:      userAgent,
		timeout:        0,
		baseDelay:      0,
		jitter:         0,
		randomSeed:     time.Now().UnixNano(),
		siteListPolicy: SiteListPolicySkip,
		debug:          false,
	}
	return &defaultConfig
}

func (c *Config) WithBaseURL(baseURL url.URL) *Config {
	c.baseURL = baseURL
	return c
}

func (c *Config) WithPlacesEndpoint(endpoint string) *Config {
	c.placesEndpoint = endpoint
	return c
}

func (c *Config) WithPlacesAPIKey(key string) *Config {
	c.placesAPIKey = key
	return c
}

func (c *Config) WithSearchRadius(radius int) *Config {
	c.searchRadius = radius
	return c
}

func (c *Config) WithMaxMatches(matches int) *Config {
	c.maxMatches = matches
	return c
}

func (c *Config) WithAmbiguities(ambiguities string) *Config {
	c.ambiguities = ambiguities
	return c
}

func (c *Config) WithOutFormat(format string) *Config {
	c.outFormat = format
	return c
}

func (c *Config) WithCacheFile(path string) *Config {
	c.cacheFile = path
	return c
}

func (c *Config) WithCacheBackend(backend CacheBackend) *Config {
	c.cacheBackend = backend
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithBaseDelay(delay time.Duration) *Config {
	c.baseDelay = delay
	return c
}

func (c *Config) WithJitter(jitter time.Duration) *Config {
	c.jitter = jitter
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithSiteListPolicy(policy string) *Config {
	c.siteListPolicy = policy
	return c
}

func (c *Config) WithDebug(debug bool) *Config {
	c.debug = debug
	return c
}

func (c *Config) Build() (Config, error) {
	if c.baseURL.Scheme == "" || c.baseURL.Host == "" {
		return Config{}, fmt.Errorf("%w: baseUrl must be an absolute URL, got %q", ErrInvalidConfig, c.baseURL.String())
	}
	endpoint, err := url.Parse(c.placesEndpoint)
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return Config{}, fmt.Errorf("%w: placesEndpoint must be an absolute URL, got %q", ErrInvalidConfig, c.placesEndpoint)
	}
	if c.searchRadius <= 0 {
		return Config{}, fmt.Errorf("%w: searchRadius must be > 0", ErrInvalidConfig)
	}
	if c.maxMatches <= 0 {
		return Config{}, fmt.Errorf("%w: maxMatches must be > 0", ErrInvalidConfig)
	}

	c.cacheBackend = CacheBackend(strings.ToLower(strings.TrimSpace(string(c.cacheBackend))))
	switch c.cacheBackend {
	case CacheBackendJSON, CacheBackendSQLite, CacheBackendMemory:
	default:
		return Config{}, fmt.Errorf("%w: cacheBackend must be json, sqlite or memory, got %q", ErrInvalidConfig, c.cacheBackend)
	}

	algo, err := hashutil.ParseHashAlgo(string(c.hashAlgo))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	c.hashAlgo = algo

	c.siteListPolicy = strings.ToLower(strings.TrimSpace(c.siteListPolicy))
	if c.siteListPolicy != SiteListPolicySkip && c.siteListPolicy != SiteListPolicyAbort {
		return Config{}, fmt.Errorf("%w: siteListPolicy must be skip or abort, got %q", ErrInvalidConfig, c.siteListPolicy)
	}

	if c.timeout < 0 || c.baseDelay < 0 || c.jitter < 0 {
		return Config{}, fmt.Errorf("%w: timeout, baseDelay and jitter cannot be negative", ErrInvalidConfig)
	}

	return *c, nil
}

func (c Config) BaseURL() url.URL {
	return c.baseURL
}

func (c Config) PlacesEndpoint() string {
	return c.placesEndpoint
}

func (c Config) PlacesAPIKey() string {
	return c.placesAPIKey
}

func (c Config) SearchRadius() int {
	return c.searchRadius
}

func (c Config) MaxMatches() int {
	return c.maxMatches
}

func (c Config) Ambiguities() string {
	return c.ambiguities
}

func (c Config) OutFormat() string {
	return c.outFormat
}

// CacheFile resolves an unset cache file to the backend's default, so a
// backend switched after loading never inherits the other backend's file.
func (c Config) CacheFile() string {
	switch c.cacheBackend {
	case CacheBackendJSON:
		return orDefault(c.cacheFile, DefaultJSONCacheFile)
	case CacheBackendSQLite:
		return orDefault(c.cacheFile, DefaultSQLiteCacheFile)
	default:
		return c.cacheFile
	}
}

func (c Config) CacheBackend() CacheBackend {
	return c.cacheBackend
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) BaseDelay() time.Duration {
	return c.baseDelay
}

func (c Config) Jitter() time.Duration {
	return c.jitter
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) SiteListPolicy() string {
	return c.siteListPolicy
}

func (c Config) Debug() bool {
	return c.debug
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
