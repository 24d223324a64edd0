package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/rohmanhakim/nps-sites/pkg/hashutil"
	"github.com/spf13/viper"
)

// EnvPlacesAPIKey names the environment variable holding the places API key.
const EnvPlacesAPIKey = "NPS_PLACES_API_KEY"

type configDTO struct {
	BaseURL        string        `mapstructure:"baseUrl"`
	PlacesEndpoint string        `mapstructure:"placesEndpoint"`
	PlacesAPIKey   string        `mapstructure:"placesApiKey"`
	SearchRadius   int           `mapstructure:"searchRadius"`
	MaxMatches     int           `mapstructure:"maxMatches"`
	Ambiguities    string        `mapstructure:"ambiguities"`
	OutFormat      string        `mapstructure:"outFormat"`
	CacheFile      string        `mapstructure:"cacheFile"`
	CacheBackend   string        `mapstructure:"cacheBackend"`
	HashAlgo       string        `mapstructure:"hashAlgo"`
	UserAgent      string        `mapstructure:"userAgent"`
	Timeout        time.Duration `mapstructure:"timeout"`
	BaseDelay      time.Duration `mapstructure:"baseDelay"`
	Jitter         time.Duration `mapstructure:"jitter"`
	RandomSeed     int64         `mapstructure:"randomSeed"`
	SiteListPolicy string        `mapstructure:"siteListPolicy"`
	Debug          bool          `mapstructure:"debug"`
}

// Load builds a Config from defaults, an optional config file (json, yaml or
// toml, picked by extension) and NPS_* environment variables, in increasing
// order of precedence. The API key is read from NPS_PLACES_API_KEY.
// An empty path skips the file.
func Load(path string, userAgent string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NPS")
	v.AutomaticEnv()
	if err := v.BindEnv("placesApiKey", EnvPlacesAPIKey); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}

	setDefaults(v, WithDefault(userAgent))

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
			}
			return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
		}
	}

	var dto configDTO
	if err := v.Unmarshal(&dto); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}
	return newConfigFromDTO(dto)
}

func setDefaults(v *viper.Viper, d *Config) {
	baseURL := d.baseURL
	v.SetDefault("baseUrl", baseURL.String())
	v.SetDefault("placesEndpoint", d.placesEndpoint)
	v.SetDefault("placesApiKey", d.placesAPIKey)
	v.SetDefault("searchRadius", d.searchRadius)
	v.SetDefault("maxMatches", d.maxMatches)
	v.SetDefault("ambiguities", d.ambiguities)
	v.SetDefault("outFormat", d.outFormat)
	v.SetDefault("cacheFile", d.cacheFile)
	v.SetDefault("cacheBackend", string(d.cacheBackend))
	v.SetDefault("hashAlgo", string(d.hashAlgo))
	v.SetDefault("userAgent", d.userAgent)
	v.SetDefault("timeout", d.timeout)
	v.SetDefault("baseDelay", d.baseDelay)
	v.SetDefault("jitter", d.jitter)
	v.SetDefault("randomSeed", d.randomSeed)
	v.SetDefault("siteListPolicy", d.siteListPolicy)
	v.SetDefault("debug", d.debug)
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	baseURL, err := url.Parse(dto.BaseURL)
	if err != nil {
		return Config{}, fmt.Errorf("%w: baseUrl: %s", ErrInvalidConfig, err.Error())
	}

	return WithDefault(dto.UserAgent).
		WithBaseURL(*baseURL).
		WithPlacesEndpoint(dto.PlacesEndpoint).
		WithPlacesAPIKey(dto.PlacesAPIKey).
		WithSearchRadius(dto.SearchRadius).
		WithMaxMatches(dto.MaxMatches).
		WithAmbiguities(dto.Ambiguities).
		WithOutFormat(dto.OutFormat).
		WithCacheFile(dto.CacheFile).
		WithCacheBackend(CacheBackend(dto.CacheBackend)).
		WithHashAlgo(hashutil.HashAlgo(dto.HashAlgo)).
		WithTimeout(dto.Timeout).
		WithBaseDelay(dto.BaseDelay).
		WithJitter(dto.Jitter).
		WithRandomSeed(dto.RandomSeed).
		WithSiteListPolicy(dto.SiteListPolicy).
		WithDebug(dto.Debug).
		Build()
}
