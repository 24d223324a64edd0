package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rohmanhakim/nps-sites/internal/build"
	"github.com/rohmanhakim/nps-sites/internal/config"
	"github.com/rohmanhakim/nps-sites/pkg/hashutil"
	"github.com/rohmanhakim/nps-sites/pkg/urlutil"
	"github.com/spf13/cobra"
)

var (
	cfgFile        string
	apiKey         string
	cacheFile      string
	cacheBackend   string
	hashAlgo       string
	userAgent      string
	timeout        time.Duration
	baseDelay      time.Duration
	jitter         time.Duration
	randomSeed     int64
	siteListPolicy string
	debug          bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nps-sites",
	Short: "Browse US national sites by state and search places nearby.",
	Long: `nps-sites scrapes the National Park Service website for the national
sites of a state, shows their contact details and looks up places of
interest near a chosen site through a radius search API.

Every fetched page and API answer is cached on disk, so a repeated session
runs without touching the network.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(app *App) error {
			session := NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), &app.pipeline, &app.places)
			return session.Run(cmd.Context())
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", urlutil.RedactSecrets(err.Error()))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/nps-sites.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "places API key (defaults to $"+config.EnvPlacesAPIKey+")")
	rootCmd.PersistentFlags().StringVar(&cacheFile, "cache-file", "", "cache location (default cache.json)")
	rootCmd.PersistentFlags().StringVar(&cacheBackend, "cache-backend", "", "cache backend: json, sqlite or memory (default json)")
	rootCmd.PersistentFlags().StringVar(&hashAlgo, "hash-algo", "", "digest algorithm for logs and cache listing: blake3 or sha256")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for HTTP requests (0 for none)")
	rootCmd.PersistentFlags().DurationVar(&baseDelay, "base-delay", 0, "base delay between HTTP requests to the same host")
	rootCmd.PersistentFlags().DurationVar(&jitter, "jitter", 0, "random jitter added to base delay")
	rootCmd.PersistentFlags().Int64Var(&randomSeed, "random-seed", 0, "seed for random number generation (0 for current time)")
	rootCmd.PersistentFlags().StringVar(&siteListPolicy, "site-list-policy", "", "malformed site list entries: skip or abort (default skip)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(statesCmd, sitesCmd, nearbyCmd, cacheCmd, versionCmd)
}

// InitConfigWithError loads the config file and environment, then applies
// any CLI flag that was set on top, returning any errors.
func InitConfigWithError() (config.Config, error) {
	loaded, err := config.Load(cfgFile, build.UserAgent())
	if err != nil {
		return config.Config{}, fmt.Errorf("error initializing config: %w", err)
	}

	// Override with CLI flag values where provided
	configBuilder := &loaded

	if apiKey != "" {
		configBuilder = configBuilder.WithPlacesAPIKey(apiKey)
	}

	if cacheFile != "" {
		configBuilder = configBuilder.WithCacheFile(cacheFile)
	}

	if cacheBackend != "" {
		configBuilder = configBuilder.WithCacheBackend(config.CacheBackend(cacheBackend))
	}

	if hashAlgo != "" {
		configBuilder = configBuilder.WithHashAlgo(hashutil.HashAlgo(hashAlgo))
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if baseDelay > 0 {
		configBuilder = configBuilder.WithBaseDelay(baseDelay)
	}

	if jitter > 0 {
		configBuilder = configBuilder.WithJitter(jitter)
	}

	if randomSeed != 0 {
		configBuilder = configBuilder.WithRandomSeed(randomSeed)
	}

	if siteListPolicy != "" {
		configBuilder = configBuilder.WithSiteListPolicy(siteListPolicy)
	}

	if debug {
		configBuilder = configBuilder.WithDebug(debug)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ResetFlags() {
	cfgFile = ""
	apiKey = ""
	cacheFile = ""
	cacheBackend = ""
	hashAlgo = ""
	userAgent = ""
	timeout = 0
	baseDelay = 0
	jitter = 0
	randomSeed = 0
	siteListPolicy = ""
	debug = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetAPIKeyForTest(key string) {
	apiKey = key
}

func SetCacheFileForTest(path string) {
	cacheFile = path
}

func SetCacheBackendForTest(backend string) {
	cacheBackend = backend
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetBaseDelayForTest(delay time.Duration) {
	baseDelay = delay
}

func SetJitterForTest(j time.Duration) {
	jitter = j
}

func SetRandomSeedForTest(seed int64) {
	randomSeed = seed
}

func SetSiteListPolicyForTest(policy string) {
	siteListPolicy = policy
}

func SetDebugForTest(d bool) {
	debug = d
}
