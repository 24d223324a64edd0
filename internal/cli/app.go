package cmd

import (
	"fmt"
	"net/http"

	"github.com/rohmanhakim/nps-sites/internal/cache"
	"github.com/rohmanhakim/nps-sites/internal/config"
	"github.com/rohmanhakim/nps-sites/internal/extractor"
	"github.com/rohmanhakim/nps-sites/internal/fetcher"
	"github.com/rohmanhakim/nps-sites/internal/logging"
	"github.com/rohmanhakim/nps-sites/internal/metadata"
	"github.com/rohmanhakim/nps-sites/internal/pipeline"
	"github.com/rohmanhakim/nps-sites/internal/places"
	"github.com/rohmanhakim/nps-sites/pkg/limiter"
	"go.uber.org/zap"
)

// App owns every long-lived component of one run. The cache store is built
// once here and injected into the fetcher; nothing else holds it.
type App struct {
	cfg      config.Config
	logger   *zap.Logger
	store    *cache.Store
	pipeline pipeline.Pipeline
	places   places.Client
	closers  []func() error
}

func NewApp(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	recorder := metadata.NewRecorder(logger)

	// validated before the backend opens so a failure leaves nothing to close
	policy, err := extractor.ParseMalformedPolicy(cfg.SiteListPolicy())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", config.ErrInvalidConfig, err.Error())
	}

	app := &App{cfg: cfg, logger: logger}

	backend := app.openBackend()
	app.store = cache.Open(backend, recorder)
	logger.Debug("cache opened",
		zap.String("location", app.store.Location()),
		zap.Int("entries", app.store.Len()),
	)

	rateLimiter := limiter.NewHostRateLimiter(cfg.BaseDelay(), cfg.Jitter(), cfg.RandomSeed())
	httpClient := &http.Client{Timeout: cfg.Timeout()}
	fetchParam := fetcher.NewFetchParam(httpClient, cfg.UserAgent(), rateLimiter, cfg.HashAlgo())
	htmlFetcher := fetcher.NewHTTPFetcher(recorder, app.store, fetchParam)

	baseURL := cfg.BaseURL()
	npsExtractor := extractor.NewNPSExtractor(recorder, baseURL, policy)
	app.pipeline = pipeline.NewPipeline(recorder, htmlFetcher, npsExtractor, baseURL.String())

	placesParam := places.NewClientParam(
		cfg.PlacesEndpoint(),
		cfg.PlacesAPIKey(),
		cfg.SearchRadius(),
		cfg.MaxMatches(),
		cfg.Ambiguities(),
		cfg.OutFormat(),
	)
	app.places = places.NewClient(recorder, htmlFetcher, placesParam)

	return app, nil
}

// openBackend picks the durable backend named by the config. An SQLite file
// that cannot be opened degrades to an in-memory cache for this run.
func (a *App) openBackend() cache.Backend {
	switch a.cfg.CacheBackend() {
	case config.CacheBackendMemory:
		return cache.NewMemoryBackend()
	case config.CacheBackendSQLite:
		backend, err := cache.NewSQLiteBackend(a.cfg.CacheFile())
		if err != nil {
			a.logger.Warn("sqlite cache unavailable, using memory cache",
				zap.String("path", a.cfg.CacheFile()),
				zap.Error(err),
			)
			return cache.NewMemoryBackend()
		}
		a.closers = append(a.closers, backend.Close)
		return backend
	default:
		return cache.NewJSONFileBackend(a.cfg.CacheFile())
	}
}

func (a *App) Store() *cache.Store {
	return a.store
}

func (a *App) Config() config.Config {
	return a.cfg
}

func (a *App) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// withApp resolves the config from flags, builds the logger and the App, and
// tears them down once fn returns.
func withApp(fn func(app *App) error) error {
	cfg, err := InitConfigWithError()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Debug())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app, err := NewApp(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("closing cache failed", zap.Error(err))
		}
	}()

	return fn(app)
}
