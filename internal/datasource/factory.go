package datasource

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/godbot/internal/config"
)

// Sources bundles every provider the pipeline consumes
type Sources struct {
	Games    GameSource
	Odds     OddsSource
	Injuries InjurySource
	Markets  MarketPriceSource

	// Resolutions is uncached; settling trades needs the live state
	Resolutions MarketResolutionSource

	httpClient *RateLimitedHTTPClient
}

// Close releases the shared transport
func (s *Sources) Close() error {
	if s.httpClient == nil {
		return nil
	}
	return s.httpClient.Close()
}

// Factory creates provider clients based on configuration
type Factory struct {
	logger logrus.FieldLogger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger logrus.FieldLogger) *Factory {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// HTTPClientConfig maps the http section onto the transport settings,
// keeping defaults for anything left unset
func (f *Factory) HTTPClientConfig() HTTPClientConfig {
	out := DefaultHTTPClientConfig()
	h := f.config.HTTP
	if h.Timeout > 0 {
		out.Timeout = h.Timeout
	}
	out.MaxRetries = h.MaxRetries
	if h.RetryWaitMin > 0 {
		out.RetryWaitMin = h.RetryWaitMin
	}
	if h.RetryWaitMax > 0 {
		out.RetryWaitMax = h.RetryWaitMax
	}
	if h.RateLimit > 0 {
		out.RateLimit = h.RateLimit
	}
	if h.CircuitBreakerMax > 0 {
		out.CircuitBreakerMax = h.CircuitBreakerMax
	}
	if h.CircuitResetAfter > 0 {
		out.CircuitResetAfter = h.CircuitResetAfter
	}
	return out
}

// NewSources creates every provider client over one shared transport and
// wraps the readable ones in TTL caches
func (f *Factory) NewSources() *Sources {
	httpClient := NewRateLimitedHTTPClient(f.HTTPClientConfig(), f.logger)
	p := f.config.Providers

	sports := NewAPISportsClient(httpClient, p.APISports.BaseURL, p.APISports.APIKey, p.APISports.Season, f.logger)
	odds := NewOddsAPIClient(httpClient, p.OddsAPI.BaseURL, p.OddsAPI.APIKey, p.OddsAPI.Markets, f.logger)
	poly := NewPolymarketClient(httpClient, p.Polymarket.BaseURL, f.logger)

	scoresTTL := p.APISports.CacheTTL
	if scoresTTL <= 0 {
		scoresTTL = DefaultScoresCacheTTL
	}
	oddsTTL := p.OddsAPI.CacheTTL
	if oddsTTL <= 0 {
		oddsTTL = DefaultOddsCacheTTL
	}

	f.logger.WithFields(logrus.Fields{
		"scores_ttl": scoresTTL.String(),
		"odds_ttl":   oddsTTL.String(),
	}).Debug("Created provider clients")

	return &Sources{
		Games:       NewCachedGameSource(sports, scoresTTL),
		Odds:        NewCachedOddsSource(odds, oddsTTL),
		Injuries:    NewCachedInjurySource(sports, scoresTTL),
		Markets:     poly,
		Resolutions: poly,
		httpClient:  httpClient,
	}
}
