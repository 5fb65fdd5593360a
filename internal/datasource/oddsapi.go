package datasource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/godbot/internal/models"
)

const (
	oddsAPIName           = "the_odds_api"
	DefaultOddsAPIBaseURL = "https://api.the-odds-api.com/v4/sports"
	DefaultOddsMarkets    = "h2h,spreads,totals"
)

// OddsAPIClient implements OddsSource against The Odds API v4
type OddsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	markets    string
	logger     logrus.FieldLogger
}

// NewOddsAPIClient creates a new The Odds API client
func NewOddsAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey, markets string, logger logrus.FieldLogger) *OddsAPIClient {
	if baseURL == "" {
		baseURL = DefaultOddsAPIBaseURL
	}
	if markets == "" {
		markets = DefaultOddsMarkets
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OddsAPIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		markets:    markets,
		logger:     logger.WithField("source", oddsAPIName),
	}
}

// Name returns the data source name
func (c *OddsAPIClient) Name() string {
	return oddsAPIName
}

// GetOdds retrieves American-format quotes for every upcoming event of a sport
func (c *OddsAPIClient) GetOdds(ctx context.Context, sport, region string) ([]models.OddsEvent, error) {
	if c.apiKey == "" {
		return nil, NewDataSourceError(oddsAPIName, ErrCodeAuthenticationFailed, "API key not configured", nil)
	}

	q := url.Values{}
	q.Set("regions", region)
	q.Set("markets", c.markets)
	q.Set("oddsFormat", "american")
	q.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + "/" + url.PathEscape(sport) + "/odds?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewDataSourceError(oddsAPIName, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(oddsAPIName, ErrCodeNetworkError, "failed to fetch odds", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(oddsAPIName, resp); err != nil {
		return nil, err
	}

	var events []models.OddsEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, NewDataSourceError(oddsAPIName, ErrCodeInvalidData, "response is not an event list", err)
	}

	if remaining := resp.Header.Get("x-requests-remaining"); remaining != "" {
		c.logger.WithField("requests_remaining", remaining).Debug("Odds quota")
	}
	return events, nil
}
