package datasource

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	polymarketName           = "polymarket"
	DefaultPolymarketBaseURL = "https://gamma-api.polymarket.com"
	polymarketLeagueTag      = "nba"
)

// PolymarketClient implements MarketPriceSource and MarketResolutionSource
// against the Gamma API
type PolymarketClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	logger     logrus.FieldLogger
}

type gammaEvent struct {
	Title   string        `json:"title"`
	Markets []gammaMarket `json:"markets"`
}

// Gamma encodes outcomes and prices as JSON strings inside the JSON document
type gammaMarket struct {
	ConditionID   string `json:"conditionId"`
	Question      string `json:"question"`
	Outcomes      string `json:"outcomes"`
	OutcomePrices string `json:"outcomePrices"`
	Liquidity     string `json:"liquidity"`
	Closed        bool   `json:"closed"`
}

// NewPolymarketClient creates a new Gamma API client
func NewPolymarketClient(httpClient *RateLimitedHTTPClient, baseURL string, logger logrus.FieldLogger) *PolymarketClient {
	if baseURL == "" {
		baseURL = DefaultPolymarketBaseURL
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &PolymarketClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.WithField("source", polymarketName),
	}
}

// Name returns the data source name
func (c *PolymarketClient) Name() string {
	return polymarketName
}

// FindTeamPrice finds the first active league event naming the team's
// nickname and returns the price of the team's outcome in its first market.
func (c *PolymarketClient) FindTeamPrice(ctx context.Context, team string) (*TeamMarket, error) {
	endpoint := c.baseURL + "/events?limit=50&active=true&closed=false"

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return nil, NewDataSourceError(polymarketName, ErrCodeNetworkError, "failed to fetch events", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(polymarketName, resp); err != nil {
		return nil, err
	}

	var events []gammaEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, NewDataSourceError(polymarketName, ErrCodeInvalidData, "failed to parse events", err)
	}

	event := matchEvent(events, team)
	if event == nil || len(event.Markets) == 0 {
		c.logger.WithField("team", team).WithField("events_checked", len(events)).Debug("No market found")
		return nil, ErrNoMarket
	}

	market := event.Markets[0]
	outcomes, prices, err := decodeOutcomes(market)
	if err != nil {
		return nil, err
	}
	idx := outcomeIndex(outcomes, team)
	if idx < 0 || idx >= len(prices) {
		return nil, ErrNoMarket
	}

	return &TeamMarket{
		ConditionID:   market.ConditionID,
		Question:      market.Question,
		EventTitle:    event.Title,
		Outcomes:      outcomes,
		OutcomePrices: prices,
		Liquidity:     market.Liquidity,
		TeamOutcome:   outcomes[idx],
		TeamPrice:     prices[idx],
	}, nil
}

// MarketResolution looks a market up by condition id. Outcome prices of a
// closed market settle at 0 or 1.
func (c *PolymarketClient) MarketResolution(ctx context.Context, conditionID string) (*MarketResolution, error) {
	endpoint := c.baseURL + "/markets?condition_ids=" + url.QueryEscape(conditionID)

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return nil, NewDataSourceError(polymarketName, ErrCodeNetworkError, "failed to fetch market", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(polymarketName, resp); err != nil {
		return nil, err
	}

	var markets []gammaMarket
	if err := json.NewDecoder(resp.Body).Decode(&markets); err != nil {
		return nil, NewDataSourceError(polymarketName, ErrCodeInvalidData, "failed to parse markets", err)
	}
	for _, m := range markets {
		if m.ConditionID != conditionID {
			continue
		}
		outcomes, prices, err := decodeOutcomes(m)
		if err != nil {
			return nil, err
		}
		return &MarketResolution{
			ConditionID:   m.ConditionID,
			Closed:        m.Closed,
			Outcomes:      outcomes,
			OutcomePrices: prices,
		}, nil
	}
	return nil, ErrNoMarket
}

func decodeOutcomes(market gammaMarket) ([]string, []float64, error) {
	var outcomes []string
	if err := json.Unmarshal([]byte(market.Outcomes), &outcomes); err != nil {
		return nil, nil, NewDataSourceError(polymarketName, ErrCodeInvalidData, "failed to parse outcomes", err)
	}
	var rawPrices []string
	if err := json.Unmarshal([]byte(market.OutcomePrices), &rawPrices); err != nil {
		return nil, nil, NewDataSourceError(polymarketName, ErrCodeInvalidData, "failed to parse outcome prices", err)
	}

	prices := make([]float64, len(rawPrices))
	for i, p := range rawPrices {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, nil, NewDataSourceError(polymarketName, ErrCodeInvalidData, "invalid outcome price "+p, err)
		}
		prices[i] = v
	}
	return outcomes, prices, nil
}

func outcomeIndex(outcomes []string, team string) int {
	lowerTeam := strings.ToLower(team)
	for i, o := range outcomes {
		if strings.Contains(strings.ToLower(o), lowerTeam) {
			return i
		}
	}
	return -1
}

func matchEvent(events []gammaEvent, team string) *gammaEvent {
	parts := strings.Fields(strings.ToLower(team))
	if len(parts) == 0 {
		return nil
	}
	nickname := parts[len(parts)-1]

	for i := range events {
		title := strings.ToLower(events[i].Title)
		if strings.Contains(title, polymarketLeagueTag) && strings.Contains(title, nickname) {
			return &events[i]
		}
	}
	return nil
}
