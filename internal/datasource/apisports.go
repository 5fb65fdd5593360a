package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/godbot/internal/models"
)

const (
	apiSportsName           = "api_sports"
	DefaultAPISportsBaseURL = "https://v2.nba.api-sports.io"
	apiSportsKeyHeader      = "x-apisports-key"
	dateLayout              = "2006-01-02"
)

// APISportsClient implements GameSource and InjurySource against API-NBA v2
type APISportsClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	season     string
	logger     logrus.FieldLogger
}

type apiSportsEnvelope struct {
	Errors   json.RawMessage `json:"errors"`
	Response json.RawMessage `json:"response"`
}

type apiSportsGame struct {
	ID   int `json:"id"`
	Date struct {
		Start string `json:"start"`
	} `json:"date"`
	Season int `json:"season"`
	Status struct {
		Short json.RawMessage `json:"short"`
		Long  string          `json:"long"`
	} `json:"status"`
	Teams struct {
		Home     apiSportsTeam `json:"home"`
		Visitors apiSportsTeam `json:"visitors"`
	} `json:"teams"`
	Scores struct {
		Home     apiSportsScore `json:"home"`
		Visitors apiSportsScore `json:"visitors"`
	} `json:"scores"`
}

type apiSportsTeam struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type apiSportsScore struct {
	Points *int `json:"points"`
}

type apiSportsInjury struct {
	Team struct {
		Name string `json:"name"`
	} `json:"team"`
	Player struct {
		Name string `json:"name"`
	} `json:"player"`
	Type string `json:"type"`
}

// NewAPISportsClient creates a new API-Sports client. season is used for
// per-date lookups, which the provider scopes by season.
func NewAPISportsClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey, season string, logger logrus.FieldLogger) *APISportsClient {
	if baseURL == "" {
		baseURL = DefaultAPISportsBaseURL
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &APISportsClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		season:     season,
		logger:     logger.WithField("source", apiSportsName),
	}
}

// Name returns the data source name
func (c *APISportsClient) Name() string {
	return apiSportsName
}

// GetGames retrieves every game in a season
func (c *APISportsClient) GetGames(ctx context.Context, season string) ([]models.Game, error) {
	q := url.Values{}
	q.Set("season", season)

	var raw []apiSportsGame
	if err := c.fetch(ctx, "/games", q, &raw); err != nil {
		return nil, err
	}
	return c.convertGames(raw), nil
}

// GetGamesByDate retrieves games on a UTC calendar date
func (c *APISportsClient) GetGamesByDate(ctx context.Context, date time.Time) ([]models.Game, error) {
	q := url.Values{}
	q.Set("season", c.season)
	q.Set("date", date.UTC().Format(dateLayout))

	var raw []apiSportsGame
	if err := c.fetch(ctx, "/games", q, &raw); err != nil {
		return nil, err
	}
	return c.convertGames(raw), nil
}

// GetInjuries retrieves the injury report for a UTC calendar date
func (c *APISportsClient) GetInjuries(ctx context.Context, date time.Time) ([]models.InjuryReport, error) {
	q := url.Values{}
	q.Set("date", date.UTC().Format(dateLayout))

	var raw []apiSportsInjury
	if err := c.fetch(ctx, "/injuries", q, &raw); err != nil {
		return nil, err
	}

	reports := make([]models.InjuryReport, 0, len(raw))
	for _, r := range raw {
		reports = append(reports, models.InjuryReport{
			Team:   r.Team.Name,
			Player: r.Player.Name,
			Type:   r.Type,
		})
	}
	return reports, nil
}

func (c *APISportsClient) fetch(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return NewDataSourceError(apiSportsName, ErrCodeNetworkError, "failed to create request", err)
	}
	req.Header.Set(apiSportsKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return NewDataSourceError(apiSportsName, ErrCodeNetworkError, "failed to fetch "+path, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(apiSportsName, resp); err != nil {
		return err
	}

	var env apiSportsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return NewDataSourceError(apiSportsName, ErrCodeInvalidData, "failed to parse response", err)
	}
	if hasProviderErrors(env.Errors) {
		return NewDataSourceError(apiSportsName, ErrCodeProviderError, string(env.Errors), nil)
	}
	if len(env.Response) == 0 || string(env.Response) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Response, out); err != nil {
		return NewDataSourceError(apiSportsName, ErrCodeInvalidData, "unexpected response shape", err)
	}
	return nil
}

func (c *APISportsClient) convertGames(raw []apiSportsGame) []models.Game {
	games := make([]models.Game, 0, len(raw))
	for _, g := range raw {
		start, err := time.Parse(time.RFC3339, g.Date.Start)
		if err != nil {
			c.logger.WithError(err).WithField("game_id", g.ID).Debug("Skipping game with unparseable date")
			continue
		}
		games = append(games, models.Game{
			ID:          g.ID,
			Season:      strconv.Itoa(g.Season),
			Date:        start,
			Home:        models.Team{ID: g.Teams.Home.ID, Name: g.Teams.Home.Name, Code: g.Teams.Home.Code},
			Away:        models.Team{ID: g.Teams.Visitors.ID, Name: g.Teams.Visitors.Name, Code: g.Teams.Visitors.Code},
			HomeScore:   g.Scores.Home.Points,
			AwayScore:   g.Scores.Visitors.Points,
			StatusShort: statusShort(g.Status.Short),
			StatusLong:  g.Status.Long,
		})
	}
	return games
}

// statusShort accepts both the string codes and the numeric form the
// provider sometimes returns (3 means finished).
func statusShort(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == 3 {
			return models.GameStatusFinal
		}
		return strconv.Itoa(n)
	}
	return ""
}

// hasProviderErrors treats null, [] and {} as no errors
func hasProviderErrors(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	switch s {
	case "", "null", "[]", "{}":
		return false
	}
	return true
}

func checkStatus(source string, resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return NewDataSourceError(source, ErrCodeAuthenticationFailed, "invalid API key", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewDataSourceError(source, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	case resp.StatusCode == http.StatusNotFound:
		return NewDataSourceError(source, ErrCodeNotFound, "resource not found", nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return NewDataSourceError(source, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}
	return nil
}
