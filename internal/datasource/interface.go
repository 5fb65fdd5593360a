package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/godbot/internal/metrics"
	"github.com/yourusername/godbot/internal/models"
)

// GameSource provides historical and per-date game results
type GameSource interface {
	// GetGames retrieves every game of a season. Unplayed games have nil scores.
	GetGames(ctx context.Context, season string) ([]models.Game, error)

	// GetGamesByDate retrieves the games scheduled on a calendar date (UTC)
	GetGamesByDate(ctx context.Context, date time.Time) ([]models.Game, error)
}

// OddsSource provides live bookmaker quotes for upcoming games
type OddsSource interface {
	GetOdds(ctx context.Context, sport, region string) ([]models.OddsEvent, error)
}

// InjurySource provides player availability reports
type InjurySource interface {
	GetInjuries(ctx context.Context, date time.Time) ([]models.InjuryReport, error)
}

// MarketPriceSource provides a prediction-market price for a team to win
type MarketPriceSource interface {
	FindTeamPrice(ctx context.Context, team string) (*TeamMarket, error)
}

// MarketResolutionSource reports whether a prediction market has resolved.
// It is read-only.
type MarketResolutionSource interface {
	MarketResolution(ctx context.Context, conditionID string) (*MarketResolution, error)
}

// MarketResolution is the current state of one prediction market
type MarketResolution struct {
	ConditionID   string    `json:"condition_id"`
	Closed        bool      `json:"closed"`
	Outcomes      []string  `json:"outcomes"`
	OutcomePrices []float64 `json:"outcome_prices"`
}

// OutcomePrice returns the price of the first outcome naming team
func (r *MarketResolution) OutcomePrice(team string) (float64, bool) {
	idx := outcomeIndex(r.Outcomes, team)
	if idx < 0 || idx >= len(r.OutcomePrices) {
		return 0, false
	}
	return r.OutcomePrices[idx], true
}

// TeamMarket is a prediction-market winner market matched to a team
type TeamMarket struct {
	ConditionID   string    `json:"condition_id"`
	Question      string    `json:"question"`
	EventTitle    string    `json:"event_title"`
	Outcomes      []string  `json:"outcomes"`
	OutcomePrices []float64 `json:"outcome_prices"`
	Liquidity     string    `json:"liquidity"`
	TeamOutcome   string    `json:"team_outcome"`
	TeamPrice     float64   `json:"team_price"`
}

// DataSourceError represents errors from data source operations. Every
// DataSourceError matches models.ErrUpstreamUnavailable under errors.Is.
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap returns the underlying error
func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Is reports true for the upstream-unavailable taxonomy entry
func (e DataSourceError) Is(target error) bool {
	return target == models.ErrUpstreamUnavailable
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeProviderError        = "provider_error"
	ErrCodeDisabled             = "disabled"
)

// ErrNoMarket is returned when no prediction market matches a team
var ErrNoMarket = errors.New("no matching market")

const dataSourceDisabledMsg = "data source is disabled"

// NewDataSourceError creates a new data source error and counts it as an
// upstream failure of source
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	metrics.RecordUpstreamFailure(source)
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
