package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/godbot/internal/models"
)

// PickRepository defines the interface for pick data access
type PickRepository interface {
	// FindPending returns the PENDING pick for the key, or models.ErrNotFound
	FindPending(ctx context.Context, profile models.Profile, matchup string, matchDate time.Time) (*models.Pick, error)
	Create(ctx context.Context, pick *models.Pick) error
	// Update moves the line fields of a PENDING pick
	Update(ctx context.Context, id uuid.UUID, update models.PickUpdate) error
	// Grade moves a PENDING pick to a terminal status. A pick that is no
	// longer PENDING yields models.ErrNotFound.
	Grade(ctx context.Context, id uuid.UUID, grade models.PickGrade) error
	FindAll(ctx context.Context, filter models.PickFilter) ([]*models.Pick, error)
	// Delete removes the picks in one transaction and returns the count removed
	Delete(ctx context.Context, ids ...uuid.UUID) (int, error)
}

// TradeRepository defines the interface for the paper-trade ledger
type TradeRepository interface {
	// Create records a trade and reports false when its id already exists
	Create(ctx context.Context, trade *models.Trade) (bool, error)
	// FindAll returns trades newest first, limited to statuses when given
	FindAll(ctx context.Context, statuses ...models.TradeStatus) ([]*models.Trade, error)
	// Settle closes an OPEN trade. A trade that is no longer OPEN yields
	// models.ErrNotFound.
	Settle(ctx context.Context, id string, status models.TradeStatus, pnl float64) error
}

// TeamStatsRepository defines the interface for team stats snapshots
type TeamStatsRepository interface {
	Upsert(ctx context.Context, teamName string, stats *models.TeamStats) error
	Get(ctx context.Context, teamName string) (*models.TeamStats, error)
}

// Pinger reports store reachability
type Pinger interface {
	Ping(ctx context.Context) error
}
