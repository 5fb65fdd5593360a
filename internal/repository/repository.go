package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/godbot/internal/config"
	"github.com/yourusername/godbot/internal/database"
)

// Repositories holds the store opened for one command run
type Repositories struct {
	Picks  PickRepository
	Trades TradeRepository
	// TeamStats is nil unless the postgres driver is in use
	TeamStats TeamStatsRepository
	Store     Pinger

	closer func() error
}

// NewRepositories creates the Postgres repositories over an open pool
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Picks:     NewPostgresPickRepository(db),
		Trades:    NewPostgresTradeRepository(db),
		TeamStats: NewPostgresTeamStatsRepository(db),
		Store:     db,
		closer:    db.Close,
	}, nil
}

// NewSQLiteRepositories creates the repositories over a local file store
func NewSQLiteRepositories(db *database.SQLite) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Picks:  NewSQLitePickRepository(db),
		Trades: NewSQLiteTradeRepository(db),
		Store:  db,
		closer: db.Close,
	}, nil
}

// Open connects the configured store driver
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.Initialize(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewRepositories(db)
	case "sqlite":
		db, err := database.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return NewSQLiteRepositories(db)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

// Close releases the underlying store
func (r *Repositories) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}
