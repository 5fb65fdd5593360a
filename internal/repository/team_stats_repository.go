package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/godbot/internal/database"
	"github.com/yourusername/godbot/internal/models"
)

// PostgresTeamStatsRepository keeps the latest snapshot per team
type PostgresTeamStatsRepository struct {
	db *database.DB
}

// NewPostgresTeamStatsRepository creates a new team stats repository
func NewPostgresTeamStatsRepository(db *database.DB) *PostgresTeamStatsRepository {
	return &PostgresTeamStatsRepository{db: db}
}

// Upsert replaces the snapshot for a team
func (r *PostgresTeamStatsRepository) Upsert(ctx context.Context, teamName string, s *models.TeamStats) error {
	query := `
		INSERT INTO team_stats (team_name, season, games_played, points_per_game, points_allowed, pace,
		                        efficiency, recent_trend, injury_impact, days_rest, avg_margin, last_game_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (team_name) DO UPDATE SET
			season = EXCLUDED.season,
			games_played = EXCLUDED.games_played,
			points_per_game = EXCLUDED.points_per_game,
			points_allowed = EXCLUDED.points_allowed,
			pace = EXCLUDED.pace,
			efficiency = EXCLUDED.efficiency,
			recent_trend = EXCLUDED.recent_trend,
			injury_impact = EXCLUDED.injury_impact,
			days_rest = EXCLUDED.days_rest,
			avg_margin = EXCLUDED.avg_margin,
			last_game_date = EXCLUDED.last_game_date,
			updated_at = NOW()
	`

	_, err := r.db.Conn(ctx).Exec(ctx, query,
		teamName, s.Season, s.GamesPlayed, s.PointsPerGame, s.PointsAllowed, s.Pace,
		s.Efficiency, s.RecentTrend, s.InjuryImpact, s.DaysRest, s.AvgMargin, s.LastGameDate,
	)
	if err != nil {
		return persistenceErr("failed to upsert team stats", err)
	}
	return nil
}

// Get retrieves the latest snapshot for a team
func (r *PostgresTeamStatsRepository) Get(ctx context.Context, teamName string) (*models.TeamStats, error) {
	query := `
		SELECT team_name, season, games_played, points_per_game, points_allowed, pace, efficiency,
		       recent_trend, injury_impact, days_rest, avg_margin, last_game_date, updated_at
		FROM team_stats WHERE team_name = $1
	`

	s := &models.TeamStats{}
	err := r.db.Conn(ctx).QueryRow(ctx, query, teamName).Scan(
		&s.TeamName, &s.Season, &s.GamesPlayed, &s.PointsPerGame, &s.PointsAllowed, &s.Pace, &s.Efficiency,
		&s.RecentTrend, &s.InjuryImpact, &s.DaysRest, &s.AvgMargin, &s.LastGameDate, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, persistenceErr("failed to get team stats", err)
	}
	return s, nil
}
