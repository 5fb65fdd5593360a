package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/godbot/internal/logger"
	"github.com/yourusername/godbot/internal/models"
	"github.com/yourusername/godbot/internal/repository"
)

// DuplicateCleaner removes extra PENDING picks left by overlapping scans
type DuplicateCleaner struct {
	picks  repository.PickRepository
	logger logrus.FieldLogger
}

// NewDuplicateCleaner creates a new duplicate cleaner
func NewDuplicateCleaner(picks repository.PickRepository, log logrus.FieldLogger) *DuplicateCleaner {
	return &DuplicateCleaner{
		picks:  picks,
		logger: logger.OrDiscard(log).WithField("component", "cleanup"),
	}
}

type duplicateKey struct {
	profile models.Profile
	matchup string
	day     string
}

// Clean keeps the newest PENDING pick of every (profile, matchup, UTC day)
// group and deletes the rest in one transaction.
func (c *DuplicateCleaner) Clean(ctx context.Context) (int, error) {
	pending, err := c.picks.FindAll(ctx, models.PickFilter{Statuses: []models.PickStatus{models.PickStatusPending}})
	if err != nil {
		return 0, fmt.Errorf("load pending picks: %w", err)
	}

	groups := make(map[duplicateKey][]*models.Pick)
	for _, p := range pending {
		key := duplicateKey{
			profile: p.Profile,
			matchup: p.Matchup,
			day:     p.MatchDate.UTC().Format(time.DateOnly),
		}
		groups[key] = append(groups[key], p)
	}

	var stale []uuid.UUID
	for key, picks := range groups {
		if len(picks) < 2 {
			continue
		}
		sort.SliceStable(picks, func(i, j int) bool {
			return picks[i].CreatedAt.After(picks[j].CreatedAt)
		})
		for _, p := range picks[1:] {
			stale = append(stale, p.ID)
		}
		c.logger.WithFields(logrus.Fields{
			"profile":    key.profile,
			"matchup":    key.matchup,
			"date":       key.day,
			"kept":       picks[0].ID,
			"duplicates": len(picks) - 1,
		}).Info("Removing duplicate pending picks")
	}

	if len(stale) == 0 {
		return 0, nil
	}
	return c.picks.Delete(ctx, stale...)
}
