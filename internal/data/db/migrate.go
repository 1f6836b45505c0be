package db

import (
	"fmt"

	"github.com/matchpointhq/matchpoint-backend/internal/domain"
)

// AutoMigrateAll creates or updates every table the service owns.
func (s *PostgresService) AutoMigrateAll() error {
	if err := s.db.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&domain.UserConsent{},
		&domain.AuditLog{},
		&domain.Sport{},
		&domain.Level{},
		&domain.UserSport{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedLevels inserts the proficiency tiers when the table is empty. Re-running
// on a seeded database is a no-op.
func (s *PostgresService) SeedLevels() error {
	var count int64
	if err := s.db.Model(&domain.Level{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count levels: %w", err)
	}
	if count > 0 {
		return nil
	}

	levels := []domain.Level{
		{Name: "Beginner", Rank: 1},
		{Name: "Intermediate", Rank: 2},
		{Name: "Advanced", Rank: 3},
		{Name: "Expert", Rank: 4},
	}
	if err := s.db.Create(&levels).Error; err != nil {
		return fmt.Errorf("seed levels: %w", err)
	}
	s.log.Info("levels seeded", "count", len(levels))
	return nil
}
