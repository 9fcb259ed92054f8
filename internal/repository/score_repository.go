package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/soltree-games/scorekeeper/internal/models"
)

// ScoreRepository handles daily score entry database operations.
type ScoreRepository struct {
	db *DB
}

// NewScoreRepository creates a new score repository.
func NewScoreRepository(db *DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Upsert inserts a daily entry or refreshes the existing day/player row.
func (r *ScoreRepository) Upsert(entry *models.ScoreEntryRecord) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}, {Name: "player_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"action_count", "exp", "rep", "jce",
		}),
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to upsert score entry for %s on %s: %w",
			entry.PlayerName, entry.Date.Format("2006-01-02"), err)
	}
	return nil
}

// GetByDay retrieves all score entries for one calendar day.
func (r *ScoreRepository) GetByDay(date time.Time) ([]models.ScoreEntryRecord, error) {
	day := models.NormalizeDay(date)
	var entries []models.ScoreEntryRecord
	if err := r.db.Where("date = ?", day).Order("player_name").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get score entries for %s: %w", day.Format("2006-01-02"), err)
	}
	return entries, nil
}

// GetByPlayer retrieves a player's score history ordered by day.
func (r *ScoreRepository) GetByPlayer(playerName string) ([]models.ScoreEntryRecord, error) {
	var entries []models.ScoreEntryRecord
	if err := r.db.Where("player_name = ?", playerName).Order("date").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get score history for %s: %w", playerName, err)
	}
	return entries, nil
}

// GetRange retrieves all score entries with dates in [from, to] ordered by day.
func (r *ScoreRepository) GetRange(from, to time.Time) ([]models.ScoreEntryRecord, error) {
	var entries []models.ScoreEntryRecord
	err := r.db.
		Where("date >= ? AND date <= ?", models.NormalizeDay(from), models.NormalizeDay(to)).
		Order("date").Order("player_name").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get score entries in range: %w", err)
	}
	return entries, nil
}
