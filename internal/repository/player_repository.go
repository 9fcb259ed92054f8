package repository

import (
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/soltree-games/scorekeeper/internal/models"
)

// PlayerRepository handles player-related database operations.
type PlayerRepository struct {
	db *DB
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(db *DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Upsert inserts a player record or refreshes it when the external ID exists.
func (r *PlayerRepository) Upsert(player *models.PlayerRecord) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "exp", "rep", "jce", "updated_at",
		}),
	}).Create(player).Error
	if err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", player.ExternalID, err)
	}
	return nil
}

// GetByExternalID retrieves a player by platform ID.
func (r *PlayerRepository) GetByExternalID(externalID string) (*models.PlayerRecord, error) {
	var player models.PlayerRecord
	if err := r.db.Where("external_id = ?", externalID).First(&player).Error; err != nil {
		return nil, fmt.Errorf("failed to get player by external_id %s: %w", externalID, err)
	}
	return &player, nil
}

// GetByName retrieves a player by display name.
func (r *PlayerRepository) GetByName(name string) (*models.PlayerRecord, error) {
	var player models.PlayerRecord
	if err := r.db.Where("name = ?", name).First(&player).Error; err != nil {
		return nil, fmt.Errorf("failed to get player by name %s: %w", name, err)
	}
	return &player, nil
}

// List retrieves all player records.
func (r *PlayerRepository) List() ([]models.PlayerRecord, error) {
	var players []models.PlayerRecord
	if err := r.db.Order("name").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// TopByMetric retrieves the highest-scoring players for one point currency.
func (r *PlayerRepository) TopByMetric(metric string, limit int) ([]models.PlayerRecord, error) {
	column, err := metricColumn(metric)
	if err != nil {
		return nil, err
	}

	var players []models.PlayerRecord
	query := r.db.Order(column + " DESC").Order("name")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to rank players by %s: %w", metric, err)
	}
	return players, nil
}

// metricColumn maps a ranking metric name onto its storage column.
func metricColumn(metric string) (string, error) {
	switch metric {
	case "exp":
		return "exp", nil
	case "rep":
		return "rep", nil
	case "jce":
		return "jce", nil
	default:
		return "", fmt.Errorf("unknown ranking metric: %s", metric)
	}
}
