package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/soltree-games/scorekeeper/internal/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Auto-migrate all models
	if err := db.AutoMigrate(
		&models.PlayerRecord{},
		&models.ScoreEntryRecord{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return &DB{db}
}

// cleanupTestDB closes the test database connection
func cleanupTestDB(t *testing.T, db *DB) {
	t.Helper()
	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Errorf("Failed to get database instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("Failed to close test database: %v", err)
	}
}

func TestPlayerRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	repo := NewPlayerRepository(db)

	record := &models.PlayerRecord{
		ExternalID: "111111111111111111",
		Name:       "alice",
		EXP:        10,
	}
	if err := repo.Upsert(record); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	// Upserting the same external ID refreshes the row instead of duplicating it.
	updated := &models.PlayerRecord{
		ExternalID: "111111111111111111",
		Name:       "alice",
		EXP:        25,
		REP:        3,
	}
	if err := repo.Upsert(updated); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	players, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}
	if players[0].EXP != 25 || players[0].REP != 3 {
		t.Errorf("upsert did not refresh totals: %+v", players[0])
	}
}

func TestPlayerRepository_GetByExternalID(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	repo := NewPlayerRepository(db)
	if err := repo.Upsert(&models.PlayerRecord{ExternalID: "222222222222222222", Name: "bob", JCE: 4}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	player, err := repo.GetByExternalID("222222222222222222")
	if err != nil {
		t.Fatalf("GetByExternalID() error = %v", err)
	}
	if player.Name != "bob" || player.JCE != 4 {
		t.Errorf("unexpected player %+v", player)
	}

	if _, err := repo.GetByExternalID("000000000000000000"); err == nil {
		t.Error("expected an error for an unknown external ID")
	}
}

func TestPlayerRepository_TopByMetric(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	repo := NewPlayerRepository(db)
	seed := []models.PlayerRecord{
		{ExternalID: "1111111111111111", Name: "alice", EXP: 10, REP: 5},
		{ExternalID: "2222222222222222", Name: "bob", EXP: 30, REP: 1},
		{ExternalID: "3333333333333333", Name: "carol", EXP: 20, REP: 9},
	}
	for i := range seed {
		if err := repo.Upsert(&seed[i]); err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	byEXP, err := repo.TopByMetric("exp", 2)
	if err != nil {
		t.Fatalf("TopByMetric() error = %v", err)
	}
	if len(byEXP) != 2 || byEXP[0].Name != "bob" || byEXP[1].Name != "carol" {
		t.Errorf("unexpected EXP ranking: %+v", byEXP)
	}

	byREP, err := repo.TopByMetric("rep", 0)
	if err != nil {
		t.Fatalf("TopByMetric() error = %v", err)
	}
	if byREP[0].Name != "carol" {
		t.Errorf("expected carol first by REP, got %s", byREP[0].Name)
	}

	if _, err := repo.TopByMetric("charisma", 5); err == nil {
		t.Error("unknown metric should be rejected")
	}
}
