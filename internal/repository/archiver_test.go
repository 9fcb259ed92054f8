package repository

import (
	"context"
	"testing"
	"time"

	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

func TestArchiver_StoreSnapshot(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	players := NewPlayerRepository(db)
	scores := NewScoreRepository(db)
	archiver := NewArchiver(players, scores, logger.New("error", "text", "stdout"))

	alice := models.NewPlayer("111111111111111111", "alice")
	alice.AddEXP(7)
	alice.AddREP(1)

	day := models.NewDailyScore(time.Date(2021, 11, 3, 0, 0, 0, 0, time.UTC))
	day.Score("alice").Append(models.NewAction(models.ActionMessage, "m", day.Date, 2, 0, 0))
	day.Score("alice").Append(models.NewAction(models.ActionQuest, "q", day.Date, 5, 1, 0))

	snapshot := &models.Snapshot{
		Players:      []*models.Player{alice},
		ScoreHistory: []*models.DailyScore{day},
	}

	if err := archiver.StoreSnapshot(context.Background(), snapshot); err != nil {
		t.Fatalf("StoreSnapshot() error = %v", err)
	}

	record, err := players.GetByExternalID("111111111111111111")
	if err != nil {
		t.Fatalf("GetByExternalID() error = %v", err)
	}
	if record.EXP != 7 || record.REP != 1 {
		t.Errorf("archived totals %+v", record)
	}

	entries, err := scores.GetByDay(day.Date)
	if err != nil {
		t.Fatalf("GetByDay() error = %v", err)
	}
	if len(entries) != 1 || entries[0].ActionCount != 2 || entries[0].EXP != 7 {
		t.Errorf("archived entries %+v", entries)
	}

	// Storing the same snapshot again upserts rather than duplicating.
	if err := archiver.StoreSnapshot(context.Background(), snapshot); err != nil {
		t.Fatalf("second StoreSnapshot() error = %v", err)
	}
	entries, err = scores.GetByDay(day.Date)
	if err != nil {
		t.Fatalf("GetByDay() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after re-archive, got %d", len(entries))
	}
}
