package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/soltree-games/scorekeeper/internal/engine/catalog"
	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New("error", "text", "stdout")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadQuests(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quests.json", `[
		{"title": "Intro", "description": "Introduce yourself", "task": "Post an intro",
		 "rewards": {"openToREP": false, "EXP": 20}},
		{"title": "Daily Quest - Check-In", "description": "Check in", "task": "Say hi",
		 "rewards": {"openToREP": false, "daily": {"1": {"EXP": 5}, "2": {"EXP": 10}}}},
		{"title": "Broken", "description": "No task or rewards"}
	]`)

	cat := catalog.New(testLogger())
	added, err := NewCatalogLoader(testLogger()).LoadQuests(path, cat)
	if err != nil {
		t.Fatalf("LoadQuests() error = %v", err)
	}

	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
	if cat.Quest("Broken") != nil {
		t.Error("invalid quest must not be loaded")
	}
	if quest := cat.Quest("Daily Quest - Check-In"); quest == nil || !quest.IsDaily() {
		t.Error("daily quest should be loaded with its reward table")
	}
}

func TestLoadQuests_MalformedItemSkipped(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quests.json", `[
		{"title": "Intro", "description": "d", "task": "t", "rewards": {"EXP": 20}},
		{"title": 42}
	]`)

	cat := catalog.New(testLogger())
	added, err := NewCatalogLoader(testLogger()).LoadQuests(path, cat)
	if err != nil {
		t.Fatalf("LoadQuests() error = %v", err)
	}
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
}

func TestLoadQuests_FileErrors(t *testing.T) {
	loader := NewCatalogLoader(testLogger())
	cat := catalog.New(testLogger())

	if _, err := loader.LoadQuests(filepath.Join(t.TempDir(), "missing.json"), cat); err == nil {
		t.Error("missing file should return an error")
	}

	dir := t.TempDir()
	path := writeFile(t, dir, "quests.json", `{"not": "an array"}`)
	if _, err := loader.LoadQuests(path, cat); err == nil {
		t.Error("non-array document should return an error")
	}
	if cat.QuestCount() != 0 {
		t.Error("failed loads must leave the catalog empty")
	}
}

func TestLoadBounties(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bounties.json", `[
		{"title": "logo-bounty", "description": "Design a logo", "task": "Submit a draft",
		 "status": "open",
		 "rewards": {"description": "Winner takes all",
		             "winner": {"openToREP": false, "EXP": 50, "JCE": 10},
		             "participation": {"openToREP": false, "EXP": 5, "JCE": 1}}},
		{"title": "half-baked", "description": "d", "task": "t", "status": "open",
		 "rewards": {"description": "r", "winner": {"EXP": 50}}}
	]`)

	cat := catalog.New(testLogger())
	added, err := NewCatalogLoader(testLogger()).LoadBounties(path, cat)
	if err != nil {
		t.Fatalf("LoadBounties() error = %v", err)
	}

	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
	if cat.Bounty("half-baked") != nil {
		t.Error("bounty with an incomplete winner reward must be rejected")
	}
	bounty := cat.Bounty("logo-bounty")
	if bounty == nil {
		t.Fatal("valid bounty should be loaded")
	}
	if *bounty.Rewards.Winner.EXP != 50 || *bounty.Rewards.Participation.JCE != 1 {
		t.Errorf("unexpected rewards %+v", bounty.Rewards)
	}
}

func TestFileSnapshotWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "scores.json")

	alice := models.NewPlayer("111111111111111111", "alice")
	alice.AddEXP(7)
	day := models.NewDailyScore(time.Date(2021, 11, 3, 0, 0, 0, 0, time.UTC))
	day.Score("alice").Append(models.NewAction(models.ActionMessage, "m", day.Date, 2, 0, 0))

	snapshot := &models.Snapshot{
		Players:      []*models.Player{alice},
		ScoreHistory: []*models.DailyScore{day},
	}

	writer := NewFileSnapshotWriter(path, testLogger())
	if err := writer.Write(snapshot); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	loaded, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot() error = %v", err)
	}
	if len(loaded.Players) != 1 || loaded.Players[0].Name != "alice" {
		t.Errorf("unexpected players %+v", loaded.Players)
	}
	if loaded.Players[0].Stats.EXP != 7 {
		t.Errorf("EXP = %d, want 7", loaded.Players[0].Stats.EXP)
	}
	if len(loaded.ScoreHistory) != 1 || len(loaded.ScoreHistory[0].Scores) != 1 {
		t.Errorf("unexpected history %+v", loaded.ScoreHistory)
	}
}

func TestFileSnapshotWriter_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	writer := NewFileSnapshotWriter(path, testLogger())

	first := &models.Snapshot{Players: []*models.Player{models.NewPlayer("1111111111111111", "alice")}}
	second := &models.Snapshot{Players: []*models.Player{models.NewPlayer("2222222222222222", "bob")}}

	if err := writer.Write(first); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := writer.Write(second); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	loaded, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot() error = %v", err)
	}
	if len(loaded.Players) != 1 || loaded.Players[0].Name != "bob" {
		t.Errorf("later write should replace the file, got %+v", loaded.Players)
	}
}
