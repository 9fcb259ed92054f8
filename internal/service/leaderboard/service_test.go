package leaderboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

type mockPlayerSource struct {
	players []models.PlayerRecord
	err     error
}

func (m *mockPlayerSource) List() ([]models.PlayerRecord, error) {
	return m.players, m.err
}

func (m *mockPlayerSource) GetByExternalID(externalID string) (*models.PlayerRecord, error) {
	for i := range m.players {
		if m.players[i].ExternalID == externalID {
			return &m.players[i], nil
		}
	}
	return nil, errors.New("not found")
}

type mockScoreSource struct {
	entries []models.ScoreEntryRecord
	err     error
}

func (m *mockScoreSource) GetRange(from, to time.Time) ([]models.ScoreEntryRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.ScoreEntryRecord
	for _, e := range m.entries {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockScoreSource) GetByPlayer(playerName string) ([]models.ScoreEntryRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.ScoreEntryRecord
	for _, e := range m.entries {
		if e.PlayerName == playerName {
			out = append(out, e)
		}
	}
	return out, nil
}

func setupService(players *mockPlayerSource, scores *mockScoreSource) *Service {
	return NewServiceWithInterfaces(players, scores, logger.New("error", "text", "stdout"))
}

func recentDay(daysAgo int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -daysAgo).Truncate(24 * time.Hour)
}

func TestGetLeaderboard_RanksByMetric(t *testing.T) {
	players := &mockPlayerSource{players: []models.PlayerRecord{
		{ExternalID: "1111111111111111", Name: "alice", EXP: 10, REP: 9},
		{ExternalID: "2222222222222222", Name: "bob", EXP: 30, REP: 1},
		{ExternalID: "3333333333333333", Name: "carol", EXP: 20, REP: 5},
	}}
	service := setupService(players, &mockScoreSource{})

	entries, err := service.GetLeaderboard(context.Background(), "all", "exp", 0)
	if err != nil {
		t.Fatalf("GetLeaderboard() error = %v", err)
	}

	wantOrder := []string{"bob", "carol", "alice"}
	for i, name := range wantOrder {
		if entries[i].Name != name {
			t.Errorf("rank %d = %s, want %s", i+1, entries[i].Name, name)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("rank field = %d, want %d", entries[i].Rank, i+1)
		}
	}

	byREP, err := service.GetLeaderboard(context.Background(), "all", "rep", 0)
	if err != nil {
		t.Fatalf("GetLeaderboard() error = %v", err)
	}
	if byREP[0].Name != "alice" {
		t.Errorf("REP leader = %s, want alice", byREP[0].Name)
	}
}

func TestGetLeaderboard_TiesBreakByName(t *testing.T) {
	players := &mockPlayerSource{players: []models.PlayerRecord{
		{ExternalID: "2222222222222222", Name: "bob", EXP: 10},
		{ExternalID: "1111111111111111", Name: "alice", EXP: 10},
	}}
	service := setupService(players, &mockScoreSource{})

	entries, err := service.GetLeaderboard(context.Background(), "all", "exp", 0)
	if err != nil {
		t.Fatalf("GetLeaderboard() error = %v", err)
	}
	if entries[0].Name != "alice" {
		t.Errorf("tie should break alphabetically, got %s first", entries[0].Name)
	}
}

func TestGetLeaderboard_Limit(t *testing.T) {
	players := &mockPlayerSource{players: []models.PlayerRecord{
		{ExternalID: "1111111111111111", Name: "alice", EXP: 10},
		{ExternalID: "2222222222222222", Name: "bob", EXP: 30},
		{ExternalID: "3333333333333333", Name: "carol", EXP: 20},
	}}
	service := setupService(players, &mockScoreSource{})

	entries, err := service.GetLeaderboard(context.Background(), "all", "exp", 2)
	if err != nil {
		t.Fatalf("GetLeaderboard() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("limit ignored: got %d entries", len(entries))
	}
}

func TestGetLeaderboard_WindowedPeriodUsesDailyTotals(t *testing.T) {
	players := &mockPlayerSource{players: []models.PlayerRecord{
		{ExternalID: "1111111111111111", Name: "alice", EXP: 100},
		{ExternalID: "2222222222222222", Name: "bob", EXP: 500},
	}}
	scores := &mockScoreSource{entries: []models.ScoreEntryRecord{
		{Date: recentDay(2), PlayerName: "alice", ActionCount: 3, EXP: 40},
		{Date: recentDay(1), PlayerName: "alice", ActionCount: 1, EXP: 5},
		// bob was only active long before the window.
		{Date: recentDay(60), PlayerName: "bob", ActionCount: 9, EXP: 500},
	}}
	service := setupService(players, scores)

	entries, err := service.GetLeaderboard(context.Background(), "week", "exp", 0)
	if err != nil {
		t.Fatalf("GetLeaderboard() error = %v", err)
	}

	if entries[0].Name != "alice" || entries[0].EXP != 45 {
		t.Errorf("windowed leader = %s with EXP %d, want alice with 45", entries[0].Name, entries[0].EXP)
	}
	if entries[0].ActiveDays != 2 || entries[0].ActionCount != 4 {
		t.Errorf("activity = %d days / %d actions, want 2/4", entries[0].ActiveDays, entries[0].ActionCount)
	}
	if entries[1].Name != "bob" || entries[1].EXP != 0 {
		t.Errorf("inactive player should show zero in the window, got %+v", entries[1])
	}
}

func TestGetLeaderboard_UnknownMetric(t *testing.T) {
	service := setupService(&mockPlayerSource{}, &mockScoreSource{})
	if _, err := service.GetLeaderboard(context.Background(), "all", "charisma", 0); err == nil {
		t.Fatal("unknown metric should be rejected")
	}
}

func TestGetPlayerDetail(t *testing.T) {
	players := &mockPlayerSource{players: []models.PlayerRecord{
		{ExternalID: "1111111111111111", Name: "alice", EXP: 45},
	}}
	scores := &mockScoreSource{entries: []models.ScoreEntryRecord{
		{Date: recentDay(2), PlayerName: "alice", EXP: 40},
		{Date: recentDay(1), PlayerName: "alice", EXP: 5},
		{Date: recentDay(1), PlayerName: "bob", EXP: 9},
	}}
	service := setupService(players, scores)

	detail, err := service.GetPlayerDetail(context.Background(), "1111111111111111")
	if err != nil {
		t.Fatalf("GetPlayerDetail() error = %v", err)
	}
	if detail.Player.Name != "alice" {
		t.Errorf("player = %s, want alice", detail.Player.Name)
	}
	if len(detail.History) != 2 {
		t.Errorf("history entries = %d, want 2", len(detail.History))
	}

	if _, err := service.GetPlayerDetail(context.Background(), "9999999999999999"); err == nil {
		t.Error("unknown player should return an error")
	}
}
