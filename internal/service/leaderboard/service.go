// Package leaderboard provides ranking services over archived scores.
package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/internal/repository"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// PlayerSource interface for player archive operations.
type PlayerSource interface {
	List() ([]models.PlayerRecord, error)
	GetByExternalID(externalID string) (*models.PlayerRecord, error)
}

// ScoreSource interface for score archive operations.
type ScoreSource interface {
	GetRange(from, to time.Time) ([]models.ScoreEntryRecord, error)
	GetByPlayer(playerName string) ([]models.ScoreEntryRecord, error)
}

// Entry represents a single entry in a leaderboard.
type Entry struct {
	ExternalID  string `json:"external_id"`
	Name        string `json:"name"`
	EXP         int    `json:"EXP"`
	REP         int    `json:"cREP"`
	JCE         int    `json:"JCE"`
	ActiveDays  int    `json:"active_days"`
	ActionCount int    `json:"action_count"`
	Rank        int    `json:"rank"`
}

// PlayerDetail is one participant's archived totals plus daily history.
type PlayerDetail struct {
	Player  models.PlayerRecord       `json:"player"`
	History []models.ScoreEntryRecord `json:"history"`
}

// Service builds leaderboards and per-player statistics from the archive.
type Service struct {
	players PlayerSource
	scores  ScoreSource
	log     *logger.Logger
}

// NewService creates a new leaderboard service with concrete repository types.
func NewService(players *repository.PlayerRepository, scores *repository.ScoreRepository, log *logger.Logger) *Service {
	return &Service{players: players, scores: scores, log: log}
}

// NewServiceWithInterfaces creates a new leaderboard service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(players PlayerSource, scores ScoreSource, log *logger.Logger) *Service {
	return &Service{players: players, scores: scores, log: log}
}

// GetLeaderboard returns the leaderboard for a given period and metric.
// Period is one of "all", "week", "month"; metric is "exp", "rep" or "jce".
//
//nolint:revive,unparam // ctx reserved for future context-aware operations (tracing, cancellation)
func (s *Service) GetLeaderboard(ctx context.Context, period, metric string, limit int) ([]Entry, error) {
	records, err := s.players.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, Entry{
			ExternalID: record.ExternalID,
			Name:       record.Name,
			EXP:        record.EXP,
			REP:        record.REP,
			JCE:        record.JCE,
		})
	}

	// Activity columns come from the daily entries; lifetime totals are
	// replaced by period totals when a window is requested.
	startDate, endDate, windowed := calculatePeriodRange(period)
	activity, err := s.aggregateActivity(startDate, endDate)
	if err != nil {
		s.log.Warn().Err(err).Str("period", period).Msg("Failed to aggregate daily activity")
	} else {
		for i := range entries {
			agg, ok := activity[entries[i].Name]
			if !ok {
				if windowed {
					entries[i].EXP, entries[i].REP, entries[i].JCE = 0, 0, 0
				}
				continue
			}
			entries[i].ActiveDays = agg.days
			entries[i].ActionCount = agg.actions
			if windowed {
				entries[i].EXP = agg.exp
				entries[i].REP = agg.rep
				entries[i].JCE = agg.jce
			}
		}
	}

	if err := s.sortLeaderboard(entries, metric); err != nil {
		return nil, err
	}

	// Assign ranks
	for i := range entries {
		entries[i].Rank = i + 1
	}

	// Apply limit
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// GetPlayerDetail returns one participant's archived totals and history.
//
//nolint:revive,unparam // ctx reserved for future context-aware operations
func (s *Service) GetPlayerDetail(ctx context.Context, externalID string) (*PlayerDetail, error) {
	player, err := s.players.GetByExternalID(externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	history, err := s.scores.GetByPlayer(player.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get player history: %w", err)
	}

	return &PlayerDetail{Player: *player, History: history}, nil
}

type aggregatedActivity struct {
	days    int
	actions int
	exp     int
	rep     int
	jce     int
}

// aggregateActivity folds daily entries in the range into per-player sums.
func (s *Service) aggregateActivity(from, to time.Time) (map[string]aggregatedActivity, error) {
	entries, err := s.scores.GetRange(from, to)
	if err != nil {
		return nil, err
	}

	activity := make(map[string]aggregatedActivity)
	for _, entry := range entries {
		agg := activity[entry.PlayerName]
		agg.days++
		agg.actions += entry.ActionCount
		agg.exp += entry.EXP
		agg.rep += entry.REP
		agg.jce += entry.JCE
		activity[entry.PlayerName] = agg
	}
	return activity, nil
}

// sortLeaderboard sorts leaderboard entries by the specified metric,
// breaking ties by name.
func (s *Service) sortLeaderboard(entries []Entry, metric string) error {
	var key func(Entry) int
	switch metric {
	case "", "exp":
		key = func(e Entry) int { return e.EXP }
	case "rep":
		key = func(e Entry) int { return e.REP }
	case "jce":
		key = func(e Entry) int { return e.JCE }
	default:
		return fmt.Errorf("unknown ranking metric: %s", metric)
	}

	sort.Slice(entries, func(i, j int) bool {
		if key(entries[i]) != key(entries[j]) {
			return key(entries[i]) > key(entries[j])
		}
		return entries[i].Name < entries[j].Name
	})
	return nil
}

// calculatePeriodRange maps a period name onto a date range. The third
// return reports whether the range is a window narrower than all time.
func calculatePeriodRange(period string) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), now, true
	case "month":
		return now.AddDate(0, -1, 0), now, true
	default:
		return time.Unix(0, 0).UTC(), now, false
	}
}
