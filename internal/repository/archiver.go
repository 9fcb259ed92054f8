package repository

import (
	"context"
	"fmt"

	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// Archiver persists a scoring run's output into the relational archive so the
// dashboard can serve it without replaying history.
type Archiver struct {
	players *PlayerRepository
	scores  *ScoreRepository
	log     *logger.Logger
}

// NewArchiver creates an archiver over the given repositories.
func NewArchiver(players *PlayerRepository, scores *ScoreRepository, log *logger.Logger) *Archiver {
	return &Archiver{players: players, scores: scores, log: log}
}

// StoreSnapshot upserts every participant's lifetime totals and every
// day/player score entry from the snapshot.
func (a *Archiver) StoreSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	for _, player := range snapshot.Players {
		if err := ctx.Err(); err != nil {
			return err
		}
		record := &models.PlayerRecord{
			ExternalID: player.ID,
			Name:       player.Name,
			EXP:        player.Stats.EXP,
			REP:        player.Stats.REP,
			JCE:        player.Stats.JCE,
		}
		if err := a.players.Upsert(record); err != nil {
			return fmt.Errorf("failed to archive player totals: %w", err)
		}
	}

	entries := 0
	for _, day := range snapshot.ScoreHistory {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, score := range day.Scores {
			record := &models.ScoreEntryRecord{
				Date:        day.Date,
				PlayerName:  score.PlayerName,
				ActionCount: len(score.Actions),
				EXP:         score.RunningTotal.EXP,
				REP:         score.RunningTotal.REP,
				JCE:         score.RunningTotal.JCE,
			}
			if err := a.scores.Upsert(record); err != nil {
				return fmt.Errorf("failed to archive score entry: %w", err)
			}
			entries++
		}
	}

	a.log.Info().
		Int("players", len(snapshot.Players)).
		Int("entries", entries).
		Msg("Snapshot archived")

	return nil
}
