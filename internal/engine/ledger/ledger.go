// Package ledger accumulates scored actions per participant per calendar day
// and folds the history into lifetime participant totals.
package ledger

import (
	"sort"

	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// Ledger holds one scoring run's daily score history, keyed by day.
type Ledger struct {
	days map[string]*models.DailyScore
	log  *logger.Logger
}

// New creates an empty ledger.
func New(log *logger.Logger) *Ledger {
	return &Ledger{
		days: make(map[string]*models.DailyScore),
		log:  log,
	}
}

// Apply records an action for the named participant on the action's day,
// creating the day and the participant's entry on first use. A negative
// experience delta is logged and not added to the running total; reputation
// and bonus-currency deltas apply unconditionally.
func (l *Ledger) Apply(action models.Action, playerName string) {
	key := models.DayKey(action.Date)
	day, ok := l.days[key]
	if !ok {
		day = models.NewDailyScore(action.Date)
		l.days[key] = day
	}

	if !day.Score(playerName).Append(action) {
		l.log.Warn().
			Str("player", playerName).
			Str("description", action.Description).
			Int("exp", action.EXP).
			Msg("Dropped negative experience delta")
	}
}

// History returns the daily scores sorted ascending by date.
func (l *Ledger) History() []*models.DailyScore {
	history := make([]*models.DailyScore, 0, len(l.days))
	for _, day := range l.days {
		history = append(history, day)
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].Date.Before(history[j].Date)
	})
	return history
}

// AggregateLifetimeTotals folds every action in the history into the matching
// participant's lifetime totals. Totals are recomputed from scratch on every
// call, so repeated calls are safe and yield identical results.
func (l *Ledger) AggregateLifetimeTotals(roster *models.Roster) {
	for _, player := range roster.Players() {
		player.ResetStats()
	}

	for _, day := range l.History() {
		for _, score := range day.Scores {
			player := roster.ByName(score.PlayerName)
			if player == nil {
				l.log.Warn().Str("player", score.PlayerName).Msg("Could not find player for score entry")
				continue
			}
			for _, action := range score.Actions {
				if !player.AddEXP(action.EXP) {
					l.log.Warn().
						Str("player", score.PlayerName).
						Int("exp", action.EXP).
						Msg("Dropped negative experience delta during aggregation")
				}
				player.AddREP(action.REP)
				player.AddJCE(action.JCE)
			}
		}
	}
}

// Snapshot builds the serializable scoreboard document: every roster player
// with lifetime totals plus the date-ordered daily history.
func (l *Ledger) Snapshot(roster *models.Roster) *models.Snapshot {
	return &models.Snapshot{
		Players:      roster.Players(),
		ScoreHistory: l.History(),
	}
}

// Days returns the number of distinct days with recorded scores.
func (l *Ledger) Days() int {
	return len(l.days)
}
