// Package streak tracks consecutive-day quest response streaks per
// participant and maps streak length to experience rewards.
package streak

import (
	"fmt"
	"strconv"
	"time"

	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

type trackedPlayer struct {
	currentStreak int
	responseDates []time.Time
}

// Tracker tracks streaks for one daily quest. Rewards beyond the highest
// configured streak day saturate at that day's reward.
type Tracker struct {
	questTitle string
	rewards    map[int]int
	highestDay int
	players    map[string]*trackedPlayer
	log        *logger.Logger
}

// NewTracker creates a tracker for a daily quest. Reward table keys that are
// not positive integers are skipped and logged.
func NewTracker(quest *models.QuestDefinition, log *logger.Logger) *Tracker {
	t := &Tracker{
		questTitle: quest.Title,
		rewards:    make(map[int]int),
		players:    make(map[string]*trackedPlayer),
		log:        log,
	}

	if quest.Rewards == nil || quest.Rewards.Daily == nil {
		log.Warn().Str("quest", quest.Title).Msg("Streak tracker created for non-daily quest")
		return t
	}

	for key, reward := range quest.Rewards.Daily {
		day, err := strconv.Atoi(key)
		if err != nil || day < 1 {
			log.Warn().
				Str("quest", quest.Title).
				Str("day", key).
				Msg("Skipping invalid streak reward day")
			continue
		}
		t.rewards[day] = reward.EXP
		if day > t.highestDay {
			t.highestDay = day
		}
	}

	return t
}

// RecordResponse records a quest response for the participant on the given
// date and returns the resulting experience-only quest action. The streak
// extends only when some previously recorded response day is exactly one
// calendar day away from the new day; otherwise it resets to 1. The date is
// appended to the history regardless.
func (t *Tracker) RecordResponse(playerKey string, date time.Time) models.Action {
	player, ok := t.players[playerKey]
	if !ok {
		player = &trackedPlayer{currentStreak: 1}
		t.players[playerKey] = player
	} else {
		day := models.NormalizeDay(date)
		extended := false
		for _, prev := range player.responseDates {
			delta := day.Sub(models.NormalizeDay(prev))
			if delta < 0 {
				delta = -delta
			}
			if delta == 24*time.Hour {
				extended = true
				player.currentStreak++
				break
			}
		}
		if !extended {
			player.currentStreak = 1
		}
	}
	player.responseDates = append(player.responseDates, date)

	exp := t.rewardFor(player.currentStreak)
	description := fmt.Sprintf("Daily Quest - %s - Day %d", t.questTitle, player.currentStreak)

	return models.NewAction(models.ActionQuest, description, date, exp, 0, 0)
}

// Streak returns the participant's current streak length, or 0 when unseen.
func (t *Tracker) Streak(playerKey string) int {
	if player, ok := t.players[playerKey]; ok {
		return player.currentStreak
	}
	return 0
}

// rewardFor looks up the reward for a streak, saturating at the highest
// configured day.
func (t *Tracker) rewardFor(streak int) int {
	if t.highestDay == 0 {
		return 0
	}
	if streak > t.highestDay {
		streak = t.highestDay
	}
	exp, ok := t.rewards[streak]
	if !ok {
		t.log.Warn().
			Str("quest", t.questTitle).
			Int("streak", streak).
			Msg("No reward configured for streak day")
		return 0
	}
	return exp
}
