package models

import "time"

// PlayerScore collects one participant's actions within a single day,
// together with that day's running totals.
type PlayerScore struct {
	PlayerName   string   `json:"playerName"`
	Actions      []Action `json:"actions"`
	RunningTotal Stats    `json:"runningTotal"`
}

// Append records an action and folds it into the running total. It reports
// false when the action carries a negative EXP delta; the action is still
// appended with its REP and JCE deltas applied, matching apply semantics
// where only the EXP part is dropped.
func (s *PlayerScore) Append(action Action) bool {
	s.Actions = append(s.Actions, action)
	ok := true
	if action.EXP >= 0 {
		s.RunningTotal.EXP += action.EXP
	} else {
		ok = false
	}
	s.RunningTotal.REP += action.REP
	s.RunningTotal.JCE += action.JCE
	return ok
}

// DailyScore is one calendar day's scores, one entry per participant in
// insertion order.
type DailyScore struct {
	Date   time.Time      `json:"date"`
	Scores []*PlayerScore `json:"scores"`
}

// NewDailyScore creates an empty score board for the given day.
func NewDailyScore(day time.Time) *DailyScore {
	return &DailyScore{Date: NormalizeDay(day)}
}

// Score returns the entry for the named participant, creating it on first use.
func (d *DailyScore) Score(playerName string) *PlayerScore {
	for _, s := range d.Scores {
		if s.PlayerName == playerName {
			return s
		}
	}
	s := &PlayerScore{PlayerName: playerName}
	d.Scores = append(d.Scores, s)
	return s
}

// Snapshot is the serializable scoreboard document: every participant with
// lifetime totals plus the full daily history sorted ascending by date.
type Snapshot struct {
	Players      []*Player     `json:"players"`
	ScoreHistory []*DailyScore `json:"scoreHistory"`
}
