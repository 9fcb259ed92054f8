package models

import (
	"testing"
	"time"
)

func TestPlayerScore_Append(t *testing.T) {
	date := time.Date(2021, 11, 3, 12, 0, 0, 0, time.UTC)
	score := &PlayerScore{PlayerName: "alice"}

	if !score.Append(NewAction(ActionMessage, "Message - #general", date, 2, 0, 0)) {
		t.Error("non-negative action should be accepted")
	}
	if !score.Append(NewAction(ActionRep, "Give +REP", date, 0, 1, 0)) {
		t.Error("reputation action should be accepted")
	}

	if score.RunningTotal.EXP != 2 || score.RunningTotal.REP != 1 {
		t.Errorf("unexpected running total %+v", score.RunningTotal)
	}

	// Negative EXP is reported but the action is still recorded with its
	// other deltas.
	if score.Append(NewAction(ActionQuest, "bad", date, -4, 0, 2)) {
		t.Error("negative experience delta should report false")
	}
	if score.RunningTotal.EXP != 2 {
		t.Errorf("negative EXP must not change the total, got %d", score.RunningTotal.EXP)
	}
	if score.RunningTotal.JCE != 2 {
		t.Errorf("JCE delta should still apply, got %d", score.RunningTotal.JCE)
	}
	if len(score.Actions) != 3 {
		t.Errorf("all actions should be recorded, got %d", len(score.Actions))
	}
}

func TestDailyScore_Score(t *testing.T) {
	day := NewDailyScore(time.Date(2021, 11, 3, 18, 30, 0, 0, time.UTC))

	if !day.Date.Equal(time.Date(2021, 11, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("day should be normalized to midnight UTC, got %v", day.Date)
	}

	first := day.Score("alice")
	second := day.Score("alice")
	if first != second {
		t.Error("Score should return the same entry for the same participant")
	}

	day.Score("bob")
	if len(day.Scores) != 2 {
		t.Errorf("expected 2 entries, got %d", len(day.Scores))
	}
}

func TestNormalizeDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2021, 11, 4, 2, 0, 0, 0, loc) // 2021-11-03 21:00 UTC

	got := NormalizeDay(local)
	want := time.Date(2021, 11, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NormalizeDay = %v, want %v", got, want)
	}
	if DayKey(local) != "2021-11-03" {
		t.Errorf("DayKey = %s, want 2021-11-03", DayKey(local))
	}
}

func TestQuestDefinition_IsDaily(t *testing.T) {
	daily := &QuestDefinition{
		Title: "Check-In", Description: "d", Task: "t",
		Rewards: &QuestRewards{Daily: map[string]DailyReward{"1": {EXP: 5}}},
	}
	flat := &QuestDefinition{
		Title: "One-Shot", Description: "d", Task: "t",
		Rewards: &QuestRewards{EXP: 20},
	}

	if !daily.IsDaily() {
		t.Error("quest with a daily table and no flat EXP should be daily")
	}
	if flat.IsDaily() {
		t.Error("quest with flat EXP should not be daily")
	}
}

func TestBountyReward_Complete(t *testing.T) {
	open := false
	exp := 50
	jce := 10

	complete := &BountyReward{OpenToREP: &open, EXP: &exp, JCE: &jce}
	if !complete.Complete() {
		t.Error("reward with all fields should be complete")
	}

	missing := &BountyReward{EXP: &exp, JCE: &jce}
	if missing.Complete() {
		t.Error("reward without openToREP should be incomplete")
	}

	var nilReward *BountyReward
	if nilReward.Complete() {
		t.Error("nil reward should be incomplete")
	}
}
