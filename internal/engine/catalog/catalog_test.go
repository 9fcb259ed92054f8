package catalog

import (
	"testing"

	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New("error", "text", "stdout")
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func validBounty() *models.BountyDefinition {
	return &models.BountyDefinition{
		Title:       "logo-bounty",
		Description: "Design a logo",
		Task:        "Submit a logo draft",
		Status:      models.BountyStatusOpen,
		Rewards: &models.BountyRewards{
			Description: "Winner takes all",
			Winner:      &models.BountyReward{OpenToREP: boolPtr(false), EXP: intPtr(50), JCE: intPtr(10)},
		},
	}
}

func TestAddQuest(t *testing.T) {
	tests := []struct {
		name  string
		quest *models.QuestDefinition
		want  bool
	}{
		{
			name: "valid flat quest",
			quest: &models.QuestDefinition{
				Title: "Intro", Description: "Introduce yourself", Task: "Post an intro",
				Rewards: &models.QuestRewards{EXP: 20},
			},
			want: true,
		},
		{
			name: "valid daily quest",
			quest: &models.QuestDefinition{
				Title: "Check-In", Description: "Daily check-in", Task: "Say hi",
				Rewards: &models.QuestRewards{Daily: map[string]models.DailyReward{"1": {EXP: 5}}},
			},
			want: true,
		},
		{
			name: "missing rewards",
			quest: &models.QuestDefinition{
				Title: "Broken", Description: "No rewards", Task: "Nothing",
			},
			want: false,
		},
		{
			name: "missing title",
			quest: &models.QuestDefinition{
				Description: "Anonymous", Task: "Nothing",
				Rewards: &models.QuestRewards{EXP: 5},
			},
			want: false,
		},
		{
			name:  "nil quest",
			quest: nil,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := New(testLogger())
			if got := cat.AddQuest(tt.quest); got != tt.want {
				t.Errorf("AddQuest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddBounty(t *testing.T) {
	t.Run("valid bounty", func(t *testing.T) {
		cat := New(testLogger())
		if !cat.AddBounty(validBounty()) {
			t.Fatal("valid bounty should be accepted")
		}
		if cat.Bounty("logo-bounty") == nil {
			t.Error("accepted bounty should be retrievable by title")
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		cat := New(testLogger())
		bounty := validBounty()
		bounty.Status = "closed"
		if cat.AddBounty(bounty) {
			t.Error("unknown status should be rejected")
		}
	})

	t.Run("incomplete winner reward", func(t *testing.T) {
		cat := New(testLogger())
		bounty := validBounty()
		bounty.Rewards.Winner.JCE = nil
		if cat.AddBounty(bounty) {
			t.Error("winner reward missing a field should be rejected")
		}
	})

	t.Run("incomplete participation reward", func(t *testing.T) {
		cat := New(testLogger())
		bounty := validBounty()
		bounty.Rewards.Participation = &models.BountyReward{EXP: intPtr(5)}
		if cat.AddBounty(bounty) {
			t.Error("incomplete participation reward should be rejected")
		}
	})

	t.Run("rejected bounty leaves no entry", func(t *testing.T) {
		cat := New(testLogger())
		bounty := validBounty()
		bounty.Rewards.Winner = nil
		cat.AddBounty(bounty)
		if cat.BountyCount() != 0 {
			t.Error("rejected bounty must not be stored")
		}
	})
}

func TestTitleOrder(t *testing.T) {
	cat := New(testLogger())
	for _, title := range []string{"charlie", "alpha", "bravo"} {
		cat.AddQuest(&models.QuestDefinition{
			Title: title, Description: "d", Task: "t",
			Rewards: &models.QuestRewards{EXP: 1},
		})
	}

	titles := cat.QuestTitles()
	want := []string{"charlie", "alpha", "bravo"}
	for i, title := range want {
		if titles[i] != title {
			t.Errorf("QuestTitles()[%d] = %s, want %s (insertion order)", i, titles[i], title)
		}
	}
}

func TestOverwriteKeepsSingleEntry(t *testing.T) {
	cat := New(testLogger())
	first := &models.QuestDefinition{Title: "Intro", Description: "old", Task: "t", Rewards: &models.QuestRewards{EXP: 5}}
	second := &models.QuestDefinition{Title: "Intro", Description: "new", Task: "t", Rewards: &models.QuestRewards{EXP: 9}}

	cat.AddQuest(first)
	cat.AddQuest(second)

	if cat.QuestCount() != 1 {
		t.Fatalf("expected 1 quest after overwrite, got %d", cat.QuestCount())
	}
	if cat.Quest("Intro").Rewards.EXP != 9 {
		t.Error("later definition should win")
	}
	if len(cat.QuestTitles()) != 1 {
		t.Error("overwrite must not duplicate the title list")
	}
}
