package models

// QuestRewards is the reward spec of a quest: either a flat point value or a
// per-streak-day table for daily quests.
type QuestRewards struct {
	OpenToREP bool                   `json:"openToREP"`
	EXP       int                    `json:"EXP,omitempty"`
	JCE       int                    `json:"JCE,omitempty"`
	Daily     map[string]DailyReward `json:"daily,omitempty"`
}

// DailyReward is the reward for one streak day of a daily quest.
type DailyReward struct {
	EXP int `json:"EXP"`
}

// QuestDefinition describes one quest. Immutable after load.
type QuestDefinition struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Task        string        `json:"task"`
	Rewards     *QuestRewards `json:"rewards"`
}

// IsDaily reports whether the quest rewards a per-day streak rather than a
// flat value.
func (q *QuestDefinition) IsDaily() bool {
	return q.Rewards != nil && q.Rewards.EXP == 0 && q.Rewards.Daily != nil
}

// Bounty status values.
const (
	BountyStatusOpen      = "open"
	BountyStatusFulfilled = "fulfilled"
)

// BountyReward is one reward tier of a bounty. Fields are pointers so that
// load-time validation can distinguish absent from zero.
type BountyReward struct {
	OpenToREP *bool `json:"openToREP"`
	EXP       *int  `json:"EXP"`
	JCE       *int  `json:"JCE"`
}

// Complete reports whether all three reward fields are present.
func (r *BountyReward) Complete() bool {
	return r != nil && r.OpenToREP != nil && r.EXP != nil && r.JCE != nil
}

// BountyRewards groups the winner reward with an optional participation reward.
type BountyRewards struct {
	Description   string        `json:"description"`
	Winner        *BountyReward `json:"winner"`
	Participation *BountyReward `json:"participation,omitempty"`
}

// BountyDefinition describes one bounty. The title doubles as the name of the
// channel the bounty is posted in. Immutable after load.
type BountyDefinition struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Task         string         `json:"task"`
	Status       string         `json:"status"`
	Requirements string         `json:"requirements,omitempty"`
	Copyright    string         `json:"copyright,omitempty"`
	Rewards      *BountyRewards `json:"rewards"`
}
