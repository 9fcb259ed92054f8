// Package catalog holds the immutable quest and bounty definitions and
// validates their structural integrity at load time.
package catalog

import (
	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// Catalog is the validated set of quest and bounty definitions. Entries are
// keyed by title; re-adding a title overwrites the prior entry.
type Catalog struct {
	quests       map[string]*models.QuestDefinition
	bounties     map[string]*models.BountyDefinition
	questTitles  []string
	bountyTitles []string
	log          *logger.Logger
}

// New creates an empty catalog.
func New(log *logger.Logger) *Catalog {
	return &Catalog{
		quests:   make(map[string]*models.QuestDefinition),
		bounties: make(map[string]*models.BountyDefinition),
		log:      log,
	}
}

// AddQuest validates and inserts a quest definition. Invalid definitions are
// logged and rejected; the catalog is never left with a partial entry.
func (c *Catalog) AddQuest(quest *models.QuestDefinition) bool {
	if quest == nil ||
		quest.Title == "" ||
		quest.Description == "" ||
		quest.Task == "" ||
		quest.Rewards == nil {
		c.log.Warn().
			Interface("quest", quest).
			Msg("Rejected quest definition: missing required fields")
		return false
	}

	if _, exists := c.quests[quest.Title]; !exists {
		c.questTitles = append(c.questTitles, quest.Title)
	}
	c.quests[quest.Title] = quest
	return true
}

// AddBounty validates and inserts a bounty definition.
func (c *Catalog) AddBounty(bounty *models.BountyDefinition) bool {
	if bounty == nil ||
		bounty.Title == "" ||
		bounty.Description == "" ||
		bounty.Task == "" ||
		bounty.Status == "" ||
		bounty.Rewards == nil {
		c.log.Warn().
			Interface("bounty", bounty).
			Msg("Rejected bounty definition: missing required fields")
		return false
	}

	if bounty.Status != models.BountyStatusOpen && bounty.Status != models.BountyStatusFulfilled {
		c.log.Warn().
			Str("title", bounty.Title).
			Str("status", bounty.Status).
			Msg("Rejected bounty definition: invalid status")
		return false
	}

	if bounty.Rewards.Description == "" || bounty.Rewards.Winner == nil {
		c.log.Warn().
			Str("title", bounty.Title).
			Msg("Rejected bounty definition: rewards missing description or winner")
		return false
	}

	if !bounty.Rewards.Winner.Complete() {
		c.log.Warn().
			Str("title", bounty.Title).
			Msg("Rejected bounty definition: incomplete winner reward")
		return false
	}

	if bounty.Rewards.Participation != nil && !bounty.Rewards.Participation.Complete() {
		c.log.Warn().
			Str("title", bounty.Title).
			Msg("Rejected bounty definition: incomplete participation reward")
		return false
	}

	if _, exists := c.bounties[bounty.Title]; !exists {
		c.bountyTitles = append(c.bountyTitles, bounty.Title)
	}
	c.bounties[bounty.Title] = bounty
	return true
}

// Quest returns the quest definition with the given title, or nil.
func (c *Catalog) Quest(title string) *models.QuestDefinition {
	return c.quests[title]
}

// Bounty returns the bounty definition with the given title, or nil.
func (c *Catalog) Bounty(title string) *models.BountyDefinition {
	return c.bounties[title]
}

// QuestTitles returns quest titles in insertion order.
func (c *Catalog) QuestTitles() []string {
	return c.questTitles
}

// BountyTitles returns bounty titles in insertion order.
func (c *Catalog) BountyTitles() []string {
	return c.bountyTitles
}

// QuestCount returns the number of quest definitions.
func (c *Catalog) QuestCount() int {
	return len(c.quests)
}

// BountyCount returns the number of bounty definitions.
func (c *Catalog) BountyCount() int {
	return len(c.bounties)
}
