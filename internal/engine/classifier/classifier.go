// Package classifier decides which reward-bearing actions a normalized
// message produces: ordinary messages, quest responses, bounty attempts and
// fulfillments, reaction credits, reputation transfers, and governance
// proposal/vote credits.
package classifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/soltree-games/scorekeeper/internal/engine/catalog"
	"github.com/soltree-games/scorekeeper/internal/engine/streak"
	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// Reaction is one emoji reaction on a message with the set of reacting users.
type Reaction struct {
	Emoji   string
	UserIDs []string
}

// Message is a normalized chat message ready for classification. Author is
// the resolved participant display name, empty when the author is not a
// recognized participant.
type Message struct {
	Content   string
	Author    string
	AuthorID  string
	Channel   string
	CreatedAt time.Time
	Reactions []Reaction
	System    bool
}

// Credit attributes one action to one participant.
type Credit struct {
	PlayerName string
	Action     models.Action
}

// Flat reward values for message, governance and vote credits.
const (
	expPerMessage        = 2
	expGovernanceMessage = 3
	expProposal          = 15
	expVote              = 10
	checkInAlias         = "check-in"
)

// Classifier turns normalized messages into credits. It owns the per-quest
// streak trackers for the duration of one scoring run.
type Classifier struct {
	catalog      *catalog.Catalog
	roster       *models.Roster
	roles        *Roles
	adminID      string
	questMarker  string
	checkInTitle string
	startDate    time.Time
	trackers     map[string]*streak.Tracker
	log          *logger.Logger
}

// New creates a classifier for one scoring run.
func New(
	cat *catalog.Catalog,
	roster *models.Roster,
	roles *Roles,
	adminID, questMarker, checkInTitle string,
	startDate time.Time,
	log *logger.Logger,
) *Classifier {
	return &Classifier{
		catalog:      cat,
		roster:       roster,
		roles:        roles,
		adminID:      adminID,
		questMarker:  questMarker,
		checkInTitle: checkInTitle,
		startDate:    startDate,
		trackers:     make(map[string]*streak.Tracker),
		log:          log,
	}
}

// Classify returns every credit the message produces, in a deterministic
// order: reaction credits first, then the channel-role specific credits.
// Empty and system messages produce nothing. Messages from unrecognized
// authors, and messages predating the game start, flow only through the
// administrative edge-case path.
func (c *Classifier) Classify(msg *Message) []Credit {
	if msg.System || msg.Content == "" {
		return nil
	}

	role := c.roles.Role(msg.Channel)

	// Bounty channels are processed regardless of who posted: the bounty
	// announcements come from the admin account and tag the participants.
	if role == RoleBounty {
		credits := c.reactionPass(msg)
		return append(credits, c.classifyBounty(msg)...)
	}

	if msg.Author == "" || (!c.startDate.IsZero() && msg.CreatedAt.Before(c.startDate)) {
		return c.classifyAdminEdgeCase(msg, role)
	}

	credits := c.reactionPass(msg)

	switch role {
	case RoleGeneral:
		credits = append(credits, c.classifyGeneral(msg)...)
	case RoleQuest:
		credits = append(credits, c.questCredits(msg.Channel, msg.Author, msg.CreatedAt)...)
	case RoleGovernance:
		credits = append(credits, c.classifyGovernance(msg)...)
	default:
		c.log.Debug().Str("channel", msg.Channel).Msg("Message in unconfigured channel, skipped")
	}

	return credits
}

// reactionPass credits reactions on a message. Every recognized reactor earns
// at most one reaction credit for the message; a thumbs-up additionally emits
// a reputation transfer, capped per giver per day.
func (c *Classifier) reactionPass(msg *Message) []Credit {
	var credits []Credit
	credited := make(map[string]bool)

	for _, reaction := range msg.Reactions {
		emoji := NormalizeReactionEmoji(reaction.Emoji)

		for _, userID := range reaction.UserIDs {
			player := c.roster.ByID(userID)
			if player == nil {
				continue
			}

			if emoji == emojiThumbsUp {
				if player.RepTracker.CanAward(msg.CreatedAt) {
					credits = append(credits, Credit{
						PlayerName: player.Name,
						Action:     models.NewAction(models.ActionRep, "Give +REP", msg.CreatedAt, 0, 1, 0),
					})
				} else {
					c.log.Debug().
						Str("player", player.Name).
						Msg("Daily reputation cap reached, grant skipped")
				}

				if msg.Author != "" && msg.AuthorID != c.adminID {
					credits = append(credits, Credit{
						PlayerName: msg.Author,
						Action: models.NewAction(models.ActionRep,
							fmt.Sprintf("Received +REP from %s", player.Name),
							msg.CreatedAt, 0, 1, 0),
					})
				}
			}

			if !credited[userID] {
				credited[userID] = true
				credits = append(credits, Credit{
					PlayerName: player.Name,
					Action: models.NewAction(models.ActionReaction,
						"reacted to message - "+msg.Channel,
						msg.CreatedAt, 1, 0, 0),
				})
			}
		}
	}

	return credits
}

// classifyBounty credits the bounty reward to every participant tagged in the
// message. A "fulfilled" token selects the winner reward; otherwise the
// participation reward applies, or nothing when none is configured.
func (c *Classifier) classifyBounty(msg *Message) []Credit {
	bounty := c.catalog.Bounty(msg.Channel)
	if bounty == nil {
		c.log.Warn().Str("channel", msg.Channel).Msg("No bounty definition for channel")
		return nil
	}

	ids := ParseSnowflakes(msg.Content)
	if len(ids) == 0 {
		return nil
	}

	fulfilled := hasToken(msg.Content, "fulfilled")

	var exp, jce int
	var description string
	if fulfilled {
		exp = *bounty.Rewards.Winner.EXP
		jce = *bounty.Rewards.Winner.JCE
		description = "fulfilled bounty - " + msg.Channel
	} else {
		if bounty.Rewards.Participation == nil {
			return nil
		}
		exp = *bounty.Rewards.Participation.EXP
		jce = *bounty.Rewards.Participation.JCE
		description = "attempted bounty - " + msg.Channel
	}

	var credits []Credit
	for _, id := range ids {
		player := c.roster.ByID(id)
		if player == nil {
			c.log.Debug().Str("id", id).Msg("Tagged ID is not a known participant")
			continue
		}
		credits = append(credits, Credit{
			PlayerName: player.Name,
			Action:     models.NewAction(models.ActionBounty, description, msg.CreatedAt, exp, 0, jce),
		})
	}

	return credits
}

// classifyGeneral handles open-discussion channels: quest invocations
// delegate to the named quest, anything else earns the flat message reward.
func (c *Classifier) classifyGeneral(msg *Message) []Credit {
	tokens := strings.Fields(msg.Content)

	if len(tokens) > 0 && strings.EqualFold(tokens[0], c.questMarker) {
		if len(tokens) < 2 {
			c.log.Debug().Str("content", msg.Content).Msg("Quest invocation without a title")
			return nil
		}
		title := tokens[1]
		if strings.EqualFold(title, checkInAlias) {
			title = c.checkInTitle
		}
		return c.questCredits(title, msg.Author, msg.CreatedAt)
	}

	action := models.NewAction(models.ActionMessage, "Message - #"+msg.Channel, msg.CreatedAt, expPerMessage, 0, 0)
	action.Content = msg.Content

	return []Credit{{PlayerName: msg.Author, Action: action}}
}

// classifyGovernance handles the governance channel: every message earns the
// flat any-channel reward plus the governance reward, and each administrative
// ballot reaction independently credits a proposal or vote to the author.
func (c *Classifier) classifyGovernance(msg *Message) []Credit {
	var credits []Credit

	for _, reaction := range msg.Reactions {
		if !containsID(reaction.UserIDs, c.adminID) {
			continue
		}
		switch reaction.Emoji {
		case emojiBallotBox:
			credits = append(credits, Credit{
				PlayerName: msg.Author,
				Action:     models.NewAction(models.ActionProposal, "Proposal", msg.CreatedAt, expProposal, 0, 0),
			})
		case emojiBallotBoxCheck:
			credits = append(credits, Credit{
				PlayerName: msg.Author,
				Action:     models.NewAction(models.ActionVote, "Vote", msg.CreatedAt, expVote, 0, 0),
			})
		}
	}

	anyChannel := models.NewAction(models.ActionMessage, "Message - Any Channel", msg.CreatedAt, expPerMessage, 0, 0)
	governance := models.NewAction(models.ActionMessage, "Message - #"+msg.Channel, msg.CreatedAt, expGovernanceMessage, 0, 0)
	governance.Content = msg.Content

	credits = append(credits, Credit{PlayerName: msg.Author, Action: anyChannel})
	credits = append(credits, Credit{PlayerName: msg.Author, Action: governance})

	return credits
}

// classifyAdminEdgeCase processes messages whose author is not a recognized
// participant. Administrative messages in quest channels that tag participant
// IDs credit the quest to each tagged participant; everything else is skipped.
func (c *Classifier) classifyAdminEdgeCase(msg *Message, role ChannelRole) []Credit {
	if role != RoleQuest || msg.AuthorID != c.adminID {
		return nil
	}

	credits := c.reactionPass(msg)

	ids := ParseSnowflakes(msg.Content)
	if len(ids) == 0 {
		return credits
	}

	for _, id := range ids {
		player := c.roster.ByID(id)
		if player == nil {
			c.log.Debug().Str("id", id).Msg("Tagged ID is not a known participant")
			continue
		}
		credits = append(credits, c.questCredits(msg.Channel, player.Name, msg.CreatedAt)...)
	}

	return credits
}

// questCredits builds the credit for one quest response: daily quests go
// through the streak tracker, one-shot quests earn the flat reward.
func (c *Classifier) questCredits(title, playerName string, date time.Time) []Credit {
	quest := c.catalog.Quest(title)
	if quest == nil {
		c.log.Debug().Str("title", title).Msg("No quest definition for title")
		return nil
	}

	if quest.IsDaily() {
		tracker, ok := c.trackers[quest.Title]
		if !ok {
			tracker = streak.NewTracker(quest, c.log)
			c.trackers[quest.Title] = tracker
		}
		return []Credit{{PlayerName: playerName, Action: tracker.RecordResponse(playerName, date)}}
	}

	if quest.Rewards.EXP == 0 {
		c.log.Warn().Str("title", title).Msg("Quest definition has neither flat nor daily rewards")
		return nil
	}

	return []Credit{{
		PlayerName: playerName,
		Action:     models.NewAction(models.ActionQuest, "Quest - "+quest.Title, date, quest.Rewards.EXP, 0, 0),
	}}
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
