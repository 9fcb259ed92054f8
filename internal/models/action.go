// Package models defines domain models for the community scorekeeper.
package models

import "time"

// ActionKind identifies the kind of reward-bearing action a message produced.
type ActionKind string

// Action kind constants.
const (
	ActionMessage  ActionKind = "message"
	ActionQuest    ActionKind = "quest"
	ActionReaction ActionKind = "reaction"
	ActionBounty   ActionKind = "bounty"
	ActionRep      ActionKind = "rep"
	ActionProposal ActionKind = "proposal"
	ActionVote     ActionKind = "vote"
)

// Action is an immutable record of one scored event. EXP deltas are expected
// to be non-negative; negative EXP is rejected at apply time, not here.
type Action struct {
	Kind        ActionKind `json:"type"`
	Description string     `json:"description"`
	Content     string     `json:"content,omitempty"`
	Date        time.Time  `json:"date"`
	EXP         int        `json:"EXP"`
	REP         int        `json:"REP"`
	JCE         int        `json:"JCE"`
}

// NewAction creates an action with the given kind, description and deltas.
func NewAction(kind ActionKind, description string, date time.Time, exp, rep, jce int) Action {
	return Action{
		Kind:        kind,
		Description: description,
		Date:        date,
		EXP:         exp,
		REP:         rep,
		JCE:         jce,
	}
}
