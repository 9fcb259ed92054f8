// Package platform provides the chat platform client: channel listing,
// message history with resolved reactions, and the guild roster.
package platform

import (
	"context"
	"time"
)

// Channel is a text channel in the community guild.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Reaction is one emoji reaction on a message with its fully resolved
// reacting-user IDs.
type Reaction struct {
	Emoji   string   `json:"emoji"`
	UserIDs []string `json:"user_ids"`
}

// Message is one raw message from the platform. System marks non-user events
// such as thread creation.
type Message struct {
	ID          string     `json:"id"`
	ChannelName string     `json:"channel_name"`
	Content     string     `json:"content"`
	AuthorID    string     `json:"author_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Reactions   []Reaction `json:"reactions,omitempty"`
	System      bool       `json:"system"`
}

// Member is one guild member from the roster.
type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Bot         bool   `json:"bot"`
}

// HistorySource yields per-channel message history, oldest first, with
// reaction user sets fully resolved.
type HistorySource interface {
	Channels(ctx context.Context) ([]Channel, error)
	Messages(ctx context.Context, channel Channel) ([]Message, error)
}

// RosterSource yields the guild members eligible to be participants.
type RosterSource interface {
	Members(ctx context.Context) ([]Member, error)
}
