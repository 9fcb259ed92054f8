package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/soltree-games/scorekeeper/internal/config"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// Message type codes from the platform wire format.
const (
	wireMessageDefault       = 0
	wireMessageThreadCreated = 18
)

// Client is a JSON-over-HTTP client for the chat platform API. It implements
// HistorySource and RosterSource.
type Client struct {
	baseURL      string
	token        string
	guildID      string
	messageLimit int
	httpClient   *http.Client
	log          *logger.Logger
}

// NewClient creates a platform client.
func NewClient(cfg *config.PlatformConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:      cfg.APIURL,
		token:        cfg.Token,
		guildID:      cfg.GuildID,
		messageLimit: cfg.MessageLimit,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

type wireChannel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

type wireUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot"`
}

type wireEmoji struct {
	Name string `json:"name"`
}

type wireReaction struct {
	Emoji wireEmoji `json:"emoji"`
	Count int       `json:"count"`
}

type wireMessage struct {
	ID        string         `json:"id"`
	Type      int            `json:"type"`
	Content   string         `json:"content"`
	Author    wireUser       `json:"author"`
	Timestamp time.Time      `json:"timestamp"`
	Reactions []wireReaction `json:"reactions,omitempty"`
}

type wireMember struct {
	User wireUser `json:"user"`
	Nick string   `json:"nick,omitempty"`
}

// Channels lists the guild's text channels in source order.
func (c *Client) Channels(ctx context.Context) ([]Channel, error) {
	var wire []wireChannel
	path := fmt.Sprintf("/guilds/%s/channels", c.guildID)
	if err := c.get(ctx, path, &wire); err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}

	channels := make([]Channel, 0, len(wire))
	for _, ch := range wire {
		if ch.Type != 0 { // text channels only
			continue
		}
		channels = append(channels, Channel{ID: ch.ID, Name: ch.Name})
	}

	c.log.Debug().Int("channels", len(channels)).Msg("Listed guild channels")
	return channels, nil
}

// Messages fetches one page of channel history and resolves every reaction's
// user set. The platform returns newest first; the result is reversed to
// oldest first. Reaction resolution failures degrade to an empty user set.
func (c *Client) Messages(ctx context.Context, channel Channel) ([]Message, error) {
	var wire []wireMessage
	path := fmt.Sprintf("/channels/%s/messages?limit=%d", channel.ID, c.messageLimit)
	if err := c.get(ctx, path, &wire); err != nil {
		return nil, fmt.Errorf("failed to fetch messages for #%s: %w", channel.Name, err)
	}

	messages := make([]Message, 0, len(wire))
	for i := len(wire) - 1; i >= 0; i-- {
		wm := wire[i]
		msg := Message{
			ID:          wm.ID,
			ChannelName: channel.Name,
			Content:     wm.Content,
			AuthorID:    wm.Author.ID,
			CreatedAt:   wm.Timestamp,
			System:      wm.Type != wireMessageDefault,
		}

		for _, wr := range wm.Reactions {
			userIDs, err := c.reactionUsers(ctx, channel.ID, wm.ID, wr.Emoji.Name)
			if err != nil {
				c.log.Warn().
					Err(err).
					Str("channel", channel.Name).
					Str("emoji", wr.Emoji.Name).
					Msg("Failed to resolve reaction users")
				continue
			}
			msg.Reactions = append(msg.Reactions, Reaction{Emoji: wr.Emoji.Name, UserIDs: userIDs})
		}

		messages = append(messages, msg)
	}

	c.log.Debug().
		Str("channel", channel.Name).
		Int("messages", len(messages)).
		Msg("Fetched channel history")

	return messages, nil
}

// Members lists the guild's human members.
func (c *Client) Members(ctx context.Context) ([]Member, error) {
	var wire []wireMember
	path := fmt.Sprintf("/guilds/%s/members?limit=1000", c.guildID)
	if err := c.get(ctx, path, &wire); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]Member, 0, len(wire))
	for _, wm := range wire {
		name := wm.Nick
		if name == "" {
			name = wm.User.Username
		}
		members = append(members, Member{
			ID:          wm.User.ID,
			DisplayName: name,
			Bot:         wm.User.Bot,
		})
	}

	return members, nil
}

// reactionUsers resolves the user IDs behind one reaction.
func (c *Client) reactionUsers(ctx context.Context, channelID, messageID, emoji string) ([]string, error) {
	var wire []wireUser
	path := fmt.Sprintf("/channels/%s/messages/%s/reactions/%s?limit=100",
		channelID, messageID, url.PathEscape(emoji))
	if err := c.get(ctx, path, &wire); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(wire))
	for _, u := range wire {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

// get performs an authenticated GET and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
