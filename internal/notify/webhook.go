// Package notify provides webhook client for posting scoring run summaries to chat.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/soltree-games/scorekeeper/internal/config"
	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// Client posts scoring run summaries to a chat webhook.
type Client struct {
	webhookURL string
	channel    string
	username   string
	enabled    bool
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a new webhook notifier.
func NewClient(cfg *config.NotifyConfig, log *logger.Logger) *Client {
	return &Client{
		webhookURL: cfg.WebhookURL,
		channel:    cfg.Channel,
		username:   cfg.Username,
		enabled:    cfg.Enabled,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// Message represents a webhook message payload.
type Message struct {
	Channel  string `json:"channel,omitempty"`
	Username string `json:"username,omitempty"`
	Text     string `json:"text,omitempty"`
}

// SendMessage sends a message to the webhook.
func (c *Client) SendMessage(msg *Message) error {
	if !c.enabled {
		c.log.Debug().Msg("Notifications are disabled, skipping message")
		return nil
	}

	if msg.Channel == "" {
		msg.Channel = c.channel
	}
	if msg.Username == "" {
		msg.Username = c.username
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", c.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	c.log.Debug().
		Str("channel", msg.Channel).
		Msg("Sent message to webhook")

	return nil
}

// SendRunSummary posts the standings after a scoring run: participant and
// day counts plus the current top three by experience.
func (c *Client) SendRunSummary(snapshot *models.Snapshot) error {
	if !c.enabled {
		return nil
	}

	text := fmt.Sprintf("### 🏆 Scoreboard Updated\n\n**%d** participants scored across **%d** days.\n\n",
		len(snapshot.Players), len(snapshot.ScoreHistory))

	leaders := topByEXP(snapshot.Players, 3)
	medals := []string{"🥇", "🥈", "🥉"}
	for i, player := range leaders {
		text += fmt.Sprintf("%s **%s** — %d EXP, %d cREP, %d JCE\n",
			medals[i], player.Name, player.Stats.EXP, player.Stats.REP, player.Stats.JCE)
	}

	return c.SendMessage(&Message{Text: text})
}

// topByEXP returns the highest-experience players, ties broken by name.
func topByEXP(players []*models.Player, n int) []*models.Player {
	sorted := make([]*models.Player, len(players))
	copy(sorted, players)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Stats.EXP != sorted[j].Stats.EXP {
			return sorted[i].Stats.EXP > sorted[j].Stats.EXP
		}
		return sorted[i].Name < sorted[j].Name
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
