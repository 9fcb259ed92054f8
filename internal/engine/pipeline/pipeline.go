// Package pipeline orchestrates one scoring run: roster sync, per-channel
// classification, ledger aggregation, and snapshot serialization.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/soltree-games/scorekeeper/internal/config"
	"github.com/soltree-games/scorekeeper/internal/engine/catalog"
	"github.com/soltree-games/scorekeeper/internal/engine/classifier"
	"github.com/soltree-games/scorekeeper/internal/engine/ledger"
	prommetrics "github.com/soltree-games/scorekeeper/internal/metrics"
	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/internal/platform"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// SnapshotWriter persists one full scoreboard snapshot.
type SnapshotWriter interface {
	Write(snapshot *models.Snapshot) error
}

// Archiver mirrors aggregated totals into the relational archive.
type Archiver interface {
	StoreSnapshot(ctx context.Context, snapshot *models.Snapshot) error
}

// Pipeline runs the scoring batch. All mutable state (ledger, streak
// trackers, reputation counters) is created fresh per run and owned by the
// run; nothing here is safe for concurrent use.
type Pipeline struct {
	history  platform.HistorySource
	roster   platform.RosterSource
	catalog  *catalog.Catalog
	game     config.GameConfig
	adminID  string
	snapshot SnapshotWriter
	archive  Archiver // optional
	log      *logger.Logger
}

// New creates a scoring pipeline. archive may be nil.
func New(
	history platform.HistorySource,
	roster platform.RosterSource,
	cat *catalog.Catalog,
	game config.GameConfig,
	adminID string,
	snapshot SnapshotWriter,
	archive Archiver,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		history:  history,
		roster:   roster,
		catalog:  cat,
		game:     game,
		adminID:  adminID,
		snapshot: snapshot,
		archive:  archive,
		log:      log,
	}
}

// Run executes one full scoring run and returns the resulting snapshot.
// Per-channel fetch failures degrade the run; only roster failures abort it,
// since scoring against an empty roster would produce a misleading snapshot.
func (p *Pipeline) Run(ctx context.Context) (*models.Snapshot, error) {
	started := time.Now()

	roster, err := p.syncRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sync roster: %w", err)
	}
	prommetrics.ParticipantsTracked.Set(float64(roster.Len()))

	startDate, err := p.game.StartDateTime()
	if err != nil {
		return nil, fmt.Errorf("invalid game start date: %w", err)
	}

	roles := classifier.ResolveRoles(p.game.GeneralChannels, p.game.GovernanceChannel, p.catalog)
	cls := classifier.New(
		p.catalog,
		roster,
		roles,
		p.adminID,
		p.game.QuestMarker,
		p.game.CheckInQuestTitle,
		startDate,
		p.log,
	)
	led := ledger.New(p.log)

	channels, err := p.history.Channels(ctx)
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to list channels, scoring nothing this run")
	}

	for _, channel := range channels {
		role := roles.Role(channel.Name)
		if role == classifier.RoleUnknown {
			p.log.Debug().Str("channel", channel.Name).Msg("Channel not configured for scoring, skipped")
			continue
		}
		p.scoreChannel(ctx, channel, role, roster, cls, led)
	}

	led.AggregateLifetimeTotals(roster)
	prommetrics.DaysScored.Set(float64(led.Days()))

	snapshot := led.Snapshot(roster)

	if err := p.snapshot.Write(snapshot); err != nil {
		prommetrics.SnapshotWriteFailuresTotal.Inc()
		p.log.Error().Err(err).Msg("Failed to write snapshot")
	}

	if p.archive != nil {
		if err := p.archive.StoreSnapshot(ctx, snapshot); err != nil {
			p.log.Error().Err(err).Msg("Failed to archive snapshot")
		}
	}

	p.log.Info().
		Int("participants", roster.Len()).
		Int("channels", len(channels)).
		Int("days", led.Days()).
		Dur("elapsed", time.Since(started)).
		Msg("Scoring run completed")

	prommetrics.RunDurationSeconds.Observe(time.Since(started).Seconds())

	return snapshot, nil
}

// syncRoster seeds the participant roster from the guild membership,
// excluding bots and the administrative account.
func (p *Pipeline) syncRoster(ctx context.Context) (*models.Roster, error) {
	members, err := p.roster.Members(ctx)
	if err != nil {
		return nil, err
	}

	roster := models.NewRoster()
	for _, member := range members {
		if member.Bot || member.ID == p.adminID {
			continue
		}
		roster.Add(models.NewPlayer(member.ID, member.DisplayName))
	}

	p.log.Info().Int("participants", roster.Len()).Msg("Roster synced")
	return roster, nil
}

// scoreChannel classifies every message of one channel, oldest first, and
// applies the resulting credits to the ledger.
func (p *Pipeline) scoreChannel(
	ctx context.Context,
	channel platform.Channel,
	role classifier.ChannelRole,
	roster *models.Roster,
	cls *classifier.Classifier,
	led *ledger.Ledger,
) {
	messages, err := p.history.Messages(ctx, channel)
	if err != nil {
		prommetrics.FetchFailuresTotal.WithLabelValues(channel.Name).Inc()
		p.log.Error().Err(err).Str("channel", channel.Name).Msg("Failed to fetch channel history, skipping channel")
		return
	}

	for i := range messages {
		msg := p.normalize(&messages[i], roster)
		credits := cls.Classify(msg)

		for _, credit := range credits {
			led.Apply(credit.Action, credit.PlayerName)
			prommetrics.ActionsCreditedTotal.WithLabelValues(string(credit.Action.Kind)).Inc()
		}

		prommetrics.MessagesProcessedTotal.WithLabelValues(channel.Name, role.String()).Inc()
	}

	p.log.Debug().
		Str("channel", channel.Name).
		Str("role", role.String()).
		Int("messages", len(messages)).
		Msg("Channel scored")
}

// normalize resolves the raw message's author against the roster.
func (p *Pipeline) normalize(raw *platform.Message, roster *models.Roster) *classifier.Message {
	author := ""
	if player := roster.ByID(raw.AuthorID); player != nil {
		author = player.Name
	}

	msg := &classifier.Message{
		Content:   raw.Content,
		Author:    author,
		AuthorID:  raw.AuthorID,
		Channel:   raw.ChannelName,
		CreatedAt: raw.CreatedAt,
		System:    raw.System,
	}
	for _, r := range raw.Reactions {
		msg.Reactions = append(msg.Reactions, classifier.Reaction{Emoji: r.Emoji, UserIDs: r.UserIDs})
	}
	return msg
}
