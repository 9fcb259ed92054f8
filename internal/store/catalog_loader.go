// Package store handles the JSON file interfaces of the engine: the quest and
// bounty catalog documents on the way in, the scoreboard snapshot on the way
// out.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/soltree-games/scorekeeper/internal/engine/catalog"
	prommetrics "github.com/soltree-games/scorekeeper/internal/metrics"
	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// CatalogLoader loads quest and bounty definition files into a catalog.
// File-level failures are returned so callers can log them, but they leave
// the catalog partial rather than halting anything; per-item failures are
// logged and skipped.
type CatalogLoader struct {
	log *logger.Logger
}

// NewCatalogLoader creates a catalog loader.
func NewCatalogLoader(log *logger.Logger) *CatalogLoader {
	return &CatalogLoader{log: log}
}

// LoadQuests reads a JSON array of quest definitions into the catalog and
// returns how many were accepted.
func (l *CatalogLoader) LoadQuests(path string, cat *catalog.Catalog) (int, error) {
	items, err := l.readArray(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read quest catalog: %w", err)
	}

	added := 0
	for _, item := range items {
		var quest models.QuestDefinition
		if err := json.Unmarshal(item, &quest); err != nil {
			prommetrics.CatalogRejectionsTotal.WithLabelValues("quest").Inc()
			l.log.Warn().Err(err).Msg("Skipping malformed quest definition")
			continue
		}
		if cat.AddQuest(&quest) {
			added++
		} else {
			prommetrics.CatalogRejectionsTotal.WithLabelValues("quest").Inc()
		}
	}

	l.log.Info().Int("added", added).Int("total", len(items)).Str("path", path).Msg("Loaded quest catalog")
	return added, nil
}

// LoadBounties reads a JSON array of bounty definitions into the catalog and
// returns how many were accepted.
func (l *CatalogLoader) LoadBounties(path string, cat *catalog.Catalog) (int, error) {
	items, err := l.readArray(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read bounty catalog: %w", err)
	}

	added := 0
	for _, item := range items {
		var bounty models.BountyDefinition
		if err := json.Unmarshal(item, &bounty); err != nil {
			prommetrics.CatalogRejectionsTotal.WithLabelValues("bounty").Inc()
			l.log.Warn().Err(err).Msg("Skipping malformed bounty definition")
			continue
		}
		if cat.AddBounty(&bounty) {
			added++
		} else {
			prommetrics.CatalogRejectionsTotal.WithLabelValues("bounty").Inc()
		}
	}

	l.log.Info().Int("added", added).Int("total", len(items)).Str("path", path).Msg("Loaded bounty catalog")
	return added, nil
}

// readArray reads a file containing one JSON array and splits it into raw items.
func (l *CatalogLoader) readArray(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("not a JSON array: %w", err)
	}
	return items, nil
}
