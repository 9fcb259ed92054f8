package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soltree-games/scorekeeper/internal/models"
	"github.com/soltree-games/scorekeeper/pkg/logger"
)

// FileSnapshotWriter writes the scoreboard snapshot wholesale to one JSON file.
type FileSnapshotWriter struct {
	path string
	log  *logger.Logger
}

// NewFileSnapshotWriter creates a snapshot writer for the given path.
func NewFileSnapshotWriter(path string, log *logger.Logger) *FileSnapshotWriter {
	return &FileSnapshotWriter{path: path, log: log}
}

// Write serializes the snapshot and replaces the file contents. The parent
// directory is created when missing.
func (w *FileSnapshotWriter) Write(snapshot *models.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	if err := os.WriteFile(w.path, data, 0o640); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	w.log.Info().
		Str("path", w.path).
		Int("players", len(snapshot.Players)).
		Int("days", len(snapshot.ScoreHistory)).
		Msg("Snapshot written")

	return nil
}

// ReadSnapshot loads a previously written snapshot, used by tooling and tests.
func ReadSnapshot(path string) (*models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
