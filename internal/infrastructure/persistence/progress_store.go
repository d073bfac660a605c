package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mandarin-learning-cli/internal/domain/learning"
)

// ProgressStore persists tracker snapshots as a JSON file in the user's
// data directory. A missing or malformed file loads as a fresh empty
// snapshot: corrupt history is treated as no history, never as an error.
type ProgressStore struct {
	path string
}

// NewProgressStore creates a progress store backed by the given file path
func NewProgressStore(path string) *ProgressStore {
	return &ProgressStore{path: path}
}

// Load reads the snapshot from disk. Unknown fields in the file are
// ignored and missing fields keep their zero values, so older and newer
// progress files both load cleanly.
func (s *ProgressStore) Load() (*learning.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return emptySnapshot(), nil
	}

	var snap learning.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return emptySnapshot(), nil
	}
	if snap.Cards == nil {
		snap.Cards = make(map[string]*learning.CardState)
	}
	return &snap, nil
}

// Save rewrites the whole snapshot. Write failures surface to the caller:
// silently dropping a review would break the durability the tracker
// promises.
func (s *ProgressStore) Save(snap *learning.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write progress file: %w", err)
	}
	return nil
}

func emptySnapshot() *learning.Snapshot {
	return &learning.Snapshot{Cards: make(map[string]*learning.CardState)}
}
