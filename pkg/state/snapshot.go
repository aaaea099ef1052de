package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Snapshot is a saved position in a book. Stage contents are not stored; they
// are rebuilt by replaying the book up to Offset.
type Snapshot struct {
	Slot      string            `json:"slot"`
	SessionID uuid.UUID         `json:"session_id"`
	Book      string            `json:"book"`
	Offset    int               `json:"offset"`
	Params    map[string]string `json:"params,omitempty"`
	Fast      bool              `json:"fast,omitempty"`
	Preview   string            `json:"preview,omitempty"` // Last dialogue line, for slot lists
	SavedAt   time.Time         `json:"saved_at"`
}

// Snapshot captures the session for a save slot.
func (s *Session) Snapshot(slot string) *Snapshot {
	return &Snapshot{
		Slot:      slot,
		SessionID: s.ID,
		Book:      s.Book,
		Offset:    s.Offset,
		Params:    maps.Clone(s.Params),
		Fast:      s.Fast,
		SavedAt:   time.Now(),
	}
}

// Validate checks the fields a restore depends on.
func (snap *Snapshot) Validate() error {
	if snap.Slot == "" {
		return errors.New("snapshot slot is required")
	}
	if snap.Book == "" {
		return errors.New("snapshot book is required")
	}
	if snap.Offset < 0 {
		return fmt.Errorf("snapshot offset must not be negative, got %d", snap.Offset)
	}
	return nil
}

// Marshal encodes the snapshot for storage.
func (snap *Snapshot) Marshal() ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a stored snapshot.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
