package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"

	"github.com/jwebster45206/scenario-player/pkg/state"
	"github.com/jwebster45206/scenario-player/pkg/storage"
)

const (
	gdataSlotPrefix    = "slot_"
	gdataSnapshotProp  = "snapshot"
	gdataIndexObject   = "slots"
	gdataIndexProperty = "index"
)

// GdataStorage keeps save slots in the per-user application data directory
// and reads books from the filesystem library. Each slot is its own object;
// a separate index object lists the slots in use.
type GdataStorage struct {
	*Library
	manager *gdata.Manager
	logger  *slog.Logger
	mu      sync.Mutex // guards the slot index
}

// Ensure GdataStorage implements Storage interface
var _ storage.Storage = (*GdataStorage)(nil)

// NewGdataStorage opens the application data store for appName.
func NewGdataStorage(appName string, lib *Library, logger *slog.Logger) (*GdataStorage, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open app data: %w", err)
	}
	return &GdataStorage{
		Library: lib,
		manager: m,
		logger:  logger,
	}, nil
}

func (g *GdataStorage) Ping(ctx context.Context) error {
	return nil
}

func (g *GdataStorage) Close() error {
	return nil
}

// validSlot limits slot names to characters that are safe as file names.
func validSlot(slot string) error {
	if slot == "" {
		return errors.New("slot name is required")
	}
	for _, r := range slot {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return fmt.Errorf("invalid slot name %q", slot)
		}
	}
	return nil
}

func (g *GdataStorage) SaveSnapshot(ctx context.Context, snap *state.Snapshot) error {
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	if err := validSlot(snap.Slot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now()
	}

	data, err := snap.Marshal()
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.manager.SaveObjectProp(gdataSlotPrefix+snap.Slot, gdataSnapshotProp, data); err != nil {
		g.logger.Error("Failed to save snapshot", "slot", snap.Slot, "error", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	index, err := g.loadIndex()
	if err != nil {
		return err
	}
	if !slices.Contains(index, snap.Slot) {
		index = append(index, snap.Slot)
		return g.saveIndex(index)
	}
	return nil
}

func (g *GdataStorage) LoadSnapshot(ctx context.Context, slot string) (*state.Snapshot, error) {
	if err := validSlot(slot); err != nil {
		return nil, nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loadSnapshot(slot)
}

func (g *GdataStorage) loadSnapshot(slot string) (*state.Snapshot, error) {
	object := gdataSlotPrefix + slot
	if !g.manager.ObjectPropExists(object, gdataSnapshotProp) {
		return nil, nil // Return nil for not found
	}
	data, err := g.manager.LoadObjectProp(object, gdataSnapshotProp)
	if err != nil {
		g.logger.Error("Failed to load snapshot", "slot", slot, "error", err)
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return state.UnmarshalSnapshot(data)
}

// DeleteSnapshot removes the slot object and drops it from the index.
func (g *GdataStorage) DeleteSnapshot(ctx context.Context, slot string) error {
	if err := validSlot(slot); err != nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.manager.DeleteObject(gdataSlotPrefix + slot); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	index, err := g.loadIndex()
	if err != nil {
		return err
	}
	if i := slices.Index(index, slot); i >= 0 {
		return g.saveIndex(slices.Delete(index, i, i+1))
	}
	return nil
}

func (g *GdataStorage) ListSnapshots(ctx context.Context) ([]*state.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	index, err := g.loadIndex()
	if err != nil {
		return nil, err
	}
	snaps := make([]*state.Snapshot, 0, len(index))
	for _, slot := range index {
		snap, err := g.loadSnapshot(slot)
		if err != nil {
			g.logger.Warn("Skipping unreadable save slot", "slot", slot, "error", err)
			continue
		}
		if snap != nil {
			snaps = append(snaps, snap)
		}
	}
	storage.SortSnapshots(snaps)
	return snaps, nil
}

func (g *GdataStorage) loadIndex() ([]string, error) {
	if !g.manager.ObjectPropExists(gdataIndexObject, gdataIndexProperty) {
		return []string{}, nil
	}
	data, err := g.manager.LoadObjectProp(gdataIndexObject, gdataIndexProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot index: %w", err)
	}
	var index []string
	if len(data) > 0 {
		if err := json.Unmarshal(data, &index); err != nil {
			return nil, fmt.Errorf("failed to unmarshal slot index: %w", err)
		}
	}
	return index, nil
}

func (g *GdataStorage) saveIndex(index []string) error {
	data, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal slot index: %w", err)
	}
	if err := g.manager.SaveObjectProp(gdataIndexObject, gdataIndexProperty, data); err != nil {
		return fmt.Errorf("failed to save slot index: %w", err)
	}
	return nil
}
