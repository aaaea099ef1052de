package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jwebster45206/scenario-player/pkg/state"
)

func setupTestGdata(t *testing.T) *GdataStorage {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	appName := fmt.Sprintf("scenario_player_test_%d", time.Now().UnixNano())
	g, err := NewGdataStorage(appName, setupLibrary(t), testLogger())
	if err != nil {
		t.Skipf("Cannot open app data store: %v", err)
	}
	return g
}

func TestGdataStorage_SaveLoadDelete(t *testing.T) {
	g := setupTestGdata(t)
	ctx := context.Background()

	snap := &state.Snapshot{Slot: "slot_1", Book: "prologue", Offset: 1}
	if err := g.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}
	// Saving twice must not duplicate the index entry.
	if err := g.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	loaded, err := g.LoadSnapshot(ctx, "slot_1")
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if loaded == nil || loaded.Book != "prologue" || loaded.Offset != 1 {
		t.Fatalf("Unexpected snapshot %+v", loaded)
	}

	list, err := g.ListSnapshots(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("Expected one listed snapshot, got %v, %v", list, err)
	}

	if err := g.DeleteSnapshot(ctx, "slot_1"); err != nil {
		t.Fatalf("Failed to delete snapshot: %v", err)
	}
	if g.manager.ObjectPropExists(gdataSlotPrefix+"slot_1", gdataSnapshotProp) {
		t.Errorf("Expected slot data to be removed from disk")
	}
	loaded, err = g.LoadSnapshot(ctx, "slot_1")
	if err != nil || loaded != nil {
		t.Errorf("Expected deleted slot to be empty, got %v, %v", loaded, err)
	}
	list, err = g.ListSnapshots(ctx)
	if err != nil || len(list) != 0 {
		t.Errorf("Expected no snapshots after delete, got %v, %v", list, err)
	}
}

func TestGdataStorage_EmptySlot(t *testing.T) {
	g := setupTestGdata(t)
	loaded, err := g.LoadSnapshot(context.Background(), "never")
	if err != nil || loaded != nil {
		t.Errorf("Expected (nil, nil), got %v, %v", loaded, err)
	}
	if err := g.DeleteSnapshot(context.Background(), "never"); err != nil {
		t.Errorf("Deleting an empty slot should succeed: %v", err)
	}
}

func TestGdataStorage_RejectsUnsafeSlot(t *testing.T) {
	g := setupTestGdata(t)
	err := g.SaveSnapshot(context.Background(), &state.Snapshot{Slot: "../x", Book: "b"})
	if err == nil {
		t.Error("Expected error for unsafe slot name")
	}
}
