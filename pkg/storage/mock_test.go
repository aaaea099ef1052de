package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jwebster45206/scenario-player/pkg/book"
	"github.com/jwebster45206/scenario-player/pkg/state"
)

func TestMockStorage_SaveAndLoadSnapshot(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()

	s := state.NewSession()
	s.Activate("chapter01/intro")
	s.Offset = 12
	s.SetParam("mood", "calm")
	snap := s.Snapshot("slot1")

	if err := m.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("Failed to save snapshot: %v", err)
	}

	loaded, err := m.LoadSnapshot(ctx, "slot1")
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected non-nil snapshot")
	}
	if loaded.Offset != 12 || loaded.Book != "chapter01/intro" {
		t.Errorf("Unexpected snapshot %+v", loaded)
	}
	if loaded.Params["mood"] != "calm" {
		t.Errorf("Expected mood param, got %v", loaded.Params)
	}
}

func TestMockStorage_LoadEmptySlot(t *testing.T) {
	m := NewMockStorage()
	loaded, err := m.LoadSnapshot(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Expected no error for empty slot, got: %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil for empty slot")
	}
}

func TestMockStorage_SaveRejectsInvalid(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()
	if err := m.SaveSnapshot(ctx, nil); err == nil {
		t.Error("Expected error for nil snapshot")
	}
	if err := m.SaveSnapshot(ctx, &state.Snapshot{Book: "b"}); err == nil {
		t.Error("Expected error for snapshot without slot")
	}
}

func TestMockStorage_ListAndDeleteSnapshots(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()
	now := time.Now()

	for i, slot := range []string{"a", "b", "c"} {
		snap := &state.Snapshot{Slot: slot, Book: "b", SavedAt: now.Add(time.Duration(i) * time.Minute)}
		if err := m.SaveSnapshot(ctx, snap); err != nil {
			t.Fatalf("Failed to save snapshot: %v", err)
		}
	}
	if err := m.DeleteSnapshot(ctx, "b"); err != nil {
		t.Fatalf("Failed to delete snapshot: %v", err)
	}

	list, err := m.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("Failed to list snapshots: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 snapshots, got %d", len(list))
	}
	if list[0].Slot != "c" || list[1].Slot != "a" {
		t.Errorf("Expected newest first, got %s then %s", list[0].Slot, list[1].Slot)
	}
}

func TestMockStorage_Books(t *testing.T) {
	m := NewMockStorage()
	ctx := context.Background()
	m.AddBook("b2", []book.Node{{Text: "two"}})
	m.AddBook("b1", []book.Node{{Text: "one"}})

	ids, err := m.ListBooks(ctx)
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	if len(ids) != 2 || ids[0] != "b1" {
		t.Errorf("Expected sorted ids, got %v", ids)
	}

	nodes, err := m.GetBook(ctx, "b1")
	if err != nil || len(nodes) != 1 || nodes[0].Text != "one" {
		t.Errorf("Unexpected book: %v, %v", nodes, err)
	}

	_, err = m.GetBook(ctx, "missing")
	if !errors.Is(err, ErrBookNotFound) {
		t.Errorf("Expected ErrBookNotFound, got %v", err)
	}

	cfg, err := m.GetChapter(ctx)
	if err != nil || cfg == nil || !cfg.IsEmpty() {
		t.Errorf("Expected empty chapter, got %v, %v", cfg, err)
	}
}

func TestMockStorage_Ping(t *testing.T) {
	m := NewMockStorage()
	if err := m.Ping(context.Background()); err != nil {
		t.Fatalf("Expected ping to succeed: %v", err)
	}
	m.SetPingError(errors.New("down"))
	if err := m.Ping(context.Background()); err == nil {
		t.Error("Expected ping error")
	}
}
