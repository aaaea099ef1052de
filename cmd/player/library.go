package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/scenario-player/pkg/book"
	"github.com/jwebster45206/scenario-player/pkg/state"
	"github.com/jwebster45206/scenario-player/pkg/storage"
)

const storageTimeout = 5 * time.Second

// Save slots offered by the slot modal.
var slotNames = []string{"slot1", "slot2", "slot3", "slot4", "slot5"}

type booksLoadedMsg struct {
	books []string
	err   error
}

type bookLoadedMsg struct {
	id    string
	nodes []book.Node
	err   error
}

type slotsLoadedMsg struct {
	slots map[string]*state.Snapshot
	err   error
}

type savedMsg struct {
	slot string
	err  error
}

type slotDeletedMsg struct {
	slot string
	err  error
}

type restoreMsg struct {
	snap  *state.Snapshot
	nodes []book.Node
	err   error
}

type tickMsg time.Time

func loadBooks(store storage.Storage) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		books, err := store.ListBooks(ctx)
		return booksLoadedMsg{books, err}
	}
}

func loadBook(store storage.Storage, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		nodes, err := store.GetBook(ctx, id)
		return bookLoadedMsg{id, nodes, err}
	}
}

func loadSlots(store storage.Storage) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		snaps, err := store.ListSnapshots(ctx)
		if err != nil {
			return slotsLoadedMsg{nil, err}
		}
		slots := make(map[string]*state.Snapshot, len(snaps))
		for _, snap := range snaps {
			slots[snap.Slot] = snap
		}
		return slotsLoadedMsg{slots, nil}
	}
}

func saveSlot(store storage.Storage, snap *state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		return savedMsg{snap.Slot, store.SaveSnapshot(ctx, snap)}
	}
}

func deleteSlot(store storage.Storage, slot string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		return slotDeletedMsg{slot, store.DeleteSnapshot(ctx, slot)}
	}
}

// loadSlot reads a snapshot and the book it points into.
func loadSlot(store storage.Storage, slot string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()
		snap, err := store.LoadSnapshot(ctx, slot)
		if err != nil {
			return restoreMsg{err: err}
		}
		if snap == nil {
			return restoreMsg{err: fmt.Errorf("%s is empty", slot)}
		}
		nodes, err := store.GetBook(ctx, snap.Book)
		if err != nil {
			return restoreMsg{err: err}
		}
		return restoreMsg{snap: snap, nodes: nodes}
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
