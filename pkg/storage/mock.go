package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/jwebster45206/scenario-player/pkg/book"
	"github.com/jwebster45206/scenario-player/pkg/state"
)

// MockStorage is an in-memory Storage. It backs tests and the "memory"
// save backend.
type MockStorage struct {
	mu        sync.RWMutex
	snapshots map[string]*state.Snapshot
	books     map[string][]book.Node
	chapter   *book.Config
	pingError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	empty := book.NewConfig()
	return &MockStorage{
		snapshots: make(map[string]*state.Snapshot),
		books:     make(map[string][]book.Node),
		chapter:   &empty,
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveSnapshot(ctx context.Context, snap *state.Snapshot) error {
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *snap
	m.snapshots[snap.Slot] = &c
	return nil
}

func (m *MockStorage) LoadSnapshot(ctx context.Context, slot string) (*state.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, exists := m.snapshots[slot]
	if !exists {
		return nil, nil // Return nil for not found
	}
	c := *snap
	return &c, nil
}

func (m *MockStorage) DeleteSnapshot(ctx context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, slot)
	return nil
}

func (m *MockStorage) ListSnapshots(ctx context.Context) ([]*state.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*state.Snapshot, 0, len(m.snapshots))
	for _, snap := range m.snapshots {
		c := *snap
		result = append(result, &c)
	}
	SortSnapshots(result)
	return result, nil
}

func (m *MockStorage) ListBooks(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.books))
	for id := range m.books {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MockStorage) GetBook(ctx context.Context, id string) ([]book.Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	nodes, exists := m.books[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrBookNotFound, id)
	}
	return slices.Clone(nodes), nil
}

func (m *MockStorage) GetChapter(ctx context.Context) (*book.Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.chapter, nil
}

// AddBook adds a book to the mock storage (for testing)
func (m *MockStorage) AddBook(id string, nodes []book.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.books[id] = nodes
}

// SetChapter replaces the chapter config (for testing)
func (m *MockStorage) SetChapter(cfg *book.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chapter = cfg
}

// SortSnapshots orders snapshots newest first, then by slot.
func SortSnapshots(snaps []*state.Snapshot) {
	sort.SliceStable(snaps, func(i, j int) bool {
		if !snaps[i].SavedAt.Equal(snaps[j].SavedAt) {
			return snaps[i].SavedAt.After(snaps[j].SavedAt)
		}
		return snaps[i].Slot < snaps[j].Slot
	})
}
