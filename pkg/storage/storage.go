package storage

import (
	"context"
	"errors"

	"github.com/jwebster45206/scenario-player/pkg/book"
	"github.com/jwebster45206/scenario-player/pkg/state"
)

// ErrBookNotFound is returned by GetBook for an unknown book id.
var ErrBookNotFound = errors.New("book not found")

// Storage defines a unified interface for all storage operations.
// Save slots live in the backend (Redis, local app data or memory); books
// and the chapter config are read from the filesystem library.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Save slot operations. LoadSnapshot returns (nil, nil) for an empty slot.
	SaveSnapshot(ctx context.Context, snap *state.Snapshot) error
	LoadSnapshot(ctx context.Context, slot string) (*state.Snapshot, error)
	DeleteSnapshot(ctx context.Context, slot string) error
	ListSnapshots(ctx context.Context) ([]*state.Snapshot, error)

	// Library operations (filesystem-backed)
	ListBooks(ctx context.Context) ([]string, error)
	GetBook(ctx context.Context, id string) ([]book.Node, error)
	GetChapter(ctx context.Context) (*book.Config, error)
}
