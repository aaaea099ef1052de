package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jwebster45206/scenario-player/pkg/storage"
)

const testBook = `{"importGridList": [{"name": "Main", "headerRow": 0, "rows": [
	{"strings": ["Command", "Arg1", "Text"], "isCommentOut": 0},
	{"strings": ["", "Alice", "Hello"], "isCommentOut": 0},
	{"strings": ["Wait", "", ""], "isCommentOut": 0}
]}]}`

const testChapter = `{"settingList": [{"name": "cfg_character.xlsx:Character", "headerRow": 0, "rows": [
	{"strings": ["Label", "CharacterName"], "isCommentOut": 0},
	{"strings": ["alice", "Alice"], "isCommentOut": 0}
]}]}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func setupLibrary(t *testing.T) *Library {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "chapter01", "intro.book.json"), testBook)
	writeFile(t, filepath.Join(dir, "chapter01", "broken.book.json"), `{"rows": [}`)
	writeFile(t, filepath.Join(dir, "prologue.book.json"), testBook)
	writeFile(t, filepath.Join(dir, "notes.json"), `{}`)
	writeFile(t, filepath.Join(dir, "config", "config.chapter.json"), testChapter)
	return NewLibrary(dir, "config/config.chapter.json", testLogger())
}

func TestLibrary_ListBooks(t *testing.T) {
	lib := setupLibrary(t)

	ids, err := lib.ListBooks(context.Background())
	if err != nil {
		t.Fatalf("Failed to list books: %v", err)
	}
	want := []string{"chapter01/broken", "chapter01/intro", "prologue"}
	if len(ids) != len(want) {
		t.Fatalf("Expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, ids[i])
		}
	}
}

func TestLibrary_ListBooksMissingDir(t *testing.T) {
	lib := NewLibrary(filepath.Join(t.TempDir(), "missing"), "", testLogger())
	ids, err := lib.ListBooks(context.Background())
	if err != nil {
		t.Fatalf("Expected no error for missing dir, got %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no books, got %v", ids)
	}
}

func TestLibrary_GetBook(t *testing.T) {
	lib := setupLibrary(t)
	ctx := context.Background()

	nodes, err := lib.GetBook(ctx, "chapter01/intro")
	if err != nil {
		t.Fatalf("Failed to get book: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("Expected 2 nodes, got %d", len(nodes))
	}
	if nodes[0].Arg1 != "Alice" || nodes[1].Command != "Wait" {
		t.Errorf("Unexpected nodes %+v", nodes)
	}

	broken, err := lib.GetBook(ctx, "chapter01/broken")
	if err != nil {
		t.Fatalf("Malformed book should not error: %v", err)
	}
	if len(broken) != 0 {
		t.Errorf("Expected empty book, got %d nodes", len(broken))
	}

	for _, id := range []string{"missing", "../escape", ""} {
		if _, err := lib.GetBook(ctx, id); !errors.Is(err, storage.ErrBookNotFound) {
			t.Errorf("Expected ErrBookNotFound for %q, got %v", id, err)
		}
	}
}

func TestLibrary_GetChapter(t *testing.T) {
	lib := setupLibrary(t)

	cfg, err := lib.GetChapter(context.Background())
	if err != nil {
		t.Fatalf("Failed to get chapter: %v", err)
	}
	if cfg.Character["Alice"].Label != "alice" {
		t.Errorf("Expected Alice entry, got %+v", cfg.Character)
	}

	missing := NewLibrary(t.TempDir(), "nope.json", testLogger())
	cfg, err = missing.GetChapter(context.Background())
	if err != nil {
		t.Fatalf("Missing chapter should not error: %v", err)
	}
	if !cfg.IsEmpty() {
		t.Error("Expected empty chapter")
	}
}
