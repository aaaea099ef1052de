package storage

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jwebster45206/scenario-player/pkg/book"
	"github.com/jwebster45206/scenario-player/pkg/storage"
)

// BookExt is the suffix of exported book documents.
const BookExt = ".book.json"

// Library reads books and the chapter config from the data directory. The
// save backends embed it.
type Library struct {
	dataDir     string
	chapterPath string
	logger      *slog.Logger
}

// NewLibrary creates a library rooted at dataDir. chapterPath is relative to
// dataDir unless absolute.
func NewLibrary(dataDir, chapterPath string, logger *slog.Logger) *Library {
	if dataDir == "" {
		dataDir = "./assets"
	}
	if chapterPath != "" && !filepath.IsAbs(chapterPath) {
		chapterPath = filepath.Join(dataDir, chapterPath)
	}
	return &Library{
		dataDir:     dataDir,
		chapterPath: chapterPath,
		logger:      logger,
	}
}

// ListBooks returns the ids of every book under the data directory, sorted.
// An id is the path relative to the data directory without BookExt.
func (l *Library) ListBooks(ctx context.Context) ([]string, error) {
	var ids []string
	err := filepath.WalkDir(l.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == l.dataDir {
				return err
			}
			l.logger.Warn("Skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), BookExt) {
			return nil
		}
		rel, err := filepath.Rel(l.dataDir, path)
		if err != nil {
			return nil
		}
		ids = append(ids, filepath.ToSlash(strings.TrimSuffix(rel, BookExt)))
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		l.logger.Error("Failed to walk data directory", "dir", l.dataDir, "error", err)
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}

// GetBook loads a book by id. A document that does not parse yields an
// empty book, not an error.
func (l *Library) GetBook(ctx context.Context, id string) ([]book.Node, error) {
	rel := filepath.FromSlash(id) + BookExt
	if id == "" || !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%w: %s", storage.ErrBookNotFound, id)
	}
	path := filepath.Join(l.dataDir, rel)
	l.logger.Debug("Loading book", "id", id, "full_path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrBookNotFound, id)
		}
		return nil, fmt.Errorf("failed to read book file: %w", err)
	}

	nodes := book.ParseBook(data)
	if len(nodes) == 0 {
		l.logger.Warn("Book has no nodes", "id", id, "path", path)
	}
	return nodes, nil
}

// GetChapter loads the chapter config. A missing chapter file gives an empty
// config so books still play with nothing resolvable.
func (l *Library) GetChapter(ctx context.Context) (*book.Config, error) {
	if l.chapterPath == "" {
		cfg := book.NewConfig()
		return &cfg, nil
	}

	data, err := os.ReadFile(l.chapterPath)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("Chapter file not found", "path", l.chapterPath)
			cfg := book.NewConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read chapter file: %w", err)
	}

	cfg := book.ParseChapter(data)
	if cfg.IsEmpty() {
		l.logger.Warn("Chapter has no entries", "path", l.chapterPath)
	}
	return &cfg, nil
}
