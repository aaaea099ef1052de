package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/scenario-player/internal/config"
	"github.com/jwebster45206/scenario-player/internal/logger"
	istorage "github.com/jwebster45206/scenario-player/internal/storage"
	"github.com/jwebster45206/scenario-player/pkg/book"
	"github.com/jwebster45206/scenario-player/pkg/storage"
)

const appName = "scenario_player"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, logFile, err := logger.SetupFile(cfg, cfg.PlayerLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()

	settings, err := config.LoadSettings(cfg.SettingsFile)
	if err != nil {
		log.Warn("Using default player settings", "file", cfg.SettingsFile, "error", err)
		settings = config.DefaultSettings()
	}

	store, err := newStorage(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open save storage: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	ctx := context.Background()
	chapter, err := store.GetChapter(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load chapter: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewPlayerUI(store, chapter, settings, cfg.SettingsFile, log),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

// newStorage builds the save backend named by SAVE_BACKEND.
func newStorage(cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	lib := istorage.NewLibrary(cfg.DataDir, cfg.ChapterPath, log)

	switch cfg.SaveBackend {
	case config.BackendRedis:
		r, err := istorage.NewRedisStorage(cfg.RedisURL, lib, cfg.SaveTTL, log)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := r.WaitForConnection(ctx, 5, time.Second); err != nil {
			_ = r.Close()
			return nil, err
		}
		return r, nil
	case config.BackendMemory:
		return newMemoryStorage(lib), nil
	default:
		return istorage.NewGdataStorage(appName, lib, log)
	}
}

// memoryStorage keeps save slots in memory for the life of the process and
// reads books from the library.
type memoryStorage struct {
	*storage.MockStorage
	lib *istorage.Library
}

func newMemoryStorage(lib *istorage.Library) *memoryStorage {
	return &memoryStorage{MockStorage: storage.NewMockStorage(), lib: lib}
}

func (m *memoryStorage) ListBooks(ctx context.Context) ([]string, error) {
	return m.lib.ListBooks(ctx)
}

func (m *memoryStorage) GetBook(ctx context.Context, id string) ([]book.Node, error) {
	return m.lib.GetBook(ctx, id)
}

func (m *memoryStorage) GetChapter(ctx context.Context) (*book.Config, error) {
	return m.lib.GetChapter(ctx)
}
