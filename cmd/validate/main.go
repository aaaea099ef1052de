package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/scenario-player/internal/config"
	"github.com/jwebster45206/scenario-player/internal/logger"
	istorage "github.com/jwebster45206/scenario-player/internal/storage"
	"github.com/jwebster45206/scenario-player/pkg/book"
	"github.com/jwebster45206/scenario-player/pkg/interpreter"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <chapter.json> <book%s>...\n", os.Args[0], istorage.BookExt)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg)

	validator := &BookValidator{logger: log}
	chapter, err := validator.loadChapter(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[2:] {
		if err := validator.validateFile(chapter, filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			logger.WithError(log, err).Debug("Book failed validation", "file", filename)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}

	fmt.Println("All books are valid!")
}

type BookValidator struct {
	logger *slog.Logger
	errors []string
}

func (v *BookValidator) loadChapter(filename string) (*book.Config, error) {
	fmt.Printf("Loading chapter %s...\n", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("file %s contains invalid JSON", filename)
	}

	cfg := book.ParseChapter(data)
	if cfg.IsEmpty() {
		return nil, fmt.Errorf("chapter %s has no character, layer, param, sound or texture tables", filename)
	}
	return &cfg, nil
}

func (v *BookValidator) validateFile(chapter *book.Config, filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, istorage.BookExt) {
		return fmt.Errorf("book file must have %s extension: %s", istorage.BookExt, baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	nodes := book.ParseBook(data)
	if len(nodes) == 0 {
		return fmt.Errorf("file %s has no playable nodes", filename)
	}
	if v.logger != nil {
		logger.WithBook(v.logger, baseName).Debug("Linting book", "nodes", len(nodes))
	}

	for _, issue := range interpreter.Lint(chapter, nodes) {
		v.addError(issue.String())
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *BookValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}
