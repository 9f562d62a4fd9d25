// Package main implements a command that converts a brain dump into tasks
// using the configured model provider and prints them as JSON.
//
// Usage:
//
//	extract [file]
//
// The brain dump is read from file, or from stdin when no file is given.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/braindump-api/internal/config"
	"github.com/phrazzld/braindump-api/internal/domain"
	"github.com/phrazzld/braindump-api/internal/extraction"
	"github.com/phrazzld/braindump-api/internal/generation"
	"github.com/phrazzld/braindump-api/internal/platform/llm"
	"github.com/phrazzld/braindump-api/internal/platform/logger"
)

type output struct {
	Tasks []domain.Task `json:"tasks"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, nil); err != nil {
		fmt.Fprintf(os.Stderr, "extract: %v\n", err)
		os.Exit(1)
	}
}

// run executes the command. A nil generator selects the configured provider.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, generator generation.Generator) error {
	if len(args) > 1 {
		return errors.New("usage: extract [file]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logs go to stderr so stdout stays valid JSON.
	log := logger.New(os.Stderr, cfg.Server.LogLevel)

	text, err := readInput(args, stdin)
	if err != nil {
		return err
	}

	if generator == nil {
		generator, err = llm.NewGenerator(ctx, log, cfg.LLM)
		if err != nil {
			return err
		}
	}

	tasks, err := extractTasks(ctx, generator, log, cfg, text)
	if err != nil {
		return err
	}

	return writeTasks(stdout, tasks)
}

func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read brain dump: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read brain dump from stdin: %w", err)
	}
	return string(data), nil
}

func extractTasks(
	ctx context.Context,
	generator generation.Generator,
	log *slog.Logger,
	cfg *config.Config,
	text string,
) ([]domain.Task, error) {
	extractor, err := extraction.NewFromConfig(generator, log, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.LLM.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.LLM.RequestTimeout)
		defer cancel()
	}

	return extractor.Extract(ctx, text, cfg.Extraction.Categories)
}

func writeTasks(w io.Writer, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output{Tasks: tasks})
}
