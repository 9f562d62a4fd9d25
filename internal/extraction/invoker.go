package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/braindump-api/internal/generation"
	"github.com/phrazzld/braindump-api/internal/redact"
	"golang.org/x/sync/errgroup"
)

// invokeAll sends every chunk to the generator and returns the raw tasks in
// chunk order. With concurrency above 1 the calls run in parallel, but each
// result is stored at its chunk index so ordering never depends on completion
// order. The first failure cancels the remaining calls.
func (e *Extractor) invokeAll(
	ctx context.Context,
	log *slog.Logger,
	chunks []string,
	categories []string,
) ([]RawTask, error) {
	results := make([][]RawTask, len(chunks))

	if e.concurrency <= 1 || len(chunks) == 1 {
		for i, chunk := range chunks {
			tasks, err := e.invokeChunk(ctx, log, i, chunk, categories)
			if err != nil {
				return nil, err
			}
			results[i] = tasks
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.concurrency)

		for i, chunk := range chunks {
			g.Go(func() error {
				tasks, err := e.invokeChunk(gctx, log, i, chunk, categories)
				if err != nil {
					return err
				}
				results[i] = tasks
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	total := 0
	for _, tasks := range results {
		total += len(tasks)
	}

	raw := make([]RawTask, 0, total)
	for _, tasks := range results {
		raw = append(raw, tasks...)
	}

	return raw, nil
}

// invokeChunk issues one generation request and parses its payload.
func (e *Extractor) invokeChunk(
	ctx context.Context,
	log *slog.Logger,
	index int,
	chunk string,
	categories []string,
) ([]RawTask, error) {
	userMessage, err := renderPrompt(e.prompt, categories, chunk)
	if err != nil {
		return nil, newError(index, err)
	}

	req := generation.Request{
		SystemInstruction: SystemInstruction,
		UserMessage:       userMessage,
		Schema:            TaskSchema(),
	}

	start := time.Now()
	log.DebugContext(ctx, "Invoking generator for chunk",
		"chunk_index", index,
		"chunk_length", len(chunk))

	resp, err := e.generator.Generate(ctx, req)
	if err != nil {
		log.ErrorContext(ctx, "Generator call failed",
			"chunk_index", index,
			"error", redact.Error(err))
		return nil, newError(index, err)
	}

	tasks, err := parsePayload(resp)
	if err != nil {
		if e.skipMalformed {
			log.WarnContext(ctx, "Skipping chunk with malformed model response",
				"chunk_index", index,
				"error", redact.Error(err))
			return nil, nil
		}
		return nil, newError(index, err)
	}

	log.DebugContext(ctx, "Chunk processed",
		"chunk_index", index,
		"raw_task_count", len(tasks),
		"duration_ms", time.Since(start).Milliseconds())

	return tasks, nil
}

// parsePayload decodes the generator's text into raw tasks.
func parsePayload(resp *generation.Response) ([]RawTask, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", ErrMalformedResponse)
	}

	var payload taskPayload
	if err := json.Unmarshal([]byte(resp.Text), &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", ErrMalformedResponse, err)
	}

	if payload.Tasks == nil {
		return nil, fmt.Errorf("%w: missing tasks array", ErrMalformedResponse)
	}

	return *payload.Tasks, nil
}
