package chunking

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/tmc/langchaingo/textsplitter"

	"hauibot/pkg/embedding"
)

// embedBatchSize bounds how many chunks go to the embedding service per
// request.
const embedBatchSize = 32

// RecursiveCharacter splits text on a separator hierarchy and embeds the
// chunks in batches, retrying transient embedding failures with exponential
// backoff.
type RecursiveCharacter struct {
	splitter   textsplitter.RecursiveCharacter
	embed      embedding.Client
	maxRetries int
	baseDelay  time.Duration
}

func NewRecursiveCharacter(embed embedding.Client, chunkSize, chunkOverlap int) *RecursiveCharacter {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
		textsplitter.WithSeparators([]string{"\n\n", "\n", ".", "!", "?", ",", " ", ""}),
	)
	return &RecursiveCharacter{
		splitter:   splitter,
		embed:      embed,
		maxRetries: 5,
		baseDelay:  100 * time.Millisecond,
	}
}

func (c *RecursiveCharacter) ChunkText(ctx context.Context, text string) ([]ChunkOutput, error) {
	chunks, err := c.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("failed to split text: %w", err)
	}

	result := make([]ChunkOutput, 0, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		vectors, err := c.getEmbeddingsWithRetry(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("embed failed after retries: %w", err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("expected %d vectors, got %d", len(batch), len(vectors))
		}
		for i, chunk := range batch {
			result = append(result, ChunkOutput{Text: chunk, Vector: vectors[i]})
		}
	}
	return result, nil
}

func (c *RecursiveCharacter) getEmbeddingsWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		vec, err := c.embed.GetEmbeddings(ctx, texts)
		if err == nil {
			return vec, nil
		}
		lastErr = err

		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoffDelay(attempt)):
			}
		}
	}
	return nil, lastErr
}

func (c *RecursiveCharacter) backoffDelay(attempt int) time.Duration {
	// Exponential backoff with up to 25% jitter to avoid thundering herd.
	delay := float64(c.baseDelay) * math.Pow(2, float64(attempt))
	jitter := delay * 0.25 * (0.5 - (float64(time.Now().UnixNano()%1000) / 1000))
	return time.Duration(delay + jitter)
}
