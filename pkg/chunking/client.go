package chunking

import "context"

// ChunkOutput is one text chunk with its embedding vector.
type ChunkOutput struct {
	Text   string    `json:"text"`
	Vector []float32 `json:"vector"`
}

// Client splits a document into chunks and embeds each one.
type Client interface {
	ChunkText(ctx context.Context, text string) ([]ChunkOutput, error)
}
