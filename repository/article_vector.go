// Package repository defines the storage-facing types and interfaces the
// retrieval engine depends on.
package repository

import (
	"context"
	"errors"
)

// ErrIndexMissing is returned when a search hits a collection that has not
// been built yet.
var ErrIndexMissing = errors.New("vector index does not exist")

// Chunk is one embedded slice of an article stored in the vector index.
type Chunk struct {
	Text     string    `json:"text"`
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Vector   []float32 `json:"vector"`
}

// ScoredChunk is a search hit with its similarity score and stored vector.
type ScoredChunk struct {
	Chunk
	Score float32 `json:"score"`
}

// VectorIndex is the article chunk store. Rebuild drops any existing
// collection so ingestion always starts from a clean index.
type VectorIndex interface {
	Rebuild(ctx context.Context, dim int) error
	AddDocuments(ctx context.Context, chunks []Chunk) error
	// Search returns the limit nearest chunks with payloads and stored
	// vectors, so callers can re-rank client-side.
	Search(ctx context.Context, vector []float32, limit int) ([]ScoredChunk, error)
}
