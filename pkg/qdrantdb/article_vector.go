package qdrantdb

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"hauibot/repository"
)

// pointNamespace seeds the deterministic chunk point ids, so re-ingesting
// the same chunk overwrites instead of duplicating.
var pointNamespace = uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")

// ArticleIndex stores article chunks in a Qdrant collection. It tracks the
// live collection name, which can drift from the configured one when a
// rebuild could not delete the previous collection.
type ArticleIndex struct {
	client     *Client
	collection string
	logger     *zap.Logger
}

var _ repository.VectorIndex = (*ArticleIndex)(nil)

func NewArticleIndex(client *Client, collection string, logger *zap.Logger) *ArticleIndex {
	return &ArticleIndex{client: client, collection: collection, logger: logger}
}

// Collection returns the collection currently serving the index.
func (ix *ArticleIndex) Collection() string { return ix.collection }

// EnsureCollection creates the collection if it does not exist.
func (ix *ArticleIndex) EnsureCollection(ctx context.Context, dim int) error {
	exists, err := ix.client.Client.CollectionExists(ctx, ix.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}
	return ix.createCollection(ctx, ix.collection, dim)
}

func (ix *ArticleIndex) createCollection(ctx context.Context, name string, dim int) error {
	err := ix.client.Client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dim),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return nil
}

// Rebuild drops the current collection and creates a fresh one. When the old
// collection cannot be deleted, the index falls back to a numbered sibling
// collection and keeps serving from there.
func (ix *ArticleIndex) Rebuild(ctx context.Context, dim int) error {
	exists, err := ix.client.Client.CollectionExists(ctx, ix.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		if err := ix.client.Client.DeleteCollection(ctx, ix.collection); err != nil {
			fallback, ferr := ix.fallbackCollection(ctx, dim)
			if ferr != nil {
				return fmt.Errorf("failed to delete collection %s and no fallback available: %w", ix.collection, err)
			}
			ix.logger.Warn("could not delete collection, using fallback",
				zap.String("collection", ix.collection),
				zap.String("fallback", fallback),
				zap.Error(err))
			ix.collection = fallback
			return nil
		}
	}
	return ix.EnsureCollection(ctx, dim)
}

func (ix *ArticleIndex) fallbackCollection(ctx context.Context, dim int) (string, error) {
	for i := 1; i <= 10; i++ {
		name := fmt.Sprintf("%s-%d", ix.collection, i)
		exists, err := ix.client.Client.CollectionExists(ctx, name)
		if err != nil {
			return "", err
		}
		if exists {
			if err := ix.client.Client.DeleteCollection(ctx, name); err != nil {
				continue
			}
		}
		if err := ix.createCollection(ctx, name, dim); err != nil {
			return "", err
		}
		return name, nil
	}
	return "", fmt.Errorf("no usable fallback collection for %s", ix.collection)
}

// AddDocuments upserts chunks with ids derived from the chunk content, so
// identical chunks collapse to one point.
func (ix *ArticleIndex) AddDocuments(ctx context.Context, chunks []repository.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for _, chunk := range chunks {
		hash := sha256.Sum256([]byte(chunk.URL + "\x00" + chunk.Text))
		id := uuid.NewSHA1(pointNamespace, hash[:16]).String()

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(id),
			Vectors: qdrant.NewVectorsDense(chunk.Vector),
			Payload: qdrant.NewValueMap(map[string]any{
				"text":     chunk.Text,
				"url":      chunk.URL,
				"title":    chunk.Title,
				"category": chunk.Category,
			}),
		})
	}

	_, err := ix.client.Client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: ix.collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert %d points: %w", len(points), err)
	}
	return nil
}

// Search returns the limit nearest chunks, with payloads and stored vectors.
func (ix *ArticleIndex) Search(ctx context.Context, vector []float32, limit int) ([]repository.ScoredChunk, error) {
	exists, err := ix.client.Client.CollectionExists(ctx, ix.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if !exists {
		return nil, repository.ErrIndexMissing
	}

	points, err := ix.client.Client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: ix.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", ix.collection, err)
	}

	results := make([]repository.ScoredChunk, 0, len(points))
	for _, p := range points {
		chunk := repository.Chunk{}
		if payload := p.GetPayload(); payload != nil {
			chunk.Text = payload["text"].GetStringValue()
			chunk.URL = payload["url"].GetStringValue()
			chunk.Title = payload["title"].GetStringValue()
			chunk.Category = payload["category"].GetStringValue()
		}
		if v := p.GetVectors().GetVector(); v != nil {
			chunk.Vector = v.GetData()
		}
		results = append(results, repository.ScoredChunk{
			Chunk: chunk,
			Score: p.GetScore(),
		})
	}
	return results, nil
}
