package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"hauibot/pkg/chunking"
	"hauibot/pkg/embedding"
	"hauibot/repository"
)

// ErrNotInitialized is returned when retrieval runs before any ingestion has
// built the vector index.
var ErrNotInitialized = errors.New("vector index not initialized, run ingestion first")

// contextSeparator joins retrieved chunks into the prompt context.
const contextSeparator = "\n\n---\n\n"

// Source is one cited article backing an answer.
type Source struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// Engine ingests the crawled corpus into the vector index and serves
// similarity queries over it.
type Engine struct {
	corpusPath string
	chunker    chunking.Client
	embedder   embedding.Client
	index      repository.VectorIndex
	logger     *zap.Logger
}

func NewEngine(corpusPath string, chunker chunking.Client, embedder embedding.Client, index repository.VectorIndex, logger *zap.Logger) *Engine {
	return &Engine{
		corpusPath: corpusPath,
		chunker:    chunker,
		embedder:   embedder,
		index:      index,
		logger:     logger,
	}
}

// Ingest rebuilds the vector index from the corpus file and returns the
// number of chunks stored. The index is always rebuilt from scratch; a
// partial refresh would leave deleted articles behind.
func (e *Engine) Ingest(ctx context.Context) (int, error) {
	items, err := loadCorpus(e.corpusPath)
	if err != nil {
		return 0, err
	}
	e.logger.Info("corpus loaded", zap.Int("documents", len(items)))

	var chunks []repository.Chunk
	for _, item := range items {
		doc := fmt.Sprintf("Tiêu đề: %s\n\n%s", item.Title, item.Content)
		outs, err := e.chunker.ChunkText(ctx, doc)
		if err != nil {
			return 0, fmt.Errorf("failed to chunk %s: %w", item.URL, err)
		}
		category := CategoryFromURL(item.URL)
		for _, out := range outs {
			chunks = append(chunks, repository.Chunk{
				Text:     out.Text,
				URL:      item.URL,
				Title:    item.Title,
				Category: category,
				Vector:   out.Vector,
			})
		}
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("corpus %s produced no chunks", e.corpusPath)
	}

	dim := len(chunks[0].Vector)
	if err := e.index.Rebuild(ctx, dim); err != nil {
		return 0, fmt.Errorf("failed to rebuild index: %w", err)
	}
	if err := e.index.AddDocuments(ctx, chunks); err != nil {
		return 0, fmt.Errorf("failed to store chunks: %w", err)
	}

	e.logger.Info("ingestion complete",
		zap.Int("documents", len(items)),
		zap.Int("chunks", len(chunks)),
		zap.Int("dim", dim))
	return len(chunks), nil
}

// Retrieve embeds the query, fetches 2k candidates from the index and
// re-ranks them with maximal marginal relevance down to k chunks.
func (e *Engine) Retrieve(ctx context.Context, query string, k int) ([]repository.ScoredChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	vecs, err := e.embedder.GetEmbeddings(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}

	hits, err := e.index.Search(ctx, vecs[0], 2*k)
	if err != nil {
		if errors.Is(err, repository.ErrIndexMissing) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return maximalMarginalRelevance(vecs[0], hits, k), nil
}

// RetrieveWithSources retrieves k chunks and returns them joined into one
// context string together with the deduplicated source list.
func (e *Engine) RetrieveWithSources(ctx context.Context, query string, k int) (string, []Source, error) {
	hits, err := e.Retrieve(ctx, query, k)
	if err != nil {
		return "", nil, err
	}
	return JoinContext(chunkTexts(hits)), CollectSources(hits), nil
}

// CategoryFromURL labels a source by its URL path.
func CategoryFromURL(url string) string {
	switch {
	case strings.Contains(url, "/tin-tuc"):
		return "Tin tức"
	case strings.Contains(url, "/su-kien"):
		return "Sự kiện"
	case strings.Contains(url, "/tuyen-sinh"):
		return "Tuyển sinh"
	case strings.Contains(url, "/nganh-dao-tao"):
		return "Ngành đào tạo"
	}
	return "Khác"
}

// JoinContext joins chunk texts into the prompt context block.
func JoinContext(texts []string) string {
	return strings.Join(texts, contextSeparator)
}

// CollectSources dedupes hits by URL, first occurrence wins, and fills
// Vietnamese placeholders for missing fields.
func CollectSources(hits []repository.ScoredChunk) []Source {
	seen := make(map[string]struct{}, len(hits))
	sources := make([]Source, 0, len(hits))
	for _, h := range hits {
		if h.URL == "" {
			continue
		}
		if _, dup := seen[h.URL]; dup {
			continue
		}
		seen[h.URL] = struct{}{}

		title := h.Title
		if title == "" {
			title = "Không có tiêu đề"
		}
		category := h.Category
		if category == "" {
			category = "Khác"
		}
		sources = append(sources, Source{Title: title, URL: h.URL, Category: category})
	}
	return sources
}

func chunkTexts(hits []repository.ScoredChunk) []string {
	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Text
	}
	return texts
}
