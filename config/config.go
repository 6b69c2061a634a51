package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config carries every runtime setting, populated from environment variables
// with the HAUIBOT_ prefix. A .env file in the working directory is honored.
type Config struct {
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Crawl target and file locations.
	BaseURL    string `envconfig:"BASE_URL" default:"https://sict.haui.edu.vn"`
	StartDate  string `envconfig:"START_DATE" default:"2025-09-01"`
	CorpusPath string `envconfig:"CORPUS_PATH" default:"data/sict_haui_data.json"`
	StatePath  string `envconfig:"STATE_PATH" default:"data/crawler_state.json"`
	// Optional YAML file overriding the built-in site structure.
	SitePath string `envconfig:"SITE_PATH"`

	// Request settings.
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	RequestDelay   time.Duration `envconfig:"REQUEST_DELAY" default:"500ms"`
	MaxRetries     int           `envconfig:"MAX_RETRIES" default:"3"`
	RetryDelay     time.Duration `envconfig:"RETRY_DELAY" default:"2s"`
	UserAgent      string        `envconfig:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`

	// Pagination settings.
	MaxPagesPerCategory     int `envconfig:"MAX_PAGES_PER_CATEGORY" default:"50"`
	ConsecutiveOldThreshold int `envconfig:"CONSECUTIVE_OLD_THRESHOLD" default:"3"`

	// Pages with less extracted text than this are treated as extraction
	// failures and not stored.
	MinContentLength int `envconfig:"MIN_CONTENT_LENGTH" default:"100"`

	// Parallel settings.
	MaxWorkers int `envconfig:"MAX_WORKERS" default:"3"`

	// Retrieval settings.
	ChunkSize    int `envconfig:"CHUNK_SIZE" default:"1000"`
	ChunkOverlap int `envconfig:"CHUNK_OVERLAP" default:"200"`
	RetrieverK   int `envconfig:"RETRIEVER_K" default:"8"`

	// Embedding provider: "tei" (local text-embeddings-inference service)
	// or "openai". The dimensionality must match the provider that built
	// the index; mixing providers across ingest/query is a config error.
	EmbeddingProvider    string `envconfig:"EMBEDDING_PROVIDER" default:"tei"`
	TEIURL               string `envconfig:"TEI_URL" default:"http://localhost:8081"`
	OpenAIEmbeddingModel string `envconfig:"OPENAI_EMBEDDING_MODEL" default:"text-embedding-ada-002"`

	LLMModel string `envconfig:"LLM_MODEL" default:"gpt-3.5-turbo"`

	QdrantHost string `envconfig:"QDRANT_HOST" default:"localhost"`
	QdrantPort int    `envconfig:"QDRANT_PORT" default:"6334"`
	Collection string `envconfig:"QDRANT_COLLECTION" default:"haui_articles"`
}

// Load reads configuration from the environment, after loading .env if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("hauibot", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if _, err := cfg.StartDateTime(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// StartDateTime parses the crawl cutoff date.
func (c *Config) StartDateTime() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: %w", c.StartDate, err)
	}
	return t, nil
}
