package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"hauibot/api"
	"hauibot/config"
	"hauibot/crawler"
	"hauibot/pkg/chunking"
	"hauibot/pkg/embedding"
	"hauibot/pkg/llm"
	"hauibot/pkg/qdrantdb"
	"hauibot/rag"
)

// refreshService backs POST /api/data/refresh: crawl, persist the corpus,
// rebuild the vector index.
type refreshService struct {
	crawler *crawler.Crawler
	engine  *rag.Engine
}

func (s *refreshService) Refresh(ctx context.Context, reset bool) (api.RefreshReport, error) {
	if reset {
		s.crawler.ResetState()
	}
	articles, err := s.crawler.CrawlAll(ctx)
	if err != nil {
		return api.RefreshReport{}, err
	}
	if err := s.crawler.SaveResults(articles); err != nil {
		return api.RefreshReport{}, err
	}
	chunks, err := s.engine.Ingest(ctx)
	if err != nil {
		return api.RefreshReport{}, err
	}
	return api.RefreshReport{Articles: len(articles), Chunks: chunks}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	site := crawler.DefaultSiteStructure()
	if cfg.SitePath != "" {
		site, err = crawler.LoadSiteStructure(cfg.SitePath)
		if err != nil {
			logger.Fatal("failed to load site structure", zap.Error(err))
		}
	}

	startDate, err := cfg.StartDateTime()
	if err != nil {
		logger.Fatal("invalid start date", zap.Error(err))
	}

	crawlerInstance, err := crawler.New(&crawler.CrawlerConfig{
		BaseURL:                 cfg.BaseURL,
		StartDate:               startDate,
		OutputPath:              cfg.CorpusPath,
		StatePath:               cfg.StatePath,
		RequestTimeout:          cfg.RequestTimeout,
		RequestDelay:            cfg.RequestDelay,
		MaxRetries:              cfg.MaxRetries,
		RetryDelay:              cfg.RetryDelay,
		UserAgent:               cfg.UserAgent,
		MaxPagesPerCategory:     cfg.MaxPagesPerCategory,
		ConsecutiveOldThreshold: cfg.ConsecutiveOldThreshold,
		MaxWorkers:              cfg.MaxWorkers,
		MinContentLength:        cfg.MinContentLength,
	}, site, logger)
	if err != nil {
		logger.Fatal("failed to create crawler", zap.Error(err))
	}

	qdb, err := qdrantdb.NewClient(cfg.QdrantHost, cfg.QdrantPort)
	if err != nil {
		logger.Fatal("failed to connect to qdrant", zap.Error(err))
	}
	index := qdrantdb.NewArticleIndex(qdb, cfg.Collection, logger)

	var embedder embedding.Client
	switch cfg.EmbeddingProvider {
	case "tei":
		embedder = embedding.NewTEI(cfg.TEIURL)
	case "openai":
		embedder, err = embedding.NewOpenAI(cfg.OpenAIEmbeddingModel)
		if err != nil {
			logger.Fatal("failed to create openai embedder", zap.Error(err))
		}
	default:
		logger.Fatal("unknown embedding provider", zap.String("provider", cfg.EmbeddingProvider))
	}
	logger.Info("embedding provider ready", zap.String("provider", cfg.EmbeddingProvider))

	chunker := chunking.NewRecursiveCharacter(embedder, cfg.ChunkSize, cfg.ChunkOverlap)

	var generator llm.Generator
	if openaiGen, err := llm.NewOpenAI(cfg.LLMModel); err != nil {
		logger.Warn("generative model unavailable, serving FAQ answers only", zap.Error(err))
		generator = llm.Noop{}
	} else {
		generator = openaiGen
	}

	engine := rag.NewEngine(cfg.CorpusPath, chunker, embedder, index, logger)
	synthesizer := rag.NewSynthesizer(engine, generator, cfg.RetrieverK, logger)

	server := api.NewServer(synthesizer, &refreshService{crawler: crawlerInstance, engine: engine}, cfg.HTTPPort, logger)
	if err := server.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
