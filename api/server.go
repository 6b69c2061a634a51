// Package api exposes the chatbot over HTTP: a streaming chat endpoint, a
// data refresh endpoint and a health check.
package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"hauibot/rag"
)

// Answerer streams the answer to one chat message.
type Answerer interface {
	Answer(ctx context.Context, query string, history []rag.Message, emit rag.EmitFunc) error
}

// RefreshReport summarizes one data refresh run.
type RefreshReport struct {
	Articles int `json:"articles"`
	Chunks   int `json:"chunks"`
}

// Refresher re-crawls the site and rebuilds the vector index.
type Refresher interface {
	Refresh(ctx context.Context, reset bool) (RefreshReport, error)
}

// Server routes chat and refresh requests. A refresh takes the write side of
// mu, so no chat query ever reads a half-rebuilt index.
type Server struct {
	answerer  Answerer
	refresher Refresher
	logger    *zap.Logger
	port      int
	mu        sync.RWMutex
}

func NewServer(answerer Answerer, refresher Refresher, port int, logger *zap.Logger) *Server {
	return &Server{
		answerer:  answerer,
		refresher: refresher,
		logger:    logger,
		port:      port,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/data/refresh", s.handleRefresh)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start blocks serving HTTP on the configured port.
func (s *Server) Start() error {
	s.logger.Info("starting api server", zap.Int("port", s.port))
	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.Handler())
}
