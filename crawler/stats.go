package crawler

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Stats aggregates crawl counters across workers. All fields are atomic so
// the fetcher and the per-category workers can report without coordination.
type Stats struct {
	TotalRequests      atomic.Int64
	SuccessfulRequests atomic.Int64
	FailedRequests     atomic.Int64
	ArticlesFound      atomic.Int64
	SkippedDate        atomic.Int64
	SkippedDuplicate   atomic.Int64
}

// Log writes a one-line crawl summary.
func (s *Stats) Log(logger *zap.Logger) {
	logger.Info("crawl statistics",
		zap.Int64("total_requests", s.TotalRequests.Load()),
		zap.Int64("successful_requests", s.SuccessfulRequests.Load()),
		zap.Int64("failed_requests", s.FailedRequests.Load()),
		zap.Int64("articles_found", s.ArticlesFound.Load()),
		zap.Int64("skipped_date_filter", s.SkippedDate.Load()),
		zap.Int64("skipped_duplicate", s.SkippedDuplicate.Load()),
	)
}
