package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Fetcher wraps an http.Client with retry, politeness delay and shared
// counters. One Fetcher is shared by all category workers.
type Fetcher struct {
	client    *http.Client
	cfg       *CrawlerConfig
	stats     *Stats
	logger    *zap.Logger
	sleepFunc func(context.Context, time.Duration) error
}

func NewFetcher(cfg *CrawlerConfig, stats *Stats, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.RequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		cfg:       cfg,
		stats:     stats,
		logger:    logger,
		sleepFunc: sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Fetch GETs url with up to MaxRetries attempts. Backoff between attempts is
// linear (RetryDelay * attempt number); a successful response is followed by
// the politeness delay before returning so callers can loop tightly.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= f.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f.stats.TotalRequests.Add(1)

		body, err := f.doRequest(ctx, url)
		if err == nil {
			f.stats.SuccessfulRequests.Add(1)
			if serr := f.sleepFunc(ctx, f.cfg.RequestDelay); serr != nil {
				return body, nil
			}
			return body, nil
		}
		lastErr = err
		f.logger.Warn("request failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < f.cfg.MaxRetries {
			if serr := f.sleepFunc(ctx, f.cfg.RetryDelay*time.Duration(attempt)); serr != nil {
				return nil, serr
			}
		}
	}
	f.stats.FailedRequests.Add(1)
	return nil, fmt.Errorf("max retries reached for %s: %w", url, lastErr)
}

func (f *Fetcher) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "vi-VN,vi;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
