package crawler

import (
	"time"
)

// CrawlerConfig holds every crawl-time knob.
type CrawlerConfig struct {
	BaseURL    string
	StartDate  time.Time
	OutputPath string
	StatePath  string

	RequestTimeout time.Duration
	RequestDelay   time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	UserAgent      string

	MaxPagesPerCategory     int
	ConsecutiveOldThreshold int

	MaxWorkers int

	// Pages shorter than this are treated as extraction failures and not stored.
	MinContentLength int
}

// DefaultConfig returns a default crawler configuration.
func DefaultConfig() *CrawlerConfig {
	return &CrawlerConfig{
		BaseURL:                 "https://sict.haui.edu.vn",
		StartDate:               time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		OutputPath:              "data/sict_haui_data.json",
		StatePath:               "data/crawler_state.json",
		RequestTimeout:          30 * time.Second,
		RequestDelay:            500 * time.Millisecond,
		MaxRetries:              3,
		RetryDelay:              2 * time.Second,
		UserAgent:               "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		MaxPagesPerCategory:     50,
		ConsecutiveOldThreshold: 3,
		MaxWorkers:              3,
		MinContentLength:        100,
	}
}
