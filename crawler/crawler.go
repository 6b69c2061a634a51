package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Crawler walks the category table, fetching list pages and articles with
// date-window filtering and duplicate suppression. One Crawler instance owns
// the crawl state; categories run on a bounded worker pool.
type Crawler struct {
	cfg     *CrawlerConfig
	site    map[string]CategoryConfig
	fetcher *Fetcher
	parser  *Parser
	stats   *Stats
	logger  *zap.Logger

	mu    sync.Mutex
	state *State
}

func New(cfg *CrawlerConfig, site map[string]CategoryConfig, logger *zap.Logger) (*Crawler, error) {
	state, err := LoadState(cfg.StatePath)
	if err != nil {
		return nil, err
	}
	stats := &Stats{}
	extractor := NewExtractor(cfg.MinContentLength)
	parser, err := NewParser(cfg.BaseURL, extractor)
	if err != nil {
		return nil, err
	}
	return &Crawler{
		cfg:     cfg,
		site:    site,
		fetcher: NewFetcher(cfg, stats, logger),
		parser:  parser,
		stats:   stats,
		logger:  logger,
		state:   state,
	}, nil
}

// Stats exposes the shared crawl counters.
func (c *Crawler) Stats() *Stats { return c.stats }

// ResetState clears the visited set so the next crawl re-fetches everything.
func (c *Crawler) ResetState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Reset()
}

func (c *Crawler) seen(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.state.CrawledURLs[url]
	return ok
}

func (c *Crawler) markCrawled(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CrawledURLs[url] = struct{}{}
}

func (c *Crawler) storedHash(url string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.ContentHashes[url]
}

func (c *Crawler) setHash(url, hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ContentHashes[url] = hash
}

// CrawlCategory crawls one category by key.
func (c *Crawler) CrawlCategory(ctx context.Context, key string) ([]Article, error) {
	cat, ok := c.site[key]
	if !ok {
		return nil, fmt.Errorf("unknown category %q", key)
	}
	if cat.Type == CategoryPaginated {
		return c.crawlPaginated(ctx, key, cat)
	}
	return c.crawlStatic(ctx, key, cat)
}

// pageURL builds the Nth list-page URL for a category path. Page 1 is the
// bare path; later pages append the page number as a path segment.
func (c *Crawler) pageURL(path string, page int) string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	if page == 1 {
		return base + path
	}
	return fmt.Sprintf("%s%s/%d", base, path, page)
}

func (c *Crawler) crawlPaginated(ctx context.Context, key string, cat CategoryConfig) ([]Article, error) {
	log := c.logger.With(zap.String("category", key))
	log.Info("crawling paginated category", zap.String("name", cat.Name))

	var articles []Article
	consecutiveOld := 0

	for page := 1; page <= c.cfg.MaxPagesPerCategory; page++ {
		if err := ctx.Err(); err != nil {
			return articles, err
		}
		pageURL := c.pageURL(cat.Path, page)
		body, err := c.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			log.Warn("list page fetch failed, stopping category",
				zap.Int("page", page), zap.Error(err))
			break
		}
		entries, err := c.parser.ParseListPage(body)
		if err != nil {
			log.Warn("list page parse failed, stopping category",
				zap.Int("page", page), zap.Error(err))
			break
		}
		if len(entries) == 0 {
			log.Info("no more articles", zap.Int("page", page))
			break
		}

		for _, entry := range entries {
			if c.seen(entry.URL) {
				c.stats.SkippedDuplicate.Add(1)
				continue
			}

			// Cheap date check from the listing before fetching the body.
			if cat.DateRequired && entry.HasDate {
				if entry.Date.Before(c.cfg.StartDate) {
					consecutiveOld++
					c.stats.SkippedDate.Add(1)
					if consecutiveOld >= c.cfg.ConsecutiveOldThreshold {
						log.Info("consecutive old articles, stopping category",
							zap.Int("consecutive_old", consecutiveOld))
						return articles, nil
					}
					continue
				}
				consecutiveOld = 0
			}

			article, err := c.fetchArticle(ctx, entry.URL, key, cat.Name)
			if err != nil {
				if ctx.Err() != nil {
					return articles, ctx.Err()
				}
				log.Warn("article fetch failed", zap.String("url", entry.URL), zap.Error(err))
				continue
			}

			// The article body is the authoritative date source; it both
			// advances and resets the counter, correcting glimpse misparses.
			if cat.DateRequired && article.PublishedDate != "" {
				published, perr := time.Parse("2006-01-02", article.PublishedDate)
				if perr == nil {
					if published.Before(c.cfg.StartDate) {
						consecutiveOld++
						c.stats.SkippedDate.Add(1)
						if consecutiveOld >= c.cfg.ConsecutiveOldThreshold {
							log.Info("consecutive old articles, stopping category",
								zap.Int("consecutive_old", consecutiveOld))
							return articles, nil
						}
						continue
					}
					consecutiveOld = 0
				}
			}

			articles = append(articles, *article)
			c.markCrawled(entry.URL)
			c.stats.ArticlesFound.Add(1)
			log.Info("article scraped", zap.String("title", truncateRunes(article.Title, 50)))
		}
	}
	return articles, nil
}

func (c *Crawler) crawlStatic(ctx context.Context, key string, cat CategoryConfig) ([]Article, error) {
	log := c.logger.With(zap.String("category", key))
	paths := append([]string{cat.Path}, cat.SubPaths...)
	log.Info("crawling static category",
		zap.String("name", cat.Name), zap.Int("pages", len(paths)))

	var articles []Article
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return articles, err
		}
		pageURL := strings.TrimRight(c.cfg.BaseURL, "/") + path

		article, err := c.fetchArticle(ctx, pageURL, key, cat.Name)
		if err != nil {
			if ctx.Err() != nil {
				return articles, ctx.Err()
			}
			log.Warn("static page fetch failed", zap.String("url", pageURL), zap.Error(err))
			continue
		}
		if len([]rune(article.Content)) <= c.cfg.MinContentLength {
			continue
		}

		// Unchanged pages are skipped by comparing the extracted-content
		// fingerprint against the one stored on the last visit.
		if c.seen(pageURL) && c.storedHash(pageURL) == article.ContentHash {
			c.stats.SkippedDuplicate.Add(1)
			continue
		}

		articles = append(articles, *article)
		c.markCrawled(pageURL)
		c.setHash(pageURL, article.ContentHash)
		c.stats.ArticlesFound.Add(1)
		log.Info("page scraped", zap.String("title", truncateRunes(article.Title, 50)))
	}
	return articles, nil
}

func (c *Crawler) fetchArticle(ctx context.Context, url, key, catName string) (*Article, error) {
	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return c.parser.ParseArticle(body, url, key, catName)
}

// CrawlAll crawls every category on a bounded worker pool, highest priority
// first. A failing category is logged and does not cancel its siblings.
// Results are merged with first-wins deduplication by URL.
func (c *Crawler) CrawlAll(ctx context.Context) ([]Article, error) {
	keys := make([]string, 0, len(c.site))
	for k := range c.site {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, pj := c.site[keys[i]].Priority, c.site[keys[j]].Priority
		if pi != pj {
			return pi < pj
		}
		return keys[i] < keys[j]
	})

	c.logger.Info("starting crawl",
		zap.String("base_url", c.cfg.BaseURL),
		zap.String("start_date", c.cfg.StartDate.Format("2006-01-02")),
		zap.Int("categories", len(keys)),
		zap.Int("workers", c.cfg.MaxWorkers))

	workers := c.cfg.MaxWorkers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	var (
		wg      sync.WaitGroup
		mergeMu sync.Mutex
		merged  []Article
		seenURL = make(map[string]struct{})
	)
	for _, key := range keys {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			articles, err := c.CrawlCategory(ctx, key)
			if err != nil && ctx.Err() == nil {
				c.logger.Error("category crawl failed",
					zap.String("category", key), zap.Error(err))
			}
			mergeMu.Lock()
			for _, a := range articles {
				if _, dup := seenURL[a.URL]; dup {
					continue
				}
				seenURL[a.URL] = struct{}{}
				merged = append(merged, a)
			}
			mergeMu.Unlock()
		}(key)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return merged, err
	}
	c.stats.Log(c.logger)
	return merged, nil
}

// SaveResults writes the article corpus and stamps the crawl time into the
// state file.
func (c *Crawler) SaveResults(articles []Article) error {
	if articles == nil {
		articles = []Article{}
	}
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %w", err)
	}
	if dir := filepath.Dir(c.cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(c.cfg.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write corpus: %w", err)
	}
	c.logger.Info("saved corpus",
		zap.Int("articles", len(articles)), zap.String("path", c.cfg.OutputPath))

	c.mu.Lock()
	c.state.LastCrawl = time.Now().Format(time.RFC3339)
	err = c.state.Save(c.cfg.StatePath)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.logger.Info("saved crawl state", zap.String("path", c.cfg.StatePath))
	return nil
}
