package crawler

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"time"
)

// Article is one scraped page. Articles are immutable after construction:
// a fresh crawl supersedes the whole corpus file instead of mutating records.
type Article struct {
	ID            string   `json:"id"`
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	Summary       string   `json:"summary"`
	Content       string   `json:"content"`
	Category      string   `json:"category"`
	CategoryName  string   `json:"category_name"`
	PublishedDate string   `json:"published_date,omitempty"`
	Images        []string `json:"images"`
	CrawledAt     string   `json:"crawled_at"`
	ContentHash   string   `json:"content_hash"`
}

// NewArticle builds an Article with its derived fields filled in:
// ContentHash is a fingerprint of Content, and ID is a fingerprint of the
// URL path, so re-crawls of the same page always produce the same id.
func NewArticle(pageURL, title, summary, content, category, categoryName, publishedDate string, images []string) Article {
	if images == nil {
		images = []string{}
	}
	return Article{
		ID:            urlID(pageURL),
		URL:           pageURL,
		Title:         title,
		Summary:       summary,
		Content:       content,
		Category:      category,
		CategoryName:  categoryName,
		PublishedDate: publishedDate,
		Images:        images,
		CrawledAt:     time.Now().Format(time.RFC3339),
		ContentHash:   Fingerprint(content),
	}
}

// Fingerprint returns a short stable fingerprint of s.
func Fingerprint(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}

func urlID(pageURL string) string {
	path := pageURL
	if u, err := url.Parse(pageURL); err == nil && u.Path != "" {
		path = u.Path
	}
	sum := md5.Sum([]byte(path))
	return hex.EncodeToString(sum[:])[:12]
}
