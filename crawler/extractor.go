package crawler

import (
	"bytes"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// Extractor is the fallback content path for pages whose markup matches none
// of the known container selectors.
type Extractor struct {
	minLength int
}

func NewExtractor(minLength int) *Extractor {
	return &Extractor{minLength: minLength}
}

// Extract runs readability over the raw HTML and returns the main text, or
// "" when extraction fails or yields nothing substantial.
func (e *Extractor) Extract(html []byte, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(bytes.NewReader(html), u)
	if err != nil {
		return ""
	}
	text := strings.TrimSpace(article.TextContent)
	if !e.IsSubstantial(text) {
		return ""
	}
	return text
}

// IsSubstantial reports whether text is long enough to store as page content.
func (e *Extractor) IsSubstantial(text string) bool {
	return len([]rune(text)) > e.minLength
}
