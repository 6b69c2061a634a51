package crawler

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ListEntry is one article reference harvested from a category list page.
// The date is a glimpse from the listing markup; the article body remains the
// authority.
type ListEntry struct {
	URL     string
	Date    time.Time
	HasDate bool
}

// Selector tables mirroring the site's known markup variants.
var (
	listItemSelectors = []string{
		".news-item", ".post-item", ".article-item", ".item",
		".list-item", ".entry", "article", ".box-news-item",
		".news-list li", ".post-list li", "ul.news li",
	}
	dateSelectors = []string{
		".date", ".post-date", ".news-date", ".time", ".created",
		`[class*="date"]`, `[class*="time"]`, "time", ".meta",
	}
	titleSelectors   = []string{"h1", ".title", ".post-title", ".news-title", ".entry-title"}
	contentSelectors = []string{
		".content", ".post-content", ".article-content", ".entry-content",
		".news-content", ".detail-content", "article", ".main-content",
	}
	imageSelectors = ".content img, .post-content img, article img"
)

// Parser turns fetched HTML into list entries and Articles. It is stateless
// apart from the resolved base URL, so one instance serves all workers.
type Parser struct {
	base      *url.URL
	extractor *Extractor
	now       func() time.Time
}

func NewParser(baseURL string, extractor *Extractor) (*Parser, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	return &Parser{base: base, extractor: extractor, now: time.Now}, nil
}

func (p *Parser) resolve(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return p.base.ResolveReference(ref).String()
}

// ParseListPage extracts article links, with list-level date glimpses, from a
// category page. The first item selector that matches anything wins; if none
// match, any long /vn/ link is treated as an article reference without a date.
func (p *Parser) ParseListPage(html []byte) ([]ListEntry, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse list page: %w", err)
	}

	var entries []ListEntry
	for _, sel := range listItemSelectors {
		items := doc.Find(sel)
		if items.Length() == 0 {
			continue
		}
		items.Each(func(_ int, item *goquery.Selection) {
			href, ok := item.Find("a[href]").First().Attr("href")
			if !ok || href == "" ||
				strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
				return
			}
			u := p.resolve(href)
			if u == "" {
				return
			}
			entry := ListEntry{URL: u}
			if d, ok := dateFromSelection(item); ok {
				entry.Date = d
				entry.HasDate = true
			}
			entries = append(entries, entry)
		})
		break
	}

	if len(entries) == 0 {
		doc.Find(`a[href*="/vn/"]`).Each(func(_ int, link *goquery.Selection) {
			href, _ := link.Attr("href")
			if strings.Contains(href, "/vn/") && len(href) > 20 {
				if u := p.resolve(href); u != "" {
					entries = append(entries, ListEntry{URL: u})
				}
			}
		})
	}
	return entries, nil
}

// dateFromSelection tries the known date selectors inside sel, then its whole
// text.
func dateFromSelection(sel *goquery.Selection) (time.Time, bool) {
	for _, ds := range dateSelectors {
		el := sel.Find(ds).First()
		if el.Length() == 0 {
			continue
		}
		if d, ok := ParseVietnameseDate(el.Text()); ok {
			return d, true
		}
	}
	return ParseVietnameseDate(sel.Text())
}

// ParseArticle extracts a full Article from an article page. Content comes
// from the first known container selector; when none match, the readability
// fallback runs over the raw HTML. Returns nil when no usable content was
// found.
func (p *Parser) ParseArticle(html []byte, pageURL, category, categoryName string) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article page: %w", err)
	}

	doc.Find("script, style, nav, footer, .sidebar, .menu, .comment").Remove()

	title := ""
	for _, sel := range titleSelectors {
		if el := doc.Find(sel).First(); el.Length() > 0 {
			title = strings.TrimSpace(el.Text())
			break
		}
	}
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if title == "" {
		title = "Không có tiêu đề"
	}

	content := ""
	for _, sel := range contentSelectors {
		if el := doc.Find(sel).First(); el.Length() > 0 {
			content = selectionText(el)
			break
		}
	}
	if content == "" && p.extractor != nil {
		content = p.extractor.Extract(html, pageURL)
	}
	if content == "" {
		main := doc.Find("main").First()
		if main.Length() == 0 {
			main = doc.Find("body").First()
		}
		content = selectionText(main)
	}

	summary := ""
	if meta, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		summary = truncateRunes(meta, 300)
	}
	if summary == "" && content != "" {
		summary = truncateRunes(content, 300) + "..."
	}

	var images []string
	doc.Find(imageSelectors).EachWithBreak(func(_ int, img *goquery.Selection) bool {
		if src, ok := img.Attr("src"); ok && src != "" {
			if u := p.resolve(src); u != "" {
				images = append(images, u)
			}
		}
		return len(images) < 5
	})

	published := ""
	if d, ok := dateFromSelection(doc.Selection); ok {
		published = d.Format("2006-01-02")
	}

	a := NewArticle(pageURL, title, summary, content, category, categoryName, published, images)
	a.CrawledAt = p.now().Format(time.RFC3339)
	return &a, nil
}

// selectionText joins block text with newlines, one trimmed line per text
// node, matching the shape the chunker expects.
func selectionText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	var parts []string
	for _, line := range strings.Split(sel.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
