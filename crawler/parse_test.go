package crawler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser("https://sict.haui.edu.vn", NewExtractor(100))
	require.NoError(t, err)
	return p
}

func TestParseListPage(t *testing.T) {
	p := newTestParser(t)
	html := `<html><body>
		<div class="news-item">
			<a href="/vn/tin-tuc/bai-1">Bài 1</a>
			<span class="date">15/09/2025</span>
		</div>
		<div class="news-item">
			<a href="/vn/tin-tuc/bai-2">Bài 2</a>
		</div>
		<div class="news-item">
			<a href="#">trống</a>
		</div>
	</body></html>`

	entries, err := p.ParseListPage([]byte(html))
	require.NoError(t, err)
	require.Len(t, entries, 2, "fragment-only links are dropped")

	assert.Equal(t, "https://sict.haui.edu.vn/vn/tin-tuc/bai-1", entries[0].URL)
	require.True(t, entries[0].HasDate)
	assert.Equal(t, date(2025, 9, 15), entries[0].Date)

	assert.Equal(t, "https://sict.haui.edu.vn/vn/tin-tuc/bai-2", entries[1].URL)
	assert.False(t, entries[1].HasDate)
}

func TestParseListPageFallbackLinks(t *testing.T) {
	p := newTestParser(t)
	html := `<html><body>
		<a href="/vn/tin-tuc/mot-bai-viet-kha-dai-2025">bài</a>
		<a href="/vn/x">ngắn quá</a>
		<a href="/en/news/something-long-enough">khác</a>
	</body></html>`

	entries, err := p.ParseListPage([]byte(html))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://sict.haui.edu.vn/vn/tin-tuc/mot-bai-viet-kha-dai-2025", entries[0].URL)
	assert.False(t, entries[0].HasDate)
}

func TestParseArticle(t *testing.T) {
	p := newTestParser(t)
	html := `<html><head>
		<title>Trang tin</title>
		<meta name="description" content="Mô tả bài viết từ meta">
	</head><body>
		<nav>menu menu</nav>
		<h1>Thông báo tuyển sinh 2025</h1>
		<span class="date">ngày 15 tháng 9 năm 2025</span>
		<div class="content">
			<p>Đoạn một của bài viết.</p>
			<p>Đoạn hai của bài viết.</p>
			<img src="/upload/a.jpg">
			<img src="https://cdn.example.com/b.jpg">
		</div>
		<footer>chân trang</footer>
	</body></html>`

	a, err := p.ParseArticle([]byte(html), "https://sict.haui.edu.vn/vn/tin-tuc/bai-1", "tin-tuc", "Tin tức")
	require.NoError(t, err)

	assert.Equal(t, "Thông báo tuyển sinh 2025", a.Title)
	assert.Equal(t, "Mô tả bài viết từ meta", a.Summary)
	assert.Contains(t, a.Content, "Đoạn một của bài viết.")
	assert.Contains(t, a.Content, "Đoạn hai của bài viết.")
	assert.NotContains(t, a.Content, "menu menu", "nav is stripped")
	assert.NotContains(t, a.Content, "chân trang", "footer is stripped")
	assert.Equal(t, "2025-09-15", a.PublishedDate)
	assert.Equal(t, []string{
		"https://sict.haui.edu.vn/upload/a.jpg",
		"https://cdn.example.com/b.jpg",
	}, a.Images)
	assert.Equal(t, "tin-tuc", a.Category)
	assert.Equal(t, "Tin tức", a.CategoryName)
}

func TestParseArticleFallbacks(t *testing.T) {
	p := newTestParser(t)
	long := strings.Repeat("Nội dung dài. ", 40)
	html := `<html><head><title>Tiêu đề từ title</title></head><body>
		<main>` + long + `</main>
	</body></html>`

	a, err := p.ParseArticle([]byte(html), "https://sict.haui.edu.vn/vn/gioi-thieu", "gioi-thieu", "Giới thiệu")
	require.NoError(t, err)
	assert.Equal(t, "Tiêu đề từ title", a.Title)
	assert.NotEmpty(t, a.Content)
	assert.True(t, strings.HasSuffix(a.Summary, "..."), "summary truncated from content")
	assert.LessOrEqual(t, len([]rune(a.Summary)), 303)
	assert.Empty(t, a.PublishedDate)
}

func TestParseArticleImageCap(t *testing.T) {
	p := newTestParser(t)
	var b strings.Builder
	b.WriteString(`<html><body><h1>t</h1><div class="content">nội dung`)
	for i := 0; i < 9; i++ {
		b.WriteString(`<img src="/img.jpg">`)
	}
	b.WriteString(`</div></body></html>`)

	a, err := p.ParseArticle([]byte(b.String()), "https://sict.haui.edu.vn/vn/x", "tin-tuc", "Tin tức")
	require.NoError(t, err)
	assert.Len(t, a.Images, 5)
}
