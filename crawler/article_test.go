package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewArticleDerivedFields(t *testing.T) {
	a := NewArticle(
		"https://sict.haui.edu.vn/vn/tin-tuc/bai-viet-1",
		"Tiêu đề", "Tóm tắt", "Nội dung bài viết",
		"tin-tuc", "Tin tức", "2025-09-15", nil,
	)

	assert.Len(t, a.ID, 12)
	assert.Len(t, a.ContentHash, 16)
	assert.NotNil(t, a.Images, "images must marshal as [], not null")
	assert.NotEmpty(t, a.CrawledAt)
}

func TestArticleIDStableAcrossHosts(t *testing.T) {
	// The id hashes the URL path only, so host or scheme changes do not
	// produce a new identity.
	a := NewArticle("https://sict.haui.edu.vn/vn/tin-tuc/bai-1", "t", "", "c1", "tin-tuc", "Tin tức", "", nil)
	b := NewArticle("http://sict.haui.edu.vn:8080/vn/tin-tuc/bai-1", "t", "", "c2", "tin-tuc", "Tin tức", "", nil)
	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ContentHash, b.ContentHash)
}

func TestFingerprintDeterministic(t *testing.T) {
	assert.Equal(t, Fingerprint("xin chào"), Fingerprint("xin chào"))
	assert.NotEqual(t, Fingerprint("a"), Fingerprint("b"))
	assert.Len(t, Fingerprint(""), 16)
}
