package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatChatHistoryEmpty(t *testing.T) {
	assert.Equal(t, "Chưa có lịch sử hội thoại.", FormatChatHistory(nil, 3))
	assert.Equal(t, "Chưa có lịch sử hội thoại.", FormatChatHistory([]Message{}, 3))
}

func TestFormatChatHistoryRoles(t *testing.T) {
	out := FormatChatHistory([]Message{
		{Role: "user", Content: "học phí bao nhiêu?"},
		{Role: "assistant", Content: "Khoảng 25 triệu đồng một năm."},
	}, 3)

	assert.Equal(t, "Người dùng: học phí bao nhiêu?\nTrợ lý: Khoảng 25 triệu đồng một năm.", out)
}

func TestFormatChatHistoryKeepsOnlyRecentTurns(t *testing.T) {
	var messages []Message
	for _, content := range []string{"một", "hai", "ba", "bốn", "năm", "sáu", "bảy", "tám"} {
		messages = append(messages, Message{Role: "user", Content: content})
	}

	out := FormatChatHistory(messages, 3)

	assert.NotContains(t, out, "một")
	assert.NotContains(t, out, "hai")
	assert.Contains(t, out, "ba")
	assert.Contains(t, out, "tám")
	assert.Len(t, strings.Split(out, "\n"), 6)
}

func TestFormatChatHistoryTruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("à", 250)
	out := FormatChatHistory([]Message{{Role: "user", Content: long}}, 3)

	assert.Equal(t, "Người dùng: "+strings.Repeat("à", 200)+"...", out)
}

func TestRenderPromptFillsPlaceholders(t *testing.T) {
	out, err := renderPrompt("NGUỒN-DỮ-LIỆU", "LỊCH-SỬ-HỘI-THOẠI", "CÂU-HỎI-KIỂM-TRA")
	require.NoError(t, err)

	assert.Contains(t, out, "NGUỒN-DỮ-LIỆU")
	assert.Contains(t, out, "LỊCH-SỬ-HỘI-THOẠI")
	assert.Contains(t, out, "CÂU-HỎI-KIỂM-TRA")
	assert.NotContains(t, out, "{{")
	assert.Contains(t, out, "TRẢ LỜI (bằng tiếng Việt, đúng trọng tâm):")
}
