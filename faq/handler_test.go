package faq

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pinned(h int) *Handler {
	return NewHandlerWithPick(func(int) int { return h })
}

func TestFindGreeting(t *testing.T) {
	h := pinned(0)
	for _, q := range []string{"Xin chào", "chào bạn", "hi, cho hỏi", "hello", "alo"} {
		res := h.Find(q)
		require.True(t, res.Found, q)
		assert.Equal(t, 1.0, res.Confidence)
		assert.Equal(t, greetingResponses[0], res.Entry.Answer)
		assert.Equal(t, greetingSuggestions, res.Suggestions)
	}
}

func TestFindGreetingNotMidSentence(t *testing.T) {
	h := pinned(0)
	res := h.Find("cho mình hỏi về lời chào trong email")
	assert.NotEqual(t, "greeting", func() string {
		if res.Entry != nil {
			return res.Entry.Category
		}
		return ""
	}())
}

func TestFindConfidentHits(t *testing.T) {
	h := pinned(0)
	tests := []struct {
		query        string
		wantQuestion string
	}{
		{"SICT là gì?", "SICT là gì?"},
		{"học phí bao nhiêu tiền?", "Học phí là bao nhiêu?"},
		{"liên hệ sict như thế nào?", "Liên hệ SICT như thế nào?"},
		{"điểm chuẩn các ngành là bao nhiêu điểm?", "Điểm chuẩn các ngành là bao nhiêu?"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := h.Find(tt.query)
			require.True(t, res.Found)
			assert.Equal(t, tt.wantQuestion, res.Entry.Question)
			assert.GreaterOrEqual(t, res.Confidence, matchThreshold)
			assert.LessOrEqual(t, res.Confidence, 1.0)
			assert.NotEmpty(t, res.Suggestions)
		})
	}
}

func TestFindMissReturnsSuggestions(t *testing.T) {
	h := pinned(0)

	// No keyword overlap at all: default suggestions.
	res := h.Find("cho hỏi về machine learning")
	assert.False(t, res.Found)
	assert.Equal(t, defaultSuggestions(), res.Suggestions)

	// Weak overlap below the threshold: top scoring questions instead.
	res = h.Find("môn học nào vui nhất")
	assert.False(t, res.Found)
	assert.NotEmpty(t, res.Suggestions)
	assert.LessOrEqual(t, len(res.Suggestions), 3)
}

func TestClassifyIntentPriority(t *testing.T) {
	h := pinned(0)
	tests := []struct {
		query string
		want  Intent
	}{
		{"xin chào", IntentGreeting},
		{"số điện thoại phòng đào tạo", IntentContact},
		{"lịch thi học kỳ khi nào", IntentSchedule},
		{"so sánh cntt và khmt", IntentComparison},
		{"link trang web tuyển sinh", IntentNavigation},
		{"ngành cntt học gì", IntentFAQ},
		{"cho hỏi về machine learning", IntentInformation},
		// Contact outranks schedule when both match.
		{"số điện thoại và lịch làm việc", IntentContact},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, h.ClassifyIntent(tt.query))
		})
	}
}

func TestGreetingPickIsInjectable(t *testing.T) {
	for i := range greetingResponses {
		res := pinned(i).Find("xin chào")
		require.True(t, res.Found)
		assert.Equal(t, greetingResponses[i], res.Entry.Answer)
	}
}

func TestRelatedQuestions(t *testing.T) {
	h := pinned(0)
	got := h.RelatedQuestions("SICT là gì?", 2)
	assert.Len(t, got, 2)
	for _, s := range got {
		assert.False(t, strings.TrimSpace(s) == "")
	}
}
