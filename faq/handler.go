// Package faq answers common SICT/HaUI questions from a curated database,
// classifies query intent and suggests related questions, all without a
// model call.
package faq

import (
	"math/rand"
	"regexp"
	"sort"
	"strings"
)

// Intent labels what the user is asking for.
type Intent string

const (
	IntentFAQ         Intent = "faq"
	IntentInformation Intent = "information"
	IntentNavigation  Intent = "navigation"
	IntentComparison  Intent = "comparison"
	IntentContact     Intent = "contact"
	IntentSchedule    Intent = "schedule"
	IntentGreeting    Intent = "greeting"
	IntentUnknown     Intent = "unknown"
)

// Result is the outcome of an FAQ lookup.
type Result struct {
	Found       bool
	Entry       *Entry
	Confidence  float64
	Suggestions []string
}

// matchThreshold is the minimum keyword score an entry needs to count as a
// confident FAQ hit.
const matchThreshold = 0.4

// greetingPatterns are anchored to the query start. regexp's \b is
// ASCII-only, so the "ê" variant spells its boundary out.
var greetingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(xin\s+)?chào`),
	regexp.MustCompile(`(?i)^hi\b`),
	regexp.MustCompile(`(?i)^hello`),
	regexp.MustCompile(`(?i)^hey\b`),
	regexp.MustCompile(`(?i)^ê(?:$|[^\p{L}\p{N}])`),
	regexp.MustCompile(`(?i)^alo`),
}

type categoryBoost struct {
	Keyword string
	Boost   float64
}

// categoryBoosts add weight when a topical word appears in both the query
// and the entry's own question.
var categoryBoosts = []categoryBoost{
	{"ngành", 0.2},
	{"học", 0.1},
	{"phí", 0.15},
	{"điểm", 0.15},
	{"liên hệ", 0.2},
}

var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentContact, []string{"liên hệ", "số điện thoại", "email", "địa chỉ", "hotline"}},
	{IntentSchedule, []string{"lịch", "khi nào", "thời gian", "deadline", "hạn"}},
	{IntentComparison, []string{"so sánh", "khác", "hay là", "nên chọn", "vs", "versus"}},
	{IntentNavigation, []string{"link", "website", "url", "trang web", "ở đâu"}},
}

// Handler matches queries against the FAQ database. The greeting picker is
// injectable so tests can pin the canned response.
type Handler struct {
	pick func(n int) int
}

func NewHandler() *Handler {
	return &Handler{pick: rand.Intn}
}

// NewHandlerWithPick uses pick to choose among greeting responses.
func NewHandlerWithPick(pick func(n int) int) *Handler {
	return &Handler{pick: pick}
}

func isGreeting(queryLower string) bool {
	for _, p := range greetingPatterns {
		if p.MatchString(queryLower) {
			return true
		}
	}
	return false
}

// ClassifyIntent labels the query. Checks run in priority order: greeting,
// contact, schedule, comparison, navigation, then FAQ keyword presence.
func (h *Handler) ClassifyIntent(query string) Intent {
	q := strings.ToLower(query)

	if isGreeting(q) {
		return IntentGreeting
	}
	for _, ik := range intentKeywords {
		for _, kw := range ik.keywords {
			if strings.Contains(q, kw) {
				return ik.intent
			}
		}
	}
	for i := range entries {
		for _, kw := range entries[i].Keywords {
			if strings.Contains(q, kw) {
				return IntentFAQ
			}
		}
	}
	return IntentInformation
}

// Find looks the query up in the FAQ database. Greetings short-circuit with
// a canned response; otherwise entries are scored by keyword overlap plus
// category boosts, and the best entry wins if it clears the threshold. A
// miss carries the top scoring questions as suggestions.
func (h *Handler) Find(query string) Result {
	q := strings.ToLower(query)

	if isGreeting(q) {
		return Result{
			Found: true,
			Entry: &Entry{
				Question:         "Chào hỏi",
				Answer:           greetingResponses[h.pick(len(greetingResponses))],
				Category:         "greeting",
				RelatedQuestions: greetingSuggestions,
			},
			Confidence:  1.0,
			Suggestions: greetingSuggestions,
		}
	}

	type scored struct {
		score float64
		entry *Entry
	}
	var scores []scored
	for i := range entries {
		e := &entries[i]
		score := 0.0
		for _, kw := range e.Keywords {
			if strings.Contains(q, strings.ToLower(kw)) {
				score += 1.0 / float64(len(e.Keywords))
			}
		}
		question := strings.ToLower(e.Question)
		for _, cb := range categoryBoosts {
			if strings.Contains(q, cb.Keyword) && strings.Contains(question, cb.Keyword) {
				score += cb.Boost
			}
		}
		if score > 0 {
			scores = append(scores, scored{score, e})
		}
	}

	if len(scores) == 0 {
		return Result{Suggestions: defaultSuggestions()}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	best := scores[0]
	if best.score >= matchThreshold {
		suggestions := best.entry.RelatedQuestions
		if len(suggestions) == 0 {
			suggestions = defaultSuggestions()
		}
		confidence := best.score
		if confidence > 1.0 {
			confidence = 1.0
		}
		return Result{
			Found:       true,
			Entry:       best.entry,
			Confidence:  confidence,
			Suggestions: suggestions,
		}
	}

	n := len(scores)
	if n > 3 {
		n = 3
	}
	suggestions := make([]string, n)
	for i := 0; i < n; i++ {
		suggestions[i] = scores[i].entry.Question
	}
	return Result{Suggestions: suggestions}
}

// RelatedQuestions returns up to n suggested follow-up questions for the
// query.
func (h *Handler) RelatedQuestions(query string, n int) []string {
	res := h.Find(query)
	suggestions := res.Suggestions
	if len(suggestions) == 0 {
		suggestions = defaultSuggestions()
	}
	if len(suggestions) > n {
		suggestions = suggestions[:n]
	}
	return suggestions
}
