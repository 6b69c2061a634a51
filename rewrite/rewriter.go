// Package rewrite sharpens user queries before retrieval: it detects
// implicit constraints, expands follow-up questions with conversation
// context, and augments queries with related keywords.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"
)

// Result describes how a query was rewritten.
type Result struct {
	Original            string
	Rewritten           string
	IntentClarification string
	KeywordsAdded       []string
	WasModified         bool
}

type constraintPattern struct {
	re            *regexp.Regexp
	clarification string
}

// constraintPatterns map query phrasings to clarifications appended to the
// rewritten query. Order fixes the clarification order on multi-matches.
var constraintPatterns = []constraintPattern{
	// ownership/organizer
	{regexp.MustCompile(`(?i)(do|của)\s+(trường|sict|haui|khoa)\s+(tổ chức|đứng ra|chủ trì)`),
		"sự kiện/hoạt động NỘI BỘ do SICT/HaUI tổ chức"},
	{regexp.MustCompile(`(?i)trường\s+(có\s+)?(tổ chức|mở|đứng ra)`),
		"hoạt động do SICT/HaUI tổ chức, KHÔNG phải tham gia cuộc thi bên ngoài"},
	{regexp.MustCompile(`(?i)(hoạt động|sự kiện)\s+(nội bộ|trong trường)`),
		"hoạt động nội bộ của SICT/HaUI"},

	// time window
	{regexp.MustCompile(`(?i)(gần đây|mới nhất|hôm nay|tuần này|tháng này)`),
		"tin tức/sự kiện gần đây nhất"},
	{regexp.MustCompile(`(?i)(sắp tới|upcoming|tới đây)`),
		"sự kiện sắp diễn ra trong tương lai"},

	// comparison
	{regexp.MustCompile(`(?i)(khác|khác nhau|so sánh|vs|versus)`),
		"so sánh sự khác biệt giữa các lựa chọn"},

	// recommendation
	{regexp.MustCompile(`(?i)(nên|nên chọn|khuyên|recommend)`),
		"đề xuất/gợi ý dựa trên ưu nhược điểm"},
}

var followupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(còn|thế còn|vậy còn)`),
	regexp.MustCompile(`(?i)^(à|ừm?)\s+(thế|vậy)`),
	regexp.MustCompile(`(?i)^(nó|cái đó|ngành đó|trường đó)`),
	regexp.MustCompile(`(?i)(là gì|thế nào)\?*$`),
	regexp.MustCompile(`(?i)^(chi tiết|cụ thể)\s+(hơn|thêm)`),
}

type implicitKeyword struct {
	trigger   string
	additions []string
}

// implicitKeywords augment retrieval when a trigger word appears in the
// query.
var implicitKeywords = []implicitKeyword{
	{"olympic", []string{"cuộc thi", "giải thưởng", "thành tích", "sinh viên"}},
	{"contest", []string{"cuộc thi", "thi đấu", "giải thưởng"}},
	{"hot", []string{"nổi bật", "đáng chú ý", "quan trọng"}},
	{"tổ chức", []string{"diễn ra", "được tổ chức", "chủ trì"}},
}

// Rewriter is stateless; all pattern tables are package-level and read-only.
type Rewriter struct{}

func NewRewriter() *Rewriter { return &Rewriter{} }

// DetectConstraints returns the clarifications for every constraint pattern
// the query triggers.
func (r *Rewriter) DetectConstraints(query string) []string {
	var constraints []string
	for _, cp := range constraintPatterns {
		if cp.re.MatchString(query) {
			constraints = append(constraints, cp.clarification)
		}
	}
	return constraints
}

// IsFollowup reports whether the query reads like a follow-up to an earlier
// question.
func (r *Rewriter) IsFollowup(query string) bool {
	for _, p := range followupPatterns {
		if p.MatchString(query) {
			return true
		}
	}
	return false
}

// ExpandKeywords returns extra retrieval keywords implied by the query.
func (r *Rewriter) ExpandKeywords(query string) []string {
	q := strings.ToLower(query)
	var keywords []string
	seen := make(map[string]struct{})
	for _, ik := range implicitKeywords {
		if !strings.Contains(q, ik.trigger) {
			continue
		}
		for _, kw := range ik.additions {
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// RewriteWithContext rewrites the query. priorUserTurns are the user's
// earlier utterances, newest first; the most recent one anchors follow-up
// questions.
func (r *Rewriter) RewriteWithContext(query string, priorUserTurns []string) Result {
	res := Result{Original: query, Rewritten: query}

	constraints := r.DetectConstraints(query)
	if len(constraints) > 0 {
		res.IntentClarification = strings.Join(constraints, "; ")
		res.WasModified = true
	}

	if r.IsFollowup(query) && len(priorUserTurns) > 0 {
		anchor := priorUserTurns[0]
		if runes := []rune(anchor); len(runes) > 100 {
			anchor = string(runes[:100])
		}
		res.Rewritten = fmt.Sprintf("%s (trong ngữ cảnh: %s)", query, anchor)
		res.WasModified = true
	}

	res.KeywordsAdded = r.ExpandKeywords(query)

	if res.IntentClarification != "" {
		res.Rewritten = fmt.Sprintf("%s [Lưu ý: %s]", res.Rewritten, res.IntentClarification)
	}
	return res
}

// CreateSearchQueries produces query variations for multi-query retrieval:
// the original, an organizer-emphasized variant when the query asks about
// school-run events, and a keyword-augmented variant.
func (r *Rewriter) CreateSearchQueries(query string) []string {
	queries := []string{query}

	constraints := strings.ToLower(strings.Join(r.DetectConstraints(query), " "))
	if strings.Contains(constraints, "nội bộ") || strings.Contains(constraints, "tổ chức") {
		queries = append(queries, query+" SICT HaUI tổ chức nội bộ")
	}

	if keywords := r.ExpandKeywords(query); len(keywords) > 0 {
		if len(keywords) > 3 {
			keywords = keywords[:3]
		}
		queries = append(queries, query+" "+strings.Join(keywords, " "))
	}
	return queries
}
