package rewrite

import (
	"regexp"
	"sort"
	"strings"
)

// externalEventIndicators mark documents about competitions and events run
// outside the school.
var externalEventIndicators = []string{
	"toàn quốc", "quốc gia", "quốc tế", "việt nam",
	"hội tin học", "bộ giáo dục", "olympic tin học sinh viên việt nam",
	"icpc", "acm", "oi", "ioi",
}

// internalEventIndicators mark documents about school-organized activity.
var internalEventIndicators = []string{
	"sict tổ chức", "haui tổ chức", "trường tổ chức",
	"nội bộ", "sinh viên trường", "trong trường",
	"câu lạc bộ", "khoa tổ chức", "liên chi đoàn",
}

var internalQueryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`trường\s+(có\s+)?(tổ chức|mở)`),
	regexp.MustCompile(`(do|của)\s+(trường|sict|haui)`),
	regexp.MustCompile(`(nội bộ|trong trường)`),
}

// DropThreshold is the context score below which a document is discarded.
const DropThreshold = -0.3

// ContextFilter re-scores retrieved documents when the query asks
// specifically about school-organized events, demoting external-competition
// content.
type ContextFilter struct{}

func NewContextFilter() *ContextFilter { return &ContextFilter{} }

// IsInternalEventQuery reports whether the query asks for events run by the
// school itself.
func (f *ContextFilter) IsInternalEventQuery(query string) bool {
	q := strings.ToLower(query)
	for _, p := range internalQueryPatterns {
		if p.MatchString(q) {
			return true
		}
	}
	return false
}

// ScoreDocument returns a score adjustment in [-1, 1] for one document.
// Internal indicators add 0.2 each, external indicators subtract 0.15 each;
// non-internal queries always score 0.
func (f *ContextFilter) ScoreDocument(content string, isInternalQuery bool) float64 {
	if !isInternalQuery {
		return 0
	}
	doc := strings.ToLower(content)
	score := 0.0
	for _, ind := range internalEventIndicators {
		if strings.Contains(doc, ind) {
			score += 0.2
		}
	}
	for _, ind := range externalEventIndicators {
		if strings.Contains(doc, ind) {
			score -= 0.15
		}
	}
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score
}

// FilterTexts returns the indexes of texts that survive context filtering,
// ordered by descending context score (original order on ties). For
// non-internal queries every index survives in place.
func (f *ContextFilter) FilterTexts(query string, texts []string, threshold float64) []int {
	if !f.IsInternalEventQuery(query) {
		indexes := make([]int, len(texts))
		for i := range texts {
			indexes[i] = i
		}
		return indexes
	}

	scores := make([]float64, len(texts))
	for i, t := range texts {
		scores[i] = f.ScoreDocument(t, true)
	}

	kept := make([]int, 0, len(texts))
	for i := range texts {
		if scores[i] >= threshold {
			kept = append(kept, i)
		}
	}
	sort.SliceStable(kept, func(a, b int) bool {
		return scores[kept[a]] > scores[kept[b]]
	})
	return kept
}
