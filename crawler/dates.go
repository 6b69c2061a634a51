package crawler

import (
	"regexp"
	"strconv"
	"time"
)

// Vietnamese date grammars, tried in order. Each pattern captures three
// numeric groups; the kind says which group is which.
type dateGrammar struct {
	re   *regexp.Regexp
	kind string // dmy, ymd or vn (day month year)
}

var dateGrammars = []dateGrammar{
	{regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})`), "dmy"},
	{regexp.MustCompile(`(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})`), "ymd"},
	{regexp.MustCompile(`(?i)ngày\s+(\d{1,2})\s+tháng\s+(\d{1,2})\s+năm\s+(\d{4})`), "vn"},
	{regexp.MustCompile(`(?i)(\d{1,2})\s+tháng\s+(\d{1,2}),?\s+(\d{4})`), "vn"},
}

// ParseVietnameseDate extracts the first date a grammar recognizes in text.
// Matches that do not name a real calendar day (e.g. 31/02/2025) are
// rejected and the next grammar is tried.
func ParseVietnameseDate(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	for _, g := range dateGrammars {
		m := g.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		c, _ := strconv.Atoi(m[3])

		var year, month, day int
		switch g.kind {
		case "dmy", "vn":
			day, month, year = a, b, c
		case "ymd":
			year, month, day = a, b, c
		}
		if t, ok := makeDate(year, month, day); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// makeDate builds a UTC date and verifies the components round-trip, which
// rejects overflow dates time.Date would silently normalize.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
