// Package entity pulls structured contact and schedule information out of
// Vietnamese text: phone numbers, emails, URLs, dates, deadlines,
// departments and addresses.
package entity

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateEntity is one recognized date. Day-and-month mentions without a year
// leave Year as 0 and ISO empty.
type DateEntity struct {
	Text  string `json:"text"`
	Day   int    `json:"day"`
	Month int    `json:"month"`
	Year  int    `json:"year,omitempty"`
	ISO   string `json:"iso,omitempty"`
}

// Deadline is a deadline keyword with its trailing context and any dates
// found inside that context.
type Deadline struct {
	Keyword string       `json:"keyword"`
	Text    string       `json:"text"`
	Dates   []DateEntity `json:"dates"`
}

// Entities is everything extracted from one piece of text.
type Entities struct {
	PhoneNumbers []string     `json:"phone_numbers"`
	Emails       []string     `json:"emails"`
	Dates        []DateEntity `json:"dates"`
	Addresses    []string     `json:"addresses"`
	Departments  []string     `json:"departments"`
	Deadlines    []Deadline   `json:"deadlines"`
	URLs         []string     `json:"urls"`
}

// HasEntities reports whether anything at all was extracted.
func (e *Entities) HasEntities() bool {
	return len(e.PhoneNumbers) > 0 || len(e.Emails) > 0 || len(e.Dates) > 0 ||
		len(e.Addresses) > 0 || len(e.Departments) > 0 ||
		len(e.Deadlines) > 0 || len(e.URLs) > 0
}

// FormatForResponse renders the contact-style entities as a markdown block
// for inclusion in an answer.
func (e *Entities) FormatForResponse() string {
	var parts []string
	if len(e.PhoneNumbers) > 0 {
		parts = append(parts, fmt.Sprintf("📞 **Số điện thoại:** %s", strings.Join(e.PhoneNumbers, ", ")))
	}
	if len(e.Emails) > 0 {
		parts = append(parts, fmt.Sprintf("📧 **Email:** %s", strings.Join(e.Emails, ", ")))
	}
	if len(e.Addresses) > 0 {
		parts = append(parts, fmt.Sprintf("📍 **Địa chỉ:** %s", strings.Join(e.Addresses, "; ")))
	}
	if len(e.Deadlines) > 0 {
		texts := make([]string, len(e.Deadlines))
		for i, d := range e.Deadlines {
			texts[i] = d.Text
		}
		parts = append(parts, fmt.Sprintf("⏰ **Deadline:** %s", strings.Join(texts, ", ")))
	}
	if len(e.URLs) > 0 {
		parts = append(parts, fmt.Sprintf("🔗 **Link:** %s", strings.Join(e.URLs, ", ")))
	}
	return strings.Join(parts, "\n")
}

var (
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:0|\+84)\d{9,10}`),
		regexp.MustCompile(`(?:0|\+84)[\s.\-]?\d{2,3}[\s.\-]?\d{3,4}[\s.\-]?\d{3,4}`),
		regexp.MustCompile(`\d{4}[\s.\-]?\d{3}[\s.\-]?\d{3}`),
	}
	phoneSeparators = regexp.MustCompile(`[\s.\-]`)

	emailPattern = regexp.MustCompile(`(?i)[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	urlPattern   = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)
)

type dateGrammar struct {
	re   *regexp.Regexp
	kind string
}

var dateGrammars = []dateGrammar{
	{regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{4})`), "dmy"},
	{regexp.MustCompile(`(\d{4})[/\-](\d{1,2})[/\-](\d{1,2})`), "ymd"},
	{regexp.MustCompile(`(?i)ngày\s+(\d{1,2})\s+tháng\s+(\d{1,2})\s+năm\s+(\d{4})`), "vn_full"},
	{regexp.MustCompile(`(?i)(\d{1,2})\s+tháng\s+(\d{1,2})`), "vn_short"},
}

// deadlineKeywords keep their order: "hạn" precedes its longer variants on
// purpose so the variant text lands in the context group.
var deadlineKeywords = []string{
	"hạn", "deadline", "trước ngày", "đến ngày", "hết hạn",
	"nộp trước", "đăng ký trước", "hạn cuối", "hạn nộp",
}

var deadlinePattern = regexp.MustCompile(
	`(?i)(` + strings.Join(deadlineKeywords, "|") + `)\s*:?\s*(.{10,50})`)

// departments is the HaUI unit gazetteer, matched case-insensitively.
var departments = []string{
	"Trường Công nghệ thông tin và Truyền thông",
	"Trường CNTT&TT", "SICT",
	"Khoa Công nghệ thông tin",
	"Khoa Điện tử", "Khoa Cơ khí",
	"Khoa Kinh tế", "Khoa Ngoại ngữ",
	"Phòng Đào tạo", "Phòng Công tác sinh viên",
	"Phòng Tài chính Kế toán",
	"Trung tâm Tuyển sinh",
	"Trung tâm Hỗ trợ sinh viên",
	"Thư viện", "Ký túc xá",
}

var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:số\s*)?\d+[A-Za-z]?\s+(?:đường|phố)\s+[^,\n]{5,50}`),
	regexp.MustCompile(`(?i)cơ sở\s+\d\s*[-:]\s*[^,\n]{10,100}`),
	regexp.MustCompile(`(?i)địa chỉ\s*:\s*[^,\n]{10,100}`),
}

// Extractor holds no state; extraction is deterministic, results keep first
// occurrence order.
type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// ExtractPhoneNumbers returns normalized Vietnamese phone numbers (separator
// characters stripped, at least 10 digits).
func (x *Extractor) ExtractPhoneNumbers(text string) []string {
	var phones []string
	seen := make(map[string]struct{})
	for _, p := range phonePatterns {
		for _, m := range p.FindAllString(text, -1) {
			phone := phoneSeparators.ReplaceAllString(m, "")
			if len(phone) < 10 {
				continue
			}
			if _, dup := seen[phone]; dup {
				continue
			}
			seen[phone] = struct{}{}
			phones = append(phones, phone)
		}
	}
	return phones
}

func (x *Extractor) ExtractEmails(text string) []string {
	return dedup(emailPattern.FindAllString(text, -1))
}

func (x *Extractor) ExtractURLs(text string) []string {
	return dedup(urlPattern.FindAllString(text, -1))
}

// ExtractDates finds every date mention. Full dates are calendar-validated;
// day-and-month mentions are kept without a year.
func (x *Extractor) ExtractDates(text string) []DateEntity {
	var dates []DateEntity
	seen := make(map[string]struct{})
	for _, g := range dateGrammars {
		for _, m := range g.re.FindAllStringSubmatch(text, -1) {
			raw := m[0]
			if _, dup := seen[raw]; dup {
				continue
			}
			seen[raw] = struct{}{}

			a, _ := strconv.Atoi(m[1])
			b, _ := strconv.Atoi(m[2])

			if g.kind == "vn_short" {
				dates = append(dates, DateEntity{Text: raw, Day: a, Month: b})
				continue
			}

			c, _ := strconv.Atoi(m[3])
			var day, month, year int
			if g.kind == "ymd" {
				year, month, day = a, b, c
			} else {
				day, month, year = a, b, c
			}
			if !validDate(year, month, day) {
				continue
			}
			dates = append(dates, DateEntity{
				Text:  raw,
				Day:   day,
				Month: month,
				Year:  year,
				ISO:   fmt.Sprintf("%04d-%02d-%02d", year, month, day),
			})
		}
	}
	return dates
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// ExtractDeadlines finds deadline keywords and re-runs date extraction over
// the trailing context window.
func (x *Extractor) ExtractDeadlines(text string) []Deadline {
	var deadlines []Deadline
	for _, m := range deadlinePattern.FindAllStringSubmatch(text, -1) {
		context := strings.TrimSpace(m[2])
		deadlines = append(deadlines, Deadline{
			Keyword: m[1],
			Text:    context,
			Dates:   x.ExtractDates(context),
		})
	}
	return deadlines
}

// ExtractDepartments matches the unit gazetteer case-insensitively,
// returning canonical names in gazetteer order.
func (x *Extractor) ExtractDepartments(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, dept := range departments {
		if strings.Contains(lower, strings.ToLower(dept)) {
			found = append(found, dept)
		}
	}
	return found
}

// ExtractAddresses applies street/campus/labeled-address heuristics.
func (x *Extractor) ExtractAddresses(text string) []string {
	var raw []string
	for _, p := range addressPatterns {
		raw = append(raw, p.FindAllString(text, -1)...)
	}
	for i, a := range raw {
		raw[i] = strings.TrimSpace(a)
	}
	return dedup(raw)
}

// ExtractAll runs every extractor over the text.
func (x *Extractor) ExtractAll(text string) *Entities {
	return &Entities{
		PhoneNumbers: x.ExtractPhoneNumbers(text),
		Emails:       x.ExtractEmails(text),
		Dates:        x.ExtractDates(text),
		Addresses:    x.ExtractAddresses(text),
		Departments:  x.ExtractDepartments(text),
		Deadlines:    x.ExtractDeadlines(text),
		URLs:         x.ExtractURLs(text),
	}
}

func dedup(items []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
