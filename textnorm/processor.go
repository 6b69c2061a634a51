// Package textnorm normalizes Vietnamese user queries before they reach the
// retrieval pipeline: Unicode NFC, abbreviation expansion, typo correction,
// slang replacement and whitespace cleanup.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// StageChange records a before/after snapshot for one pipeline stage.
type StageChange struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Result is the outcome of running the full normalization pipeline.
type Result struct {
	Original              string        `json:"original"`
	Processed             string        `json:"processed"`
	WasModified           bool          `json:"was_modified"`
	AbbreviationsExpanded []StageChange `json:"abbreviations_expanded"`
	TyposFixed            []StageChange `json:"typos_fixed"`
	SlangReplaced         []StageChange `json:"slang_replaced"`
}

// Processor runs the normalization stages in a fixed order. Safe for
// concurrent use; all tables are read-only after construction.
type Processor struct {
	fixTypos     bool
	expandAbbrev bool
	abbrev       *wordTable
	slang        *wordTable
}

// NewProcessor builds a processor with every stage enabled.
func NewProcessor() *Processor {
	return NewProcessorWith(true, true)
}

// NewProcessorWith allows disabling the typo-fix and abbreviation stages.
func NewProcessorWith(enableTypoFix, enableAbbrev bool) *Processor {
	return &Processor{
		fixTypos:     enableTypoFix,
		expandAbbrev: enableAbbrev,
		abbrev:       newWordTable(abbreviations),
		slang:        newWordTable(slangWords),
	}
}

// NormalizeUnicode applies NFC so Vietnamese characters compare consistently
// regardless of how the client composed them.
func (p *Processor) NormalizeUnicode(text string) string {
	return norm.NFC.String(text)
}

// ExpandAbbreviations rewrites known shorthand to its full form.
func (p *Processor) ExpandAbbreviations(text string) string {
	if !p.expandAbbrev {
		return text
	}
	return p.abbrev.Replace(text)
}

// FixTypos lowercases the text and applies the ordered typo table as plain
// substring replacement.
func (p *Processor) FixTypos(text string) string {
	if !p.fixTypos {
		return text
	}
	result := strings.ToLower(text)
	for _, tf := range commonTypos {
		result = strings.ReplaceAll(result, tf.Typo, tf.Fix)
	}
	return result
}

// ReplaceSlang swaps slang words for their standard equivalents.
func (p *Processor) ReplaceSlang(text string) string {
	return p.slang.Replace(text)
}

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	spaceBeforePunc = regexp.MustCompile(`\s+([,.!?;:])`)
)

// CleanWhitespace collapses whitespace runs and strips space before
// punctuation.
func (p *Processor) CleanWhitespace(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = spaceBeforePunc.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// Process runs all stages in order and reports what changed.
func (p *Processor) Process(text string) Result {
	res := Result{Original: text}

	text = p.NormalizeUnicode(text)

	before := text
	text = p.ExpandAbbreviations(text)
	if before != text {
		res.AbbreviationsExpanded = append(res.AbbreviationsExpanded, StageChange{Before: before, After: text})
	}

	before = text
	text = p.FixTypos(text)
	if !strings.EqualFold(before, text) {
		res.TyposFixed = append(res.TyposFixed, StageChange{Before: before, After: text})
	}

	before = text
	text = p.ReplaceSlang(text)
	if !strings.EqualFold(before, text) {
		res.SlangReplaced = append(res.SlangReplaced, StageChange{Before: before, After: text})
	}

	text = p.CleanWhitespace(text)

	res.Processed = text
	res.WasModified = !strings.EqualFold(res.Original, text)
	return res
}

// Normalize is the plain-string convenience form of Process.
func (p *Processor) Normalize(text string) string {
	return p.Process(text).Processed
}
