package textnorm

import (
	"sort"
	"strings"
	"unicode"
)

// wordTable replaces dictionary keys found on word boundaries, longest key
// first. regexp's \b only understands ASCII, so boundaries are detected over
// runes directly; keys like "đh" or "sđt" would otherwise never match.
type wordTable struct {
	repl map[string]string
	keys [][]rune // lowercase, sorted by length descending
}

func newWordTable(entries map[string]string) *wordTable {
	keys := make([][]rune, 0, len(entries))
	for k := range entries {
		keys = append(keys, []rune(k))
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return string(keys[i]) < string(keys[j])
	})
	return &wordTable{repl: entries, keys: keys}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Replace rewrites every boundary-delimited key occurrence in s, preserving
// all other text (including its case).
func (t *wordTable) Replace(s string) string {
	runes := []rune(s)
	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}

	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(runes) {
		atWordStart := isWordRune(lower[i]) && (i == 0 || !isWordRune(lower[i-1]))
		if atWordStart {
			if end, repl, ok := t.matchAt(lower, i); ok {
				b.WriteString(repl)
				i = end
				continue
			}
		}
		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

func (t *wordTable) matchAt(lower []rune, i int) (int, string, bool) {
	for _, key := range t.keys {
		end := i + len(key)
		if end > len(lower) {
			continue
		}
		match := true
		for j, kr := range key {
			if lower[i+j] != kr {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		if end < len(lower) && isWordRune(lower[end]) {
			continue
		}
		return end, t.repl[string(key)], true
	}
	return 0, "", false
}
