package uktext

import "sort"

// KnownPercentage returns the share of word tokens (counted per occurrence,
// not unique) whose normalized form is in known, as a percentage in [0,100].
// Learning words do not count as covered. A text with zero word tokens
// yields exactly 0.0.
func KnownPercentage(text string, known map[string]bool) float64 {
	total, hits := 0, 0
	scan(text, func(t Token) {
		if !t.IsWord {
			return
		}
		total++
		if known[NormalizeWord(t.Text)] {
			hits++
		}
	})
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total) * 100
}

// UnknownWords returns the unique normalized words of text that appear in
// neither set, sorted ascending by code point.
func UnknownWords(text string, known, learning map[string]bool) []string {
	seen := make(map[string]bool)
	unknown := make([]string, 0)
	scan(text, func(t Token) {
		if !t.IsWord {
			return
		}
		w := NormalizeWord(t.Text)
		if known[w] || learning[w] || seen[w] {
			return
		}
		seen[w] = true
		unknown = append(unknown, w)
	})
	sort.Strings(unknown)
	return unknown
}
