package uktext

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// LinesAnnotated yields one annotated token batch per line of text, split on
// '\n' (a trailing newline yields a trailing empty line). Each line is
// tokenized and annotated independently, then every token's Start/End is
// shifted by the rune lengths of all prior lines plus one per consumed
// newline, so the yielded offsets are absolute positions in text, not
// line-relative ones. A renderer can therefore repaint one line at a time
// while cursor and selection logic keeps working against the whole string.
//
// The sequence is finite and single-use; each call re-scans from the start.
func LinesAnnotated(text string, known, learning map[string]bool) iter.Seq[[]AnnotatedToken] {
	return func(yield func([]AnnotatedToken) bool) {
		offset := 0
		for _, line := range strings.Split(text, "\n") {
			annotated := Annotate(line, known, learning)
			tokens := annotated.Tokens
			for i := range tokens {
				tokens[i].Start += offset
				tokens[i].End += offset
			}
			if !yield(tokens) {
				return
			}
			offset += utf8.RuneCountInString(line) + 1
		}
	}
}
