package content

import (
	"strings"
	"unicode/utf8"

	"github.com/chytanka/chytanka/internal/uktext"
)

// LintInput contains parameters for linting a text before it is stored.
type LintInput struct {
	Title    string
	Content  string
	MaxChars int
}

// LintResult reports what is wrong with a text, if anything.
type LintResult struct {
	Valid        bool
	MissingTitle bool
	Empty        bool
	NoUkrainian  bool
	TooLarge     bool
	ActualChars  int
	MaxChars     int
	WordCount    int
}

// Lint validates a text. A text must have a title, contain at least one
// Ukrainian word, and fit within MaxChars runes (0 disables the size check).
func Lint(input LintInput) *LintResult {
	result := &LintResult{
		Valid:       true,
		ActualChars: utf8.RuneCountInString(input.Content),
		MaxChars:    input.MaxChars,
		WordCount:   uktext.CountWords(input.Content),
	}

	if strings.TrimSpace(input.Title) == "" {
		result.MissingTitle = true
		result.Valid = false
	}
	if strings.TrimSpace(input.Content) == "" {
		result.Empty = true
		result.Valid = false
	}
	if !result.Empty && result.WordCount == 0 {
		result.NoUkrainian = true
		result.Valid = false
	}
	if input.MaxChars > 0 && result.ActualChars > input.MaxChars {
		result.TooLarge = true
		result.Valid = false
	}

	return result
}
