package uktext

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/rangetable"
)

// stressMarks holds the combining accents used to mark stress in learning
// texts: grave (U+0300) and acute (U+0301). Only these are stripped. The
// breve of й and the diaeresis of ї also decompose to combining marks under
// NFD, so dropping the whole Mn category would rewrite those letters to и
// and і; restricting removal to the stress accents lets NFC recompose them.
var stressMarks = rangetable.New('̀', '́')

// StripAccents removes stress-accent marks from s: the input is decomposed
// to NFD, combining grave and acute accents are dropped, and the result is
// recomposed to NFC. Ukrainian learning texts mark stress with a combining
// acute (U+0301) over the vowel; stripping it yields the dictionary spelling
// used for vocabulary lookup.
//
// The function is idempotent and returns the input unchanged when it carries
// no marks (aside from normalization form).
func StripAccents(s string) string {
	if s == "" {
		return s
	}
	// ASCII can hold no combining marks.
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}

	// Transformer chains carry state, so build one per call rather than
	// sharing a package-level instance across goroutines.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(stressMarks)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeWord derives the lookup key for a word: lowercased and
// accent-stripped. The annotator, the aggregator, and the vocabulary store
// all key words through this one function so a word classifies the same way
// everywhere.
func NormalizeWord(s string) string {
	return strings.ToLower(StripAccents(s))
}
