// Package uktext tokenizes Ukrainian text and overlays per-word learning
// stages onto it.
//
// The package provides two layers:
//
//   - Tokenization: Tokenize splits text into word and non-word spans with
//     character offsets. Tokens are contiguous and ordered; concatenating
//     their Text fields reconstructs the input byte for byte, and
//     token[i].End == token[i+1].Start for every i.
//
//   - Annotation: Annotate resolves a learning Stage for every word token
//     against caller-supplied known/learning sets, and LinesAnnotated
//     re-chunks the annotated stream by line while keeping offsets absolute.
//
// Word lookup uses NormalizeWord (lowercased, stress accents stripped); the
// raw token text is never altered. All functions are pure and safe for
// concurrent use by multiple goroutines; the known/learning sets are only
// read, never mutated.
package uktext

import "fmt"

// Stage is a learner's familiarity level with a word.
type Stage string

const (
	StageNew      Stage = "new"
	StageLearning Stage = "learning"
	StageKnown    Stage = "known"
)

// Valid reports whether s is one of the three defined stages.
func (s Stage) Valid() bool {
	return s == StageNew || s == StageLearning || s == StageKnown
}

// Token represents a contiguous span of source text.
//
// Start and End are character (rune) offsets into the source, End exclusive,
// so they line up with cursor positions in a rendered line rather than with
// byte indices. Text is the exact source substring.
type Token struct {
	Text   string `json:"text"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	IsWord bool   `json:"is_word"`
}

// String returns a debug representation, e.g. Word("світ")[8:12].
func (t Token) String() string {
	kind := "Other"
	if t.IsWord {
		kind = "Word"
	}
	return fmt.Sprintf("%s(%q)[%d:%d]", kind, t.Text, t.Start, t.End)
}

// AnnotatedToken is a Token plus its resolved learning stage.
// Non-word tokens always carry StageNew as a neutral placeholder.
type AnnotatedToken struct {
	Token
	Stage Stage `json:"stage"`
}

// AnnotatedText is the original string with its full ordered token list.
// It is built fresh on every Annotate call and never mutated in place; a
// stage change requires re-annotating with updated sets.
type AnnotatedText struct {
	Original string
	Tokens   []AnnotatedToken
}

// Words returns only the word tokens.
func (a AnnotatedText) Words() []AnnotatedToken {
	words := make([]AnnotatedToken, 0, len(a.Tokens)/2)
	for _, t := range a.Tokens {
		if t.IsWord {
			words = append(words, t)
		}
	}
	return words
}

// UniqueWords returns the set of normalized word forms in the text.
func (a AnnotatedText) UniqueWords() map[string]bool {
	unique := make(map[string]bool)
	for _, t := range a.Tokens {
		if t.IsWord {
			unique[NormalizeWord(t.Text)] = true
		}
	}
	return unique
}
