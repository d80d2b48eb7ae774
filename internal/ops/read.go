package ops

import (
	"strings"

	"github.com/chytanka/chytanka/internal/content"
	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/uktext"
)

// ReadTextInput contains parameters for the ReadText operation.
type ReadTextInput struct {
	Identifier string
	// SkipProgress leaves the read counter untouched. The web UI sets it
	// for page refreshes.
	SkipProgress bool
}

// ReadTextOutput contains a text annotated for display.
type ReadTextOutput struct {
	Text            *content.Text             `json:"text"`
	Lines           [][]uktext.AnnotatedToken `json:"lines"`
	WordCount       int                       `json:"word_count"`
	KnownPercentage float64                   `json:"known_percentage"`
	UnknownWords    []string                  `json:"unknown_words"`
}

// ReadText loads a text, annotates every token with its vocabulary stage,
// and records the read.
func ReadText(env *Env, input ReadTextInput) (*ReadTextOutput, error) {
	if strings.TrimSpace(input.Identifier) == "" {
		return nil, errors.NewInvalidRequest("text identifier is required")
	}

	text, err := env.Content.FindText(strings.TrimSpace(input.Identifier))
	if err != nil {
		return nil, err
	}

	known, learning, err := env.Vocab.Sets()
	if err != nil {
		return nil, err
	}

	var lines [][]uktext.AnnotatedToken
	for tokens := range uktext.LinesAnnotated(text.Content, known, learning) {
		lines = append(lines, tokens)
	}

	if !input.SkipProgress {
		if err := env.Content.RecordTextRead(text.ID); err != nil {
			return nil, err
		}
	}

	return &ReadTextOutput{
		Text:            text,
		Lines:           lines,
		WordCount:       uktext.CountWords(text.Content),
		KnownPercentage: uktext.KnownPercentage(text.Content, known),
		UnknownWords:    uktext.UnknownWords(text.Content, known, learning),
	}, nil
}
