package ops

import (
	"strings"

	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/uktext"
)

// TextStatsInput contains parameters for the TextStats operation.
type TextStatsInput struct {
	Identifier string
}

// TextStatsOutput contains coverage statistics for one text.
type TextStatsOutput struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	WordCount       int      `json:"word_count"`
	UniqueWords     int      `json:"unique_words"`
	KnownPercentage float64  `json:"known_percentage"`
	UnknownWords    []string `json:"unknown_words"`
	TimesRead       int      `json:"times_read"`
}

// TextStats reports how much of a text the user's vocabulary covers.
func TextStats(env *Env, input TextStatsInput) (*TextStatsOutput, error) {
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

	unique := make(map[string]bool)
	for _, w := range uktext.ExtractWords(text.Content) {
		unique[w] = true
	}

	timesRead := 0
	if progress, err := env.Content.TextProgress(text.ID); err != nil {
		return nil, err
	} else if progress != nil {
		timesRead = progress.TimesRead
	}

	return &TextStatsOutput{
		ID:              text.ID,
		Title:           text.Title,
		WordCount:       uktext.CountWords(text.Content),
		UniqueWords:     len(unique),
		KnownPercentage: uktext.KnownPercentage(text.Content, known),
		UnknownWords:    uktext.UnknownWords(text.Content, known, learning),
		TimesRead:       timesRead,
	}, nil
}

// VocabStatsOutput contains vocabulary counts by stage.
type VocabStatsOutput struct {
	Known    int `json:"known"`
	Learning int `json:"learning"`
	New      int `json:"new"`
	Total    int `json:"total"`
}

// VocabStats returns word counts by stage across the whole vocabulary.
func VocabStats(env *Env) (*VocabStatsOutput, error) {
	stats, err := env.Vocab.Stats()
	if err != nil {
		return nil, err
	}
	out := &VocabStatsOutput{
		Known:    stats[uktext.StageKnown],
		Learning: stats[uktext.StageLearning],
		New:      stats[uktext.StageNew],
	}
	out.Total = out.Known + out.Learning + out.New
	return out, nil
}
