package ops

import (
	"strings"

	"github.com/chytanka/chytanka/internal/db"
	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/uktext"
)

// ListWordsInput contains parameters for the ListWords operation.
type ListWordsInput struct {
	// Stage filters by learning stage when non-empty.
	Stage string
}

// ListWordsOutput contains the matching vocabulary entries.
type ListWordsOutput struct {
	Words []*db.Word `json:"words"`
}

// ListWords returns vocabulary entries, optionally filtered by stage.
func ListWords(env *Env, input ListWordsInput) (*ListWordsOutput, error) {
	if strings.TrimSpace(input.Stage) == "" {
		words, err := env.Vocab.AllWords()
		if err != nil {
			return nil, err
		}
		return &ListWordsOutput{Words: words}, nil
	}

	stage, err := ParseStage(input.Stage)
	if err != nil {
		return nil, err
	}
	words, err := env.Vocab.WordsByStage(stage)
	if err != nil {
		return nil, err
	}
	return &ListWordsOutput{Words: words}, nil
}

// GetWordInput contains parameters for the GetWord operation.
type GetWordInput struct {
	Word string
}

// GetWordOutput contains the stored entry and its resolved stage.
type GetWordOutput struct {
	Word  *db.Word     `json:"word,omitempty"`
	Stage uktext.Stage `json:"stage"`
}

// GetWord looks up one word. A word with no stored entry resolves to the new
// stage with a nil entry rather than an error.
func GetWord(env *Env, input GetWordInput) (*GetWordOutput, error) {
	if strings.TrimSpace(input.Word) == "" {
		return nil, errors.NewInvalidRequest("word is required")
	}

	stage, err := env.Vocab.Stage(input.Word)
	if err != nil {
		return nil, err
	}
	out := &GetWordOutput{Stage: stage}

	entry, err := env.Vocab.Word(input.Word)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return out, nil
		}
		return nil, err
	}
	out.Word = entry
	return out, nil
}
