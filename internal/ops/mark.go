package ops

import (
	"fmt"
	"strings"

	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/uktext"
)

// MarkWordsInput contains parameters for the MarkWords operation.
type MarkWordsInput struct {
	Words []string
	Stage string
}

// MarkWordsOutput reports how many words were updated.
type MarkWordsOutput struct {
	Count int          `json:"count"`
	Stage uktext.Stage `json:"stage"`
}

// MarkWords sets the learning stage for a batch of words.
func MarkWords(env *Env, input MarkWordsInput) (*MarkWordsOutput, error) {
	stage, err := ParseStage(input.Stage)
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, len(input.Words))
	for _, w := range input.Words {
		if strings.TrimSpace(w) != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return nil, errors.NewInvalidRequest("at least one word is required")
	}
	if len(words) > MaxBulkMarkWords {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("too many words: %d exceeds the limit of %d", len(words), MaxBulkMarkWords))
	}

	if err := env.Vocab.BulkSetStage(words, stage); err != nil {
		return nil, err
	}
	return &MarkWordsOutput{Count: len(words), Stage: stage}, nil
}

// SetWordInput contains parameters for the SetWord operation.
type SetWordInput struct {
	Word        string
	Stage       string
	Translation string
	Notes       string
}

// SetWordOutput echoes the saved word entry.
type SetWordOutput struct {
	Word        string       `json:"word"`
	Stage       uktext.Stage `json:"stage"`
	Translation *string      `json:"translation,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
}

// SetWord updates a single word's stage and optionally its translation and
// notes. The word is created if it does not exist yet.
func SetWord(env *Env, input SetWordInput) (*SetWordOutput, error) {
	if strings.TrimSpace(input.Word) == "" {
		return nil, errors.NewInvalidRequest("word is required")
	}
	stage, err := ParseStage(input.Stage)
	if err != nil {
		return nil, err
	}

	if err := env.Vocab.SetStage(input.Word, stage); err != nil {
		return nil, err
	}
	if translation := strings.TrimSpace(input.Translation); translation != "" {
		if err := env.Vocab.SetTranslation(input.Word, translation, cleanOptionalString(input.Notes)); err != nil {
			return nil, err
		}
	}

	saved, err := env.Vocab.Word(input.Word)
	if err != nil {
		return nil, err
	}
	return &SetWordOutput{
		Word:        saved.Word,
		Stage:       saved.Stage,
		Translation: saved.Translation,
		Notes:       saved.Notes,
	}, nil
}

// DeleteWordInput contains parameters for the DeleteWord operation.
type DeleteWordInput struct {
	Word string
}

// DeleteWord removes a word from the vocabulary.
func DeleteWord(env *Env, input DeleteWordInput) error {
	if strings.TrimSpace(input.Word) == "" {
		return errors.NewInvalidRequest("word is required")
	}
	return env.Vocab.DeleteWord(input.Word)
}
