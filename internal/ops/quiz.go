package ops

import (
	"fmt"

	"github.com/chytanka/chytanka/internal/db"
	"github.com/chytanka/chytanka/internal/errors"
)

// QuizInput contains parameters for the Quiz operation.
type QuizInput struct {
	// Count is the number of words to quiz. Zero means the default.
	Count int
}

// QuizOutput contains the selected quiz words.
type QuizOutput struct {
	Words []*db.Word `json:"words"`
}

// Quiz selects words for a translation quiz. Learning words with stored
// translations come first; known words fill any remainder.
func Quiz(env *Env, input QuizInput) (*QuizOutput, error) {
	count := input.Count
	if count == 0 {
		count = DefaultQuizCount
	}
	if count < 0 || count > MaxQuizCount {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("count must be between 1 and %d", MaxQuizCount))
	}

	words, err := env.Vocab.QuizWords(count)
	if err != nil {
		return nil, err
	}
	return &QuizOutput{Words: words}, nil
}
