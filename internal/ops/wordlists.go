package ops

import (
	"strings"

	"github.com/chytanka/chytanka/internal/content"
	"github.com/chytanka/chytanka/internal/errors"
)

// AddWordListInput contains parameters for the AddWordList operation.
type AddWordListInput struct {
	Title string
	Theme string // default: general
}

// AddWordListOutput contains the stored list's identity.
type AddWordListOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Theme string `json:"theme"`
}

// AddWordList creates an empty word list to fill with AddListWord.
func AddWordList(env *Env, input AddWordListInput) (*AddWordListOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.NewInvalidRequest("title is required")
	}

	list := content.NewWordList(title, strings.TrimSpace(input.Theme))
	if err := env.Content.SaveWordList(list); err != nil {
		return nil, err
	}
	return &AddWordListOutput{ID: list.ID, Title: list.Title, Theme: list.Theme}, nil
}

// ListWordListsOutput contains word list summaries, newest first.
type ListWordListsOutput struct {
	Lists []content.Summary `json:"lists"`
}

// ListWordLists returns summaries of all stored word lists.
func ListWordLists(env *Env) (*ListWordListsOutput, error) {
	lists, err := env.Content.ListWordLists()
	if err != nil {
		return nil, err
	}
	return &ListWordListsOutput{Lists: lists}, nil
}

// GetWordListInput contains parameters for the GetWordList operation.
type GetWordListInput struct {
	ID string
}

// GetWordList returns one word list by ID.
func GetWordList(env *Env, input GetWordListInput) (*content.WordList, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, errors.NewInvalidRequest("word list id is required")
	}
	return env.Content.GetWordList(strings.TrimSpace(input.ID))
}

// DeleteWordListInput contains parameters for the DeleteWordList operation.
type DeleteWordListInput struct {
	ID string
}

// DeleteWordList removes a stored word list.
func DeleteWordList(env *Env, input DeleteWordListInput) error {
	if strings.TrimSpace(input.ID) == "" {
		return errors.NewInvalidRequest("word list id is required")
	}
	return env.Content.DeleteWordList(strings.TrimSpace(input.ID))
}

// AddListWordInput contains parameters for the AddListWord operation.
type AddListWordInput struct {
	ListID      string
	Word        string
	Translation string
	Notes       string
}

// AddListWord appends one word entry to a stored list.
func AddListWord(env *Env, input AddListWordInput) error {
	if strings.TrimSpace(input.ListID) == "" {
		return errors.NewInvalidRequest("word list id is required")
	}
	word := strings.TrimSpace(input.Word)
	if word == "" {
		return errors.NewInvalidRequest("word is required")
	}
	translation := strings.TrimSpace(input.Translation)
	if translation == "" {
		return errors.NewInvalidRequest("translation is required")
	}
	return env.Content.AddWordToList(strings.TrimSpace(input.ListID), word, translation, cleanOptionalString(input.Notes))
}

// ImportWordListInput contains parameters for the ImportWordList operation.
type ImportWordListInput struct {
	ID string
}

// ImportWordListOutput reports how many entries entered the vocabulary.
type ImportWordListOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

// ImportWordList copies every entry of a word list into the vocabulary with
// its translation. Words already in the vocabulary keep their stage.
func ImportWordList(env *Env, input ImportWordListInput) (*ImportWordListOutput, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, errors.NewInvalidRequest("word list id is required")
	}
	id := strings.TrimSpace(input.ID)
	list, err := env.Content.GetWordList(id)
	if err != nil {
		return nil, err
	}
	count, err := env.Content.ImportWordList(id, env.Vocab)
	if err != nil {
		return nil, err
	}
	return &ImportWordListOutput{ID: list.ID, Title: list.Title, Count: count}, nil
}
