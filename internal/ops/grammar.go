package ops

import (
	"strings"

	"github.com/chytanka/chytanka/internal/content"
	"github.com/chytanka/chytanka/internal/errors"
)

// AddGrammarInput contains parameters for the AddGrammar operation.
type AddGrammarInput struct {
	Title   string
	Content string // markdown
	Tags    []string
}

// AddGrammarOutput contains the stored note's identity.
type AddGrammarOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// AddGrammar stores a hand-written grammar note.
func AddGrammar(env *Env, input AddGrammarInput) (*AddGrammarOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.NewInvalidRequest("title is required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, errors.NewInvalidRequest("content is required")
	}

	note := content.NewGrammarNote(title, input.Content)
	note.Tags = input.Tags
	if err := env.Content.SaveGrammar(note); err != nil {
		return nil, err
	}
	return &AddGrammarOutput{ID: note.ID, Title: note.Title}, nil
}

// ListGrammarOutput contains grammar note summaries, newest first.
type ListGrammarOutput struct {
	Notes []content.Summary `json:"notes"`
}

// ListGrammar returns summaries of all stored grammar notes.
func ListGrammar(env *Env) (*ListGrammarOutput, error) {
	notes, err := env.Content.ListGrammar()
	if err != nil {
		return nil, err
	}
	return &ListGrammarOutput{Notes: notes}, nil
}

// GetGrammarInput contains parameters for the GetGrammar operation.
type GetGrammarInput struct {
	ID string
}

// GetGrammar returns one grammar note by ID.
func GetGrammar(env *Env, input GetGrammarInput) (*content.GrammarNote, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, errors.NewInvalidRequest("grammar note id is required")
	}
	return env.Content.GetGrammar(strings.TrimSpace(input.ID))
}

// DeleteGrammarInput contains parameters for the DeleteGrammar operation.
type DeleteGrammarInput struct {
	ID string
}

// DeleteGrammar removes a stored grammar note.
func DeleteGrammar(env *Env, input DeleteGrammarInput) error {
	if strings.TrimSpace(input.ID) == "" {
		return errors.NewInvalidRequest("grammar note id is required")
	}
	return env.Content.DeleteGrammar(strings.TrimSpace(input.ID))
}
