package ops

import (
	"strings"

	"github.com/chytanka/chytanka/internal/content"
	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/uktext"
)

// AddTextInput contains parameters for the AddText operation.
type AddTextInput struct {
	Title      string
	Content    string
	Difficulty string // default: beginner
	Tags       []string
	Source     string // default: manual
}

// AddTextOutput contains the result of the AddText operation.
type AddTextOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	WordCount int    `json:"word_count"`
}

// AddText validates and stores a new reading text.
func AddText(env *Env, input AddTextInput) (*AddTextOutput, error) {
	lint := content.Lint(content.LintInput{
		Title:    input.Title,
		Content:  input.Content,
		MaxChars: env.Config.TextMaxChars,
	})
	if lint.TooLarge {
		return nil, errors.NewContentTooLarge(lint.MaxChars, lint.ActualChars)
	}
	if lint.MissingTitle {
		return nil, errors.NewInvalidRequest("title is required")
	}
	if lint.Empty {
		return nil, errors.NewInvalidRequest("content is required")
	}
	if lint.NoUkrainian {
		return nil, errors.NewInvalidRequest("content contains no Ukrainian words")
	}

	text := content.NewText(strings.TrimSpace(input.Title), input.Content)
	if input.Difficulty != "" {
		text.Difficulty = input.Difficulty
	}
	if input.Source != "" {
		text.Source = input.Source
	}
	text.Tags = input.Tags

	if err := env.Content.SaveText(text); err != nil {
		return nil, err
	}

	return &AddTextOutput{
		ID:        text.ID,
		Title:     text.Title,
		WordCount: lint.WordCount,
	}, nil
}

// TextListItem is one entry in a text listing.
type TextListItem struct {
	content.Summary
	TimesRead int   `json:"times_read"`
	LastRead  int64 `json:"last_read,omitempty"`
}

// ListTextsOutput contains the result of the ListTexts operation.
type ListTextsOutput struct {
	Items []TextListItem `json:"items"`
	Total int            `json:"total"`
}

// ListTexts returns all texts with their reading progress, newest first.
func ListTexts(env *Env) (*ListTextsOutput, error) {
	summaries, err := env.Content.ListTexts()
	if err != nil {
		return nil, err
	}

	items := make([]TextListItem, 0, len(summaries))
	for _, s := range summaries {
		item := TextListItem{Summary: s}
		progress, err := env.Content.TextProgress(s.ID)
		if err != nil {
			return nil, err
		}
		if progress != nil {
			item.TimesRead = progress.TimesRead
			item.LastRead = progress.LastRead
		}
		items = append(items, item)
	}

	return &ListTextsOutput{Items: items, Total: len(items)}, nil
}

// GetTextInput contains parameters for the GetText operation.
type GetTextInput struct {
	Identifier string // ID or exact title
}

// GetTextOutput contains the result of the GetText operation.
type GetTextOutput struct {
	Text      *content.Text `json:"text"`
	WordCount int           `json:"word_count"`
}

// GetText resolves a text by ID or title.
func GetText(env *Env, input GetTextInput) (*GetTextOutput, error) {
	if strings.TrimSpace(input.Identifier) == "" {
		return nil, errors.NewInvalidRequest("text identifier is required")
	}
	text, err := env.Content.FindText(strings.TrimSpace(input.Identifier))
	if err != nil {
		return nil, err
	}
	return &GetTextOutput{
		Text:      text,
		WordCount: uktext.CountWords(text.Content),
	}, nil
}

// DeleteTextInput contains parameters for the DeleteText operation.
type DeleteTextInput struct {
	Identifier string
}

// DeleteTextOutput contains the result of the DeleteText operation.
type DeleteTextOutput struct {
	ID string `json:"id"`
}

// DeleteText removes a text.
func DeleteText(env *Env, input DeleteTextInput) (*DeleteTextOutput, error) {
	text, err := env.Content.FindText(strings.TrimSpace(input.Identifier))
	if err != nil {
		return nil, err
	}
	if err := env.Content.DeleteText(text.ID); err != nil {
		return nil, err
	}
	return &DeleteTextOutput{ID: text.ID}, nil
}

// SearchTextsInput contains parameters for the SearchTexts operation.
type SearchTextsInput struct {
	Query string
}

// SearchTextsOutput contains the result of the SearchTexts operation.
type SearchTextsOutput struct {
	Items []content.Summary `json:"items"`
	Total int               `json:"total"`
}

// SearchTexts finds texts whose title or content contains the query,
// case-insensitively.
func SearchTexts(env *Env, input SearchTextsInput) (*SearchTextsOutput, error) {
	query := strings.ToLower(strings.TrimSpace(input.Query))
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}

	summaries, err := env.Content.ListTexts()
	if err != nil {
		return nil, err
	}

	var items []content.Summary
	for _, s := range summaries {
		if strings.Contains(strings.ToLower(s.Title), query) {
			items = append(items, s)
			continue
		}
		text, err := env.Content.GetText(s.ID)
		if err != nil {
			return nil, err
		}
		if strings.Contains(strings.ToLower(text.Content), query) {
			items = append(items, s)
		}
	}

	return &SearchTextsOutput{Items: items, Total: len(items)}, nil
}
