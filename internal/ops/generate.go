package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/chytanka/chytanka/internal/content"
	"github.com/chytanka/chytanka/internal/errors"
)

// GenerateTextInput contains parameters for the GenerateText operation.
type GenerateTextInput struct {
	Topic      string
	Difficulty string // default: beginner
	Length     string // short, medium, or long
}

// GenerateText asks the AI provider for a new reading text on a topic and
// stores it.
func GenerateText(ctx context.Context, env *Env, input GenerateTextInput) (*AddTextOutput, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return nil, errors.NewInvalidRequest("topic is required")
	}
	gen, err := env.generator()
	if err != nil {
		return nil, err
	}

	text, err := gen.GenerateText(ctx, strings.TrimSpace(input.Topic), input.Difficulty, input.Length)
	if err != nil {
		return nil, err
	}

	lint := content.Lint(content.LintInput{
		Title:    text.Title,
		Content:  text.Content,
		MaxChars: env.Config.TextMaxChars,
	})
	if !lint.Valid {
		return nil, errors.NewProviderUnavailable(gen.ProviderName(),
			fmt.Errorf("generated text failed validation"))
	}

	if err := env.Content.SaveText(text); err != nil {
		return nil, err
	}
	return &AddTextOutput{
		ID:        text.ID,
		Title:     text.Title,
		WordCount: lint.WordCount,
	}, nil
}

// GenerateWordListInput contains parameters for the GenerateWordList
// operation.
type GenerateWordListInput struct {
	Theme string
	Count int // default: DefaultWordListSize
}

// GenerateWordListOutput contains the stored word list.
type GenerateWordListOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

// GenerateWordList asks the AI provider for themed vocabulary and stores the
// result as a word list.
func GenerateWordList(ctx context.Context, env *Env, input GenerateWordListInput) (*GenerateWordListOutput, error) {
	if strings.TrimSpace(input.Theme) == "" {
		return nil, errors.NewInvalidRequest("theme is required")
	}
	count := input.Count
	if count == 0 {
		count = DefaultWordListSize
	}
	if count < 0 || count > MaxWordListSize {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("count must be between 1 and %d", MaxWordListSize))
	}
	gen, err := env.generator()
	if err != nil {
		return nil, err
	}

	list, err := gen.GenerateWordList(ctx, strings.TrimSpace(input.Theme), count)
	if err != nil {
		return nil, err
	}
	if len(list.Words) == 0 {
		return nil, errors.NewProviderUnavailable(gen.ProviderName(),
			fmt.Errorf("response contained no word entries"))
	}

	if err := env.Content.SaveWordList(list); err != nil {
		return nil, err
	}
	return &GenerateWordListOutput{ID: list.ID, Title: list.Title, Count: len(list.Words)}, nil
}

// GenerateGrammarInput contains parameters for the GenerateGrammar operation.
type GenerateGrammarInput struct {
	Topic string
}

// GenerateGrammarOutput contains the stored grammar note.
type GenerateGrammarOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// GenerateGrammar asks the AI provider for a grammar explanation and stores
// it as a grammar note.
func GenerateGrammar(ctx context.Context, env *Env, input GenerateGrammarInput) (*GenerateGrammarOutput, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return nil, errors.NewInvalidRequest("topic is required")
	}
	gen, err := env.generator()
	if err != nil {
		return nil, err
	}

	note, err := gen.GenerateGrammarNote(ctx, strings.TrimSpace(input.Topic))
	if err != nil {
		return nil, err
	}
	if err := env.Content.SaveGrammar(note); err != nil {
		return nil, err
	}
	return &GenerateGrammarOutput{ID: note.ID, Title: note.Title}, nil
}

// AnalyzeVocabularyInput contains parameters for the AnalyzeVocabulary
// operation.
type AnalyzeVocabularyInput struct {
	// Stage filters which words are analyzed. Empty means learning.
	Stage string
}

// AnalyzeVocabularyOutput contains the analysis text.
type AnalyzeVocabularyOutput struct {
	Analysis  string `json:"analysis"`
	WordCount int    `json:"word_count"`
}

// AnalyzeVocabulary sends the user's words of one stage to the AI provider
// for lemma grouping and study suggestions.
func AnalyzeVocabulary(ctx context.Context, env *Env, input AnalyzeVocabularyInput) (*AnalyzeVocabularyOutput, error) {
	stageName := input.Stage
	if strings.TrimSpace(stageName) == "" {
		stageName = "learning"
	}
	stage, err := ParseStage(stageName)
	if err != nil {
		return nil, err
	}
	gen, err := env.generator()
	if err != nil {
		return nil, err
	}

	entries, err := env.Vocab.WordsByStage(stage)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("no %s words to analyze", stage))
	}
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}

	analysis, err := gen.AnalyzeVocabulary(ctx, words)
	if err != nil {
		return nil, err
	}
	return &AnalyzeVocabularyOutput{Analysis: analysis, WordCount: len(words)}, nil
}
