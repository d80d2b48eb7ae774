package ops

import (
	"context"
	"strings"

	"github.com/chytanka/chytanka/internal/db"
	"github.com/chytanka/chytanka/internal/errors"
)

// ExplainWordInput contains parameters for the ExplainWord operation.
type ExplainWordInput struct {
	Word string
	// Sentence is optional surrounding context for the explanation.
	Sentence string
}

// ExplainWordOutput contains the explanation text.
type ExplainWordOutput struct {
	Word        string `json:"word"`
	Explanation string `json:"explanation"`
}

// ExplainWord asks the AI provider for a learner-oriented explanation of a
// word, optionally in the context of a sentence.
func ExplainWord(ctx context.Context, env *Env, input ExplainWordInput) (*ExplainWordOutput, error) {
	word := strings.TrimSpace(input.Word)
	if word == "" {
		return nil, errors.NewInvalidRequest("word is required")
	}
	gen, err := env.generator()
	if err != nil {
		return nil, err
	}

	explanation, err := gen.ExplainWord(ctx, word, strings.TrimSpace(input.Sentence))
	if err != nil {
		return nil, err
	}
	return &ExplainWordOutput{Word: word, Explanation: explanation}, nil
}

// WordInfoInput contains parameters for the WordInfo operation.
type WordInfoInput struct {
	Word     string
	Sentence string
	// Refresh bypasses the cache and stores a fresh response.
	Refresh bool
}

// WordInfoOutput contains the info text and whether it came from the cache.
type WordInfoOutput struct {
	Word   string `json:"word"`
	Info   string `json:"info"`
	Cached bool   `json:"cached"`
}

// WordInfo returns a structured reference entry for a word. Responses are
// cached in the database; context-free lookups hit the cache first.
func WordInfo(ctx context.Context, env *Env, input WordInfoInput) (*WordInfoOutput, error) {
	return tokenInfo(ctx, env, input, "word")
}

// PhraseInfo returns a structured reference entry for a multi-word phrase.
// Responses are cached the same way as WordInfo.
func PhraseInfo(ctx context.Context, env *Env, input WordInfoInput) (*WordInfoOutput, error) {
	return tokenInfo(ctx, env, input, "phrase")
}

func tokenInfo(ctx context.Context, env *Env, input WordInfoInput, infoType string) (*WordInfoOutput, error) {
	target := strings.TrimSpace(input.Word)
	if target == "" {
		return nil, errors.NewInvalidRequest(infoType + " is required")
	}
	sentence := strings.TrimSpace(input.Sentence)

	// A contextual lookup is specific to its sentence, so only
	// context-free responses are cached.
	if sentence == "" && !input.Refresh {
		cached, err := db.GetWordInfo(env.DB, target)
		if err != nil {
			return nil, err
		}
		if cached != "" {
			return &WordInfoOutput{Word: target, Info: cached, Cached: true}, nil
		}
	}

	gen, err := env.generator()
	if err != nil {
		return nil, err
	}

	var info string
	if infoType == "phrase" {
		info, err = gen.PhraseInfo(ctx, target, sentence)
	} else {
		info, err = gen.WordInfo(ctx, target, sentence)
	}
	if err != nil {
		return nil, err
	}

	if sentence == "" {
		if err := db.SaveWordInfo(env.DB, target, infoType, info); err != nil {
			return nil, err
		}
	}
	return &WordInfoOutput{Word: target, Info: info}, nil
}

// TranslateWordInput contains parameters for the TranslateWord operation.
type TranslateWordInput struct {
	Word string
	// Save stores the translation in the vocabulary.
	Save bool
}

// TranslateWordOutput contains the translation and where it came from.
type TranslateWordOutput struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Source      string `json:"source"` // wordlist or ai
}

// TranslateWord translates a single word to English. Stored word lists are
// consulted before the AI provider.
func TranslateWord(ctx context.Context, env *Env, input TranslateWordInput) (*TranslateWordOutput, error) {
	word := strings.TrimSpace(input.Word)
	if word == "" {
		return nil, errors.NewInvalidRequest("word is required")
	}

	translation, err := env.Content.LookupTranslation(word)
	if err != nil {
		return nil, err
	}
	source := "wordlist"
	if translation == "" {
		gen, err := env.generator()
		if err != nil {
			return nil, err
		}
		translation, err = gen.TranslateWord(ctx, word)
		if err != nil {
			return nil, err
		}
		source = "ai"
	}

	if input.Save && translation != "" {
		if err := env.Vocab.SetTranslation(word, translation, nil); err != nil {
			return nil, err
		}
	}
	return &TranslateWordOutput{Word: word, Translation: translation, Source: source}, nil
}

// ClearInfoCacheOutput reports how many cached entries were removed.
type ClearInfoCacheOutput struct {
	Removed int `json:"removed"`
}

// ClearInfoCache empties the word info cache.
func ClearInfoCache(env *Env) (*ClearInfoCacheOutput, error) {
	removed, err := db.ClearWordInfoCache(env.DB)
	if err != nil {
		return nil, err
	}
	return &ClearInfoCacheOutput{Removed: removed}, nil
}
