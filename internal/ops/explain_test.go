package ops

import (
	"context"
	"testing"

	"github.com/chytanka/chytanka/internal/errors"
)

func TestExplainWord(t *testing.T) {
	env := envWithProvider(t, "кіт means cat, a masculine noun.")

	out, err := ExplainWord(context.Background(), env, ExplainWordInput{Word: "кіт"})
	if err != nil {
		t.Fatalf("ExplainWord failed: %v", err)
	}
	if out.Explanation == "" {
		t.Error("Explanation should not be empty")
	}
}

func TestExplainWord_MissingWord(t *testing.T) {
	env := envWithProvider(t, "ignored")

	_, err := ExplainWord(context.Background(), env, ExplainWordInput{Word: " "})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("ExplainWord error = %v, want INVALID_REQUEST", err)
	}
}

func TestWordInfo_CachesContextFreeLookups(t *testing.T) {
	env := envWithProvider(t, "first response")

	out, err := WordInfo(context.Background(), env, WordInfoInput{Word: "кіт"})
	if err != nil {
		t.Fatalf("WordInfo failed: %v", err)
	}
	if out.Cached {
		t.Error("first lookup should not be cached")
	}

	// Second lookup must hit the cache; the provider has no responses left.
	out, err = WordInfo(context.Background(), env, WordInfoInput{Word: "кіт"})
	if err != nil {
		t.Fatalf("WordInfo (cached) failed: %v", err)
	}
	if !out.Cached {
		t.Error("second lookup should be cached")
	}
	if out.Info != "first response" {
		t.Errorf("Info = %q, want cached first response", out.Info)
	}
}

func TestWordInfo_ContextualBypassesCache(t *testing.T) {
	env := envWithProvider(t, "plain", "contextual")

	if _, err := WordInfo(context.Background(), env, WordInfoInput{Word: "кіт"}); err != nil {
		t.Fatalf("WordInfo failed: %v", err)
	}

	out, err := WordInfo(context.Background(), env, WordInfoInput{
		Word:     "кіт",
		Sentence: "Кіт сидить на вікні.",
	})
	if err != nil {
		t.Fatalf("WordInfo (contextual) failed: %v", err)
	}
	if out.Cached {
		t.Error("contextual lookup should bypass the cache")
	}
	if out.Info != "contextual" {
		t.Errorf("Info = %q, want contextual", out.Info)
	}
}

func TestWordInfo_Refresh(t *testing.T) {
	env := envWithProvider(t, "stale", "fresh")

	if _, err := WordInfo(context.Background(), env, WordInfoInput{Word: "кіт"}); err != nil {
		t.Fatalf("WordInfo failed: %v", err)
	}

	out, err := WordInfo(context.Background(), env, WordInfoInput{Word: "кіт", Refresh: true})
	if err != nil {
		t.Fatalf("WordInfo (refresh) failed: %v", err)
	}
	if out.Info != "fresh" {
		t.Errorf("Info = %q, want fresh", out.Info)
	}

	// The refreshed response replaces the cached one.
	out, err = WordInfo(context.Background(), env, WordInfoInput{Word: "кіт"})
	if err != nil {
		t.Fatalf("WordInfo (after refresh) failed: %v", err)
	}
	if !out.Cached || out.Info != "fresh" {
		t.Errorf("Info = %q cached=%v, want cached fresh", out.Info, out.Cached)
	}
}

func TestPhraseInfo(t *testing.T) {
	env := envWithProvider(t, "idiom meaning")

	out, err := PhraseInfo(context.Background(), env, WordInfoInput{Word: "на жаль"})
	if err != nil {
		t.Fatalf("PhraseInfo failed: %v", err)
	}
	if out.Info != "idiom meaning" {
		t.Errorf("Info = %q, want idiom meaning", out.Info)
	}
}

func TestTranslateWord_WordListFirst(t *testing.T) {
	env := envWithProvider(t) // provider would fail if consulted
	addList(t, env)

	out, err := TranslateWord(context.Background(), env, TranslateWordInput{Word: "кіт"})
	if err != nil {
		t.Fatalf("TranslateWord failed: %v", err)
	}
	if out.Translation != "cat" || out.Source != "wordlist" {
		t.Errorf("got %+v, want cat from wordlist", out)
	}
}

func TestTranslateWord_FallsBackToAI(t *testing.T) {
	env := envWithProvider(t, "bird")

	out, err := TranslateWord(context.Background(), env, TranslateWordInput{Word: "птах"})
	if err != nil {
		t.Fatalf("TranslateWord failed: %v", err)
	}
	if out.Translation != "bird" || out.Source != "ai" {
		t.Errorf("got %+v, want bird from ai", out)
	}
}

func TestTranslateWord_Save(t *testing.T) {
	env := envWithProvider(t, "bird")

	if _, err := TranslateWord(context.Background(), env, TranslateWordInput{Word: "птах", Save: true}); err != nil {
		t.Fatalf("TranslateWord failed: %v", err)
	}

	entry, err := env.Vocab.Word("птах")
	if err != nil {
		t.Fatalf("Word failed: %v", err)
	}
	if entry.Translation == nil || *entry.Translation != "bird" {
		t.Errorf("Translation = %v, want bird", entry.Translation)
	}
}

func TestClearInfoCache(t *testing.T) {
	env := envWithProvider(t, "a", "b")

	if _, err := WordInfo(context.Background(), env, WordInfoInput{Word: "кіт"}); err != nil {
		t.Fatalf("WordInfo failed: %v", err)
	}
	if _, err := WordInfo(context.Background(), env, WordInfoInput{Word: "собака"}); err != nil {
		t.Fatalf("WordInfo failed: %v", err)
	}

	out, err := ClearInfoCache(env)
	if err != nil {
		t.Fatalf("ClearInfoCache failed: %v", err)
	}
	if out.Removed != 2 {
		t.Errorf("Removed = %d, want 2", out.Removed)
	}
}
