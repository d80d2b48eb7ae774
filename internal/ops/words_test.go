package ops

import (
	"testing"

	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/uktext"
)

func TestListWords_All(t *testing.T) {
	env := testEnv(t)

	if err := env.Vocab.MarkKnown("кіт"); err != nil {
		t.Fatalf("MarkKnown failed: %v", err)
	}
	if err := env.Vocab.MarkLearning("собака"); err != nil {
		t.Fatalf("MarkLearning failed: %v", err)
	}

	out, err := ListWords(env, ListWordsInput{})
	if err != nil {
		t.Fatalf("ListWords failed: %v", err)
	}
	if len(out.Words) != 2 {
		t.Errorf("len(Words) = %d, want 2", len(out.Words))
	}
}

func TestListWords_ByStage(t *testing.T) {
	env := testEnv(t)

	if err := env.Vocab.MarkKnown("кіт"); err != nil {
		t.Fatalf("MarkKnown failed: %v", err)
	}
	if err := env.Vocab.MarkLearning("собака"); err != nil {
		t.Fatalf("MarkLearning failed: %v", err)
	}

	out, err := ListWords(env, ListWordsInput{Stage: "learning"})
	if err != nil {
		t.Fatalf("ListWords failed: %v", err)
	}
	if len(out.Words) != 1 || out.Words[0].Word != "собака" {
		t.Errorf("Words = %+v, want [собака]", out.Words)
	}
}

func TestListWords_InvalidStage(t *testing.T) {
	env := testEnv(t)

	_, err := ListWords(env, ListWordsInput{Stage: "expert"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("ListWords error = %v, want INVALID_REQUEST", err)
	}
}

func TestGetWord_Stored(t *testing.T) {
	env := testEnv(t)

	if _, err := SetWord(env, SetWordInput{Word: "кіт", Stage: "learning", Translation: "cat"}); err != nil {
		t.Fatalf("SetWord failed: %v", err)
	}

	out, err := GetWord(env, GetWordInput{Word: "Кіт"})
	if err != nil {
		t.Fatalf("GetWord failed: %v", err)
	}
	if out.Stage != uktext.StageLearning {
		t.Errorf("Stage = %q, want learning", out.Stage)
	}
	if out.Word == nil || out.Word.Translation == nil || *out.Word.Translation != "cat" {
		t.Errorf("Word = %+v, want entry with translation cat", out.Word)
	}
}

func TestGetWord_Unstored(t *testing.T) {
	env := testEnv(t)

	out, err := GetWord(env, GetWordInput{Word: "невідоме"})
	if err != nil {
		t.Fatalf("GetWord failed: %v", err)
	}
	if out.Stage != uktext.StageNew {
		t.Errorf("Stage = %q, want new", out.Stage)
	}
	if out.Word != nil {
		t.Errorf("Word = %+v, want nil", out.Word)
	}
}
