package ops

import (
	"testing"

	"github.com/chytanka/chytanka/internal/errors"
)

func TestRecentTexts_OnlyReadTexts(t *testing.T) {
	env := testEnv(t)
	readID := addSampleText(t, env, "Прочитаний")
	addSampleText(t, env, "Непрочитаний")

	if _, err := ReadText(env, ReadTextInput{Identifier: readID}); err != nil {
		t.Fatalf("ReadText failed: %v", err)
	}

	out, err := RecentTexts(env, RecentTextsInput{})
	if err != nil {
		t.Fatalf("RecentTexts failed: %v", err)
	}
	if len(out.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(out.Items))
	}
	if out.Items[0].ID != readID {
		t.Errorf("ID = %q, want %q", out.Items[0].ID, readID)
	}
}

func TestRecentTexts_Limit(t *testing.T) {
	env := testEnv(t)

	for _, title := range []string{"Один", "Два", "Три"} {
		id := addSampleText(t, env, title)
		if _, err := ReadText(env, ReadTextInput{Identifier: id}); err != nil {
			t.Fatalf("ReadText failed: %v", err)
		}
	}

	out, err := RecentTexts(env, RecentTextsInput{Limit: 2})
	if err != nil {
		t.Fatalf("RecentTexts failed: %v", err)
	}
	if len(out.Items) != 2 {
		t.Errorf("len(Items) = %d, want 2", len(out.Items))
	}
}

func TestRecentTexts_NegativeLimit(t *testing.T) {
	env := testEnv(t)

	_, err := RecentTexts(env, RecentTextsInput{Limit: -1})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("RecentTexts error = %v, want INVALID_REQUEST", err)
	}
}

func TestRecentTexts_Empty(t *testing.T) {
	env := testEnv(t)

	out, err := RecentTexts(env, RecentTextsInput{})
	if err != nil {
		t.Fatalf("RecentTexts failed: %v", err)
	}
	if len(out.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(out.Items))
	}
}
