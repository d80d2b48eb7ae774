package vocab

import (
	"testing"

	"github.com/chytanka/chytanka/internal/db"
	"github.com/chytanka/chytanka/internal/uktext"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewManager(database)
}

func strPtr(s string) *string { return &s }

func TestManager_Stage(t *testing.T) {
	m := testManager(t)

	if err := m.MarkKnown("привіт"); err != nil {
		t.Fatalf("MarkKnown() error = %v", err)
	}
	if err := m.MarkLearning("світ"); err != nil {
		t.Fatalf("MarkLearning() error = %v", err)
	}

	tests := []struct {
		word string
		want uktext.Stage
	}{
		{"привіт", uktext.StageKnown},
		{"Привіт", uktext.StageKnown},
		{"приві́т", uktext.StageKnown},
		{"світ", uktext.StageLearning},
		{"невідоме", uktext.StageNew},
	}
	for _, tt := range tests {
		got, err := m.Stage(tt.word)
		if err != nil {
			t.Fatalf("Stage(%q) error = %v", tt.word, err)
		}
		if got != tt.want {
			t.Errorf("Stage(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestManager_CacheInvalidation(t *testing.T) {
	m := testManager(t)

	known, err := m.KnownWords()
	if err != nil {
		t.Fatalf("KnownWords() error = %v", err)
	}
	if len(known) != 0 {
		t.Fatalf("fresh manager has %d known words", len(known))
	}

	// A write after the first read must be visible on the next read.
	if err := m.MarkKnown("нове"); err != nil {
		t.Fatalf("MarkKnown() error = %v", err)
	}

	known, err = m.KnownWords()
	if err != nil {
		t.Fatalf("KnownWords() error = %v", err)
	}
	if !known["нове"] {
		t.Error("cache not invalidated after MarkKnown")
	}
}

func TestManager_StageTransition(t *testing.T) {
	m := testManager(t)

	if err := m.MarkLearning("слово"); err != nil {
		t.Fatal(err)
	}
	if err := m.MarkKnown("слово"); err != nil {
		t.Fatal(err)
	}

	stage, err := m.Stage("слово")
	if err != nil {
		t.Fatal(err)
	}
	if stage != uktext.StageKnown {
		t.Errorf("Stage = %q, want known", stage)
	}

	learning, err := m.LearningWords()
	if err != nil {
		t.Fatal(err)
	}
	if learning["слово"] {
		t.Error("word still in learning set after promotion")
	}
}

func TestManager_BulkSetStage(t *testing.T) {
	m := testManager(t)

	if err := m.BulkSetStage([]string{"один", "два", "три"}, uktext.StageKnown); err != nil {
		t.Fatalf("BulkSetStage() error = %v", err)
	}

	stats, err := m.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats[uktext.StageKnown] != 3 {
		t.Errorf("known count = %d, want 3", stats[uktext.StageKnown])
	}
}

func TestManager_QuizWords(t *testing.T) {
	m := testManager(t)

	// Learning words with translations come first.
	for _, w := range []string{"один", "два", "три"} {
		if err := m.AddWord(&db.Word{Word: w, Stage: uktext.StageLearning, Translation: strPtr("t-" + w)}); err != nil {
			t.Fatal(err)
		}
	}
	// Known word with translation fills the remainder.
	if err := m.AddWord(&db.Word{Word: "чотири", Stage: uktext.StageKnown, Translation: strPtr("four")}); err != nil {
		t.Fatal(err)
	}
	// Words without translations never qualify.
	if err := m.MarkLearning("п'ять"); err != nil {
		t.Fatal(err)
	}

	quiz, err := m.QuizWords(10)
	if err != nil {
		t.Fatalf("QuizWords() error = %v", err)
	}
	if len(quiz) != 4 {
		t.Fatalf("QuizWords() returned %d words, want 4", len(quiz))
	}
	for _, w := range quiz[:3] {
		if w.Stage != uktext.StageLearning {
			t.Errorf("word %q stage = %q, want learning first", w.Word, w.Stage)
		}
	}
	if quiz[3].Word != "чотири" {
		t.Errorf("last quiz word = %q, want чотири", quiz[3].Word)
	}

	// Limit applies.
	quiz, err = m.QuizWords(2)
	if err != nil {
		t.Fatalf("QuizWords() error = %v", err)
	}
	if len(quiz) != 2 {
		t.Errorf("QuizWords(2) returned %d words", len(quiz))
	}
}

func TestManager_Annotate(t *testing.T) {
	m := testManager(t)

	if err := m.MarkKnown("привіт"); err != nil {
		t.Fatal(err)
	}
	if err := m.MarkLearning("світ"); err != nil {
		t.Fatal(err)
	}

	annotated, err := m.Annotate("Привіт, нови́й світ!")
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}

	stages := make(map[string]uktext.Stage)
	for _, tok := range annotated.Words() {
		stages[uktext.NormalizeWord(tok.Text)] = tok.Stage
	}
	if stages["привіт"] != uktext.StageKnown {
		t.Errorf("привіт stage = %q, want known", stages["привіт"])
	}
	if stages["новий"] != uktext.StageNew {
		t.Errorf("новий stage = %q, want new", stages["новий"])
	}
	if stages["світ"] != uktext.StageLearning {
		t.Errorf("світ stage = %q, want learning", stages["світ"])
	}
}

func TestManager_DeleteWord(t *testing.T) {
	m := testManager(t)

	if err := m.MarkKnown("зайве"); err != nil {
		t.Fatal(err)
	}
	if err := m.DeleteWord("зайве"); err != nil {
		t.Fatalf("DeleteWord() error = %v", err)
	}

	stage, err := m.Stage("зайве")
	if err != nil {
		t.Fatal(err)
	}
	if stage != uktext.StageNew {
		t.Errorf("Stage after delete = %q, want new", stage)
	}
}
