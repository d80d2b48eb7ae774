package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/uktext"
)

func writeImportFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImport_SkipMode(t *testing.T) {
	env := testEnv(t)
	dir := t.TempDir()
	env.Config.AllowedPaths = []string{dir}

	if err := env.Vocab.MarkLearning("кіт"); err != nil {
		t.Fatalf("MarkLearning failed: %v", err)
	}

	path := writeImportFile(t, dir, "vocab.jsonl",
		`{"_chytanka_export":true,"schema_version":"1.0","exported_at":1700000000}
{"word":"кіт","translation":"cat","stage":"known"}
{"word":"собака","translation":"dog","stage":"known"}
`)

	out, err := Import(env, ImportInput{Path: path})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if out.Imported != 1 || out.Skipped != 1 {
		t.Errorf("Import = %+v, want 1 imported 1 skipped", out)
	}

	// Existing entry untouched in skip mode.
	stage, err := env.Vocab.Stage("кіт")
	if err != nil {
		t.Fatalf("Stage failed: %v", err)
	}
	if stage != uktext.StageLearning {
		t.Errorf("Stage = %q, want learning preserved", stage)
	}
}

func TestImport_ReplaceMode(t *testing.T) {
	env := testEnv(t)
	dir := t.TempDir()
	env.Config.AllowedPaths = []string{dir}

	if err := env.Vocab.MarkLearning("кіт"); err != nil {
		t.Fatalf("MarkLearning failed: %v", err)
	}

	path := writeImportFile(t, dir, "vocab.jsonl",
		`{"word":"кіт","translation":"cat","stage":"known"}
`)

	out, err := Import(env, ImportInput{Path: path, Mode: ImportModeReplace})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if out.Imported != 1 {
		t.Errorf("Imported = %d, want 1", out.Imported)
	}

	stage, err := env.Vocab.Stage("кіт")
	if err != nil {
		t.Fatalf("Stage failed: %v", err)
	}
	if stage != uktext.StageKnown {
		t.Errorf("Stage = %q, want known after replace", stage)
	}
}

func TestImport_ReportsMalformedLines(t *testing.T) {
	env := testEnv(t)
	dir := t.TempDir()
	env.Config.AllowedPaths = []string{dir}

	path := writeImportFile(t, dir, "vocab.jsonl",
		`not json
{"translation":"cat","stage":"known"}
{"word":"кіт","stage":"mastered"}
{"word":"собака","translation":"dog","stage":"known"}
`)

	out, err := Import(env, ImportInput{Path: path})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if out.Imported != 1 {
		t.Errorf("Imported = %d, want 1", out.Imported)
	}
	if len(out.Errors) != 3 {
		t.Fatalf("len(Errors) = %d, want 3: %+v", len(out.Errors), out.Errors)
	}
	codes := []string{"PARSE_ERROR", "INVALID_RECORD", "INVALID_STAGE"}
	for i, want := range codes {
		if out.Errors[i].Code != want {
			t.Errorf("Errors[%d].Code = %q, want %q", i, out.Errors[i].Code, want)
		}
	}
}

func TestImport_MissingFile(t *testing.T) {
	env := testEnv(t)
	dir := t.TempDir()
	env.Config.AllowedPaths = []string{dir}

	_, err := Import(env, ImportInput{Path: filepath.Join(dir, "missing.jsonl")})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Import error = %v, want NOT_FOUND", err)
	}
}

func TestImport_InvalidMode(t *testing.T) {
	env := testEnv(t)
	dir := t.TempDir()
	env.Config.AllowedPaths = []string{dir}
	path := writeImportFile(t, dir, "vocab.jsonl", "")

	_, err := Import(env, ImportInput{Path: path, Mode: "merge"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Import error = %v, want INVALID_REQUEST", err)
	}
}

func TestImport_EmptyPath(t *testing.T) {
	env := testEnv(t)

	_, err := Import(env, ImportInput{})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("Import error = %v, want INVALID_REQUEST", err)
	}
}
