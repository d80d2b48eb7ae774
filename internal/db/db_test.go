package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chytanka/chytanka/internal/config"
)

func TestInit_CreatesDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	baseDir := filepath.Join(tmpDir, "chytanka-home")

	database, err := Init(baseDir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer database.Close()

	if _, err := os.Stat(filepath.Join(baseDir, "chytanka.db")); err != nil {
		t.Errorf("database file not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(baseDir, "exports")); err != nil {
		t.Errorf("exports directory not created: %v", err)
	}
}

func TestInit_WALMode(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer database.Close()

	var mode string
	if err := database.QueryRow("PRAGMA journal_mode;").Scan(&mode); err != nil {
		t.Fatalf("journal_mode query error = %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestInit_SchemaVersion(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer database.Close()

	version, err := GetUserVersion(database)
	if err != nil {
		t.Fatalf("GetUserVersion() error = %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}
}

func TestInit_Reopen(t *testing.T) {
	baseDir := t.TempDir()

	first, err := Init(baseDir)
	if err != nil {
		t.Fatalf("first Init() error = %v", err)
	}
	if err := SetStage(first, "слово", "known"); err != nil {
		t.Fatalf("SetStage() error = %v", err)
	}
	first.Close()

	second, err := Init(baseDir)
	if err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	defer second.Close()

	w, err := GetWord(second, "слово")
	if err != nil {
		t.Fatalf("GetWord() after reopen error = %v", err)
	}
	if w.Stage != "known" {
		t.Errorf("Stage = %q, want known", w.Stage)
	}
}

func TestConfigurePool(t *testing.T) {
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer database.Close()

	// Nil config and zero values must not panic or change anything.
	ConfigurePool(database, nil)
	ConfigurePool(database, &config.Config{})
	ConfigurePool(database, &config.Config{DBMaxOpenConns: 1, DBMaxIdleConns: 1})

	if err := SetStage(database, "тест", "learning"); err != nil {
		t.Fatalf("SetStage() with serialized pool error = %v", err)
	}
}
