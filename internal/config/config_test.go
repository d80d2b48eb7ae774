package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TextMaxChars != DefaultConfig().TextMaxChars {
		t.Fatalf("TextMaxChars = %d, want %d", cfg.TextMaxChars, DefaultConfig().TextMaxChars)
	}
	if cfg.AnthropicModel != DefaultAnthropicModel {
		t.Fatalf("AnthropicModel = %q, want %q", cfg.AnthropicModel, DefaultAnthropicModel)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	raw := `{"text_max_chars": 500, "ai_provider": "openai", "openai_model": "gpt-4o"}`
	if err := os.WriteFile(configPath, []byte(raw), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TextMaxChars != 500 {
		t.Errorf("TextMaxChars = %d, want 500", cfg.TextMaxChars)
	}
	if cfg.AIProvider != "openai" {
		t.Errorf("AIProvider = %q, want %q", cfg.AIProvider, "openai")
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("OpenAIModel = %q, want %q", cfg.OpenAIModel, "gpt-4o")
	}
	// Untouched fields keep defaults
	if cfg.AnthropicModel != DefaultAnthropicModel {
		t.Errorf("AnthropicModel = %q, want default", cfg.AnthropicModel)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestLoad_DisabledTools(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	raw := `{"disabled_tools": ["vocab_mark", "text_annotate"]}`
	if err := os.WriteFile(configPath, []byte(raw), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.DisabledTools) != 2 {
		t.Fatalf("DisabledTools length = %d, want 2", len(cfg.DisabledTools))
	}
	if cfg.DisabledTools[0] != "vocab_mark" {
		t.Errorf("DisabledTools[0] = %q, want %q", cfg.DisabledTools[0], "vocab_mark")
	}
}

func TestLoadWithLocal_BothPresent(t *testing.T) {
	globalDir := t.TempDir()
	localRoot := t.TempDir()

	globalConfig := `{"text_max_chars": 8000, "disabled_tools": ["vocab_mark"]}`
	if err := os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	localDir := filepath.Join(localRoot, ".chytanka")
	if err := os.MkdirAll(localDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	localConfig := `{"text_max_chars": 5000, "disabled_tools": ["text_annotate"]}`
	if err := os.WriteFile(filepath.Join(localDir, "config.json"), []byte(localConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithLocal(globalDir, localRoot)
	if err != nil {
		t.Fatalf("LoadWithLocal() error = %v", err)
	}

	// Local overrides scalar
	if cfg.TextMaxChars != 5000 {
		t.Errorf("TextMaxChars = %d, want 5000 (local override)", cfg.TextMaxChars)
	}

	// Arrays merged
	if len(cfg.DisabledTools) != 2 {
		t.Errorf("DisabledTools length = %d, want 2", len(cfg.DisabledTools))
	}
}

func TestLoadWithLocal_OnlyGlobal(t *testing.T) {
	globalDir := t.TempDir()
	workDir := t.TempDir()

	globalConfig := `{"ai_provider": "anthropic"}`
	if err := os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalConfig), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadWithLocal(globalDir, workDir)
	if err != nil {
		t.Fatalf("LoadWithLocal() error = %v", err)
	}

	if cfg.AIProvider != "anthropic" {
		t.Errorf("AIProvider = %q, want %q", cfg.AIProvider, "anthropic")
	}
	if cfg.TextMaxChars != 50000 {
		t.Errorf("TextMaxChars = %d, want 50000 (default)", cfg.TextMaxChars)
	}
}

func TestLoadWithLocal_NeitherPresent(t *testing.T) {
	globalDir := t.TempDir()
	workDir := t.TempDir()

	cfg, err := LoadWithLocal(globalDir, workDir)
	if err != nil {
		t.Fatalf("LoadWithLocal() error = %v", err)
	}

	if cfg.TextMaxChars != 50000 {
		t.Errorf("TextMaxChars = %d, want 50000", cfg.TextMaxChars)
	}
	if len(cfg.DisabledTools) != 0 {
		t.Errorf("DisabledTools = %v, want empty", cfg.DisabledTools)
	}
}

func TestMerge_ScalarOverride(t *testing.T) {
	base := &Config{TextMaxChars: 10000, DBMaxOpenConns: 5}
	overlay := &Config{TextMaxChars: 5000} // DBMaxOpenConns is zero

	result := Merge(base, overlay)

	if result.TextMaxChars != 5000 {
		t.Errorf("TextMaxChars = %d, want 5000 (overlay)", result.TextMaxChars)
	}
	if result.DBMaxOpenConns != 5 {
		t.Errorf("DBMaxOpenConns = %d, want 5 (base, overlay is zero)", result.DBMaxOpenConns)
	}
}

func TestMerge_BooleanOr(t *testing.T) {
	base := &Config{AllowUnsafePaths: true}
	overlay := &Config{AllowUnsafePaths: false}

	result := Merge(base, overlay)

	if !result.AllowUnsafePaths {
		t.Error("AllowUnsafePaths should be true (base OR overlay)")
	}
}

func TestMerge_ArrayMergeDedup(t *testing.T) {
	base := &Config{DisabledTools: []string{"vocab_mark", "text_annotate"}}
	overlay := &Config{DisabledTools: []string{"text_annotate", "text_list"}}

	result := Merge(base, overlay)

	if len(result.DisabledTools) != 3 {
		t.Errorf("DisabledTools length = %d, want 3 (merged, deduped)", len(result.DisabledTools))
	}

	has := make(map[string]bool)
	for _, s := range result.DisabledTools {
		has[s] = true
	}
	for _, want := range []string{"vocab_mark", "text_annotate", "text_list"} {
		if !has[want] {
			t.Errorf("DisabledTools missing %q", want)
		}
	}
}

func TestFindLocalConfig_InParentDir(t *testing.T) {
	tmpDir := t.TempDir()
	localDir := filepath.Join(tmpDir, ".chytanka")
	if err := os.MkdirAll(localDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	configPath := filepath.Join(localDir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	subdir := filepath.Join(tmpDir, "subdir", "deeper")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	found := FindLocalConfig(subdir)
	if found != configPath {
		t.Errorf("FindLocalConfig() = %q, want %q", found, configPath)
	}
}

func TestFindLocalConfig_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	found := FindLocalConfig(tmpDir)
	if found != "" {
		t.Errorf("FindLocalConfig() = %q, want empty string", found)
	}
}
