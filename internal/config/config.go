package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// TextMaxChars is the maximum character count for an imported or
	// generated text.
	TextMaxChars int `json:"text_max_chars"`

	// AIProvider selects the generation backend: "anthropic" or "openai".
	// Empty means no provider is configured; AI commands fail with
	// PROVIDER_UNAVAILABLE.
	AIProvider string `json:"ai_provider,omitempty"`

	// AnthropicModel overrides the default Anthropic model.
	AnthropicModel string `json:"anthropic_model,omitempty"`

	// OpenAIModel overrides the default OpenAI model.
	OpenAIModel string `json:"openai_model,omitempty"`

	// AllowedPaths is an allowlist of directories for vocabulary
	// export/import. Paths outside ~/.chytanka/exports require either being
	// in this list or AllowUnsafePaths=true. Paths should be absolute
	// (relative paths are ignored).
	AllowedPaths []string `json:"allowed_paths,omitempty"`

	// AllowUnsafePaths disables directory restrictions for export/import.
	// When true, any directory is allowed (symlink and extension checks
	// still apply).
	AllowUnsafePaths bool `json:"allow_unsafe_paths,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is
	// locked" errors). 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from
	// registration. Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// Default model identifiers, overridable in config.json.
const (
	DefaultAnthropicModel = "claude-3-haiku-20240307"
	DefaultOpenAIModel    = "gpt-4o-mini"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		TextMaxChars:   50000,
		AnthropicModel: DefaultAnthropicModel,
		OpenAIModel:    DefaultOpenAIModel,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.chytanka.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithLocal loads configuration from both the global dir (~/.chytanka)
// and a project-local .chytanka directory found by walking upward from
// startDir. Local config takes precedence for scalar values; arrays are
// merged (deduplicated). Either or both configs may be missing.
func LoadWithLocal(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	localPath := FindLocalConfig(startDir)
	local, err := loadFileRaw(localPath)
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then local
	return Merge(Merge(DefaultConfig(), global), local), nil
}

// FindLocalConfig walks upward from startDir to find the nearest
// .chytanka/config.json. Returns the path if found, or empty string.
func FindLocalConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".chytanka", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and
// deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.TextMaxChars = overlay.TextMaxChars
	if result.TextMaxChars == 0 {
		result.TextMaxChars = base.TextMaxChars
	}

	result.AIProvider = overlay.AIProvider
	if result.AIProvider == "" {
		result.AIProvider = base.AIProvider
	}

	result.AnthropicModel = overlay.AnthropicModel
	if result.AnthropicModel == "" {
		result.AnthropicModel = base.AnthropicModel
	}

	result.OpenAIModel = overlay.OpenAIModel
	if result.OpenAIModel == "" {
		result.OpenAIModel = base.OpenAIModel
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	// Booleans: overlay wins if true, else base
	result.AllowUnsafePaths = base.AllowUnsafePaths || overlay.AllowUnsafePaths

	result.AllowedPaths = mergeStringSlice(base.AllowedPaths, overlay.AllowedPaths)
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes
// duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
