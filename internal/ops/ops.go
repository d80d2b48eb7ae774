// Package ops implements the application operations shared by the CLI,
// web, and MCP surfaces. Each operation takes an Input struct and returns
// an Output struct so every surface speaks the same vocabulary.
package ops

import (
	"database/sql"
	"strings"

	"github.com/chytanka/chytanka/internal/ai"
	"github.com/chytanka/chytanka/internal/config"
	"github.com/chytanka/chytanka/internal/content"
	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/uktext"
	"github.com/chytanka/chytanka/internal/vocab"
)

// Limits for list operations and AI requests.
const (
	DefaultQuizCount    = 10
	MaxQuizCount        = 50
	DefaultWordListSize = 20
	MaxWordListSize     = 100
	MaxBulkMarkWords    = 500
)

// Env bundles the application state an operation may need. Surfaces build
// one Env at startup and pass it to every call.
type Env struct {
	DB      *sql.DB
	Config  *config.Config
	Vocab   *vocab.Manager
	Content *content.Manager

	// Generator is nil when no AI provider is configured; operations that
	// need it fail with PROVIDER_UNAVAILABLE.
	Generator *ai.Generator
}

// generator returns the configured generator or a PROVIDER_UNAVAILABLE
// error.
func (e *Env) generator() (*ai.Generator, error) {
	if e.Generator == nil {
		return nil, errors.NewProviderUnavailable("none", nil)
	}
	return e.Generator, nil
}

// ParseStage validates a stage string from user input.
func ParseStage(s string) (uktext.Stage, error) {
	stage := uktext.Stage(strings.ToLower(strings.TrimSpace(s)))
	if !stage.Valid() {
		return "", errors.NewInvalidRequest("stage must be one of: new, learning, known")
	}
	return stage, nil
}

// cleanOptionalString trims an optional string and nils it out when empty.
func cleanOptionalString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
