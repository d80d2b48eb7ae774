package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	env *ops.Env
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(env *ops.Env) *Handlers {
	return &Handlers{env: env}
}

// Request types for each tool

// VocabMarkRequest represents the arguments for vocab_mark.
type VocabMarkRequest struct {
	Words []string `json:"words"`
	Stage string   `json:"stage"`
}

// VocabWordRequest represents the arguments for vocab_word.
type VocabWordRequest struct {
	Word string `json:"word"`
}

// TextStatsRequest represents the arguments for text_stats.
type TextStatsRequest struct {
	Identifier string `json:"identifier"`
}

// TextAnnotateRequest represents the arguments for text_annotate.
type TextAnnotateRequest struct {
	Text string `json:"text"`
}

// Handler implementations

// HandleVocabStats handles the vocab_stats tool call.
func (h *Handlers) HandleVocabStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.VocabStats(h.env)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleVocabMark handles the vocab_mark tool call.
func (h *Handlers) HandleVocabMark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[VocabMarkRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.MarkWords(h.env, ops.MarkWordsInput{
		Words: input.Words,
		Stage: input.Stage,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleVocabWord handles the vocab_word tool call.
func (h *Handlers) HandleVocabWord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[VocabWordRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetWord(h.env, ops.GetWordInput{Word: input.Word})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleTextList handles the text_list tool call.
func (h *Handlers) HandleTextList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListTexts(h.env)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleTextStats handles the text_stats tool call.
func (h *Handlers) HandleTextStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TextStatsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.TextStats(h.env, ops.TextStatsInput{Identifier: input.Identifier})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleTextAnnotate handles the text_annotate tool call.
func (h *Handlers) HandleTextAnnotate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TextAnnotateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Text == "" {
		return errorResult(errors.NewInvalidRequest("text is required")), nil
	}

	annotated, err := h.env.Vocab.Annotate(input.Text)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(map[string]any{"tokens": annotated.Tokens})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if appErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
			"status":  appErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if appErr.Code != errors.ErrInternal && appErr.Details != nil {
			errorObj["details"] = appErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
