package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/chytanka/chytanka/internal/config"
	"github.com/chytanka/chytanka/internal/content"
	"github.com/chytanka/chytanka/internal/db"
	"github.com/chytanka/chytanka/internal/ops"
	"github.com/chytanka/chytanka/internal/vocab"
)

// testHandlers builds Handlers over a temp-dir environment.
func testHandlers(t *testing.T) *Handlers {
	t.Helper()

	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	manager, err := content.NewManager(tmpDir, database)
	if err != nil {
		t.Fatalf("failed to init content manager: %v", err)
	}

	return NewHandlers(&ops.Env{
		DB:      database,
		Config:  config.DefaultConfig(),
		Vocab:   vocab.NewManager(database),
		Content: manager,
	})
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func parseOutput(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}
	var output map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &output); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return output
}

func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	if !result.IsError {
		t.Errorf("expected error result")
		return
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Errorf("content is not TextContent")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Errorf("failed to unmarshal error payload: %v", err)
		return
	}

	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Errorf("no error object in payload")
		return
	}

	if code, _ := errorObj["code"].(string); code != expectedCode {
		t.Errorf("got error code %q, want %q", code, expectedCode)
	}
}

func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}
	return text.Text
}

func TestHandleVocabMark_AndStats(t *testing.T) {
	h := testHandlers(t)

	result, err := h.HandleVocabMark(context.Background(), makeRequest(map[string]any{
		"words": []any{"кіт", "собака"},
		"stage": "known",
	}))
	if err != nil {
		t.Fatalf("HandleVocabMark failed: %v", err)
	}
	output := parseOutput(t, result)
	if output["count"].(float64) != 2 {
		t.Errorf("count = %v, want 2", output["count"])
	}

	result, err = h.HandleVocabStats(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleVocabStats failed: %v", err)
	}
	stats := parseOutput(t, result)
	if stats["known"].(float64) != 2 {
		t.Errorf("known = %v, want 2", stats["known"])
	}
	if stats["total"].(float64) != 2 {
		t.Errorf("total = %v, want 2", stats["total"])
	}
}

func TestHandleVocabMark_InvalidStage(t *testing.T) {
	h := testHandlers(t)

	result, err := h.HandleVocabMark(context.Background(), makeRequest(map[string]any{
		"words": []any{"кіт"},
		"stage": "fluent",
	}))
	if err != nil {
		t.Fatalf("HandleVocabMark failed: %v", err)
	}
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestHandleVocabMark_BadArguments(t *testing.T) {
	h := testHandlers(t)

	result, err := h.HandleVocabMark(context.Background(), makeRequest(map[string]any{
		"words": "not-an-array",
		"stage": "known",
	}))
	if err != nil {
		t.Fatalf("HandleVocabMark failed: %v", err)
	}
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestHandleVocabWord(t *testing.T) {
	h := testHandlers(t)

	if err := h.env.Vocab.MarkLearning("кіт"); err != nil {
		t.Fatalf("MarkLearning failed: %v", err)
	}

	result, err := h.HandleVocabWord(context.Background(), makeRequest(map[string]any{
		"word": "Кіт",
	}))
	if err != nil {
		t.Fatalf("HandleVocabWord failed: %v", err)
	}
	output := parseOutput(t, result)
	if output["stage"] != "learning" {
		t.Errorf("stage = %v, want learning", output["stage"])
	}
}

func TestHandleVocabWord_Unstored(t *testing.T) {
	h := testHandlers(t)

	result, err := h.HandleVocabWord(context.Background(), makeRequest(map[string]any{
		"word": "невідоме",
	}))
	if err != nil {
		t.Fatalf("HandleVocabWord failed: %v", err)
	}
	output := parseOutput(t, result)
	if output["stage"] != "new" {
		t.Errorf("stage = %v, want new", output["stage"])
	}
}

func TestHandleTextList(t *testing.T) {
	h := testHandlers(t)

	if _, err := ops.AddText(h.env, ops.AddTextInput{
		Title:   "Кіт",
		Content: "Кіт сидить на вікні.",
	}); err != nil {
		t.Fatalf("AddText failed: %v", err)
	}

	result, err := h.HandleTextList(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("HandleTextList failed: %v", err)
	}
	output := parseOutput(t, result)
	if output["total"].(float64) != 1 {
		t.Errorf("total = %v, want 1", output["total"])
	}
}

func TestHandleTextStats(t *testing.T) {
	h := testHandlers(t)

	addOut, err := ops.AddText(h.env, ops.AddTextInput{
		Title:   "Кіт",
		Content: "Кіт сидить на вікні.",
	})
	if err != nil {
		t.Fatalf("AddText failed: %v", err)
	}

	result, err := h.HandleTextStats(context.Background(), makeRequest(map[string]any{
		"identifier": addOut.ID,
	}))
	if err != nil {
		t.Fatalf("HandleTextStats failed: %v", err)
	}
	output := parseOutput(t, result)
	if output["word_count"].(float64) != 4 {
		t.Errorf("word_count = %v, want 4", output["word_count"])
	}
}

func TestHandleTextStats_NotFound(t *testing.T) {
	h := testHandlers(t)

	result, err := h.HandleTextStats(context.Background(), makeRequest(map[string]any{
		"identifier": "missing",
	}))
	if err != nil {
		t.Fatalf("HandleTextStats failed: %v", err)
	}
	assertErrorCode(t, result, "NOT_FOUND")
}

func TestHandleTextAnnotate(t *testing.T) {
	h := testHandlers(t)

	if err := h.env.Vocab.MarkKnown("кіт"); err != nil {
		t.Fatalf("MarkKnown failed: %v", err)
	}

	result, err := h.HandleTextAnnotate(context.Background(), makeRequest(map[string]any{
		"text": "Кіт спить.",
	}))
	if err != nil {
		t.Fatalf("HandleTextAnnotate failed: %v", err)
	}
	output := parseOutput(t, result)
	tokens := output["tokens"].([]any)
	first := tokens[0].(map[string]any)
	if first["text"] != "Кіт" || first["stage"] != "known" {
		t.Errorf("first token = %v, want Кіт known", first)
	}
}

func TestHandleTextAnnotate_EmptyText(t *testing.T) {
	h := testHandlers(t)

	result, err := h.HandleTextAnnotate(context.Background(), makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("HandleTextAnnotate failed: %v", err)
	}
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestNewServer_DisabledTools(t *testing.T) {
	h := testHandlers(t)
	h.env.Config.DisabledTools = []string{"vocab_mark"}

	s := NewServer(h.env, "test")
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"vocab_mark", "bogus_tool"})
	if len(unknown) != 1 || unknown[0] != "bogus_tool" {
		t.Errorf("unknown = %v, want [bogus_tool]", unknown)
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != 6 {
		t.Errorf("len(names) = %d, want 6", len(names))
	}
}
