package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/chytanka/chytanka/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"vocab_stats": {
		def:     vocabStatsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleVocabStats },
	},
	"vocab_mark": {
		def:     vocabMarkToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleVocabMark },
	},
	"vocab_word": {
		def:     vocabWordToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleVocabWord },
	},
	"text_list": {
		def:     textListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTextList },
	},
	"text_stats": {
		def:     textStatsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTextStats },
	},
	"text_annotate": {
		def:     textAnnotateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTextAnnotate },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with chytanka tools registered.
// Tools listed in env.Config.DisabledTools are excluded from registration.
func NewServer(env *ops.Env, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"chytanka",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(env)

	disabled := make(map[string]bool)
	for _, name := range env.Config.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(env *ops.Env, version string) error {
	s := NewServer(env, version)
	return server.ServeStdio(s)
}
