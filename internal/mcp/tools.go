package mcp

import "github.com/mark3labs/mcp-go/mcp"

var vocabStatsToolDef = mcp.NewTool("vocab_stats",
	mcp.WithDescription("Get vocabulary word counts by learning stage (known, learning, new)."),
)

var vocabMarkToolDef = mcp.NewTool("vocab_mark",
	mcp.WithDescription("Set the learning stage for one or more Ukrainian words. Words are normalized (lowercased, stress marks stripped) before storage."),
	mcp.WithArray("words",
		mcp.Required(),
		mcp.Description("The words to mark."),
		mcp.Items(map[string]any{"type": "string"}),
	),
	mcp.WithString("stage",
		mcp.Required(),
		mcp.Description("Target stage: new, learning, or known."),
	),
)

var vocabWordToolDef = mcp.NewTool("vocab_word",
	mcp.WithDescription("Look up a single word's stage and stored entry (translation, notes). Accented or capitalized spellings resolve to the stored form."),
	mcp.WithString("word",
		mcp.Required(),
		mcp.Description("The word to look up."),
	),
)

var textListToolDef = mcp.NewTool("text_list",
	mcp.WithDescription("List stored reading texts with their reading progress, newest first."),
)

var textStatsToolDef = mcp.NewTool("text_stats",
	mcp.WithDescription("Report how much of a stored text the vocabulary covers: word counts, known percentage, and the unknown words."),
	mcp.WithString("identifier",
		mcp.Required(),
		mcp.Description("Text ID or exact title (case-insensitive)."),
	),
)

var textAnnotateToolDef = mcp.NewTool("text_annotate",
	mcp.WithDescription("Tokenize arbitrary Ukrainian text and tag every word token with its vocabulary stage."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The text to annotate."),
	),
)
