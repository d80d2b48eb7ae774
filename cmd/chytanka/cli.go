package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/chytanka/chytanka/internal/errors"
	"github.com/chytanka/chytanka/internal/ops"
	"github.com/chytanka/chytanka/internal/uktext"
	"github.com/chytanka/chytanka/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env *ops.Env) *cli.App {
	app := &cli.App{
		Name:    "chytanka",
		Usage:   "Ukrainian reading and vocabulary trainer",
		Version: Version,
		Commands: []*cli.Command{
			addTextCmd(env),
			textsCmd(env),
			readCmd(env),
			statsCmd(env),
			markCmd(env),
			wordsCmd(env),
			quizCmd(env),
			wordlistsCmd(env),
			importListCmd(env),
			grammarCmd(env),
			generateCmd(env),
			explainCmd(env),
			exportCmd(env),
			importCmd(env),
			serveCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addTextCmd creates the add-text command.
func addTextCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "add-text",
		Usage: "Store a new reading text (reads content from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true, Usage: "Text title"},
			&cli.StringFlag{Name: "difficulty", Aliases: []string{"d"}, Usage: "Difficulty: beginner|intermediate|advanced"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
			&cli.StringFlag{Name: "source", Usage: "Text source (default: manual)"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("text content must be piped via stdin"))
			}

			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if text == "" {
				return outputError(errors.NewInvalidRequest("text content is required"))
			}

			output, err := ops.AddText(env, ops.AddTextInput{
				Title:      c.String("title"),
				Content:    text,
				Difficulty: c.String("difficulty"),
				Tags:       parseTags(c.String("tags")),
				Source:     c.String("source"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// textsCmd creates the texts command.
func textsCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "texts",
		Usage:     "List stored texts, or show one by ID or title",
		ArgsUsage: "[identifier]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Search titles and content"},
			&cli.IntFlag{Name: "recent", Aliases: []string{"r"}, Usage: "Show the N most recently read texts"},
			&cli.BoolFlag{Name: "delete", Usage: "Delete the text given as argument"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				identifier := c.Args().First()
				if c.Bool("delete") {
					output, err := ops.DeleteText(env, ops.DeleteTextInput{Identifier: identifier})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				}
				output, err := ops.GetText(env, ops.GetTextInput{Identifier: identifier})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			if query := c.String("search"); query != "" {
				output, err := ops.SearchTexts(env, ops.SearchTextsInput{Query: query})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			if c.IsSet("recent") {
				output, err := ops.RecentTexts(env, ops.RecentTextsInput{Limit: c.Int("recent")})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			output, err := ops.ListTexts(env)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// readCmd creates the read command.
func readCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "read",
		Usage:     "Read a text with vocabulary stages highlighted",
		ArgsUsage: "<identifier>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "peek", Usage: "Do not record the read"},
			&cli.BoolFlag{Name: "json", Usage: "Output annotated lines as JSON"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("text identifier is required"))
			}

			output, err := ops.ReadText(env, ops.ReadTextInput{
				Identifier:   c.Args().First(),
				SkipProgress: c.Bool("peek"),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(output)
			}

			printReadingView(output)
			return nil
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Show vocabulary stats, or coverage stats for one text",
		ArgsUsage: "[identifier]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				output, err := ops.TextStats(env, ops.TextStatsInput{Identifier: c.Args().First()})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			output, err := ops.VocabStats(env)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// markCmd creates the mark command.
func markCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "mark",
		Usage:     "Mark words with a learning stage",
		ArgsUsage: "<stage> <word>...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "translation", Aliases: []string{"t"}, Usage: "Store a translation (single word only)"},
			&cli.StringFlag{Name: "notes", Usage: "Store notes (single word only)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return outputError(errors.NewInvalidRequest("usage: mark <stage> <word>..."))
			}
			stage := c.Args().First()
			words := c.Args().Slice()[1:]

			if c.String("translation") != "" || c.String("notes") != "" {
				if len(words) != 1 {
					return outputError(errors.NewInvalidRequest("translation and notes apply to a single word"))
				}
				output, err := ops.SetWord(env, ops.SetWordInput{
					Word:        words[0],
					Stage:       stage,
					Translation: c.String("translation"),
					Notes:       c.String("notes"),
				})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			output, err := ops.MarkWords(env, ops.MarkWordsInput{Words: words, Stage: stage})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// wordsCmd creates the words command.
func wordsCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "words",
		Usage:     "List vocabulary words, or show one word",
		ArgsUsage: "[word]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "stage", Aliases: []string{"s"}, Usage: "Filter by stage: known|learning|new"},
			&cli.BoolFlag{Name: "delete", Usage: "Delete the word given as argument"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				word := c.Args().First()
				if c.Bool("delete") {
					if err := ops.DeleteWord(env, ops.DeleteWordInput{Word: word}); err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]string{"deleted": word})
				}
				output, err := ops.GetWord(env, ops.GetWordInput{Word: word})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			output, err := ops.ListWords(env, ops.ListWordsInput{Stage: c.String("stage")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// quizCmd creates the quiz command.
func quizCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "quiz",
		Usage: "Pick words for a translation quiz",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Usage: "Number of words to quiz"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Quiz(env, ops.QuizInput{Count: c.Int("count")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// wordlistsCmd creates the wordlists command.
func wordlistsCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "wordlists",
		Usage:     "List word lists, or show one by ID",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "create", Usage: "Create an empty word list with this title"},
			&cli.StringFlag{Name: "theme", Usage: "Theme for --create (default: general)"},
			&cli.BoolFlag{Name: "delete", Usage: "Delete the word list given as argument"},
			&cli.StringFlag{Name: "add-word", Usage: "Add a word to the list given as argument"},
			&cli.StringFlag{Name: "translation", Aliases: []string{"t"}, Usage: "Translation for --add-word"},
			&cli.StringFlag{Name: "notes", Usage: "Notes for --add-word"},
		},
		Action: func(c *cli.Context) error {
			if title := c.String("create"); title != "" {
				output, err := ops.AddWordList(env, ops.AddWordListInput{
					Title: title,
					Theme: c.String("theme"),
				})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			if c.NArg() == 0 {
				output, err := ops.ListWordLists(env)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			id := c.Args().First()

			if c.Bool("delete") {
				if err := ops.DeleteWordList(env, ops.DeleteWordListInput{ID: id}); err != nil {
					return outputError(err)
				}
				return outputJSON(map[string]string{"deleted": id})
			}

			if word := c.String("add-word"); word != "" {
				err := ops.AddListWord(env, ops.AddListWordInput{
					ListID:      id,
					Word:        word,
					Translation: c.String("translation"),
					Notes:       c.String("notes"),
				})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(map[string]string{"added": word})
			}

			output, err := ops.GetWordList(env, ops.GetWordListInput{ID: id})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// importListCmd creates the import-list command.
func importListCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "import-list",
		Usage:     "Import a word list into the vocabulary",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("word list id is required"))
			}
			output, err := ops.ImportWordList(env, ops.ImportWordListInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// grammarCmd creates the grammar command.
func grammarCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "grammar",
		Usage:     "List grammar notes, or show one by ID",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "add", Usage: "Add a note with this title (reads markdown from stdin)"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags for --add"},
			&cli.BoolFlag{Name: "delete", Usage: "Delete the note given as argument"},
		},
		Action: func(c *cli.Context) error {
			if title := c.String("add"); title != "" {
				if !stdinHasData() {
					return outputError(errors.NewInvalidRequest("note content must be piped via stdin"))
				}
				body, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				output, err := ops.AddGrammar(env, ops.AddGrammarInput{
					Title:   title,
					Content: body,
					Tags:    parseTags(c.String("tags")),
				})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			if c.NArg() == 0 {
				output, err := ops.ListGrammar(env)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			id := c.Args().First()

			if c.Bool("delete") {
				if err := ops.DeleteGrammar(env, ops.DeleteGrammarInput{ID: id}); err != nil {
					return outputError(err)
				}
				return outputJSON(map[string]string{"deleted": id})
			}

			note, err := ops.GetGrammar(env, ops.GetGrammarInput{ID: id})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(note)
		},
	}
}

// generateCmd creates the generate command and its subcommands.
func generateCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate learning content with the configured AI provider",
		Subcommands: []*cli.Command{
			{
				Name:      "text",
				Usage:     "Generate a reading text on a topic",
				ArgsUsage: "<topic>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "difficulty", Aliases: []string{"d"}, Usage: "Difficulty: beginner|intermediate|advanced"},
					&cli.StringFlag{Name: "length", Aliases: []string{"l"}, Usage: "Length: short|medium|long"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.GenerateText(c.Context, env, ops.GenerateTextInput{
						Topic:      strings.Join(c.Args().Slice(), " "),
						Difficulty: c.String("difficulty"),
						Length:     c.String("length"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "wordlist",
				Usage:     "Generate a themed word list",
				ArgsUsage: "<theme>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Usage: "Number of words"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.GenerateWordList(c.Context, env, ops.GenerateWordListInput{
						Theme: strings.Join(c.Args().Slice(), " "),
						Count: c.Int("count"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "grammar",
				Usage:     "Generate a grammar note on a topic",
				ArgsUsage: "<topic>",
				Action: func(c *cli.Context) error {
					output, err := ops.GenerateGrammar(c.Context, env, ops.GenerateGrammarInput{
						Topic: strings.Join(c.Args().Slice(), " "),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "analyze",
				Usage: "Analyze the vocabulary for patterns and word families",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "stage", Aliases: []string{"s"}, Usage: "Stage to analyze (default: learning)"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.AnalyzeVocabulary(c.Context, env, ops.AnalyzeVocabularyInput{
						Stage: c.String("stage"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// explainCmd creates the explain command and its subcommands.
func explainCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "explain",
		Usage: "Explain and translate words with the configured AI provider",
		Subcommands: []*cli.Command{
			{
				Name:      "word",
				Usage:     "Explain a word, optionally in sentence context",
				ArgsUsage: "<word>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "sentence", Usage: "Surrounding sentence for context"},
					&cli.BoolFlag{Name: "full", Usage: "Full grammatical breakdown instead of a short explanation"},
					&cli.BoolFlag{Name: "refresh", Usage: "Bypass the cached response"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("word is required"))
					}
					word := c.Args().First()

					if c.Bool("full") {
						output, err := ops.WordInfo(c.Context, env, ops.WordInfoInput{
							Word:     word,
							Sentence: c.String("sentence"),
							Refresh:  c.Bool("refresh"),
						})
						if err != nil {
							return outputError(err)
						}
						return outputJSON(output)
					}

					output, err := ops.ExplainWord(c.Context, env, ops.ExplainWordInput{
						Word:     word,
						Sentence: c.String("sentence"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "phrase",
				Usage:     "Explain a multi-word phrase",
				ArgsUsage: "<phrase>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "refresh", Usage: "Bypass the cached response"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("phrase is required"))
					}
					output, err := ops.PhraseInfo(c.Context, env, ops.WordInfoInput{
						Word:    strings.Join(c.Args().Slice(), " "),
						Refresh: c.Bool("refresh"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "translate",
				Usage:     "Translate a word, checking stored word lists first",
				ArgsUsage: "<word>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "save", Usage: "Store the translation in the vocabulary"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("word is required"))
					}
					output, err := ops.TranslateWord(c.Context, env, ops.TranslateWordInput{
						Word: c.Args().First(),
						Save: c.Bool("save"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "clear-cache",
				Usage: "Clear cached word and phrase explanations",
				Action: func(c *cli.Context) error {
					output, err := ops.ClearInfoCache(env)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// exportCmd creates the export command.
func exportCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the vocabulary to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.chytanka/exports/vocab-<stage>-<timestamp>.jsonl)"},
			&cli.StringFlag{Name: "stage", Aliases: []string{"s"}, Usage: "Only export words in this stage"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(c.Context, env, ops.ExportInput{
				Path:  c.String("path"),
				Stage: c.String("stage"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import vocabulary from a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "skip", Usage: "Collision mode: skip|replace"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Import(env, ops.ImportInput{
				Path: c.String("path"),
				Mode: ops.ImportMode(c.String("mode")),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the read-only web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Value: 8990, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(env, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// ANSI colors for the reading view.
const (
	ansiKnown    = "\x1b[32m"
	ansiLearning = "\x1b[33m"
	ansiNew      = "\x1b[31;1m"
	ansiDim      = "\x1b[2m"
	ansiReset    = "\x1b[0m"
)

// stageColor maps a learning stage to its ANSI color.
func stageColor(stage uktext.Stage) string {
	switch stage {
	case uktext.StageKnown:
		return ansiKnown
	case uktext.StageLearning:
		return ansiLearning
	default:
		return ansiNew
	}
}

// printReadingView renders an annotated text to stdout with stage colors.
func printReadingView(out *ops.ReadTextOutput) {
	fmt.Printf("%s (%s)\n", out.Text.Title, out.Text.Difficulty)
	fmt.Printf("%s%d words, %.1f%% known%s\n\n", ansiDim, out.WordCount, out.KnownPercentage, ansiReset)

	for _, tokens := range out.Lines {
		for _, tok := range tokens {
			if tok.IsWord {
				fmt.Print(stageColor(tok.Stage), tok.Text, ansiReset)
			} else {
				fmt.Print(tok.Text)
			}
		}
		fmt.Println()
	}

	if len(out.UnknownWords) > 0 {
		fmt.Printf("\n%sUnknown words:%s %s\n", ansiDim, ansiReset, strings.Join(out.UnknownWords, ", "))
	}
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if appErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", appErr.Code, appErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseTags splits a comma-separated string into a slice of tags.
func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
