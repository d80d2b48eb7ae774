package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chytanka/chytanka/internal/ai"
	"github.com/chytanka/chytanka/internal/config"
	"github.com/chytanka/chytanka/internal/content"
	"github.com/chytanka/chytanka/internal/db"
	"github.com/chytanka/chytanka/internal/mcp"
	"github.com/chytanka/chytanka/internal/ops"
	"github.com/chytanka/chytanka/internal/vocab"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"add-text": true, "texts": true, "read": true, "stats": true,
	"mark": true, "words": true, "quiz": true,
	"wordlists": true, "import-list": true, "grammar": true,
	"generate": true, "explain": true,
	"export": true, "import": true, "serve": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
    _____ _           _              _
   / ____| |         | |            | |
  | |    | |__  _   _| |_ __ _ _ __ | | ____ _
  | |    | '_ \| | | | __/ _' | '_ \| |/ / _' |
  | |____| | | | |_| | || (_| | | | |   < (_| |
   \_____|_| |_|\__, |\__\__,_|_| |_|_|\_\__,_|
                 __/ |
                |___/   Ukrainian reading trainer

  Usage: chytanka <command> [options]
         chytanka --help

  MCP server mode requires piped input.`)
}

// buildEnv initializes the database, stores, and optional AI generator.
func buildEnv(baseDir string) (*ops.Env, error) {
	database, err := db.Init(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cwd, _ := os.Getwd()
	cfg, err := config.LoadWithLocal(baseDir, cwd)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	db.ConfigurePool(database, cfg)

	manager, err := content.NewManager(baseDir, database)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to open content store: %w", err)
	}

	env := &ops.Env{
		DB:      database,
		Config:  cfg,
		Vocab:   vocab.NewManager(database),
		Content: manager,
	}

	// AI is optional. Without a configured provider the generate and
	// explain operations return PROVIDER_UNAVAILABLE.
	if provider, err := ai.NewProvider(cfg); err == nil {
		env.Generator = ai.NewGenerator(provider)
	}

	return env, nil
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".chytanka")

	env, err := buildEnv(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer env.DB.Close()

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(env)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'chytanka --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	for _, name := range mcp.ValidateDisabledTools(env.Config.DisabledTools) {
		fmt.Fprintf(os.Stderr, "warning: unknown tool in disabled_tools: %q\n", name)
	}
	if err := mcp.Run(env, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
