// Wayfarer is a text-adventure runtime: Lua-authored worlds, a deterministic
// parser, and saves that survive behavior reattachment.
// Usage: wayfarer [--version] [--plain] [--config <file>] [--script <file>] [--trace] <game_directory>
package main

import (
	"fmt"
	"os"

	"github.com/nathoo/wayfarer/cli"
	"github.com/nathoo/wayfarer/config"
	"github.com/nathoo/wayfarer/engine"
	"github.com/nathoo/wayfarer/engine/persist"
	"github.com/nathoo/wayfarer/script"
	"github.com/nathoo/wayfarer/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	trace := false
	var gameDir string
	var scriptFile string
	configPath := config.DefaultPath()

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("wayfarer %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--config":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--config requires a file path\n")
				os.Exit(1)
			}
			i++
			configPath = args[i]
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}

	if gameDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: wayfarer [--version] [--plain] [--config <file>] [--script <file>] [--trace] <game_directory>\n")
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	src, err := script.Load(gameDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	var cipher persist.Cipher
	if cfg.Passphrase != "" {
		cipher = persist.NewKeyCipher(cfg.Passphrase)
	}
	store, err := persist.NewStore(cfg.SaveDir, cipher)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening save store: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(src.Factory(), store)
	defer eng.Close()

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.DefaultSlot = cfg.DefaultSlot
		c.Run()
		return
	}

	// Use plain CLI if --plain, the config says so, or stdout is not a terminal.
	if plain || cfg.Plain || !isTerminal() {
		c := cli.New(eng)
		c.Trace = trace
		c.DefaultSlot = cfg.DefaultSlot
		c.Run()
		return
	}

	if err := tui.Run(eng, cfg.DefaultSlot); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
