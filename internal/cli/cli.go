// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"
)

// Version information (can be overridden at build time).
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdConfig
	CmdReset
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Query is the joined free text after the command (ask).
	Query string

	// Subcommand is the first argument after the command (config).
	Subcommand string

	// Config set arguments
	ConfigKey string
	ConfigVal string

	// Global flags
	Confirm bool // --yes: skip confirmation prompts
	Plain   bool // --plain: no markdown rendering

	// Raw args remaining after the command name
	Raw []string
}

const usageText = `arcana - AI companion for the terminal

Arcana is a conversational AI client built on the OpenAI API. It keeps
your conversations on disk, renders replies as markdown, and can generate
images when you ask it to.

Usage:
  arcana                      Start the chat interface (default)
  arcana ask "question"       Ask a single question and print the reply
  arcana ask                  Interactive question prompt with history
  arcana config show          Print the current configuration
  arcana config set KEY VAL   Update a configuration value
  arcana config path          Print the configuration file location
  arcana reset                Delete all conversations and settings
  arcana version              Print version information

Config keys:
  name, instructions, theme, avatar_url,
  openai.api_key, openai.chat_model, openai.image_model, openai.base_url

Themes: light, dark, forest, midnight, ocean, sunset, purple

Flags:
  --yes      Skip confirmation prompts (reset)
  --plain    Print replies without markdown rendering (ask)

Environment:
  ARCANA_OPENAI_KEY        API key override
  ARCANA_OPENAI_BASE_URL   API endpoint override
  ARCANA_THEME             Theme override

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("arcana version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses the given arguments (without the program name) and returns
// the command to run and its arguments.
func Parse(argv []string) (Command, Args) {
	var args Args

	remaining := make([]string, 0, len(argv))
	for _, a := range argv {
		switch a {
		case "--yes", "-y":
			args.Confirm = true
		case "--plain":
			args.Plain = true
		case "--help", "-h":
			return CmdHelp, args
		case "--version":
			return CmdVersion, args
		default:
			remaining = append(remaining, a)
		}
	}

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "ask":
		args.Query = strings.TrimSpace(strings.Join(remaining, " "))
		return CmdAsk, args

	case "config":
		if len(remaining) > 0 {
			args.Subcommand = strings.ToLower(remaining[0])
		}
		if args.Subcommand == "set" {
			if len(remaining) > 1 {
				args.ConfigKey = remaining[1]
			}
			if len(remaining) > 2 {
				args.ConfigVal = strings.Join(remaining[2:], " ")
			}
		}
		return CmdConfig, args

	case "reset":
		return CmdReset, args

	case "version", "v":
		return CmdVersion, args

	case "help", "h":
		return CmdHelp, args

	default:
		// Unknown commands show usage rather than guessing.
		return CmdHelp, args
	}
}
