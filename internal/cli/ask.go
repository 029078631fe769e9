// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler.
//
// Command: ask [question]
//
// Examples:
//   arcana ask "What is the capital of France?"
//   arcana ask "generate an image of a lighthouse at dusk"
//   arcana ask                 Interactive prompt with input history
//   arcana ask --plain "..."   Raw text output, no markdown rendering
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/froydinger/arcana-tui/internal/config"
	"github.com/froydinger/arcana-tui/internal/model"
	"github.com/froydinger/arcana-tui/internal/openai"
	"github.com/froydinger/arcana-tui/internal/router"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// askHistoryFile is the basename of the ask REPL history, kept next to
// the configuration file.
const askHistoryFile = "ask_history"

// AskCLI provides input history and line editing for the ask prompt.
type AskCLI struct {
	line        *liner.State
	historyFile string
}

// NewAskCLI creates an AskCLI with history loaded from disk.
func NewAskCLI() *AskCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}
	cli := &AskCLI{
		line:        line,
		historyFile: filepath.Join(dir, askHistoryFile),
	}

	if f, err := os.Open(cli.historyFile); err == nil {
		cli.line.ReadHistory(f)
		f.Close()
	}
	return cli
}

// ReadInput reads one line with history navigation.
func (c *AskCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and releases the terminal.
func (c *AskCLI) Close() {
	if err := config.EnsureDir(); err == nil {
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk runs the ask command: a one-shot question when a query was
// given, otherwise an interactive prompt loop.
func HandleAsk(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client := openai.NewClient(cfg.OpenAI.APIKey).
		WithBaseURL(cfg.OpenAI.BaseURL).
		WithChatModel(cfg.OpenAI.ChatModel).
		WithImageModel(cfg.OpenAI.ImageModel)

	orc := router.New(client)
	orc.SetUser(cfg.Settings.Name, cfg.Settings.Instructions)

	conv := model.NewConversation()

	if args.Query != "" {
		return runTurn(orc, conv, args.Query, args.Plain)
	}

	return askREPL(orc, conv, args.Plain)
}

// askREPL runs the interactive prompt loop. The conversation carries
// across turns but is not persisted.
func askREPL(orc *router.Orchestrator, conv *model.Conversation, plain bool) error {
	cli := NewAskCLI()
	defer cli.Close()

	fmt.Println(infoStyle.Render("arcana ask - /new starts over, /quit or Ctrl+D exits"))

	for {
		input, err := cli.ReadInput(promptStyle.Render("arcana> "))
		if err != nil {
			// Ctrl+C or Ctrl+D
			fmt.Println()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "/quit", "/q", "exit", "quit":
			return nil
		case "/new", "/n":
			conv = model.NewConversation()
			fmt.Println(infoStyle.Render("started a new conversation"))
			continue
		case "/help", "/h":
			fmt.Println(infoStyle.Render("/new  start a new conversation\n/quit exit"))
			continue
		}

		if err := runTurn(orc, conv, input, plain); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", warnStyle.Render("[error]"), err)
		}
	}
}

// runTurn dispatches one turn and prints the reply.
func runTurn(orc *router.Orchestrator, conv *model.Conversation, input string, plain bool) error {
	turn := orc.Send(context.Background(), conv, input)

	conv.AddUserMessage(input)
	conv.AddMessage(turn.Reply)

	fmt.Println(renderReply(turn.Reply, plain))
	return nil
}

// renderReply formats an assistant reply for the terminal, rendering
// markdown through glamour unless plain output was requested.
func renderReply(reply *model.Message, plain bool) string {
	out := reply.Content
	if !plain {
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(terminalWidth()),
		); err == nil {
			if rendered, err := r.Render(reply.Content); err == nil {
				out = strings.TrimRight(rendered, "\n")
			}
		}
	}

	if reply.HasImages() {
		var b strings.Builder
		b.WriteString(out)
		for _, u := range reply.Images() {
			b.WriteString("\n")
			b.WriteString(keyStyle.Render(u))
		}
		out = b.String()
	}
	return out
}

// terminalWidth returns the stdout width capped for readability.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	if w > 100 {
		return 100
	}
	return w
}
