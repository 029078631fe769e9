// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// reset.go - Full data reset command handler.
//
// Command: reset
//
// Deletes every stored conversation along with the pinned and selection
// state, and restores the configuration file to defaults. Asks for
// confirmation unless --yes was given.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/froydinger/arcana-tui/internal/config"
	"github.com/froydinger/arcana-tui/internal/storage"
)

// HandleReset runs the reset command.
func HandleReset(args Args) error {
	if !args.Confirm {
		ok, err := confirmPrompt("Delete ALL conversations and reset settings? (y/N) ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println(infoStyle.Render("reset cancelled"))
			return nil
		}
	}

	store, err := storage.NewStore()
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	store.Clear()

	if _, err := config.Reset(); err != nil {
		return fmt.Errorf("resetting config: %w", err)
	}

	fmt.Println(warnStyle.Render("all conversations deleted, settings restored to defaults"))
	return nil
}

// confirmPrompt reads a yes/no answer from stdin. Anything other than
// "y" or "yes" counts as no.
func confirmPrompt(prompt string) (bool, error) {
	fmt.Print(promptStyle.Render(prompt))

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
