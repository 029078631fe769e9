// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Configuration command handlers.
//
// Command: config [show|set|path]
//
// Examples:
//   arcana config show
//   arcana config set theme ocean
//   arcana config set openai.api_key sk-...
//   arcana config path
package cli

import (
	"fmt"
	"strings"

	"github.com/froydinger/arcana-tui/internal/config"
)

// HandleConfig runs the config command.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow()
	case "set":
		return configSet(args.ConfigKey, args.ConfigVal)
	case "path":
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	default:
		return fmt.Errorf("unknown config subcommand: %s", args.Subcommand)
	}
}

// configShow prints the current configuration with the API key masked.
func configShow() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	print := func(key, val string) {
		fmt.Printf("%s = %s\n", keyStyle.Render(key), val)
	}

	print("name", cfg.Settings.Name)
	print("instructions", cfg.Settings.Instructions)
	print("theme", cfg.Settings.Theme)
	print("avatar_url", cfg.Settings.AvatarURL)
	print("openai.api_key", maskKey(cfg.OpenAI.APIKey))
	print("openai.chat_model", cfg.OpenAI.ChatModel)
	print("openai.image_model", cfg.OpenAI.ImageModel)
	print("openai.base_url", cfg.OpenAI.BaseURL)
	return nil
}

// configSet updates a single configuration value and writes the file back.
func configSet(key, val string) error {
	if key == "" {
		return fmt.Errorf("usage: arcana config set KEY VALUE")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch strings.ToLower(key) {
	case "name":
		cfg.Settings.Name = val
	case "instructions":
		cfg.Settings.Instructions = val
	case "theme":
		if !config.ValidTheme(strings.ToLower(val)) {
			return fmt.Errorf("unknown theme %q (themes: %s)",
				val, strings.Join(config.Themes, ", "))
		}
		cfg.Settings.Theme = strings.ToLower(val)
	case "avatar_url":
		cfg.Settings.AvatarURL = val
	case "openai.api_key":
		cfg.OpenAI.APIKey = val
	case "openai.chat_model":
		cfg.OpenAI.ChatModel = val
	case "openai.image_model":
		cfg.OpenAI.ImageModel = val
	case "openai.base_url":
		cfg.OpenAI.BaseURL = val
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("%s set\n", keyStyle.Render(key))
	return nil
}

// maskKey hides the API key contents while showing whether one is set.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	return fmt.Sprintf("[set, length=%d]", len(key))
}
