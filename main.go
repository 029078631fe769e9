// arcana - An AI companion for the terminal.
//
// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/froydinger/arcana-tui/internal/assetcache"
	"github.com/froydinger/arcana-tui/internal/cli"
	"github.com/froydinger/arcana-tui/internal/config"
	"github.com/froydinger/arcana-tui/internal/openai"
	"github.com/froydinger/arcana-tui/internal/registry"
	"github.com/froydinger/arcana-tui/internal/router"
	"github.com/froydinger/arcana-tui/internal/storage"
	"github.com/froydinger/arcana-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// watcherDebounce settles rapid editor write bursts into one reload.
const watcherDebounce = 250 * time.Millisecond

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	switch cmd {
	case cli.CmdTUI:
		runTUI()
	case cli.CmdAsk:
		if err := cli.HandleAsk(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdConfig:
		if err := cli.HandleConfig(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdReset:
		if err := cli.HandleReset(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		runTUI()
	}
}

// runTUI wires the full application and starts the chat interface.
func runTUI() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	client := openai.NewClient(cfg.OpenAI.APIKey).
		WithBaseURL(cfg.OpenAI.BaseURL).
		WithChatModel(cfg.OpenAI.ChatModel).
		WithImageModel(cfg.OpenAI.ImageModel)

	if !client.IsConfigured() {
		fmt.Fprintln(os.Stderr, "Warning: no OpenAI API key configured. Run 'arcana config set openai.api_key KEY' or set ARCANA_OPENAI_KEY.")
	}

	orc := router.New(client)
	orc.SetUser(cfg.Settings.Name, cfg.Settings.Instructions)

	store, err := storage.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	reg := registry.Load(store, store)

	// Warm the asset cache in the background. Failures here never block
	// startup; the cache is an optimization, not a dependency.
	if cache := openAssetCache(cfg); cache != nil {
		defer cache.Close()
		go func() {
			if err := cache.Activate(); err != nil {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			cache.Prefetch(ctx, []string{cfg.Settings.AvatarURL})
		}()
	}

	m := chat.New(cfg, reg, orc)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Reload settings into the running program when the file changes.
	if path, err := config.Path(); err == nil {
		watcher, err := config.NewWatcher(path, watcherDebounce, func(c *config.Config) {
			p.Send(chat.ConfigReloadedMsg{Config: c})
		})
		if err == nil {
			if err := watcher.Watch(); err == nil {
				defer watcher.Close()
			}
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running arcana: %v\n", err)
		os.Exit(1)
	}
}

// openAssetCache opens the versioned asset cache under the config dir,
// scoped to the avatar's origin. Returns nil when there is nothing to
// cache or the cache cannot be opened.
func openAssetCache(cfg *config.Config) *assetcache.Cache {
	if cfg.Settings.AvatarURL == "" {
		return nil
	}
	origin, err := url.Parse(cfg.Settings.AvatarURL)
	if err != nil || origin.Host == "" {
		return nil
	}

	dir, err := config.Dir()
	if err != nil {
		return nil
	}
	cacheDir := filepath.Join(dir, "cache")
	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return nil
	}

	cache, err := assetcache.Open(cacheDir, origin.Scheme+"://"+origin.Host)
	if err != nil {
		return nil
	}
	return cache
}
