// Copyright (c) 2025 Froydinger Media Group
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides settings loading and management for arcana.
//
// Settings live in a TOML file with sensible defaults, environment
// variable overrides, and a migration pass that strips keys left behind
// by older releases.
//
// Configuration file location: ~/.arcana/config.toml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete arcana configuration.
type Config struct {
	Settings Settings     `toml:"settings"`
	OpenAI   OpenAIConfig `toml:"openai"`
}

// Settings holds user preferences.
type Settings struct {
	// Name is the display name the assistant addresses the user by.
	Name string `toml:"name"`
	// Instructions are free-text custom behavior directives appended to
	// the system prompt.
	Instructions string `toml:"instructions"`
	// Theme selects the UI palette. One of the Themes list.
	Theme string `toml:"theme"`
	// AvatarURL is an optional avatar shown next to user messages.
	AvatarURL string `toml:"avatar_url"`
}

// OpenAIConfig holds the API connection settings.
type OpenAIConfig struct {
	// APIKey is the OpenAI API key. Usually supplied via ARCANA_OPENAI_KEY.
	APIKey string `toml:"api_key"`
	// ChatModel is the text-completion model.
	ChatModel string `toml:"chat_model"`
	// ImageModel is the image-generation model.
	ImageModel string `toml:"image_model"`
	// BaseURL overrides the API base URL (for proxies and tests).
	BaseURL string `toml:"base_url"`
}

// Themes is the fixed palette of valid theme names.
var Themes = []string{"light", "dark", "forest", "midnight", "ocean", "sunset", "purple"}

// DefaultTheme is used for fresh installs and unknown theme values.
const DefaultTheme = "purple"

// ValidTheme reports whether name is one of the fixed palette.
func ValidTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

// deprecatedKeys are top-level settings keys written by older releases.
// They are dropped on load and the cleaned file is written back.
var deprecatedKeys = []string{
	"gemini_api_key",
	"google_search_api_key",
	"openai_key",
	"enable_sound_effects",
	"sound_effects_volume",
	"enable_music",
	"music_volume",
	"has_completed_onboarding",
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Settings: Settings{
			Name:         "",
			Instructions: "",
			Theme:        DefaultTheme,
		},
		OpenAI: OpenAIConfig{
			APIKey:     "",
			ChatModel:  "gpt-4.1-nano",
			ImageModel: "dall-e-3",
			BaseURL:    "https://api.openai.com/v1",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// Dir returns the arcana configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".arcana"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions fixes permissions on the config file.
// The file may hold an API key, so it must be owner-only.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads the config file, applies defaults, migration, environment
// overrides, and validation. A missing file yields defaults, never an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, statErr := os.Stat(path); statErr == nil {
		if err := ensureSecurePermissions(path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
		}

		migrated, err := migrateFile(path)
		if err != nil {
			return nil, fmt.Errorf("config migration failed: %w", err)
		}

		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}

		if migrated {
			// Persist the cleaned file so deprecated keys are gone for good.
			if err := SaveToPath(cfg, path); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not rewrite migrated config: %v\n", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variables on top of file values.
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("ARCANA_OPENAI_KEY"); key != "" {
		c.OpenAI.APIKey = strings.TrimSpace(key)
	}
	if base := os.Getenv("ARCANA_OPENAI_BASE_URL"); base != "" {
		c.OpenAI.BaseURL = strings.TrimSuffix(base, "/")
	}
	if theme := os.Getenv("ARCANA_THEME"); theme != "" {
		c.Settings.Theme = theme
	}
}

// fillDefaults fills in any missing values with defaults.
func (c *Config) fillDefaults() {
	defaults := Default()
	if c.Settings.Theme == "" {
		c.Settings.Theme = defaults.Settings.Theme
	}
	if c.OpenAI.ChatModel == "" {
		c.OpenAI.ChatModel = defaults.OpenAI.ChatModel
	}
	if c.OpenAI.ImageModel == "" {
		c.OpenAI.ImageModel = defaults.OpenAI.ImageModel
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = defaults.OpenAI.BaseURL
	}
}

// Validate normalizes and checks the configuration. An unknown theme
// falls back to the default rather than failing: the user should never
// be locked out of the app by a bad palette name.
func (c *Config) Validate() error {
	c.Settings.Theme = strings.ToLower(strings.TrimSpace(c.Settings.Theme))
	if !ValidTheme(c.Settings.Theme) {
		fmt.Fprintf(os.Stderr, "Warning: unknown theme %q, using %q\n", c.Settings.Theme, DefaultTheme)
		c.Settings.Theme = DefaultTheme
	}

	c.OpenAI.BaseURL = strings.TrimSuffix(c.OpenAI.BaseURL, "/")
	if !strings.HasPrefix(c.OpenAI.BaseURL, "http://") && !strings.HasPrefix(c.OpenAI.BaseURL, "https://") {
		return fmt.Errorf("openai.base_url %q is not an http(s) URL", c.OpenAI.BaseURL)
	}
	return nil
}

// =============================================================================
// MIGRATION
// =============================================================================

// migrateFile strips deprecated keys from the raw TOML before decoding.
// Returns true when anything was removed.
func migrateFile(path string) (bool, error) {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		// Leave malformed files for DecodeFile in the caller to report.
		return false, nil
	}

	removed := false
	for _, key := range deprecatedKeys {
		for _, table := range []string{"settings", "openai"} {
			if sub, ok := raw[table].(map[string]any); ok {
				if _, present := sub[key]; present {
					delete(sub, key)
					removed = true
				}
			}
		}
		if _, present := raw[key]; present {
			delete(raw, key)
			removed = true
		}
	}
	return removed, nil
}

// =============================================================================
// SAVE / RESET
// =============================================================================

// Save writes the configuration to the default config file.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration as TOML with owner-only permissions.
func SaveToPath(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# arcana configuration file")
	fmt.Fprintln(file, "# Generated by arcana - edit with care")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Reset deletes the config file and returns the defaults.
func Reset() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove config file: %w", err)
	}
	return Default(), nil
}
