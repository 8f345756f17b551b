// Package config loads the langplug TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Server points langplug at the content server.
type Server struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
}

// Languages is the default learning pair.
type Languages struct {
	Original    string `toml:"original"`
	Translation string `toml:"translation"`
}

// Vocabulary configures the local mastery store and gating.
type Vocabulary struct {
	DatabasePath string `toml:"database_path"`
	Ceiling      string `toml:"ceiling"`
}

// Translation configures the LLM translation backend.
type Translation struct {
	Provider    string `toml:"provider"`
	Model       string `toml:"model"`
	APIKey      string `toml:"api_key"`
	Concurrency int    `toml:"concurrency"`
	BatchSize   int    `toml:"batch_size"`
}

// Config is the full configuration tree.
type Config struct {
	Server      Server      `toml:"server"`
	Languages   Languages   `toml:"languages"`
	Vocabulary  Vocabulary  `toml:"vocabulary"`
	Translation Translation `toml:"translation"`
}

// Default returns the built-in configuration. The vocabulary database
// lands under the user config directory when one is resolvable.
func Default() *Config {
	dbPath := "langplug.db"
	if dir, err := os.UserConfigDir(); err == nil {
		dbPath = filepath.Join(dir, "langplug", "langplug.db")
	}
	return &Config{
		Languages: Languages{
			Original:    "de",
			Translation: "en",
		},
		Vocabulary: Vocabulary{
			DatabasePath: dbPath,
			Ceiling:      "B1",
		},
		Translation: Translation{
			Provider:    "gemini",
			Concurrency: 3,
			BatchSize:   50,
		},
	}
}

// DefaultPath returns the expected config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "langplug.toml"
	}
	return filepath.Join(dir, "langplug", "config.toml")
}

// Load reads the config at path, layering it over defaults. A missing
// file is not an error; the defaults stand. Secrets fall back to
// environment variables when unset.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if cfg.Server.Token == "" {
		cfg.Server.Token = os.Getenv("LANGPLUG_TOKEN")
	}
	if cfg.Translation.APIKey == "" {
		switch strings.ToLower(cfg.Translation.Provider) {
		case "openai":
			cfg.Translation.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			cfg.Translation.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		default:
			cfg.Translation.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if c.Vocabulary.DatabasePath == "" {
		return fmt.Errorf("vocabulary.database_path is required")
	}
	switch strings.ToUpper(c.Vocabulary.Ceiling) {
	case "A1", "A2", "B1", "B2", "C1", "C2":
	default:
		return fmt.Errorf(
			"vocabulary.ceiling %q is not a CEFR level (A1-C2)",
			c.Vocabulary.Ceiling,
		)
	}
	switch strings.ToLower(c.Translation.Provider) {
	case "", "gemini", "openai", "anthropic":
	default:
		return fmt.Errorf(
			"translation.provider %q is not supported (gemini, openai, anthropic)",
			c.Translation.Provider,
		)
	}
	if c.Translation.Concurrency < 0 {
		return fmt.Errorf("translation.concurrency must not be negative")
	}
	if c.Translation.BatchSize < 0 {
		return fmt.Errorf("translation.batch_size must not be negative")
	}
	return nil
}
