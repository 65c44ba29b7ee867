package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the interactive session settings read from ~/.amalgamrc.
// Every field has a default, so a missing file is not an error.
type Config struct {
	Prompt       string `yaml:"prompt"`
	PromptCont   string `yaml:"prompt_cont"`
	HistoryFile  string `yaml:"history_file"`
	HistoryLimit int    `yaml:"history_limit"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Prompt:       DefaultPrompt,
		PromptCont:   DefaultPromptCont,
		HistoryFile:  DefaultHistoryFile,
		HistoryLimit: DefaultHistoryLimit,
	}
}

// Load reads path as YAML over the defaults. An absent file yields the
// defaults; a present but malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.PromptCont == "" {
		cfg.PromptCont = DefaultPromptCont
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = DefaultHistoryFile
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
	return cfg, nil
}

// LoadDefault loads the configuration from the user's home directory.
func LoadDefault() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	return Load(filepath.Join(home, ConfigFileName))
}

// HistoryPath resolves the history file against the user's home directory
// unless it is already absolute.
func (c *Config) HistoryPath() string {
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.HistoryFile
	}
	return filepath.Join(home, c.HistoryFile)
}
