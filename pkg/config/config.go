/*
Package config manages TOML config for symserve.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/symserve/internal/utils"
	"github.com/bastiangx/symserve/pkg/match"
	"github.com/bastiangx/symserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Search modes.
const (
	ModeGlobal  = "global"
	ModePackage = "package"
)

// Config holds the entire config structure
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Scoring match.Weights `toml:"scoring"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
}

// SearchConfig selects the corpus scope and result window.
type SearchConfig struct {
	Mode           string `toml:"mode"`
	Package        string `toml:"package"`
	MaxResults     int    `toml:"max_results"`
	Inline         bool   `toml:"inline"`
	CacheSize      int    `toml:"cache_size"`
	HighlightOpen  string `toml:"highlight_open"`
	HighlightClose string `toml:"highlight_close"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxQueryLength int `toml:"max_query_length"`
	MaxSessions    int `toml:"max_sessions"`
}

// CliConfig holds interactive interface options.
type CliConfig struct {
	ShowTiming bool `toml:"show_timing"`
	ShowKind   bool `toml:"show_kind"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/symserve (or $XDG_CONFIG_HOME/symserve)
// 2. ~/Library/Application Support/symserve (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}

	primaryPath := filepath.Join(homeDir, ".config", "symserve")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		primaryPath = filepath.Join(xdg, "symserve")
	}
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "symserve")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/symserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at %s: %v. Using built-in defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	opts := suggest.DefaultOptions()
	return &Config{
		Search: SearchConfig{
			Mode:           ModeGlobal,
			MaxResults:     suggest.GlobalLimit,
			CacheSize:      opts.CacheSize,
			HighlightOpen:  opts.HighlightOpen,
			HighlightClose: opts.HighlightClose,
		},
		Scoring: match.DefaultWeights(),
		Server: ServerConfig{
			MaxQueryLength: 60,
			MaxSessions:    64,
		},
		CLI: CliConfig{
			ShowTiming: true,
			ShowKind:   true,
		},
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.Search.Mode {
	case ModeGlobal:
	case ModePackage:
		if c.Search.Package == "" {
			return fmt.Errorf("search mode %q requires search.package", ModePackage)
		}
	default:
		return fmt.Errorf("unknown search mode %q", c.Search.Mode)
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search.max_results must not be negative, got %d", c.Search.MaxResults)
	}
	if c.Server.MaxQueryLength < 1 {
		return fmt.Errorf("server.max_query_length must be positive, got %d", c.Server.MaxQueryLength)
	}
	return nil
}

// Limit returns the result window size for the configured mode.
// Inline package filtering shows every match.
func (c *Config) Limit() int {
	if c.Search.Inline {
		return suggest.NoLimit
	}
	return c.Search.MaxResults
}

// RankerOptions converts the config into ranker options.
func (c *Config) RankerOptions() suggest.Options {
	return suggest.Options{
		Weights:        c.Scoring,
		HighlightOpen:  c.Search.HighlightOpen,
		HighlightClose: c.Search.HighlightClose,
		CacheSize:      c.Search.CacheSize,
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, salvaging valid sections of a broken file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse applies every recognizable key of a file that failed typed decoding
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(raw, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(raw, "scoring"); ok {
		extractScoring(section, &config.Scoring)
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		utils.ApplyInt(section, "max_query_length", &config.Server.MaxQueryLength)
		utils.ApplyInt(section, "max_sessions", &config.Server.MaxSessions)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		utils.ApplyBool(section, "show_timing", &config.CLI.ShowTiming)
		utils.ApplyBool(section, "show_kind", &config.CLI.ShowKind)
	}
	return config, nil
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	utils.ApplyString(data, "mode", &search.Mode)
	utils.ApplyString(data, "package", &search.Package)
	utils.ApplyInt(data, "max_results", &search.MaxResults)
	utils.ApplyBool(data, "inline", &search.Inline)
	utils.ApplyInt(data, "cache_size", &search.CacheSize)
	utils.ApplyString(data, "highlight_open", &search.HighlightOpen)
	utils.ApplyString(data, "highlight_close", &search.HighlightClose)
}

func extractScoring(data map[string]any, w *match.Weights) {
	utils.ApplyInt(data, "adjacency_bonus", &w.AdjacencyBonus)
	utils.ApplyInt(data, "separator_bonus", &w.SeparatorBonus)
	utils.ApplyInt(data, "camel_bonus", &w.CamelBonus)
	utils.ApplyInt(data, "leading_letter_penalty", &w.LeadingLetterPenalty)
	utils.ApplyInt(data, "max_leading_letter_penalty", &w.MaxLeadingLetterPenalty)
	utils.ApplyInt(data, "unmatched_letter_penalty", &w.UnmatchedLetterPenalty)
	utils.ApplyInt(data, "substring_bonus", &w.SubstringBonus)
	utils.ApplyInt(data, "seen_dot_bonus", &w.SeenDotBonus)
}

// RebuildConfigFile force creates a new config.toml at the default path
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes search values and saves to file
func (c *Config) Update(configPath string, maxResults *int, inline *bool, mode, pkg *string) error {
	if maxResults != nil {
		c.Search.MaxResults = *maxResults
	}
	if inline != nil {
		c.Search.Inline = *inline
	}
	if mode != nil {
		c.Search.Mode = *mode
	}
	if pkg != nil {
		c.Search.Package = *pkg
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return SaveConfig(c, configPath)
}
