package config

import "time"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `toml:"database"`
	History  HistoryConfig  `toml:"history"`
	Analysis AnalysisConfig `toml:"analysis"`
	Lexicon  LexiconConfig  `toml:"lexicon"`
	Batch    BatchConfig    `toml:"batch"`
	Logging  LoggingConfig  `toml:"logging"`
	MCP      MCPConfig      `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// HistoryConfig controls how many past analyses are retained
type HistoryConfig struct {
	Limit int `toml:"limit"`
}

// AnalysisConfig contains interactive analysis settings
type AnalysisConfig struct {
	// DelayMS is a presentation-only pause shown before results are printed
	DelayMS int `toml:"delay_ms"`
}

// Delay returns the simulated analysis delay as a duration
func (a AnalysisConfig) Delay() time.Duration {
	return time.Duration(a.DelayMS) * time.Millisecond
}

// LexiconConfig holds the word lists the analyzer matches against.
// Order matters: matched words are reported in list order.
type LexiconConfig struct {
	EngagementWords []string `toml:"engagement_words"`
	SpamWords       []string `toml:"spam_words"`
}

// BatchConfig contains batch analysis settings
type BatchConfig struct {
	Workers int `toml:"workers"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// DefaultEngagementWords are the words that tend to lift open rates
var DefaultEngagementWords = []string{
	"free",
	"urgent",
	"limited time",
	"exclusive",
	"sale",
	"discount",
	"offer",
	"now",
	"don't miss",
	"act fast",
}

// DefaultSpamWords are common spam-filter triggers
var DefaultSpamWords = []string{
	"viagra",
	"enlargement",
	"miracle",
	"guaranteed",
	"cash",
	"winner",
	"prize",
	"nigerian prince",
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/subjectline/subjectline.db",
		},
		History: HistoryConfig{
			Limit: 10,
		},
		Analysis: AnalysisConfig{
			DelayMS: 0,
		},
		Lexicon: LexiconConfig{
			EngagementWords: append([]string(nil), DefaultEngagementWords...),
			SpamWords:       append([]string(nil), DefaultSpamWords...),
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
