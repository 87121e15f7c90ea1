// Package config loads ghost's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all ghost configuration.
type Config struct {
	// DBPath is the SQLite file holding records and settings.
	DBPath string `yaml:"db_path"`

	// Voice is the initial speech setting. A value saved with
	// "voice on/off" overrides it.
	Voice bool `yaml:"voice"`

	// Notify enables desktop notifications for reminders and timers.
	Notify bool `yaml:"notify"`

	Quiz     QuizConfig     `yaml:"quiz"`
	Pomodoro PomodoroConfig `yaml:"pomodoro"`
	History  HistoryConfig  `yaml:"history"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// QuizConfig configures the quiz flow.
type QuizConfig struct {
	Questions int    `yaml:"questions"`
	Deadline  string `yaml:"deadline"` // per question, e.g. "30s"
}

// PomodoroConfig configures focus sessions.
type PomodoroConfig struct {
	Work string `yaml:"work"` // e.g. "25m"
}

// HistoryConfig caps the persisted chat transcript.
type HistoryConfig struct {
	Limit int `yaml:"limit"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// Dir returns ghost's home directory (~/.ghost).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ghost"
	}
	return filepath.Join(home, ".ghost")
}

// DefaultPath returns the config file location, honouring GHOST_CONFIG.
func DefaultPath() string {
	if p := os.Getenv("GHOST_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DBPath: filepath.Join(Dir(), "ghost.db"),
		Voice:  false,
		Notify: true,
		Quiz: QuizConfig{
			Questions: 10,
			Deadline:  "30s",
		},
		Pomodoro: PomodoroConfig{
			Work: "25m",
		},
		History: HistoryConfig{
			Limit: 200,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if p := os.Getenv("GHOST_DB"); p != "" {
		c.DBPath = p
	}
	if lvl := os.Getenv("GHOST_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
}

// Validate checks durations and limits.
func (c *Config) Validate() error {
	if c.Quiz.Questions <= 0 {
		return fmt.Errorf("quiz.questions must be positive, got %d", c.Quiz.Questions)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative, got %d", c.History.Limit)
	}
	if _, err := c.QuizDeadline(); err != nil {
		return err
	}
	if _, err := c.PomodoroWork(); err != nil {
		return err
	}
	return nil
}

// QuizDeadline returns the per-question answer time.
func (c *Config) QuizDeadline() (time.Duration, error) {
	return positiveDuration("quiz.deadline", c.Quiz.Deadline)
}

// PomodoroWork returns the focus session length.
func (c *Config) PomodoroWork() (time.Duration, error) {
	return positiveDuration("pomodoro.work", c.Pomodoro.Work)
}

func positiveDuration(name, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, s)
	}
	return d, nil
}
