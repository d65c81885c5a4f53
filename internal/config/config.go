package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/QuantumMaverickElite/Quant/internal/model"
)

var validate = validator.New()

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider string `yaml:"provider" default:"yahoo" validate:"oneof=yahoo stooq csv mock"`
		Symbol   string `yaml:"symbol" default:"SPY" validate:"required"`
		CSVPath  string `yaml:"csv_path"`
	} `yaml:"data_source"`
	Range struct {
		Start string `yaml:"start" default:"2005-01-01"`
		End   string `yaml:"end"` // empty means today
	} `yaml:"range"`
	Strategy model.StrategyParams `yaml:"strategy"`
	Output   struct {
		Dir        string `yaml:"dir" default:"outputs"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"output"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron" default:"0 30 22 * * 1-5"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy    string `yaml:"proxy"`
	LogLevel string `yaml:"log_level" default:"info"`
	Debug    bool   `yaml:"debug"`
}

// Load reads config from a YAML file, applies environment variable overrides,
// then fills remaining zero fields with defaults. A missing file is fine; the
// defaults alone form a runnable configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("QUANT_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("QUANT_SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("QUANT_CSV_PATH"); v != "" {
		cfg.DataSource.CSVPath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Output.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return cfg, nil
}

// Validate rejects a bad configuration before any computation begins.
// Nothing is silently clamped.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if c.Strategy.CrashMaxHoldDays < c.Strategy.CrashWindowDays {
		return fmt.Errorf("crash_max_hold_days (%d) must be >= crash_window_days (%d)",
			c.Strategy.CrashMaxHoldDays, c.Strategy.CrashWindowDays)
	}
	if c.DataSource.Provider == "csv" && c.DataSource.CSVPath == "" {
		return fmt.Errorf("data_source.csv_path is required when provider is csv")
	}
	if _, _, err := c.Window(); err != nil {
		return err
	}
	return nil
}

// Window parses the configured date range. An empty end means today.
func (c *Config) Window() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", c.Range.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("range.start: %w", err)
	}
	if c.Range.End == "" {
		end = time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	} else {
		end, err = time.Parse("2006-01-02", c.Range.End)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("range.end: %w", err)
		}
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("range.end %s must be after range.start %s", c.Range.End, c.Range.Start)
	}
	return start, end, nil
}
