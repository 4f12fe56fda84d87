package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when neither --config nor CONFIG_PATH is given.
const DefaultPath = "configs/config.yaml"

const (
	SourceAPI  = "api"
	SourceDemo = "demo"
)

// RefreshOff disables the periodic refresh when used as schedule.refresh_cron.
const RefreshOff = "off"

// Config holds all application configuration.
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Source  string `yaml:"source"`
		// RequestTimeout bounds each request. Zero means the default;
		// a negative value disables the deadline.
		RequestTimeout time.Duration `yaml:"request_timeout"`
	} `yaml:"api"`
	Dashboard struct {
		Theme string `yaml:"theme"`
	} `yaml:"dashboard"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// ResolvePath picks the config file: explicit flag, then CONFIG_PATH, then DefaultPath.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then defaults. A missing file is not an error.
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

	// .env never overrides variables already set in the environment
	_ = godotenv.Load()

	if v := os.Getenv("ANALYZER_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("ANALYZER_SOURCE"); v != "" {
		cfg.API.Source = v
	}
	if v := os.Getenv("ANALYZER_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse ANALYZER_REQUEST_TIMEOUT: %w", err)
		}
		cfg.API.RequestTimeout = d
	}
	if v := os.Getenv("ANALYZER_THEME"); v != "" {
		cfg.Dashboard.Theme = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.API.Source == "" {
		cfg.API.Source = SourceAPI
	}
	cfg.API.Source = strings.ToLower(cfg.API.Source)
	if cfg.API.RequestTimeout == 0 {
		cfg.API.RequestTimeout = 5 * time.Second
	}
	if cfg.Dashboard.Theme == "" {
		cfg.Dashboard.Theme = "light"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * *"
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Schedule.RefreshCron), RefreshOff) {
		cfg.Schedule.RefreshCron = ""
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	return cfg, nil
}

// Validate checks the fields every command needs.
func (c *Config) Validate() error {
	switch c.API.Source {
	case SourceAPI:
		if c.API.BaseURL == "" {
			return fmt.Errorf("api.base_url is required when api.source is %q", SourceAPI)
		}
	case SourceDemo:
	default:
		return fmt.Errorf("api.source must be %q or %q, got %q", SourceAPI, SourceDemo, c.API.Source)
	}
	return nil
}

// ValidateBot additionally checks the Telegram credentials.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
