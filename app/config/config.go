package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log     Log     `yaml:"log"`
	Backend Backend `yaml:"backend"`
	Socket  Socket  `yaml:"socket"`
	Speech  Speech  `yaml:"speech"`
}

type Backend struct {
	// Base URL of the assistant backend
	BaseURL string `yaml:"base_url" example:"http://localhost:8000" validate:"required,url"`
	// User this client acts for
	UserID string `yaml:"user_id" example:"default_user" validate:"required"`
	// HTTP request timeout
	Timeout time.Duration `yaml:"timeout" example:"30s"`
}

type Socket struct {
	// Realtime endpoint of the backend
	URL string `yaml:"url" example:"ws://localhost:8000/ws" validate:"required"`
	// Maximum reconnect attempts before giving up
	MaxAttempts int `yaml:"max_attempts" example:"5"`
	// Base delay between reconnect attempts, multiplied by the attempt number
	BaseDelay time.Duration `yaml:"base_delay" example:"2s"`
}

type Speech struct {
	// Disable spoken summaries entirely
	Disabled bool `yaml:"disabled" example:"false"`
}

type Log struct {
	// Minimum level written to the console
	Level string `yaml:"level" example:"debug" validate:"oneof=debug info warn error"`
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Log.Level == "" {
		result.Log.Level = "debug"
	}
	if result.Backend.Timeout == 0 {
		result.Backend.Timeout = 30 * time.Second
	}
	if result.Socket.MaxAttempts == 0 {
		result.Socket.MaxAttempts = 5
	}
	if result.Socket.BaseDelay == 0 {
		result.Socket.BaseDelay = 2 * time.Second
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
