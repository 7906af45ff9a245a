// Package config содержит конфигурацию клиента платформы.
package config

import (
	"context"
	"fmt"

	"sporttars/pkg/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
)

// Константы сообщений конфигурации.
const (
	LogLoadingConfig    = "Loading client configuration"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"
)

// Config представляет полную конфигурацию клиента.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Session  SessionConfig  `yaml:"session"`
	Logging  LoggingConfig  `yaml:"logging"`
	UI       UIConfig       `yaml:"ui"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	var cfg Config
	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.Duration("api_request_timeout", cfg.API.RequestTimeout),
		zap.String("session_address", cfg.Session.GetAddressString()),
		zap.Duration("session_token_ttl", cfg.Session.TokenTTL),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("navigation_delay", cfg.UI.NavigationDelay),
		zap.Duration("watch_interval", cfg.UI.WatchInterval))

	return &cfg, nil
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}
