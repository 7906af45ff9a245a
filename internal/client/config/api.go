package config

import "time"

// APIConfig представляет конфигурацию удаленного API платформы.
// Адрес - деплойная настройка, не часть контракта.
type APIConfig struct {
	BaseURL        string        `yaml:"base_url" env:"CLIENT_API_BASE_URL" env-default:"http://localhost:3000"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"CLIENT_API_REQUEST_TIMEOUT" env-default:"15s"`
}
