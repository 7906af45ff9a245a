package config

import (
	"strconv"
	"time"
)

// SessionConfig представляет конфигурацию хранилища сессии (Redis).
// Токен живет сутки, профиль - в долгоживущем слоте.
type SessionConfig struct {
	Host           string        `yaml:"host" env:"CLIENT_SESSION_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"CLIENT_SESSION_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"CLIENT_SESSION_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"CLIENT_SESSION_DB" env-default:"0"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"CLIENT_SESSION_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"CLIENT_SESSION_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"CLIENT_SESSION_WRITE_TIMEOUT" env-default:"3s"`
	TokenTTL       time.Duration `yaml:"token_ttl" env:"CLIENT_SESSION_TOKEN_TTL" env-default:"24h"`
	ProfileTTL     time.Duration `yaml:"profile_ttl" env:"CLIENT_SESSION_PROFILE_TTL" env-default:"720h"`
}

// GetAddressString возвращает адрес хранилища строкой.
func (c *SessionConfig) GetAddressString() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
