// Package session содержит Redis-реализацию хранилища сессии клиента.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sporttars/internal/client/config"
	"sporttars/internal/client/domain/entities"
	portssession "sporttars/internal/client/ports/session"
	"sporttars/pkg/logger"
)

// Ключи слотов сессии.
const (
	tokenKey   = "session:token"
	profileKey = "session:profile"
)

// Константы для логирования.
const (
	LogMethodSaveToken   = "save token"
	LogMethodSaveProfile = "save profile"

	ErrorFailedToSave   = "failed to save value in session store"
	ErrorFailedToRead   = "failed to read value from session store"
	ErrorFailedToClear  = "failed to clear session"
	ErrorFailedToClose  = "failed to close session store connection"
	ErrorFailedToEncode = "failed to encode profile"
)

// RedisStore реализует интерфейс Store поверх Redis.
type RedisStore struct {
	client     *redis.Client
	tokenTTL   time.Duration
	profileTTL time.Duration
	now        func() time.Time
}

// NewRedisStore создает хранилище сессии и проверяет соединение.
func NewRedisStore(ctx context.Context, cfg *config.SessionConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddressString(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.ConnectTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to session store: %w", err)
	}

	return &RedisStore{
		client:     client,
		tokenTTL:   cfg.TokenTTL,
		profileTTL: cfg.ProfileTTL,
		now:        time.Now,
	}, nil
}

// Компилируемая проверка соответствия порту.
var _ portssession.Store = (*RedisStore)(nil)

// SaveToken сохраняет токен. Срок жизни - суточный, но если токен является
// JWT с более ранним exp, хранение укорачивается до exp.
func (s *RedisStore) SaveToken(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSaveToken))

	ttl := s.tokenTTL
	if expiresAt, ok := tokenExpiry(token); ok {
		if until := expiresAt.Sub(s.now()); until > 0 && until < ttl {
			ttl = until
		}
	}

	if err := s.client.Set(ctx, tokenKey, token, ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToSave, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSave, err)
	}
	return nil
}

// Token возвращает сохраненный токен или ErrNoSession.
func (s *RedisStore) Token(ctx context.Context) (string, error) {
	value, err := s.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", portssession.ErrNoSession
		}
		logger.Log(ctx).Error(ctx, ErrorFailedToRead, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToRead, err)
	}
	return value, nil
}

// SaveProfile сохраняет профиль пользователя в долгоживущем слоте.
func (s *RedisStore) SaveProfile(ctx context.Context, profile *entities.Profile) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSaveProfile))

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToEncode, err)
	}

	if err := s.client.Set(ctx, profileKey, payload, s.profileTTL).Err(); err != nil {
		log.Error(ctx, ErrorFailedToSave, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSave, err)
	}
	return nil
}

// Profile возвращает сохраненный профиль или ErrNoSession.
func (s *RedisStore) Profile(ctx context.Context) (*entities.Profile, error) {
	value, err := s.client.Get(ctx, profileKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, portssession.ErrNoSession
		}
		logger.Log(ctx).Error(ctx, ErrorFailedToRead, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToRead, err)
	}

	var profile entities.Profile
	if err := json.Unmarshal([]byte(value), &profile); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToRead, err)
	}
	return &profile, nil
}

// Clear удаляет токен и профиль.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, tokenKey, profileKey).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToClear, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToClear, err)
	}
	return nil
}

// Close закрывает соединение с хранилищем.
func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
