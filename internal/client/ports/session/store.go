// Package session определяет интерфейс хранилища сессии клиента.
package session

import (
	"context"
	"errors"

	"sporttars/internal/client/domain/entities"
)

// ErrNoSession возвращается, когда сохраненного токена нет или он истек.
var ErrNoSession = errors.New("no active session")

// Store — единственный слот сессии процесса. Токен записывает только
// успешный вход, читают его аутентифицированные запросы; Clear - явный выход.
type Store interface {
	// SaveToken сохраняет токен с суточным сроком действия.
	SaveToken(ctx context.Context, token string) error

	// Token возвращает сохраненный токен или ErrNoSession.
	Token(ctx context.Context) (string, error)

	// SaveProfile сохраняет отображаемые данные пользователя.
	SaveProfile(ctx context.Context, profile *entities.Profile) error

	// Profile возвращает сохраненный профиль или ErrNoSession.
	Profile(ctx context.Context) (*entities.Profile, error)

	// Clear удаляет токен и профиль.
	Clear(ctx context.Context) error

	// Close освобождает соединение с хранилищем.
	Close() error
}
