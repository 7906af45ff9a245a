// Package api определяет интерфейс клиента удаленного API платформы.
package api

import (
	"context"

	"sporttars/internal/client/app/dto"
	"sporttars/internal/client/domain/entities"
)

// Client описывает операции удаленного API платформы.
type Client interface {
	// Login выполняет вход и возвращает токен с отображаемым именем.
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)

	// Register создает нового пользователя.
	Register(ctx context.Context, req *dto.RegisterRequest) error

	// CreateEvent создает событие от имени владельца токена.
	// image может быть nil.
	CreateEvent(ctx context.Context, token string, req *dto.CreateEventRequest, image *dto.ImageAttachment) error

	// EventsByLocationAndSport возвращает события, отобранные сервером по
	// площадке и спорту.
	EventsByLocationAndSport(ctx context.Context, location, sport string) ([]entities.ListingItem, error)

	// EventsWithDetails возвращает все события с разрешенными ссылками на
	// изображения.
	EventsWithDetails(ctx context.Context) ([]entities.ListingItem, error)
}
