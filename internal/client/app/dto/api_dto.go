// Package dto содержит объекты обмена с удаленным API платформы.
package dto

import (
	"io"
	"time"
)

// LoginRequest содержит тело запроса входа.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser — вложенный объект пользователя в ответе входа.
type LoginUser struct {
	Name string `json:"name"`
}

// LoginResponse — ответ на вход. Отображаемое имя сервер возвращает либо в
// user.name, либо в userName.
type LoginResponse struct {
	Token    string     `json:"token"`
	User     *LoginUser `json:"user,omitempty"`
	UserName string     `json:"userName,omitempty"`
}

// DisplayName возвращает отображаемое имя: user.name приоритетнее userName.
func (r *LoginResponse) DisplayName() string {
	if r.User != nil && r.User.Name != "" {
		return r.User.Name
	}
	return r.UserName
}

// RegisterRequest содержит тело запроса регистрации со всеми семью полями.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`
	BirthDate string `json:"birthDate"`
}

// ErrorResponse — тело ответа сервера об ошибке.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Имена полей multipart-запроса создания события (контракт сервера).
const (
	PartLocationID = "helyszinId"
	PartSportID    = "sportId"
	PartStartTime  = "kezdoIdo"
	PartEndTime    = "zaroIdo"
	PartSkillLevel = "szint"
	PartMinimumAge = "minimumEletkor"
	PartMaximumAge = "maximumEletkor"
	PartImageFile  = "imageFile"
)

// CreateEventRequest содержит поля multipart-запроса создания события.
type CreateEventRequest struct {
	LocationID int64
	SportID    int64
	StartTime  time.Time
	EndTime    time.Time
	SkillLevel string
	MinimumAge int
	MaximumAge int
}

// ImageAttachment — необязательное изображение события.
type ImageAttachment struct {
	Name   string
	Reader io.Reader
}

// ListingItem — карточка события в ответах списков.
type ListingItem struct {
	ID           int64   `json:"id"`
	Location     string  `json:"location"`
	Sport        string  `json:"sport"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Capacity     int     `json:"capacity"`
	Occupied     int     `json:"occupied"`
	Covered      bool    `json:"covered"`
	ChangingRoom bool    `json:"changingRoom"`
	Parking      bool    `json:"parking"`
	Price        float64 `json:"price"`
	MinimumAge   int     `json:"minimumAge"`
	MaximumAge   int     `json:"maximumAge"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"imageUrl"`
}

// EventsResponse — ответ на запросы списков событий.
type EventsResponse struct {
	Events []ListingItem `json:"events"`
}
