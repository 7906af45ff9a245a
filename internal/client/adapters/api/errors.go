package api

import (
	"errors"
	"fmt"
)

// FallbackServerMessage показывается, когда сервер сообщил об ошибке без
// текста в теле ответа.
const FallbackServerMessage = "A szerver elutasította a kérést."

// ErrConnectivity сигнализирует, что ответ от сервера получить не удалось.
// Никогда не смешивается с ошибками, о которых сообщил сам сервер.
var ErrConnectivity = errors.New("could not reach the server")

// APIError — ошибка, о которой сообщил сервер в теле ответа.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// AsAPIError извлекает APIError из цепочки ошибок.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
