package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiry извлекает срок действия из токена, если тот оказался JWT с
// заявленным exp. Подпись не проверяется: токен непрозрачен для клиента,
// проверка - дело выдавшего его сервера.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return time.Time{}, false
	}
	return expiresAt.Time, true
}
