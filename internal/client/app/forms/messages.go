package forms

import (
	"errors"

	"sporttars/internal/client/domain/entities"
)

// GenericSubmitMessage показывается рядом с пофиелдовыми сообщениями, когда
// отправка прервана из-за ошибок валидации.
const GenericSubmitMessage = "Kérjük, javítsa a hibásan kitöltött mezőket!"

// fallbackMessage показывается для ошибок без собственного текста.
const fallbackMessage = "Érvénytelen érték."

// Тексты сообщений об ошибках валидации. Валидаторы возвращают только вид
// ошибки; подбор текста - задача слоя отображения.
var messages = map[error]string{
	entities.ErrFieldRequired:         "A mező kitöltése kötelező.",
	entities.ErrUsernameLength:        "A felhasználónévnek 4-16 karakter hosszúnak kell lennie.",
	entities.ErrUsernameCharset:       "A felhasználónév csak ékezet nélküli betűket és számokat tartalmazhat.",
	entities.ErrInvalidEmail:          "Érvénytelen e-mail cím.",
	entities.ErrPasswordLength:        "A jelszónak 10-25 karakter hosszúnak kell lennie.",
	entities.ErrPasswordNoLower:       "A jelszónak tartalmaznia kell kisbetűt.",
	entities.ErrPasswordNoUpper:       "A jelszónak tartalmaznia kell nagybetűt.",
	entities.ErrPasswordNoDigit:       "A jelszónak tartalmaznia kell számot.",
	entities.ErrPasswordNoSymbol:      "A jelszónak tartalmaznia kell írásjelet.",
	entities.ErrPasswordMismatch:      "A két jelszó nem egyezik.",
	entities.ErrInvalidPhone:          "Érvénytelen magyar telefonszám.",
	entities.ErrNameLength:            "A névnek 2-15 karakter hosszúnak kell lennie.",
	entities.ErrNameCharset:           "A név csak latin és magyar betűket tartalmazhat.",
	entities.ErrInvalidBirthDate:      "Érvénytelen születési dátum.",
	entities.ErrAgeOutOfRange:         "Az életkornak 6 és 100 év között kell lennie.",
	entities.ErrEventLocationRequired: "Helyszín megadása kötelező.",
	entities.ErrEventSportRequired:    "Sportág megadása kötelező.",
	entities.ErrEventTimeOrder:        "A kezdő időpontnak a záró időpont előtt kell lennie.",
	entities.ErrEventAgeBounds:        "A korhatároknak 6 és 100 között, növekvő sorrendben kell lenniük.",
}

// Message возвращает текст для одной ошибки валидации.
func Message(err error) string {
	for kind, text := range messages {
		if errors.Is(err, kind) {
			return text
		}
	}
	return fallbackMessage
}

// Messages переводит карту ошибок в карту текстов для отображения.
func Messages(errs ErrorMap) map[entities.Field]string {
	out := make(map[entities.Field]string, len(errs))
	for field, err := range errs {
		out[field] = Message(err)
	}
	return out
}
