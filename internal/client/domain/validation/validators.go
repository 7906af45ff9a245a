// Package validation содержит чистые валидаторы полей форм. Валидаторы
// возвращают сигнальные ошибки домена и не содержат текста для отображения;
// их безопасно вызывать на каждый ввод пользователя.
package validation

import (
	"regexp"
	"time"
	"unicode/utf8"

	"sporttars/internal/client/domain/entities"
)

// Границы длины и возраста.
const (
	usernameMinLen = 4
	usernameMaxLen = 16
	passwordMinLen = 10
	passwordMaxLen = 25
	nameMinLen     = 2
	nameMaxLen     = 15
	minAgeYears    = 6
	maxAgeYears    = 100
)

// birthDateLayout - формат даты рождения.
const birthDateLayout = "2006-01-02"

var (
	usernameCharsetRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRe           = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nameCharsetRe     = regexp.MustCompile(`^[a-zA-ZáéíóöőúüűÁÉÍÓÖŐÚÜŰ]+$`)

	// Венгерские номера: префикс +36 или 06, код зоны, абонентский номер,
	// разделители пробел или дефис.
	phoneRe = regexp.MustCompile(`^(?:\+36|06)[ -]?\d{1,2}[ -]?\d{3}[ -]?\d{3,4}$`)

	passwordLowerRe  = regexp.MustCompile(`[a-z]`)
	passwordUpperRe  = regexp.MustCompile(`[A-Z]`)
	passwordDigitRe  = regexp.MustCompile(`\d`)
	passwordSymbolRe = regexp.MustCompile(`[!"#$%&'()*+,\-./:;<=>?@[\]^_{|}~]`)
)

// Username проверяет обязательное имя пользователя: латиница и цифры, 4-16 символов.
func Username(username string) error {
	if username == "" {
		return entities.ErrFieldRequired
	}
	if !usernameCharsetRe.MatchString(username) {
		return entities.ErrUsernameCharset
	}
	if n := len(username); n < usernameMinLen || n > usernameMaxLen {
		return entities.ErrUsernameLength
	}
	return nil
}

// Email проверяет обязательный адрес на общий вид local@domain.tld.
func Email(email string) error {
	if email == "" {
		return entities.ErrFieldRequired
	}
	if !emailRe.MatchString(email) {
		return entities.ErrInvalidEmail
	}
	return nil
}

// Password проверяет обязательный пароль: длина 10-25, минимум одна строчная,
// одна заглавная буква, одна цифра и один знак пунктуации.
func Password(password string) error {
	if password == "" {
		return entities.ErrFieldRequired
	}
	if n := len(password); n < passwordMinLen || n > passwordMaxLen {
		return entities.ErrPasswordLength
	}
	switch {
	case !passwordLowerRe.MatchString(password):
		return entities.ErrPasswordNoLower
	case !passwordUpperRe.MatchString(password):
		return entities.ErrPasswordNoUpper
	case !passwordDigitRe.MatchString(password):
		return entities.ErrPasswordNoDigit
	case !passwordSymbolRe.MatchString(password):
		return entities.ErrPasswordNoSymbol
	}
	return nil
}

// PasswordConfirmation проверяет побайтовое совпадение подтверждения с паролем.
func PasswordConfirmation(password, confirmation string) error {
	if confirmation == "" {
		return entities.ErrFieldRequired
	}
	if password != confirmation {
		return entities.ErrPasswordMismatch
	}
	return nil
}

// Phone проверяет необязательный венгерский номер телефона.
func Phone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phoneRe.MatchString(phone) {
		return entities.ErrInvalidPhone
	}
	return nil
}

// PersonalName проверяет необязательное имя или фамилию: латинские и венгерские
// буквы, 2-15 символов.
func PersonalName(name string) error {
	if name == "" {
		return nil
	}
	if !nameCharsetRe.MatchString(name) {
		return entities.ErrNameCharset
	}
	if n := utf8.RuneCountInString(name); n < nameMinLen || n > nameMaxLen {
		return entities.ErrNameLength
	}
	return nil
}

// BirthDate проверяет необязательную дату рождения: возраст на момент now
// должен быть от 6 до ровно 100 лет с точностью до дня.
func BirthDate(birthDate string, now time.Time) error {
	if birthDate == "" {
		return nil
	}

	birth, err := time.Parse(birthDateLayout, birthDate)
	if err != nil {
		return entities.ErrInvalidBirthDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	earliest := today.AddDate(-maxAgeYears, 0, 0)
	latest := today.AddDate(-minAgeYears, 0, 0)

	if birth.Before(earliest) || birth.After(latest) {
		return entities.ErrAgeOutOfRange
	}
	return nil
}

// EventDraft проверяет черновик события перед отправкой: обязательные
// идентификаторы, начало строго раньше конца, возрастные границы в пределах
// 6-100 и по возрастанию.
func EventDraft(draft *entities.EventDraft) map[entities.Field]error {
	errs := make(map[entities.Field]error)

	if draft.LocationID <= 0 {
		errs[entities.FieldEventLocation] = entities.ErrEventLocationRequired
	}
	if draft.SportID <= 0 {
		errs[entities.FieldEventSport] = entities.ErrEventSportRequired
	}
	if !draft.StartTime.Before(draft.EndTime) {
		errs[entities.FieldEventTimes] = entities.ErrEventTimeOrder
	}
	if draft.MinimumAge < minAgeYears || draft.MaximumAge > maxAgeYears || draft.MinimumAge > draft.MaximumAge {
		errs[entities.FieldEventAges] = entities.ErrEventAgeBounds
	}

	return errs
}
