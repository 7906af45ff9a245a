// Package entities содержит основные сущности клиента платформы.
package entities

import "errors"

// Ошибки валидации полей формы.
var (
	ErrFieldRequired    = errors.New("field is required")
	ErrUsernameLength   = errors.New("username must be 4-16 characters long")
	ErrUsernameCharset  = errors.New("username may contain only latin letters and digits")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordLength   = errors.New("password must be 10-25 characters long")
	ErrPasswordNoLower  = errors.New("password must contain a lowercase letter")
	ErrPasswordNoUpper  = errors.New("password must contain an uppercase letter")
	ErrPasswordNoDigit  = errors.New("password must contain a digit")
	ErrPasswordNoSymbol = errors.New("password must contain a punctuation character")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidPhone     = errors.New("invalid hungarian phone number")
	ErrNameLength       = errors.New("name must be 2-15 characters long")
	ErrNameCharset      = errors.New("name may contain only latin or hungarian letters")
	ErrInvalidBirthDate = errors.New("invalid birth date")
	ErrAgeOutOfRange    = errors.New("age must be between 6 and 100 years")
)

// Field идентифицирует поле формы в карте ошибок.
type Field string

// Поля формы регистрации.
const (
	FieldUsername             Field = "username"
	FieldEmail                Field = "email"
	FieldPassword             Field = "password"
	FieldPasswordConfirmation Field = "passwordConfirmation"
	FieldPhone                Field = "phone"
	FieldLastName             Field = "lastName"
	FieldFirstName            Field = "firstName"
	FieldBirthDate            Field = "birthDate"
)

// RegistrationForm представляет текущее содержимое формы регистрации.
// Значение создается пустым при открытии формы и меняется по одному полю
// на каждый ввод пользователя.
type RegistrationForm struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
	Phone                string
	LastName             string
	FirstName            string
	BirthDate            string // в формате ГГГГ-ММ-ДД, пустая строка = не заполнено
}

// LoginCredentials содержит учетные данные для входа.
// Живут только на время одного запроса.
type LoginCredentials struct {
	Email    string
	Password string
}

// Profile — отображаемые данные пользователя, сохраняемые после входа.
type Profile struct {
	Name string `json:"name"`
}
