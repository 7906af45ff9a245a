package forms

import (
	"time"

	"sporttars/internal/client/domain/entities"
	"sporttars/internal/client/domain/validation"
)

// allFields - порядок полей формы регистрации.
var allFields = []entities.Field{
	entities.FieldUsername,
	entities.FieldEmail,
	entities.FieldPassword,
	entities.FieldPasswordConfirmation,
	entities.FieldPhone,
	entities.FieldLastName,
	entities.FieldFirstName,
	entities.FieldBirthDate,
}

// ValidateAll прогоняет все валидаторы независимо от того, трогали ли поля,
// и возвращает заново построенную карту ошибок.
func ValidateAll(form entities.RegistrationForm, now time.Time) ErrorMap {
	errs := make(ErrorMap)
	for _, field := range allFields {
		if err := validateField(form, field, now); err != nil {
			errs[field] = err
		}
	}
	return errs
}

// CanSubmit решает, можно ли отправлять форму: карта ошибок пуста, четыре
// обязательных поля заполнены и пароль совпадает с подтверждением.
func CanSubmit(form entities.RegistrationForm, errs ErrorMap) bool {
	if len(errs) > 0 {
		return false
	}
	if form.Username == "" || form.Email == "" || form.Password == "" || form.PasswordConfirmation == "" {
		return false
	}
	return form.Password == form.PasswordConfirmation
}

// ValidateEventDraft проверяет черновик события перед отправкой.
func ValidateEventDraft(draft *entities.EventDraft) ErrorMap {
	errs := make(ErrorMap)
	for field, err := range validation.EventDraft(draft) {
		errs[field] = err
	}
	return errs
}
