// Package forms содержит состояние формы регистрации и агрегацию ошибок
// валидации. Состояние - явное сериализуемое значение: каждый ввод дает новое
// состояние и пересчитанную карту ошибок, без скрытых мутаций.
package forms

import (
	"maps"
	"time"

	"sporttars/internal/client/domain/entities"
	"sporttars/internal/client/domain/validation"
)

// ErrorMap сопоставляет полю формы ошибку валидации. Отсутствие поля в карте
// означает "валидно или еще не проверялось".
type ErrorMap map[entities.Field]error

// Change описывает один ввод пользователя в поле формы.
type Change struct {
	Field entities.Field
	Value string
}

// State — состояние формы регистрации: значения полей, признаки "поле
// трогали" для условного показа подсказок и карта ошибок.
type State struct {
	Form    entities.RegistrationForm
	Touched map[entities.Field]bool
	Errors  ErrorMap
}

// NewState возвращает пустое состояние формы.
func NewState() State {
	return State{
		Touched: make(map[entities.Field]bool),
		Errors:  make(ErrorMap),
	}
}

// Apply возвращает новое состояние с учетом ввода: значение поля заменяется,
// поле помечается как тронутое, перепроверяются измененное поле и его
// зависимое (подтверждение при смене пароля). now нужен валидатору даты
// рождения.
func Apply(state State, change Change, now time.Time) State {
	next := State{
		Form:    state.Form,
		Touched: maps.Clone(state.Touched),
		Errors:  maps.Clone(state.Errors),
	}
	if next.Touched == nil {
		next.Touched = make(map[entities.Field]bool)
	}
	if next.Errors == nil {
		next.Errors = make(ErrorMap)
	}

	setField(&next.Form, change.Field, change.Value)
	next.Touched[change.Field] = true

	revalidate(&next, change.Field, now)
	if change.Field == entities.FieldPassword && next.Touched[entities.FieldPasswordConfirmation] {
		revalidate(&next, entities.FieldPasswordConfirmation, now)
	}

	return next
}

func setField(form *entities.RegistrationForm, field entities.Field, value string) {
	switch field {
	case entities.FieldUsername:
		form.Username = value
	case entities.FieldEmail:
		form.Email = value
	case entities.FieldPassword:
		form.Password = value
	case entities.FieldPasswordConfirmation:
		form.PasswordConfirmation = value
	case entities.FieldPhone:
		form.Phone = value
	case entities.FieldLastName:
		form.LastName = value
	case entities.FieldFirstName:
		form.FirstName = value
	case entities.FieldBirthDate:
		form.BirthDate = value
	}
}

func revalidate(state *State, field entities.Field, now time.Time) {
	if err := validateField(state.Form, field, now); err != nil {
		state.Errors[field] = err
	} else {
		delete(state.Errors, field)
	}
}

// validateField прогоняет валидатор одного поля.
func validateField(form entities.RegistrationForm, field entities.Field, now time.Time) error {
	switch field {
	case entities.FieldUsername:
		return validation.Username(form.Username)
	case entities.FieldEmail:
		return validation.Email(form.Email)
	case entities.FieldPassword:
		return validation.Password(form.Password)
	case entities.FieldPasswordConfirmation:
		return validation.PasswordConfirmation(form.Password, form.PasswordConfirmation)
	case entities.FieldPhone:
		return validation.Phone(form.Phone)
	case entities.FieldLastName:
		return validation.PersonalName(form.LastName)
	case entities.FieldFirstName:
		return validation.PersonalName(form.FirstName)
	case entities.FieldBirthDate:
		return validation.BirthDate(form.BirthDate, now)
	}
	return nil
}
