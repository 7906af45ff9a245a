package forms_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sporttars/internal/client/app/forms"
	"sporttars/internal/client/domain/entities"
)

var evalTime = time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

func validForm() entities.RegistrationForm {
	return entities.RegistrationForm{
		Username:             "kovacsanna",
		Email:                "anna@example.com",
		Password:             "Jelszo123!x",
		PasswordConfirmation: "Jelszo123!x",
		Phone:                "+36 20 123 4567",
		LastName:             "Kovács",
		FirstName:            "Anna",
		BirthDate:            "1995-03-12",
	}
}

func TestApply(t *testing.T) {
	t.Run("change updates value and touches the field", func(t *testing.T) {
		state := forms.NewState()

		next := forms.Apply(state, forms.Change{Field: entities.FieldUsername, Value: "anna"}, evalTime)

		assert.Equal(t, "anna", next.Form.Username)
		assert.True(t, next.Touched[entities.FieldUsername])
		assert.NotContains(t, next.Errors, entities.FieldUsername)
	})

	t.Run("original state is not mutated", func(t *testing.T) {
		state := forms.NewState()

		_ = forms.Apply(state, forms.Change{Field: entities.FieldUsername, Value: "x"}, evalTime)

		assert.Empty(t, state.Form.Username)
		assert.Empty(t, state.Touched)
	})

	t.Run("invalid input produces a field error", func(t *testing.T) {
		state := forms.NewState()

		next := forms.Apply(state, forms.Change{Field: entities.FieldUsername, Value: "a!"}, evalTime)

		assert.ErrorIs(t, next.Errors[entities.FieldUsername], entities.ErrUsernameCharset)
	})

	t.Run("error clears once the field becomes valid", func(t *testing.T) {
		state := forms.Apply(forms.NewState(), forms.Change{Field: entities.FieldEmail, Value: "nope"}, evalTime)
		require.Contains(t, state.Errors, entities.FieldEmail)

		next := forms.Apply(state, forms.Change{Field: entities.FieldEmail, Value: "anna@example.com"}, evalTime)

		assert.NotContains(t, next.Errors, entities.FieldEmail)
	})

	t.Run("password change revalidates touched confirmation", func(t *testing.T) {
		state := forms.NewState()
		state = forms.Apply(state, forms.Change{Field: entities.FieldPassword, Value: "Jelszo123!x"}, evalTime)
		state = forms.Apply(state, forms.Change{Field: entities.FieldPasswordConfirmation, Value: "Jelszo123!x"}, evalTime)
		require.NotContains(t, state.Errors, entities.FieldPasswordConfirmation)

		next := forms.Apply(state, forms.Change{Field: entities.FieldPassword, Value: "Masik456?yZ"}, evalTime)

		assert.ErrorIs(t, next.Errors[entities.FieldPasswordConfirmation], entities.ErrPasswordMismatch)
	})

	t.Run("password change leaves untouched confirmation alone", func(t *testing.T) {
		state := forms.NewState()

		next := forms.Apply(state, forms.Change{Field: entities.FieldPassword, Value: "Jelszo123!x"}, evalTime)

		assert.NotContains(t, next.Errors, entities.FieldPasswordConfirmation)
	})
}

func TestValidateAll(t *testing.T) {
	t.Run("valid form yields empty map", func(t *testing.T) {
		errs := forms.ValidateAll(validForm(), evalTime)
		assert.Empty(t, errs)
	})

	t.Run("untouched empty mandatory fields are still reported", func(t *testing.T) {
		errs := forms.ValidateAll(entities.RegistrationForm{}, evalTime)

		assert.ErrorIs(t, errs[entities.FieldUsername], entities.ErrFieldRequired)
		assert.ErrorIs(t, errs[entities.FieldEmail], entities.ErrFieldRequired)
		assert.ErrorIs(t, errs[entities.FieldPassword], entities.ErrFieldRequired)
		assert.ErrorIs(t, errs[entities.FieldPasswordConfirmation], entities.ErrFieldRequired)
	})

	t.Run("optional empty fields are valid", func(t *testing.T) {
		form := validForm()
		form.Phone = ""
		form.LastName = ""
		form.FirstName = ""
		form.BirthDate = ""

		assert.Empty(t, forms.ValidateAll(form, evalTime))
	})

	t.Run("map is recomputed, not accumulated", func(t *testing.T) {
		form := validForm()
		form.Phone = "rossz"
		errs := forms.ValidateAll(form, evalTime)
		require.Contains(t, errs, entities.FieldPhone)

		form.Phone = "+36 30 111 2233"
		errs = forms.ValidateAll(form, evalTime)
		assert.NotContains(t, errs, entities.FieldPhone)
	})
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entities.RegistrationForm)
		want   bool
	}{
		{name: "valid form", mutate: func(f *entities.RegistrationForm) {}, want: true},
		{name: "empty username", mutate: func(f *entities.RegistrationForm) { f.Username = "" }, want: false},
		{name: "empty email", mutate: func(f *entities.RegistrationForm) { f.Email = "" }, want: false},
		{name: "empty password", mutate: func(f *entities.RegistrationForm) { f.Password = "" }, want: false},
		{name: "mismatched confirmation", mutate: func(f *entities.RegistrationForm) { f.PasswordConfirmation = "Masik456?yZ" }, want: false},
		{name: "invalid phone", mutate: func(f *entities.RegistrationForm) { f.Phone = "12" }, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			errs := forms.ValidateAll(form, evalTime)
			assert.Equal(t, tt.want, forms.CanSubmit(form, errs))
		})
	}
}

func TestMessages(t *testing.T) {
	t.Run("every validation error has a message", func(t *testing.T) {
		form := entities.RegistrationForm{Phone: "rossz", BirthDate: "2025-01-01"}
		errs := forms.ValidateAll(form, evalTime)
		require.NotEmpty(t, errs)

		for field, message := range forms.Messages(errs) {
			assert.NotEmpty(t, message, "field %s", field)
		}
	})

	t.Run("wrapped errors resolve to the same message", func(t *testing.T) {
		direct := forms.Message(entities.ErrPasswordMismatch)
		assert.Equal(t, direct, forms.Message(wrap(entities.ErrPasswordMismatch)))
	})

	t.Run("unknown error gets the fallback", func(t *testing.T) {
		assert.NotEmpty(t, forms.Message(assert.AnError))
	})
}

func wrap(err error) error {
	return &wrapped{err: err}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "wrapped: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }
