package services_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sporttars/internal/client/adapters/api"
	"sporttars/internal/client/app/dto"
	"sporttars/internal/client/app/services"
	"sporttars/internal/client/domain/entities"
	portssession "sporttars/internal/client/ports/session"
)

var evalTime = time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

// fakeAPI считает вызовы и отдает заготовленные ответы.
type fakeAPI struct {
	loginCalls    atomic.Int32
	registerCalls atomic.Int32
	createCalls   atomic.Int32

	loginResp *dto.LoginResponse
	loginErr  error

	registerErr error

	createToken string
	createErr   error

	events    []entities.ListingItem
	eventsErr error

	block chan struct{} // если не nil, вызов Login ждет закрытия канала
}

func (f *fakeAPI) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	f.loginCalls.Add(1)
	if f.block != nil {
		<-f.block
	}
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAPI) Register(ctx context.Context, req *dto.RegisterRequest) error {
	f.registerCalls.Add(1)
	return f.registerErr
}

func (f *fakeAPI) CreateEvent(ctx context.Context, token string, req *dto.CreateEventRequest, image *dto.ImageAttachment) error {
	f.createCalls.Add(1)
	f.createToken = token
	return f.createErr
}

func (f *fakeAPI) EventsByLocationAndSport(ctx context.Context, location, sport string) ([]entities.ListingItem, error) {
	return f.events, f.eventsErr
}

func (f *fakeAPI) EventsWithDetails(ctx context.Context) ([]entities.ListingItem, error) {
	return f.events, f.eventsErr
}

// fakeStore хранит сессию в памяти.
type fakeStore struct {
	token   string
	profile *entities.Profile
}

func (f *fakeStore) SaveToken(ctx context.Context, token string) error {
	f.token = token
	return nil
}

func (f *fakeStore) Token(ctx context.Context) (string, error) {
	if f.token == "" {
		return "", portssession.ErrNoSession
	}
	return f.token, nil
}

func (f *fakeStore) SaveProfile(ctx context.Context, profile *entities.Profile) error {
	f.profile = profile
	return nil
}

func (f *fakeStore) Profile(ctx context.Context) (*entities.Profile, error) {
	if f.profile == nil {
		return nil, portssession.ErrNoSession
	}
	return f.profile, nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.token = ""
	f.profile = nil
	return nil
}

func (f *fakeStore) Close() error { return nil }

func fixedNow() time.Time { return evalTime }

func validForm() entities.RegistrationForm {
	return entities.RegistrationForm{
		Username:             "kovacsanna",
		Email:                "anna@example.com",
		Password:             "Jelszo123!x",
		PasswordConfirmation: "Jelszo123!x",
	}
}

func TestLogin(t *testing.T) {
	t.Run("success persists token, profile and schedules navigation", func(t *testing.T) {
		fake := &fakeAPI{loginResp: &dto.LoginResponse{Token: "abc", User: &dto.LoginUser{Name: "Anna"}}}
		store := &fakeStore{}
		navigated := make(chan struct{})

		svc := services.NewClientService(fake, store, time.Millisecond, func() { close(navigated) }).WithNow(fixedNow)

		result, err := svc.Login(context.Background(), &entities.LoginCredentials{
			Email:    "anna@example.com",
			Password: "Jelszo123!x",
		})

		require.NoError(t, err)
		assert.Equal(t, "Anna", result.DisplayName)
		assert.Equal(t, "abc", store.token)
		require.NotNil(t, store.profile)
		assert.Equal(t, "Anna", store.profile.Name)

		select {
		case <-navigated:
		case <-time.After(time.Second):
			t.Fatal("navigation was not scheduled")
		}
	})

	t.Run("invalid email never reaches the network", func(t *testing.T) {
		fake := &fakeAPI{}
		svc := services.NewClientService(fake, &fakeStore{}, 0, nil).WithNow(fixedNow)

		_, err := svc.Login(context.Background(), &entities.LoginCredentials{Email: "nope", Password: "x"})

		require.ErrorIs(t, err, entities.ErrInvalidEmail)
		assert.Equal(t, int32(0), fake.loginCalls.Load())
	})

	t.Run("server rejection persists nothing", func(t *testing.T) {
		fake := &fakeAPI{loginErr: &api.APIError{StatusCode: 401, Message: "bad credentials"}}
		store := &fakeStore{}
		svc := services.NewClientService(fake, store, 0, nil).WithNow(fixedNow)

		_, err := svc.Login(context.Background(), &entities.LoginCredentials{
			Email:    "anna@example.com",
			Password: "Jelszo123!x",
		})

		require.Error(t, err)
		apiErr, ok := api.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "bad credentials", apiErr.Message)
		assert.Empty(t, store.token)
		assert.Nil(t, store.profile)
	})

	t.Run("second submit while one is in flight is rejected", func(t *testing.T) {
		block := make(chan struct{})
		fake := &fakeAPI{
			loginResp: &dto.LoginResponse{Token: "abc"},
			block:     block,
		}
		svc := services.NewClientService(fake, &fakeStore{}, 0, nil).WithNow(fixedNow)

		firstDone := make(chan error, 1)
		go func() {
			_, err := svc.Login(context.Background(), &entities.LoginCredentials{
				Email:    "anna@example.com",
				Password: "Jelszo123!x",
			})
			firstDone <- err
		}()

		// Дождаться, пока первый вызов дойдет до сети.
		require.Eventually(t, func() bool { return fake.loginCalls.Load() == 1 },
			time.Second, 5*time.Millisecond)

		_, err := svc.Login(context.Background(), &entities.LoginCredentials{
			Email:    "anna@example.com",
			Password: "Jelszo123!x",
		})
		assert.ErrorIs(t, err, services.ErrSubmitInFlight)

		close(block)
		require.NoError(t, <-firstDone)
		assert.Equal(t, int32(1), fake.loginCalls.Load())
	})
}

func TestRegister(t *testing.T) {
	t.Run("valid form sends exactly one request", func(t *testing.T) {
		fake := &fakeAPI{}
		svc := services.NewClientService(fake, &fakeStore{}, 0, nil).WithNow(fixedNow)

		errs, err := svc.Register(context.Background(), validForm())

		require.NoError(t, err)
		assert.Empty(t, errs)
		assert.Equal(t, int32(1), fake.registerCalls.Load())
	})

	t.Run("single invalid field aborts before the network", func(t *testing.T) {
		fake := &fakeAPI{}
		svc := services.NewClientService(fake, &fakeStore{}, 0, nil).WithNow(fixedNow)

		form := validForm()
		form.Phone = "rossz"

		errs, err := svc.Register(context.Background(), form)

		require.ErrorIs(t, err, services.ErrFormInvalid)
		assert.ErrorIs(t, errs[entities.FieldPhone], entities.ErrInvalidPhone)
		assert.Equal(t, int32(0), fake.registerCalls.Load())
	})

	t.Run("empty form reports every mandatory field", func(t *testing.T) {
		fake := &fakeAPI{}
		svc := services.NewClientService(fake, &fakeStore{}, 0, nil).WithNow(fixedNow)

		errs, err := svc.Register(context.Background(), entities.RegistrationForm{})

		require.ErrorIs(t, err, services.ErrFormInvalid)
		assert.Len(t, errs, 4)
		assert.Equal(t, int32(0), fake.registerCalls.Load())
	})
}

func TestCreateEvent(t *testing.T) {
	validDraft := func() *entities.EventDraft {
		return &entities.EventDraft{
			LocationID: 3,
			SportID:    7,
			StartTime:  evalTime.Add(24 * time.Hour),
			EndTime:    evalTime.Add(26 * time.Hour),
			SkillLevel: "haladó",
			MinimumAge: 14,
			MaximumAge: 40,
		}
	}

	t.Run("uses the persisted session token", func(t *testing.T) {
		fake := &fakeAPI{}
		store := &fakeStore{token: "token-123"}
		svc := services.NewClientService(fake, store, 0, nil).WithNow(fixedNow)

		errs, err := svc.CreateEvent(context.Background(), validDraft(), nil)

		require.NoError(t, err)
		assert.Empty(t, errs)
		assert.Equal(t, "token-123", fake.createToken)
	})

	t.Run("draft with inverted times never reaches the network", func(t *testing.T) {
		fake := &fakeAPI{}
		svc := services.NewClientService(fake, &fakeStore{token: "token-123"}, 0, nil).WithNow(fixedNow)

		draft := validDraft()
		draft.EndTime = draft.StartTime.Add(-time.Hour)

		errs, err := svc.CreateEvent(context.Background(), draft, nil)

		require.ErrorIs(t, err, services.ErrFormInvalid)
		assert.ErrorIs(t, errs[entities.FieldEventTimes], entities.ErrEventTimeOrder)
		assert.Equal(t, int32(0), fake.createCalls.Load())
	})

	t.Run("without a session the draft is not sent", func(t *testing.T) {
		fake := &fakeAPI{}
		svc := services.NewClientService(fake, &fakeStore{}, 0, nil).WithNow(fixedNow)

		_, err := svc.CreateEvent(context.Background(), validDraft(), nil)

		require.ErrorIs(t, err, portssession.ErrNoSession)
		assert.Equal(t, int32(0), fake.createCalls.Load())
	})
}

func TestSearchEvents(t *testing.T) {
	items := []entities.ListingItem{
		{ID: 1, Covered: true},
		{ID: 2, Covered: false},
	}

	t.Run("client stage refines the fetched set", func(t *testing.T) {
		fake := &fakeAPI{events: items}
		svc := services.NewClientService(fake, &fakeStore{}, 0, nil).WithNow(fixedNow)

		got, err := svc.SearchEvents(context.Background(), entities.FilterCriteria{Covered: true})

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("refine reruns only the client stage", func(t *testing.T) {
		fake := &fakeAPI{}
		svc := services.NewClientService(fake, &fakeStore{}, 0, nil).WithNow(fixedNow)

		got := svc.Refine(items, entities.FilterCriteria{Covered: true})

		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("fetch failure is reported", func(t *testing.T) {
		fake := &fakeAPI{eventsErr: api.ErrConnectivity}
		svc := services.NewClientService(fake, &fakeStore{}, 0, nil).WithNow(fixedNow)

		_, err := svc.SearchEvents(context.Background(), entities.FilterCriteria{})

		require.ErrorIs(t, err, api.ErrConnectivity)
	})
}

func TestLogout(t *testing.T) {
	store := &fakeStore{token: "abc", profile: &entities.Profile{Name: "Anna"}}
	svc := services.NewClientService(&fakeAPI{}, store, 0, nil)

	require.NoError(t, svc.Logout(context.Background()))

	assert.Empty(t, store.token)
	assert.Nil(t, store.profile)
}
