// Package services содержит клиентские сценарии платформы: вход, регистрация,
// создание события и поиск со второй стадией фильтрации.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"sporttars/internal/client/app/dto"
	"sporttars/internal/client/app/forms"
	"sporttars/internal/client/domain/entities"
	"sporttars/internal/client/domain/validation"
	"sporttars/internal/client/filter"
	portsapi "sporttars/internal/client/ports/api"
	portssession "sporttars/internal/client/ports/session"
	"sporttars/pkg/logger"
)

// Константы для логирования.
const (
	LogServiceLogin       = "client service: login"
	LogServiceRegister    = "client service: register"
	LogServiceCreateEvent = "client service: create event"
	LogServiceSearch      = "client service: search events"
	LogServiceLogout      = "client service: logout"

	LogNavigationScheduled = "navigation scheduled"

	ErrorLoginFailed       = "failed to login"
	ErrorRegisterFailed    = "failed to register"
	ErrorCreateEventFailed = "failed to create event"
	ErrorSearchFailed      = "failed to load events"
	ErrorSaveProfileFailed = "failed to persist profile"

	errCtxValidatingForm  = "validating form"
	errCtxPersistingToken = "persisting session token"
	errCtxReadingSession  = "reading session"
)

// Ошибки сценариев.
var (
	// ErrSubmitInFlight возвращается, когда предыдущая отправка еще не
	// завершилась: повторные нажатия не порождают новых запросов.
	ErrSubmitInFlight = errors.New("another submission is already in progress")

	// ErrFormInvalid — общая ошибка отправки поверх пофиелдовых сообщений.
	ErrFormInvalid = errors.New("form contains invalid fields")
)

// LoginResult — итог успешного входа.
type LoginResult struct {
	DisplayName string
}

// ClientService связывает формы, API и хранилище сессии. Валидация всегда
// завершается до любого сетевого вызова.
type ClientService struct {
	api        portsapi.Client
	store      portssession.Store
	navDelay   time.Duration
	navigate   func()
	now        func() time.Time
	submitting atomic.Bool
}

// NewClientService создает сервис клиента. navigate может быть nil, тогда
// переход после входа не планируется.
func NewClientService(apiClient portsapi.Client, store portssession.Store, navDelay time.Duration, navigate func()) *ClientService {
	return &ClientService{
		api:      apiClient,
		store:    store,
		navDelay: navDelay,
		navigate: navigate,
		now:      time.Now,
	}
}

// WithNow заменяет источник времени (используется в тестах).
func (s *ClientService) WithNow(now func() time.Time) *ClientService {
	s.now = now
	return s
}

// Login проверяет учетные данные, выполняет вход, сохраняет токен на сутки и
// профиль, затем планирует переход после короткой паузы.
func (s *ClientService) Login(ctx context.Context, creds *entities.LoginCredentials) (*LoginResult, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer s.submitting.Store(false)

	log := logger.Log(ctx)
	log.Info(ctx, LogServiceLogin)

	if err := validation.Email(creds.Email); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingForm, err)
	}
	if creds.Password == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingForm, entities.ErrFieldRequired)
	}

	resp, err := s.api.Login(ctx, &dto.LoginRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		log.Error(ctx, ErrorLoginFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorLoginFailed, err)
	}

	if err := s.store.SaveToken(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxPersistingToken, err)
	}

	name := resp.DisplayName()
	if err := s.store.SaveProfile(ctx, &entities.Profile{Name: name}); err != nil {
		// Профиль не критичен для сессии, вход считается состоявшимся.
		log.Warn(ctx, ErrorSaveProfileFailed, zap.Error(err))
	}

	s.scheduleNavigation(ctx)

	return &LoginResult{DisplayName: name}, nil
}

// Register прогоняет все валидаторы и при чистой форме отправляет ровно один
// запрос регистрации. При ошибках валидации сеть не трогается, а вызывающему
// возвращается карта ошибок вместе с общей ошибкой.
func (s *ClientService) Register(ctx context.Context, form entities.RegistrationForm) (forms.ErrorMap, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer s.submitting.Store(false)

	log := logger.Log(ctx)
	log.Info(ctx, LogServiceRegister)

	errs := forms.ValidateAll(form, s.now())
	if !forms.CanSubmit(form, errs) {
		return errs, fmt.Errorf("%s: %w", errCtxValidatingForm, ErrFormInvalid)
	}

	req := &dto.RegisterRequest{
		Username:  form.Username,
		Email:     form.Email,
		Password:  form.Password,
		Phone:     form.Phone,
		LastName:  form.LastName,
		FirstName: form.FirstName,
		BirthDate: form.BirthDate,
	}
	if err := s.api.Register(ctx, req); err != nil {
		log.Error(ctx, ErrorRegisterFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorRegisterFailed, err)
	}

	return nil, nil
}

// CreateEvent проверяет черновик (включая порядок времен) и отправляет
// multipart-запрос с токеном текущей сессии.
func (s *ClientService) CreateEvent(ctx context.Context, draft *entities.EventDraft, image *dto.ImageAttachment) (forms.ErrorMap, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer s.submitting.Store(false)

	log := logger.Log(ctx)
	log.Info(ctx, LogServiceCreateEvent)

	if errs := forms.ValidateEventDraft(draft); len(errs) > 0 {
		return errs, fmt.Errorf("%s: %w", errCtxValidatingForm, ErrFormInvalid)
	}

	token, err := s.store.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxReadingSession, err)
	}

	req := &dto.CreateEventRequest{
		LocationID: draft.LocationID,
		SportID:    draft.SportID,
		StartTime:  draft.StartTime,
		EndTime:    draft.EndTime,
		SkillLevel: draft.SkillLevel,
		MinimumAge: draft.MinimumAge,
		MaximumAge: draft.MaximumAge,
	}
	if err := s.api.CreateEvent(ctx, token, req, image); err != nil {
		log.Error(ctx, ErrorCreateEventFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorCreateEventFailed, err)
	}

	return nil, nil
}

// SearchEvents выполняет двухстадийный поиск: серверный отбор по площадке и
// спорту (если заданы оба), затем клиентское уточнение остальных условий.
func (s *ClientService) SearchEvents(ctx context.Context, criteria entities.FilterCriteria) ([]entities.ListingItem, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceSearch,
		zap.String("location", criteria.Location),
		zap.String("sport", criteria.Sport))

	var (
		items []entities.ListingItem
		err   error
	)
	if criteria.Location != "" && criteria.Sport != "" {
		items, err = s.api.EventsByLocationAndSport(ctx, criteria.Location, criteria.Sport)
	} else {
		items, err = s.api.EventsWithDetails(ctx)
	}
	if err != nil {
		log.Error(ctx, ErrorSearchFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorSearchFailed, err)
	}

	return filter.Apply(items, criteria), nil
}

// Refine повторяет клиентскую стадию фильтрации над уже загруженным набором:
// смена флагов удобств не требует нового запроса.
func (s *ClientService) Refine(items []entities.ListingItem, criteria entities.FilterCriteria) []entities.ListingItem {
	return filter.Apply(items, criteria)
}

// Logout очищает сессию. Кроме входа это единственный путь записи в хранилище.
func (s *ClientService) Logout(ctx context.Context) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceLogout)

	return s.store.Clear(ctx)
}

// scheduleNavigation планирует переход после фиксированной паузы, чтобы
// сообщение об успехе оставалось видимым.
func (s *ClientService) scheduleNavigation(ctx context.Context) {
	if s.navigate == nil {
		return
	}
	logger.Log(ctx).Debug(ctx, LogNavigationScheduled, zap.Duration("delay", s.navDelay))
	time.AfterFunc(s.navDelay, s.navigate)
}
