package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"sporttars/internal/client/adapters/api"
	"sporttars/internal/client/adapters/session"
	"sporttars/internal/client/app/dto"
	"sporttars/internal/client/app/forms"
	"sporttars/internal/client/app/services"
	"sporttars/internal/client/config"
	"sporttars/internal/client/domain/entities"
	"sporttars/pkg/logger"
	"sporttars/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "CLIENT_LOGGER_MODE"
	EnvLoggerLevel = "CLIENT_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateSessionStore   = "failed to create session store"
	ErrCommandFailed        = "command failed"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений клиента.
const (
	LogClientStarted  = "sporttars client started"
	LogClientFinished = "sporttars client finished"
	LogClosingStore   = "closing session store"
	LogNavigating     = "navigating to the main page"
)

const usageText = `usage: client <command> [flags]

commands:
  login         sign in and persist the session token
  register      create a new account
  create-event  create a sport event (requires login)
  events        list events with optional filters (-watch to keep refreshing)
  logout        clear the persisted session
`

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		if len(os.Args) < 2 {
			fmt.Fprint(os.Stderr, usageText)
			exitCode = 2
			return
		}

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogClientStarted,
			zap.String("command", os.Args[1]),
			zap.String("api_base_url", cfg.API.BaseURL))

		apiClient := api.NewClient(&cfg.API)

		store, err := session.NewRedisStore(ctx, &cfg.Session)
		if err != nil {
			log.Error(ctx, ErrCreateSessionStore, zap.Error(err))
			exitCode = 1
			return
		}

		navDone := make(chan struct{}, 1)
		navigate := func() {
			log.Info(ctx, LogNavigating)
			navDone <- struct{}{}
		}

		svc := services.NewClientService(apiClient, store, cfg.UI.NavigationDelay, navigate)

		err = runCommand(ctx, svc, cfg, os.Args[1], os.Args[2:], navDone)

		shutdown.RunHooks(cfg.Shutdown.GetTimeout(), func(hookCtx context.Context) error {
			log.Info(hookCtx, LogClosingStore)
			return store.Close()
		})

		if err != nil {
			if !errors.Is(err, flag.ErrHelp) {
				log.Error(ctx, ErrCommandFailed, zap.Error(err))
				fmt.Fprintln(os.Stderr, err)
			}
			exitCode = 1
			return
		}

		log.Info(ctx, LogClientFinished)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func runCommand(ctx context.Context, svc *services.ClientService, cfg *config.Config, command string, args []string, navDone <-chan struct{}) error {
	switch command {
	case "login":
		return runLogin(ctx, svc, args, navDone)
	case "register":
		return runRegister(ctx, svc, args)
	case "create-event":
		return runCreateEvent(ctx, svc, args)
	case "events":
		return runEvents(ctx, svc, cfg, args)
	case "logout":
		return svc.Logout(ctx)
	default:
		fmt.Fprint(os.Stderr, usageText)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runLogin(ctx context.Context, svc *services.ClientService, args []string, navDone <-chan struct{}) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := svc.Login(ctx, &entities.LoginCredentials{Email: *email, Password: *password})
	if err != nil {
		return describeSubmitError(err)
	}

	fmt.Printf("Sikeres bejelentkezés, üdv %s!\n", result.DisplayName)
	<-navDone
	return nil
}

func runRegister(ctx context.Context, svc *services.ClientService, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	form := entities.RegistrationForm{}
	fs.StringVar(&form.Username, "username", "", "username (4-16 latin letters and digits)")
	fs.StringVar(&form.Email, "email", "", "email address")
	fs.StringVar(&form.Password, "password", "", "password")
	fs.StringVar(&form.PasswordConfirmation, "confirm", "", "password confirmation")
	fs.StringVar(&form.Phone, "phone", "", "hungarian phone number (optional)")
	fs.StringVar(&form.LastName, "last-name", "", "last name (optional)")
	fs.StringVar(&form.FirstName, "first-name", "", "first name (optional)")
	fs.StringVar(&form.BirthDate, "birth-date", "", "birth date YYYY-MM-DD (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	errs, err := svc.Register(ctx, form)
	if err != nil {
		printFieldErrors(errs)
		return describeSubmitError(err)
	}

	fmt.Println("Sikeres regisztráció!")
	return nil
}

func runCreateEvent(ctx context.Context, svc *services.ClientService, args []string) error {
	fs := flag.NewFlagSet("create-event", flag.ContinueOnError)
	draft := entities.EventDraft{}
	fs.Int64Var(&draft.LocationID, "location-id", 0, "venue identifier")
	fs.Int64Var(&draft.SportID, "sport-id", 0, "sport identifier")
	start := fs.String("start", "", "start time (RFC3339)")
	end := fs.String("end", "", "end time (RFC3339)")
	fs.StringVar(&draft.SkillLevel, "level", "", "skill level")
	fs.IntVar(&draft.MinimumAge, "min-age", 6, "minimum age")
	fs.IntVar(&draft.MaximumAge, "max-age", 100, "maximum age")
	imagePath := fs.String("image", "", "path to an event image (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if draft.StartTime, err = time.Parse(time.RFC3339, *start); err != nil {
		return fmt.Errorf("parsing -start: %w", err)
	}
	if draft.EndTime, err = time.Parse(time.RFC3339, *end); err != nil {
		return fmt.Errorf("parsing -end: %w", err)
	}

	var image *dto.ImageAttachment
	if *imagePath != "" {
		file, err := os.Open(*imagePath)
		if err != nil {
			return fmt.Errorf("opening image: %w", err)
		}
		defer func() {
			_ = file.Close()
		}()
		image = &dto.ImageAttachment{Name: file.Name(), Reader: file}
	}

	errs, err := svc.CreateEvent(ctx, &draft, image)
	if err != nil {
		printFieldErrors(errs)
		return describeSubmitError(err)
	}

	fmt.Println("Az esemény létrejött!")
	return nil
}

func runEvents(ctx context.Context, svc *services.ClientService, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("events", flag.ContinueOnError)
	criteria := entities.FilterCriteria{}
	fs.StringVar(&criteria.Location, "location", "", "venue to search (server-side)")
	fs.StringVar(&criteria.Sport, "sport", "", "sport to search (server-side)")
	fs.BoolVar(&criteria.Covered, "covered", false, "only covered venues")
	fs.BoolVar(&criteria.ChangingRoom, "changing-room", false, "only venues with a changing room")
	fs.BoolVar(&criteria.Parking, "parking", false, "only venues with parking")
	fs.Float64Var(&criteria.MinPrice, "min-price", 0, "minimum price")
	fs.Float64Var(&criteria.MaxPrice, "max-price", 0, "maximum price (0 = unbounded)")
	fs.IntVar(&criteria.MinAge, "min-age", 0, "minimum age")
	fs.IntVar(&criteria.MaxAge, "max-age", 0, "maximum age (0 = unbounded)")
	watch := fs.Bool("watch", false, "keep refreshing the list")
	interval := fs.Duration("interval", cfg.UI.WatchInterval, "refresh interval in watch mode")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*watch {
		items, err := svc.SearchEvents(ctx, criteria)
		if err != nil {
			return describeSubmitError(err)
		}
		printListing(items)
		return nil
	}

	watchCtx, stop := shutdown.NotifyContext(ctx)
	defer stop()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	log := logger.Log(ctx)
	for {
		items, err := svc.SearchEvents(watchCtx, criteria)
		switch {
		case watchCtx.Err() != nil:
			return nil
		case err != nil:
			// Сбой одного обновления не завершает наблюдение.
			log.Warn(watchCtx, services.ErrorSearchFailed, zap.Error(err))
		default:
			printListing(items)
		}

		select {
		case <-watchCtx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func printListing(items []entities.ListingItem) {
	if len(items) == 0 {
		fmt.Println("Nincs találat.")
		return
	}
	for _, item := range items {
		fmt.Printf("#%d %s / %s  %s - %s  %d/%d fő  %.0f Ft\n",
			item.ID, item.Location, item.Sport,
			item.StartTime.Format("2006-01-02 15:04"),
			item.EndTime.Format("15:04"),
			item.Occupied, item.Capacity, item.Price)
		if item.Description != "" {
			fmt.Printf("    %s\n", item.Description)
		}
	}
}

func printFieldErrors(errs forms.ErrorMap) {
	for field, message := range forms.Messages(errs) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", field, message)
	}
}

// describeSubmitError переводит ошибку сценария в сообщение по таксономии:
// ошибки валидации, ответ сервера и недоступность сети не смешиваются.
func describeSubmitError(err error) error {
	switch {
	case errors.Is(err, services.ErrFormInvalid):
		return errors.New(forms.GenericSubmitMessage)
	case errors.Is(err, api.ErrConnectivity):
		return errors.New("Nem sikerült kapcsolódni a szerverhez, próbálja újra később.")
	default:
		if apiErr, ok := api.AsAPIError(err); ok {
			return errors.New(apiErr.Message)
		}
		return err
	}
}
