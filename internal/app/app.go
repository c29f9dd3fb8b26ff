package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/testportal/internal/app/handlers/http/current_user_handler"
	"github.com/IT-Nick/testportal/internal/app/handlers/http/edit_test_handler"
	"github.com/IT-Nick/testportal/internal/app/handlers/http/get_test_handler"
	"github.com/IT-Nick/testportal/internal/app/handlers/http/list_tests_handler"
	"github.com/IT-Nick/testportal/internal/app/handlers/http/login_handler"
	"github.com/IT-Nick/testportal/internal/app/handlers/http/logout_handler"
	"github.com/IT-Nick/testportal/internal/app/handlers/http/report_handler"
	"github.com/IT-Nick/testportal/internal/app/handlers/http/results_handler"
	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/answer_handler"
	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/chatstate"
	tgLogin "github.com/IT-Nick/testportal/internal/app/handlers/telegram/login_handler"
	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/nav_handler"
	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/start_handler"
	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/start_test_handler"
	"github.com/IT-Nick/testportal/internal/app/handlers/telegram/submit_handler"
	"github.com/IT-Nick/testportal/internal/app/middleware"
	"github.com/IT-Nick/testportal/internal/domain/identity"
	"github.com/IT-Nick/testportal/internal/domain/model"
	resultsRepo "github.com/IT-Nick/testportal/internal/domain/results/repository"
	resultsService "github.com/IT-Nick/testportal/internal/domain/results/service"
	testsRepo "github.com/IT-Nick/testportal/internal/domain/tests/repository"
	testsService "github.com/IT-Nick/testportal/internal/domain/tests/service"
	"github.com/IT-Nick/testportal/internal/infra/config"
	"github.com/IT-Nick/testportal/internal/infra/poller"
	"github.com/IT-Nick/testportal/internal/infra/storage"
	"github.com/IT-Nick/testportal/internal/infra/timer"
)

type Services struct {
	testService   *testsService.TestService
	resultService *resultsService.ResultService
}

type App struct {
	config *config.Config
	log    *logrus.Logger
	bot    *telebot.Bot
	db     *pgxpool.Pool
	server *http.Server

	store     storage.Store
	directory *identity.Directory
	// identity текущий пользователь веб-интерфейса
	identity *identity.MockProvider
	chats    *chatstate.Registry

	Services
}

func NewApp(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	store, err := storage.NewStore(cfg.Storage.SessionStore, cfg.Storage.SessionFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open session store")
	}

	cost := cfg.Identity.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	directory, err := identity.DefaultDirectory(cost)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:    cfg,
		log:       log,
		store:     store,
		directory: directory,
	}

	if cfg.Storage.Type == config.StoragePostgres {
		app.db, err = InitDatabase(ctx, cfg, log)
		if err != nil {
			return nil, errors.Wrap(err, "failed to initialize database")
		}
	}

	app.initServices()

	if err := app.testService.SeedSample(ctx); err != nil {
		app.closeDB()
		return nil, err
	}

	app.identity = identity.NewMockProvider(directory, store, identity.DefaultKey, cfg.Identity.Latency, log.WithField("front", "http"))
	if err := app.identity.Init(ctx); err != nil {
		app.closeDB()
		return nil, errors.Wrap(err, "failed to init identity provider")
	}

	app.chats = chatstate.NewRegistry(func(chatID int64) identity.Provider {
		return identity.NewMockProvider(directory, store, fmt.Sprintf("tg:%d", chatID), cfg.Identity.Latency,
			log.WithFields(logrus.Fields{"front": "telegram", "chat_id": chatID}))
	})

	return app, nil
}

// Функция для инициализации сервисов и репозиториев
func (app *App) initServices() {
	var (
		testRepo   testsService.Repository
		resultRepo resultsService.Repository
	)
	if app.db != nil {
		testRepo = testsRepo.NewTestRepository(app.db)
		resultRepo = resultsRepo.NewSubmissionRepository(app.db)
	} else {
		testRepo = testsRepo.NewMemoryRepository()
		resultRepo = resultsRepo.NewMemoryRepository()
	}

	app.testService = testsService.NewTestService(testRepo, app.log.WithField("service", "tests"))
	app.resultService = resultsService.NewResultService(resultRepo, testRepo, app.config.Results.PassScore,
		app.log.WithField("service", "results"))
}

// ListenAndServeTelegram запускает Telegram бота. Без токена бот не запускается.
func (app *App) ListenAndServeTelegram() error {
	if app.config.TelegramBot.Token == "" {
		app.log.Warn("telegram token is not set, bot disabled")
		return nil
	}

	p, err := poller.NewPoller(app.config)
	if err != nil {
		return err
	}

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  app.config.TelegramBot.Token,
		Poller: p,
		OnError: func(err error, c telebot.Context) {
			app.log.WithError(err).Error("telegram error")
		},
	})
	if err != nil {
		return errors.Wrap(err, "telebot.NewBot")
	}
	app.bot = bot

	app.bootstrapHandlersTelegram()

	go app.bot.Start()

	return nil
}

// bootstrapHandlersTelegram - регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	tgLog := app.log.WithField("front", "telegram")
	app.bot.Use(middleware.Recover(tgLog), middleware.Logger(tgLog))

	updater := timer.NewTimerUpdater(app.bot, app.config.Taking.TickInterval, tgLog)
	login := tgLogin.NewLoginHandler(app.chats)
	answer := answer_handler.NewAnswerHandler(app.chats)
	submit := submit_handler.NewSubmitHandler(app.chats)

	app.bot.Handle("/start", start_handler.NewStartHandler(app.chats, app.testService).GetHandlerFunc())
	app.bot.Handle("/login", login.GetHandlerFunc())
	app.bot.Handle("/logout", login.GetLogoutHandlerFunc())

	app.bot.Handle(&telebot.InlineButton{Unique: model.StartTestKey},
		start_test_handler.NewStartTestHandler(app.chats, app.testService, app.resultService, updater, app.bot,
			app.config.Taking.TickInterval, tgLog).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.AnswerKey}, answer.GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.NavKey}, nav_handler.NewNavHandler(app.chats).GetHandlerFunc())
	app.bot.Handle(&telebot.InlineButton{Unique: model.SubmitKey}, submit.HandleSubmit)
	app.bot.Handle(&telebot.InlineButton{Unique: model.ConfirmSubmitKey}, submit.HandleConfirm)
	app.bot.Handle(&telebot.InlineButton{Unique: model.CancelSubmitKey}, submit.HandleCancel)

	// свободный ответ приходит обычным сообщением
	app.bot.Handle(telebot.OnText, answer.GetTextHandlerFunc())
}

// HTTPHandler маршруты HTTP API
func (app *App) HTTPHandler() http.Handler {
	mx := http.NewServeMux()

	mx.Handle("POST /auth/login", login_handler.NewLoginHandler(app.identity))
	mx.Handle("POST /auth/logout", logout_handler.NewLogoutHandler(app.identity))
	mx.Handle("GET /auth/me", current_user_handler.NewCurrentUserHandler(app.identity))

	mx.Handle("GET /tests", list_tests_handler.NewListTestsHandler(app.testService))
	mx.Handle("GET /tests/{id}", get_test_handler.NewGetTestHandler(app.identity, app.testService))
	mx.Handle("POST /tests/edit", edit_test_handler.NewEditTestHandler(app.identity, app.testService, app.log.WithField("front", "http")))

	mx.Handle("GET /results", results_handler.NewResultsHandler(app.identity, app.resultService))
	mx.Handle("GET /results/{id}/report", report_handler.NewReportHandler(app.identity, app.resultService))

	return middleware.LoggingMiddleware(app.log.WithField("front", "http"), mx)
}

// ListenAndServeHTTP запускает HTTP сервер
func (app *App) ListenAndServeHTTP() error {
	if app.server == nil {
		app.server = app.newServer()
	}
	app.log.WithField("addr", app.server.Addr).Info("http server listening")

	if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *App) newServer() *http.Server {
	return &http.Server{
		Addr:              app.config.HTTPAddr(),
		Handler:           app.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// ListenAndServe запускает оба сервера (Telegram и HTTP) и останавливает их по ctx
func (app *App) ListenAndServe(ctx context.Context) error {
	if err := app.ListenAndServeTelegram(); err != nil {
		return errors.Wrap(err, "failed to start Telegram bot")
	}

	// сервер создается до горутины, Close читает app.server
	app.server = app.newServer()
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.ListenAndServeHTTP()
	}()

	select {
	case <-ctx.Done():
		return app.Close(context.WithoutCancel(ctx))
	case err := <-errCh:
		closeErr := app.Close(context.WithoutCancel(ctx))
		if err != nil {
			return multierror.Append(errors.Wrap(err, "failed to start HTTP server"), closeErr).ErrorOrNil()
		}
		return closeErr
	}
}

// Close останавливает серверы, бросает активные сессии и закрывает пул
func (app *App) Close(ctx context.Context) error {
	var result *multierror.Error

	if app.server != nil {
		if err := app.server.Shutdown(ctx); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "http shutdown"))
		}
	}
	if app.bot != nil {
		app.bot.Stop()
	}
	if app.chats != nil {
		if err := app.chats.Close(ctx); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "telegram chats"))
		}
	}
	if app.identity != nil {
		if err := app.identity.Teardown(ctx); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "identity teardown"))
		}
	}
	app.closeDB()

	return result.ErrorOrNil()
}

func (app *App) closeDB() {
	if app.db != nil {
		app.db.Close()
		app.db = nil
	}
}
