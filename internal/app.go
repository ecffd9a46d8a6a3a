package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	logger_adapter "marketplace-client/internal/adapters/logger"
	"marketplace-client/internal/adapters/attachments"
	"marketplace-client/internal/adapters/localstore"
	"marketplace-client/internal/adapters/marketapi"
	"marketplace-client/internal/adapters/rest"
	"marketplace-client/internal/configs"
	"marketplace-client/internal/contracts"
	"marketplace-client/internal/core/port"
	"marketplace-client/internal/core/usecase"
	fluentlogger "marketplace-client/pkg/fluent_logger"

	"github.com/fluent/fluent-logger-golang/fluent"
)

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	localStore   *localstore.SQLiteStore
	notifPoller  *usecase.PollNotificationsUseCase
	logger       port.LoggerPort
	fluentClient *fluent.Fluent // для корректного закрытия
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. АДАПТЕРЫ ---
	localStore, err := localstore.NewSQLiteStore(appConfig.LocalStore.Path)
	if err != nil {
		appLogger.Error("Failed to open local store", err, nil)
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	appLogger.Info("Local store initialized.", port.Fields{"path": appConfig.LocalStore.Path})

	apiClient := marketapi.NewClient(appConfig.ApiClient.MARKETPLACE_URL, localStore)
	draftValidator := contracts.NewDraftValidator()
	attachmentChecker := attachments.NewChecker()

	// --- 4. USE CASES (ядро бизнес-логики) ---
	listingsState := usecase.NewListingsState()
	favoritesState, err := usecase.NewFavoritesState(localStore)
	if err != nil {
		return nil, fmt.Errorf("failed to init favorites state: %w", err)
	}

	browseUseCase := usecase.NewBrowseListingsUseCase(apiClient, listingsState, favoritesState)
	debounce := time.Duration(appConfig.SearchDebounceMs) * time.Millisecond
	updateFilterUseCase := usecase.NewUpdateFilterUseCase(browseUseCase, listingsState,
		func() *usecase.SearchDebouncer { return usecase.NewSearchDebouncer(debounce) },
		baseLogger.WithFields(port.Fields{"component": "update_filter"}))
	resetFiltersUseCase := usecase.NewResetFiltersUseCase(browseUseCase, listingsState)
	changePageUseCase := usecase.NewChangePageUseCase(browseUseCase, listingsState)
	detailsUseCase := usecase.NewGetListingDetailsUseCase(apiClient, favoritesState)

	toggleFavoriteUseCase := usecase.NewToggleFavoriteUseCase(apiClient, localStore, favoritesState)
	getFavoritesUseCase := usecase.NewGetFavoritesUseCase(apiClient, localStore, favoritesState)

	loginUseCase := usecase.NewLoginUserUseCase(apiClient, localStore)
	registerUseCase := usecase.NewRegisterUserUseCase(apiClient)
	verifyEmailUseCase := usecase.NewVerifyEmailUseCase(apiClient, localStore)
	resendCodeUseCase := usecase.NewResendCodeUseCase(apiClient)
	forgotPasswordUseCase := usecase.NewForgotPasswordUseCase(apiClient)
	logoutUseCase := usecase.NewLogoutUserUseCase(apiClient, localStore)

	manageDraftsUseCase, err := usecase.NewManageDraftsUseCase(apiClient, localStore, draftValidator, attachmentChecker)
	if err != nil {
		return nil, fmt.Errorf("failed to init drafts use case: %w", err)
	}

	pollInterval := time.Duration(appConfig.NotificationsPollSec) * time.Second
	notifPoller := usecase.NewPollNotificationsUseCase(apiClient, localStore, pollInterval,
		baseLogger.WithFields(port.Fields{"component": "notifications_poller"}))

	appLogger.Info("All use cases initialized", nil)

	// --- 5. REST-СЕРВЕР ---
	listingsHandlers := rest.NewListingsHandler(browseUseCase, updateFilterUseCase, resetFiltersUseCase, changePageUseCase, detailsUseCase)
	favoritesHandlers := rest.NewFavoritesHandler(toggleFavoriteUseCase, getFavoritesUseCase)
	authHandlers := rest.NewAuthHandler(loginUseCase, registerUseCase, verifyEmailUseCase, resendCodeUseCase, forgotPasswordUseCase, logoutUseCase)
	draftsHandlers := rest.NewDraftsHandler(manageDraftsUseCase)
	notificationsHandlers := rest.NewNotificationsHandler(notifPoller)

	apiServer := rest.NewServer(appConfig.Rest.PORT, listingsHandlers, favoritesHandlers,
		authHandlers, draftsHandlers, notificationsHandlers, baseLogger)

	application := &App{
		config:       appConfig,
		apiServer:    apiServer,
		localStore:   localStore,
		notifPoller:  notifPoller,
		logger:       appLogger,
		fluentClient: fluentClient,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Единый контекст приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.localStore != nil {
			if err := a.localStore.Close(); err != nil {
				a.logger.Error("Error closing local store", err, nil)
			}
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	// Фоновый опрос уведомлений
	go a.notifPoller.Run(appCtx)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed to start, shutting down", err, nil)
	}

	// Инициируем graceful shutdown, отменяя главный контекст
	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
