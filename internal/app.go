package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	logger_adapter "subscription-service/internal/adapters/logger"
	"subscription-service/internal/adapters/metrics"
	"subscription-service/internal/adapters/pagefetcher"
	postgres_adapter "subscription-service/internal/adapters/postgres"
	"subscription-service/internal/adapters/priceparser"
	rabbitmq_adapter "subscription-service/internal/adapters/rabbitmq"
	"subscription-service/internal/adapters/rest"
	"subscription-service/internal/configs"
	"subscription-service/internal/constants"
	"subscription-service/internal/contextkeys"
	"subscription-service/internal/core/port"
	"subscription-service/internal/core/usecase"
	fluentlogger "subscription-service/pkg/fluent_logger"
	"subscription-service/pkg/postgres"
	"subscription-service/pkg/rabbitmq/rabbitmq_common"
	"subscription-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	apiServer *rest.Server

	rabbitManager *rabbitmq_common.ConnectionManager
	publisher     *rabbitmq_producer.Publisher

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	app := &App{config: appConfig}

	// --- 1. ЛОГГЕРЫ ---
	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: true,
	})
	activeLoggers := []port.LoggerPort{stdoutLogger}

	if appConfig.FluentBit.Enabled {
		app.fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:         appConfig.FluentBit.Host,
			Port:         appConfig.FluentBit.Port,
			TagPrefix:    appConfig.AppName,
			Async:        true,
			WriteTimeout: 3 * time.Second,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(app.fluentClient, logger_adapter.ParseLevel(appConfig.FluentBit.Level), nil)
		if err != nil {
			return nil, app.abort(err)
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	app.logger = baseLogger.WithFields(port.Fields{"component": "app"})
	app.logger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 2. ХРАНИЛИЩЕ ---
	initCtx := contextkeys.ContextWithLogger(context.Background(), baseLogger)

	app.dbPool, err = postgres.NewClient(initCtx, postgres.Config{
		DatabaseURL:    appConfig.Database.URL,
		MaxConns:       appConfig.Database.MaxConns,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		app.logger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, app.abort(fmt.Errorf("failed to connect to PostgreSQL: %w", err))
	}
	if err := postgres_adapter.EnsureSchema(initCtx, app.dbPool); err != nil {
		app.logger.Error("Failed to prepare database schema", err, nil)
		return nil, app.abort(err)
	}
	app.logger.Info("Connected to PostgreSQL, schema is ready", nil)

	repo, err := postgres_adapter.NewPostgresSubscriptionRepository(app.dbPool)
	if err != nil {
		return nil, app.abort(fmt.Errorf("failed to create subscription repository: %w", err))
	}

	// --- 3. СОБЫТИЯ (опционально) ---
	var events port.SubscriptionEventsPort
	if appConfig.RabbitMQ.Enabled {
		events, err = app.initEvents(baseLogger)
		if err != nil {
			app.logger.Error("Failed to initialize RabbitMQ publisher", err, nil)
			return nil, app.abort(err)
		}
	}

	// --- 4. АДАПТЕРЫ ЦЕН И МЕТРИКИ ---
	fetcher := pagefetcher.NewPageFetcherAdapter(pagefetcher.Config{
		Timeout:        appConfig.Fetch.Timeout,
		UserAgent:      appConfig.Fetch.UserAgent,
		AllowedDomains: appConfig.Fetch.AllowedDomains,
		MaxBodySize:    appConfig.Fetch.MaxBodyBytes,
		Logger:         baseLogger,
	})
	extractor := priceparser.NewExtractor()

	var metricsPort port.MetricsPort
	var metricsHandler http.Handler
	if appConfig.Metrics.Enabled {
		promMetrics := metrics.NewPrometheusMetrics("subscription_service")
		metricsPort = promMetrics
		metricsHandler = promMetrics.Handler()
	}

	refresherOpts := []usecase.RefresherOption{usecase.WithConcurrency(appConfig.Refresh.Concurrency)}
	if metricsPort != nil {
		refresherOpts = append(refresherOpts, usecase.WithMetrics(metricsPort))
	}
	if appConfig.Refresh.PersistPrices {
		refresherOpts = append(refresherOpts, usecase.WithPricePersistence(repo, events))
	}
	refresher := usecase.NewPriceRefresher(fetcher, extractor, refresherOpts...)

	// --- 5. USE CASES И REST ---
	subscribeUC := usecase.NewSubscribeUseCase(repo, fetcher, events, metricsPort, appConfig.Fetch.TrustedLinkPrefix)
	getUC := usecase.NewGetSubscriptionsUseCase(repo, refresher)
	getAllUC := usecase.NewGetAllSubscriptionsUseCase(repo, refresher)
	deleteUC := usecase.NewDeleteSubscriptionUseCase(repo, events)

	handlers := rest.NewSubscriptionHandler(subscribeUC, getUC, getAllUC, deleteUC)
	app.apiServer = rest.NewServer(rest.ServerConfig{
		Port:               appConfig.Rest.PORT,
		CORSAllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
		MetricsHandler:     metricsHandler,
	}, handlers, baseLogger)

	app.logger.Info("Application configured", port.Fields{
		"refresh_concurrency": appConfig.Refresh.Concurrency,
		"persist_prices":      appConfig.Refresh.PersistPrices,
		"rabbitmq_enabled":    appConfig.RabbitMQ.Enabled,
		"metrics_enabled":     appConfig.Metrics.Enabled,
	})
	return app, nil
}

func (a *App) initEvents(baseLogger port.LoggerPort) (port.SubscriptionEventsPort, error) {
	bridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger)

	manager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, bridge)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	a.rabbitManager = manager

	a.publisher, err = rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:    a.config.RabbitMQ.Exchange,
		ExchangeType:    constants.ExchangeTypeTopic,
		Durable:         true,
		DeclareExchange: true,
		Logger:          bridge,
	}, manager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ publisher: %w", err)
	}

	publisher, err := rabbitmq_adapter.NewSubscriptionEventsPublisher(a.publisher)
	if err != nil {
		return nil, err
	}
	return publisher, nil
}

// Run запускает сервер и ждет сигнала завершения.
func (a *App) Run() error {
	defer a.shutdown()

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", port.Fields{"port": a.config.Rest.PORT})
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("Server failed, shutting down", err, nil)
		return err
	}
}

func (a *App) shutdown() {
	a.logger.Info("Shutdown sequence initiated...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.apiServer != nil {
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}
	}

	a.closeResources()
	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent уже может быть недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

// abort освобождает то, что успело открыться в NewApp
func (a *App) abort(err error) error {
	a.closeResources()
	if a.fluentClient != nil {
		_ = a.fluentClient.Close()
	}
	return err
}

// closeResources закрывает брокер и пул БД, fluent закрывается последним в shutdown
func (a *App) closeResources() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ publisher", err, nil)
		}
		a.publisher = nil
	}
	if a.rabbitManager != nil {
		if err := a.rabbitManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
		a.rabbitManager = nil
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.dbPool = nil
		a.logger.Info("PostgreSQL pool closed.", nil)
	}
}
