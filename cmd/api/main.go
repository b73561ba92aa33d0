package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	deliveryHTTP "github.com/frontandrew/crosspass/internal/delivery/http"
	"github.com/frontandrew/crosspass/internal/infrastructure/recognizer"
	"github.com/frontandrew/crosspass/internal/pkg/config"
	"github.com/frontandrew/crosspass/internal/pkg/database"
	"github.com/frontandrew/crosspass/internal/pkg/jwt"
	"github.com/frontandrew/crosspass/internal/pkg/logger"
	"github.com/frontandrew/crosspass/internal/pkg/metrics"
	"github.com/frontandrew/crosspass/internal/pkg/redis"
	"github.com/frontandrew/crosspass/internal/repository"
	"github.com/frontandrew/crosspass/internal/repository/cached"
	"github.com/frontandrew/crosspass/internal/repository/postgres"
	"github.com/frontandrew/crosspass/internal/usecase/checkpoint"
	"github.com/frontandrew/crosspass/internal/usecase/identity"
	"github.com/frontandrew/crosspass/internal/usecase/pass"
	"github.com/frontandrew/crosspass/internal/usecase/preset"
	"github.com/frontandrew/crosspass/internal/usecase/traveller"
	"github.com/frontandrew/crosspass/internal/usecase/vehicle"
)

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Инициализация logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	log.Info("Starting CROSSPASS API server", map[string]interface{}{
		"version": "1.0.0",
	})

	// =========================================================================
	// Подключение к PostgreSQL и миграции
	// =========================================================================

	ctx := context.Background()
	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer database.Close(db)

	log.Info("Connected to PostgreSQL", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	if err := database.Migrate(ctx, &cfg.Database); err != nil {
		log.Fatal("Failed to run migrations", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Database migrations applied")

	// =========================================================================
	// Подключение к Redis (опционально - без кэша сервис работает)
	// =========================================================================

	var cache *redis.Client
	cache, err = redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis is not available, vehicle cache disabled", map[string]interface{}{
			"error": err.Error(),
		})
		cache = nil
	} else {
		defer cache.Close()
		log.Info("Connected to Redis", map[string]interface{}{
			"addr": cfg.Redis.Address(),
		})
	}

	// =========================================================================
	// Создание repositories
	// =========================================================================

	identityRepo := postgres.NewIdentityRepository(db)
	travellerLinkRepo := postgres.NewTravellerLinkRepository(db)
	presetRepo := postgres.NewPresetRepository(db)
	passRepo := postgres.NewPassRepository(db)
	crossingLogRepo := postgres.NewCrossingLogRepository(db)

	var vehicleRepo repository.VehicleRepository = postgres.NewVehicleRepository(db)
	if cache != nil {
		vehicleRepo = cached.NewVehicleRepository(vehicleRepo, cache)
	}

	log.Info("Repositories initialized")

	// =========================================================================
	// Создание клиента распознавания номеров
	// =========================================================================

	recognizerClient := recognizer.NewHTTPClient(
		cfg.Recognizer.APIURL,
		cfg.Recognizer.APIToken,
		cfg.Recognizer.Timeout,
	)

	if cfg.Recognizer.APIToken == "" {
		log.Warn("Recognizer API token is empty, checkpoint scans will be rejected")
	}

	// =========================================================================
	// Создание JWT token service и метрик
	// =========================================================================

	tokenService := jwt.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.AccessExpiry)
	appMetrics := metrics.New()

	log.Info("JWT token service initialized")

	// =========================================================================
	// Создание use case services
	// =========================================================================

	identityService := identity.NewService(identityRepo, tokenService, log)
	vehicleService := vehicle.NewService(vehicleRepo, identityRepo, log)
	travellerService := traveller.NewService(travellerLinkRepo, identityRepo, log)
	presetService := preset.NewService(presetRepo, identityRepo, log)
	passService := pass.NewService(passRepo, identityRepo, vehicleRepo, log)
	checkpointService := checkpoint.NewService(recognizerClient, vehicleRepo, passRepo, crossingLogRepo, appMetrics, log)

	log.Info("Use case services initialized")

	// =========================================================================
	// Создание HTTP handlers
	// =========================================================================

	identityHandler := deliveryHTTP.NewIdentityHandler(identityService, log)
	vehicleHandler := deliveryHTTP.NewVehicleHandler(vehicleService, log)
	travellerHandler := deliveryHTTP.NewTravellerHandler(travellerService, log)
	presetHandler := deliveryHTTP.NewPresetHandler(presetService, log)
	passHandler := deliveryHTTP.NewPassHandler(passService, log)
	checkpointHandler := deliveryHTTP.NewCheckpointHandler(checkpointService, log)

	log.Info("HTTP handlers initialized")

	// =========================================================================
	// Создание и настройка HTTP router
	// =========================================================================

	router := deliveryHTTP.NewRouter(
		identityHandler,
		vehicleHandler,
		travellerHandler,
		presetHandler,
		passHandler,
		checkpointHandler,
		tokenService,
		cfg,
		log,
	)

	handler := router.Setup()

	log.Info("HTTP router configured")

	// =========================================================================
	// Создание HTTP сервера
	// =========================================================================

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// =========================================================================
	// Запуск сервера в goroutine
	// =========================================================================

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================

	// Канал для получения сигналов операционной системы
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Блокируемся до получения сигнала или ошибки сервера
	select {
	case err := <-serverErrors:
		log.Fatal("Server error", map[string]interface{}{
			"error": err.Error(),
		})

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		// Даем серверу 30 секунд на graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})

			// Принудительное закрытие
			if err := srv.Close(); err != nil {
				log.Fatal("Failed to close server", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		log.Info("Server stopped gracefully")
	}
}
