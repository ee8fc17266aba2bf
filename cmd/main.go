package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_availability"
	getAvailabilityRangeHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_availability_range"
	getBookingHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_booking"
	getLimitsHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_limits"
	getTourDatesHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_tour_dates"
	updateLimitHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/update_limit"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/config"
	"github.com/m04kA/SMC-TourBookingService/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/bookings"
	limitRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/limits"
	availabilityService "github.com/m04kA/SMC-TourBookingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-TourBookingService/internal/service/bookings"
	limitsService "github.com/m04kA/SMC-TourBookingService/internal/service/limits"
	createBookingUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
	"github.com/m04kA/SMC-TourBookingService/pkg/metrics"
	"github.com/m04kA/SMC-TourBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-TourBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TourBookingService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Availability.Location()
	if err != nil {
		log.Fatal("Failed to load site timezone: %v", err)
	}
	log.Info("Site timezone: %s", location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем кэш доступности: Redis или in-memory
	var availabilityCache availabilityService.Cache

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatal("Failed to ping redis: %v", err)
		}
		cancelPing()

		availabilityCache = cache.NewRedis(redisClient, cfg.Availability.CacheTTL())
		log.Info("Availability cache: redis at %s, ttl=%s", cfg.Redis.Addr, cfg.Availability.CacheTTL())
	} else {
		availabilityCache = cache.NewMemory(cfg.Availability.CacheTTL(), nil)
		log.Info("Availability cache: in-memory, ttl=%s", cfg.Availability.CacheTTL())
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		limitRepository   *limitRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		limitRepository = limitRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		limitRepository = limitRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		limitRepository,
		bookingRepository,
		availabilityCache,
		availabilityService.Params{
			DefaultDailyLimit: cfg.Availability.DefaultDailyLimit,
			Location:          location,
			LookaheadMonths:   cfg.Availability.LookaheadMonths,
		},
		log,
	)
	limitSvc := limitsService.NewService(limitRepository, location, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		txMgr,
		bookingRepository,
		limitRepository,
		createBookingUC.Params{
			DefaultDailyLimit: cfg.Availability.DefaultDailyLimit,
			Location:          location,
		},
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailabilityRange := getAvailabilityRangeHandler.NewHandler(availabilitySvc, log)
	getTourDates := getTourDatesHandler.NewHandler(availabilitySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getLimits := getLimitsHandler.NewHandler(limitSvc, log)
	updateLimit := updateLimitHandler.NewHandler(limitSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность одной даты
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Доступность диапазона дат
	api.HandleFunc("/availability/range", getAvailabilityRange.Handle).Methods(http.MethodGet)

	// Календарь доступных дат тура
	api.HandleFunc("/tours/{tourSlug}/available-dates", getTourDates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Управление лимитами (для администраторов) ---
	// Список лимитов за период
	protected.HandleFunc("/admin/limits", getLimits.Handle).Methods(http.MethodGet)

	// Установка лимита на дату
	protected.HandleFunc("/admin/limits", updateLimit.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
