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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/CAJINC/buy-locals-booking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/CAJINC/buy-locals-booking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/CAJINC/buy-locals-booking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/CAJINC/buy-locals-booking/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/CAJINC/buy-locals-booking/internal/api/handlers/get_business_bookings"
	getUserBookingsHandler "github.com/CAJINC/buy-locals-booking/internal/api/handlers/get_user_bookings"
	updateBookingStatusHandler "github.com/CAJINC/buy-locals-booking/internal/api/handlers/update_booking_status"
	"github.com/CAJINC/buy-locals-booking/internal/api/middleware"
	"github.com/CAJINC/buy-locals-booking/internal/config"
	availabilityCache "github.com/CAJINC/buy-locals-booking/internal/infra/cache/availability"
	bookingRepo "github.com/CAJINC/buy-locals-booking/internal/infra/storage/booking"
	directoryClient "github.com/CAJINC/buy-locals-booking/internal/integrations/directory"
	notifierClient "github.com/CAJINC/buy-locals-booking/internal/integrations/notifier"
	bookingsService "github.com/CAJINC/buy-locals-booking/internal/service/bookings"
	cancelBookingUC "github.com/CAJINC/buy-locals-booking/internal/usecase/cancel_booking"
	createBookingUC "github.com/CAJINC/buy-locals-booking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/CAJINC/buy-locals-booking/internal/usecase/get_available_slots"
	"github.com/CAJINC/buy-locals-booking/pkg/logger"
	"github.com/CAJINC/buy-locals-booking/pkg/metrics"
	"github.com/CAJINC/buy-locals-booking/pkg/txmanager"
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

	log.Info("Starting booking engine...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Подключаемся к Redis для кеша доступности
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		// Кеш не критичен для работы: при недоступном Redis все запросы
		// идут мимо кеша, операции Get/Put проглатывают ошибки
		log.Warn("Redis is not reachable, availability cache degraded: %v", err)
	} else {
		log.Info("Successfully connected to Redis at %s", cfg.Redis.Addr)
	}

	cache := availabilityCache.New(
		redisClient,
		time.Duration(cfg.Redis.AvailabilityTTL)*time.Second,
		log,
	)

	// Инициализируем интеграционных клиентов
	directory := directoryClient.NewClient(
		cfg.Directory.URL,
		time.Duration(cfg.Directory.Timeout)*time.Second,
		log,
	)
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Directory=%s timeout=%ds, Notifier=%s timeout=%ds)",
		cfg.Directory.URL, cfg.Directory.Timeout, cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем репозиторий и менеджер транзакций
	bookingRepository := bookingRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		directory,
		cache,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		directory,
		cache,
		notifier,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		cache,
		notifier,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		directory,
		cache,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Получение доступных слотов для бронирования
	api.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

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

	// Отмена бронирования с расчётом возврата
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Обновление статуса бронирования (workflow бизнеса)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление бизнесом (для владельцев) ---
	// Список бронирований бизнеса
	protected.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

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
