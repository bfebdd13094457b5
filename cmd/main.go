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

	createBookingHandler "github.com/vetmogee/schedula/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/vetmogee/schedula/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/vetmogee/schedula/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/vetmogee/schedula/internal/api/handlers/get_customer_bookings"
	getNextBookingHandler "github.com/vetmogee/schedula/internal/api/handlers/get_next_booking"
	getSalonBookingsHandler "github.com/vetmogee/schedula/internal/api/handlers/get_salon_bookings"
	getSlotGridHandler "github.com/vetmogee/schedula/internal/api/handlers/get_slot_grid"
	"github.com/vetmogee/schedula/internal/api/middleware"
	"github.com/vetmogee/schedula/internal/config"
	bookingRepo "github.com/vetmogee/schedula/internal/infra/storage/booking"
	salonRepo "github.com/vetmogee/schedula/internal/infra/storage/salon"
	bookingsService "github.com/vetmogee/schedula/internal/service/bookings"
	createBookingUC "github.com/vetmogee/schedula/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/vetmogee/schedula/internal/usecase/get_available_slots"
	getSlotGridUC "github.com/vetmogee/schedula/internal/usecase/get_slot_grid"
	"github.com/vetmogee/schedula/migrations"
	"github.com/vetmogee/schedula/pkg/dbmetrics"
	"github.com/vetmogee/schedula/pkg/logger"
	"github.com/vetmogee/schedula/pkg/metrics"
	"github.com/vetmogee/schedula/pkg/txmanager"
)

// bookingMetrics адаптер счётчиков движка бронирования для use case
type bookingMetrics struct {
	m *metrics.Metrics
}

func (b *bookingMetrics) BookingCreated()  { b.m.BookingsCreatedTotal.Inc() }
func (b *bookingMetrics) BookingConflict() { b.m.BookingConflictsTotal.Inc() }
func (b *bookingMetrics) TxRetry()         { b.m.TxRetriesTotal.Inc() }

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

	log.Info("Starting schedula booking service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Применяем миграции
	if cfg.Database.Migrate {
		if err := migrations.Up(context.Background(), db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		if version, err := migrations.Version(context.Background(), db); err == nil {
			log.Info("Migrations applied, schema version %d", version)
		}
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		salonRepository   *salonRepo.Repository
		bookingRepository *bookingRepo.Repository
		txMgr             *txmanager.TransactionManager
	)

	var bookingCounters createBookingUC.Metrics = createBookingUC.NopMetrics{}

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		salonRepository = salonRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.New(wrappedDB)
		bookingCounters = &bookingMetrics{m: metricsCollector}
	} else {
		salonRepository = salonRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = txmanager.New(dbmetrics.NewSimpleDB(db))
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		salonRepository,
		bookingRepository,
		txMgr,
		bookingCounters,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		salonRepository,
		bookingRepository,
		log,
	)
	getSlotGridUseCase := getSlotGridUC.NewUseCase(
		salonRepository,
		bookingRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSlotGrid := getSlotGridHandler.NewHandler(getSlotGridUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	getNextBooking := getNextBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные времена начала для выбранных услуг
	api.HandleFunc("/salons/{salonId}/employees/{employeeId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Сетка слотов дня для календарного вида
	api.HandleFunc("/salons/{salonId}/employees/{employeeId}/slot-grid",
		getSlotGrid.Handle).Methods(http.MethodGet)

	// Календарь бронирований салона
	api.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)

	// Бронирование по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Customer-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings",
		getCustomerBookings.Handle).Methods(http.MethodGet)

	// Ближайшее предстоящее бронирование клиента
	protected.HandleFunc("/customers/{customerId}/bookings/next",
		getNextBooking.Handle).Methods(http.MethodGet)

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
