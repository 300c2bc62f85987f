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
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getBookingChangesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking_changes"
	getFeaturesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_features"
	getNextAvailableHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_next_available"
	getScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_schedule"
	listBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_booking_status"
	updateFeaturesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_features"
	updateScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/featureflags"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/notifier"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	changeRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/change"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/notification"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	featuresService "github.com/m04kA/SMC-SalonBooking/internal/service/features"
	scheduleService "github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	getNextAvailableUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_next_available"
	rescheduleBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_booking"
	updateBookingStatusUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// Общий набор методов Postgres и in-memory хранилищ
type (
	bookingStore interface {
		Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
		GetByID(ctx context.Context, id string) (*domain.Booking, error)
		List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
		GetActiveOverlapping(ctx context.Context, resourceID string, start, end time.Time, excludeID *string) ([]*domain.Booking, error)
		Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
		LockResource(ctx context.Context, resourceID string) error
	}

	changeStore interface {
		Create(ctx context.Context, change *domain.BookingChange) error
		GetByBookingID(ctx context.Context, bookingID string) ([]*domain.BookingChange, error)
	}

	scheduleStore interface {
		GetConfig(ctx context.Context, resourceID string) (*domain.ScheduleConfig, error)
		Upsert(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	}

	txManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}

	featureStore interface {
		IsBookingEnabled(ctx context.Context, resourceID string) (bool, error)
		SetBookingEnabled(ctx context.Context, resourceID string, enabled bool) error
	}

	publisher interface {
		notification.Publisher
		Close() error
	}

	serviceCatalog interface {
		GetService(ctx context.Context, serviceID string) (*domain.Service, error)
		GetStaff(ctx context.Context, staffID string) (*domain.Staff, error)
	}
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from config.toml (resource=%s, storage=%s, features=%s)",
		cfg.Salon.ResourceID, cfg.Storage.Driver, cfg.Features.Store)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	var (
		bookingRepository  bookingStore
		changeRepository   changeStore
		scheduleRepository scheduleStore
		txMgr              txManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		// При выключенных метриках обёртка просто проксирует запросы
		wrappedDB := dbmetrics.Wrap(db, metricsCollector)
		wrappedDB.CollectPoolStats(15*time.Second, stopMetricsCh)

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		changeRepository = changeRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)

	case config.StorageDriverMemory:
		store := memory.NewStore()
		bookingRepository = store.Bookings()
		changeRepository = store.Changes()
		scheduleRepository = store.Schedules()
		txMgr = store.TxManager()
		log.Warn("Using in-memory storage, data is lost on restart")
	}

	// Переключатель записи
	var features featureStore
	var redisClient *redis.Client

	switch cfg.Features.Store {
	case config.FeatureStoreRedis:
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		features = featureflags.NewRedis(redisClient, cfg.Features.BookingEnabledDefault)
		log.Info("Feature flags stored in redis (addr=%s)", cfg.Redis.Addr)
	default:
		features = featureflags.NewStatic(cfg.Features.BookingEnabledDefault)
		log.Info("Feature flags stored in memory (booking_enabled_default=%t)", cfg.Features.BookingEnabledDefault)
	}

	// Канал уведомлений
	var notificationPublisher publisher = notifier.Noop{}
	if cfg.Kafka.Enabled {
		notificationPublisher = notifier.NewKafkaPublisher(
			cfg.Kafka.Brokers,
			cfg.Kafka.Topic,
			time.Duration(cfg.Kafka.WriteTimeout)*time.Second,
		)
		log.Info("Notifications published to kafka (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	composer := notification.NewComposer(cfg.Salon.DefaultPhoneRegion)
	relay := notification.NewRelay(notificationPublisher, metricsCollector, log)

	// Каталог услуг и сотрудников
	var serviceCatalogClient serviceCatalog
	if cfg.Catalog.URL != "" {
		serviceCatalogClient = catalog.NewClient(
			cfg.Catalog.URL,
			time.Duration(cfg.Catalog.Timeout)*time.Second,
			log,
		)
		log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)
	} else {
		serviceCatalogClient = catalog.NewStatic(cfg.Catalog.CatalogServices(), cfg.Catalog.CatalogStaff())
		log.Info("Static catalog initialized (services=%d, staff=%d)", len(cfg.Catalog.Services), len(cfg.Catalog.Staff))
	}

	transitions := domain.PermissiveTransitions()
	if cfg.Salon.StrictTransitions {
		transitions = domain.StrictTransitions()
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		changeRepository,
		scheduleRepository,
		serviceCatalogClient,
		features,
		log,
	)
	featureSvc := featuresService.NewService(features, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, bookingRepository, txMgr, log)

	if err := scheduleSvc.EnsureDefault(context.Background(), cfg.Salon.ScheduleSeed()); err != nil {
		log.Fatal("Failed to seed schedule for resource=%s: %v", cfg.Salon.ResourceID, err)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		serviceCatalogClient,
		features,
		txMgr,
		composer,
		relay,
		metricsCollector,
		cfg.Salon.DefaultPhoneRegion,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		serviceCatalogClient,
		features,
		log,
	)

	getNextAvailableUseCase := getNextAvailableUC.NewUseCase(
		getAvailableSlotsUseCase,
		scheduleRepository,
		features,
		log,
	)

	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		changeRepository,
		scheduleRepository,
		serviceCatalogClient,
		features,
		txMgr,
		transitions,
		composer,
		relay,
		metricsCollector,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		changeRepository,
		scheduleRepository,
		serviceCatalogClient,
		features,
		txMgr,
		transitions,
		composer,
		relay,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	resourceID := cfg.Salon.ResourceID

	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, resourceID, log)
	getNextAvailable := getNextAvailableHandler.NewHandler(getNextAvailableUseCase, resourceID, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, resourceID, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, resourceID, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, resourceID, log)
	getBookingChanges := getBookingChangesHandler.NewHandler(bookingSvc, resourceID, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, resourceID, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, resourceID, log)
	getFeatures := getFeaturesHandler.NewHandler(featureSvc, resourceID, log)
	updateFeatures := updateFeaturesHandler.NewHandler(featureSvc, resourceID, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, resourceID, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, resourceID, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("/public").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		public.Use(limiter.Middleware)
		log.Info("Rate limit on public routes: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Свободные слоты на дату
	public.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Ближайшие свободные слоты
	public.HandleFunc("/availability/next", getNextAvailable.Handle).Methods(http.MethodGet)

	// Запрос на запись от клиента
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Состояние переключателей (нужно странице записи)
	api.HandleFunc("/features", getFeatures.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	salon := api.PathPrefix("/salon").Subrouter()
	salon.Use(middleware.Auth)

	// --- Бронирования ---
	salon.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	salon.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	salon.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	salon.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	salon.HandleFunc("/bookings/{bookingId}/changes", getBookingChanges.Handle).Methods(http.MethodGet)

	// --- Расписание ---
	salon.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	salon.HandleFunc("/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// --- Администрирование ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth)
	admin.HandleFunc("/features", updateFeatures.Handle).Methods(http.MethodPatch)

	// CORS для страницы записи и панели салона
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.UserIDHeader},
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(r),
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
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := notificationPublisher.Close(); err != nil {
		log.Error("Failed to close notification publisher: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
