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

	bookAppointmentHandler "github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers/cancel_appointment"
	checkAvailabilityHandler "github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers/check_availability"
	createOperatorHandler "github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers/create_operator"
	deleteOperatorHandler "github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers/delete_operator"
	getAppointmentHandler "github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers/get_appointment"
	getCustomerAppointmentsHandler "github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers/get_customer_appointments"
	getOperatorHandler "github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers/get_operator"
	getOperatorSummariesHandler "github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers/get_operator_summaries"
	listOperatorsHandler "github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers/list_operators"
	rescheduleAppointmentHandler "github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers/reschedule_appointment"
	updateOperatorHandler "github.com/carserviceagency/CSA-AppointmentService/internal/api/handlers/update_operator"
	"github.com/carserviceagency/CSA-AppointmentService/internal/api/middleware"
	"github.com/carserviceagency/CSA-AppointmentService/internal/config"
	"github.com/carserviceagency/CSA-AppointmentService/internal/infra/cache"
	appointmentRepo "github.com/carserviceagency/CSA-AppointmentService/internal/infra/storage/appointment"
	operatorRepo "github.com/carserviceagency/CSA-AppointmentService/internal/infra/storage/operator"
	appointmentsService "github.com/carserviceagency/CSA-AppointmentService/internal/service/appointments"
	operatorsService "github.com/carserviceagency/CSA-AppointmentService/internal/service/operators"
	bookAppointmentUC "github.com/carserviceagency/CSA-AppointmentService/internal/usecase/book_appointment"
	checkAvailabilityUC "github.com/carserviceagency/CSA-AppointmentService/internal/usecase/check_availability"
	rescheduleAppointmentUC "github.com/carserviceagency/CSA-AppointmentService/internal/usecase/reschedule_appointment"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/dbmetrics"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/logger"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/metrics"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/simpletxmanager"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/txmanager"
	"github.com/carserviceagency/CSA-AppointmentService/pkg/types"
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

	log.Info("Starting CSA-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Границы рабочего дня для сетки слотов
	dayStart, err := types.NewTimeStringFromString(cfg.Schedule.DayStart)
	if err != nil {
		log.Fatal("Invalid schedule.day_start %q: %v", cfg.Schedule.DayStart, err)
	}
	dayEnd, err := types.NewTimeStringFromString(cfg.Schedule.DayEnd)
	if err != nil {
		log.Fatal("Invalid schedule.day_end %q: %v", cfg.Schedule.DayEnd, err)
	}

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

	// Подключаемся к Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	responseCache := cache.New(redisClient, time.Duration(cfg.Redis.TTLMinutes)*time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := responseCache.Ping(ctx); err != nil {
		cancel()
		log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
	}
	cancel()
	log.Info("Successfully connected to redis (addr=%s, ttl=%dm)", cfg.Redis.Addr, cfg.Redis.TTLMinutes)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		operatorRepository    *operatorRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		operatorRepository = operatorRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		operatorRepository = operatorRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		operatorRepository,
		responseCache,
		txMgr,
		log,
	)
	operatorsSvc := operatorsService.NewService(
		operatorRepository,
		responseCache,
		log,
	)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		appointmentRepository,
		operatorRepository,
		responseCache,
		txMgr,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		operatorRepository,
		responseCache,
		txMgr,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		appointmentRepository,
		operatorRepository,
		dayStart,
		dayEnd,
		log,
	)

	// Инициализируем handlers
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getOperatorSummaries := getOperatorSummariesHandler.NewHandler(appointmentsSvc, log)
	createOperator := createOperatorHandler.NewHandler(operatorsSvc, log)
	getOperator := getOperatorHandler.NewHandler(operatorsSvc, log)
	listOperators := listOperatorsHandler.NewHandler(operatorsSvc, log)
	updateOperator := updateOperatorHandler.NewHandler(operatorsSvc, log)
	deleteOperator := deleteOperatorHandler.NewHandler(operatorsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной идентификатор запроса
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// --- Записи ---
	appointmentAPI := r.PathPrefix("/appointment/v1").Subrouter()

	// Бронирование записи
	appointmentAPI.HandleFunc("/book", bookAppointment.Handle).Methods(http.MethodPost)

	// Проверка доступности расписания оператора
	appointmentAPI.HandleFunc("/check-availability", checkAvailability.Handle).Methods(http.MethodPost)

	// Записи клиента по имени
	appointmentAPI.HandleFunc("/all/{name}", getCustomerAppointments.Handle).Methods(http.MethodGet)

	// Сводка по операторам
	appointmentAPI.HandleFunc("/operators", getOperatorSummaries.Handle).Methods(http.MethodGet)

	// Операции над одной записью: id числовой, чтобы не пересекаться
	// с маршрутами /book, /all и /operators
	appointmentAPI.HandleFunc("/{appointmentId:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	appointmentAPI.HandleFunc("/{appointmentId:[0-9]+}", rescheduleAppointment.Handle).Methods(http.MethodPut)
	appointmentAPI.HandleFunc("/{appointmentId:[0-9]+}", cancelAppointment.Handle).Methods(http.MethodDelete)

	// --- Операторы ---
	operatorAPI := r.PathPrefix("/service/operator/v1").Subrouter()

	operatorAPI.HandleFunc("/create", createOperator.Handle).Methods(http.MethodPost)
	operatorAPI.HandleFunc("/", listOperators.Handle).Methods(http.MethodGet)
	operatorAPI.HandleFunc("/{operatorId}", getOperator.Handle).Methods(http.MethodGet)
	operatorAPI.HandleFunc("/{operatorId}", updateOperator.Handle).Methods(http.MethodPut)
	operatorAPI.HandleFunc("/{operatorId}", deleteOperator.Handle).Methods(http.MethodDelete)

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

	shutdownCtx, cancelShutdown := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
