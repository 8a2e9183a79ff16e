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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	calendarScopeHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/calendar_scope"
	createAppointmentHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/create_appointment"
	createServiceHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/create_service"
	getAppointmentHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_available_slots"
	getBarberHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_barber"
	getPaymentHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_payment"
	getServiceHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_service"
	listBarberAppointmentsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/list_barber_appointments"
	listBarbersHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/list_barbers"
	listCompletedServicesHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/list_completed_services"
	listPaymentsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/list_payments"
	listProductSalesHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/list_product_sales"
	listServicesHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/list_services"
	markPaymentPaidHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/mark_payment_paid"
	recordCompletedServiceHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/record_completed_service"
	recordProductSaleHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/record_product_sale"
	registerBarberHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/register_barber"
	setCommissionHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/set_commission"
	settleCommissionsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/settle_commissions"
	transitionAppointmentHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/transition_appointment"
	updateBarberHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/update_barber"
	updateServiceHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/update_service"
	validateCompletedServiceHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/validate_completed_service"
	validateProductSaleHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/validate_product_sale"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	barberRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/barber"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	commissionRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/commission"
	completedServiceRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/completedservice"
	paymentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/payment"
	productSaleRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/productsale"
	inviteServiceClient "github.com/m04kA/SMC-BarberService/internal/integrations/inviteservice"
	"github.com/m04kA/SMC-BarberService/internal/jobs/autosettle"
	appointmentsService "github.com/m04kA/SMC-BarberService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-BarberService/internal/service/catalog"
	completedServicesService "github.com/m04kA/SMC-BarberService/internal/service/completedservices"
	paymentsService "github.com/m04kA/SMC-BarberService/internal/service/payments"
	productSalesService "github.com/m04kA/SMC-BarberService/internal/service/productsales"
	createAppointmentUC "github.com/m04kA/SMC-BarberService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
	settleCommissionsUC "github.com/m04kA/SMC-BarberService/internal/usecase/settle_commissions"
	transitionAppointmentUC "github.com/m04kA/SMC-BarberService/internal/usecase/transition_appointment"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/metrics"
	"github.com/m04kA/SMC-BarberService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(config.DefaultPath)
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

	log.Info("Starting SMC-BarberService...")

	window, err := cfg.Slots.WorkingWindow()
	if err != nil {
		log.Fatal("Invalid slots configuration: %v", err)
	}
	defaultPercent, err := cfg.Commission.Default()
	if err != nil {
		log.Fatal("Invalid commission configuration: %v", err)
	}
	productPercent, err := cfg.Commission.Product()
	if err != nil {
		log.Fatal("Invalid commission configuration: %v", err)
	}

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

	// Выбираем исполнителя запросов и transaction manager (с метриками или без)
	var (
		executor dbmetrics.DBExecutor
		txMgr    *txmanager.TransactionManager
	)
	txOpts := []txmanager.Option{txmanager.WithMaxRetries(cfg.Database.TxRetries)}

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB, txOpts...)
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db, txOpts...)
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(executor)
	barberRepository := barberRepo.NewRepository(executor)
	serviceRepository := catalogRepo.NewRepository(executor)
	commissionRepository := commissionRepo.NewRepository(executor)
	completedServiceRepository := completedServiceRepo.NewRepository(executor)
	paymentRepository := paymentRepo.NewRepository(executor)
	productSaleRepository := productSaleRepo.NewRepository(executor)

	// Инициализируем интеграционных клиентов
	inviteClient := inviteServiceClient.NewClient(
		cfg.InviteService.URL,
		time.Duration(cfg.InviteService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (InviteService=%s timeout=%ds)",
		cfg.InviteService.URL, cfg.InviteService.Timeout)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		serviceRepository,
		barberRepository,
		commissionRepository,
		inviteClient,
		defaultPercent,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		barberRepository,
		log,
	)
	completedServicesSvc := completedServicesService.NewService(
		completedServiceRepository,
		barberRepository,
		serviceRepository,
		log,
	)
	productSalesSvc := productSalesService.NewService(
		productSaleRepository,
		barberRepository,
		productPercent,
		log,
	)
	paymentsSvc := paymentsService.NewService(
		paymentRepository,
		barberRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		barberRepository,
		serviceRepository,
		window,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		barberRepository,
		serviceRepository,
		txMgr,
		window,
		log,
	)
	transitionAppointmentUseCase := transitionAppointmentUC.NewUseCase(
		appointmentRepository,
		barberRepository,
		serviceRepository,
		completedServicesSvc,
		txMgr,
		metricsCollector,
		log,
	)
	settleCommissionsUseCase := settleCommissionsUC.NewUseCase(
		barberRepository,
		paymentRepository,
		completedServiceRepository,
		productSaleRepository,
		catalogSvc,
		txMgr,
		metricsCollector,
		log,
	)

	// Фоновый расчет выплат по закрытым периодам
	var settleJob *autosettle.Job
	if cfg.AutoSettle.Enabled {
		settleJob = autosettle.NewJob(barberRepository, settleCommissionsUseCase, window.Loc(), log)
		if err := settleJob.Start(cfg.AutoSettle.Schedule); err != nil {
			log.Fatal("Failed to start autosettle job: %v", err)
		}
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	transitionAppointment := transitionAppointmentHandler.NewHandler(transitionAppointmentUseCase, log)
	listBarberAppointments := listBarberAppointmentsHandler.NewHandler(appointmentsSvc, log)

	recordCompletedService := recordCompletedServiceHandler.NewHandler(completedServicesSvc, log)
	validateCompletedService := validateCompletedServiceHandler.NewHandler(completedServicesSvc, log)
	listCompletedServices := listCompletedServicesHandler.NewHandler(completedServicesSvc, log)
	recordProductSale := recordProductSaleHandler.NewHandler(productSalesSvc, log)
	validateProductSale := validateProductSaleHandler.NewHandler(productSalesSvc, log)
	listProductSales := listProductSalesHandler.NewHandler(productSalesSvc, log)

	settleCommissions := settleCommissionsHandler.NewHandler(settleCommissionsUseCase, log)
	listPayments := listPaymentsHandler.NewHandler(paymentsSvc, log)
	getPayment := getPaymentHandler.NewHandler(paymentsSvc, log)
	markPaymentPaid := markPaymentPaidHandler.NewHandler(paymentsSvc, log)

	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	registerBarber := registerBarberHandler.NewHandler(catalogSvc, log)
	listBarbers := listBarbersHandler.NewHandler(catalogSvc, log)
	getBarber := getBarberHandler.NewHandler(catalogSvc, log)
	updateBarber := updateBarberHandler.NewHandler(catalogSvc, log)
	calendarScope := calendarScopeHandler.NewHandler(catalogSvc, log)
	setCommission := setCommissionHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
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

	api.HandleFunc("/barbers/{barberId:[0-9]+}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId:[0-9]+}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/barbers", listBarbers.Handle).Methods(http.MethodGet)
	api.HandleFunc("/barbers/{barberId:[0-9]+}", getBarber.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <JWT>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, log))

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId:[0-9]+}/status", transitionAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/barbers/{barberId:[0-9]+}/appointments", listBarberAppointments.Handle).Methods(http.MethodGet)

	// --- Выполненные услуги и продажи ---
	protected.HandleFunc("/completed-services", recordCompletedService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/completed-services/{id:[0-9]+}/validate", validateCompletedService.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/barbers/{barberId:[0-9]+}/completed-services", listCompletedServices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/product-sales", recordProductSale.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/product-sales/{id:[0-9]+}/validate", validateProductSale.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/barbers/{barberId:[0-9]+}/product-sales", listProductSales.Handle).Methods(http.MethodGet)

	// --- Выплаты ---
	protected.HandleFunc("/barbers/{barberId:[0-9]+}/settlements", settleCommissions.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/barbers/{barberId:[0-9]+}/payments", listPayments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId:[0-9]+}", getPayment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId:[0-9]+}/pay", markPaymentPaid.Handle).Methods(http.MethodPatch)

	// --- Каталог (для администратора) ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId:[0-9]+}", updateService.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/barbers/register", registerBarber.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/barbers/{barberId:[0-9]+}", updateBarber.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/barbers/{barberId:[0-9]+}/calendar-scope", calendarScope.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/barbers/{barberId:[0-9]+}/commissions/{serviceId:[0-9]+}", setCommission.Handle).Methods(http.MethodPut)

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

	if settleJob != nil {
		settleJob.Stop()
	}

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

	log.Info("Server stopped gracefully")
}
