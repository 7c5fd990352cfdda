package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Notifuse/newsletter/config"
	"github.com/Notifuse/newsletter/internal/database"
	"github.com/Notifuse/newsletter/internal/domain"
	httpHandler "github.com/Notifuse/newsletter/internal/http"
	"github.com/Notifuse/newsletter/internal/http/middleware"
	"github.com/Notifuse/newsletter/internal/repository"
	"github.com/Notifuse/newsletter/internal/service"
	"github.com/Notifuse/newsletter/pkg/logger"
	"github.com/Notifuse/newsletter/pkg/ratelimiter"
	"github.com/Notifuse/newsletter/pkg/tracing"

	"contrib.go.opencensus.io/integrations/ocsql"
)

// outboundTimeout bounds calls to OpenAI, Anthropic and Brevo. Image
// generation regularly takes more than 30s.
const outboundTimeout = 90 * time.Second

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB
	GetHandler() http.Handler

	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	InitDB() error
	InitTracing() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App encapsulates the application dependencies and configuration
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB

	httpClient    domain.HTTPClient
	emailProvider domain.EmailProvider
	copyGenerator domain.CopyGenerator
	limiter       *ratelimiter.RateLimiter

	// Repositories
	companyRepo    domain.CompanyRepository
	contactRepo    domain.ContactRepository
	uploadRepo     domain.CSVUploadRepository
	insightRepo    domain.IndustryInsightRepository
	newsletterRepo domain.NewsletterRepository

	// Services
	openAIService     *service.OpenAIService
	onboardingService *service.OnboardingService
	newsletterService *service.NewsletterService
	deliveryService   *service.DeliveryService

	mux    *http.ServeMux
	server *http.Server

	serverMu      sync.RWMutex
	serverStarted chan struct{}

	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64
	requestWg       sync.WaitGroup
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithEmailProvider replaces the provider selected by EMAIL_PROVIDER
func WithEmailProvider(p domain.EmailProvider) AppOption {
	return func(a *App) {
		a.emailProvider = p
	}
}

// WithCopyGenerator replaces the provider selected by LLM_PROVIDER
func WithCopyGenerator(g domain.CopyGenerator) AppOption {
	return func(a *App) {
		a.copyGenerator = g
	}
}

// WithHTTPClient sets the client used for outbound API calls
func WithHTTPClient(c domain.HTTPClient) AppOption {
	return func(a *App) {
		a.httpClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing
func (a *App) InitTracing() error {
	tracingConfig := &a.config.Tracing

	if err := tracing.InitTracing(tracingConfig, a.logger); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if tracingConfig.Enabled {
		a.logger.WithField("trace_exporter", tracingConfig.TraceExporter).
			WithField("metrics_exporter", tracingConfig.MetricsExporter).
			WithField("sampling_rate", tracingConfig.SamplingProbability).
			Info("Tracing initialized successfully")
	}

	return nil
}

// InitDB connects to the Supabase Postgres database and creates the
// schema if needed
func (a *App) InitDB() error {
	if a.db != nil {
		return nil
	}

	a.logger.WithField("dsn", database.MaskedDSN(&a.config.Database)).Info("Connecting to database")

	driverName := "postgres"
	if a.config.Tracing.Enabled {
		var err error
		driverName, err = ocsql.Register(driverName, ocsql.WithAllTraceOptions())
		if err != nil {
			return fmt.Errorf("failed to register opencensus sql driver: %w", err)
		}
		a.logger.Info("Database driver wrapped with OpenCensus tracing")
	}

	db, err := sql.Open(driverName, database.GetDSN(&a.config.Database))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := database.InitializeDatabase(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	maxOpen, maxIdle, maxLifetime := database.GetConnectionPoolSettings()
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	a.db = db
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.companyRepo = repository.NewCompanyRepository(a.db)
	a.contactRepo = repository.NewContactRepository(a.db)
	a.uploadRepo = repository.NewCSVUploadRepository(a.db)
	a.insightRepo = repository.NewIndustryInsightRepository(a.db)
	a.newsletterRepo = repository.NewNewsletterRepository(a.db)

	return nil
}

// InitServices initializes all application services
func (a *App) InitServices() error {
	if a.newsletterRepo == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}

	if a.httpClient == nil {
		a.httpClient = tracing.NewHTTPClient(outboundTimeout)
	}

	a.openAIService = service.NewOpenAIService(a.httpClient, a.config.LLM, a.logger)

	var err error
	if a.copyGenerator == nil {
		a.copyGenerator, err = service.NewCopyGenerator(a.config.LLM, a.openAIService, a.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize copy generator: %w", err)
		}
	}

	if a.emailProvider == nil {
		a.emailProvider, err = service.NewEmailProvider(a.config.Email, a.httpClient, a.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize email provider: %w", err)
		}
	}

	a.onboardingService = service.NewOnboardingService(service.OnboardingServiceConfig{
		CompanyRepo:    a.companyRepo,
		UploadRepo:     a.uploadRepo,
		ContactRepo:    a.contactRepo,
		NewsletterRepo: a.newsletterRepo,
		Logger:         a.logger,
		BatchSize:      a.config.Limits.ImportBatchSize,
		MaxCSVBytes:    a.config.Limits.MaxCSVBytes,
	})

	a.newsletterService = service.NewNewsletterService(
		a.newsletterRepo,
		a.companyRepo,
		a.insightRepo,
		a.copyGenerator,
		a.openAIService,
		a.logger,
	)

	a.deliveryService = service.NewDeliveryService(service.DeliveryServiceConfig{
		NewsletterRepo: a.newsletterRepo,
		ContactRepo:    a.contactRepo,
		Renderer:       service.NewNewsletterRenderer(),
		Provider:       a.emailProvider,
		Logger:         a.logger,
		Concurrency:    a.config.Limits.SendConcurrency,
		RatePerSecond:  a.config.Limits.SendRatePerSecond,
	})

	a.logger.WithField("llm_provider", a.config.LLM.Provider).
		WithField("email_provider", a.emailProvider.Name()).
		Info("Services initialized")

	return nil
}

// InitHandlers registers the API routes
func (a *App) InitHandlers() error {
	// a fresh mux avoids duplicate registrations on re-initialization
	a.mux = http.NewServeMux()
	development := a.config.IsDevelopment()

	// a namespace without a policy rejects every request, so the middleware
	// is only installed when a limit is configured
	var limiter middleware.Limiter
	if a.config.Limits.OnboardingPerMinute > 0 {
		if a.limiter == nil {
			a.limiter = ratelimiter.NewRateLimiter()
		}
		a.limiter.SetPolicy(httpHandler.RateLimitNamespace, a.config.Limits.OnboardingPerMinute, time.Minute)
		limiter = a.limiter
	}

	onboardingHandler := httpHandler.NewOnboardingHandler(
		a.onboardingService,
		limiter,
		a.config.Limits.MaxCSVBytes,
		development,
		a.logger,
	)
	newsletterHandler := httpHandler.NewNewsletterHandler(
		a.newsletterService,
		a.deliveryService,
		development,
		a.logger,
	)
	industryHandler := httpHandler.NewIndustryHandler()
	systemHandler := httpHandler.NewSystemHandler(a.db, a.config.Version, a.logger)

	onboardingHandler.RegisterRoutes(a.mux)
	newsletterHandler.RegisterRoutes(a.mux)
	industryHandler.RegisterRoutes(a.mux)
	systemHandler.RegisterRoutes(a.mux)

	return nil
}

// GetHandler returns the mux wrapped with the server middleware chain
func (a *App) GetHandler() http.Handler {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
	}

	return middleware.CORSMiddleware(handler)
}

// Start starts the HTTP server
func (a *App) Start() error {
	handler := a.GetHandler()

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).
		WithField("api_endpoint", a.config.APIEndpoint).
		Info(fmt.Sprintf("Server starting on %s", addr))

	a.serverMu.Lock()
	if a.serverStarted != nil {
		select {
		case <-a.serverStarted:
		default:
			close(a.serverStarted)
		}
	}
	a.serverStarted = make(chan struct{})

	a.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	close(serverStarted)

	if a.config.Server.SSL.Enabled {
		a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
		return a.server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
	}

	return a.server.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones (a bulk send
// can take a while) and releases resources
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		a.logger.Info("No server to shutdown")
		return a.cleanupResources()
	}

	a.logger.WithField("active_requests", a.getActiveRequestCount()).Info("Active requests at shutdown start")

	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = max(remaining-time.Second, 0)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	serverShutdownDone := make(chan error, 1)
	go func() {
		serverShutdownDone <- server.Shutdown(shutdownCtx)
	}()

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	var shutdownErr error
	select {
	case err := <-serverShutdownDone:
		shutdownErr = err
		a.logger.Info("HTTP server shutdown completed")
	case <-shutdownCtx.Done():
		a.logger.Warn("Shutdown timeout reached")
		shutdownErr = fmt.Errorf("shutdown timeout exceeded")
	}

	if shutdownErr == nil {
		select {
		case <-requestsDone:
		case <-time.After(2 * time.Second):
			if count := a.getActiveRequestCount(); count > 0 {
				a.logger.WithField("active_requests", count).Warn("Some requests still active, proceeding with shutdown")
			}
		}
	}

	if cleanupErr := a.cleanupResources(); cleanupErr != nil && shutdownErr == nil {
		shutdownErr = cleanupErr
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}

	return shutdownErr
}

func (a *App) cleanupResources() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}

	if a.db != nil {
		if a.config.Tracing.Enabled {
			if err := ocsql.RecordStats(a.db, 5*time.Second); err != nil {
				a.logger.WithField("error", err.Error()).Error("Failed to record final database stats for tracing")
			}
		}

		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Error("Error closing database connection")
			return err
		}
	}

	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created. It returns false
// if ctx expires first.
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	if started == nil {
		<-ctx.Done()
		return false
	}

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting newsletter application")

	for _, name := range a.config.MissingIntegrations() {
		a.logger.WithField("variable", name).Warn("Integration is not configured, dependent endpoints will fail")
	}
	if a.config.IsProduction() && a.config.Email.Provider == "console" {
		a.logger.Warn("EMAIL_PROVIDER is console in production, newsletters will only be logged")
	}

	if err := a.InitTracing(); err != nil {
		return err
	}

	if err := a.InitDB(); err != nil {
		return err
	}

	if err := a.InitRepositories(); err != nil {
		return err
	}

	if err := a.InitServices(); err != nil {
		return err
	}

	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the app's logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetMux returns the app's HTTP multiplexer
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetDB returns the app's database connection
func (a *App) GetDB() *sql.DB {
	return a.db
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// GetActiveRequestCount returns the current number of active requests
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
	a.logger.WithField("shutdown_timeout", timeout.String()).Info("Shutdown timeout configured")
}

// GetShutdownContext returns the context cancelled when shutdown starts
func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware tracks in-flight requests and rejects new
// ones once shutdown has started
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		atomic.AddInt64(&a.activeRequests, 1)
		a.requestWg.Add(1)
		defer func() {
			atomic.AddInt64(&a.activeRequests, -1)
			a.requestWg.Done()
		}()

		next.ServeHTTP(w, r)
	})
}

var _ AppInterface = (*App)(nil)
