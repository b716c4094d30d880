package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/orgpulse/orgpulse/pkg/app/dashboard"
	draftapp "github.com/orgpulse/orgpulse/pkg/app/draft"
	microclimateapp "github.com/orgpulse/orgpulse/pkg/app/microclimate"
	"github.com/orgpulse/orgpulse/pkg/config"
	handlers "github.com/orgpulse/orgpulse/pkg/handlers/http"
	"github.com/orgpulse/orgpulse/pkg/infra/cache"
	"github.com/orgpulse/orgpulse/pkg/infra/database"
	"github.com/orgpulse/orgpulse/pkg/infra/jwt"
	infraLogger "github.com/orgpulse/orgpulse/pkg/infra/logger"
	"github.com/orgpulse/orgpulse/pkg/infra/repository"
	"github.com/orgpulse/orgpulse/pkg/middleware"
	"github.com/orgpulse/orgpulse/pkg/ratelimit"
	"github.com/orgpulse/orgpulse/pkg/server"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.WithError(err).Warn("falling back to defaults and environment variables")
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheInstance, err := cache.NewCache(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatalf("failed to initialize cache: %v", err)
	}
	defer cacheInstance.Close()

	// repositories
	userRepository := repository.NewUserRepository(db.DB)
	companyRepository := repository.NewCompanyRepository(db.DB)
	departmentRepository := repository.NewDepartmentRepository(db.DB)
	surveyRepository := repository.NewSurveyRepository(db.DB)
	responseRepository := repository.NewResponseRepository(db.DB)
	draftRepository := repository.NewDraftRepository(db.DB)
	microclimateRepository := repository.NewMicroclimateRepository(db.DB)

	// services
	debounce, err := cfg.Autosave.ParsedDebounce()
	if err != nil {
		logger.Fatalf("invalid autosave config: %v", err)
	}

	draftFinder := draftapp.NewFinder(draftRepository, cacheInstance, logger)
	autosaver := draftapp.NewAutosaver(draftRepository, draftFinder, logger, debounce)
	liveTally := microclimateapp.NewLiveTally(autosaver, logger)
	dashboardService := dashboard.NewService(
		userRepository,
		surveyRepository,
		responseRepository,
		microclimateRepository,
		logger,
	)

	rateLimitMiddleware, err := buildRateLimitMiddleware(cfg, cacheInstance, logger)
	if err != nil {
		logger.Fatalf("failed to build rate limiter: %v", err)
	}

	jwtManager := jwt.NewJwtManager(cfg.Server.SecretKey)

	middlewareTransport := middleware.Transport{
		AuthMiddleware:      middleware.NewAuthMiddleware(logger, jwtManager),
		AdminAuthMiddleware: middleware.NewAdminAuthMiddleware(logger, jwtManager),
		RateLimitMiddleware: rateLimitMiddleware,
		MetricsMiddleware:   middleware.NewMetricsMiddleware(logger),
		RecoverMiddleware:   middleware.NewPanicRecoverMiddleware(logger),
	}

	handlerTransport := handlers.HandlerTransport{
		RegisterHandler: handlers.NewRegisterHandler(logger, userRepository),
		LoginHandler:    handlers.NewLoginHandler(logger, userRepository, jwtManager),

		CreateUserHandler: handlers.NewCreateUserHandler(logger, userRepository),
		ListUsersHandler:  handlers.NewListUsersHandler(logger, userRepository),
		UpdateUserHandler: handlers.NewUpdateUserHandler(logger, userRepository),
		DeleteUserHandler: handlers.NewDeleteUserHandler(logger, userRepository),

		CreateCompanyHandler: handlers.NewCreateCompanyHandler(logger, companyRepository),
		ListCompaniesHandler: handlers.NewListCompaniesHandler(logger, companyRepository),

		CreateDepartmentHandler: handlers.NewCreateDepartmentHandler(logger, departmentRepository, companyRepository),
		ListDepartmentsHandler:  handlers.NewListDepartmentsHandler(logger, departmentRepository),

		CreateSurveyHandler:   handlers.NewCreateSurveyHandler(logger, surveyRepository),
		ListSurveysHandler:    handlers.NewListSurveysHandler(logger, surveyRepository),
		GetSurveyHandler:      handlers.NewGetSurveyHandler(logger, surveyRepository),
		SubmitResponseHandler: handlers.NewSubmitResponseHandler(logger, surveyRepository, responseRepository),
		ListResponsesHandler:  handlers.NewListResponsesHandler(logger, surveyRepository, responseRepository),

		CreateDraftHandler:      handlers.NewCreateDraftHandler(logger, draftRepository),
		GetDraftHandler:         handlers.NewGetDraftHandler(logger, draftFinder),
		SaveDraftContentHandler: handlers.NewSaveDraftContentHandler(logger, draftRepository, draftFinder),

		CreateMicroclimateHandler: handlers.NewCreateMicroclimateHandler(logger, microclimateRepository, draftRepository),
		ReactMicroclimateHandler:  handlers.NewReactMicroclimateHandler(logger, microclimateRepository, liveTally),
		CloseMicroclimateHandler:  handlers.NewCloseMicroclimateHandler(logger, microclimateRepository, liveTally, autosaver),

		CompanyDashboardHandler: handlers.NewCompanyDashboardHandler(logger, dashboardService),

		GetVersionHandler: handlers.NewGetVersionHandler(logger),
	}

	apiServer := server.NewAPIServer(server.APIServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return apiServer.Run()
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		return apiServer.Shutdown()
	})

	if err := group.Wait(); err != nil {
		logger.WithError(err).Error("server exited with error")
	}
}

// buildRateLimitMiddleware assembles the configured sliding-window store
// and wraps shared stores in a circuit breaker so redis trouble degrades
// to fail-open checks instead of hammering a dead backend. Per-route
// overrides from the config share the same store.
func buildRateLimitMiddleware(cfg *config.Config, cacheInstance *cache.Cache, logger *logrus.Logger) (middleware.Middleware, error) {
	if !cfg.RateLimit.Enabled {
		logger.Info("rate limiting is disabled by configuration")
		return middleware.NewNoopMiddleware(), nil
	}

	window, err := cfg.RateLimit.ParsedWindow()
	if err != nil {
		return nil, err
	}

	var store ratelimit.Store
	switch cfg.RateLimit.Store {
	case "redis":
		store = ratelimit.NewBreakerStore(ratelimit.NewRedisStore(cacheInstance.Client(), nil))
	default:
		store = ratelimit.NewMemoryStore()
	}

	limiter := ratelimit.NewLimiter(ratelimit.Config{
		Window:      window,
		MaxRequests: cfg.RateLimit.MaxRequests,
	}, store, logger, nil)

	overrides, err := cfg.RateLimit.DecodeRouteLimits()
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return middleware.NewRateLimitMiddleware(limiter, logger), nil
	}

	routes := make(map[string]*ratelimit.Limiter, len(overrides))
	for prefix, limit := range overrides {
		routeWindow, err := time.ParseDuration(limit.Window)
		if err != nil {
			return nil, err
		}
		routes[prefix] = ratelimit.NewLimiter(ratelimit.Config{
			Window:      routeWindow,
			MaxRequests: limit.MaxRequests,
		}, store, logger, nil)
	}

	return middleware.NewRouteAwareRateLimitMiddleware(limiter, routes, logger), nil
}
