package server

import (
	"fmt"

	"github.com/orgpulse/orgpulse/pkg/config"
	handlers "github.com/orgpulse/orgpulse/pkg/handlers/http"
	"github.com/orgpulse/orgpulse/pkg/middleware"
	"github.com/sirupsen/logrus"
)

type (
	APIServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	APIServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewAPIServer(di APIServerDI) *APIServer {
	return &APIServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *APIServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting api server")
	return s.Router.Listen(addr)
}

func (s *APIServer) setupRoutes() {
	s.Router.Use(s.middlewareTransport.RecoverMiddleware.Middleware())
	s.Router.Use(s.middlewareTransport.MetricsMiddleware.Middleware())

	v1 := s.Router.Group("/api/v1")

	v1.Get("/version", s.handlerTransport.GetVersionHandler.Handle)

	// Unauthenticated endpoints sit behind the rate limiter so anonymous
	// callers cannot hammer them.
	auth := v1.Group("/auth", s.middlewareTransport.RateLimitMiddleware.Middleware())
	{
		auth.Post("/register", s.handlerTransport.RegisterHandler.Handle)
		auth.Post("/login", s.handlerTransport.LoginHandler.Handle)
	}

	authenticated := v1.Group("", s.middlewareTransport.AuthMiddleware.Middleware())
	{
		surveys := authenticated.Group("/surveys")
		{
			surveys.Post("", s.handlerTransport.CreateSurveyHandler.Handle)
			surveys.Get("", s.handlerTransport.ListSurveysHandler.Handle)
			surveys.Get("/:survey_id", s.handlerTransport.GetSurveyHandler.Handle)
			surveys.Post("/:survey_id/responses",
				s.middlewareTransport.RateLimitMiddleware.Middleware(),
				s.handlerTransport.SubmitResponseHandler.Handle)
			surveys.Get("/:survey_id/responses", s.handlerTransport.ListResponsesHandler.Handle)
		}

		drafts := authenticated.Group("/drafts")
		{
			drafts.Post("", s.handlerTransport.CreateDraftHandler.Handle)
			drafts.Get("/:draft_id", s.handlerTransport.GetDraftHandler.Handle)
			drafts.Put("/:draft_id/content", s.handlerTransport.SaveDraftContentHandler.Handle)
		}

		microclimates := authenticated.Group("/microclimates")
		{
			microclimates.Post("", s.handlerTransport.CreateMicroclimateHandler.Handle)
			microclimates.Post("/:microclimate_id/reactions",
				s.middlewareTransport.RateLimitMiddleware.Middleware(),
				s.handlerTransport.ReactMicroclimateHandler.Handle)
			microclimates.Post("/:microclimate_id/close", s.handlerTransport.CloseMicroclimateHandler.Handle)
		}
	}

	admin := v1.Group("/admin", s.middlewareTransport.AdminAuthMiddleware.Middleware())
	{
		users := admin.Group("/users")
		{
			users.Post("", s.handlerTransport.CreateUserHandler.Handle)
			users.Get("", s.handlerTransport.ListUsersHandler.Handle)
			users.Put("/:user_id", s.handlerTransport.UpdateUserHandler.Handle)
			users.Delete("/:user_id", s.handlerTransport.DeleteUserHandler.Handle)
		}

		companies := admin.Group("/companies")
		{
			companies.Post("", s.handlerTransport.CreateCompanyHandler.Handle)
			companies.Get("", s.handlerTransport.ListCompaniesHandler.Handle)
		}

		departments := admin.Group("/departments")
		{
			departments.Post("", s.handlerTransport.CreateDepartmentHandler.Handle)
			departments.Get("", s.handlerTransport.ListDepartmentsHandler.Handle)
		}

		admin.Get("/dashboard", s.handlerTransport.CompanyDashboardHandler.Handle)
	}
}

func (s *APIServer) Shutdown() error {
	return s.Router.Shutdown()
}
