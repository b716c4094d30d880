package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Auth
	RegisterHandler Handler
	LoginHandler    Handler

	// Admin: users
	CreateUserHandler Handler
	ListUsersHandler  Handler
	UpdateUserHandler Handler
	DeleteUserHandler Handler

	// Admin: companies
	CreateCompanyHandler Handler
	ListCompaniesHandler Handler

	// Admin: departments
	CreateDepartmentHandler Handler
	ListDepartmentsHandler  Handler

	// Surveys
	CreateSurveyHandler   Handler
	ListSurveysHandler    Handler
	GetSurveyHandler      Handler
	SubmitResponseHandler Handler
	ListResponsesHandler  Handler

	// Drafts
	CreateDraftHandler      Handler
	GetDraftHandler         Handler
	SaveDraftContentHandler Handler

	// Microclimates
	CreateMicroclimateHandler Handler
	ReactMicroclimateHandler  Handler
	CloseMicroclimateHandler  Handler

	// Dashboard
	CompanyDashboardHandler Handler

	// Misc
	GetVersionHandler Handler
}
