package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Practicas-api/internal/application/auth"
	"github.com/jhoicas/Practicas-api/internal/application/usecase"
	"github.com/jhoicas/Practicas-api/internal/domain/entity"
	"github.com/jhoicas/Practicas-api/pkg/config"
	"github.com/jhoicas/Practicas-api/pkg/logger"
)

// AppOptions ajustes del servidor Fiber.
type AppOptions struct {
	Name string
	HTTP config.HTTPConfig
	// Swagger contenido de la especificación OpenAPI; nil desactiva /docs.
	Swagger []byte
}

// NewApp crea la aplicación Fiber con el manejador de errores y los middlewares comunes.
func NewApp(opts AppOptions, log *logger.Logger) *fiber.App {
	bodyLimit := opts.HTTP.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 4
	}
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    bodyLimit << 20,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI: http://localhost:<port>/docs
	if opts.Swagger != nil {
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FileContent: opts.Swagger,
			Path:        "docs",
			Title:       "Prácticas API",
		}))
	}
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	CompanyUC      *usecase.CompanyUseCase
	PostingUC      *usecase.PostingUseCase
	ApplicationUC  *usecase.ApplicationUseCase
	InternshipUC   *usecase.InternshipUseCase
	DeliverableUC  *usecase.DeliverableUseCase
	MeetingUC      *usecase.MeetingUseCase
	NotificationUC *usecase.NotificationUseCase
	SurveyUC       *usecase.SurveyUseCase
	DocumentUC     *usecase.DocumentUseCase
	ObservationUC  *usecase.ObservationUseCase

	Health         map[string]HealthCheck
	JWTSecret      string
	MaxUploadBytes int64
	LoginMax       int
	LoginWindow    time.Duration
	// LimiterStorage nil usa memoria local.
	LimiterStorage fiber.Storage
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", NewHealthHandler(deps.Health).Check)

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", LoginLimiter(deps.LoginMax, deps.LoginWindow, deps.LimiterStorage), authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/verify", authHandler.Verify)

	// A partir de aquí todo requiere Bearer Token.
	protected := AuthMiddleware(deps.JWTSecret)

	users := api.Group("/users", protected)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Post("/me/password", authHandler.ChangePassword)
	users.Get("/me/students", RequireCapability(entity.CapViewAdvisees), userHandler.MyStudents)
	users.Get("/me/dashboard", RequireCapability(entity.CapTutorDashboard), userHandler.Dashboard)
	users.Get("/", RequireCapability(entity.CapManageUsers), userHandler.List)
	users.Post("/", RequireCapability(entity.CapManageUsers), userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", RequireCapability(entity.CapManageUsers), userHandler.Delete)
	users.Post("/:id/activate", RequireCapability(entity.CapManageUsers), userHandler.Activate)
	users.Post("/:id/deactivate", RequireCapability(entity.CapManageUsers), userHandler.Deactivate)

	companies := api.Group("/companies", protected)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", RequireCapability(entity.CapManageCompanies), companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", RequireCapability(entity.CapManageCompanies), companyHandler.Update)
	companies.Delete("/:id", RequireCapability(entity.CapManageCompanies), companyHandler.Delete)
	companies.Post("/:id/verify", RequireCapability(entity.CapManageCompanies), companyHandler.Verify)
	companies.Get("/:id/postings", companyHandler.Postings)

	postings := api.Group("/postings", protected)
	postingHandler := NewPostingHandler(deps.PostingUC)
	postings.Get("/available", postingHandler.Available)
	postings.Get("/", postingHandler.List)
	postings.Post("/", RequireCapability(entity.CapManagePostings), postingHandler.Create)
	postings.Get("/:id", postingHandler.GetByID)
	postings.Put("/:id", RequireCapability(entity.CapManagePostings), postingHandler.Update)
	postings.Delete("/:id", RequireCapability(entity.CapManagePostings), postingHandler.Delete)
	postings.Post("/:id/check-eligibility", RequireRole(entity.RoleStudent), postingHandler.CheckEligibility)
	postings.Post("/:id/close", RequireCapability(entity.CapManagePostings), postingHandler.Close)
	postings.Post("/:id/reopen", RequireCapability(entity.CapManagePostings), postingHandler.Reopen)
	postings.Post("/:id/pause", RequireCapability(entity.CapManagePostings), postingHandler.Pause)
	postings.Post("/:id/cancel", RequireCapability(entity.CapManagePostings), postingHandler.Cancel)

	applications := api.Group("/applications", protected)
	applicationHandler := NewApplicationHandler(deps.ApplicationUC)
	applications.Get("/", applicationHandler.List)
	applications.Post("/", RequireCapability(entity.CapApply), applicationHandler.Create)
	applications.Get("/:id", applicationHandler.GetByID)
	applications.Delete("/:id", applicationHandler.Delete)
	applications.Post("/:id/select", RequireCapability(entity.CapSelectApplications), applicationHandler.Select)
	applications.Post("/:id/reject", RequireCapability(entity.CapSelectApplications), applicationHandler.Reject)

	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.ObservationUC, deps.MaxUploadBytes)

	internships := api.Group("/internships", protected)
	internshipHandler := NewInternshipHandler(deps.InternshipUC)
	internships.Get("/", internshipHandler.List)
	internships.Post("/", RequireCapability(entity.CapManageInternships), internshipHandler.Create)
	internships.Get("/:id", internshipHandler.GetByID)
	internships.Put("/:id", RequireCapability(entity.CapManageInternships), internshipHandler.Update)
	internships.Delete("/:id", RequireCapability(entity.CapManageInternships), internshipHandler.Delete)
	internships.Post("/:id/assign", RequireCapability(entity.CapManageInternships), internshipHandler.Assign)
	internships.Post("/:id/start", internshipHandler.Start)
	internships.Post("/:id/complete", internshipHandler.Complete)
	internships.Post("/:id/cancel", RequireCapability(entity.CapManageInternships), internshipHandler.Cancel)
	internships.Post("/:id/close", RequireCapability(entity.CapManageInternships), internshipHandler.Close)
	internships.Get("/:id/progress", internshipHandler.Progress)
	internships.Get("/:id/certificate", internshipHandler.Certificate)
	internships.Get("/:id/observations", documentHandler.ListObservations)

	deliverables := api.Group("/deliverables", protected)
	deliverableHandler := NewDeliverableHandler(deps.DeliverableUC, deps.MaxUploadBytes)
	deliverables.Get("/", deliverableHandler.List)
	deliverables.Post("/", RequireCapability(entity.CapCreateDeliverables), deliverableHandler.Create)
	deliverables.Get("/:id", deliverableHandler.GetByID)
	deliverables.Put("/:id", deliverableHandler.Update)
	deliverables.Delete("/:id", deliverableHandler.Delete)
	deliverables.Post("/:id/submit", RequireRole(entity.RoleStudent), deliverableHandler.Submit)
	deliverables.Post("/:id/evaluate", RequireCapability(entity.CapEvaluateDeliverables), deliverableHandler.Evaluate)
	deliverables.Get("/:id/file", deliverableHandler.File)

	meetings := api.Group("/meetings", protected)
	meetingHandler := NewMeetingHandler(deps.MeetingUC)
	meetings.Get("/upcoming", meetingHandler.Upcoming)
	meetings.Get("/", meetingHandler.List)
	meetings.Post("/", RequireCapability(entity.CapManageMeetings), meetingHandler.Create)
	meetings.Get("/:id", meetingHandler.GetByID)
	meetings.Put("/:id", RequireCapability(entity.CapManageMeetings), meetingHandler.Update)
	meetings.Delete("/:id", RequireCapability(entity.CapManageMeetings), meetingHandler.Delete)
	meetings.Post("/:id/mark-held", RequireCapability(entity.CapManageMeetings), meetingHandler.MarkHeld)
	meetings.Post("/:id/reschedule", RequireCapability(entity.CapManageMeetings), meetingHandler.Reschedule)
	meetings.Post("/:id/cancel", RequireCapability(entity.CapManageMeetings), meetingHandler.Cancel)
	meetings.Post("/:id/notify", RequireCapability(entity.CapManageMeetings), meetingHandler.Notify)

	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications := api.Group("/notifications", protected)
	notifications.Get("/unread", notificationHandler.Unread)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/", RequireCapability(entity.CapSendNotifications), notificationHandler.Create)
	notifications.Get("/:id", notificationHandler.GetByID)
	notifications.Post("/:id/send", RequireCapability(entity.CapSendNotifications), notificationHandler.Send)
	notifications.Post("/:id/mark-read", notificationHandler.MarkRead)
	notifications.Post("/:id/confirm", notificationHandler.Confirm)

	bulk := api.Group("/bulk-notifications", protected, RequireCapability(entity.CapSendNotifications))
	bulk.Get("/", notificationHandler.ListBulk)
	bulk.Post("/", notificationHandler.CreateBulk)
	bulk.Get("/:id", notificationHandler.GetBulk)
	bulk.Post("/:id/send", notificationHandler.SendBulk)

	surveys := api.Group("/surveys", protected)
	surveyHandler := NewSurveyHandler(deps.SurveyUC)
	surveys.Get("/pending", RequireCapability(entity.CapAnswerSurveys), surveyHandler.Pending)
	surveys.Get("/", surveyHandler.List)
	surveys.Post("/", RequireCapability(entity.CapManageSurveys), surveyHandler.Create)
	surveys.Get("/:id", surveyHandler.GetByID)
	surveys.Put("/:id", RequireCapability(entity.CapManageSurveys), surveyHandler.Update)
	surveys.Delete("/:id", RequireCapability(entity.CapManageSurveys), surveyHandler.Delete)
	surveys.Post("/:id/publish", RequireCapability(entity.CapManageSurveys), surveyHandler.Publish)
	surveys.Post("/:id/close", RequireCapability(entity.CapManageSurveys), surveyHandler.Close)
	surveys.Post("/:id/responses", RequireCapability(entity.CapAnswerSurveys), surveyHandler.Respond)
	surveys.Get("/:id/results", RequireCapability(entity.CapManageSurveys), surveyHandler.Results)

	documents := api.Group("/documents", protected)
	documents.Get("/", documentHandler.List)
	documents.Post("/", RequireCapability(entity.CapUploadDocuments), documentHandler.Upload)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Delete("/:id", documentHandler.Delete)
	documents.Post("/:id/validate", RequireCapability(entity.CapValidateDocuments), documentHandler.Validate)
	documents.Get("/:id/file", documentHandler.File)

	observations := api.Group("/observations", protected)
	observations.Get("/", documentHandler.ListObservations)
	observations.Post("/", RequireCapability(entity.CapWriteObservations), documentHandler.CreateObservation)
	observations.Delete("/:id", RequireCapability(entity.CapWriteObservations), documentHandler.DeleteObservation)
}
