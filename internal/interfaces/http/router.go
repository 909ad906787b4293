package http

import (
	"github.com/gofiber/fiber/v2"

	appaid "github.com/jpvargas/asistencia-api/internal/application/aid"
	"github.com/jpvargas/asistencia-api/internal/application/audit"
	"github.com/jpvargas/asistencia-api/internal/application/auth"
	"github.com/jpvargas/asistencia-api/internal/application/document"
	"github.com/jpvargas/asistencia-api/internal/application/report"
	"github.com/jpvargas/asistencia-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OrganizationUC *usecase.OrganizationUseCase
	UserUC         *usecase.UserUseCase
	CategoryUC     *usecase.CategoryUseCase
	ArticleUC      *usecase.ArticleUseCase
	FamilyUC       *usecase.FamilyUseCase
	NeedUC         *usecase.NeedUseCase
	CreateAid      *appaid.CreateAidUseCase
	AidQuery       *appaid.QueryUseCase
	AidReceipt     *appaid.ReceiptUseCase
	VisitNoteUC    *usecase.VisitNoteUseCase
	InterventionUC *usecase.InterventionUseCase
	DocumentUC     *document.UseCase
	ReportUC       *report.UseCase
	DashboardUC    *usecase.DashboardUseCase
	AuditUC        *audit.ListUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth y alta de organización (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Organizaciones (público: alta y directorio para el registro)
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	api.Post("/organizations", orgHandler.Create)
	api.Get("/organizations", orgHandler.List)
	api.Get("/organizations/:id", orgHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireAdmin()

	// Organización propia (protegido; editar solo admin)
	protected.Get("/organization", orgHandler.GetOwn)
	protected.Put("/organization", admin, orgHandler.UpdateOwn)

	// Users (solo admin)
	users := protected.Group("/users", admin)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Categories (protegido; eliminar solo admin)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", admin, categoryHandler.Delete)

	// Articles (protegido; eliminar solo admin)
	articles := protected.Group("/articles")
	articleHandler := NewArticleHandler(deps.ArticleUC)
	articles.Post("/", articleHandler.Create)
	articles.Get("/", articleHandler.List)
	articles.Get("/below-min", articleHandler.ListBelowMin)
	articles.Get("/:id", articleHandler.GetByID)
	articles.Put("/:id", articleHandler.Update)
	articles.Post("/:id/restock", articleHandler.Restock)
	articles.Delete("/:id", admin, articleHandler.Delete)

	// Families y menores (protegido; eliminar familia solo admin)
	families := protected.Group("/families")
	familyHandler := NewFamilyHandler(deps.FamilyUC)
	families.Post("/", familyHandler.Create)
	families.Get("/", familyHandler.List)
	families.Get("/:id", familyHandler.GetByID)
	families.Put("/:id", familyHandler.Update)
	families.Delete("/:id", admin, familyHandler.Delete)
	families.Post("/:id/children", familyHandler.CreateChild)
	families.Get("/:id/children", familyHandler.ListChildren)
	protected.Put("/children/:childId", familyHandler.UpdateChild)
	protected.Delete("/children/:childId", familyHandler.DeleteChild)

	// Needs (protegido; eliminar solo admin)
	needs := protected.Group("/needs")
	needHandler := NewNeedHandler(deps.NeedUC)
	needs.Post("/", needHandler.Create)
	needs.Get("/", needHandler.List)
	needs.Get("/:id", needHandler.GetByID)
	needs.Put("/:id", needHandler.Update)
	needs.Delete("/:id", admin, needHandler.Delete)
	families.Get("/:id/needs", needHandler.ListByFamily)

	// Aids (protegido; eliminar solo admin)
	aids := protected.Group("/aids")
	aidHandler := NewAidHandler(deps.CreateAid, deps.AidQuery, deps.AidReceipt)
	aids.Post("/", aidHandler.Create)
	aids.Get("/", aidHandler.List)
	aids.Get("/:id", aidHandler.GetByID)
	aids.Get("/:id/receipt", aidHandler.Receipt)
	aids.Delete("/:id", admin, aidHandler.Delete)

	// Visit notes (protegido; eliminar solo admin)
	visitNoteHandler := NewVisitNoteHandler(deps.VisitNoteUC)
	protected.Post("/visit-notes", visitNoteHandler.Create)
	families.Get("/:id/visit-notes", visitNoteHandler.ListByFamily)
	protected.Delete("/visit-notes/:id", admin, visitNoteHandler.Delete)

	// Interventions (protegido; eliminar solo admin)
	interventions := protected.Group("/interventions")
	interventionHandler := NewInterventionHandler(deps.InterventionUC)
	interventions.Post("/", interventionHandler.Create)
	interventions.Get("/", interventionHandler.List)
	interventions.Get("/:id", interventionHandler.GetByID)
	interventions.Put("/:id", interventionHandler.Update)
	interventions.Delete("/:id", admin, interventionHandler.Delete)

	// Documents (protegido; eliminar solo admin)
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	families.Post("/:id/documents", documentHandler.Upload)
	families.Get("/:id/documents", documentHandler.ListByFamily)
	protected.Get("/documents/:id", documentHandler.GetByID)
	protected.Delete("/documents/:id", admin, documentHandler.Delete)

	// Reports (protegido)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/aids/export", reportHandler.ExportAids)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)

	// Audit (solo admin)
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit", admin, auditHandler.List)
}
