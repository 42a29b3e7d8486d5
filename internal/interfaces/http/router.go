package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-partes/internal/application/auth"
	"github.com/jhoicas/catalogo-partes/internal/application/usecase"
	"github.com/jhoicas/catalogo-partes/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	MoveUC     *usecase.MoveCategoryUseCase
	QueryUC    *usecase.CategoryQueryUseCase
	ReportUC   *usecase.CatalogReportUseCase
	PartUC     *usecase.PartUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Las lecturas requieren solo token; las
// mutaciones requieren rol admin o editor.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writer := RequireRole(entity.RoleAdmin, entity.RoleEditor)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.MoveUC, deps.QueryUC, deps.ReportUC)
	categories.Get("/", categoryHandler.ListRoots)
	categories.Get("/search", categoryHandler.Search)
	categories.Get("/report/pdf", categoryHandler.TreeReportPDF)
	categories.Post("/", writer, categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", writer, categoryHandler.Update)
	categories.Delete("/:id", writer, categoryHandler.Delete)
	categories.Get("/:id/children", categoryHandler.Children)
	categories.Get("/:id/descendants", categoryHandler.Descendants)
	categories.Get("/:id/breadcrumbs", categoryHandler.Breadcrumbs)
	categories.Post("/:id/move", writer, categoryHandler.Move)
	categories.Get("/:id/custom-fields", categoryHandler.GetCustomFields)
	categories.Put("/:id/custom-fields", writer, categoryHandler.UpdateCustomFields)

	// Parts (protegido)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC)
	parts.Get("/", partHandler.List)
	parts.Post("/", writer, partHandler.Create)
	parts.Get("/:id", partHandler.GetByID)
	parts.Get("/:id/versions", partHandler.ListVersions)
	parts.Post("/:id/versions", writer, partHandler.CreateVersion)
}
