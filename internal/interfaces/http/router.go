package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Intendencia-api/internal/application/auth"
	"github.com/jhoicas/Intendencia-api/internal/application/dashboard"
	"github.com/jhoicas/Intendencia-api/internal/application/movement"
	"github.com/jhoicas/Intendencia-api/internal/application/usecase"
	"github.com/jhoicas/Intendencia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ReferenceUC *usecase.ReferenceUseCase
	Recorder    *movement.Recorder
	Query       *movement.Query
	DashboardUC *dashboard.DashboardUseCase
}

// Router registra las rutas de la API.
// La autorización fina (base propia, flags de política) vive en los casos de uso;
// RequireRole solo corta temprano las rutas exclusivas de admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Get("/auth/me", authHandler.Me)

	adminOnly := RequireRole(entity.RoleAdmin)
	protected.Post("/users", adminOnly, authHandler.CreateUser)
	protected.Get("/users", adminOnly, authHandler.ListUsers)

	refHandler := NewReferenceHandler(deps.ReferenceUC)
	protected.Get("/bases", refHandler.ListBases)
	protected.Post("/bases", adminOnly, refHandler.CreateBase)
	protected.Get("/equipment", refHandler.ListEquipmentTypes)
	protected.Post("/equipment", adminOnly, refHandler.CreateEquipmentType)

	movHandler := NewMovementHandler(deps.Recorder, deps.Query)
	protected.Post("/purchases", movHandler.CreatePurchase)
	protected.Get("/purchases", movHandler.ListPurchases)
	protected.Post("/transfers", movHandler.CreateTransfer)
	protected.Get("/transfers", movHandler.ListTransfers)
	protected.Post("/assignments", movHandler.CreateAssignment)
	protected.Get("/assignments", movHandler.ListAssignments)
	protected.Post("/expenditures", movHandler.CreateExpenditure)
	protected.Get("/expenditures", movHandler.ListExpenditures)
	protected.Post("/opening-stock", movHandler.CreateOpeningStock)
	protected.Get("/opening-stock", movHandler.ListOpeningStock)

	dashHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashHandler.GetBalance)
	protected.Get("/dashboard/equipment", dashHandler.GetEquipmentBreakdown)
	protected.Get("/dashboard/pdf", dashHandler.ExportPDF)
}
