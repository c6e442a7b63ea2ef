package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/clubmerch-api/internal/application/analytics"
	"github.com/jhoicas/clubmerch-api/internal/application/auth"
	"github.com/jhoicas/clubmerch-api/internal/application/batch"
	"github.com/jhoicas/clubmerch-api/internal/application/incident"
	"github.com/jhoicas/clubmerch-api/internal/application/report"
	"github.com/jhoicas/clubmerch-api/internal/application/usecase"
	"github.com/jhoicas/clubmerch-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ClubUC        *usecase.ClubUseCase
	OrderUC       *usecase.OrderUseCase
	DeleteUC      *usecase.DeleteUseCase
	LifecycleUC   *batch.LifecycleUseCase
	ReplacementUC *incident.ReplacementUseCase
	LedgerUC      *analytics.LedgerUseCase
	SheetUC       *report.SheetUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/admin", authHandler.Admin)
	authGroup.Post("/club", authHandler.Club)

	// Tienda (público)
	storefront := NewStorefrontHandler(deps.OrderUC)
	api.Post("/storefront/clubs/:code/orders", storefront.CreateOrder)

	// Portal de club: el club sale del token
	portalHandler := NewPortalHandler(deps.OrderUC, deps.LifecycleUC, deps.LedgerUC)
	portal := api.Group("/portal",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(jwt.RoleClub),
		RequireActiveClub(deps.ClubUC),
	)
	portal.Get("/orders", portalHandler.Orders)
	portal.Get("/batches", portalHandler.Batches)
	portal.Get("/ledger", portalHandler.Ledger)

	// Panel de administración
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin))

	clubHandler := NewClubHandler(deps.ClubUC, deps.DeleteUC)
	clubs := admin.Group("/clubs")
	clubs.Post("/", clubHandler.Create)
	clubs.Get("/", clubHandler.List)
	clubs.Get("/:id", clubHandler.GetByID)
	clubs.Put("/:id", clubHandler.Update)
	clubs.Delete("/:id", clubHandler.Delete)

	batchHandler := NewBatchHandler(deps.LifecycleUC, deps.DeleteUC)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	reportHandler := NewReportHandler(deps.SheetUC)
	clubs.Get("/:clubId/ledger", ledgerHandler.Club)
	clubs.Get("/:clubId/batches", batchHandler.List)
	batches := clubs.Group("/:clubId/batches/:type/:number")
	batches.Get("/", batchHandler.Get)
	batches.Delete("/", batchHandler.Delete)
	batches.Post("/advance", batchHandler.Advance)
	batches.Post("/revert", batchHandler.Revert)
	batches.Get("/ledger", ledgerHandler.Batch)
	batches.Get("/sheet.pdf", reportHandler.PDF)
	batches.Get("/sheet.xlsx", reportHandler.XLSX)

	orderHandler := NewOrderHandler(deps.OrderUC, deps.LifecycleUC, deps.DeleteUC)
	incidentHandler := NewIncidentHandler(deps.ReplacementUC)
	orders := admin.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Post("/:id/advance", orderHandler.Advance)
	orders.Post("/:id/revert", orderHandler.Revert)
	orders.Post("/:id/move", orderHandler.Move)
	orders.Post("/:id/replacements", incidentHandler.CreateReplacement)
	orders.Post("/:id/incidents/:incidentId/resolve", incidentHandler.Resolve)

	admin.Get("/incidents", incidentHandler.List)
	admin.Get("/ledger", ledgerHandler.Global)
}
