package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cartuchos-api/internal/application/auth"
	applifecycle "github.com/jhoicas/Cartuchos-api/internal/application/lifecycle"
	"github.com/jhoicas/Cartuchos-api/internal/application/report"
	"github.com/jhoicas/Cartuchos-api/internal/application/usecase"
	"github.com/jhoicas/Cartuchos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CartridgeUC *usecase.CartridgeUseCase
	LocationUC  *usecase.LocationUseCase
	OperationUC *usecase.OperationUseCase
	UserUC      *usecase.UserUseCase
	LifecycleUC *applifecycle.UseCase
	ReportUC    *report.ReportUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	canWrite := RequireRole(entity.RoleAdmin, entity.RoleWarehouseManager)

	// Cartridges (protegido; escritura solo ADMIN y WAREHOUSE_MANAGER)
	cartridges := protected.Group("/cartridges")
	cartridgeHandler := NewCartridgeHandler(deps.CartridgeUC)
	operationHandler := NewOperationHandler(deps.LifecycleUC, deps.OperationUC)
	cartridges.Post("/", canWrite, cartridgeHandler.Create)
	cartridges.Get("/", cartridgeHandler.List)
	cartridges.Get("/stats", cartridgeHandler.Stats)
	cartridges.Get("/serial/:serial", cartridgeHandler.GetBySerial)
	cartridges.Get("/status/:status", cartridgeHandler.ListByStatus)
	cartridges.Get("/:id", cartridgeHandler.GetByID)
	cartridges.Put("/:id", canWrite, cartridgeHandler.Update)
	cartridges.Delete("/:id", canWrite, cartridgeHandler.Delete)
	cartridges.Get("/:id/operations", operationHandler.ListByCartridge)

	// Operations (protegido; el POST muta cartuchos)
	operations := protected.Group("/operations")
	operations.Post("/", canWrite, operationHandler.Perform)
	operations.Get("/", operationHandler.List)
	operations.Get("/count", operationHandler.Count)
	operations.Get("/:id", operationHandler.GetByID)

	// Locations (protegido; escritura solo ADMIN y WAREHOUSE_MANAGER)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", canWrite, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/name/:name", locationHandler.GetByName)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", canWrite, locationHandler.Update)
	locations.Patch("/:id/active", canWrite, locationHandler.SetActive)
	locations.Delete("/:id", canWrite, locationHandler.Delete)
	locations.Get("/:id/cartridges", cartridgeHandler.ListByLocation)
	locations.Get("/:id/cartridges/count", cartridgeHandler.CountByLocation)
	locations.Get("/:id/operations", operationHandler.ListByLocation)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/operations", reportHandler.Operations)
	reports.Get("/inventory", reportHandler.Inventory)

	// Users (solo ADMIN)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
