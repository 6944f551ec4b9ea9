package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sectorial-api/internal/application/auth"
	appsession "github.com/jhoicas/sectorial-api/internal/application/session"
	appstock "github.com/jhoicas/sectorial-api/internal/application/stock"
	"github.com/jhoicas/sectorial-api/internal/application/usecase"
	"github.com/jhoicas/sectorial-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	SectorUC      *usecase.SectorUseCase
	ProductUC     *usecase.ProductUseCase
	AllocateUC    *appstock.AllocateUseCase
	AssignUC      *appstock.AssignSectorUseCase
	ConsistencyUC *appstock.ConsistencyUseCase
	StockQueryUC  *appstock.StockQueryUseCase
	SessionUC     *appsession.SessionUseCase
	UserUC        *usecase.UserUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	warehouseOps := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Sectors (protegido; mutaciones solo admin)
	sectors := protected.Group("/sectors")
	sectorHandler := NewSectorHandler(deps.SectorUC)
	sectors.Post("/", adminOnly, sectorHandler.Create)
	sectors.Get("/", sectorHandler.List)
	sectors.Get("/:id", sectorHandler.GetByID)
	sectors.Put("/:id", adminOnly, sectorHandler.Update)
	sectors.Delete("/:id", adminOnly, sectorHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", warehouseOps, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", warehouseOps, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Motor de asignación (protegido; mutaciones admin o bodeguero)
	stockHandler := NewStockHandler(deps.AllocateUC, deps.AssignUC, deps.ConsistencyUC, deps.StockQueryUC)
	products.Post("/:id/allocations", warehouseOps, stockHandler.Allocate)
	products.Post("/:id/sectorize", warehouseOps, stockHandler.AssignSector)
	products.Post("/:id/desectorize", warehouseOps, stockHandler.ReturnToUnsectorized)
	products.Get("/:id/consistency", stockHandler.Verify)
	products.Post("/:id/compact", warehouseOps, stockHandler.Compact)
	products.Get("/:id/sectors", stockHandler.ListProductSectors)
	products.Get("/:id/movements", stockHandler.ListMovements)
	sectors.Get("/:id/stock", stockHandler.ListSectorStock)
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/prune-orphans", adminOnly, stockHandler.PruneOrphans)
	stockGroup.Get("/receipts/:txId", stockHandler.GetReceipt)

	// Users (protegido; el directorio completo es de admin)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", adminOnly, userHandler.List)

	// Sesiones de conteo (protegido). La creación, asignación de contadores y
	// ajustes son de admin; los conteos los registran los contadores asignados
	// (la pertenencia se valida en el caso de uso).
	sessions := protected.Group("/sessions")
	sessionHandler := NewSessionHandler(deps.SessionUC, deps.AllocateUC)
	sessions.Post("/", adminOnly, sessionHandler.Create)
	sessions.Get("/", sessionHandler.List)
	sessions.Get("/mine", sessionHandler.ListMine)
	sessions.Get("/:id", sessionHandler.Get)
	sessions.Put("/:id/counters", adminOnly, sessionHandler.AssignCounters)
	sessions.Post("/:id/start", RequireRole(entity.RoleContador), sessionHandler.Start)
	sessions.Post("/:id/counts", RequireRole(entity.RoleContador), sessionHandler.SubmitCount)
	sessions.Post("/:id/finalize", RequireRole(entity.RoleContador), sessionHandler.Finalize)
	sessions.Post("/:id/adjustments", adminOnly, sessionHandler.ApplyAdjustments)
}
