package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-control/internal/application/auth"
	"github.com/tu-usuario/stock-control/internal/application/inventory"
	"github.com/tu-usuario/stock-control/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	CategoryUC   *usecase.CategoryUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	ProductUC    *usecase.ProductUseCase
	AttributeUC  *usecase.AttributeUseCase
	TemplateUC   *usecase.TemplateUseCase
	UserUC       *usecase.UserUseCase
	ReportUC     *usecase.ReportUseCase
	MovementUC   *inventory.CreateMovementUseCase
	ReconcileUC  *inventory.ReconcileUseCase
	StockQueryUC *inventory.StockQueryUseCase
	AuthUC       *auth.AuthUseCase
	SetupUC      *auth.SetupUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Setup (público): onboarding de empresa nueva
	setupHandler := NewSetupHandler(deps.SetupUC)
	api.Post("/setup", setupHandler.Setup)

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

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/:id", userHandler.GetByID)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", RequireRole("admin"), categoryHandler.Delete)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", RequireRole("admin"), warehouseHandler.Delete)

	// Attributes (protegido): catálogo global y custom de la empresa
	attributes := protected.Group("/attributes")
	attributeHandler := NewAttributeHandler(deps.AttributeUC)
	attributes.Post("/global", RequireRole("admin"), attributeHandler.CreateGlobal)
	attributes.Get("/global", attributeHandler.ListGlobal)
	attributes.Post("/custom", attributeHandler.CreateCustom)
	attributes.Get("/custom", attributeHandler.ListCustom)
	attributes.Delete("/custom/:id", RequireRole("admin"), attributeHandler.DeleteCustom)

	// Templates (protegido)
	templates := protected.Group("/templates")
	templateHandler := NewTemplateHandler(deps.TemplateUC)
	templates.Post("/", templateHandler.Create)
	templates.Get("/", templateHandler.List)
	templates.Get("/:id", templateHandler.GetByID)
	templates.Put("/:id", templateHandler.Update)
	templates.Delete("/:id", RequireRole("admin"), templateHandler.Delete)
	templates.Post("/:id/attributes", templateHandler.AddAttribute)
	templates.Delete("/:id/attributes/:attr_id", templateHandler.RemoveAttribute)
	templates.Put("/:id/attributes/:attr_id/order", templateHandler.ReorderAttribute)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Post("/validate-specifications", productHandler.ValidateSpecifications)
	products.Post("/bulk", RequireRole("admin"), productHandler.BulkCreate)
	// Rutas fijas antes que /:id para que Fiber no las capture como parámetro
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/out-of-stock", productHandler.OutOfStock)
	products.Get("/export", productHandler.Export)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole("admin"), productHandler.Delete)

	// Stock (protegido): ledger de movimientos y saldos
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.MovementUC, deps.ReconcileUC, deps.StockQueryUC)
	stock.Post("/movements", RequireRole("admin", "bodeguero"), stockHandler.CreateMovement)
	stock.Post("/movements/adjustment", RequireRole("admin", "bodeguero"), stockHandler.Adjust)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/movements/summary", stockHandler.Summary)
	stock.Get("/movements/recent", stockHandler.Recent)
	stock.Get("/movements/:id", stockHandler.GetMovement)
	stock.Delete("/movements/:id", stockHandler.DeleteMovement)
	stock.Get("/records", stockHandler.ListRecords)
	stock.Get("/records/:id", stockHandler.GetRecord)
	stock.Get("/records/:id/movements", stockHandler.MovementHistory)
	stock.Post("/records/:id/reconcile", RequireRole("admin", "bodeguero"), stockHandler.Reconcile)

	// Vistas de stock colgadas de productos y bodegas
	products.Get("/:id/stock", stockHandler.ProductStock)
	products.Get("/:id/movements", stockHandler.ProductMovements)
	warehouses.Get("/:id/inventory", stockHandler.WarehouseInventory)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/valuation", reportHandler.Valuation)
	reports.Get("/stock-alerts", reportHandler.StockAlerts)
	reports.Get("/category-analysis", reportHandler.CategoryAnalysis)
	reports.Get("/top-products", reportHandler.TopProducts)
	reports.Get("/movements", stockHandler.ListMovements)
}
