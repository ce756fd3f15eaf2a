package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/stock-control/internal/application/auth"
	"github.com/tu-usuario/stock-control/internal/application/catalog"
	"github.com/tu-usuario/stock-control/internal/application/inventory"
	"github.com/tu-usuario/stock-control/internal/application/usecase"
	infrapdf "github.com/tu-usuario/stock-control/internal/infrastructure/pdf"
	"github.com/tu-usuario/stock-control/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/stock-control/internal/interfaces/http"
	"github.com/tu-usuario/stock-control/pkg/config"
	"github.com/tu-usuario/stock-control/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	attributeRepo := postgres.NewAttributeRepository(pool)
	templateRepo := postgres.NewTemplateRepository(pool)
	recordRepo := postgres.NewStockRecordRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	specValidator := catalog.NewSpecValidator(templateRepo, attributeRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, templateRepo, specValidator)
	attributeUC := usecase.NewAttributeUseCase(attributeRepo)
	templateUC := usecase.NewTemplateUseCase(templateRepo, attributeRepo)
	userUC := usecase.NewUserUseCase(userRepo)

	movementUC := inventory.NewCreateMovementUseCase(txRunner, productRepo, warehouseRepo)
	reconcileUC := inventory.NewReconcileUseCase(txRunner, recordRepo, productRepo)
	stockQueryUC := inventory.NewStockQueryUseCase(movementRepo, recordRepo, productRepo, warehouseRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reportUC := usecase.NewReportUseCase(reportRepo, companyRepo, pdfGenerator)

	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, jwtCfg)
	setupUC := auth.NewSetupUseCase(companyRepo, userRepo, warehouseRepo, categoryRepo, jwtCfg)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Control API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:    companyUC,
		CategoryUC:   categoryUC,
		WarehouseUC:  warehouseUC,
		ProductUC:    productUC,
		AttributeUC:  attributeUC,
		TemplateUC:   templateUC,
		UserUC:       userUC,
		ReportUC:     reportUC,
		MovementUC:   movementUC,
		ReconcileUC:  reconcileUC,
		StockQueryUC: stockQueryUC,
		AuthUC:       authUC,
		SetupUC:      setupUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
