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
	"github.com/jhoicas/sectorial-api/internal/application/auth"
	appsession "github.com/jhoicas/sectorial-api/internal/application/session"
	appstock "github.com/jhoicas/sectorial-api/internal/application/stock"
	"github.com/jhoicas/sectorial-api/internal/application/usecase"
	"github.com/jhoicas/sectorial-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/sectorial-api/internal/interfaces/http"
	"github.com/jhoicas/sectorial-api/pkg/config"
	"github.com/jhoicas/sectorial-api/pkg/logger"
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

	// Repos atados al pool (consultas); las mutaciones pasan por el TxRunner.
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	sectorRepo := postgres.NewSectorRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	sectorStockRepo := postgres.NewSectorStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	sessionRepo := postgres.NewInventorySessionRepository(pool)
	detailRepo := postgres.NewCountDetailRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	sectorUC := usecase.NewSectorUseCase(sectorRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	userUC := usecase.NewUserUseCase(userRepo)

	allocateUC := appstock.NewAllocateUseCase(txRunner, productRepo, log)
	assignUC := appstock.NewAssignSectorUseCase(txRunner, productRepo, sectorRepo, log)
	consistencyUC := appstock.NewConsistencyUseCase(txRunner, productRepo, sectorStockRepo, log)
	stockQueryUC := appstock.NewStockQueryUseCase(productRepo, sectorRepo, sectorStockRepo, movementRepo)
	sessionUC := appsession.NewSessionUseCase(txRunner, sessionRepo, detailRepo, sectorRepo, userRepo, log)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Sectorial API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:     companyUC,
		SectorUC:      sectorUC,
		ProductUC:     productUC,
		AllocateUC:    allocateUC,
		AssignUC:      assignUC,
		ConsistencyUC: consistencyUC,
		StockQueryUC:  stockQueryUC,
		SessionUC:     sessionUC,
		UserUC:        userUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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
