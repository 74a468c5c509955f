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

	"github.com/depotix/depotix-api/internal/application/inventory"
	"github.com/depotix/depotix-api/internal/domain/repository"
	"github.com/depotix/depotix-api/internal/i18n"
	"github.com/depotix/depotix-api/internal/infrastructure/memory"
	"github.com/depotix/depotix-api/internal/infrastructure/postgres"
	"github.com/depotix/depotix-api/internal/infrastructure/telemetry"
	httpRouter "github.com/depotix/depotix-api/internal/interfaces/http"
	"github.com/depotix/depotix-api/pkg/config"
	"github.com/depotix/depotix-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("telemetría")
	}

	var (
		itemRepo repository.InventoryItemRepository
		movRepo  repository.StockMovementRepository
		txRunner inventory.TxRunner
	)
	switch cfg.DB.Driver {
	case "memory":
		store := memory.NewStore()
		itemRepo, movRepo, txRunner = store.Items(), store.Movements(), store.TxRunner()
		log.Warn().Msg("usando almacén en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("crear esquema")
			}
		}
		itemRepo = postgres.NewItemRepository(pool)
		movRepo = postgres.NewStockMovementRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	itemUC := inventory.NewItemUseCase(itemRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, itemRepo, movRepo, log.Component("inventory"))
	replenishmentUC := inventory.NewReplenishmentUseCase(itemRepo)

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(httpLog),
	})
	app.Use(recover.New())
	app.Use(httpRouter.Tracing())
	app.Use(httpRouter.RequestLogger(httpLog))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Depotix API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:           itemUC,
		RegisterMovement: registerMovementUC,
		Replenishment:    replenishmentUC,
		JWTSecret:        cfg.JWT.Secret,
		DefaultLang:      i18n.Parse(cfg.App.DefaultLang),
		Log:              httpLog,
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
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre de telemetría")
	}

	log.Info().Msg("aplicación detenida")
}
