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

	"github.com/jhoicas/catalogo-partes/internal/application/auth"
	"github.com/jhoicas/catalogo-partes/internal/application/usecase"
	infrapdf "github.com/jhoicas/catalogo-partes/internal/infrastructure/pdf"
	"github.com/jhoicas/catalogo-partes/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/catalogo-partes/internal/interfaces/http"
	"github.com/jhoicas/catalogo-partes/pkg/config"
	"github.com/jhoicas/catalogo-partes/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Int("max_depth", cfg.Catalog.MaxDepth).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	customFieldRepo := postgres.NewCustomFieldRepository(pool)
	partRepo := postgres.NewPartRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	categoryUC := usecase.NewCategoryUseCase(txRunner, categoryRepo, customFieldRepo, cfg.Catalog.MaxDepth)
	moveUC := usecase.NewMoveCategoryUseCase(txRunner, cfg.Catalog.MaxDepth)
	queryUC := usecase.NewCategoryQueryUseCase(categoryRepo)
	partUC := usecase.NewPartUseCase(partRepo, categoryRepo)

	// PDF: reporte gráfico del árbol de categorías
	pdfGenerator := infrapdf.NewMarotoCatalogGenerator()
	reportUC := usecase.NewCatalogReportUseCase(categoryRepo, partRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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
		Title:    "Catálogo de Partes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC: categoryUC,
		MoveUC:     moveUC,
		QueryUC:    queryUC,
		ReportUC:   reportUC,
		PartUC:     partUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
