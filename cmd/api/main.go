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

	"github.com/jhoicas/clubmerch-api/internal/application/analytics"
	"github.com/jhoicas/clubmerch-api/internal/application/auth"
	"github.com/jhoicas/clubmerch-api/internal/application/batch"
	"github.com/jhoicas/clubmerch-api/internal/application/incident"
	"github.com/jhoicas/clubmerch-api/internal/application/report"
	"github.com/jhoicas/clubmerch-api/internal/application/usecase"
	"github.com/jhoicas/clubmerch-api/internal/domain/ledger"
	infrapdf "github.com/jhoicas/clubmerch-api/internal/infrastructure/pdf"
	infraxlsx "github.com/jhoicas/clubmerch-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/clubmerch-api/internal/interfaces/http"
	"github.com/jhoicas/clubmerch-api/pkg/config"
	"github.com/jhoicas/clubmerch-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	if cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "" {
		log.Warn().Msg("sin ADMIN_PASSWORD ni ADMIN_PASSWORD_HASH: el panel queda inaccesible")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	settings := ledger.Settings{
		CommercialCommissionPct: cfg.Business.CommercialCommissionPct,
		GatewayFeePct:           cfg.Business.GatewayFeePct,
		GatewayFixedFee:         cfg.Business.GatewayFixedFee,
		IndividualShippingCost:  cfg.Business.IndividualShippingCost,
	}

	authUC := auth.NewAuthUseCase(store.clubs,
		auth.AdminCredential{Password: cfg.Admin.Password, PasswordHash: cfg.Admin.PasswordHash},
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
		log,
	)
	clubUC := usecase.NewClubUseCase(store.clubs)
	orderUC := usecase.NewOrderUseCase(store.txRunner, store.orders, log)
	deleteUC := usecase.NewDeleteUseCase(store.txRunner, log)
	lifecycleUC := batch.NewLifecycleUseCase(store.txRunner, store.batches, store.orders, log)
	replacementUC := incident.NewReplacementUseCase(store.txRunner, store.orders, log)
	ledgerUC := analytics.NewLedgerUseCase(store.clubs, store.batches, store.orders, settings)

	// Hojas de producción: PDF para el taller, Excel para el proveedor
	sheetUC := report.NewSheetUseCase(store.clubs, store.batches, store.orders,
		infrapdf.NewMarotoSheetGenerator(),
		infraxlsx.NewSheetExporter(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ClubMerch API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ClubUC:        clubUC,
		OrderUC:       orderUC,
		DeleteUC:      deleteUC,
		LifecycleUC:   lifecycleUC,
		ReplacementUC: replacementUC,
		LedgerUC:      ledgerUC,
		SheetUC:       sheetUC,
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
