// @title        Antique Bike House API
// @version      1.0
// @description  Marketplace de bicicletas usadas: categorías, productos, reservas, pagos y moderación.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/bikehouse-api/docs"
	"github.com/jhoicas/bikehouse-api/internal/application/auth"
	"github.com/jhoicas/bikehouse-api/internal/application/booking"
	"github.com/jhoicas/bikehouse-api/internal/application/usecase"
	infrapayment "github.com/jhoicas/bikehouse-api/internal/infrastructure/payment"
	infrapdf "github.com/jhoicas/bikehouse-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bikehouse-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/bikehouse-api/internal/interfaces/http"
	"github.com/jhoicas/bikehouse-api/pkg/config"
	"github.com/jhoicas/bikehouse-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	// Precios como números JSON, igual que los guardaba el cliente.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	repos, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al store")
	}
	defer repos.Close()

	categoryUC := usecase.NewCategoryUseCase(repos.Categories)
	if cfg.DB.Driver == config.DriverMemory {
		if err := categoryUC.SeedDefaults(ctx); err != nil {
			log.Fatal().Err(err).Msg("sembrar categorías")
		}
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
	}

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	roleGate := usecase.NewRoleGate(repos.Users, repos.Tx)
	stripeSvc := infrapayment.NewStripeService(cfg.Payment.StripeSecretKey)
	if cfg.Payment.StripeSecretKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY vacío: /create-payment-intent responderá 502")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Antique Bike House API",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Antique bike house server is running")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:             authUC,
		UserUC:             usecase.NewUserUseCase(repos.Users),
		RoleGate:           roleGate,
		CategoryUC:         categoryUC,
		ProductUC:          usecase.NewProductUseCase(repos.Products, repos.Users),
		ReportUC:           usecase.NewReportUseCase(repos.Reports),
		BookingUC:          booking.NewBookingUseCase(repos.Bookings),
		PaymentUC:          booking.NewPaymentUseCase(repos.Tx, stripeSvc, log),
		ReceiptUC:          booking.NewReceiptUseCase(repos.Bookings, repos.Payments, infrapdf.NewReceiptGenerator()),
		EnforceAdminRoutes: cfg.Auth.EnforceAdminRoutes,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("Antique bike house running")
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
