package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luxe-fashion/storefront-api/internal/application/auth"
	"github.com/luxe-fashion/storefront-api/internal/application/checkout"
	"github.com/luxe-fashion/storefront-api/internal/application/usecase"
	"github.com/luxe-fashion/storefront-api/internal/infrastructure/googleauth"
	infrapdf "github.com/luxe-fashion/storefront-api/internal/infrastructure/pdf"
	"github.com/luxe-fashion/storefront-api/internal/infrastructure/postgres"
	httpRouter "github.com/luxe-fashion/storefront-api/internal/interfaces/http"
	"github.com/luxe-fashion/storefront-api/pkg/config"
	"github.com/luxe-fashion/storefront-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	googleVerifier := googleauth.NewVerifier(cfg.Google.ClientID)
	authUC := auth.NewAuthUseCase(userRepo, googleVerifier, auth.JWTConfig{
		Secret:  cfg.JWT.Secret,
		ExpDays: cfg.JWT.ExpDays,
		Issuer:  cfg.JWT.Issuer,
	})

	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	statsUC := usecase.NewStatsUseCase(statsRepo)

	orderUC := checkout.NewOrderUseCase(txRunner, orderRepo, productRepo, checkout.Pricing{
		TaxRate:         cfg.Checkout.TaxRate,
		ShippingFee:     cfg.Checkout.ShippingFee,
		FreeShippingMin: cfg.Checkout.FreeShippingMin,
	})

	// PDF: recibo descargable de cada orden
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := checkout.NewPDFUseCase(orderRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(httpRouter.LoggerMiddleware(log))
	app.Use(httpRouter.MetricsMiddleware())

	// Rate limit en los endpoints de autenticación (fuerza bruta de credenciales)
	authLimiter := func() fiber.Handler {
		return limiter.New(limiter.Config{
			Max:        10,
			Expiration: time.Minute,
		})
	}
	app.Use("/users/login", authLimiter())
	app.Use("/users/signup", authLimiter())
	app.Use("/users/auth/google", authLimiter())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "LUXE Fashion API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    userUC,
		ProductUC: productUC,
		StatsUC:   statsUC,
		OrderUC:   orderUC,
		PDFUC:     pdfUC,
		UserRepo:  userRepo,
		JWTSecret: cfg.JWT.Secret,
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
