package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/luxe-fashion/storefront-api/internal/application/auth"
	"github.com/luxe-fashion/storefront-api/internal/application/checkout"
	"github.com/luxe-fashion/storefront-api/internal/application/usecase"
	"github.com/luxe-fashion/storefront-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	UserUC    *usecase.UserUseCase
	ProductUC *usecase.ProductUseCase
	StatsUC   *usecase.StatsUseCase
	OrderUC   *checkout.OrderUseCase
	PDFUC     *checkout.PDFUseCase
	UserRepo  repository.UserRepository
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	guard := AuthMiddleware(deps.JWTSecret, deps.UserRepo)
	optional := OptionalAuthMiddleware(deps.JWTSecret, deps.UserRepo)
	admin := RequireAdmin()

	// Cuentas y sesión
	users := app.Group("/users")
	authHandler := NewAuthHandler(deps.AuthUC)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/signup", authHandler.Signup)
	users.Post("/login", authHandler.Login)
	users.Post("/auth/google", authHandler.GoogleAuth)
	users.Get("/me", guard, authHandler.Me)
	users.Post("/logout", guard, authHandler.Logout)
	users.Post("/me/change-password", guard, authHandler.ChangePassword)
	users.Patch("/me/update", guard, authHandler.UpdateProfile)
	// Administración de cuentas
	users.Get("/", guard, admin, userHandler.List)
	users.Get("/:id", guard, userHandler.GetByID) // propia o admin
	users.Put("/:id", guard, admin, userHandler.Update)
	users.Delete("/:id", guard, admin, userHandler.Delete)

	api := app.Group("/api")

	// Catálogo: lectura pública (con cuenta adjunta si viene token), escritura admin
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", optional, productHandler.List)
	products.Get("/:id", optional, productHandler.GetByID)
	products.Post("/", guard, admin, productHandler.Create)
	products.Put("/:id", guard, admin, productHandler.Update)
	products.Delete("/:id", guard, admin, productHandler.Delete)

	// Órdenes (todas requieren sesión)
	orders := api.Group("/orders", guard)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.PDFUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", admin, orderHandler.ListAll)
	orders.Get("/mine", orderHandler.ListMine)
	orders.Get("/user/:email", orderHandler.ListByEmail)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Put("/:id", admin, orderHandler.UpdateStatus)
	orders.Delete("/:id", admin, orderHandler.Delete)

	// Panel admin
	statsHandler := NewStatsHandler(deps.StatsUC)
	api.Get("/stats", guard, admin, statsHandler.GetStats)
}
