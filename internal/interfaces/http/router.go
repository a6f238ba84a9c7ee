package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bikehouse-api/internal/application/auth"
	"github.com/jhoicas/bikehouse-api/internal/application/booking"
	"github.com/jhoicas/bikehouse-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	RoleGate   *usecase.RoleGate
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	ReportUC   *usecase.ReportUseCase
	BookingUC  *booking.BookingUseCase
	PaymentUC  *booking.PaymentUseCase
	ReceiptUC  *booking.ReceiptUseCase

	// EnforceAdminRoutes monta AuthMiddleware + RequireAdmin en moderación y gestión de usuarios.
	EnforceAdminRoutes bool
}

// Router registra las rutas de la API en la raíz (mismos paths que consume el frontend).
func Router(app *fiber.App, deps RouterDeps) {
	requireAuth := AuthMiddleware(deps.AuthUC)

	// adminOnly es un no-op salvo que se active el guard de admin.
	adminOnly := []fiber.Handler{}
	if deps.EnforceAdminRoutes {
		adminOnly = append(adminOnly, requireAuth, RequireAdmin(deps.RoleGate))
	}
	guarded := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, adminOnly...), h)
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Get("/jwt", authHandler.IssueToken)

	// Categorías (público)
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.ProductUC)
	app.Get("/categories", categoryHandler.List)
	app.Get("/categories/:category", categoryHandler.Products)

	// Productos
	productHandler := NewProductHandler(deps.ProductUC)
	app.Post("/products", productHandler.Create)
	app.Get("/products", productHandler.ListByOwner)
	app.Delete("/products/:id", productHandler.Delete)

	// Usuarios y roles
	userHandler := NewUserHandler(deps.UserUC, deps.RoleGate)
	app.Post("/users", userHandler.Create)
	app.Get("/users/admin/:email", userHandler.IsAdmin)
	app.Get("/users/seller/:email", userHandler.IsSeller)
	app.Get("/users/buyer/:email", userHandler.IsBuyer)
	app.Get("/buyerseller", guarded(userHandler.ListByRole)...)
	app.Delete("/buyerseller/:id", guarded(userHandler.Delete)...)
	app.Put("/verifySeller/:email", guarded(userHandler.VerifySeller)...)

	// Reservas
	bookingHandler := NewBookingHandler(deps.BookingUC, deps.ReceiptUC)
	app.Post("/bookings", bookingHandler.Create)
	app.Get("/bookings", requireAuth, bookingHandler.ListByBuyer)
	app.Get("/bookings/:id/receipt", requireAuth, bookingHandler.Receipt)
	app.Get("/bookings/:id", bookingHandler.GetByID)

	// Pagos
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	app.Post("/create-payment-intent", paymentHandler.CreateIntent)
	app.Post("/payments", paymentHandler.Record)

	// Moderación
	reportHandler := NewReportHandler(deps.ReportUC)
	app.Post("/reports", reportHandler.Submit)
	app.Get("/reportedProducts", guarded(reportHandler.List)...)
	app.Delete("/reportedProducts/:id", guarded(reportHandler.Delete)...)
}
