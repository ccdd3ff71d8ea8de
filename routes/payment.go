package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urocare/clinic-booking/controllers"
)

// SetupPaymentRoutes configures payment order and verification routes
func SetupPaymentRoutes(app *fiber.App) {
	payment := app.Group("/payment")
	payment.Post("/order", controllers.CreateOrder)
	payment.Post("/verify", controllers.VerifyPayment)
}
