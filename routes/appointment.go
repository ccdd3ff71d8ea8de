package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urocare/clinic-booking/controllers"
	"github.com/urocare/clinic-booking/middleware"
	"github.com/urocare/clinic-booking/models"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")
	appointment.Post("/", controllers.CreateAppointment)
	appointment.Get("/", controllers.GetAllAppointments)
	appointment.Get("/my/:patientmobile", controllers.GetMyAppointments)
	appointment.Get("/:id", controllers.GetAppointment)
	appointment.Post("/:id/cancel", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), controllers.CancelAppointment)
	appointment.Delete("/:id", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), controllers.DeleteAppointment)
}
