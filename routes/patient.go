package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urocare/clinic-booking/controllers"
	"github.com/urocare/clinic-booking/middleware"
	"github.com/urocare/clinic-booking/models"
)

// SetupPatientRoutes configures patient directory routes (admin only)
func SetupPatientRoutes(app *fiber.App) {
	patient := app.Group("/patients", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))
	patient.Get("/", controllers.GetPatients)
	patient.Get("/:mobile", controllers.GetPatientByMobile)
	patient.Put("/:id", controllers.UpdatePatient)
	patient.Post("/:id/image", controllers.UploadPatientImage)
}
