package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urocare/clinic-booking/controllers"
	"github.com/urocare/clinic-booking/middleware"
	"github.com/urocare/clinic-booking/models"
)

// SetupDoctorRoutes configures doctor registry routes
func SetupDoctorRoutes(app *fiber.App) {
	doctor := app.Group("/doctors")
	doctor.Get("/", controllers.GetDoctors)
	doctor.Get("/:id", controllers.GetDoctor)

	admin := doctor.Group("", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))
	admin.Post("/", controllers.CreateDoctor)
	admin.Put("/:id", controllers.UpdateDoctor)
	admin.Delete("/:id", controllers.DeleteDoctor)
	admin.Post("/:id/image", controllers.UploadDoctorImage)
}
