package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urocare/clinic-booking/controllers"
	"github.com/urocare/clinic-booking/middleware"
	"github.com/urocare/clinic-booking/models"
)

// SetupSlotRoutes configures slot catalog routes
func SetupSlotRoutes(app *fiber.App) {
	slots := app.Group("/slots")

	// Patients browse availability
	slots.Get("/", controllers.GetSlots)

	// Staff manage the catalog
	slots.Post("/", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), controllers.CreateSlot)
	slots.Put("/:id", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), controllers.UpdateSlot)
	slots.Delete("/:id", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), controllers.DeleteSlot)
}
