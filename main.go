package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/urocare/clinic-booking/controllers"
	"github.com/urocare/clinic-booking/cron"
	"github.com/urocare/clinic-booking/db"
	"github.com/urocare/clinic-booking/redis"
	"github.com/urocare/clinic-booking/routes"
)

func main() {
	app := fiber.New()
	db.Migrate()
	redis.InitRedis()
	controllers.EnsureAdmins()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, World!")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupPatientRoutes(app)
	routes.SetupSlotRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupPaymentRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Fatal(app.Listen(":" + port))
}
