package db

import (
	"fmt"
	"log"

	"github.com/urocare/clinic-booking/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.Patient{},
		&models.Slot{},
		&models.SlotBreak{},
		&models.Appointment{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// Only one pending or confirmed appointment may hold a time range for a
	// doctor at any moment. The partial unique index makes the hold insert a
	// conditional write: of two concurrent bookings for the same interval the
	// second gets a unique violation instead of a double booking.
	err = DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_active_booking
		ON appointments (doctor_id, date, start_time, end_time)
		WHERE status IN ('pending', 'confirmed') AND deleted_at IS NULL
	`).Error
	if err != nil {
		log.Fatal("Failed to create active booking index: ", err)
	}

	err = DB.Exec(`
		CREATE INDEX IF NOT EXISTS idx_payments_order_id ON payments (order_id)
	`).Error
	if err != nil {
		log.Fatal("Failed to create payment order index: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
