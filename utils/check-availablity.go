package utils

import (
	"time"

	"gorm.io/gorm"

	"github.com/urocare/clinic-booking/models"
)

// CheckAvailability checks whether the doctor's [startTime, endTime) range on
// the date is free of pending or confirmed appointments. Conflicting rows are
// compared half-open and locked so a concurrent transaction cannot confirm or
// cancel them underneath us. On its own the check is advisory; the unique
// active-booking index is what arbitrates true insert races.
func CheckAvailability(tx *gorm.DB, doctorID uint, date time.Time, startTime, endTime string) (bool, error) {
	var existingAppointment models.Appointment
	err := tx.Raw(`
		SELECT *
		FROM appointments
		WHERE doctor_id = ? AND date = ? AND deleted_at IS NULL
			AND status IN ('pending', 'confirmed')
			AND start_time < ? AND end_time > ?
		FOR UPDATE
		LIMIT 1
	`, doctorID, date, endTime, startTime).
		Scan(&existingAppointment).Error
	if err != nil {
		return false, err
	}

	// If there is any conflicting appointment, the range is taken
	if existingAppointment.ID != 0 {
		return false, nil
	}

	return true, nil
}
