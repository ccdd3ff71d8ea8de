package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/urocare/clinic-booking/db"
	"github.com/urocare/clinic-booking/models"
	"github.com/urocare/clinic-booking/utils"
)

var errSlotTaken = fmt.Errorf("slot already booked")

// CreateAppointment places a pending hold on a slot interval. Validation and
// the insert run in one transaction; of two concurrent requests for the same
// interval exactly one wins, the other gets a conflict.
func CreateAppointment(c *fiber.Ctx) error {
	type AppointmentInput struct {
		PatientName   string          `json:"patientname"`
		PatientMobile string          `json:"patientmobile"`
		PatientEmail  string          `json:"patientemail"`
		DoctorID      uint            `json:"doctorid"`
		Date          string          `json:"date"`
		SlotID        uint            `json:"slotid"`
		StartTime     string          `json:"starttime"`
		EndTime       string          `json:"endtime"`
		SlotType      models.SlotType `json:"slottype"`
		Price         float64         `json:"price"`
	}

	input := new(AppointmentInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.PatientName == "" || input.PatientMobile == "" || input.DoctorID == 0 ||
		input.Date == "" || input.SlotID == 0 || input.StartTime == "" ||
		input.EndTime == "" || input.SlotType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Some params are missing",
		})
	}

	date, err := time.ParseInLocation(dateLayout, input.Date, time.UTC)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date format, expected YYYY-MM-DD",
		})
	}

	startTime, err := models.CanonicalClock(input.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid start time format",
		})
	}
	endTime, err := models.CanonicalClock(input.EndTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid end time format",
		})
	}
	start, _ := models.ParseClock(startTime)
	end, _ := models.ParseClock(endTime)
	if !start.Before(end) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "End time must be after start time",
		})
	}

	// The requested range must be offered by a slot of this doctor on this
	// date, outside its breaks
	var slot models.Slot
	if err := db.DB.Preload("Breaks").
		Where("id = ? AND doctor_id = ? AND date = ?", input.SlotID, input.DoctorID, date).
		First(&slot).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Slot not found for doctor",
		})
	}
	if !slot.Covers(start, end) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Requested time is outside the slot or during a break",
		})
	}
	if input.SlotType != slot.SlotType {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "slottype does not match the slot",
		})
	}

	appointment := models.Appointment{
		PatientName:   input.PatientName,
		PatientMobile: input.PatientMobile,
		PatientEmail:  input.PatientEmail,
		DoctorID:      input.DoctorID,
		SlotID:        slot.ID,
		Date:          date,
		StartTime:     startTime,
		EndTime:       endTime,
		SlotType:      input.SlotType,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		Price:         input.Price,
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, input.DoctorID).Error; err == nil {
		appointment.Specialization = doctor.Specialization
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// Lock conflicting rows; the unique active-booking index backstops
		// insert races the check cannot see
		available, err := utils.CheckAvailability(tx, input.DoctorID, date, startTime, endTime)
		if err != nil {
			return err
		}
		if !available {
			return errSlotTaken
		}
		return tx.Create(&appointment).Error
	})
	if err == errSlotTaken || db.IsDuplicateKey(err) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "This slot is already booked",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}

	upsertPatient(input.PatientName, input.PatientMobile, input.PatientEmail)

	if appointment.PatientEmail != "" {
		if err := sendBookingEmail(&appointment, doctor.Name); err != nil {
			log.Printf("Failed to send booking email for appointment %d: %v", appointment.ID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// upsertPatient keeps the patient directory current from booking details
func upsertPatient(name, mobile, email string) {
	if mobile == "" {
		return
	}
	var patient models.Patient
	if db.DB.Where("mobile = ?", mobile).First(&patient).RowsAffected > 0 {
		patient.Name = name
		if email != "" {
			patient.Email = email
		}
		if err := db.DB.Save(&patient).Error; err != nil {
			log.Printf("Failed to update patient %s: %v", mobile, err)
		}
		return
	}
	patient = models.Patient{Name: name, Mobile: mobile, Email: email}
	if err := db.DB.Create(&patient).Error; err != nil {
		log.Printf("Failed to create patient %s: %v", mobile, err)
	}
}

func sendBookingEmail(appointment *models.Appointment, doctorName string) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been reserved. Please complete the payment to confirm it.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
			<li><strong>Consultation:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, appointment.PatientName, doctorName,
		utils.ToIST(appointment.Date).Format("2006-01-02"),
		appointment.StartTime, appointment.EndTime, appointment.SlotType)

	return utils.SendEmail(appointment.PatientEmail, "Appointment Reserved", body)
}

// GetMyAppointments lists a patient's appointments by mobile number
func GetMyAppointments(c *fiber.Ctx) error {
	patientMobile := c.Params("patientmobile")
	if patientMobile == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Patient mobile is required",
		})
	}

	var appointments []models.Appointment
	if err := db.DB.Preload("Doctor").
		Where("patient_mobile = ?", patientMobile).
		Order("date, start_time").
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	return c.JSON(appointments)
}

// GetAllAppointments lists appointments for a doctor on a date
func GetAllAppointments(c *fiber.Ctx) error {
	doctorID := c.Query("doctorid")
	dateStr := c.Query("date")
	if doctorID == "" || dateStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "doctorid and date are required",
		})
	}

	date, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date format, expected YYYY-MM-DD",
		})
	}

	var appointments []models.Appointment
	if err := db.DB.Preload("Doctor").
		Where("doctor_id = ? AND date = ?", doctorID, date).
		Order("start_time").
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	return c.JSON(appointments)
}

// GetAppointment returns a single appointment by ID
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Doctor").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CancelAppointment cancels a pending or confirmed appointment (staff action)
func CancelAppointment(c *fiber.Ctx) error {
	id := c.Params("id")

	var appointment models.Appointment
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Raw(`
			SELECT *
			FROM appointments
			WHERE id = ? AND deleted_at IS NULL
			FOR UPDATE
		`, id).Scan(&appointment).Error; err != nil {
			return err
		}
		if appointment.ID == 0 {
			return gorm.ErrRecordNotFound
		}
		return appointment.UpdateStatus(tx, models.StatusCancelled)
	})
	if err == gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Failed to cancel appointment",
			Error:   err.Error(),
		})
	}

	return c.JSON(appointment)
}

// DeleteAppointment removes an appointment record entirely (admin only)
func DeleteAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Delete(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete appointment",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
