package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/urocare/clinic-booking/db"
	"github.com/urocare/clinic-booking/models"
	"github.com/urocare/clinic-booking/utils"
)

const dateLayout = "2006-01-02"

var errSlotOverlap = fmt.Errorf("slot overlaps an existing slot")

// normalizeSlot canonicalizes the slot's clock strings so stored values are
// zero-padded and compare correctly.
func normalizeSlot(slot *models.Slot) error {
	start, err := models.CanonicalClock(slot.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time format")
	}
	end, err := models.CanonicalClock(slot.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time format")
	}
	slot.StartTime = start
	slot.EndTime = end
	for i := range slot.Breaks {
		bStart, err := models.CanonicalClock(slot.Breaks[i].StartTime)
		if err != nil {
			return fmt.Errorf("break %d: invalid start time format", i+1)
		}
		bEnd, err := models.CanonicalClock(slot.Breaks[i].EndTime)
		if err != nil {
			return fmt.Errorf("break %d: invalid end time format", i+1)
		}
		slot.Breaks[i].StartTime = bStart
		slot.Breaks[i].EndTime = bEnd
	}
	return nil
}

// slotConflicts reports whether the slot's interval overlaps an existing slot
// for the same doctor and date. excludeID skips the slot being edited. The
// scan locks the doctor's slots so a concurrent edit cannot shift one past
// the check before the caller's transaction commits.
func slotConflicts(tx *gorm.DB, slot *models.Slot, excludeID uint) (bool, error) {
	newStart, newEnd, err := slot.Interval()
	if err != nil {
		return false, err
	}

	var existing []models.Slot
	query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ? AND date = ?", slot.DoctorID, slot.Date)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&existing).Error; err != nil {
		return false, err
	}

	for _, other := range existing {
		otherStart, otherEnd, err := other.Interval()
		if err != nil {
			continue
		}
		if models.Overlaps(newStart, newEnd, otherStart, otherEnd) {
			return true, nil
		}
	}
	return false, nil
}

// CreateSlot defines a new bookable window for a doctor (admin only)
func CreateSlot(c *fiber.Ctx) error {
	type SlotInput struct {
		DoctorID  uint               `json:"doctorid"`
		Date      string             `json:"date"`
		StartTime string             `json:"starttime"`
		EndTime   string             `json:"endtime"`
		SlotType  models.SlotType    `json:"slottype"`
		Breaks    []models.SlotBreak `json:"breaks"`
	}

	input := new(SlotInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.DoctorID == 0 || input.Date == "" || input.StartTime == "" || input.EndTime == "" || input.SlotType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "some params are missing",
		})
	}

	date, err := time.ParseInLocation(dateLayout, input.Date, time.UTC)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date format, expected YYYY-MM-DD",
		})
	}

	var doctor models.Doctor
	if err := db.DB.First(&doctor, input.DoctorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Doctor not found",
		})
	}

	slot := models.Slot{
		DoctorID:  input.DoctorID,
		Date:      date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		SlotType:  input.SlotType,
		Breaks:    input.Breaks,
	}

	if err := normalizeSlot(&slot); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}
	if err := slot.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		conflict, err := slotConflicts(tx, &slot, 0)
		if err != nil {
			return err
		}
		if conflict {
			return errSlotOverlap
		}
		return tx.Create(&slot).Error
	})
	if err == errSlotOverlap {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "This slot overlaps an existing slot for the doctor",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create slot",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(slot)
}

// GetSlots lists a doctor's slots for a date, each annotated with isBooked
// derived from pending/confirmed appointments matching the slot's start time
func GetSlots(c *fiber.Ctx) error {
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

	var slots []models.Slot
	if err := db.DB.Preload("Breaks").
		Where("doctor_id = ? AND date = ?", doctorID, date).
		Order("start_time").
		Find(&slots).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch slots",
			Error:   err.Error(),
		})
	}

	var booked []models.Appointment
	if err := db.DB.
		Where("doctor_id = ? AND date = ? AND status IN ?", doctorID, date,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Find(&booked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	bookedTimes := make(map[string]bool, len(booked))
	for _, appointment := range booked {
		bookedTimes[appointment.StartTime] = true
	}

	type SlotResponse struct {
		models.Slot
		IsBooked bool `json:"isBooked"`
	}

	response := make([]SlotResponse, 0, len(slots))
	for _, slot := range slots {
		response = append(response, SlotResponse{
			Slot:     slot,
			IsBooked: bookedTimes[slot.StartTime],
		})
	}

	return c.JSON(response)
}

// UpdateSlot edits a slot. Pending or confirmed appointments whose interval is
// no longer covered by the edited window are cancelled in the same transaction
func UpdateSlot(c *fiber.Ctx) error {
	id := c.Params("id")

	var slot models.Slot
	if err := db.DB.Preload("Breaks").First(&slot, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Slot not found",
		})
	}

	type SlotInput struct {
		Date      string             `json:"date"`
		StartTime string             `json:"starttime"`
		EndTime   string             `json:"endtime"`
		SlotType  models.SlotType    `json:"slottype"`
		Breaks    []models.SlotBreak `json:"breaks"`
	}
	input := new(SlotInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Date == "" || input.StartTime == "" || input.EndTime == "" || input.SlotType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "some params are missing",
		})
	}

	date, err := time.ParseInLocation(dateLayout, input.Date, time.UTC)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date format, expected YYYY-MM-DD",
		})
	}

	updated := models.Slot{
		DoctorID:  slot.DoctorID,
		Date:      date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		SlotType:  input.SlotType,
		Breaks:    input.Breaks,
	}
	if err := normalizeSlot(&updated); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}
	if err := updated.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		conflict, err := slotConflicts(tx, &updated, slot.ID)
		if err != nil {
			return err
		}
		if conflict {
			return errSlotOverlap
		}

		// Cancel active appointments the edited window no longer covers
		var dependents []models.Appointment
		if err := tx.Where("slot_id = ? AND status IN ?", slot.ID,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
			Find(&dependents).Error; err != nil {
			return err
		}
		sameDate := slot.Date.Equal(updated.Date)
		for i := range dependents {
			start, perr := models.ParseClock(dependents[i].StartTime)
			end, perr2 := models.ParseClock(dependents[i].EndTime)
			covered := sameDate && perr == nil && perr2 == nil && updated.Covers(start, end)
			if covered {
				continue
			}
			if err := dependents[i].UpdateStatus(tx, models.StatusCancelled); err != nil {
				return err
			}
		}

		slot.Date = updated.Date
		slot.StartTime = updated.StartTime
		slot.EndTime = updated.EndTime
		slot.SlotType = updated.SlotType
		if err := tx.Save(&slot).Error; err != nil {
			return err
		}

		// Replace breaks wholesale
		if err := tx.Where("slot_id = ?", slot.ID).Delete(&models.SlotBreak{}).Error; err != nil {
			return err
		}
		for i := range updated.Breaks {
			updated.Breaks[i].ID = 0
			updated.Breaks[i].SlotID = slot.ID
			if err := tx.Create(&updated.Breaks[i]).Error; err != nil {
				return err
			}
		}
		slot.Breaks = updated.Breaks
		return nil
	})
	if err == errSlotOverlap {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "This slot overlaps an existing slot for the doctor",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update slot",
			Error:   err.Error(),
		})
	}

	return c.JSON(slot)
}

// DeleteSlot removes a slot and cancels every pending or confirmed
// appointment that depended on it
func DeleteSlot(c *fiber.Ctx) error {
	id := c.Params("id")

	var slot models.Slot
	if err := db.DB.First(&slot, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Slot not found in database",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var dependents []models.Appointment
		if err := tx.Where("slot_id = ? AND status IN ?", slot.ID,
			[]models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
			Find(&dependents).Error; err != nil {
			return err
		}
		for i := range dependents {
			if err := dependents[i].UpdateStatus(tx, models.StatusCancelled); err != nil {
				return err
			}
		}
		if err := tx.Where("slot_id = ?", slot.ID).Delete(&models.SlotBreak{}).Error; err != nil {
			return err
		}
		return tx.Delete(&slot).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete slot",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Slot deleted and related appointments cancelled",
	})
}
