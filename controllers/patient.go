package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/urocare/clinic-booking/db"
	"github.com/urocare/clinic-booking/models"
	"github.com/urocare/clinic-booking/utils"
)

// GetPatients lists all patients (admin only)
func GetPatients(c *fiber.Ctx) error {
	var patients []models.Patient
	if err := db.DB.Order("name").Find(&patients).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch patients",
			Error:   err.Error(),
		})
	}
	return c.JSON(patients)
}

// GetPatientByMobile looks up a patient record by mobile number
func GetPatientByMobile(c *fiber.Ctx) error {
	mobile := c.Params("mobile")
	var patient models.Patient
	if err := db.DB.Where("mobile = ?", mobile).First(&patient).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
		})
	}
	return c.JSON(patient)
}

// UpdatePatient edits patient details (admin only)
func UpdatePatient(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
		})
	}
	if err := c.BodyParser(&patient); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Save(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update patient",
			Error:   err.Error(),
		})
	}
	return c.JSON(patient)
}

// UploadPatientImage uploads a patient's photo to Cloudinary (admin only)
func UploadPatientImage(c *fiber.Ctx) error {
	id := c.Params("id")
	var patient models.Patient
	if err := db.DB.First(&patient, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Patient not found",
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "image file is required",
			Error:   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to open uploaded file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	publicID := fmt.Sprintf("patient_%d", patient.ID)
	url, err := utils.UploadToCloudinary(file, publicID, "patients")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload image",
			Error:   err.Error(),
		})
	}

	patient.ImageURL = url
	if err := db.DB.Save(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save patient image",
			Error:   err.Error(),
		})
	}

	return c.JSON(patient)
}
