package controllers

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/urocare/clinic-booking/db"
	"github.com/urocare/clinic-booking/models"
	"github.com/urocare/clinic-booking/utils"
)

// CreateOrder creates a gateway order for a pending appointment and records a
// Payment row bound to it
func CreateOrder(c *fiber.Ctx) error {
	type OrderInput struct {
		AppointmentID uint    `json:"appointmentid"`
		Amount        float64 `json:"amount"`
	}

	input := new(OrderInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.AppointmentID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "appointmentid is required",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, input.AppointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "appointment not found",
		})
	}
	if appointment.Status != models.StatusPending {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "appointment is not awaiting payment",
		})
	}

	amount := input.Amount
	if amount == 0 {
		amount = appointment.Price
	}

	receipt := fmt.Sprintf("receipt_%d", appointment.ID)
	orderID, err := utils.CreateRazorpayOrder(receipt, amount)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(utils.ErrorResponse{
			Message: "Failed to create payment order",
			Error:   err.Error(),
		})
	}

	payment := models.Payment{
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		PatientMobile: appointment.PatientMobile,
		Amount:        amount,
		OrderID:       orderID,
		Status:        models.PaymentStateCreated,
	}
	if err := db.DB.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save payment",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"orderId":   orderID,
		"amount":    amount,
		"paymentid": payment.ID,
	})
}

// VerifyPayment authenticates a gateway callback and reconciles payment and
// appointment state
func VerifyPayment(c *fiber.Ctx) error {
	type VerifyInput struct {
		AppointmentID uint   `json:"appointmentid"`
		OrderID       string `json:"orderid"`
		PaymentID     string `json:"paymentid"`
		Signature     string `json:"signature"`
	}

	input := new(VerifyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.AppointmentID == 0 || input.OrderID == "" || input.PaymentID == "" || input.Signature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing payment verification params",
		})
	}

	secret := os.Getenv("RAZORPAY_KEY_SECRET")
	if !utils.VerifyRazorpaySignature(input.OrderID, input.PaymentID, input.Signature, secret) {
		log.Printf("SECURITY: invalid payment signature for order %s from %s", input.OrderID, c.IP())
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid payment signature",
		})
	}

	// Method and status come from the gateway, never from the client
	details, err := utils.FetchRazorpayPayment(input.PaymentID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(utils.ErrorResponse{
			Message: "Failed to fetch payment details",
			Error:   err.Error(),
		})
	}
	method, _ := details["method"].(string)

	outcome, payment, appointment, err := reconcilePayment(input.OrderID, input.PaymentID, input.Signature, method)
	if err == errAppointmentInactive {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Appointment is no longer active; payment requires manual review",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reconcile payment",
			Error:   err.Error(),
		})
	}

	switch outcome {
	case reconcileNotFound:
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "No payment found for this order",
		})
	case reconcileAlready:
		log.Printf("Duplicate payment callback for order %s ignored", input.OrderID)
	}

	return c.JSON(fiber.Map{
		"message":     "Payment verified successfully",
		"payment":     payment,
		"appointment": appointment,
	})
}

type reconcileOutcome int

const (
	reconcileApplied reconcileOutcome = iota
	reconcileAlready
	reconcileNotFound
)

var errAppointmentInactive = fmt.Errorf("appointment is cancelled, cannot confirm")

// reconcilePayment advances the Payment and its Appointment together as one
// transaction: the payment becomes paid and the appointment confirmed, or
// neither does. Replayed callbacks for an already paid order are a no-op.
func reconcilePayment(orderID, gatewayPaymentID, signature, method string) (reconcileOutcome, *models.Payment, *models.Appointment, error) {
	var payment models.Payment
	var appointment models.Appointment
	outcome := reconcileApplied

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the payment row so concurrent callbacks for the same order
		// serialize here
		if err := tx.Raw(`
			SELECT *
			FROM payments
			WHERE order_id = ? AND deleted_at IS NULL
			FOR UPDATE
		`, orderID).Scan(&payment).Error; err != nil {
			return err
		}
		if payment.ID == 0 {
			outcome = reconcileNotFound
			return nil
		}

		// Paid is immutable; a replay changes nothing
		if payment.Status == models.PaymentStatePaid {
			outcome = reconcileAlready
			return tx.First(&appointment, payment.AppointmentID).Error
		}

		if err := tx.Raw(`
			SELECT *
			FROM appointments
			WHERE id = ? AND deleted_at IS NULL
			FOR UPDATE
		`, payment.AppointmentID).Scan(&appointment).Error; err != nil {
			return err
		}
		if appointment.ID == 0 {
			return fmt.Errorf("appointment %d not found for order %s", payment.AppointmentID, orderID)
		}

		switch appointment.Status {
		case models.StatusPending:
			appointment.PaymentStatus = models.PaymentStatusPaid
			if err := appointment.UpdateStatus(tx, models.StatusConfirmed); err != nil {
				return err
			}
		case models.StatusConfirmed:
			// Tolerate a duplicate callback that raced the first one
			appointment.PaymentStatus = models.PaymentStatusPaid
			if err := tx.Save(&appointment).Error; err != nil {
				return err
			}
		default:
			// Hold expired or staff cancelled before the callback arrived
			return errAppointmentInactive
		}

		now := time.Now().UTC()
		payment.Status = models.PaymentStatePaid
		payment.PaymentID = gatewayPaymentID
		payment.Signature = signature
		payment.Method = method
		payment.PaidAt = &now
		return tx.Save(&payment).Error
	})
	if err != nil {
		return outcome, nil, nil, err
	}
	return outcome, &payment, &appointment, nil
}
