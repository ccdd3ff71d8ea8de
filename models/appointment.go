package models

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// DefaultFee is the standard consultation fee applied when a booking request
// carries no price.
func DefaultFee() float64 {
	if v := os.Getenv("STANDARD_FEE"); v != "" {
		if fee, err := strconv.ParseFloat(v, 64); err == nil {
			return fee
		}
	}
	return 700
}

type Appointment struct {
	gorm.Model
	PatientName    string            `json:"patientname"`
	PatientMobile  string            `json:"patientmobile" gorm:"index"`
	PatientEmail   string            `json:"patientemail"`
	DoctorID       uint              `json:"doctorid"`
	Doctor         Doctor            `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	Specialization string            `json:"specialization"`
	SlotID         uint              `json:"slotid"`
	Date           time.Time         `json:"date" gorm:"type:date"`
	StartTime      string            `json:"starttime"` // "HH:MM" 24h
	EndTime        string            `json:"endtime"`
	SlotType       SlotType          `json:"slottype"`
	Status         AppointmentStatus `json:"status"`
	PaymentStatus  PaymentStatus     `json:"payment_status"`
	Price          float64           `json:"price"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.PaymentStatus == "" {
		a.PaymentStatus = PaymentStatusUnpaid
	}
	if a.Price == 0 {
		a.Price = DefaultFee()
	}
	return nil
}

// CanTransition validates a status change. Confirmation is only reachable
// from pending; cancellation is terminal and a cancelled appointment is never
// resurrected, rebooking creates a new record.
func CanTransition(from, to AppointmentStatus) error {
	switch from {
	case StatusPending:
		if to != StatusConfirmed && to != StatusCancelled {
			return fmt.Errorf("invalid transition from pending to %s", to)
		}
	case StatusConfirmed:
		if to != StatusCancelled {
			return fmt.Errorf("invalid transition from confirmed to %s", to)
		}
	case StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", from)
	default:
		return fmt.Errorf("unknown status %s", from)
	}
	return nil
}

// UpdateStatus applies a validated status change inside the caller's
// transaction.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if err := CanTransition(a.Status, newStatus); err != nil {
		return err
	}
	a.Status = newStatus
	if err := tx.Save(a).Error; err != nil {
		return err
	}
	return nil
}
