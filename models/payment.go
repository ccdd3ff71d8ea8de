package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentState string

const (
	PaymentStateCreated  PaymentState = "created"
	PaymentStatePending  PaymentState = "pending"
	PaymentStatePaid     PaymentState = "paid"
	PaymentStateFailed   PaymentState = "failed"
	PaymentStateRefunded PaymentState = "refunded"
)

// Payment correlates one gateway order with one appointment. Only the
// reconciliation path in controllers may move it to paid, and once paid it is
// never rewritten.
type Payment struct {
	gorm.Model
	AppointmentID uint         `json:"appointmentid"`
	Appointment   Appointment  `json:"appointment,omitempty" gorm:"foreignKey:AppointmentID"`
	DoctorID      uint         `json:"doctorid"`
	PatientMobile string       `json:"patientmobile"`
	Amount        float64      `json:"amount"`
	Status        PaymentState `json:"paymentstatus"`
	OrderID       string       `json:"orderid"`
	PaymentID     string       `json:"paymentid"` // gateway payment id
	Signature     string       `json:"signature,omitempty"`
	Method        string       `json:"method"` // card, UPI, netbanking, wallet
	ErrorMessage  string       `json:"errormessage,omitempty"`
	PaidAt        *time.Time   `json:"paid_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PaymentStateCreated
	}
	return nil
}
