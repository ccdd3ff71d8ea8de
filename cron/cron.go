package cron

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/urocare/clinic-booking/db"
	"github.com/urocare/clinic-booking/models"
	"github.com/urocare/clinic-booking/utils"
)

// StartCronJobs initializes and starts the cron scheduler for hold expiry and
// appointment reminders
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	_, err := c.AddFunc("* * * * *", func() { ExpireStaleHolds() })
	if err != nil {
		log.Fatalf("Failed to add hold expiry cron job: %v", err)
	}
	_, err = c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for hold expiry and reminders")
}

// HoldWindow is how long a pending appointment keeps its interval reserved
// while the patient pays.
func HoldWindow() time.Duration {
	if v := os.Getenv("HOLD_WINDOW_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return 7 * time.Minute
}

// ExpireStaleHolds cancels pending appointments older than the hold window
// that were never paid, reclaiming their intervals for new bookings. The
// single conditional UPDATE only touches rows still pending and unpaid, so it
// cannot race a concurrent payment confirmation. Returns the number of holds
// released.
func ExpireStaleHolds() int64 {
	cutoff := time.Now().UTC().Add(-HoldWindow())

	res := db.DB.Model(&models.Appointment{}).
		Where("status = ? AND payment_status = ? AND created_at < ?",
			models.StatusPending, models.PaymentStatusUnpaid, cutoff).
		Update("status", models.StatusCancelled)
	if res.Error != nil {
		log.Printf("Error expiring stale holds: %v", res.Error)
		return 0
	}
	if res.RowsAffected > 0 {
		log.Printf("Expired %d stale appointment hold(s)", res.RowsAffected)
	}
	return res.RowsAffected
}

// reminderSpan is the date-qualified clock window for appointments starting
// roughly one hour after now. When the window crosses midnight the two
// endpoints land on different dates and the clock strings wrap, so each
// endpoint keeps its own date.
type reminderSpan struct {
	fromDate, toDate time.Time
	from, to         string
}

func (s reminderSpan) sameDay() bool {
	return s.fromDate.Equal(s.toDate)
}

func reminderWindow(now time.Time) reminderSpan {
	fromAt := now.Add(55 * time.Minute)
	toAt := now.Add(65 * time.Minute)
	return reminderSpan{
		fromDate: fromAt.Truncate(24 * time.Hour),
		toDate:   toAt.Truncate(24 * time.Hour),
		from:     fromAt.Format(models.ClockLayout),
		to:       toAt.Format(models.ClockLayout),
	}
}

// sendAppointmentReminders checks for appointments and sends reminders
func sendAppointmentReminders() {
	// Look for appointments starting in the next hour
	span := reminderWindow(time.Now().UTC())

	query := db.DB.Preload("Doctor").Where("status = ?", models.StatusConfirmed)
	if span.sameDay() {
		query = query.Where("date = ? AND start_time BETWEEN ? AND ?",
			span.fromDate, span.from, span.to)
	} else {
		query = query.Where("(date = ? AND start_time >= ?) OR (date = ? AND start_time <= ?)",
			span.fromDate, span.from, span.toDate, span.to)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if appointment.PatientEmail == "" {
			continue
		}
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.PatientEmail)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Doctor:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
			<li><strong>Consultation:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Clinic Team</p>
	`, appointment.PatientName, appointment.Doctor.Name,
		utils.ToIST(appointment.Date).Format("2006-01-02"),
		appointment.StartTime, appointment.EndTime, appointment.SlotType)

	return utils.SendEmail(appointment.PatientEmail, subject, body)
}
