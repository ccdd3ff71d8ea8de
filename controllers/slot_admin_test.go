package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/urocare/clinic-booking/db"
	"github.com/urocare/clinic-booking/models"
)

func slotAdminApp() *fiber.App {
	app := fiber.New()
	app.Post("/slots", CreateSlot)
	app.Put("/slots/:id", UpdateSlot)
	app.Delete("/slots/:id", DeleteSlot)
	return app
}

func slotRequest(t *testing.T, method, path string, payload map[string]interface{}) *http.Request {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestOverlappingSlotRejected(t *testing.T) {
	_, doctor, _ := setupBookingTest(t)
	admin := slotAdminApp()

	// The setup slot holds [10:00, 12:00); a second window cutting into it loses
	resp, err := admin.Test(slotRequest(t, http.MethodPost, "/slots", map[string]interface{}{
		"doctorid":  doctor.ID,
		"date":      "2024-06-01",
		"starttime": "11:30",
		"endtime":   "13:00",
		"slottype":  "offline",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("overlapping slot: status = %d, want 409", resp.StatusCode)
	}

	// A window starting exactly where the existing one ends is fine
	resp, err = admin.Test(slotRequest(t, http.MethodPost, "/slots", map[string]interface{}{
		"doctorid":  doctor.ID,
		"date":      "2024-06-01",
		"starttime": "12:00",
		"endtime":   "13:00",
		"slottype":  "offline",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("touching slot: status = %d, want 201", resp.StatusCode)
	}
}

func TestSlotEditCancelsUncoveredAppointments(t *testing.T) {
	app, doctor, slot := setupBookingTest(t)
	admin := slotAdminApp()

	for _, interval := range [][2]string{{"10:00", "10:30"}, {"11:30", "11:45"}} {
		resp, err := app.Test(bookingRequest(t, doctor.ID, slot.ID, interval[0], interval[1]), -1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("booking %s-%s: status = %d, want 201", interval[0], interval[1], resp.StatusCode)
		}
	}

	// Shrink the window to [11:00, 12:00); the morning appointment falls outside
	resp, err := admin.Test(slotRequest(t, http.MethodPut, fmt.Sprintf("/slots/%d", slot.ID), map[string]interface{}{
		"date":      "2024-06-01",
		"starttime": "11:00",
		"endtime":   "12:00",
		"slottype":  "offline",
	}), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("slot edit: status = %d, want 200", resp.StatusCode)
	}

	var uncovered, covered models.Appointment
	if err := db.DB.Where("start_time = ?", "10:00").First(&uncovered).Error; err != nil {
		t.Fatal(err)
	}
	if uncovered.Status != models.StatusCancelled {
		t.Errorf("uncovered appointment status = %s, want cancelled", uncovered.Status)
	}
	if err := db.DB.Where("start_time = ?", "11:30").First(&covered).Error; err != nil {
		t.Fatal(err)
	}
	if covered.Status != models.StatusPending {
		t.Errorf("covered appointment status = %s, want pending", covered.Status)
	}
}

func TestSlotDeleteCancelsDependents(t *testing.T) {
	app, doctor, slot := setupBookingTest(t)
	admin := slotAdminApp()

	resp, err := app.Test(bookingRequest(t, doctor.ID, slot.ID, "10:00", "10:30"), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("booking: status = %d, want 201", resp.StatusCode)
	}

	resp, err = admin.Test(slotRequest(t, http.MethodDelete, fmt.Sprintf("/slots/%d", slot.ID), nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("slot delete: status = %d, want 200", resp.StatusCode)
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment).Error; err != nil {
		t.Fatal(err)
	}
	if appointment.Status != models.StatusCancelled {
		t.Errorf("dependent appointment status = %s, want cancelled", appointment.Status)
	}

	var gone models.Slot
	if err := db.DB.First(&gone, slot.ID).Error; err == nil {
		t.Error("deleted slot is still visible")
	}
}
