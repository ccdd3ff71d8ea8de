package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type SlotType string

const (
	SlotTypeOnline  SlotType = "online"
	SlotTypeOffline SlotType = "offline"
)

// SlotBreak is a pause inside a slot (lunch, rounds) during which no
// appointment may be booked.
type SlotBreak struct {
	gorm.Model
	SlotID    uint   `json:"slot_id"`
	StartTime string `json:"starttime"` // "HH:MM" 24h
	EndTime   string `json:"endtime"`
}

// Slot is a doctor-defined bookable window for one date.
type Slot struct {
	gorm.Model
	DoctorID  uint        `json:"doctorid"`
	Doctor    Doctor      `json:"doctor,omitempty" gorm:"foreignKey:DoctorID"`
	Date      time.Time   `json:"date" gorm:"type:date"`
	StartTime string      `json:"starttime"` // "HH:MM" 24h
	EndTime   string      `json:"endtime"`
	SlotType  SlotType    `json:"slottype"`
	Breaks    []SlotBreak `json:"breaks" gorm:"foreignKey:SlotID"`
}

// Interval parses the slot's wall-clock boundaries.
func (s *Slot) Interval() (start, end time.Time, err error) {
	start, err = ParseClock(s.StartTime)
	if err != nil {
		return start, end, fmt.Errorf("invalid start time format")
	}
	end, err = ParseClock(s.EndTime)
	if err != nil {
		return start, end, fmt.Errorf("invalid end time format")
	}
	return start, end, nil
}

// Validate checks the slot interval, type and breaks. Malformed breaks are an
// error, never dropped.
func (s *Slot) Validate() error {
	start, end, err := s.Interval()
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("slot end time must be after start time")
	}
	if s.SlotType != SlotTypeOnline && s.SlotType != SlotTypeOffline {
		return fmt.Errorf("slottype must be online or offline")
	}
	return s.validateBreaks(start, end)
}

// Breaks must be contained in the slot, ordered and pairwise non-overlapping.
func (s *Slot) validateBreaks(slotStart, slotEnd time.Time) error {
	var prevEnd time.Time
	for i, b := range s.Breaks {
		bStart, err := ParseClock(b.StartTime)
		if err != nil {
			return fmt.Errorf("break %d: invalid start time format", i+1)
		}
		bEnd, err := ParseClock(b.EndTime)
		if err != nil {
			return fmt.Errorf("break %d: invalid end time format", i+1)
		}
		if !bStart.Before(bEnd) {
			return fmt.Errorf("break %d: end must be after start", i+1)
		}
		if bStart.Before(slotStart) || bEnd.After(slotEnd) {
			return fmt.Errorf("break %d: must lie within the slot", i+1)
		}
		if i > 0 && bStart.Before(prevEnd) {
			return fmt.Errorf("break %d: overlaps or precedes previous break", i+1)
		}
		prevEnd = bEnd
	}
	return nil
}

// Covers reports whether [start, end) lies inside the slot window and clear of
// every break. Uses half-open comparisons throughout, so an appointment may
// end exactly where a break begins.
func (s *Slot) Covers(start, end time.Time) bool {
	slotStart, slotEnd, err := s.Interval()
	if err != nil {
		return false
	}
	if start.Before(slotStart) || end.After(slotEnd) || !start.Before(end) {
		return false
	}
	for _, b := range s.Breaks {
		bStart, err := ParseClock(b.StartTime)
		if err != nil {
			return false
		}
		bEnd, err := ParseClock(b.EndTime)
		if err != nil {
			return false
		}
		if Overlaps(start, end, bStart, bEnd) {
			return false
		}
	}
	return true
}
