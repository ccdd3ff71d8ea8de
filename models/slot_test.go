package models

import "testing"

func testSlot(breaks ...SlotBreak) *Slot {
	return &Slot{
		StartTime: "10:00",
		EndTime:   "18:00",
		SlotType:  SlotTypeOffline,
		Breaks:    breaks,
	}
}

func TestSlotValidate(t *testing.T) {
	tests := []struct {
		name    string
		slot    *Slot
		wantErr bool
	}{
		{"no breaks", testSlot(), false},
		{"single break", testSlot(SlotBreak{StartTime: "13:00", EndTime: "14:00"}), false},
		{"ordered breaks", testSlot(
			SlotBreak{StartTime: "12:00", EndTime: "12:30"},
			SlotBreak{StartTime: "15:00", EndTime: "15:30"},
		), false},
		{"end before start", &Slot{StartTime: "18:00", EndTime: "10:00", SlotType: SlotTypeOnline}, true},
		{"zero length", &Slot{StartTime: "10:00", EndTime: "10:00", SlotType: SlotTypeOnline}, true},
		{"bad slot type", &Slot{StartTime: "10:00", EndTime: "11:00", SlotType: "walk-in"}, true},
		{"break outside slot", testSlot(SlotBreak{StartTime: "09:00", EndTime: "09:30"}), true},
		{"break past slot end", testSlot(SlotBreak{StartTime: "17:30", EndTime: "18:30"}), true},
		{"inverted break", testSlot(SlotBreak{StartTime: "14:00", EndTime: "13:00"}), true},
		{"overlapping breaks", testSlot(
			SlotBreak{StartTime: "12:00", EndTime: "13:00"},
			SlotBreak{StartTime: "12:30", EndTime: "14:00"},
		), true},
		{"unordered breaks", testSlot(
			SlotBreak{StartTime: "15:00", EndTime: "15:30"},
			SlotBreak{StartTime: "12:00", EndTime: "12:30"},
		), true},
		{"malformed break time", testSlot(SlotBreak{StartTime: "noon", EndTime: "13:00"}), true},
		{"touching breaks are fine", testSlot(
			SlotBreak{StartTime: "12:00", EndTime: "12:30"},
			SlotBreak{StartTime: "12:30", EndTime: "13:00"},
		), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlotCovers(t *testing.T) {
	slot := testSlot(SlotBreak{StartTime: "13:00", EndTime: "14:00"})

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"inside window", "10:00", "10:30", true},
		{"whole morning", "10:00", "13:00", true},
		{"ends where break starts", "12:30", "13:00", true},
		{"starts where break ends", "14:00", "14:30", true},
		{"overlaps break", "12:45", "13:15", false},
		{"inside break", "13:15", "13:45", false},
		{"before window", "09:30", "10:00", false},
		{"past window end", "17:45", "18:15", false},
		{"inverted interval", "11:00", "10:30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := ParseClock(tt.start)
			if err != nil {
				t.Fatal(err)
			}
			end, err := ParseClock(tt.end)
			if err != nil {
				t.Fatal(err)
			}
			if got := slot.Covers(start, end); got != tt.want {
				t.Errorf("Covers(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
