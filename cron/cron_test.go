package cron

import (
	"testing"
	"time"
)

func TestReminderWindow(t *testing.T) {
	tests := []struct {
		name               string
		now                time.Time
		wantSameDay        bool
		wantFrom, wantTo   string
		wantFromD, wantToD string
	}{
		{
			name:        "mid-day",
			now:         time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			wantSameDay: true,
			wantFrom:    "10:55", wantTo: "11:05",
			wantFromD: "2024-06-01", wantToD: "2024-06-01",
		},
		{
			name:        "straddles midnight",
			now:         time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC),
			wantSameDay: false,
			wantFrom:    "23:55", wantTo: "00:05",
			wantFromD: "2024-06-01", wantToD: "2024-06-02",
		},
		{
			name:        "whole window past midnight",
			now:         time.Date(2024, 6, 1, 23, 10, 0, 0, time.UTC),
			wantSameDay: true,
			wantFrom:    "00:05", wantTo: "00:15",
			wantFromD: "2024-06-02", wantToD: "2024-06-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := reminderWindow(tt.now)
			if span.sameDay() != tt.wantSameDay {
				t.Errorf("sameDay() = %v, want %v", span.sameDay(), tt.wantSameDay)
			}
			if span.from != tt.wantFrom || span.to != tt.wantTo {
				t.Errorf("window = %s-%s, want %s-%s", span.from, span.to, tt.wantFrom, tt.wantTo)
			}
			gotFromD := span.fromDate.Format("2006-01-02")
			gotToD := span.toDate.Format("2006-01-02")
			if gotFromD != tt.wantFromD || gotToD != tt.wantToD {
				t.Errorf("dates = %s/%s, want %s/%s", gotFromD, gotToD, tt.wantFromD, tt.wantToD)
			}
		})
	}
}

func TestHoldWindow(t *testing.T) {
	t.Setenv("HOLD_WINDOW_MINUTES", "")
	if got := HoldWindow(); got != 7*time.Minute {
		t.Errorf("HoldWindow() = %v, want 7m", got)
	}

	t.Setenv("HOLD_WINDOW_MINUTES", "15")
	if got := HoldWindow(); got != 15*time.Minute {
		t.Errorf("HoldWindow() with override = %v, want 15m", got)
	}

	t.Setenv("HOLD_WINDOW_MINUTES", "-3")
	if got := HoldWindow(); got != 7*time.Minute {
		t.Errorf("HoldWindow() with negative = %v, want 7m", got)
	}
}
