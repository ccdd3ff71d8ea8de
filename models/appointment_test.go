package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		wantErr  bool
	}{
		{StatusPending, StatusConfirmed, false},
		{StatusPending, StatusCancelled, false},
		{StatusConfirmed, StatusCancelled, false},
		{StatusPending, StatusPending, true},
		{StatusConfirmed, StatusConfirmed, true},
		{StatusConfirmed, StatusPending, true},
		{StatusCancelled, StatusPending, true},
		{StatusCancelled, StatusConfirmed, true},
		{StatusCancelled, StatusCancelled, true},
		{AppointmentStatus("bogus"), StatusConfirmed, true},
	}

	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to)
		if (err != nil) != tt.wantErr {
			t.Errorf("CanTransition(%s, %s) error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
		}
	}
}

func TestDefaultFee(t *testing.T) {
	t.Setenv("STANDARD_FEE", "")
	if got := DefaultFee(); got != 700 {
		t.Errorf("DefaultFee() = %v, want 700", got)
	}

	t.Setenv("STANDARD_FEE", "850")
	if got := DefaultFee(); got != 850 {
		t.Errorf("DefaultFee() with override = %v, want 850", got)
	}

	t.Setenv("STANDARD_FEE", "not-a-number")
	if got := DefaultFee(); got != 700 {
		t.Errorf("DefaultFee() with garbage = %v, want 700", got)
	}
}
