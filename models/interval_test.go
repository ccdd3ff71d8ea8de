package models

import "testing"

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"identical", "10:00", "10:30", "10:00", "10:30", true},
		{"contained", "10:00", "11:00", "10:15", "10:45", true},
		{"partial overlap left", "10:00", "10:30", "10:15", "10:45", true},
		{"partial overlap right", "10:15", "10:45", "10:00", "10:30", true},
		{"touching endpoints", "10:00", "10:30", "10:30", "11:00", false},
		{"touching endpoints reversed", "10:30", "11:00", "10:00", "10:30", false},
		{"disjoint", "09:00", "09:30", "10:00", "10:30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aStart, err := ParseClock(tt.aStart)
			if err != nil {
				t.Fatal(err)
			}
			aEnd, _ := ParseClock(tt.aEnd)
			bStart, _ := ParseClock(tt.bStart)
			bEnd, _ := ParseClock(tt.bEnd)

			if got := Overlaps(aStart, aEnd, bStart, bEnd); got != tt.want {
				t.Errorf("Overlaps(%s-%s, %s-%s) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}

func TestCanonicalClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:30", "09:30", false},
		{"9:30", "09:30", false},
		{" 10:00 ", "10:00", false},
		{"24:00", "", true},
		{"10:60", "", true},
		{"ten", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := CanonicalClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("CanonicalClock(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("CanonicalClock(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CanonicalClock(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
