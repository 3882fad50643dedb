package domain

import (
	"testing"
	"time"
)

func TestVehicleCapacity(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"7 chỗ", 7},
		{"16 chỗ", 16},
		{" 5 chỗ ", 5},
		{"xe tải", 4},
		{"", 4},
		{"0 chỗ", 4},
	}

	for _, tt := range tests {
		if got := (Vehicle{Type: tt.label}).Capacity(); got != tt.want {
			t.Errorf("Capacity(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	if !BookingStatusPending.CanTransitionTo(BookingStatusConfirmed) ||
		!BookingStatusPending.CanTransitionTo(BookingStatusCancelled) {
		t.Error("pending should move to confirmed or cancelled")
	}
	for _, s := range []BookingStatus{BookingStatusConfirmed, BookingStatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
		if s.CanTransitionTo(BookingStatusPending) {
			t.Errorf("%s should not return to pending", s)
		}
	}
	if BookingStatus("paid").Valid() {
		t.Error("unknown status should be invalid")
	}
}

func TestDateRangeContains(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	r := DateRange{
		Start: time.Date(2024, 5, 1, 15, 30, 0, 0, loc),
		End:   time.Date(2024, 5, 3, 8, 0, 0, 0, loc),
	}

	tests := []struct {
		date string
		want bool
	}{
		{"2024-04-30", false},
		{"2024-05-01", true},
		{"2024-05-03", true},
		{"2024-05-04", false},
		{"garbage", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.date); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestMonthToDate(t *testing.T) {
	now := time.Date(2024, 5, 20, 17, 45, 0, 0, time.UTC)
	r := MonthToDate(now)

	if r.Start != time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("unexpected start %v", r.Start)
	}
	if !r.End.Equal(now) {
		t.Errorf("unexpected end %v", r.End)
	}
	if !r.Contains("2024-05-20") || r.Contains("2024-05-21") {
		t.Error("range should end today")
	}
}

func TestRideDeparture(t *testing.T) {
	r := Ride{Date: "2024-05-20", Time: "07:30"}
	got, ok := r.Departure(time.UTC)
	if !ok || !got.Equal(time.Date(2024, 5, 20, 7, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected departure %v (%v)", got, ok)
	}
	if _, ok := (Ride{Date: "x", Time: "07:30"}).Departure(time.UTC); ok {
		t.Error("bad date should not parse")
	}
}
