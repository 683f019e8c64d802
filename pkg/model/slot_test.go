package model

import (
	"testing"
	"time"
)

func TestSlotTemplate_Slots(t *testing.T) {
	tmpl := SlotTemplate{Start: NewTimeOfDay(17, 0), End: NewTimeOfDay(22, 0), Interval: 30 * time.Minute}

	slots := tmpl.Slots()
	if len(slots) != 11 {
		t.Fatalf("len(Slots()) = %d, want 11", len(slots))
	}
	if slots[0].String() != "17:00" || slots[10].String() != "22:00" {
		t.Errorf("Slots() = %v", slots)
	}
	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Fatalf("slots not ascending at %d: %v", i, slots)
		}
	}
}

func TestSlotTemplate_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		tmpl SlotTemplate
	}{
		{name: "zero interval", tmpl: SlotTemplate{Start: NewTimeOfDay(17, 0), End: NewTimeOfDay(22, 0)}},
		{name: "end before start", tmpl: SlotTemplate{Start: NewTimeOfDay(22, 0), End: NewTimeOfDay(17, 0), Interval: 30 * time.Minute}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if slots := tt.tmpl.Slots(); slots == nil || len(slots) != 0 {
				t.Errorf("Slots() = %v, want empty non-nil", slots)
			}
		})
	}
}

func TestSlotTemplate_Contains(t *testing.T) {
	tmpl := SlotTemplate{Start: NewTimeOfDay(17, 0), End: NewTimeOfDay(22, 0), Interval: 30 * time.Minute}

	tests := []struct {
		time string
		want bool
	}{
		{time: "17:00", want: true},
		{time: "19:30", want: true},
		{time: "22:00", want: true},
		{time: "17:15", want: false},
		{time: "16:30", want: false},
		{time: "22:30", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			tod, err := ParseTimeOfDay(tt.time)
			if err != nil {
				t.Fatalf("ParseTimeOfDay() error = %v", err)
			}
			if got := tmpl.Contains(tod); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", tt.time, got, tt.want)
			}
		})
	}
}

func TestBookingFilter_Matches(t *testing.T) {
	date, _ := ParseDate("2024-07-01")
	other, _ := ParseDate("2024-07-02")
	email := "JO@X.COM"
	b := &Booking{Date: date, Email: "jo@x.com"}

	tests := []struct {
		name   string
		filter BookingFilter
		want   bool
	}{
		{name: "empty filter", filter: BookingFilter{}, want: true},
		{name: "email case-insensitive", filter: BookingFilter{Email: &email}, want: true},
		{name: "date match", filter: BookingFilter{Date: &date}, want: true},
		{name: "date mismatch", filter: BookingFilter{Date: &other}, want: false},
		{name: "both", filter: BookingFilter{Date: &date, Email: &email}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(b); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
