package model

import (
	"encoding/json"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "2024-07-01", want: "2024-07-01"},
		{input: "2024-02-29", want: "2024-02-29"},
		{input: "2023-02-29", wantErr: true},
		{input: "2024-7-1", wantErr: true},
		{input: "07/01/2024", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDate_Arithmetic(t *testing.T) {
	d, _ := ParseDate("2024-12-31")

	if got := d.AddDays(1).String(); got != "2025-01-01" {
		t.Errorf("AddDays(1) = %s", got)
	}
	if got := d.AddDays(-366).String(); got != "2023-12-31" {
		t.Errorf("AddDays(-366) = %s", got)
	}
	if !d.Before(d.AddDays(1)) || d.Before(d) {
		t.Error("Before() is wrong")
	}
	if !d.AddDays(1).After(d) {
		t.Error("After() is wrong")
	}
	if (Date{}).String() != "" || !(Date{}).IsZero() {
		t.Error("zero Date should render empty")
	}
}

func TestDateOf_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	instant := time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC)

	if got := DateOf(instant.In(loc)).String(); got != "2024-06-16" {
		t.Errorf("DateOf() = %s, want 2024-06-16", got)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "17:00", want: NewTimeOfDay(17, 0)},
		{input: "00:00", want: 0},
		{input: "23:59", want: NewTimeOfDay(23, 59)},
		{input: "24:00", wantErr: true},
		{input: "7:00", wantErr: true},
		{input: "17:60", wantErr: true},
		{input: "17:00:00", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if IsTimeOfDay(tt.input) == tt.wantErr {
				t.Errorf("IsTimeOfDay(%q) disagrees with ParseTimeOfDay", tt.input)
			}
		})
	}
}

func TestTimeOfDay_Add(t *testing.T) {
	if got := NewTimeOfDay(21, 30).Add(30 * time.Minute).String(); got != "22:00" {
		t.Errorf("Add() = %s, want 22:00", got)
	}
}

func TestBooking_JSON(t *testing.T) {
	date, _ := ParseDate("2024-07-01")
	b := Booking{
		Code:       "TT-AB12C",
		Restaurant: "la-piazza",
		Date:       date,
		Time:       NewTimeOfDay(18, 30),
		Guests:     2,
		Name:       "Jo",
		Email:      "jo@x.com",
	}

	data, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if raw["date"] != "2024-07-01" || raw["time"] != "18:30" {
		t.Errorf("wire format = %s", data)
	}

	var back Booking
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal(Booking) error = %v", err)
	}
	if back.Date != b.Date || back.Time != b.Time {
		t.Errorf("decoded = %+v", back)
	}
}

func TestBooking_BSONStoresStrings(t *testing.T) {
	date, _ := ParseDate("2024-07-01")
	data, err := bson.Marshal(Booking{Code: "TT-AB12C", Date: date, Time: NewTimeOfDay(9, 5)})
	if err != nil {
		t.Fatalf("bson.Marshal() error = %v", err)
	}

	raw := bson.Raw(data)
	if got := raw.Lookup("date").StringValue(); got != "2024-07-01" {
		t.Errorf("date = %q", got)
	}
	if got := raw.Lookup("time").StringValue(); got != "09:05" {
		t.Errorf("time = %q", got)
	}

	var back Booking
	if err := bson.Unmarshal(data, &back); err != nil {
		t.Fatalf("bson.Unmarshal() error = %v", err)
	}
	if back.Date != date || back.Time != NewTimeOfDay(9, 5) {
		t.Errorf("decoded = %+v", back)
	}
}
