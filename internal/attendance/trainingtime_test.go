package attendance

import (
	"testing"
	"time"
)

func TestParseTrainingTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		minutes int
		wantErr bool
	}{
		{in: "09:30", want: "09:30", minutes: 570},
		{in: "9:30", want: "09:30", minutes: 570},
		{in: "0:00", want: "00:00", minutes: 0},
		{in: "23:59", want: "23:59", minutes: 1439},
		{in: "", wantErr: true},
		{in: "930", wantErr: true},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "-1:30", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTrainingTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTrainingTime(%q): error expected, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTrainingTime(%q): %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseTrainingTime(%q).String() = %q, want %q", tt.in, got.String(), tt.want)
		}
		if got.Minutes() != tt.minutes {
			t.Errorf("ParseTrainingTime(%q).Minutes() = %d, want %d", tt.in, got.Minutes(), tt.minutes)
		}
	}
}

func TestTrainingTimeRoundTrip(t *testing.T) {
	got, err := ParseTrainingTime("09:30")
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "09:30" {
		t.Errorf("round trip = %q, want 09:30", got.String())
	}
}

func TestNewTrainingTimeTruncatesToMinute(t *testing.T) {
	now := time.Date(2024, 4, 1, 9, 5, 59, 123456, time.UTC)
	tt := NewTrainingTime(now)
	if tt.String() != "09:05" {
		t.Errorf("NewTrainingTime = %q, want 09:05", tt.String())
	}
}

func TestTrainingTimeCompare(t *testing.T) {
	a := FromHourMinute(9, 0)
	b := FromHourMinute(9, 5)
	c := FromHourMinute(9, 0)

	if !a.Before(b) || b.Before(a) {
		t.Error("09:00 should be before 09:05")
	}
	if !b.After(a) {
		t.Error("09:05 should be after 09:00")
	}
	if a.Compare(c) != 0 {
		t.Error("equal minute values should compare equal")
	}
	if a.After(c) || a.Before(c) {
		t.Error("equal minute values should be neither before nor after")
	}
}
