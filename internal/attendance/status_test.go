package attendance

import (
	"testing"
	"time"
)

func tp(h, m int) *TrainingTime {
	t := FromHourMinute(h, m)
	return &t
}

func TestCalcStatus(t *testing.T) {
	// 定刻 09:00 - 18:00
	sched := DaySchedule{Start: FromHourMinute(9, 0), End: FromHourMinute(18, 0)}

	tests := []struct {
		name  string
		start *TrainingTime
		end   *TrainingTime
		want  Status
	}{
		{name: "both nil", start: nil, end: nil, want: StatusNone},
		{name: "on time both", start: tp(9, 0), end: tp(18, 0), want: StatusNormal},
		{name: "early start late end", start: tp(8, 30), end: tp(19, 0), want: StatusNormal},
		{name: "late start", start: tp(9, 5), end: tp(18, 0), want: StatusLate},
		{name: "late start no end", start: tp(9, 5), end: nil, want: StatusLate},
		{name: "start exactly official no end", start: tp(9, 0), end: nil, want: StatusNormal},
		{name: "early leave", start: tp(9, 0), end: tp(17, 59), want: StatusLeaveEarly},
		{name: "early leave no start", start: nil, end: tp(17, 0), want: StatusLeaveEarly},
		{name: "end exactly official no start", start: nil, end: tp(18, 0), want: StatusNormal},
		{name: "late and early leave", start: tp(9, 30), end: tp(17, 0), want: StatusLateAndLeaveEarly},
		{name: "end after official no start", start: nil, end: tp(18, 30), want: StatusNormal},
	}
	for _, tt := range tests {
		if got := CalcStatus(tt.start, tt.end, sched); got != tt.want {
			t.Errorf("%s: CalcStatus = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStatusMessageID(t *testing.T) {
	if !StatusAbsent.Known() {
		t.Error("ABSENT should be a known status")
	}
	if Status(99).Known() {
		t.Error("unknown code should not be known")
	}
	if Status(99).MessageID() != "" {
		t.Error("unknown code should have no message id")
	}
}

func TestBlankTimeDuration(t *testing.T) {
	codeOf := func(c int) *int { return &c }

	tests := []struct {
		name string
		code *int
		want time.Duration
	}{
		{name: "nil", code: nil, want: 0},
		{name: "no break", code: codeOf(0), want: 0},
		{name: "30min", code: codeOf(1), want: 30 * time.Minute},
		{name: "60min", code: codeOf(2), want: time.Hour},
		{name: "unknown code", code: codeOf(42), want: 0},
		{name: "negative code", code: codeOf(-1), want: 0},
	}
	for _, tt := range tests {
		if got := BlankTimeDuration(tt.code); got != tt.want {
			t.Errorf("%s: BlankTimeDuration = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBlankTimeValue(t *testing.T) {
	three := 3
	if got := BlankTimeValue(&three); got != "01:30" {
		t.Errorf("BlankTimeValue(3) = %q, want 01:30", got)
	}
	if got := BlankTimeValue(nil); got != "00:00" {
		t.Errorf("BlankTimeValue(nil) = %q, want 00:00", got)
	}
}

func TestBlankTimeOptions(t *testing.T) {
	opts := BlankTimeOptions()
	if len(opts) != len(blankTimeMinutes) {
		t.Fatalf("options = %d, want %d", len(opts), len(blankTimeMinutes))
	}
	for i, o := range opts {
		if o.Code != i {
			t.Errorf("option %d has code %d", i, o.Code)
		}
	}
}
