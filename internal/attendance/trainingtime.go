package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TrainingTime: 研修時刻（時:分）。日付を持たず、0時からの経過分のみで比較する。
type TrainingTime struct {
	minutes int
}

// NewTrainingTime: 現在時刻から生成（秒以下切り捨て）
func NewTrainingTime(now time.Time) TrainingTime {
	return TrainingTime{minutes: now.Hour()*60 + now.Minute()}
}

// ParseTrainingTime: "H:MM" / "HH:MM" をパース
func ParseTrainingTime(s string) (TrainingTime, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return TrainingTime{}, fmt.Errorf("invalid training time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TrainingTime{}, fmt.Errorf("invalid training time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TrainingTime{}, fmt.Errorf("invalid training time %q", s)
	}
	return TrainingTime{minutes: h*60 + m}, nil
}

func FromHourMinute(hour, minute int) TrainingTime {
	return TrainingTime{minutes: hour*60 + minute}
}

func (t TrainingTime) Hour() int    { return t.minutes / 60 }
func (t TrainingTime) Minute() int  { return t.minutes % 60 }
func (t TrainingTime) Minutes() int { return t.minutes }

// Compare: t < o なら負、t > o なら正、等しければ 0
func (t TrainingTime) Compare(o TrainingTime) int { return t.minutes - o.minutes }

func (t TrainingTime) Before(o TrainingTime) bool { return t.minutes < o.minutes }
func (t TrainingTime) After(o TrainingTime) bool  { return t.minutes > o.minutes }

// String: "HH:MM" に整形（DB格納形式と同一）
func (t TrainingTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
