package attendance

import (
	"database/sql"
	"time"
)

// DB行に対応（スキャン用）
type studentAttendanceRow struct {
	StudentAttendanceID uint64
	AttendanceULID      string
	LMSUserID           uint64
	AccountID           uint64
	TrainingDate        string // DATE → "YYYY-MM-DD"
	TrainingStartTime   string // "HH:MM"、未入力は ""
	TrainingEndTime     string
	Status              int
	BlankTime           sql.NullInt64
	Note                sql.NullString
	DeleteFlg           bool
	FirstCreateUser     uint64
	FirstCreateDate     time.Time
	LastModifiedUser    uint64
	LastModifiedDate    time.Time
}

// Service ↔ Store で使うモデル
type StudentAttendance struct {
	StudentAttendanceID uint64 // 0 = 未採番（INSERT前）
	AttendanceULID      string
	LMSUserID           uint64
	AccountID           uint64
	TrainingDate        string
	TrainingStartTime   string
	TrainingEndTime     string
	Status              Status
	BlankTime           *int
	Note                string
	DeleteFlg           bool
	FirstCreateUser     uint64
	FirstCreateDate     time.Time
	LastModifiedUser    uint64
	LastModifiedDate    time.Time
}

func (r studentAttendanceRow) toModel() StudentAttendance {
	m := StudentAttendance{
		StudentAttendanceID: r.StudentAttendanceID,
		AttendanceULID:      r.AttendanceULID,
		LMSUserID:           r.LMSUserID,
		AccountID:           r.AccountID,
		TrainingDate:        r.TrainingDate,
		TrainingStartTime:   r.TrainingStartTime,
		TrainingEndTime:     r.TrainingEndTime,
		Status:              Status(r.Status),
		DeleteFlg:           r.DeleteFlg,
		FirstCreateUser:     r.FirstCreateUser,
		FirstCreateDate:     r.FirstCreateDate.UTC(),
		LastModifiedUser:    r.LastModifiedUser,
		LastModifiedDate:    r.LastModifiedDate.UTC(),
	}
	if r.BlankTime.Valid {
		v := int(r.BlankTime.Int64)
		m.BlankTime = &v
	}
	if r.Note.Valid {
		m.Note = r.Note.String
	}
	return m
}

// 出退勤の入力状態（本日分の状態遷移判定用）
func (a *StudentAttendance) clockedIn() bool  { return a != nil && a.TrainingStartTime != "" }
func (a *StudentAttendance) clockedOut() bool { return a != nil && a.TrainingEndTime != "" }
