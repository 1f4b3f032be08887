package attendance

const (
	DateLayout = "2006-01-02"

	// 打刻種別
	PunchTypeIn  = 1 // 出勤
	PunchTypeOut = 2 // 退勤
)

// 勤怠管理画面 1行分の表示用DTO
type AttendanceManagementResponse struct {
	StudentAttendanceID uint64 `json:"student_attendance_id"`
	AttendanceULID      string `json:"attendance_ulid"`
	TrainingDate        string `json:"training_date"` // YYYY-MM-DD
	TrainingStartTime   string `json:"training_start_time,omitempty"`
	TrainingEndTime     string `json:"training_end_time,omitempty"`
	Status              int    `json:"status"`
	StatusDispName      string `json:"status_disp_name,omitempty"`
	BlankTime           *int   `json:"blank_time,omitempty"`
	BlankTimeValue      string `json:"blank_time_value,omitempty"`
	Note                string `json:"note,omitempty"`
	IsToday             bool   `json:"is_today"`
}

// 日次勤怠の編集行（一括編集の入力）
type DailyAttendanceEdit struct {
	StudentAttendanceID *uint64 `json:"student_attendance_id,omitempty"` // nil = 新規行
	TrainingDate        string  `json:"training_date" binding:"required"`
	TrainingStartHour   *int    `json:"training_start_hour,omitempty"`
	TrainingStartMinute *int    `json:"training_start_minute,omitempty"`
	TrainingEndHour     *int    `json:"training_end_hour,omitempty"`
	TrainingEndMinute   *int    `json:"training_end_minute,omitempty"`
	BlankTime           *int    `json:"blank_time,omitempty"`
	Note                string  `json:"note,omitempty"`
	// 画面上のステータス表示名。欠席ラベルと一致したときのみ意味を持つ。
	StatusDispName string `json:"status_disp_name,omitempty"`
}

// 一括編集の送信単位
type ReconcileRequest struct {
	// 特権編集時の対象ユーザとコース。受講生本人の編集では無視され本人の値を使う。
	LMSUserID   uint64                `json:"lms_user_id,omitempty"`
	CourseID    uint64                `json:"course_id,omitempty"`
	Attendances []DailyAttendanceEdit `json:"attendances" binding:"required"`
}

type BlankTimeOption struct {
	Code  int    `json:"code"`
	Value string `json:"value"` // "HH:MM"
}

// 編集フォーム（一覧から組み立てて返す）
type AttendanceEditForm struct {
	LMSUserID   uint64                `json:"lms_user_id"`
	Attendances []DailyAttendanceEdit `json:"attendances"`
	BlankTimes  []BlankTimeOption     `json:"blank_times"`
	Hours       []int                 `json:"hours"`
	Minutes     []int                 `json:"minutes"`
}

// 打刻結果（確認メッセージ）
type PunchResponse struct {
	Message string `json:"message"`
}

type NotEnteredCountResponse struct {
	Count int `json:"count"`
}

// フォームのプルダウン用
func hourOptions() []int {
	out := make([]int, 24)
	for i := range out {
		out[i] = i
	}
	return out
}

func minuteOptions() []int {
	out := make([]int, 60)
	for i := range out {
		out[i] = i
	}
	return out
}

// "HH:MM" から時・分を取り出す（未入力は nil）
func extractHour(s string) *int {
	t, err := ParseTrainingTime(s)
	if err != nil {
		return nil
	}
	h := t.Hour()
	return &h
}

func extractMinute(s string) *int {
	t, err := ParseTrainingTime(s)
	if err != nil {
		return nil
	}
	m := t.Minute()
	return &m
}
