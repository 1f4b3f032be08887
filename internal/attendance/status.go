package attendance

import "time"

// ===== 遅刻早退ステータス =====

type Status int

const (
	StatusNone              Status = 0 // 出退勤とも未入力
	StatusNormal            Status = 1
	StatusLate              Status = 2
	StatusLeaveEarly        Status = 3
	StatusLateAndLeaveEarly Status = 4
	StatusAbsent            Status = 5 // 欠席は明示指定のみ（算出されない）
)

var statusMsgIDs = map[Status]string{
	StatusNone:              "attendance.status.none",
	StatusNormal:            "attendance.status.normal",
	StatusLate:              "attendance.status.late",
	StatusLeaveEarly:        "attendance.status.leave_early",
	StatusLateAndLeaveEarly: "attendance.status.late_and_leave_early",
	StatusAbsent:            "attendance.status.absent",
}

// MessageID: ステータス表示名のメッセージキー。未知コードは空文字。
func (s Status) MessageID() string { return statusMsgIDs[s] }

func (s Status) Known() bool {
	_, ok := statusMsgIDs[s]
	return ok
}

// DaySchedule: 研修日の定刻（コース・日付ごとにスケジュール側が決める）
type DaySchedule struct {
	Start TrainingTime
	End   TrainingTime
}

// CalcStatus: 出退勤時刻と定刻からステータスを算出する。純粋関数、失敗しない。
// 片側のみ入力の場合はその側だけ判定する（もう一方の欠落は違反にしない）。
func CalcStatus(start, end *TrainingTime, sched DaySchedule) Status {
	if start == nil && end == nil {
		return StatusNone
	}
	late := start != nil && start.After(sched.Start)
	early := end != nil && end.Before(sched.End)
	switch {
	case late && early:
		return StatusLateAndLeaveEarly
	case late:
		return StatusLate
	case early:
		return StatusLeaveEarly
	default:
		return StatusNormal
	}
}

// ===== 中抜け時間 =====

// コード→中抜け分数の固定テーブル。表示専用でステータス判定には使わない。
var blankTimeMinutes = map[int]int{
	0: 0,
	1: 30,
	2: 60,
	3: 90,
	4: 120,
}

// BlankTimeDuration: 中抜けコードを表示用のDurationへ展開。
// nil・未知コードは 0 に落とす（エラーにしない）。
func BlankTimeDuration(code *int) time.Duration {
	if code == nil {
		return 0
	}
	m, ok := blankTimeMinutes[*code]
	if !ok {
		return 0
	}
	return time.Duration(m) * time.Minute
}

// BlankTimeValue: "H:MM" 形式の表示文字列（例: 1:30）
func BlankTimeValue(code *int) string {
	d := BlankTimeDuration(code)
	return FromHourMinute(int(d/time.Hour), int(d%time.Hour/time.Minute)).String()
}

// BlankTimeOptions: 編集フォームのプルダウン用（コード昇順）
func BlankTimeOptions() []BlankTimeOption {
	out := make([]BlankTimeOption, 0, len(blankTimeMinutes))
	for code := 0; code < len(blankTimeMinutes); code++ {
		out = append(out, BlankTimeOption{Code: code, Value: BlankTimeValue(&code)})
	}
	return out
}
