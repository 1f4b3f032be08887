package attendance

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"LMS-backend/internal/platform/i18n"
)

// ===== インターフェース群 =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Ledger: 勤怠台帳ストア
type Ledger interface {
	FindByUserAndDate(ctx context.Context, lmsUserID uint64, trainingDate string, includeDeleted bool) (*StudentAttendance, error)
	FindAllByUser(ctx context.Context, lmsUserID uint64, includeDeleted bool) ([]StudentAttendance, error)
	Insert(ctx context.Context, rec *StudentAttendance) (uint64, error)
	Update(ctx context.Context, rec *StudentAttendance) error
	NotEnteredCount(ctx context.Context, lmsUserID uint64, trainingDate string) (int, error)
}

// Schedule: 研修日・定刻のオラクル（コース側が実装）
type Schedule interface {
	IsWorkDay(ctx context.Context, courseID uint64, date string) (bool, error)
	// OfficialHours: 定刻の始業・終業（"HH:MM"）
	OfficialHours(ctx context.Context, courseID uint64, date string) (start, end string, err error)
}

// ===== 操作主体 =====

const RoleStudent = "student"

// Actor: 操作主体。ハンドラが認証済みクレームから組み立てて明示的に渡す。
// （ログインユーザをambientに持ち回らない）
type Actor struct {
	LMSUserID uint64
	AccountID uint64
	CourseID  uint64
	Role      string
}

func (a Actor) IsStudent() bool { return a.Role == RoleStudent }

// ===== Service本体 =====

// 完了メッセージのカタログキー
const MsgAttendanceUpdateNotice = "attendance.update.notice"

type Service struct {
	ledger   Ledger
	schedule Schedule
	clock    Clock
	id       IDGen
}

func NewService(ledger Ledger, schedule Schedule) *Service {
	return &Service{
		ledger:   ledger,
		schedule: schedule,
		clock:    realClock{},
		id:       ulidGen{},
	}
}

// today: clockのタイムゾーンでの本日。研修日付と打刻時刻は常に同じ瞬間・
// 同じゾーンから導出する（UTCに寄せると早朝打刻が前日に落ちる）。
func (s *Service) today() string {
	return s.clock.Now().Format(DateLayout)
}

func (s *Service) daySchedule(ctx context.Context, courseID uint64, date string) (DaySchedule, error) {
	startStr, endStr, err := s.schedule.OfficialHours(ctx, courseID, date)
	if err != nil {
		return DaySchedule{}, err
	}
	start, err := ParseTrainingTime(startStr)
	if err != nil {
		return DaySchedule{}, NewInternalError("broken official start time: " + startStr)
	}
	end, err := ParseTrainingTime(endStr)
	if err != nil {
		return DaySchedule{}, NewInternalError("broken official end time: " + endStr)
	}
	return DaySchedule{Start: start, End: end}, nil
}

// ===== 勤怠一覧 =====

// GetAttendanceManagement: 勤怠一覧の表示用プロジェクション。
// 中抜け時間の展開・ステータス表示名・本日行マークを付ける（読み取り専用）。
func (s *Service) GetAttendanceManagement(ctx context.Context, lmsUserID uint64) ([]AttendanceManagementResponse, error) {
	records, err := s.ledger.FindAllByUser(ctx, lmsUserID, false)
	if err != nil {
		return nil, err
	}
	today := s.today()

	out := make([]AttendanceManagementResponse, 0, len(records))
	for i := range records {
		rec := &records[i]
		res := AttendanceManagementResponse{
			StudentAttendanceID: rec.StudentAttendanceID,
			AttendanceULID:      rec.AttendanceULID,
			TrainingDate:        rec.TrainingDate,
			TrainingStartTime:   rec.TrainingStartTime,
			TrainingEndTime:     rec.TrainingEndTime,
			Status:              int(rec.Status),
			Note:                rec.Note,
			IsToday:             rec.TrainingDate == today,
		}
		if rec.BlankTime != nil {
			res.BlankTime = rec.BlankTime
			res.BlankTimeValue = BlankTimeValue(rec.BlankTime)
		}
		// 未知のステータスコードは表示名なしのまま返す
		if rec.Status.Known() {
			res.StatusDispName = i18n.T(ctx, rec.Status.MessageID())
		}
		out = append(out, res)
	}
	return out, nil
}

// BuildAttendanceForm: 一覧プロジェクションから一括編集フォームを組み立てる
func (s *Service) BuildAttendanceForm(lmsUserID uint64, list []AttendanceManagementResponse) AttendanceEditForm {
	form := AttendanceEditForm{
		LMSUserID:   lmsUserID,
		Attendances: make([]DailyAttendanceEdit, 0, len(list)),
		BlankTimes:  BlankTimeOptions(),
		Hours:       hourOptions(),
		Minutes:     minuteOptions(),
	}
	for i := range list {
		row := &list[i]
		edit := DailyAttendanceEdit{
			TrainingDate:        row.TrainingDate,
			TrainingStartHour:   extractHour(row.TrainingStartTime),
			TrainingStartMinute: extractMinute(row.TrainingStartTime),
			TrainingEndHour:     extractHour(row.TrainingEndTime),
			TrainingEndMinute:   extractMinute(row.TrainingEndTime),
			BlankTime:           row.BlankTime,
			Note:                row.Note,
			StatusDispName:      row.StatusDispName,
		}
		if row.StudentAttendanceID != 0 {
			id := row.StudentAttendanceID
			edit.StudentAttendanceID = &id
		}
		form.Attendances = append(form.Attendances, edit)
	}
	return form
}

// ===== 打刻 =====

// PunchCheck: 出退勤更新前のチェック。違反はDomainErrorで返し、一切更新しない。
func (s *Service) PunchCheck(ctx context.Context, actor Actor, punchType int) error {
	now := s.clock.Now()
	trainingDate := now.Format(DateLayout)

	// 権限チェック
	if !actor.IsStudent() {
		return NewAuthorizationError()
	}
	// 研修日チェック
	workDay, err := s.schedule.IsWorkDay(ctx, actor.CourseID, trainingDate)
	if err != nil {
		return err
	}
	if !workDay {
		return NewNotWorkDayError()
	}
	// 登録情報チェック
	rec, err := s.ledger.FindByUserAndDate(ctx, actor.LMSUserID, trainingDate, false)
	if err != nil {
		return err
	}
	switch punchType {
	case PunchTypeIn:
		if rec.clockedIn() {
			return NewAlreadyPunchedError()
		}
	case PunchTypeOut:
		if !rec.clockedIn() {
			return NewMissingClockInError()
		}
		if rec.clockedOut() {
			return NewAlreadyPunchedError()
		}
		start, err := ParseTrainingTime(rec.TrainingStartTime)
		if err != nil {
			return NewInternalError("broken start time on record: " + rec.TrainingStartTime)
		}
		end := NewTrainingTime(now)
		if start.After(end) {
			return NewInvalidTimeRangeError()
		}
	default:
		return NewInvalidArgumentError("unknown punch type")
	}
	return nil
}

// PunchIn: 出勤打刻。新規なら登録、既存行（未打刻）なら更新。
// 戻り値は完了メッセージのカタログキー。
func (s *Service) PunchIn(ctx context.Context, actor Actor) (string, error) {
	if err := s.PunchCheck(ctx, actor, PunchTypeIn); err != nil {
		return "", err
	}

	now := s.clock.Now()
	trainingDate := now.Format(DateLayout)
	start := NewTrainingTime(now)

	sched, err := s.daySchedule(ctx, actor.CourseID, trainingDate)
	if err != nil {
		return "", err
	}
	status := CalcStatus(&start, nil, sched)

	rec, err := s.ledger.FindByUserAndDate(ctx, actor.LMSUserID, trainingDate, false)
	if err != nil {
		return "", err
	}
	if rec == nil {
		// 登録処理
		uid, err := s.id.New()
		if err != nil {
			return "", err
		}
		rec = &StudentAttendance{
			AttendanceULID:    uid,
			LMSUserID:         actor.LMSUserID,
			AccountID:         actor.AccountID,
			TrainingDate:      trainingDate,
			TrainingStartTime: start.String(),
			TrainingEndTime:   "",
			Status:            status,
			BlankTime:         nil,
			Note:              "",
			DeleteFlg:         false,
			FirstCreateUser:   actor.LMSUserID,
			FirstCreateDate:   now,
			LastModifiedUser:  actor.LMSUserID,
			LastModifiedDate:  now,
		}
		if _, err := s.ledger.Insert(ctx, rec); err != nil {
			return "", err
		}
	} else {
		// 更新処理（他項目は保持したまま出勤時刻とステータスだけ上書き）
		rec.TrainingStartTime = start.String()
		rec.Status = status
		rec.DeleteFlg = false
		rec.LastModifiedUser = actor.LMSUserID
		rec.LastModifiedDate = now
		if err := s.ledger.Update(ctx, rec); err != nil {
			return "", err
		}
	}
	return MsgAttendanceUpdateNotice, nil
}

// PunchOut: 退勤打刻。保存済みの出勤時刻と現在時刻からステータスを再計算して更新。
func (s *Service) PunchOut(ctx context.Context, actor Actor) (string, error) {
	if err := s.PunchCheck(ctx, actor, PunchTypeOut); err != nil {
		return "", err
	}

	now := s.clock.Now()
	trainingDate := now.Format(DateLayout)

	rec, err := s.ledger.FindByUserAndDate(ctx, actor.LMSUserID, trainingDate, false)
	if err != nil {
		return "", err
	}
	if rec == nil {
		// チェック通過後に消えた場合のみ
		return "", NewMissingClockInError()
	}
	start, err := ParseTrainingTime(rec.TrainingStartTime)
	if err != nil {
		return "", NewInternalError("broken start time on record: " + rec.TrainingStartTime)
	}
	end := NewTrainingTime(now)

	sched, err := s.daySchedule(ctx, actor.CourseID, trainingDate)
	if err != nil {
		return "", err
	}

	rec.TrainingEndTime = end.String()
	rec.Status = CalcStatus(&start, &end, sched)
	rec.DeleteFlg = false
	rec.LastModifiedUser = actor.LMSUserID
	rec.LastModifiedDate = now
	if err := s.ledger.Update(ctx, rec); err != nil {
		return "", err
	}
	return MsgAttendanceUpdateNotice, nil
}

// NotEnteredCount: 本日までの未入力件数。ストアのエラーはそのまま返す
// （0に黙って倒さない）。
func (s *Service) NotEnteredCount(ctx context.Context, lmsUserID uint64) (int, error) {
	return s.ledger.NotEnteredCount(ctx, lmsUserID, s.today())
}

// ===== 一括編集（勤怠登録・更新） =====

// Reconcile: 編集行を既存台帳へマージする。行ごとに独立で、idが一致すれば更新、
// 見つからなければ新規登録に落とす（失敗にしない）。
func (s *Service) Reconcile(ctx context.Context, actor Actor, req ReconcileRequest) (string, error) {
	// 受講生本人は自分の行のみ。特権編集時は対象ユーザとそのコースを明示させる
	// （編集者自身のコースの定刻で判定しない）。
	lmsUserID := actor.LMSUserID
	courseID := actor.CourseID
	if !actor.IsStudent() {
		if req.LMSUserID == 0 {
			return "", NewInvalidArgumentError("lms_user_id is required")
		}
		if req.CourseID == 0 {
			return "", NewInvalidArgumentError("course_id is required")
		}
		lmsUserID = req.LMSUserID
		courseID = req.CourseID
	}

	existing, err := s.ledger.FindAllByUser(ctx, lmsUserID, false)
	if err != nil {
		return "", err
	}
	byID := make(map[uint64]*StudentAttendance, len(existing))
	for i := range existing {
		byID[existing[i].StudentAttendanceID] = &existing[i]
	}

	now := s.clock.Now()
	absentLabel := i18n.T(ctx, StatusAbsent.MessageID())

	// 先に全行を検証してから書き込む。後ろの行の不正で途中まで書いた状態を残さない。
	starts := make([]string, len(req.Attendances))
	ends := make([]string, len(req.Attendances))
	for i := range req.Attendances {
		edit := &req.Attendances[i]
		if _, err := time.Parse(DateLayout, edit.TrainingDate); err != nil {
			return "", NewDateParseError(edit.TrainingDate)
		}
		startStr, err := combineHourMinute(edit.TrainingStartHour, edit.TrainingStartMinute)
		if err != nil {
			return "", err
		}
		endStr, err := combineHourMinute(edit.TrainingEndHour, edit.TrainingEndMinute)
		if err != nil {
			return "", err
		}
		starts[i], ends[i] = startStr, endStr
	}

	for i := range req.Attendances {
		edit := &req.Attendances[i]
		startStr, endStr := starts[i], ends[i]

		// id一致で既存行を引く。見つからなければ新規扱い。
		var rec StudentAttendance
		if edit.StudentAttendanceID != nil {
			if found, ok := byID[*edit.StudentAttendanceID]; ok {
				rec = *found
			}
		}

		// 出退勤時刻・ステータス以外を明示的に詰め替える
		rec.LMSUserID = lmsUserID
		rec.AccountID = actor.AccountID
		rec.TrainingDate = edit.TrainingDate
		rec.Note = edit.Note
		rec.BlankTime = edit.BlankTime
		rec.DeleteFlg = false

		rec.TrainingStartTime = startStr
		rec.TrainingEndTime = endStr

		// ステータス判定: 欠席ラベル > 時刻からの算出 > なし
		switch {
		case edit.StatusDispName == absentLabel && absentLabel != "":
			rec.Status = StatusAbsent
		case startStr != "" || endStr != "":
			var start, end *TrainingTime
			if startStr != "" {
				t, _ := ParseTrainingTime(startStr)
				start = &t
			}
			if endStr != "" {
				t, _ := ParseTrainingTime(endStr)
				end = &t
			}
			sched, err := s.daySchedule(ctx, courseID, edit.TrainingDate)
			if err != nil {
				return "", err
			}
			rec.Status = CalcStatus(start, end, sched)
		default:
			rec.Status = StatusNone
		}

		// 更新者・更新日時
		rec.LastModifiedUser = actor.LMSUserID
		rec.LastModifiedDate = now

		if rec.StudentAttendanceID == 0 {
			// 新規登録の場合のみ初回作成者と日時を設定
			uid, err := s.id.New()
			if err != nil {
				return "", err
			}
			rec.AttendanceULID = uid
			rec.FirstCreateUser = actor.LMSUserID
			rec.FirstCreateDate = now
			if _, err := s.ledger.Insert(ctx, &rec); err != nil {
				return "", err
			}
		} else {
			if err := s.ledger.Update(ctx, &rec); err != nil {
				return "", err
			}
		}
	}

	return MsgAttendanceUpdateNotice, nil
}

// combineHourMinute: 時・分が両方入力されたときだけ "HH:MM" を返す。
// 片方のみ・未入力は空文字（未設定）。
func combineHourMinute(hour, minute *int) (string, error) {
	if hour == nil || minute == nil {
		return "", nil
	}
	if *hour < 0 || *hour > 23 || *minute < 0 || *minute > 59 {
		return "", NewInvalidArgumentError("hour/minute out of range")
	}
	return FromHourMinute(*hour, *minute).String(), nil
}
