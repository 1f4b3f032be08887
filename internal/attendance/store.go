package attendance

import (
	"context"
	"database/sql"
	"errors"

	mysql "github.com/go-sql-driver/mysql"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

// Store: student_attendances テーブルの台帳ストア（Ledger実装）
type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

const attendanceColumns = `
	student_attendance_id, attendance_ulid, lms_user_id, account_id,
	DATE_FORMAT(training_date, '%Y-%m-%d') AS training_date,
	training_start_time, training_end_time, status, blank_time, note,
	delete_flg, first_create_user, first_create_date, last_modified_user, last_modified_date`

func scanAttendance(scan func(dest ...any) error) (StudentAttendance, error) {
	var r studentAttendanceRow
	err := scan(
		&r.StudentAttendanceID, &r.AttendanceULID, &r.LMSUserID, &r.AccountID,
		&r.TrainingDate, &r.TrainingStartTime, &r.TrainingEndTime, &r.Status,
		&r.BlankTime, &r.Note, &r.DeleteFlg,
		&r.FirstCreateUser, &r.FirstCreateDate, &r.LastModifiedUser, &r.LastModifiedDate,
	)
	if err != nil {
		return StudentAttendance{}, err
	}
	return r.toModel(), nil
}

// FindByUserAndDate: (lms_user_id, training_date) は非削除行で一意
func (s *Store) FindByUserAndDate(ctx context.Context, lmsUserID uint64, trainingDate string, includeDeleted bool) (*StudentAttendance, error) {
	q := `SELECT ` + attendanceColumns + `
	FROM student_attendances
	WHERE lms_user_id = ? AND training_date = ?`
	if !includeDeleted {
		q += ` AND delete_flg = 0`
	}
	rec, err := scanAttendance(s.db.QueryRowContext(ctx, q, lmsUserID, trainingDate).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindAllByUser: 研修日昇順
func (s *Store) FindAllByUser(ctx context.Context, lmsUserID uint64, includeDeleted bool) ([]StudentAttendance, error) {
	q := `SELECT ` + attendanceColumns + `
	FROM student_attendances
	WHERE lms_user_id = ?`
	if !includeDeleted {
		q += ` AND delete_flg = 0`
	}
	q += ` ORDER BY training_date ASC, student_attendance_id ASC`

	rows, err := s.db.QueryContext(ctx, q, lmsUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StudentAttendance
	for rows.Next() {
		rec, err := scanAttendance(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Insert: 新規登録。UNIQUE(lms_user_id, training_date) 違反は
// 打刻競合として ALREADY_PUNCHED に写像する（業務エラーと区別した上で同じ扱いにする）。
func (s *Store) Insert(ctx context.Context, rec *StudentAttendance) (uint64, error) {
	const q = `
	INSERT INTO student_attendances
	(attendance_ulid, lms_user_id, account_id, training_date,
	 training_start_time, training_end_time, status, blank_time, note,
	 delete_flg, first_create_user, first_create_date, last_modified_user, last_modified_date)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, q,
		rec.AttendanceULID, rec.LMSUserID, rec.AccountID, rec.TrainingDate,
		rec.TrainingStartTime, rec.TrainingEndTime, int(rec.Status),
		blankTimeOrNil(rec.BlankTime), noteOrNil(rec.Note),
		rec.DeleteFlg, rec.FirstCreateUser, rec.FirstCreateDate,
		rec.LastModifiedUser, rec.LastModifiedDate,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, NewAlreadyPunchedError()
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	rec.StudentAttendanceID = uint64(id)
	return rec.StudentAttendanceID, nil
}

func (s *Store) Update(ctx context.Context, rec *StudentAttendance) error {
	const q = `
	UPDATE student_attendances SET
	 lms_user_id = ?, account_id = ?, training_date = ?,
	 training_start_time = ?, training_end_time = ?, status = ?, blank_time = ?, note = ?,
	 delete_flg = ?, last_modified_user = ?, last_modified_date = ?
	WHERE student_attendance_id = ?`

	res, err := s.db.ExecContext(ctx, q,
		rec.LMSUserID, rec.AccountID, rec.TrainingDate,
		rec.TrainingStartTime, rec.TrainingEndTime, int(rec.Status),
		blankTimeOrNil(rec.BlankTime), noteOrNil(rec.Note),
		rec.DeleteFlg, rec.LastModifiedUser, rec.LastModifiedDate,
		rec.StudentAttendanceID,
	)
	if err != nil {
		return err
	}
	if aff, err := res.RowsAffected(); err == nil && aff == 0 {
		// 変更なし更新(aff=0)と不在は区別できないため存在確認で確定させる
		var one int
		err := s.db.QueryRowContext(ctx,
			`SELECT 1 FROM student_attendances WHERE student_attendance_id = ? LIMIT 1`,
			rec.StudentAttendanceID,
		).Scan(&one)
		if err == sql.ErrNoRows {
			return NewNotFoundError("attendance not found")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// NotEnteredCount: 本日までの未入力件数（出勤未入力の非削除行）
func (s *Store) NotEnteredCount(ctx context.Context, lmsUserID uint64, trainingDate string) (int, error) {
	const q = `
	SELECT COUNT(*) FROM student_attendances
	WHERE lms_user_id = ? AND training_date <= ?
	AND training_start_time = '' AND delete_flg = 0`

	var n int
	if err := s.db.QueryRowContext(ctx, q, lmsUserID, trainingDate).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ===== helpers =====

func noteOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func blankTimeOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}
