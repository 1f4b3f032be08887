package course

import (
	"context"
	"database/sql"
	"strings"
)

type DBTX interface {
	ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row
}

type Store struct{ db DBTX }

func NewStore(db DBTX) *Store { return &Store{db: db} }

func (s *Store) ListCourses(ctx context.Context, includeDisabled bool) ([]Course, error) {
	q := `
	SELECT course_id, course_name, course_code, official_start_time, official_end_time, is_disabled
	FROM courses`
	if !includeDisabled {
		q += ` WHERE is_disabled = 0`
	}
	q += ` ORDER BY course_id`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]Course, 0, 16)
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.CourseID, &c.CourseName, &c.CourseCode,
			&c.OfficialStartTime, &c.OfficialEndTime, &c.IsDisabled); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (s *Store) GetCourseByID(ctx context.Context, id uint64) (*Course, error) {
	const q = `
	SELECT course_id, course_name, course_code, official_start_time, official_end_time, is_disabled
	FROM courses
	WHERE course_id = ?`

	var c Course
	err := s.db.QueryRowContext(ctx, q, id).Scan(&c.CourseID, &c.CourseName, &c.CourseCode,
		&c.OfficialStartTime, &c.OfficialEndTime, &c.IsDisabled)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CreateCourse(ctx context.Context, req CreateCourseRequest) (*Course, error) {
	const q = `
	INSERT INTO courses (course_name, course_code, official_start_time, official_end_time, is_disabled)
	VALUES (?, ?, ?, ?, 0)`

	res, err := s.db.ExecContext(ctx, q, req.CourseName, req.CourseCode,
		req.OfficialStartTime, req.OfficialEndTime)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetCourseByID(ctx, uint64(id))
}

func (s *Store) UpdateCourse(ctx context.Context, id uint64, req UpdateCourseRequest) error {
	const q = `
	UPDATE courses
	SET course_name = ?, course_code = ?, official_start_time = ?, official_end_time = ?, is_disabled = ?
	WHERE course_id = ?`

	res, err := s.db.ExecContext(ctx, q, req.CourseName, req.CourseCode,
		req.OfficialStartTime, req.OfficialEndTime, req.IsDisabled, id)
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) DisableCourse(ctx context.Context, id uint64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE courses SET is_disabled = 1 WHERE course_id = ?`, id)
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ===== 研修カレンダー =====

// AddWorkDays: 重複日付は黙って上書き（INSERT IGNORE）
func (s *Store) AddWorkDays(ctx context.Context, courseID uint64, dates []string) error {
	if len(dates) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString(`INSERT IGNORE INTO course_workdays (course_id, training_date) VALUES `)
	args := make([]any, 0, len(dates)*2)
	for i, d := range dates {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(?, ?)")
		args = append(args, courseID, d)
	}
	_, err := s.db.ExecContext(ctx, b.String(), args...)
	return err
}

func (s *Store) RemoveWorkDay(ctx context.Context, courseID uint64, date string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM course_workdays WHERE course_id = ? AND training_date = ?`, courseID, date)
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) ListWorkDays(ctx context.Context, courseID uint64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT DATE_FORMAT(training_date, '%Y-%m-%d')
	FROM course_workdays
	WHERE course_id = ?
	ORDER BY training_date`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) IsWorkDay(ctx context.Context, courseID uint64, date string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
	SELECT 1 FROM course_workdays
	WHERE course_id = ? AND training_date = ? LIMIT 1`, courseID, date).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
