package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	mysql "github.com/go-sql-driver/mysql"

	"LMS-backend/internal/platform/db"
)

// ===== Error model =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrConflict(msg string) *APIError { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}

// ===== Service =====

type Service struct {
	db    *sql.DB
	store *Store
}

func NewService(db *sql.DB) *Service { return &Service{db: db, store: NewStore(db)} }

func parseBoolish(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	return s == "1" || s == "true" || s == "yes" || s == "all"
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func normalizeCourseCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrInvalid("code is required")
	}
	return code, nil
}

func normalizeCourseName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalid("name is required")
	}
	return name, nil
}

func validateOfficialTime(s string) error {
	if _, err := time.Parse(timeLayout, s); err != nil {
		return ErrInvalid("official time must be HH:MM")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return ErrInvalid("date must be YYYY-MM-DD")
	}
	return nil
}

// ===== courses =====

func (s *Service) ListCourses(ctx context.Context, all string) ([]Course, error) {
	return s.store.ListCourses(ctx, parseBoolish(all))
}

func (s *Service) GetCourse(ctx context.Context, id uint64) (*Course, error) {
	c, err := s.store.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("course not found")
		}
		return nil, ErrInternal("failed to get course")
	}
	return c, nil
}

func (s *Service) CreateCourse(ctx context.Context, req CreateCourseRequest) (*Course, error) {
	name, err := normalizeCourseName(req.CourseName)
	if err != nil {
		return nil, err
	}
	code, err := normalizeCourseCode(req.CourseCode)
	if err != nil {
		return nil, err
	}
	if err := validateOfficialTime(req.OfficialStartTime); err != nil {
		return nil, err
	}
	if err := validateOfficialTime(req.OfficialEndTime); err != nil {
		return nil, err
	}
	req.CourseName, req.CourseCode = name, code

	c, err := s.store.CreateCourse(ctx, req)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrConflict("course_code already exists")
		}
		return nil, ErrInternal("failed to create course")
	}
	return c, nil
}

func (s *Service) UpdateCourse(ctx context.Context, id uint64, req UpdateCourseRequest) (*Course, error) {
	name, err := normalizeCourseName(req.CourseName)
	if err != nil {
		return nil, err
	}
	code, err := normalizeCourseCode(req.CourseCode)
	if err != nil {
		return nil, err
	}
	if err := validateOfficialTime(req.OfficialStartTime); err != nil {
		return nil, err
	}
	if err := validateOfficialTime(req.OfficialEndTime); err != nil {
		return nil, err
	}
	req.CourseName, req.CourseCode = name, code

	if err := s.store.UpdateCourse(ctx, id, req); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound("course not found")
		}
		if isDuplicateKey(err) {
			return nil, ErrConflict("course_code already exists")
		}
		return nil, ErrInternal("failed to update course")
	}
	return s.GetCourse(ctx, id)
}

func (s *Service) DeleteCourse(ctx context.Context, id uint64) error {
	if err := s.store.DisableCourse(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound("course not found")
		}
		return ErrInternal("failed to delete course")
	}
	return nil
}

// ===== 研修カレンダー =====

// AddWorkDays: コース存在確認と日付登録を1トランザクションで行う
func (s *Service) AddWorkDays(ctx context.Context, courseID uint64, req AddWorkDaysRequest) (*WorkDaysResponse, error) {
	for _, d := range req.Dates {
		if err := validateDate(d); err != nil {
			return nil, err
		}
	}
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		st := NewStore(tx)
		if _, err := st.GetCourseByID(ctx, courseID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound("course not found")
			}
			return err
		}
		return st.AddWorkDays(ctx, courseID, req.Dates)
	})
	if err != nil {
		var api *APIError
		if errors.As(err, &api) {
			return nil, api
		}
		return nil, ErrInternal("failed to add work days")
	}
	return s.ListWorkDays(ctx, courseID)
}

func (s *Service) RemoveWorkDay(ctx context.Context, courseID uint64, date string) error {
	if err := validateDate(date); err != nil {
		return err
	}
	if err := s.store.RemoveWorkDay(ctx, courseID, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound("work day not found")
		}
		return ErrInternal("failed to remove work day")
	}
	return nil
}

func (s *Service) ListWorkDays(ctx context.Context, courseID uint64) (*WorkDaysResponse, error) {
	var dates []string
	err := db.ReadOnly(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		var err error
		dates, err = NewStore(tx).ListWorkDays(ctx, courseID)
		return err
	})
	if err != nil {
		return nil, ErrInternal("failed to list work days")
	}
	return &WorkDaysResponse{CourseID: courseID, Dates: dates}, nil
}

// ===== 勤怠側から使うオラクル =====

// IsWorkDay: 指定日がそのコースの研修日か
func (s *Service) IsWorkDay(ctx context.Context, courseID uint64, date string) (bool, error) {
	if err := validateDate(date); err != nil {
		return false, err
	}
	return s.store.IsWorkDay(ctx, courseID, date)
}

// OfficialHours: コースの定刻（始業・終業）。日付単位のAPIだが現状はコース一律。
func (s *Service) OfficialHours(ctx context.Context, courseID uint64, date string) (string, string, error) {
	c, err := s.GetCourse(ctx, courseID)
	if err != nil {
		return "", "", err
	}
	return c.OfficialStartTime, c.OfficialEndTime, nil
}
