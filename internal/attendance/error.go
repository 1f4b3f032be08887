package attendance

import "fmt"

type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// MsgID: 表示メッセージのカタログキー（空ならMessageをそのまま出す）
	MsgID string `json:"-"`
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// 共通エラーコード
const (
	ErrCodeAuthorization    = "AUTHORIZATION"
	ErrCodeNotWorkDay       = "NOT_WORK_DAY"
	ErrCodeAlreadyPunched   = "ALREADY_PUNCHED"
	ErrCodeMissingClockIn   = "MISSING_CLOCK_IN"
	ErrCodeInvalidTimeRange = "INVALID_TIME_RANGE"
	ErrCodeDateParse        = "DATE_PARSE"
	ErrCodeInvalidArgument  = "INVALID_ARGUMENT"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInternal         = "INTERNAL"
)

func NewAuthorizationError() error {
	return &DomainError{
		Code:    ErrCodeAuthorization,
		Message: "trainee role required",
		MsgID:   "attendance.error.authorization",
	}
}

func NewNotWorkDayError() error {
	return &DomainError{
		Code:    ErrCodeNotWorkDay,
		Message: "today is not a work day",
		MsgID:   "attendance.error.not_work_day",
	}
}

func NewAlreadyPunchedError() error {
	return &DomainError{
		Code:    ErrCodeAlreadyPunched,
		Message: "attendance for today already entered",
		MsgID:   "attendance.error.already_punched",
	}
}

func NewMissingClockInError() error {
	return &DomainError{
		Code:    ErrCodeMissingClockIn,
		Message: "cannot clock out before clocking in",
		MsgID:   "attendance.error.missing_clock_in",
	}
}

func NewInvalidTimeRangeError() error {
	return &DomainError{
		Code:    ErrCodeInvalidTimeRange,
		Message: "end time must not be earlier than start time",
		MsgID:   "attendance.error.invalid_time_range",
	}
}

func NewDateParseError(raw string) error {
	return &DomainError{
		Code:    ErrCodeDateParse,
		Message: fmt.Sprintf("invalid training date %q", raw),
		MsgID:   "attendance.error.date_parse",
	}
}

func NewInvalidArgumentError(msg string) error {
	return &DomainError{Code: ErrCodeInvalidArgument, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &DomainError{Code: ErrCodeNotFound, Message: msg}
}

func NewInternalError(msg string) error {
	return &DomainError{Code: ErrCodeInternal, Message: msg}
}
