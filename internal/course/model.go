package course

type Course struct {
	CourseID          uint64 `json:"id"`
	CourseName        string `json:"name"`
	CourseCode        string `json:"code"`
	OfficialStartTime string `json:"official_start_time"` // "HH:MM"
	OfficialEndTime   string `json:"official_end_time"`   // "HH:MM"
	IsDisabled        bool   `json:"is_disabled"`
}

type CreateCourseRequest struct {
	CourseName        string `json:"name" binding:"required"`
	CourseCode        string `json:"code" binding:"required"`
	OfficialStartTime string `json:"official_start_time" binding:"required"`
	OfficialEndTime   string `json:"official_end_time" binding:"required"`
}

type UpdateCourseRequest struct {
	CourseName        string `json:"name" binding:"required"`
	CourseCode        string `json:"code" binding:"required"`
	OfficialStartTime string `json:"official_start_time" binding:"required"`
	OfficialEndTime   string `json:"official_end_time" binding:"required"`
	IsDisabled        bool   `json:"is_disabled"`
}

// 研修カレンダーへの研修日登録
type AddWorkDaysRequest struct {
	Dates []string `json:"dates" binding:"required"` // YYYY-MM-DD
}

type WorkDaysResponse struct {
	CourseID uint64   `json:"course_id"`
	Dates    []string `json:"dates"`
}
