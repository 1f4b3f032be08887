package course

import (
	"context"
	"errors"
	"testing"
)

func wantCode(t *testing.T, err error, code Code) {
	t.Helper()
	var api *APIError
	if !errors.As(err, &api) {
		t.Fatalf("expected APIError %s, got %v", code, err)
	}
	if api.Code != code {
		t.Fatalf("expected code %s, got %s", code, api.Code)
	}
}

func TestCreateCourseValidation(t *testing.T) {
	svc := NewService(nil) // バリデーションはDBに触る前に終わる

	tests := []struct {
		name string
		req  CreateCourseRequest
	}{
		{name: "empty name", req: CreateCourseRequest{CourseName: "  ", CourseCode: "J24", OfficialStartTime: "09:00", OfficialEndTime: "18:00"}},
		{name: "empty code", req: CreateCourseRequest{CourseName: "Java研修", CourseCode: " ", OfficialStartTime: "09:00", OfficialEndTime: "18:00"}},
		{name: "bad start time", req: CreateCourseRequest{CourseName: "Java研修", CourseCode: "J24", OfficialStartTime: "9am", OfficialEndTime: "18:00"}},
		{name: "bad end time", req: CreateCourseRequest{CourseName: "Java研修", CourseCode: "J24", OfficialStartTime: "09:00", OfficialEndTime: "25:00"}},
	}
	for _, tt := range tests {
		_, err := svc.CreateCourse(context.Background(), tt.req)
		if err == nil {
			t.Errorf("%s: error expected", tt.name)
			continue
		}
		wantCode(t, err, CodeInvalidArgument)
	}
}

func TestAddWorkDaysRejectsBadDate(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.AddWorkDays(context.Background(), 1, AddWorkDaysRequest{Dates: []string{"2024-04-31x"}})
	wantCode(t, err, CodeInvalidArgument)
}

func TestIsWorkDayRejectsBadDate(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.IsWorkDay(context.Background(), 1, "today")
	wantCode(t, err, CodeInvalidArgument)
}
