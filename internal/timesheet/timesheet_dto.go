package timesheet

import "github.com/MhmdALii1/employee-management-system/internal/shared/apperror"

type TimesheetForm struct {
	EmployeeID string `form:"employee_id" json:"employee_id" binding:"max=20"`
	StartTime  string `form:"start_time" json:"start_time" binding:"max=40"`
	EndTime    string `form:"end_time" json:"end_time" binding:"max=40"`
	Summary    string `form:"summary" json:"summary" binding:"max=2000"`
	Project    string `form:"project" json:"project" binding:"max=255"`
}

// Filter narrows the record set before search is applied.
type Filter struct {
	EmployeeID *int64
}

type TimesheetResponse struct {
	ID         int64   `json:"id"`
	EmployeeID int64   `json:"employee_id"`
	FullName   string  `json:"full_name"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Summary    *string `json:"summary"`
	Project    *string `json:"project"`
	TotalHours int64   `json:"total_hours"`
}

type CalendarEvent struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type ValidationResult struct {
	Valid      bool                 `json:"valid"`
	Violations []apperror.Violation `json:"violations"`
}
