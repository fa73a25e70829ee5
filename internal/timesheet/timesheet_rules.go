package timesheet

import (
	"strconv"
	"strings"
	"time"

	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

// TimeLayout is how timestamps are rendered and searched.
const TimeLayout = "2006-01-02 15:04:05"

// CalendarLayout is the minute precision format of calendar events.
const CalendarLayout = "2006-01-02 15:04"

// accepted input layouts; datetime-local inputs send the first one
var inputLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	TimeLayout,
	CalendarLayout,
	time.RFC3339,
}

const (
	RuleRequired  = "required"
	RuleFormat    = "format"
	RuleTimeOrder = "time_order"
)

// Draft is a submission that passed every rule. EmployeeID is zero for
// updates, where the owner cannot change.
type Draft struct {
	EmployeeID int64
	StartTime  time.Time
	EndTime    time.Time
	Summary    *string
	Project    *string
}

func (d Draft) applyTo(t *Timesheet) {
	t.StartTime = d.StartTime
	t.EndTime = d.EndTime
	t.Summary = d.Summary
	t.Project = d.Project
}

// ParseTime reads a submitted timestamp. Values without a zone are taken
// as UTC.
func ParseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ValidateTimesheet checks presence first, then formats, then that the
// window ends strictly after it starts.
func ValidateTimesheet(form TimesheetForm, mode Mode) (Draft, error) {
	verr := apperror.NewValidationError()
	var d Draft

	required := []fieldValue{
		{"start_time", form.StartTime},
		{"end_time", form.EndTime},
	}
	if mode == ModeCreate {
		required = []fieldValue{
			{"employee_id", form.EmployeeID},
			{"start_time", form.StartTime},
			{"end_time", form.EndTime},
			{"summary", form.Summary},
			{"project", form.Project},
		}
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.Add(r.field, RuleRequired, r.field+" is required")
		}
	}

	if mode == ModeCreate {
		if raw := strings.TrimSpace(form.EmployeeID); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id < 1 {
				verr.Add("employee_id", RuleFormat, "employee_id must be a positive whole number")
			}
			d.EmployeeID = id
		}
	}

	start, startOK := parseField(verr, "start_time", form.StartTime)
	end, endOK := parseField(verr, "end_time", form.EndTime)
	if startOK && endOK && !start.Before(end) {
		verr.Add("end_time", RuleTimeOrder, "Start time must be before end time")
	}

	if err := verr.OrNil(); err != nil {
		return Draft{}, err
	}

	d.StartTime = start
	d.EndTime = end
	d.Summary = optionalText(form.Summary)
	d.Project = optionalText(form.Project)
	return d, nil
}

type fieldValue struct {
	field string
	value string
}

func parseField(verr *apperror.ValidationError, field, raw string) (time.Time, bool) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, false
	}
	t, ok := ParseTime(raw)
	if !ok {
		verr.Add(field, RuleFormat, field+" must be a date and time such as 2024-01-15T09:00")
	}
	return t, ok
}

func optionalText(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}
