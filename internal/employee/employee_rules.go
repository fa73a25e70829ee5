package employee

import (
	"strings"
	"time"

	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
	"github.com/shopspring/decimal"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

const (
	DateLayout = "2006-01-02"
	MinAge     = 18
)

var (
	MinSalary = decimal.NewFromInt(3000)
	// largest value a numeric(12,2) column holds
	maxSalary = decimal.RequireFromString("9999999999.99")
)

// Rule names reported in violations.
const (
	RuleRequired  = "required"
	RuleFormat    = "format"
	RuleMinAge    = "min_age"
	RuleMinSalary = "min_salary"
	RuleDateOrder = "date_order"
)

// Draft holds a submission that passed every rule, parsed into column
// values. Blank optional values are nil.
type Draft struct {
	FullName      string
	Email         string
	PhoneNumber   string
	Department    string
	JobTitle      string
	Salary        decimal.NullDecimal
	StartDatee    *time.Time
	EndDatee      *time.Time
	DateOfBirth   *time.Time
	Photo         *string
	DocumentsPath *string
}

func (d Draft) applyTo(e *Employee) {
	e.FullName = d.FullName
	e.Email = d.Email
	e.PhoneNumber = d.PhoneNumber
	e.Department = d.Department
	e.JobTitle = d.JobTitle
	e.Salary = d.Salary
	e.StartDatee = d.StartDatee
	e.EndDatee = d.EndDatee
	e.DateOfBirth = d.DateOfBirth
	e.Photo = d.Photo
	e.DocumentsPath = d.DocumentsPath
}

// AgeAt derives an age in whole years by adding the elapsed time since dob
// to the Unix epoch and reading off the year. Leap days shift the result,
// so someone can count as a year older a day or two before the birthday.
func AgeAt(dob, now time.Time) int {
	year := time.Unix(0, 0).UTC().Add(now.Sub(dob)).Year()
	age := year - 1970
	if age < 0 {
		return -age
	}
	return age
}

// ValidateEmployee checks a submission against every employee rule and
// reports all violations at once. It never touches storage.
func ValidateEmployee(form EmployeeForm, mode Mode, now time.Time) (Draft, error) {
	verr := apperror.NewValidationError()

	d := Draft{
		FullName:      strings.TrimSpace(form.FullName),
		Email:         strings.TrimSpace(form.Email),
		PhoneNumber:   strings.TrimSpace(form.PhoneNumber),
		Department:    strings.TrimSpace(form.Department),
		JobTitle:      strings.TrimSpace(form.JobTitle),
		Photo:         optionalText(form.Photo),
		DocumentsPath: optionalText(form.DocumentsPath),
	}

	if raw := strings.TrimSpace(form.Salary); raw != "" {
		salary, err := decimal.NewFromString(raw)
		switch {
		case err != nil:
			verr.Add("salary", RuleFormat, "Salary must be a number")
		case salary.LessThan(MinSalary):
			verr.Add("salary", RuleMinSalary, "Salary must be at least "+MinSalary.String())
		case salary.GreaterThan(maxSalary):
			verr.Add("salary", RuleFormat, "Salary is too large")
		default:
			d.Salary = decimal.NewNullDecimal(salary)
		}
	}

	d.DateOfBirth = parseDate(verr, "date_of_birth", form.DateOfBirth)
	if d.DateOfBirth != nil && AgeAt(*d.DateOfBirth, now) < MinAge {
		verr.Add("date_of_birth", RuleMinAge, "Employee must be at least 18 years old")
	}

	d.StartDatee = parseDate(verr, "start_datee", form.StartDatee)
	d.EndDatee = parseDate(verr, "end_datee", form.EndDatee)
	if d.StartDatee != nil && d.EndDatee != nil && d.EndDatee.Before(*d.StartDatee) {
		verr.Add("end_datee", RuleDateOrder, "End date must not be before start date")
	}

	if mode == ModeCreate && d.DocumentsPath == nil {
		verr.Add("documents_path", RuleRequired, "ID document is required")
	}

	if err := verr.OrNil(); err != nil {
		return Draft{}, err
	}
	return d, nil
}

func parseDate(verr *apperror.ValidationError, field, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		verr.Add(field, RuleFormat, field+" must be a date in YYYY-MM-DD format")
		return nil
	}
	return &t
}

func optionalText(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}
