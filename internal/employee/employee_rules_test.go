package employee_test

import (
	"testing"
	"time"

	"github.com/MhmdALii1/employee-management-system/internal/employee"
	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ruleNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func validForm() employee.EmployeeForm {
	return employee.EmployeeForm{
		FullName:      "Jane Doe",
		Email:         "jane@example.com",
		PhoneNumber:   "123-456-7890",
		Department:    "Engineering",
		JobTitle:      "Software Engineer",
		Salary:        "75000",
		StartDatee:    "2020-01-01",
		DateOfBirth:   "1990-05-15",
		DocumentsPath: "/uploads/jane-id.pdf",
	}
}

func violationsOf(t *testing.T, err error) *apperror.ValidationError {
	t.Helper()
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr
}

func TestValidateEmployee_Valid(t *testing.T) {
	draft, err := employee.ValidateEmployee(validForm(), employee.ModeCreate, ruleNow)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", draft.FullName)
	assert.True(t, draft.Salary.Valid)
	assert.Equal(t, "75000", draft.Salary.Decimal.String())
	require.NotNil(t, draft.DateOfBirth)
	assert.Equal(t, "1990-05-15", draft.DateOfBirth.Format(employee.DateLayout))
	assert.Nil(t, draft.EndDatee)
	assert.Nil(t, draft.Photo)
}

func TestValidateEmployee_SalaryFloor(t *testing.T) {
	tests := []struct {
		salary string
		ok     bool
	}{
		{"3000", true},
		{"3000.00", true},
		{"2999", false},
		{"2999.99", false},
		{"2000", false},
		{"", true},
	}

	for _, tt := range tests {
		t.Run("salary="+tt.salary, func(t *testing.T) {
			form := validForm()
			form.Salary = tt.salary

			_, err := employee.ValidateEmployee(form, employee.ModeCreate, ruleNow)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, violationsOf(t, err).Has("salary", employee.RuleMinSalary))
		})
	}
}

func TestValidateEmployee_SalaryMustBeNumeric(t *testing.T) {
	form := validForm()
	form.Salary = "lots"

	_, err := employee.ValidateEmployee(form, employee.ModeUpdate, ruleNow)
	assert.True(t, violationsOf(t, err).Has("salary", employee.RuleFormat))
}

func TestValidateEmployee_MinimumAge(t *testing.T) {
	tests := []struct {
		name string
		dob  string
		ok   bool
	}{
		{"exactly eighteen", "2007-06-15", true},
		{"seventeen", "2008-06-15", false},
		{"newborn", "2025-06-15", false},
		{"no date of birth", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form.DateOfBirth = tt.dob

			_, err := employee.ValidateEmployee(form, employee.ModeCreate, ruleNow)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, violationsOf(t, err).Has("date_of_birth", employee.RuleMinAge))
		})
	}
}

func TestAgeAt(t *testing.T) {
	at := func(s string) time.Time {
		d, err := time.Parse(employee.DateLayout, s)
		require.NoError(t, err)
		return d
	}
	now := at("2025-06-15")

	assert.Equal(t, 18, employee.AgeAt(at("2007-06-15"), now))
	assert.Equal(t, 17, employee.AgeAt(at("2008-06-15"), now))
	assert.Equal(t, 35, employee.AgeAt(at("1990-05-15"), now))
	// leap days carried by the epoch arithmetic
	assert.Equal(t, 18, employee.AgeAt(at("2007-06-16"), now))
	assert.Equal(t, 17, employee.AgeAt(at("2007-06-17"), now))
	// dates in the future yield a positive age
	assert.Equal(t, 20, employee.AgeAt(at("2045-06-15"), now))
}

func TestValidateEmployee_DocumentsRequiredOnCreateOnly(t *testing.T) {
	form := validForm()
	form.DocumentsPath = "  "

	_, err := employee.ValidateEmployee(form, employee.ModeCreate, ruleNow)
	assert.True(t, violationsOf(t, err).Has("documents_path", employee.RuleRequired))

	draft, err := employee.ValidateEmployee(form, employee.ModeUpdate, ruleNow)
	require.NoError(t, err)
	assert.Nil(t, draft.DocumentsPath)
}

func TestValidateEmployee_EmploymentWindow(t *testing.T) {
	form := validForm()
	form.StartDatee = "2024-01-10"
	form.EndDatee = "2024-01-09"

	_, err := employee.ValidateEmployee(form, employee.ModeUpdate, ruleNow)
	assert.True(t, violationsOf(t, err).Has("end_datee", employee.RuleDateOrder))

	form.EndDatee = "2024-01-10"
	_, err = employee.ValidateEmployee(form, employee.ModeUpdate, ruleNow)
	assert.NoError(t, err)
}

func TestValidateEmployee_ReportsEveryViolation(t *testing.T) {
	form := validForm()
	form.Salary = "2000"
	form.DateOfBirth = "15/05/1990"
	form.DocumentsPath = ""

	_, err := employee.ValidateEmployee(form, employee.ModeCreate, ruleNow)
	verr := violationsOf(t, err)

	assert.Len(t, verr.Violations, 3)
	assert.True(t, verr.Has("salary", employee.RuleMinSalary))
	assert.True(t, verr.Has("date_of_birth", employee.RuleFormat))
	assert.True(t, verr.Has("documents_path", employee.RuleRequired))
}
