package timesheeterrors

import (
	"net/http"

	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
)

var (
	ErrTimesheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"Timesheet not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Employee does not exist",
		http.StatusBadRequest,
	)
	ErrTimesheetConflict = apperror.New(
		apperror.CodeConflict,
		"Timesheet conflicts with an existing record",
		http.StatusConflict,
	)
	ErrInvalidTimesheetID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid timesheet ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeFilter = apperror.New(
		apperror.CodeInvalidInput,
		"employeeId must be a positive whole number",
		http.StatusBadRequest,
	)
	ErrInvalidMode = apperror.New(
		apperror.CodeInvalidInput,
		"mode must be create or update",
		http.StatusBadRequest,
	)
)
