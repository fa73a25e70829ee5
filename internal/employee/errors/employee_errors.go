package employeeerrors

import (
	"net/http"

	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeConflict = apperror.New(
		apperror.CodeConflict,
		"Employee conflicts with an existing record",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidMode = apperror.New(
		apperror.CodeInvalidInput,
		"mode must be create or update",
		http.StatusBadRequest,
	)
)
