package employee

import (
	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
	"github.com/shopspring/decimal"
)

// EmployeeForm is the raw form submission. Every value arrives as text and
// is parsed by ValidateEmployee.
type EmployeeForm struct {
	FullName      string `form:"full_name" json:"full_name" binding:"max=255"`
	Email         string `form:"email" json:"email" binding:"max=255"`
	PhoneNumber   string `form:"phone_number" json:"phone_number" binding:"max=50"`
	Department    string `form:"department" json:"department" binding:"max=255"`
	JobTitle      string `form:"job_title" json:"job_title" binding:"max=255"`
	Salary        string `form:"salary" json:"salary" binding:"max=32"`
	StartDatee    string `form:"start_datee" json:"start_datee" binding:"max=32"`
	EndDatee      string `form:"end_datee" json:"end_datee" binding:"max=32"`
	DateOfBirth   string `form:"date_of_birth" json:"date_of_birth" binding:"max=32"`
	Photo         string `form:"photo" json:"photo" binding:"max=1024"`
	DocumentsPath string `form:"documents_path" json:"documents_path" binding:"max=1024"`
}

type EmployeeListItem struct {
	ID          int64            `json:"id"`
	FullName    string           `json:"full_name"`
	Email       string           `json:"email"`
	PhoneNumber string           `json:"phone_number"`
	Department  string           `json:"department"`
	JobTitle    string           `json:"job_title"`
	Salary      *decimal.Decimal `json:"salary"`
}

type EmployeeResponse struct {
	ID            int64            `json:"id"`
	FullName      string           `json:"full_name"`
	Email         string           `json:"email"`
	PhoneNumber   string           `json:"phone_number"`
	Department    string           `json:"department"`
	JobTitle      string           `json:"job_title"`
	Salary        *decimal.Decimal `json:"salary"`
	StartDatee    *string          `json:"start_datee"`
	EndDatee      *string          `json:"end_datee"`
	DateOfBirth   *string          `json:"date_of_birth"`
	Age           *int             `json:"age"`
	Photo         *string          `json:"photo"`
	DocumentsPath *string          `json:"documents_path"`
}

type EmployeeOption struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

type ValidationResult struct {
	Valid      bool                 `json:"valid"`
	Violations []apperror.Violation `json:"violations"`
}
