package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// formatFieldName turns phone_number into "Phone Number".
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

// MapValidationError converts binding failures into a ValidationError
// holding one violation per failing field.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return InvalidField("Request body")
	}

	verr := NewValidationError()
	for _, e := range errs {
		human := formatFieldName(e.Field())
		switch e.Tag() {
		case "required":
			verr.Add(e.Field(), "required", RequiredField(human).Message)
		case "max":
			verr.Add(e.Field(), "max", human+" must be at most "+e.Param()+" characters")
		default:
			verr.Add(e.Field(), e.Tag(), InvalidField(human).Message)
		}
	}
	return verr
}

func asValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}

func asAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok && appErr != nil
}
