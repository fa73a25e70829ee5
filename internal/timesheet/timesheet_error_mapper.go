package timesheet

import (
	"errors"

	timesheeterrors "github.com/MhmdALii1/employee-management-system/internal/timesheet/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timesheeterrors.ErrTimesheetNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return timesheeterrors.ErrTimesheetConflict
		case pgForeignKeyViolation:
			return timesheeterrors.ErrEmployeeNotFound
		}
	}

	return err
}
