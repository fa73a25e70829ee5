package timesheet

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MhmdALii1/employee-management-system/internal/listquery"
	"github.com/MhmdALii1/employee-management-system/internal/report"
	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
	"github.com/MhmdALii1/employee-management-system/internal/shared/contextutil"
	timesheeterrors "github.com/MhmdALii1/employee-management-system/internal/timesheet/errors"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, form TimesheetForm) (int64, error)
	Update(ctx context.Context, id int64, form TimesheetForm) (int64, error)
	GetByID(ctx context.Context, id int64) (TimesheetResponse, error)
	List(ctx context.Context, filter Filter, params listquery.Params) (listquery.Result[TimesheetResponse], error)
	Export(ctx context.Context, filter Filter, params listquery.Params) (*bytes.Buffer, error)
	Calendar(ctx context.Context, filter Filter) ([]CalendarEvent, error)
	Validate(form TimesheetForm, mode Mode) ValidationResult
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Schema searches the employee name, the project and both timestamps as
// rendered text.
var Schema = listquery.Schema[TimesheetRow]{
	Searchable: func(r TimesheetRow) []string {
		return []string{r.FullName, deref(r.Project), r.StartTime.Format(TimeLayout), r.EndTime.Format(TimeLayout)}
	},
	Sortable: map[string]listquery.CompareFunc[TimesheetRow]{
		"id":          listquery.By(func(r TimesheetRow) int64 { return r.ID }),
		"employee_id": listquery.By(func(r TimesheetRow) int64 { return r.EmployeeID }),
		"full_name":   listquery.ByText(func(r TimesheetRow) string { return r.FullName }),
		"start_time":  listquery.ByTime(func(r TimesheetRow) time.Time { return r.StartTime }),
		"end_time":    listquery.ByTime(func(r TimesheetRow) time.Time { return r.EndTime }),
		"summary":     listquery.NullsFirst(optional(func(r TimesheetRow) *string { return r.Summary }), strings.Compare),
		"project":     listquery.NullsFirst(optional(func(r TimesheetRow) *string { return r.Project }), strings.Compare),
		"total_hours": listquery.By(func(r TimesheetRow) int64 { return r.TotalHours }),
	},
}

func optional(field func(TimesheetRow) *string) func(TimesheetRow) (string, bool) {
	return func(r TimesheetRow) (string, bool) {
		if v := field(r); v != nil {
			return *v, true
		}
		return "", false
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *service) Create(ctx context.Context, form TimesheetForm) (int64, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create timesheet requested",
		zap.String("request_id", rid),
		zap.String("employee_id", form.EmployeeID),
	)

	draft, err := ValidateTimesheet(form, ModeCreate)
	if err != nil {
		s.logger.Warn("create timesheet rejected", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create timesheet begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, draft.EmployeeID)
	if err != nil {
		s.logger.Error("create timesheet employee lookup failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}
	if !exists {
		s.logger.Warn("create timesheet employee not found",
			zap.String("request_id", rid),
			zap.Int64("employee_id", draft.EmployeeID),
		)
		return 0, timesheeterrors.ErrEmployeeNotFound
	}

	ts := Timesheet{EmployeeID: draft.EmployeeID}
	draft.applyTo(&ts)
	if err := qtx.Create(ctx, &ts); err != nil {
		s.logger.Error("create timesheet persist failed", zap.String("request_id", rid), zap.Error(err))
		return 0, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create timesheet commit failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}

	s.logger.Info("create timesheet success",
		zap.String("request_id", rid),
		zap.Int64("timesheet_id", ts.ID),
		zap.Int64("employee_id", ts.EmployeeID),
	)
	return ts.ID, nil
}

// Update rewrites the window, summary and project. The owning employee
// never changes.
func (s *service) Update(ctx context.Context, id int64, form TimesheetForm) (int64, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update timesheet requested", zap.String("request_id", rid), zap.Int64("timesheet_id", id))

	draft, err := ValidateTimesheet(form, ModeUpdate)
	if err != nil {
		s.logger.Warn("update timesheet rejected",
			zap.String("request_id", rid),
			zap.Int64("timesheet_id", id),
			zap.Error(err),
		)
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update timesheet begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ts, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update timesheet fetch existing failed",
			zap.String("request_id", rid),
			zap.Int64("timesheet_id", id),
			zap.Error(err),
		)
		return 0, mapRepositoryError(err)
	}

	draft.applyTo(ts)
	if err := qtx.Update(ctx, ts); err != nil {
		s.logger.Error("update timesheet persist failed", zap.String("request_id", rid), zap.Error(err))
		return 0, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update timesheet commit failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}

	s.logger.Info("update timesheet success", zap.String("request_id", rid), zap.Int64("timesheet_id", id))
	return id, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (TimesheetResponse, error) {
	row, err := s.repo.FindRowByID(ctx, id)
	if err != nil {
		return TimesheetResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) List(ctx context.Context, filter Filter, params listquery.Params) (listquery.Result[TimesheetResponse], error) {
	s.logger.Debug("list timesheets requested",
		zap.String("search", params.Search),
		zap.String("sort_by", params.SortBy),
		zap.Int("page", params.Page),
	)

	if err := listquery.Validate(params, Schema); err != nil {
		return listquery.Result[TimesheetResponse]{}, err
	}

	rows, err := s.repo.FindRows(ctx, filter)
	if err != nil {
		s.logger.Error("list timesheets failed", zap.Error(err))
		return listquery.Result[TimesheetResponse]{}, mapRepositoryError(err)
	}

	page, err := listquery.Run(rows, Schema, params)
	if err != nil {
		return listquery.Result[TimesheetResponse]{}, err
	}

	return listquery.Result[TimesheetResponse]{
		Items:      mapToResponses(page.Items),
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}, nil
}

// Export renders the whole filtered and sorted set as a workbook, ignoring
// pagination.
func (s *service) Export(ctx context.Context, filter Filter, params listquery.Params) (*bytes.Buffer, error) {
	rows, err := s.repo.FindRows(ctx, filter)
	if err != nil {
		s.logger.Error("export timesheets failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	arranged, err := listquery.Arrange(rows, Schema, params.Search, params.SortBy, params.SortOrder)
	if err != nil {
		return nil, err
	}

	lines := make([]report.Row, len(arranged))
	for i, r := range arranged {
		lines[i] = report.Row{
			ID:        r.ID,
			Employee:  r.FullName,
			Project:   deref(r.Project),
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Duration:  r.EndTime.Sub(r.StartTime),
			Summary:   deref(r.Summary),
		}
	}

	buffer, err := report.GenerateTimesheetReport(lines)
	if err != nil {
		s.logger.Error("export timesheets render failed", zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to render report", http.StatusInternalServerError)
	}

	s.logger.Info("export timesheets success", zap.Int("rows", len(lines)))
	return buffer, nil
}

func (s *service) Calendar(ctx context.Context, filter Filter) ([]CalendarEvent, error) {
	rows, err := s.repo.FindRows(ctx, filter)
	if err != nil {
		s.logger.Error("calendar timesheets failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	events := make([]CalendarEvent, len(rows))
	for i, r := range rows {
		events[i] = CalendarEvent{
			ID:    r.ID,
			Title: deref(r.Project),
			Start: r.StartTime.Format(CalendarLayout),
			End:   r.EndTime.Format(CalendarLayout),
		}
	}
	return events, nil
}

func (s *service) Validate(form TimesheetForm, mode Mode) ValidationResult {
	_, err := ValidateTimesheet(form, mode)

	var verr *apperror.ValidationError
	if !errors.As(err, &verr) {
		return ValidationResult{Valid: true, Violations: []apperror.Violation{}}
	}
	return ValidationResult{Valid: false, Violations: verr.Violations}
}

func mapToResponse(r TimesheetRow) TimesheetResponse {
	return TimesheetResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		FullName:   r.FullName,
		StartTime:  r.StartTime.Format(TimeLayout),
		EndTime:    r.EndTime.Format(TimeLayout),
		Summary:    r.Summary,
		Project:    r.Project,
		TotalHours: r.TotalHours,
	}
}

func mapToResponses(rows []TimesheetRow) []TimesheetResponse {
	out := make([]TimesheetResponse, len(rows))
	for i, r := range rows {
		out[i] = mapToResponse(r)
	}
	return out
}
