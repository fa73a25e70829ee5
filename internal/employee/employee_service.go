package employee

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/MhmdALii1/employee-management-system/internal/listquery"
	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
	"github.com/MhmdALii1/employee-management-system/internal/shared/contextutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, form EmployeeForm) (int64, error)
	Update(ctx context.Context, id int64, form EmployeeForm) (int64, error)
	GetByID(ctx context.Context, id int64) (EmployeeResponse, error)
	List(ctx context.Context, params listquery.Params) (listquery.Result[EmployeeListItem], error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	Validate(form EmployeeForm, mode Mode) ValidationResult
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		now:    time.Now,
		logger: l,
	}
}

// Schema lists the fields employees can be searched and sorted on.
var Schema = listquery.Schema[Employee]{
	Searchable: func(e Employee) []string {
		return []string{e.FullName, e.Email, e.PhoneNumber, e.Department, e.JobTitle}
	},
	Sortable: map[string]listquery.CompareFunc[Employee]{
		"id":            listquery.By(func(e Employee) int64 { return e.ID }),
		"full_name":     listquery.ByText(func(e Employee) string { return e.FullName }),
		"email":         listquery.ByText(func(e Employee) string { return e.Email }),
		"phone_number":  listquery.ByText(func(e Employee) string { return e.PhoneNumber }),
		"department":    listquery.ByText(func(e Employee) string { return e.Department }),
		"job_title":     listquery.ByText(func(e Employee) string { return e.JobTitle }),
		"salary":        listquery.NullsFirst(salaryOf, decimal.Decimal.Cmp),
		"start_datee":   listquery.NullsFirst(dateOf(func(e Employee) *time.Time { return e.StartDatee }), time.Time.Compare),
		"end_datee":     listquery.NullsFirst(dateOf(func(e Employee) *time.Time { return e.EndDatee }), time.Time.Compare),
		"date_of_birth": listquery.NullsFirst(dateOf(func(e Employee) *time.Time { return e.DateOfBirth }), time.Time.Compare),
	},
}

func salaryOf(e Employee) (decimal.Decimal, bool) {
	return e.Salary.Decimal, e.Salary.Valid
}

func dateOf(field func(Employee) *time.Time) func(Employee) (time.Time, bool) {
	return func(e Employee) (time.Time, bool) {
		if t := field(e); t != nil {
			return *t, true
		}
		return time.Time{}, false
	}
}

func (s *service) Create(ctx context.Context, form EmployeeForm) (int64, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("full_name", form.FullName),
	)

	draft, err := ValidateEmployee(form, ModeCreate, s.now())
	if err != nil {
		s.logger.Warn("create employee rejected", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var empl Employee
	draft.applyTo(&empl)
	if err := qtx.Create(ctx, &empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return 0, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Int64("employee_id", empl.ID),
	)
	return empl.ID, nil
}

func (s *service) Update(ctx context.Context, id int64, form EmployeeForm) (int64, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.Int64("employee_id", id),
	)

	draft, err := ValidateEmployee(form, ModeUpdate, s.now())
	if err != nil {
		s.logger.Warn("update employee rejected",
			zap.String("request_id", rid),
			zap.Int64("employee_id", id),
			zap.Error(err),
		)
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed",
			zap.String("request_id", rid),
			zap.Int64("employee_id", id),
			zap.Error(err),
		)
		return 0, mapRepositoryError(err)
	}

	draft.applyTo(empl)
	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return 0, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return 0, err
	}

	s.logger.Info("update employee success", zap.String("request_id", rid), zap.Int64("employee_id", id))
	return id, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.Int64("employee_id", id))

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl, s.now()), nil
}

func (s *service) List(ctx context.Context, params listquery.Params) (listquery.Result[EmployeeListItem], error) {
	s.logger.Debug("list employees requested",
		zap.String("search", params.Search),
		zap.String("sort_by", params.SortBy),
		zap.String("sort_order", params.SortOrder),
		zap.Int("page", params.Page),
	)

	if err := listquery.Validate(params, Schema); err != nil {
		return listquery.Result[EmployeeListItem]{}, err
	}

	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return listquery.Result[EmployeeListItem]{}, mapRepositoryError(err)
	}

	page, err := listquery.Run(employees, Schema, params)
	if err != nil {
		return listquery.Result[EmployeeListItem]{}, err
	}

	items := make([]EmployeeListItem, len(page.Items))
	for i, e := range page.Items {
		items[i] = mapToListItem(e)
	}
	return listquery.Result[EmployeeListItem]{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	options, err := s.repo.FindOptions(ctx)
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	if options == nil {
		options = []EmployeeOption{}
	}
	return options, nil
}

func (s *service) Validate(form EmployeeForm, mode Mode) ValidationResult {
	_, err := ValidateEmployee(form, mode, s.now())
	return toValidationResult(err)
}

func toValidationResult(err error) ValidationResult {
	var verr *apperror.ValidationError
	if !errors.As(err, &verr) {
		return ValidationResult{Valid: true, Violations: []apperror.Violation{}}
	}
	return ValidationResult{Valid: false, Violations: verr.Violations}
}

func mapToListItem(e Employee) EmployeeListItem {
	return EmployeeListItem{
		ID:          e.ID,
		FullName:    e.FullName,
		Email:       e.Email,
		PhoneNumber: e.PhoneNumber,
		Department:  e.Department,
		JobTitle:    e.JobTitle,
		Salary:      salaryPtr(e.Salary),
	}
}

func mapToResponse(e Employee, now time.Time) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID,
		FullName:      e.FullName,
		Email:         e.Email,
		PhoneNumber:   e.PhoneNumber,
		Department:    e.Department,
		JobTitle:      e.JobTitle,
		Salary:        salaryPtr(e.Salary),
		StartDatee:    formatDate(e.StartDatee),
		EndDatee:      formatDate(e.EndDatee),
		DateOfBirth:   formatDate(e.DateOfBirth),
		Photo:         e.Photo,
		DocumentsPath: e.DocumentsPath,
	}
	if e.DateOfBirth != nil {
		age := AgeAt(*e.DateOfBirth, now)
		resp.Age = &age
	}
	return resp
}

func salaryPtr(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := v.Decimal
	return &d
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
