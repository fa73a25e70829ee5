package timesheet

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

const rowColumns = `timesheets.id,
	timesheets.employee_id,
	employees.full_name,
	timesheets.start_time,
	timesheets.end_time,
	timesheets.summary,
	timesheets.project,
	CAST(EXTRACT(EPOCH FROM (timesheets.end_time - timesheets.start_time)) AS BIGINT) AS total_hours`

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Timesheet) error
	Update(ctx context.Context, t *Timesheet) error
	FindByID(ctx context.Context, id int64) (*Timesheet, error)
	FindRowByID(ctx context.Context, id int64) (*TimesheetRow, error)
	FindRows(ctx context.Context, filter Filter) ([]TimesheetRow, error)
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	if tx == nil {
		return r
	}
	db := r.db.Session(&gorm.Session{Context: context.Background()})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Timesheet) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(t).Error
}

func (r *repository) Update(ctx context.Context, t *Timesheet) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(t).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Timesheet, error) {
	var t Timesheet
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("timesheets").
		Select(rowColumns).
		Joins("JOIN employees ON employees.id = timesheets.employee_id")
}

func (r *repository) FindRowByID(ctx context.Context, id int64) (*TimesheetRow, error) {
	var rows []TimesheetRow
	err := r.joined(ctx).
		Where("timesheets.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *repository) FindRows(ctx context.Context, filter Filter) ([]TimesheetRow, error) {
	q := r.joined(ctx)
	if filter.EmployeeID != nil {
		q = q.Where("timesheets.employee_id = ?", *filter.EmployeeID)
	}

	var rows []TimesheetRow
	err := q.Order("timesheets.id").Scan(&rows).Error
	return rows, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EmployeeRef{}).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
