package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MhmdALii1/employee-management-system/internal/employee"
	employeeerrors "github.com/MhmdALii1/employee-management-system/internal/employee/errors"
	employeeMock "github.com/MhmdALii1/employee-management-system/internal/employee/mock"
	"github.com/MhmdALii1/employee-management-system/internal/listquery"
	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *employeeMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := employeeMock.NewMockRepository(ctrl)
	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: employee.NewService(db, repo, zap.NewNop()),
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

// adultForm is valid whatever the current date.
func adultForm() employee.EmployeeForm {
	form := validForm()
	form.DateOfBirth = time.Now().AddDate(-30, 0, 0).Format(employee.DateLayout)
	return form
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, "Jane Doe", e.FullName)
				assert.True(t, e.Salary.Decimal.Equal(decimal.NewFromInt(75000)))
				require.NotNil(t, e.DocumentsPath)
				assert.Equal(t, "/uploads/jane-id.pdf", *e.DocumentsPath)
				assert.Nil(t, e.Photo)
				e.ID = 7
				return nil
			})

		id, err := deps.service.Create(ctx, adultForm())

		assert.NoError(t, err)
		assert.Equal(t, int64(7), id)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("salary below floor writes nothing", func(t *testing.T) {
		deps := setupServiceTest(t)
		form := adultForm()
		form.Salary = "2000"

		_, err := deps.service.Create(ctx, form)

		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		var verr *apperror.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("salary", employee.RuleMinSalary))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("repo error -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db down"))

		_, err := deps.service.Create(ctx, adultForm())

		assert.EqualError(t, err, "db down")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unique violation -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505"})

		_, err := deps.service.Create(ctx, adultForm())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeConflict)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success overwrites every field", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		photo := "/uploads/old.png"
		existing := &employee.Employee{ID: 3, FullName: "Old Name", Photo: &photo}

		form := adultForm()
		form.DocumentsPath = ""
		form.FullName = "New Name"

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(3)).Return(existing, nil)
		deps.repo.EXPECT().
			Update(ctx, existing).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, "New Name", e.FullName)
				assert.Nil(t, e.Photo)
				assert.Nil(t, e.DocumentsPath)
				return nil
			})

		id, err := deps.service.Update(ctx, 3, form)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), id)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("missing employee -> not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, int64(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, 99, adultForm())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("underage rejected before any query", func(t *testing.T) {
		deps := setupServiceTest(t)
		form := adultForm()
		form.DateOfBirth = time.Now().AddDate(-10, 0, 0).Format(employee.DateLayout)

		_, err := deps.service.Update(ctx, 3, form)

		var verr *apperror.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("date_of_birth", employee.RuleMinAge))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_List(t *testing.T) {
	ctx := context.Background()
	salary := func(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }
	staff := []employee.Employee{
		{ID: 1, FullName: "Jane Doe", Department: "Engineering", Salary: salary(75000)},
		{ID: 2, FullName: "John Smith", Department: "Marketing", Salary: salary(65000)},
		{ID: 3, FullName: "Alice Johnson", Department: "Engineering"},
		{ID: 4, FullName: "Bob Brown", Department: "Sales", Salary: salary(60000)},
		{ID: 5, FullName: "Carol White", Department: "Human Resources", Salary: salary(70000)},
	}

	t.Run("search, sort and paginate", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(ctx).Return(staff, nil)

		res, err := deps.service.List(ctx, listquery.Params{
			Search: "engineering", SortBy: "salary", SortOrder: "desc", Page: 1, PageSize: 4,
		})
		require.NoError(t, err)

		require.Len(t, res.Items, 2)
		assert.Equal(t, int64(1), res.Items[0].ID)
		assert.Equal(t, "75000", res.Items[0].Salary.String())
		assert.Equal(t, int64(3), res.Items[1].ID)
		assert.Nil(t, res.Items[1].Salary)
		assert.Equal(t, 2, res.TotalCount)
	})

	t.Run("second page", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(ctx).Return(staff, nil)

		res, err := deps.service.List(ctx, listquery.Params{SortBy: "full_name", SortOrder: "asc", Page: 2, PageSize: 4})
		require.NoError(t, err)

		require.Len(t, res.Items, 1)
		assert.Equal(t, "John Smith", res.Items[0].FullName)
		assert.Equal(t, 5, res.TotalCount)
		assert.Equal(t, 2, res.TotalPages())
	})

	t.Run("unknown sort field never hits the repository", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.List(ctx, listquery.Params{SortBy: "age", Page: 1, PageSize: 4})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)

	dob := time.Now().AddDate(-40, 0, -3)
	deps.repo.EXPECT().FindByID(ctx, int64(1)).Return(&employee.Employee{ID: 1, FullName: "Jane Doe", DateOfBirth: &dob}, nil)
	deps.repo.EXPECT().FindByID(ctx, int64(2)).Return(nil, gorm.ErrRecordNotFound)

	resp, err := deps.service.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, resp.Age)
	assert.Equal(t, 40, *resp.Age)
	assert.Nil(t, resp.Salary)

	_, err = deps.service.GetByID(ctx, 2)
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestEmployeeService_Validate(t *testing.T) {
	deps := setupServiceTest(t)

	res := deps.service.Validate(adultForm(), employee.ModeCreate)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Violations)

	form := adultForm()
	form.Salary = "100"
	res = deps.service.Validate(form, employee.ModeUpdate)
	assert.False(t, res.Valid)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "salary", res.Violations[0].Field)
}
