package employee_test

import (
	"context"
	"testing"

	"github.com/MhmdALii1/employee-management-system/internal/employee"
	employeeerrors "github.com/MhmdALii1/employee-management-system/internal/employee/errors"
	"github.com/MhmdALii1/employee-management-system/internal/listquery"
	"github.com/MhmdALii1/employee-management-system/internal/seed"
	"github.com/MhmdALii1/employee-management-system/internal/shared/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRepository_Integration(t *testing.T) {
	db := testdb.Start(t)
	ctx := context.Background()

	_, err := seed.Run(ctx, db, zap.NewNop())
	require.NoError(t, err)

	repo := employee.NewRepository(db)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	svc := employee.NewService(sqlDB, repo, zap.NewNop())

	t.Run("options sorted by name", func(t *testing.T) {
		options, err := svc.GetOptions(ctx)
		require.NoError(t, err)
		require.Len(t, options, 6)
		assert.Equal(t, "Alice Johnson", options[0].FullName)
		assert.Equal(t, int64(3), options[0].ID)
	})

	t.Run("page of the seeded set", func(t *testing.T) {
		res, err := svc.List(ctx, listquery.Params{SortBy: "salary", SortOrder: "desc", Page: 1, PageSize: 4})
		require.NoError(t, err)
		assert.Equal(t, 6, res.TotalCount)
		require.Len(t, res.Items, 4)
		assert.Equal(t, "Daniel Green", res.Items[0].FullName)
	})

	t.Run("create then update clears optional fields", func(t *testing.T) {
		id, err := svc.Create(ctx, adultForm())
		require.NoError(t, err)

		form := adultForm()
		form.DocumentsPath = ""
		form.Salary = ""
		_, err = svc.Update(ctx, id, form)
		require.NoError(t, err)

		stored, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, stored.DocumentsPath)
		assert.False(t, stored.Salary.Valid)
	})

	t.Run("update of a missing employee", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, adultForm())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
