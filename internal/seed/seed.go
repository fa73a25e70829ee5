// Package seed resets the database to a small reference data set used for
// demos and manual testing.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/MhmdALii1/employee-management-system/internal/employee"
	"github.com/MhmdALii1/employee-management-system/internal/timesheet"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const truncateSQL = "TRUNCATE TABLE timesheets, employees RESTART IDENTITY CASCADE"

type Result struct {
	Employees  int
	Timesheets int
}

type timesheetSeed struct {
	employee int // index into Employees()
	start    string
	end      string
	summary  string
	project  string
}

func date(s string) *time.Time {
	t, err := time.Parse(employee.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func salary(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

// Employees returns the reference employees in insertion order.
func Employees() []employee.Employee {
	return []employee.Employee{
		{FullName: "John Doe", Email: "johndoe@example.com", PhoneNumber: "123-456-7890", DateOfBirth: date("1990-01-15"), Department: "Engineering", JobTitle: "Software Engineer", Salary: salary(75000), StartDatee: date("2023-06-01")},
		{FullName: "Jane Smith", Email: "janesmith@example.com", PhoneNumber: "987-654-3210", DateOfBirth: date("1985-05-22"), Department: "HR", JobTitle: "HR Manager", Salary: salary(65000), StartDatee: date("2022-03-15")},
		{FullName: "Alice Johnson", Email: "alicejohnson@example.com", PhoneNumber: "456-789-0123", DateOfBirth: date("1992-09-10"), Department: "Marketing", JobTitle: "Marketing Manager", Salary: salary(70000), StartDatee: date("2021-10-20")},
		{FullName: "Bob Brown", Email: "bobbrown@example.com", PhoneNumber: "111-222-3333", DateOfBirth: date("1980-04-18"), Department: "Finance", JobTitle: "Accountant", Salary: salary(72000), StartDatee: date("2019-07-01")},
		{FullName: "Emily White", Email: "emilywhite@example.com", PhoneNumber: "222-333-4444", DateOfBirth: date("1995-06-25"), Department: "IT Support", JobTitle: "IT Technician", Salary: salary(68000), StartDatee: date("2020-01-10")},
		{FullName: "Daniel Green", Email: "danielgreen@example.com", PhoneNumber: "333-444-5555", DateOfBirth: date("1988-02-28"), Department: "Sales", JobTitle: "Sales Manager", Salary: salary(77000), StartDatee: date("2018-09-15")},
	}
}

var timesheetSeeds = []timesheetSeed{
	{0, "2009-02-10 08:00:00", "2025-02-10 17:00:00", "Worked on project X", "Project X"},
	{1, "2012-02-11 12:00:00", "2025-02-11 17:00:00", "HR policy review", "HR Documentation"},
	{2, "2014-02-12 07:00:00", "2025-02-12 16:00:00", "Marketing campaign planning", "New Product Launch"},
	{3, "2020-02-13 09:00:00", "2025-02-13 17:00:00", "Prepared monthly financial report", "Financial Report"},
	{4, "2021-02-14 08:30:00", "2025-02-14 15:30:00", "Performed IT system maintenance", "IT System Maintenance"},
	{5, "2022-02-15 10:00:00", "2025-02-15 18:00:00", "Conducted client outreach", "Client Outreach"},
}

// Timesheets returns the reference timesheets owned by the given employees,
// which must be the persisted result of Employees().
func Timesheets(employees []employee.Employee) ([]timesheet.Timesheet, error) {
	out := make([]timesheet.Timesheet, 0, len(timesheetSeeds))
	for _, s := range timesheetSeeds {
		if s.employee >= len(employees) {
			return nil, fmt.Errorf("seed timesheet refers to employee #%d of %d", s.employee+1, len(employees))
		}
		start, err := time.Parse(timesheet.TimeLayout, s.start)
		if err != nil {
			return nil, err
		}
		end, err := time.Parse(timesheet.TimeLayout, s.end)
		if err != nil {
			return nil, err
		}
		summary, project := s.summary, s.project
		out = append(out, timesheet.Timesheet{
			EmployeeID: employees[s.employee].ID,
			StartTime:  start,
			EndTime:    end,
			Summary:    &summary,
			Project:    &project,
		})
	}
	return out, nil
}

// Run wipes both tables and inserts the reference set in one transaction.
func Run(ctx context.Context, db *gorm.DB, logger *zap.Logger) (Result, error) {
	var res Result

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(truncateSQL).Error; err != nil {
			return fmt.Errorf("truncate: %w", err)
		}

		employees := Employees()
		if err := tx.Create(&employees).Error; err != nil {
			return fmt.Errorf("insert employees: %w", err)
		}

		timesheets, err := Timesheets(employees)
		if err != nil {
			return err
		}
		if err := tx.Omit("Employee").Create(&timesheets).Error; err != nil {
			return fmt.Errorf("insert timesheets: %w", err)
		}

		res = Result{Employees: len(employees), Timesheets: len(timesheets)}
		return nil
	})
	if err != nil {
		logger.Error("seed failed", zap.Error(err))
		return Result{}, err
	}

	logger.Info("database seeded",
		zap.Int("employees", res.Employees),
		zap.Int("timesheets", res.Timesheets),
	)
	return res, nil
}
