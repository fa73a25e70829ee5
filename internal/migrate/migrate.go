package migrate

import (
	"fmt"

	"github.com/MhmdALii1/employee-management-system/internal/employee"
	"github.com/MhmdALii1/employee-management-system/internal/timesheet"
	"gorm.io/gorm"
)

// Run creates or updates both tables. Employees go first so the timesheet
// foreign key has something to point at.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&employee.Employee{}); err != nil {
		return fmt.Errorf("migrate employees: %w", err)
	}
	if err := db.AutoMigrate(&timesheet.Timesheet{}); err != nil {
		return fmt.Errorf("migrate timesheets: %w", err)
	}
	return nil
}
