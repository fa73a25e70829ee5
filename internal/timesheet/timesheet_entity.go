package timesheet

import (
	"time"
)

type Timesheet struct {
	ID         int64        `gorm:"column:id;primaryKey"`
	EmployeeID int64        `gorm:"column:employee_id;not null;index"`
	StartTime  time.Time    `gorm:"column:start_time;type:timestamp;not null"`
	EndTime    time.Time    `gorm:"column:end_time;type:timestamp;not null"`
	Summary    *string      `gorm:"column:summary;type:text"`
	Project    *string      `gorm:"column:project;type:text"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

type EmployeeRef struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	FullName string `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// TimesheetRow is the read model: a timesheet joined with its employee and
// the worked duration computed by the database.
type TimesheetRow struct {
	ID         int64     `gorm:"column:id"`
	EmployeeID int64     `gorm:"column:employee_id"`
	FullName   string    `gorm:"column:full_name"`
	StartTime  time.Time `gorm:"column:start_time"`
	EndTime    time.Time `gorm:"column:end_time"`
	Summary    *string   `gorm:"column:summary"`
	Project    *string   `gorm:"column:project"`
	TotalHours int64     `gorm:"column:total_hours"` // seconds, despite the name
}
