package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            int64               `gorm:"primaryKey"`
	FullName      string              `gorm:"type:text"`
	Email         string              `gorm:"type:text"`
	PhoneNumber   string              `gorm:"type:text"`
	Department    string              `gorm:"type:text"`
	JobTitle      string              `gorm:"type:text"`
	Salary        decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	StartDatee    *time.Time          `gorm:"column:start_datee;type:date"`
	EndDatee      *time.Time          `gorm:"column:end_datee;type:date"`
	DateOfBirth   *time.Time          `gorm:"type:date"`
	Photo         *string             `gorm:"type:text"`
	DocumentsPath *string             `gorm:"type:text"`
}

func (Employee) TableName() string {
	return "employees"
}
