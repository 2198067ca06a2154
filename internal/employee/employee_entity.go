package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	// EmployeeCode is assigned once at creation and never changes
	EmployeeCode string     `gorm:"size:20;uniqueIndex;not null"`
	Phone        *string    `gorm:"size:15"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// Detail carries the joined user and department columns the API renders.
type Detail struct {
	Employee
	Name           string
	Email          string
	DepartmentName *string
}
