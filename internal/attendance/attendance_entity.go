package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "Present"
	StatusLate    = "Late"
	StatusAbsent  = "Absent"
)

// Attendance is one row per employee per calendar date. Status is derived
// from the check-in instant, never supplied by the client. Remarks are set
// once on first save and kept afterwards.
type Attendance struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_attendances_employee_date"`
	Date       time.Time  `gorm:"type:date;not null;uniqueIndex:idx_attendances_employee_date"`
	Status     string     `gorm:"type:varchar(10);not null;default:'Absent'"`
	CheckIn    *time.Time `gorm:"type:timestamptz"`
	CheckOut   *time.Time `gorm:"type:timestamptz"`
	Remarks    *string    `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Attendance) TableName() string {
	return "attendances"
}
