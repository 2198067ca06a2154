package permission

import (
	"math"
	"time"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/timeutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Permission is a short same-day absence window. Start and end are stored
// normalized as "HH:MM:SS"; parsing happens once at the API boundary.
type Permission struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_permissions_employee_date"`
	Date       time.Time `gorm:"type:date;not null;index:idx_permissions_employee_date"`
	StartTime  string    `gorm:"type:varchar(8);not null"`
	EndTime    string    `gorm:"type:varchar(8);not null"`
	Reason     string    `gorm:"type:text;not null"`
	Status     string    `gorm:"type:varchar(10);not null;default:'Pending'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Permission) TableName() string {
	return "permissions"
}

// Window returns the parsed start and end clocks.
func (p Permission) Window() (timeutil.Clock, timeutil.Clock, error) {
	start, err := timeutil.ParseClock(p.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := timeutil.ParseClock(p.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// DurationHours is the window length rounded to 2 decimal places.
func (p Permission) DurationHours() float64 {
	start, end, err := p.Window()
	if err != nil {
		return 0
	}
	return math.Round((end.Hours()-start.Hours())*100) / 100
}
