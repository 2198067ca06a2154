package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// LeaveType is a named category with an annual day quota.
type LeaveType struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name             string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	MaxDaysPerYear   int       `gorm:"not null;default:12"`
	RequiresApproval bool      `gorm:"not null;default:true"`
	Description      string    `gorm:"type:text"`
	IsActive         bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (LeaveType) TableName() string {
	return "leave_types"
}

// LeaveRequest covers an inclusive date range. Pending and Approved
// requests of one employee may never overlap.
type LeaveRequest struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID      uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaveTypeID     uuid.UUID `gorm:"type:uuid;not null"`
	StartDate       time.Time `gorm:"type:date;not null"`
	EndDate         time.Time `gorm:"type:date;not null"`
	Reason          string    `gorm:"type:text;not null"`
	Status          string    `gorm:"type:varchar(10);not null;default:'Pending'"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	LeaveType LeaveType `gorm:"foreignKey:LeaveTypeID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// TotalDays counts both endpoints.
func (l LeaveRequest) TotalDays() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}
