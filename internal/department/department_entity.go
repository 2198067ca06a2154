package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"size:100;uniqueIndex;not null"`
	// CodePrefix seeds employee codes, e.g. NIMD -> NIMD001
	CodePrefix string `gorm:"size:10;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Department) TableName() string {
	return "departments"
}
