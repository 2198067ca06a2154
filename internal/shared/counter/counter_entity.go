package counter

import "time"

type CodeCounter struct {
	Prefix    string `gorm:"size:10;primaryKey"`
	LastValue int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (CodeCounter) TableName() string {
	return "code_counters"
}
