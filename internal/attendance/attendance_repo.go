package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	// FindByEmployeeAndDateForUpdate takes a row lock so two concurrent
	// check-ins for the same day serialize instead of both creating.
	FindByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GormOverTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error) {
	q := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if from != nil && to != nil {
		q = q.Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	var recs []Attendance
	err := q.Order("date DESC").Find(&recs).Error
	return recs, err
}

func (r *repository) FindByDateRange(ctx context.Context, from, to time.Time) ([]Attendance, error) {
	var recs []Attendance
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date").
		Find(&recs).Error
	return recs, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}
