package permission

import (
	"context"
	"database/sql"
	"time"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/connection"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Permission) error
	FindByID(ctx context.Context, id string) (*Permission, error)
	// FindProcessedByEmployee lists non-Pending permissions, newest first.
	// Pending ones are hidden from employee-facing history.
	FindProcessedByEmployee(ctx context.Context, employeeID string) ([]Permission, error)
	FindApprovedByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Permission, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Permission, error)
	FindPending(ctx context.Context) ([]Permission, error)
	Update(ctx context.Context, p *Permission) error
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

func (r *repository) Create(ctx context.Context, p *Permission) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Permission, error) {
	var p Permission
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindProcessedByEmployee(ctx context.Context, employeeID string) ([]Permission, error) {
	var perms []Permission
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusPending).
		Order("date DESC").
		Find(&perms).Error
	return perms, err
}

func (r *repository) FindApprovedByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Permission, error) {
	var perms []Permission
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		Where("status = ?", StatusApproved).
		Find(&perms).Error
	return perms, err
}

func (r *repository) FindByDateRange(ctx context.Context, from, to time.Time) ([]Permission, error) {
	var perms []Permission
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Find(&perms).Error
	return perms, err
}

func (r *repository) FindPending(ctx context.Context) ([]Permission, error) {
	var perms []Permission
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("date, created_at").
		Find(&perms).Error
	return perms, err
}

func (r *repository) Update(ctx context.Context, p *Permission) error {
	return r.db.WithContext(ctx).Save(p).Error
}
