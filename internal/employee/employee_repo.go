package employee

import (
	"context"
	"database/sql"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/connection"

	"gorm.io/gorm"
)

type Filter struct {
	// Search matches employee code or user name, case-insensitive substring
	Search       string
	DepartmentID string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, filter Filter) ([]Detail, error)
	FindByID(ctx context.Context, id string) (*Detail, error)
	Update(ctx context.Context, empl *Employee) error
	// Delete removes the employee and everything it owns: attendance,
	// permissions, leave requests, and the linked user account.
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

type detailRow struct {
	Employee
	Name           string  `gorm:"column:user_name"`
	Email          string  `gorm:"column:user_email"`
	DepartmentName *string `gorm:"column:department_name"`
}

func (r *repository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("employees").
		Select("employees.*, users.name AS user_name, users.email AS user_email, departments.name AS department_name").
		Joins("JOIN users ON users.id = employees.user_id AND users.deleted_at IS NULL").
		Joins("LEFT JOIN departments ON departments.id = employees.department_id AND departments.deleted_at IS NULL").
		Where("employees.deleted_at IS NULL")
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Detail, error) {
	q := r.detailQuery(ctx)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("employees.employee_code ILIKE ? OR users.name ILIKE ?", pattern, pattern)
	}
	if filter.DepartmentID != "" {
		q = q.Where("employees.department_id = ?", filter.DepartmentID)
	}

	var rows []detailRow
	err := q.Order("employees.employee_code").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapDetails(rows), nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Detail, error) {
	var row detailRow
	err := r.detailQuery(ctx).
		Where("employees.id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	d := mapDetail(row)
	return &d, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	var empl Employee
	if err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error; err != nil {
		return err
	}

	for _, stmt := range []string{
		"DELETE FROM attendances WHERE employee_id = ?",
		"DELETE FROM permissions WHERE employee_id = ?",
		"DELETE FROM leave_requests WHERE employee_id = ?",
	} {
		if err := r.db.WithContext(ctx).Exec(stmt, id).Error; err != nil {
			return err
		}
	}

	if err := r.db.WithContext(ctx).Exec("DELETE FROM users WHERE id = ?", empl.UserID).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Unscoped().Delete(&Employee{}, "id = ?", id).Error
}

func mapDetail(row detailRow) Detail {
	return Detail{
		Employee:       row.Employee,
		Name:           row.Name,
		Email:          row.Email,
		DepartmentName: row.DepartmentName,
	}
}

func mapDetails(rows []detailRow) []Detail {
	out := make([]Detail, len(rows))
	for i, row := range rows {
		out[i] = mapDetail(row)
	}
	return out
}
