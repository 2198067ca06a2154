package auth

import (
	"context"
	"database/sql"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/connection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	// GetAccountByIdentifier resolves an employee code, email, or name to
	// the account. Employee code is what the mobile client sends.
	GetAccountByIdentifier(ctx context.Context, identifier string) (*Account, error)
	GetAccountByUserID(ctx context.Context, userID uuid.UUID) (*Account, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, hashed string) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, email string) error
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

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

type accountRow struct {
	User
	EmpID   uuid.UUID `gorm:"column:emp_id"`
	EmpCode string    `gorm:"column:emp_code"`
}

func (r *repository) GetAccountByIdentifier(ctx context.Context, identifier string) (*Account, error) {
	var row accountRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*, employees.id AS emp_id, employees.employee_code AS emp_code").
		Joins("JOIN employees ON employees.user_id = users.id AND employees.deleted_at IS NULL").
		Where("users.deleted_at IS NULL").
		Where("employees.employee_code = ? OR users.email = ? OR users.name = ?",
			identifier, identifier, identifier).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &Account{
		User:         row.User,
		EmployeeID:   row.EmpID,
		EmployeeCode: row.EmpCode,
	}, nil
}

func (r *repository) GetAccountByUserID(ctx context.Context, userID uuid.UUID) (*Account, error) {
	var row accountRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*, employees.id AS emp_id, employees.employee_code AS emp_code").
		Joins("JOIN employees ON employees.user_id = users.id AND employees.deleted_at IS NULL").
		Where("users.deleted_at IS NULL").
		Where("users.id = ?", userID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &Account{
		User:         row.User,
		EmployeeID:   row.EmpID,
		EmployeeCode: row.EmpCode,
	}, nil
}

func (r *repository) UpdatePassword(ctx context.Context, userID uuid.UUID, hashed string) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("password", hashed).Error
}

func (r *repository) UpdateProfile(ctx context.Context, userID uuid.UUID, name, email string) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"name": name, "email": email}).Error
}
