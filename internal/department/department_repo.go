package department

import (
	"context"
	"database/sql"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id string) (*Department, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id string) error
	// EnsureExists inserts the department unless one with the same name is
	// already present. Used by startup seeding.
	EnsureExists(ctx context.Context, dept *Department) error
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).Order("name").Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Department{}, "id = ?", id).Error
}

func (r *repository) EnsureExists(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(dept).Error
}
