package department

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn       func(ctx context.Context, dept *Department) error
	findAllFn      func(ctx context.Context) ([]Department, error)
	findByIDFn     func(ctx context.Context, id string) (*Department, error)
	updateFn       func(ctx context.Context, dept *Department) error
	deleteFn       func(ctx context.Context, id string) error
	ensureExistsFn func(ctx context.Context, dept *Department) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, dept *Department) error {
	return f.createFn(ctx, dept)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Department, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Department, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, dept *Department) error {
	return f.updateFn(ctx, dept)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }
func (f *fakeRepo) EnsureExists(ctx context.Context, dept *Department) error {
	return f.ensureExistsFn(ctx, dept)
}

func TestService_Create_UppercasesPrefix(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Department
	repo := &fakeRepo{
		createFn: func(ctx context.Context, dept *Department) error { saved = *dept; return nil },
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateDepartmentRequest{Name: "Support", CodePrefix: "nims"})
	assert.NoError(t, err)
	assert.Equal(t, "NIMS", resp.CodePrefix)
	assert.Equal(t, "Support", saved.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Department, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewService(db, repo)
	_, err := svc.GetByID(context.Background(), uuid.New().String())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Department not found")
}

func TestSeedDefaults(t *testing.T) {
	var seeded []Department
	repo := &fakeRepo{
		ensureExistsFn: func(ctx context.Context, dept *Department) error {
			seeded = append(seeded, *dept)
			return nil
		},
	}

	assert.NoError(t, SeedDefaults(context.Background(), repo))
	assert.Len(t, seeded, 4)

	prefixes := map[string]string{}
	for _, d := range seeded {
		prefixes[d.Name] = d.CodePrefix
	}
	assert.Equal(t, "NIMH", prefixes["HR"])
	assert.Equal(t, "NIMD", prefixes["Developer"])
	assert.Equal(t, "NIMS", prefixes["Sales"])
	assert.Equal(t, "NIMM", prefixes["Marketing"])
}
