package employee

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/auth"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/department"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn   func(ctx context.Context, empl *Employee) error
	findAllFn  func(ctx context.Context, filter Filter) ([]Detail, error)
	findByIDFn func(ctx context.Context, id string) (*Detail, error)
	updateFn   func(ctx context.Context, empl *Employee) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                     { return f }
func (f *fakeRepo) Create(ctx context.Context, empl *Employee) error { return f.createFn(ctx, empl) }
func (f *fakeRepo) FindAll(ctx context.Context, filter Filter) ([]Detail, error) {
	return f.findAllFn(ctx, filter)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Detail, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, empl *Employee) error { return f.updateFn(ctx, empl) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error      { return f.deleteFn(ctx, id) }

type fakeDeptRepo struct {
	dept *department.Department
}

func (f *fakeDeptRepo) WithTx(tx *sql.Tx) department.Repository { return f }
func (f *fakeDeptRepo) Create(ctx context.Context, dept *department.Department) error {
	return nil
}
func (f *fakeDeptRepo) FindAll(ctx context.Context) ([]department.Department, error) {
	return nil, nil
}
func (f *fakeDeptRepo) FindByID(ctx context.Context, id string) (*department.Department, error) {
	if f.dept == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.dept, nil
}
func (f *fakeDeptRepo) Update(ctx context.Context, dept *department.Department) error { return nil }
func (f *fakeDeptRepo) Delete(ctx context.Context, id string) error                   { return nil }
func (f *fakeDeptRepo) EnsureExists(ctx context.Context, dept *department.Department) error {
	return nil
}

type fakeUserRepo struct {
	created *auth.User
}

func (f *fakeUserRepo) WithTx(tx *sql.Tx) auth.Repository { return f }
func (f *fakeUserRepo) Create(ctx context.Context, user *auth.User) error {
	f.created = user
	return nil
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) GetAccountByIdentifier(ctx context.Context, identifier string) (*auth.Account, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) GetAccountByUserID(ctx context.Context, userID uuid.UUID) (*auth.Account, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, hashed string) error {
	return nil
}
func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userID uuid.UUID, name, email string) error {
	return nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, prefix string) (int64, error) {
	f.next++
	return f.next, nil
}

func developerDept() *department.Department {
	return &department.Department{
		ID:         uuid.New(),
		Name:       "Developer",
		CodePrefix: "NIMD",
	}
}

func TestService_Create_GeneratesCodeAndPassword(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Employee
	repo := &fakeRepo{
		createFn: func(ctx context.Context, empl *Employee) error { saved = *empl; return nil },
	}
	users := &fakeUserRepo{}

	svc := NewService(db, repo, &fakeDeptRepo{dept: developerDept()}, users, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FirstName:    "Alice",
		LastName:     "Kumar",
		Email:        "alice@example.com",
		DepartmentID: uuid.New().String(),
	})
	assert.NoError(t, err)

	assert.Equal(t, "NIMD001", resp.EmployeeID)
	assert.Equal(t, "NIMD001", saved.EmployeeCode)
	assert.Equal(t, "Alice Kumar", users.created.Name)

	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]{6}$`), resp.GeneratedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(users.created.Password), []byte(resp.GeneratedPassword)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_SequencePerDepartment(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var codes []string
	repo := &fakeRepo{
		createFn: func(ctx context.Context, empl *Employee) error {
			codes = append(codes, empl.EmployeeCode)
			return nil
		},
	}

	svc := NewService(db, repo, &fakeDeptRepo{dept: developerDept()}, &fakeUserRepo{}, &fakeCounter{}, nil)

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		_, err := svc.Create(context.Background(), CreateEmployeeRequest{
			FirstName:    "E",
			LastName:     "N",
			Email:        uuid.New().String() + "@example.com",
			DepartmentID: uuid.New().String(),
		})
		assert.NoError(t, err)
	}
	assert.Equal(t, []string{"NIMD001", "NIMD002"}, codes)
}

func TestService_Create_UnknownDepartment(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeDeptRepo{}, &fakeUserRepo{}, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		FirstName:    "Alice",
		LastName:     "Kumar",
		Email:        "alice@example.com",
		DepartmentID: uuid.New().String(),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Department not found")
}

func TestService_Update_KeepsEmployeeCode(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	existing := Detail{
		Employee: Employee{
			ID:           uuid.New(),
			UserID:       uuid.New(),
			EmployeeCode: "NIMD007",
		},
		Name:  "Old Name",
		Email: "old@example.com",
	}
	var updated Employee
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Detail, error) {
			cp := existing
			return &cp, nil
		},
		updateFn: func(ctx context.Context, empl *Employee) error { updated = *empl; return nil },
	}

	svc := NewService(db, repo, &fakeDeptRepo{dept: developerDept()}, &fakeUserRepo{}, &fakeCounter{}, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Update(context.Background(), existing.ID.String(), UpdateEmployeeRequest{
		Name:         "New Name",
		Email:        "new@example.com",
		DepartmentID: uuid.New().String(),
	})
	assert.NoError(t, err)
	assert.Equal(t, "NIMD007", updated.EmployeeCode)
	assert.Equal(t, "NIMD007", resp.EmployeeID)
	assert.Equal(t, "New Name", resp.Name)
}
