package department

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

var errDepartmentNotFound = apperror.New(
	apperror.CodeNotFound,
	"Department not found",
	http.StatusNotFound,
)

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:         uuid.New(),
		Name:       req.Name,
		CodePrefix: strings.ToUpper(req.CodePrefix),
	}

	if err := qtx.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(depts), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, errDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, errDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	dept.Name = req.Name
	dept.CodePrefix = strings.ToUpper(req.CodePrefix)

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:         dept.ID.String(),
		Name:       dept.Name,
		CodePrefix: dept.CodePrefix,
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
