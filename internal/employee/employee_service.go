package employee

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/auth"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/department"
	employeeerrors "github.com/nimtechnologiez-coder/attendance-backend/internal/employee/errors"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/contextutil"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const employeeOptionsKey = "employees:options"

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (CreateEmployeeResponse, error)
	GetAll(ctx context.Context, filter Filter) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	deptRepo department.Repository
	userRepo auth.Repository
	counter  counter.Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	deptRepo department.Repository,
	userRepo auth.Repository,
	counterRepo counter.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		deptRepo: deptRepo,
		userRepo: userRepo,
		counter:  counterRepo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (CreateEmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department_id", req.DepartmentID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return CreateEmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := s.deptRepo.FindByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CreateEmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
		}
		s.logger.Error("create employee department lookup failed", zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	password, err := generatePassword(6)
	if err != nil {
		return CreateEmployeeResponse{}, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return CreateEmployeeResponse{}, err
	}

	user := &auth.User{
		ID:       uuid.New(),
		Name:     req.FirstName + " " + req.LastName,
		Email:    req.Email,
		Password: string(hashed),
		IsActive: true,
	}
	if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
		s.logger.Warn("create employee user persist failed", zap.String("email", req.Email), zap.Error(err))
		return CreateEmployeeResponse{}, employeeerrors.ErrEmailAlreadyRegistered
	}

	nextVal, err := s.counter.GetNextValue(ctx, dept.CodePrefix)
	if err != nil {
		s.logger.Error("create employee generate code failed", zap.Error(err))
		return CreateEmployeeResponse{}, err
	}
	code := fmt.Sprintf("%s%03d", dept.CodePrefix, nextVal)

	deptID := dept.ID
	empl := &Employee{
		ID:           uuid.New(),
		UserID:       user.ID,
		EmployeeCode: code,
		DepartmentID: &deptID,
	}
	if req.Phone != "" {
		empl.Phone = &req.Phone
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", code),
	)

	deptName := dept.Name
	resp := mapToResponse(Detail{
		Employee:       *empl,
		Name:           user.Name,
		Email:          user.Email,
		DepartmentName: &deptName,
	})
	return CreateEmployeeResponse{EmployeeResponse: resp, GeneratedPassword: password}, nil
}

func (s *service) GetAll(ctx context.Context, filter Filter) ([]EmployeeResponse, error) {
	details, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(details), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, employeeOptionsKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight collapses the stampede when the dashboard filter list
	// is loaded by many admin sessions at once
	v, err, _ := s.sf.Do(employeeOptionsKey, func() (interface{}, error) {
		details, err := s.repo.FindAll(ctx, Filter{})
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(details)

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, employeeOptionsKey, payload, 0)
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*detail), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	detail, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	dept, err := s.deptRepo.FindByID(ctx, req.DepartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
		}
		return EmployeeResponse{}, err
	}

	// EmployeeCode stays untouched: it is immutable once assigned
	empl := detail.Employee
	deptID := dept.ID
	empl.DepartmentID = &deptID
	if req.Phone != "" {
		empl.Phone = &req.Phone
	} else {
		empl.Phone = nil
	}

	if err := qtx.Update(ctx, &empl); err != nil {
		return EmployeeResponse{}, err
	}

	if err := s.userRepo.WithTx(tx).UpdateProfile(ctx, empl.UserID, req.Name, req.Email); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	deptName := dept.Name
	return mapToResponse(Detail{
		Employee:       empl,
		Name:           req.Name,
		Email:          req.Email,
		DepartmentName: &deptName,
	}), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, employeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", employeeOptionsKey),
		)
	}
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generatePassword(length int) (string, error) {
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}

func mapToResponse(d Detail) EmployeeResponse {
	return EmployeeResponse{
		ID:         d.ID.String(),
		EmployeeID: d.EmployeeCode,
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Department: d.DepartmentName,
	}
}

func mapToListResponse(details []Detail) []EmployeeResponse {
	res := make([]EmployeeResponse, len(details))
	for i, d := range details {
		res[i] = mapToResponse(d)
	}
	return res
}
