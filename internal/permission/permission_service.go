package permission

import (
	"context"
	"database/sql"
	"errors"
	"time"

	permissionerrors "github.com/nimtechnologiez-coder/attendance-backend/internal/permission/errors"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/timeutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, employeeID string, req CreatePermissionRequest) (PermissionResponse, error)
	// ListProcessed returns the employee's own history without Pending rows.
	ListProcessed(ctx context.Context, employeeID string) ([]PermissionResponse, error)
	ListPending(ctx context.Context) ([]PermissionResponse, error)
	Approve(ctx context.Context, id string) (PermissionResponse, error)
	Reject(ctx context.Context, id string) (PermissionResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	loc    *time.Location
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("permission.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("permission.service")
	}
	return &service{db: db, repo: repo, loc: loc, logger: l}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreatePermissionRequest) (PermissionResponse, error) {
	s.logger.Debug("create permission requested",
		zap.String("employee_id", employeeID),
		zap.String("start_time", req.StartTime),
		zap.String("end_time", req.EndTime),
	)

	// Normalize here so every consumer downstream sees one format
	start, err := timeutil.ParseClock(req.StartTime)
	if err != nil {
		return PermissionResponse{}, permissionerrors.ErrInvalidTimeFormat
	}
	end, err := timeutil.ParseClock(req.EndTime)
	if err != nil {
		return PermissionResponse{}, permissionerrors.ErrInvalidTimeFormat
	}
	if !end.After(start) {
		return PermissionResponse{}, permissionerrors.ErrEndBeforeStart
	}

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return PermissionResponse{}, permissionerrors.ErrPermissionNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PermissionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	now := time.Now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	p := &Permission{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		Date:       today,
		StartTime:  start.String(),
		EndTime:    end.String(),
		Reason:     req.Reason,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create permission persist failed", zap.Error(err))
		return PermissionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PermissionResponse{}, err
	}

	s.logger.Info("create permission success",
		zap.String("permission_id", p.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*p), nil
}

func (s *service) ListProcessed(ctx context.Context, employeeID string) ([]PermissionResponse, error) {
	perms, err := s.repo.FindProcessedByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(perms), nil
}

func (s *service) ListPending(ctx context.Context) ([]PermissionResponse, error) {
	perms, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(perms), nil
}

func (s *service) Approve(ctx context.Context, id string) (PermissionResponse, error) {
	return s.transition(ctx, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, id string) (PermissionResponse, error) {
	return s.transition(ctx, id, StatusRejected)
}

func (s *service) transition(ctx context.Context, id, target string) (PermissionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PermissionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PermissionResponse{}, permissionerrors.ErrPermissionNotFound
		}
		return PermissionResponse{}, err
	}

	if p.Status != StatusPending {
		s.logger.Warn("permission transition rejected",
			zap.String("permission_id", id),
			zap.String("status", p.Status),
		)
		return PermissionResponse{}, permissionerrors.ErrAlreadyProcessed
	}

	p.Status = target
	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("permission transition persist failed", zap.String("permission_id", id), zap.Error(err))
		return PermissionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PermissionResponse{}, err
	}

	s.logger.Info("permission transition success",
		zap.String("permission_id", id),
		zap.String("status", target),
	)
	return mapToResponse(*p), nil
}

func mapToResponse(p Permission) PermissionResponse {
	resp := PermissionResponse{
		ID:            p.ID.String(),
		EmployeeID:    p.EmployeeID.String(),
		Date:          p.Date.Format("2006-01-02"),
		Reason:        p.Reason,
		Status:        p.Status,
		DurationHours: p.DurationHours(),
	}
	if start, end, err := p.Window(); err == nil {
		resp.StartTime = start.Format12()
		resp.EndTime = end.Format12()
	}
	return resp
}

func mapToListResponse(perms []Permission) []PermissionResponse {
	res := make([]PermissionResponse, len(perms))
	for i, p := range perms {
		res[i] = mapToResponse(p)
	}
	return res
}
