package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	leaveerrors "github.com/nimtechnologiez-coder/attendance-backend/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	ListTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)

	Create(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveRequestResponse, error)
	MyRequests(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	// Balance reports per active leave type the yearly allowance, what
	// has been approved, what is still pending, and what is left.
	Balance(ctx context.Context, employeeID string) ([]BalanceEntry, error)
	Pending(ctx context.Context) ([]LeaveRequestResponse, error)
	Approve(ctx context.Context, id, approverUserID string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, id, approverUserID string, req RejectLeaveRequest) (LeaveRequestResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, logger: l, now: time.Now}
}

func (s *service) ListTypes(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindTypes(ctx, true)
	if err != nil {
		return nil, err
	}
	res := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		res[i] = mapTypeToResponse(lt)
	}
	return res, nil
}

func (s *service) CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	requiresApproval := true
	if req.RequiresApproval != nil {
		requiresApproval = *req.RequiresApproval
	}

	lt := &LeaveType{
		ID:               uuid.New(),
		Name:             req.Name,
		MaxDaysPerYear:   req.MaxDaysPerYear,
		RequiresApproval: requiresApproval,
		Description:      req.Description,
		IsActive:         true,
	}
	if err := s.repo.CreateType(ctx, lt); err != nil {
		s.logger.Error("create leave type failed", zap.String("name", req.Name), zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("create leave type success", zap.String("name", lt.Name))
	return mapTypeToResponse(*lt), nil
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveRequestResponse, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDate
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDate
	}
	if end.Before(start) {
		return LeaveRequestResponse{}, leaveerrors.ErrEndBeforeStart
	}

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := qtx.FindTypeByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveTypeNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if !lt.IsActive {
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveTypeNotFound
	}

	overlapping, err := qtx.FindOverlapping(ctx, employeeID, start, end, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if len(overlapping) > 0 {
		first := overlapping[0]
		s.logger.Warn("leave request overlaps",
			zap.String("employee_id", employeeID),
			zap.String("conflicts_with", first.ID.String()),
		)
		return LeaveRequestResponse{}, leaveerrors.Overlaps(first.StartDate, first.EndDate)
	}

	lr := &LeaveRequest{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		LeaveTypeID: lt.ID,
		StartDate:   start,
		EndDate:     end,
		Reason:      req.Reason,
		Status:      StatusPending,
		LeaveType:   *lt,
	}

	used, err := qtx.SumDaysInYear(ctx, employeeID, lt.ID.String(), StatusApproved, start.Year())
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if used+lr.TotalDays() > lt.MaxDaysPerYear {
		return LeaveRequestResponse{}, leaveerrors.QuotaExceeded(lt.Name, lt.MaxDaysPerYear-used)
	}

	if err := qtx.Create(ctx, lr); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("create leave request success",
		zap.String("leave_request_id", lr.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("total_days", lr.TotalDays()),
	)
	return mapToResponse(*lr), nil
}

func (s *service) MyRequests(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	reqs, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	res := make([]LeaveRequestResponse, len(reqs))
	for i, lr := range reqs {
		res[i] = mapToResponse(lr)
	}
	return res, nil
}

func (s *service) Balance(ctx context.Context, employeeID string) ([]BalanceEntry, error) {
	types, err := s.repo.FindTypes(ctx, true)
	if err != nil {
		return nil, err
	}

	year := s.now().Year()
	entries := make([]BalanceEntry, len(types))
	for i, lt := range types {
		used, err := s.repo.SumDaysInYear(ctx, employeeID, lt.ID.String(), StatusApproved, year)
		if err != nil {
			return nil, err
		}
		pending, err := s.repo.SumDaysInYear(ctx, employeeID, lt.ID.String(), StatusPending, year)
		if err != nil {
			return nil, err
		}
		entries[i] = BalanceEntry{
			LeaveType: lt.Name,
			Allowed:   lt.MaxDaysPerYear,
			Used:      used,
			Pending:   pending,
			Available: lt.MaxDaysPerYear - used - pending,
		}
	}
	return entries, nil
}

func (s *service) Pending(ctx context.Context) ([]LeaveRequestResponse, error) {
	details, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]LeaveRequestResponse, len(details))
	for i, d := range details {
		res[i] = mapToResponse(d.LeaveRequest)
		res[i].EmployeeName = d.EmployeeName
	}
	return res, nil
}

func (s *service) Approve(ctx context.Context, id, approverUserID string) (LeaveRequestResponse, error) {
	return s.process(ctx, id, approverUserID, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, id, approverUserID string, req RejectLeaveRequest) (LeaveRequestResponse, error) {
	return s.process(ctx, id, approverUserID, StatusRejected, &req.Reason)
}

func (s *service) process(ctx context.Context, id, approverUserID, target string, rejectionReason *string) (LeaveRequestResponse, error) {
	approverUUID, err := uuid.Parse(approverUserID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}
	if lr.Status != StatusPending {
		return LeaveRequestResponse{}, leaveerrors.ErrAlreadyProcessed
	}

	now := s.now().UTC()
	lr.Status = target
	lr.ApprovedBy = &approverUUID
	lr.ApprovedAt = &now
	if rejectionReason != nil {
		lr.RejectionReason = rejectionReason
	}

	if err := qtx.Update(ctx, lr); err != nil {
		s.logger.Error("leave transition persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveRequestResponse{}, err
	}

	s.logger.Info("leave transition success",
		zap.String("leave_request_id", id),
		zap.String("status", target),
	)
	return mapToResponse(*lr), nil
}

func mapTypeToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:               lt.ID.String(),
		Name:             lt.Name,
		MaxDaysPerYear:   lt.MaxDaysPerYear,
		RequiresApproval: lt.RequiresApproval,
		Description:      lt.Description,
		IsActive:         lt.IsActive,
	}
}

func mapToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:              lr.ID.String(),
		EmployeeID:      lr.EmployeeID.String(),
		LeaveType:       lr.LeaveType.Name,
		StartDate:       lr.StartDate.Format("2006-01-02"),
		EndDate:         lr.EndDate.Format("2006-01-02"),
		TotalDays:       lr.TotalDays(),
		Reason:          lr.Reason,
		Status:          lr.Status,
		RejectionReason: lr.RejectionReason,
	}
	if lr.ApprovedBy != nil {
		v := lr.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if lr.ApprovedAt != nil {
		v := lr.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}
