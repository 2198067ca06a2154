package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "github.com/nimtechnologiez-coder/attendance-backend/internal/attendance/errors"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/permission"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/timeutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (CheckInResponse, error)
	CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (CheckOutResponse, error)
	Today(ctx context.Context, employeeID string) (AttendanceResponse, error)
	// History lists the employee's records, optionally narrowed to a
	// "YYYY-MM" month.
	History(ctx context.Context, employeeID, month string) ([]AttendanceResponse, error)
}

type service struct {
	db             *sql.DB
	repo           Repository
	permissionRepo permission.Repository
	policy         Policy
	logger         *zap.Logger
	now            func() time.Time
}

func NewService(db *sql.DB, repo Repository, permissionRepo permission.Repository, policy Policy, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:             db,
		repo:           repo,
		permissionRepo: permissionRepo,
		policy:         policy,
		logger:         l,
		now:            time.Now,
	}
}

func (s *service) CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (CheckInResponse, error) {
	if dist, ok := s.policy.DistanceFromOffice(*req.Latitude, *req.Longitude); !ok {
		s.logger.Warn("check-in outside geofence",
			zap.String("employee_id", employeeID),
			zap.Float64("distance_m", dist),
		)
		return CheckInResponse{}, attendanceerrors.OutsideOfficeRange(dist, s.policy.AllowedRadiusM)
	}

	utcNow := s.now().UTC()
	localNow := utcNow.In(s.policy.Location)
	if timeutil.ClockOf(localNow).After(s.policy.CheckInDeadline) {
		return CheckInResponse{}, attendanceerrors.CheckInClosed(s.policy.CheckInDeadline)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CheckInResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	today := s.policy.Today(utcNow)

	rec, err := qtx.FindByEmployeeAndDateForUpdate(ctx, employeeID, today)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		employeeUUID, parseErr := uuid.Parse(employeeID)
		if parseErr != nil {
			return CheckInResponse{}, parseErr
		}
		rec = &Attendance{ID: uuid.New(), EmployeeID: employeeUUID, Date: today}
		if err := qtx.Create(ctx, rec); err != nil {
			return CheckInResponse{}, err
		}
	case err != nil:
		return CheckInResponse{}, err
	}

	if rec.CheckIn != nil {
		return CheckInResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	rec.CheckIn = &utcNow
	status, remark := s.policy.StatusFor(rec.CheckIn)
	rec.Status = status
	if rec.Remarks == nil {
		rec.Remarks = &remark
	}

	if err := qtx.Update(ctx, rec); err != nil {
		s.logger.Error("check-in persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return CheckInResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CheckInResponse{}, err
	}

	s.logger.Info("check-in success",
		zap.String("employee_id", employeeID),
		zap.String("status", status),
	)
	return CheckInResponse{
		Message:     "Checked in successfully",
		CheckInTime: localNow.Format("03:04 PM"),
		Status:      status,
	}, nil
}

func (s *service) CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (CheckOutResponse, error) {
	if dist, ok := s.policy.DistanceFromOffice(*req.Latitude, *req.Longitude); !ok {
		s.logger.Warn("check-out outside geofence",
			zap.String("employee_id", employeeID),
			zap.Float64("distance_m", dist),
		)
		return CheckOutResponse{}, attendanceerrors.OutsideOfficeRange(dist, s.policy.AllowedRadiusM)
	}

	utcNow := s.now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CheckOutResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	today := s.policy.Today(utcNow)

	rec, err := qtx.FindByEmployeeAndDateForUpdate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CheckOutResponse{}, attendanceerrors.ErrNoCheckInRecord
		}
		return CheckOutResponse{}, err
	}
	if rec.CheckIn == nil {
		return CheckOutResponse{}, attendanceerrors.ErrNoCheckInRecord
	}
	if rec.CheckOut != nil {
		return CheckOutResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	// Status stays whatever check-in derived.
	rec.CheckOut = &utcNow
	if err := qtx.Update(ctx, rec); err != nil {
		s.logger.Error("check-out persist failed", zap.String("employee_id", employeeID), zap.Error(err))
		return CheckOutResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CheckOutResponse{}, err
	}

	s.logger.Info("check-out success", zap.String("employee_id", employeeID))
	return CheckOutResponse{
		Message:      "Checked out",
		CheckOutTime: utcNow.In(s.policy.Location).Format("03:04 PM"),
	}, nil
}

func (s *service) Today(ctx context.Context, employeeID string) (AttendanceResponse, error) {
	today := s.policy.Today(s.now())

	rec, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, err
		}
		employeeUUID, parseErr := uuid.Parse(employeeID)
		if parseErr != nil {
			return AttendanceResponse{}, parseErr
		}
		status, remark := s.policy.StatusFor(nil)
		rec = &Attendance{
			ID:         uuid.New(),
			EmployeeID: employeeUUID,
			Date:       today,
			Status:     status,
			Remarks:    &remark,
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			return AttendanceResponse{}, err
		}
	}

	return s.mapToResponse(ctx, *rec), nil
}

func (s *service) History(ctx context.Context, employeeID, month string) ([]AttendanceResponse, error) {
	var from, to *time.Time
	if month != "" {
		start, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidMonth
		}
		end := start.AddDate(0, 1, -1)
		from, to = &start, &end
	}

	recs, err := s.repo.FindAllByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceResponse, len(recs))
	for i, rec := range recs {
		res[i] = s.mapToResponse(ctx, rec)
	}
	return res, nil
}

func (s *service) mapToResponse(ctx context.Context, rec Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:      rec.ID.String(),
		Date:    rec.Date.Format("2006-01-02"),
		Status:  rec.Status,
		Remarks: rec.Remarks,
	}
	if rec.CheckIn != nil {
		v := rec.CheckIn.In(s.policy.Location).Format("03:04 PM")
		resp.CheckIn = &v
	}
	if rec.CheckOut != nil {
		v := rec.CheckOut.In(s.policy.Location).Format("03:04 PM")
		resp.CheckOut = &v
	}
	if rec.CheckIn != nil && rec.CheckOut != nil {
		approved, err := s.permissionRepo.FindApprovedByEmployeeAndDate(ctx, rec.EmployeeID.String(), rec.Date)
		if err != nil {
			s.logger.Warn("permission lookup for working hours failed",
				zap.String("attendance_id", rec.ID.String()),
				zap.Error(err),
			)
		}
		resp.WorkingHours = WorkingHours(rec, approved)
	}
	return resp
}
