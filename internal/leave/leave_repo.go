package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/google/uuid"
)

// RequestDetail carries the joined employee name for admin listings.
type RequestDetail struct {
	LeaveRequest `gorm:"embedded"`
	EmployeeName string `gorm:"column:employee_name"`
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateType(ctx context.Context, lt *LeaveType) error
	FindTypes(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	FindTypeByID(ctx context.Context, id string) (*LeaveType, error)
	EnsureTypeExists(ctx context.Context, lt *LeaveType) error

	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	// FindOverlapping returns Pending and Approved requests of the
	// employee whose inclusive range touches [start, end], excluding
	// excludeID when updating an existing request.
	FindOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *uuid.UUID) ([]LeaveRequest, error)
	// SumDaysInYear totals inclusive day counts of the employee's
	// requests of one type and status whose start date falls in year.
	SumDaysInYear(ctx context.Context, employeeID, leaveTypeID, status string, year int) (int, error)
	FindPending(ctx context.Context) ([]RequestDetail, error)
	Update(ctx context.Context, lr *LeaveRequest) error
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

func (r *repository) CreateType(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *repository) FindTypes(ctx context.Context, activeOnly bool) ([]LeaveType, error) {
	q := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var types []LeaveType
	err := q.Find(&types).Error
	return types, err
}

func (r *repository) FindTypeByID(ctx context.Context, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) EnsureTypeExists(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(lt).Error
}

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).Preload("LeaveType").First(&lr, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("LeaveType").
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) FindOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID *uuid.UUID) ([]LeaveRequest, error) {
	q := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", start.Format("2006-01-02"), end.Format("2006-01-02"))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var reqs []LeaveRequest
	err := q.Order("start_date").Find(&reqs).Error
	return reqs, err
}

func (r *repository) SumDaysInYear(ctx context.Context, employeeID, leaveTypeID, status string, year int) (int, error) {
	var total sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("SUM(end_date - start_date + 1)").
		Where("employee_id = ?", employeeID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("status = ?", status).
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}

func (r *repository) FindPending(ctx context.Context) ([]RequestDetail, error) {
	var details []RequestDetail
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Select("leave_requests.*, users.name AS employee_name").
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Joins("JOIN users ON users.id = employees.user_id").
		Where("leave_requests.status = ?", StatusPending).
		Where("leave_requests.deleted_at IS NULL").
		Order("leave_requests.created_at").
		Find(&details).Error
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}

	// One batched lookup instead of a per-row query
	typeIDs := make([]uuid.UUID, 0, len(details))
	seen := make(map[uuid.UUID]struct{}, len(details))
	for _, d := range details {
		if _, ok := seen[d.LeaveTypeID]; !ok {
			seen[d.LeaveTypeID] = struct{}{}
			typeIDs = append(typeIDs, d.LeaveTypeID)
		}
	}
	var types []LeaveType
	if err := r.db.WithContext(ctx).Where("id IN ?", typeIDs).Find(&types).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]LeaveType, len(types))
	for _, lt := range types {
		byID[lt.ID] = lt
	}
	for i := range details {
		details[i].LeaveType = byID[details[i].LeaveTypeID]
	}
	return details, nil
}

func (r *repository) Update(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("LeaveType").Save(lr).Error
}
