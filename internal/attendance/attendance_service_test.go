package attendance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	attendanceerrors "github.com/nimtechnologiez-coder/attendance-backend/internal/attendance/errors"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/permission"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                         func(tx *sql.Tx) Repository
	createFn                         func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDateFn          func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	findByEmployeeAndDateForUpdateFn func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	findAllByEmployeeFn              func(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error)
	findByDateRangeFn                func(ctx context.Context, from, to time.Time) ([]Attendance, error)
	updateFn                         func(ctx context.Context, a *Attendance) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error {
	return f.createFn(ctx, a)
}
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, employeeID, date)
}
func (f *fakeRepo) FindByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateForUpdateFn(ctx, employeeID, date)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Attendance, error) {
	return f.findAllByEmployeeFn(ctx, employeeID, from, to)
}
func (f *fakeRepo) FindByDateRange(ctx context.Context, from, to time.Time) ([]Attendance, error) {
	return f.findByDateRangeFn(ctx, from, to)
}
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error {
	return f.updateFn(ctx, a)
}

type fakePermissionRepo struct {
	approvedByEmployeeAndDate []permission.Permission
}

func (f *fakePermissionRepo) WithTx(tx *sql.Tx) permission.Repository { return f }
func (f *fakePermissionRepo) Create(ctx context.Context, p *permission.Permission) error {
	return nil
}
func (f *fakePermissionRepo) FindByID(ctx context.Context, id string) (*permission.Permission, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakePermissionRepo) FindProcessedByEmployee(ctx context.Context, employeeID string) ([]permission.Permission, error) {
	return nil, nil
}
func (f *fakePermissionRepo) FindApprovedByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]permission.Permission, error) {
	return f.approvedByEmployeeAndDate, nil
}
func (f *fakePermissionRepo) FindByDateRange(ctx context.Context, from, to time.Time) ([]permission.Permission, error) {
	return nil, nil
}
func (f *fakePermissionRepo) FindPending(ctx context.Context) ([]permission.Permission, error) {
	return nil, nil
}
func (f *fakePermissionRepo) Update(ctx context.Context, p *permission.Permission) error {
	return nil
}

func officeRequest(p Policy) CheckInRequest {
	lat, lon := p.OfficeLatitude, p.OfficeLongitude
	return CheckInRequest{Latitude: &lat, Longitude: &lon}
}

func newTestService(t *testing.T, repo Repository, at time.Time) (*service, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	svc := NewService(db, repo, &fakePermissionRepo{}, testPolicy()).(*service)
	svc.now = func() time.Time { return at }
	return svc, mock, func() { db.Close() }
}

func TestService_CheckInThenCheckOut(t *testing.T) {
	employeeID := uuid.New()
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	var saved Attendance
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.updateFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.findByEmployeeAndDateForUpdateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		if saved.ID == uuid.Nil {
			return nil, gorm.ErrRecordNotFound
		}
		cp := saved
		return &cp, nil
	}

	svc, mock, done := newTestService(t, repo, at)
	defer done()

	mock.ExpectBegin()
	mock.ExpectCommit()
	inResp, err := svc.CheckIn(ctx, employeeID.String(), officeRequest(svc.policy))
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent, inResp.Status)
	assert.Equal(t, "09:30 AM", inResp.CheckInTime)
	assert.NotNil(t, saved.Remarks)

	svc.now = func() time.Time { return at.Add(8 * time.Hour) }
	mock.ExpectBegin()
	mock.ExpectCommit()
	req := officeRequest(svc.policy)
	outResp, err := svc.CheckOut(ctx, employeeID.String(), CheckOutRequest(req))
	assert.NoError(t, err)
	assert.Equal(t, "05:30 PM", outResp.CheckOutTime)
	assert.Equal(t, StatusPresent, saved.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_LateGetsLateStatus(t *testing.T) {
	employeeID := uuid.New()
	at := time.Date(2025, 3, 10, 10, 45, 0, 0, time.UTC)

	var saved Attendance
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.updateFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.findByEmployeeAndDateForUpdateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc, mock, done := newTestService(t, repo, at)
	defer done()

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckIn(context.Background(), employeeID.String(), officeRequest(svc.policy))
	assert.NoError(t, err)
	assert.Equal(t, StatusLate, resp.Status)
	assert.Contains(t, *saved.Remarks, "(Late)")
}

func TestService_CheckIn_ClosedAfterDeadline(t *testing.T) {
	at := time.Date(2025, 3, 10, 11, 1, 0, 0, time.UTC)

	svc, mock, done := newTestService(t, &fakeRepo{}, at)
	defer done()

	_, err := svc.CheckIn(context.Background(), uuid.New().String(), officeRequest(svc.policy))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Check-in closed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_Duplicate(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	existing := at.Add(-time.Hour)

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateForUpdateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		return &Attendance{ID: uuid.New(), CheckIn: &existing}, nil
	}

	svc, mock, done := newTestService(t, repo, at)
	defer done()

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckIn(context.Background(), uuid.New().String(), officeRequest(svc.policy))
	assert.True(t, errors.Is(err, attendanceerrors.ErrAlreadyCheckedIn))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_OutsideGeofence(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	svc, _, done := newTestService(t, &fakeRepo{}, at)
	defer done()

	lat := svc.policy.OfficeLatitude + 0.01
	lon := svc.policy.OfficeLongitude
	_, err := svc.CheckIn(context.Background(), uuid.New().String(), CheckInRequest{Latitude: &lat, Longitude: &lon})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "outside the office range")
	assert.Contains(t, err.Error(), "Allowed radius is 200m")
}

func TestService_CheckOut_RequiresCheckIn(t *testing.T) {
	at := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByEmployeeAndDateForUpdateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc, mock, done := newTestService(t, repo, at)
	defer done()

	mock.ExpectBegin()
	mock.ExpectRollback()
	req := officeRequest(svc.policy)
	_, err := svc.CheckOut(context.Background(), uuid.New().String(), CheckOutRequest(req))
	assert.True(t, errors.Is(err, attendanceerrors.ErrNoCheckInRecord))
}

func TestService_History_InvalidMonth(t *testing.T) {
	svc, _, done := newTestService(t, &fakeRepo{}, time.Now())
	defer done()

	_, err := svc.History(context.Background(), uuid.New().String(), "March-2025")
	assert.True(t, errors.Is(err, attendanceerrors.ErrInvalidMonth))
}

func TestService_History_ComputesWorkingHours(t *testing.T) {
	employeeID := uuid.New()
	in := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	out := in.Add(9 * time.Hour)

	repo := &fakeRepo{}
	repo.findAllByEmployeeFn = func(ctx context.Context, _ string, from, to *time.Time) ([]Attendance, error) {
		assert.NotNil(t, from)
		assert.Equal(t, "2025-03-01", from.Format("2006-01-02"))
		assert.Equal(t, "2025-03-31", to.Format("2006-01-02"))
		return []Attendance{{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Status:     StatusPresent,
			CheckIn:    &in,
			CheckOut:   &out,
		}}, nil
	}

	db, _, _ := sqlmock.New()
	defer db.Close()
	permRepo := &fakePermissionRepo{approvedByEmployeeAndDate: []permission.Permission{
		{StartTime: "13:00:00", EndTime: "14:00:00", Status: permission.StatusApproved},
	}}
	svc := NewService(db, repo, permRepo, testPolicy()).(*service)

	resp, err := svc.History(context.Background(), employeeID.String(), "2025-03")
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.NotNil(t, resp[0].WorkingHours)
	assert.Equal(t, 8.00, *resp[0].WorkingHours)
}
