package dashboard

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/attendance"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/employee"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/permission"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) WithTx(tx *sql.Tx) attendance.Repository { return f }
func (f *fakeAttendanceRepo) Create(ctx context.Context, a *attendance.Attendance) error {
	return nil
}
func (f *fakeAttendanceRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAttendanceRepo) FindByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeAttendanceRepo) FindAllByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}
func (f *fakeAttendanceRepo) FindByDateRange(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	return f.records, nil
}
func (f *fakeAttendanceRepo) Update(ctx context.Context, a *attendance.Attendance) error {
	return nil
}

type fakePermissionRepo struct {
	perms []permission.Permission
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
	return nil, nil
}
func (f *fakePermissionRepo) FindByDateRange(ctx context.Context, from, to time.Time) ([]permission.Permission, error) {
	return f.perms, nil
}
func (f *fakePermissionRepo) FindPending(ctx context.Context) ([]permission.Permission, error) {
	return nil, nil
}
func (f *fakePermissionRepo) Update(ctx context.Context, p *permission.Permission) error {
	return nil
}

type fakeEmployeeRepo struct {
	details []employee.Detail
}

func (f *fakeEmployeeRepo) WithTx(tx *sql.Tx) employee.Repository { return f }
func (f *fakeEmployeeRepo) Create(ctx context.Context, empl *employee.Employee) error {
	return nil
}
func (f *fakeEmployeeRepo) FindAll(ctx context.Context, filter employee.Filter) ([]employee.Detail, error) {
	if filter.DepartmentID == "" {
		return f.details, nil
	}
	var res []employee.Detail
	for _, d := range f.details {
		if d.DepartmentID != nil && d.DepartmentID.String() == filter.DepartmentID {
			res = append(res, d)
		}
	}
	return res, nil
}
func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id string) (*employee.Detail, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, empl *employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error               { return nil }

func testPolicy() attendance.Policy {
	p := attendance.DefaultPolicy()
	p.Location = time.UTC
	return p
}

func testDetail(code, name string) employee.Detail {
	dept := "Developer"
	return employee.Detail{
		Employee:       employee.Employee{ID: uuid.New(), EmployeeCode: code},
		Name:           name,
		DepartmentName: &dept,
	}
}

func TestService_Report_SynthesizesAbsentRows(t *testing.T) {
	alice := testDetail("NIMD001", "Alice")
	bob := testDetail("NIMD002", "Bob")

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	checkIn := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	checkOut := checkIn.Add(8 * time.Hour)

	svc := NewService(
		&fakeAttendanceRepo{records: []attendance.Attendance{{
			ID:         uuid.New(),
			EmployeeID: alice.ID,
			Date:       date,
			CheckIn:    &checkIn,
			CheckOut:   &checkOut,
		}}},
		&fakePermissionRepo{},
		&fakeEmployeeRepo{details: []employee.Detail{alice, bob}},
		testPolicy(),
	)

	resp, err := svc.Report(context.Background(), ReportQuery{StartDate: "2025-03-10", EndDate: "2025-03-10"})
	assert.NoError(t, err)
	assert.Len(t, resp.Rows, 2)

	assert.Equal(t, attendance.StatusPresent, resp.Rows[0].Status)
	assert.Equal(t, "09:30 AM", resp.Rows[0].CheckIn)
	assert.NotNil(t, resp.Rows[0].WorkingHours)
	assert.Equal(t, 8.00, *resp.Rows[0].WorkingHours)

	// Bob has no record for the day
	assert.Equal(t, attendance.StatusAbsent, resp.Rows[1].Status)
	assert.Equal(t, "-", resp.Rows[1].CheckIn)
	assert.Nil(t, resp.Rows[1].WorkingHours)

	assert.Equal(t, 1, resp.Summary.Present)
	assert.Equal(t, 1, resp.Summary.Absent)
	assert.Equal(t, 0, resp.Summary.Late)
	assert.Equal(t, 2, resp.Summary.TotalEmployees)
	assert.Equal(t, 8.00, resp.Summary.TotalWorkingHours)
}

func TestService_Report_RederivesStatus(t *testing.T) {
	alice := testDetail("NIMD001", "Alice")
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	lateCheckIn := time.Date(2025, 3, 10, 10, 45, 0, 0, time.UTC)

	svc := NewService(
		&fakeAttendanceRepo{records: []attendance.Attendance{{
			ID:         uuid.New(),
			EmployeeID: alice.ID,
			Date:       date,
			Status:     attendance.StatusPresent, // stale stored value
			CheckIn:    &lateCheckIn,
		}}},
		&fakePermissionRepo{},
		&fakeEmployeeRepo{details: []employee.Detail{alice}},
		testPolicy(),
	)

	resp, err := svc.Report(context.Background(), ReportQuery{StartDate: "2025-03-10"})
	assert.NoError(t, err)
	assert.Len(t, resp.Rows, 1)
	assert.Equal(t, attendance.StatusLate, resp.Rows[0].Status)
	assert.Equal(t, "-", resp.Rows[0].CheckOut)
}

func TestService_Report_MultiDayGrid(t *testing.T) {
	alice := testDetail("NIMD001", "Alice")

	svc := NewService(
		&fakeAttendanceRepo{},
		&fakePermissionRepo{},
		&fakeEmployeeRepo{details: []employee.Detail{alice}},
		testPolicy(),
	)

	resp, err := svc.Report(context.Background(), ReportQuery{StartDate: "2025-03-10", EndDate: "2025-03-12"})
	assert.NoError(t, err)
	assert.Len(t, resp.Rows, 3)
	assert.Equal(t, "2025-03-10", resp.Rows[0].Date)
	assert.Equal(t, "2025-03-12", resp.Rows[2].Date)
	assert.Equal(t, 3, resp.Summary.Absent)
}

func TestService_Report_PermissionsColumn(t *testing.T) {
	alice := testDetail("NIMD001", "Alice")
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	checkIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(9 * time.Hour)

	svc := NewService(
		&fakeAttendanceRepo{records: []attendance.Attendance{{
			ID:         uuid.New(),
			EmployeeID: alice.ID,
			Date:       date,
			CheckIn:    &checkIn,
			CheckOut:   &checkOut,
		}}},
		&fakePermissionRepo{perms: []permission.Permission{{
			EmployeeID: alice.ID,
			Date:       date,
			StartTime:  "13:00:00",
			EndTime:    "14:00:00",
			Status:     permission.StatusApproved,
		}}},
		&fakeEmployeeRepo{details: []employee.Detail{alice}},
		testPolicy(),
	)

	resp, err := svc.Report(context.Background(), ReportQuery{StartDate: "2025-03-10"})
	assert.NoError(t, err)
	assert.Len(t, resp.Rows, 1)
	assert.Contains(t, resp.Rows[0].Permissions, "01:00 PM-02:00 PM (Approved)")
	assert.Equal(t, 8.00, *resp.Rows[0].WorkingHours)
}

func TestService_Export_ProducesWorkbook(t *testing.T) {
	alice := testDetail("NIMD001", "Alice")

	svc := NewService(
		&fakeAttendanceRepo{},
		&fakePermissionRepo{},
		&fakeEmployeeRepo{details: []employee.Detail{alice}},
		testPolicy(),
	)

	data, filename, err := svc.Export(context.Background(), ReportQuery{StartDate: "2025-03-10", EndDate: "2025-03-11"})
	assert.NoError(t, err)
	assert.Equal(t, "attendance_report_20250310_to_20250311.xlsx", filename)
	assert.NotEmpty(t, data)
	// xlsx files are zip archives
	assert.Equal(t, byte('P'), data[0])
	assert.Equal(t, byte('K'), data[1])
}
