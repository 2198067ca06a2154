package dashboard

import (
	"context"
	"math"
	"time"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/attendance"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/employee"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/permission"

	"go.uber.org/zap"
)

// Day is one cell of the (employee, date) grid. A nil Record means no
// attendance row exists for that day, which reads as Absent.
type Day struct {
	Employee employee.Detail
	Date     time.Time
	Record   *attendance.Attendance
}

type Service interface {
	Report(ctx context.Context, q ReportQuery) (ReportResponse, error)
	// Export renders the same report as an .xlsx workbook and returns
	// the bytes plus a suggested filename.
	Export(ctx context.Context, q ReportQuery) ([]byte, string, error)
}

type service struct {
	attendanceRepo attendance.Repository
	permissionRepo permission.Repository
	employeeRepo   employee.Repository
	policy         attendance.Policy
	logger         *zap.Logger
	now            func() time.Time
}

func NewService(
	attendanceRepo attendance.Repository,
	permissionRepo permission.Repository,
	employeeRepo employee.Repository,
	policy attendance.Policy,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		attendanceRepo: attendanceRepo,
		permissionRepo: permissionRepo,
		employeeRepo:   employeeRepo,
		policy:         policy,
		logger:         l,
		now:            time.Now,
	}
}

func (s *service) Report(ctx context.Context, q ReportQuery) (ReportResponse, error) {
	start, end := s.parseRange(q)

	days, perms, err := s.buildGrid(ctx, q, start, end)
	if err != nil {
		return ReportResponse{}, err
	}

	rows := make([]RowResponse, len(days))
	var summary Summary
	for i, d := range days {
		row := s.renderRow(d, perms)
		rows[i] = row

		switch row.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusLate:
			summary.Late++
		default:
			summary.Absent++
		}
		if row.WorkingHours != nil {
			summary.TotalWorkingHours += *row.WorkingHours
		}
	}
	summary.TotalWorkingHours = math.Round(summary.TotalWorkingHours*100) / 100

	all, err := s.employeeRepo.FindAll(ctx, employee.Filter{})
	if err != nil {
		return ReportResponse{}, err
	}
	summary.TotalEmployees = len(all)

	return ReportResponse{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Rows:      rows,
		Summary:   summary,
	}, nil
}

// parseRange falls back to today on a missing or malformed date, and the
// end date falls back to the start date.
func (s *service) parseRange(q ReportQuery) (time.Time, time.Time) {
	today := s.policy.Today(s.now())

	start := today
	if q.StartDate != "" {
		if v, err := time.Parse("2006-01-02", q.StartDate); err == nil {
			start = v
		}
	}
	end := start
	if q.EndDate != "" {
		if v, err := time.Parse("2006-01-02", q.EndDate); err == nil && !v.Before(start) {
			end = v
		}
	}
	return start, end
}

type cellKey struct {
	employeeID string
	date       string
}

func (s *service) buildGrid(ctx context.Context, q ReportQuery, start, end time.Time) ([]Day, map[cellKey][]permission.Permission, error) {
	employees, err := s.employeeRepo.FindAll(ctx, employee.Filter{
		Search:       q.Employee,
		DepartmentID: q.Department,
	})
	if err != nil {
		return nil, nil, err
	}

	records, err := s.attendanceRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, nil, err
	}
	recordMap := make(map[cellKey]*attendance.Attendance, len(records))
	for i := range records {
		rec := &records[i]
		recordMap[cellKey{rec.EmployeeID.String(), rec.Date.Format("2006-01-02")}] = rec
	}

	allPerms, err := s.permissionRepo.FindByDateRange(ctx, start, end)
	if err != nil {
		return nil, nil, err
	}
	perms := make(map[cellKey][]permission.Permission)
	for _, p := range allPerms {
		k := cellKey{p.EmployeeID.String(), p.Date.Format("2006-01-02")}
		perms[k] = append(perms[k], p)
	}

	var days []Day
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		for _, emp := range employees {
			days = append(days, Day{
				Employee: emp,
				Date:     date,
				Record:   recordMap[cellKey{emp.ID.String(), date.Format("2006-01-02")}],
			})
		}
	}
	return days, perms, nil
}

func (s *service) renderRow(d Day, perms map[cellKey][]permission.Permission) RowResponse {
	row := RowResponse{
		Date:         d.Date.Format("2006-01-02"),
		EmployeeCode: d.Employee.EmployeeCode,
		EmployeeName: d.Employee.Name,
		Status:       attendance.StatusAbsent,
		CheckIn:      "-",
		CheckOut:     "-",
	}
	if d.Employee.DepartmentName != nil {
		row.Department = *d.Employee.DepartmentName
	}
	if d.Record == nil {
		return row
	}

	rec := *d.Record
	if rec.Remarks != nil {
		row.Remarks = *rec.Remarks
	}

	// Status is re-derived from the stored check-in instant, never read
	// back from the row.
	row.Status, _ = s.policy.StatusFor(rec.CheckIn)

	if rec.CheckIn != nil {
		row.CheckIn = rec.CheckIn.In(s.policy.Location).Format("03:04 PM")
	}
	dayPerms := perms[cellKey{rec.EmployeeID.String(), row.Date}]
	if rec.CheckOut != nil {
		row.CheckOut = rec.CheckOut.In(s.policy.Location).Format("03:04 PM")
		row.WorkingHours = attendance.WorkingHours(rec, dayPerms)
	}
	row.Permissions = formatPermissions(dayPerms)
	return row
}

func formatPermissions(perms []permission.Permission) string {
	out := ""
	for _, p := range perms {
		start, end, err := p.Window()
		if err != nil {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += start.Format12() + "-" + end.Format12() + " (" + p.Status + ")"
	}
	return out
}
